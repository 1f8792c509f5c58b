package tray

import (
	"sync/atomic"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"traynote/internal/capture"
	"traynote/internal/hotkey"
	"traynote/internal/logs"
)

const captureHints = "⏎ Save • ⌥⏎ Newline • ⎋ Cancel"

// captureWindow is the floating quick-capture panel. It is created once and
// shown or hidden; it never writes files itself.
type captureWindow struct {
	win    fyne.Window
	entry  *captureEntry
	status *widget.Label
	svc    *capture.Service

	// visible is flipped from the hotkey goroutine as well as UI callbacks.
	visible atomic.Bool
}

func newCaptureWindow(a fyne.App, svc *capture.Service) *captureWindow {
	c := &captureWindow{svc: svc}

	c.win = a.NewWindow("Quick Capture")
	c.win.SetFixedSize(true)
	c.win.SetCloseIntercept(c.cancel)

	c.entry = newCaptureEntry(c.submit, c.cancel)
	c.entry.SetMinRowsVisible(3)

	hints := widget.NewLabel(captureHints)
	hints.Importance = widget.LowImportance
	c.status = widget.NewLabel("")
	c.status.Importance = widget.DangerImportance
	c.status.Hide()

	c.win.SetContent(container.NewBorder(
		nil,
		container.NewVBox(c.status, hints),
		widget.NewIcon(theme.DocumentCreateIcon()),
		nil,
		c.entry,
	))
	c.win.Resize(fyne.NewSize(520, 140))
	return c
}

// show brings the panel up with focus in the text field.
func (c *captureWindow) show() {
	c.win.SetTitle("Quick Capture " + hotkey.Label + " → " + capture.Title(c.svc.CurrentFilePath()))
	c.win.CenterOnScreen()
	c.win.Show()
	c.win.RequestFocus()
	c.win.Canvas().Focus(c.entry)
	c.visible.Store(true)
}

// toggle is bound to the global hotkey.
func (c *captureWindow) toggle() {
	if c.visible.Load() {
		c.cancel()
		return
	}
	c.show()
}

func (c *captureWindow) submit(text string) {
	if !c.svc.Save(text) {
		// keep the text so nothing typed is lost
		c.status.SetText("Not saved, see debug.log")
		c.status.Show()
		return
	}
	c.reset()
	c.hide()
}

func (c *captureWindow) cancel() {
	c.reset()
	c.hide()
}

// dismiss hides without clearing; used when focus moves to another app.
func (c *captureWindow) dismiss() {
	if !c.visible.Load() {
		return
	}
	logs.Logger.Debug().Msg("capture window lost focus")
	c.hide()
}

func (c *captureWindow) reset() {
	c.entry.SetText("")
	c.status.SetText("")
	c.status.Hide()
}

func (c *captureWindow) hide() {
	c.visible.Store(false)
	c.win.Hide()
}
