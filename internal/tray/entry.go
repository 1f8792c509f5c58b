package tray

import (
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"
)

// captureEntry is a multi-line entry where Return submits and Alt+Return
// (Option+Return on macOS) inserts a newline.
type captureEntry struct {
	widget.Entry

	onSubmit func(text string)
	onCancel func()

	altDown bool
}

func newCaptureEntry(onSubmit func(string), onCancel func()) *captureEntry {
	e := &captureEntry{onSubmit: onSubmit, onCancel: onCancel}
	e.MultiLine = true
	e.Wrapping = fyne.TextWrapWord
	e.SetPlaceHolder("Capture a thought...")
	e.ExtendBaseWidget(e)
	return e
}

func (e *captureEntry) KeyDown(key *fyne.KeyEvent) {
	if isAlt(key.Name) {
		e.altDown = true
	}
	e.Entry.KeyDown(key)
}

func (e *captureEntry) KeyUp(key *fyne.KeyEvent) {
	if isAlt(key.Name) {
		e.altDown = false
	}
	e.Entry.KeyUp(key)
}

func (e *captureEntry) TypedKey(key *fyne.KeyEvent) {
	switch key.Name {
	case fyne.KeyEscape:
		e.altDown = false
		if e.onCancel != nil {
			e.onCancel()
		}
		return
	case fyne.KeyReturn, fyne.KeyEnter:
		if !e.altDown {
			e.submit()
			return
		}
	}
	e.Entry.TypedKey(key)
}

func (e *captureEntry) submit() {
	text := strings.TrimSpace(e.Text)
	if text == "" || e.onSubmit == nil {
		return
	}
	e.onSubmit(text)
}

func isAlt(name fyne.KeyName) bool {
	return name == desktop.KeyAltLeft || name == desktop.KeyAltRight
}
