// Package tray runs traynote as a menu-bar (system tray) application.
package tray

import (
	"context"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/theme"

	"traynote/internal/capture"
	"traynote/internal/config"
	"traynote/internal/hotkey"
	"traynote/internal/logs"
	"traynote/internal/opener"
)

const appID = "io.github.traynote"

// App owns the fyne application, the tray menu and both windows.
type App struct {
	fyne     fyne.App
	store    *config.Store
	svc      *capture.Service
	capture  *captureWindow
	settings *settingsWindow

	// Open shows a file in the default viewer.
	Open func(path string) error
	// listen registers the global shortcut.
	listen func(ctx context.Context, fn func()) error
}

// New builds the tray app. Windows are created hidden.
func New(store *config.Store, svc *capture.Service) *App {
	return newApp(app.NewWithID(appID), store, svc)
}

func newApp(fa fyne.App, store *config.Store, svc *capture.Service) *App {
	a := &App{
		fyne:   fa,
		store:  store,
		svc:    svc,
		Open:   opener.Open,
		listen: hotkey.Listen,
	}
	a.capture = newCaptureWindow(fa, svc)
	a.settings = newSettingsWindow(fa, store)
	fa.Lifecycle().SetOnExitedForeground(a.capture.dismiss)
	return a
}

func (a *App) menu() *fyne.Menu {
	quit := fyne.NewMenuItem("Quit", a.fyne.Quit)
	quit.IsQuit = true

	return fyne.NewMenu("traynote",
		fyne.NewMenuItem("Capture Note ("+hotkey.Label+")", a.capture.show),
		fyne.NewMenuItem("Open Inbox", a.openInbox),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Settings...", a.settings.show),
		fyne.NewMenuItemSeparator(),
		quit,
	)
}

// Run installs the tray menu, the global hotkey and the settings watcher,
// then blocks in the fyne event loop until Quit or ctx is cancelled.
func (a *App) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	desk, ok := a.fyne.(desktop.App)
	if !ok {
		logs.Logger.Warn().Msg("no system tray on this platform, showing capture window")
		a.capture.show()
	} else {
		desk.SetSystemTrayMenu(a.menu())
		desk.SetSystemTrayIcon(theme.DocumentCreateIcon())
	}

	// registering needs the main loop running on macOS
	a.fyne.Lifecycle().SetOnStarted(a.startHotkey(ctx))

	if err := a.store.Watch(ctx, a.settings.refresh); err != nil {
		logs.Logger.Warn().Err(err).Msg("settings file will not be watched")
	}

	stopped := make(chan struct{})
	defer close(stopped)
	go func() {
		select {
		case <-ctx.Done():
			a.fyne.Quit()
		case <-stopped:
		}
	}()

	logs.Logger.Info().Str("file", a.store.CurrentFilePath()).Msg("tray started")
	a.fyne.Run()
	logs.Logger.Info().Msg("tray stopped")
	return nil
}

// startHotkey returns the OnStarted hook that registers the capture
// shortcut off the event loop's goroutine.
func (a *App) startHotkey(ctx context.Context) func() {
	return func() {
		go func() {
			if err := a.listen(ctx, a.capture.toggle); err != nil {
				// capture stays reachable from the menu
				logs.Logger.Error().Err(err).Msg("global hotkey disabled")
			}
		}()
	}
}

// openInbox opens the current capture file. It never creates the file.
func (a *App) openInbox() {
	path := a.store.CurrentFilePath()
	if err := a.Open(path); err != nil {
		logs.Logger.Error().Err(err).Str("path", path).Msg("failed to open inbox")
		a.fyne.SendNotification(fyne.NewNotification("traynote", "Could not open "+capture.Title(path)))
	}
}
