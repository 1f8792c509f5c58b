package tray

import (
	"path/filepath"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"

	"traynote/internal/config"
	"traynote/internal/logs"
)

// settingsWindow edits the Store in place; every change is persisted as soon
// as it is made.
type settingsWindow struct {
	win   fyne.Window
	store *config.Store

	mode       *widget.RadioGroup
	singleFile *widget.Entry
	folder     *widget.Entry
	format     *widget.Entry
	preview    *widget.Label
	singleRow  *fyne.Container
	dailyRows  *fyne.Container

	// refreshMu serializes refreshes from the UI and the settings watcher.
	refreshMu sync.Mutex
}

func newSettingsWindow(a fyne.App, store *config.Store) *settingsWindow {
	s := &settingsWindow{store: store}

	s.win = a.NewWindow("traynote Settings")
	s.win.SetCloseIntercept(s.win.Hide)

	s.mode = widget.NewRadioGroup(modeLabels(), s.onModeChanged)
	s.mode.Horizontal = true
	s.mode.Required = true

	s.singleFile = widget.NewEntry()
	s.singleFile.OnChanged = s.persist(func(c config.Settings) string { return c.SingleFilePath }, store.SetSingleFilePath)

	s.folder = widget.NewEntry()
	s.folder.OnChanged = s.persist(func(c config.Settings) string { return c.DailyFolderPath }, store.SetDailyFolderPath)

	s.format = widget.NewEntry()
	s.format.SetPlaceHolder(config.DefaultDailyFileFormat)
	persistFormat := s.persist(func(c config.Settings) string { return c.DailyFileFormat }, store.SetDailyFileFormat)
	s.format.OnChanged = func(v string) {
		s.updatePreview()
		persistFormat(v)
	}

	s.preview = widget.NewLabel("")
	s.preview.Importance = widget.LowImportance

	s.singleRow = container.NewVBox(
		widget.NewLabel("Note file"),
		container.NewBorder(nil, nil, nil, widget.NewButton("Browse...", s.browseSingleFile), s.singleFile),
	)
	s.dailyRows = container.NewVBox(
		widget.NewLabel("Daily notes folder"),
		container.NewBorder(nil, nil, nil, widget.NewButton("Browse...", s.browseFolder), s.folder),
		widget.NewLabel("Filename format"),
		s.format,
		s.preview,
	)

	s.win.SetContent(container.NewPadded(container.NewVBox(
		widget.NewLabelWithStyle("Save notes to", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		s.mode,
		s.singleRow,
		s.dailyRows,
	)))
	s.win.Resize(fyne.NewSize(480, 0))
	s.refresh(store.Settings())
	return s
}

func (s *settingsWindow) show() {
	s.refresh(s.store.Settings())
	s.win.Show()
	s.win.RequestFocus()
}

// refresh fills the fields from settings. It may run on the watcher's
// goroutine. Fields that end up equal to the store are not written back.
func (s *settingsWindow) refresh(settings config.Settings) {
	s.refreshMu.Lock()
	defer s.refreshMu.Unlock()

	s.mode.SetSelected(settings.Mode.DisplayName())
	setIfChanged(s.singleFile, settings.SingleFilePath)
	setIfChanged(s.folder, settings.DailyFolderPath)
	setIfChanged(s.format, settings.DailyFileFormat)
	s.showModeRows(settings.Mode)
	s.updatePreview()
}

func (s *settingsWindow) onModeChanged(label string) {
	mode, ok := modeForLabel(label)
	if !ok {
		return
	}
	s.showModeRows(mode)
	if mode == s.store.Settings().Mode {
		return
	}
	if err := s.store.SetMode(mode); err != nil {
		logs.Logger.Error().Err(err).Msg("saving note mode")
	}
}

func (s *settingsWindow) showModeRows(mode config.Mode) {
	if mode == config.ModeDaily {
		s.singleRow.Hide()
		s.dailyRows.Show()
		return
	}
	s.dailyRows.Hide()
	s.singleRow.Show()
}

func (s *settingsWindow) updatePreview() {
	s.preview.SetText("Today's file: " + config.PreviewFilename(s.format.Text, s.store.Now()))
}

// persist adapts a Store setter to an entry's OnChanged callback. A value
// already in the store is not written again. Values the store rejects (an
// emptied path) are left unsaved until they become valid.
func (s *settingsWindow) persist(current func(config.Settings) string, set func(string) error) func(string) {
	return func(v string) {
		if v == current(s.store.Settings()) {
			return
		}
		if err := set(v); err != nil {
			logs.Logger.Debug().Err(err).Msg("setting not saved")
		}
	}
}

// browseSingleFile picks the folder for the note file, keeping its name.
func (s *settingsWindow) browseSingleFile() {
	current := s.singleFile.Text
	s.chooseFolder(filepath.Dir(current), func(dir string) {
		s.singleFile.SetText(filepath.Join(dir, filepath.Base(current)))
	})
}

func (s *settingsWindow) browseFolder() {
	s.chooseFolder(s.folder.Text, s.folder.SetText)
}

func (s *settingsWindow) chooseFolder(start string, done func(string)) {
	d := dialog.NewFolderOpen(func(uri fyne.ListableURI, err error) {
		if err != nil {
			logs.Logger.Error().Err(err).Msg("folder dialog")
			return
		}
		if uri == nil {
			return
		}
		done(uri.Path())
	}, s.win)

	if start != "" {
		if lister, err := storage.ListerForURI(storage.NewFileURI(start)); err == nil {
			d.SetLocation(lister)
		}
	}
	d.Show()
}

func setIfChanged(e *widget.Entry, v string) {
	if e.Text != v {
		e.SetText(v)
	}
}

func modeLabels() []string {
	labels := make([]string, len(config.Modes))
	for i, m := range config.Modes {
		labels[i] = m.DisplayName()
	}
	return labels
}

func modeForLabel(label string) (config.Mode, bool) {
	for _, m := range config.Modes {
		if m.DisplayName() == label {
			return m, true
		}
	}
	return "", false
}
