package tray

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"traynote/internal/capture"
	"traynote/internal/config"
)

func setupTray(t *testing.T) (*App, *config.Store, string) {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", "")
	for _, key := range []string{config.EnvConfigDir, config.EnvMode, config.EnvSingleFile, config.EnvDailyFolder, config.EnvDailyFormat} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}

	store, err := config.Load(config.CLIFlags{})
	require.NoError(t, err)
	store.Now = func() time.Time { return time.Date(2026, time.July, 14, 8, 5, 0, 0, time.Local) }

	fa := test.NewApp()
	t.Cleanup(fa.Quit)

	svc := capture.NewService(store, &capture.Writer{Now: store.Now})
	return newApp(fa, store, svc), store, filepath.Join(home, "Documents", "Inbox.md")
}

func press(e *captureEntry, name fyne.KeyName) {
	e.TypedKey(&fyne.KeyEvent{Name: name})
}

func TestCaptureEntry_ReturnSubmitsTrimmed(t *testing.T) {
	test.NewApp()
	var got []string
	e := newCaptureEntry(func(s string) { got = append(got, s) }, nil)

	test.Type(e, "  hello  ")
	press(e, fyne.KeyReturn)

	assert.Equal(t, []string{"hello"}, got)
}

func TestCaptureEntry_BlankReturnIgnored(t *testing.T) {
	test.NewApp()
	called := false
	e := newCaptureEntry(func(string) { called = true }, nil)

	test.Type(e, "   ")
	press(e, fyne.KeyReturn)
	press(e, fyne.KeyEnter)

	assert.False(t, called)
}

func TestCaptureEntry_AltReturnInsertsNewline(t *testing.T) {
	test.NewApp()
	called := false
	e := newCaptureEntry(func(string) { called = true }, nil)

	test.Type(e, "one")
	e.KeyDown(&fyne.KeyEvent{Name: desktop.KeyAltLeft})
	press(e, fyne.KeyReturn)
	e.KeyUp(&fyne.KeyEvent{Name: desktop.KeyAltLeft})
	test.Type(e, "two")

	assert.False(t, called)
	assert.Equal(t, "one\ntwo", e.Text)
}

func TestCaptureEntry_EscapeCancels(t *testing.T) {
	test.NewApp()
	cancelled := false
	e := newCaptureEntry(nil, func() { cancelled = true })

	test.Type(e, "draft")
	press(e, fyne.KeyEscape)

	assert.True(t, cancelled)
}

func TestCaptureWindow_SubmitWritesAndHides(t *testing.T) {
	a, _, inbox := setupTray(t)
	c := a.capture

	c.show()
	require.True(t, c.visible.Load())
	test.Type(c.entry, "tray note")
	press(c.entry, fyne.KeyReturn)

	assert.False(t, c.visible.Load())
	assert.Empty(t, c.entry.Text)

	data, err := os.ReadFile(inbox)
	require.NoError(t, err)
	assert.Equal(t, "# Inbox\n\n- 2026-07-14 08:05 tray note\n", string(data))
}

func TestCaptureWindow_FailedSaveKeepsText(t *testing.T) {
	a, store, _ := setupTray(t)
	blocker := filepath.Join(t.TempDir(), "blocker")
	require.NoError(t, os.WriteFile(blocker, nil, 0644))
	require.NoError(t, store.SetSingleFilePath(filepath.Join(blocker, "Inbox.md")))

	c := a.capture
	c.show()
	test.Type(c.entry, "precious")
	press(c.entry, fyne.KeyReturn)

	assert.True(t, c.visible.Load())
	assert.Equal(t, "precious", c.entry.Text)
	assert.True(t, c.status.Visible())
}

func TestCaptureWindow_CancelAndDismiss(t *testing.T) {
	a, _, inbox := setupTray(t)
	c := a.capture

	c.show()
	test.Type(c.entry, "half a thought")
	c.dismiss()
	assert.False(t, c.visible.Load())
	assert.Equal(t, "half a thought", c.entry.Text, "focus loss keeps the draft")

	c.toggle()
	assert.True(t, c.visible.Load())
	c.toggle()
	assert.False(t, c.visible.Load())
	assert.Empty(t, c.entry.Text)

	_, err := os.Stat(inbox)
	assert.True(t, os.IsNotExist(err), "cancel writes nothing")
}

func TestSettingsWindow_ModeAndFormatPersist(t *testing.T) {
	a, store, _ := setupTray(t)
	s := a.settings

	assert.Equal(t, "Single File", s.mode.Selected)
	assert.False(t, s.dailyRows.Visible())

	s.mode.SetSelected("Daily File")
	assert.Equal(t, config.ModeDaily, store.Settings().Mode)
	assert.True(t, s.dailyRows.Visible())
	assert.False(t, s.singleRow.Visible())

	s.format.SetText("")
	test.Type(s.format, "yyyy-'W'ww")
	assert.Equal(t, "yyyy-'W'ww", store.Settings().DailyFileFormat)
	assert.Equal(t, "Today's file: 2026-W29.md", s.preview.Text)

	other, err := config.Load(config.CLIFlags{})
	require.NoError(t, err)
	assert.Equal(t, config.ModeDaily, other.Settings().Mode)
}

func TestSettingsWindow_EmptyPathNotSaved(t *testing.T) {
	a, store, _ := setupTray(t)
	before := store.Settings().SingleFilePath

	a.settings.singleFile.SetText("")
	assert.Equal(t, before, store.Settings().SingleFilePath)

	test.Type(a.settings.singleFile, "~/notes/Quick.md")
	assert.Equal(t, filepath.Join(os.Getenv("HOME"), "notes", "Quick.md"), store.Settings().SingleFilePath)
}

func TestSettingsWindow_RefreshFromExternalEdit(t *testing.T) {
	a, store, _ := setupTray(t)

	other, err := config.Load(config.CLIFlags{})
	require.NoError(t, err)
	require.NoError(t, other.SetMode(config.ModeDaily))
	require.NoError(t, other.SetDailyFileFormat("dd.MM.yyyy"))
	written, err := os.ReadFile(store.Path())
	require.NoError(t, err)

	changed, err := store.Reload()
	require.NoError(t, err)
	require.True(t, changed)
	a.settings.refresh(store.Settings())

	assert.Equal(t, "Daily File", a.settings.mode.Selected)
	assert.Equal(t, "dd.MM.yyyy", a.settings.format.Text)
	assert.True(t, a.settings.dailyRows.Visible())

	after, err := os.ReadFile(store.Path())
	require.NoError(t, err)
	assert.Equal(t, string(written), string(after), "refresh must not write the file back")
}

func TestStartHotkey_RegistersOffTheCallingGoroutine(t *testing.T) {
	a, _, _ := setupTray(t)

	registered := make(chan func(), 1)
	a.listen = func(ctx context.Context, fn func()) error {
		registered <- fn
		return errors.New("permission denied")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	onStarted := a.startHotkey(ctx)

	select {
	case <-registered:
		t.Fatal("hotkey registered before the app started")
	default:
	}

	assert.NotPanics(t, onStarted)

	select {
	case fn := <-registered:
		fn()
		assert.True(t, a.capture.visible.Load(), "hotkey toggles the capture window")
	case <-time.After(2 * time.Second):
		t.Fatal("hotkey was never registered")
	}
}

func TestMenu(t *testing.T) {
	a, _, _ := setupTray(t)
	m := a.menu()

	var labels []string
	for _, item := range m.Items {
		if !item.IsSeparator {
			labels = append(labels, item.Label)
		}
	}
	require.Len(t, labels, 4)
	assert.Contains(t, labels[0], "Capture Note (")
	assert.Equal(t, []string{"Open Inbox", "Settings...", "Quit"}, labels[1:])
	assert.True(t, m.Items[len(m.Items)-1].IsQuit)
}

func TestOpenInbox(t *testing.T) {
	a, _, inbox := setupTray(t)
	var opened []string
	a.Open = func(p string) error {
		opened = append(opened, p)
		return errors.New("no viewer")
	}

	assert.NotPanics(t, a.openInbox)
	assert.Equal(t, []string{inbox}, opened)
}
