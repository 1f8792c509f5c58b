package tui

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"traynote/internal/capture"
	"traynote/internal/config"
	"traynote/internal/tui/messages"
)

func setupApp(t *testing.T, opts Options) (AppModel, *config.Store, string) {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", "")
	for _, key := range []string{config.EnvConfigDir, config.EnvMode, config.EnvSingleFile, config.EnvDailyFolder, config.EnvDailyFormat} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}

	inbox := filepath.Join(home, "notes", "Inbox.md")
	store, err := config.Load(config.CLIFlags{SingleFile: inbox, DailyFolder: filepath.Join(home, "notes")})
	require.NoError(t, err)
	store.Now = func() time.Time { return time.Date(2026, time.August, 9, 11, 22, 0, 0, time.Local) }

	w := &capture.Writer{Now: store.Now}
	return NewAppModel(store, capture.NewService(store, w), opts), store, inbox
}

// drive feeds msg to the model and keeps feeding the messages produced by
// returned commands, skipping tea.Quit and anything that isn't ours.
func drive(t *testing.T, m AppModel, msg tea.Msg) (AppModel, bool) {
	t.Helper()
	queue := []tea.Msg{msg}
	quit := false
	for len(queue) > 0 && !quit {
		next := queue[0]
		queue = queue[1:]

		model, cmd := m.Update(next)
		m = model.(AppModel)
		if cmd == nil {
			continue
		}
		out := cmd()
		switch out.(type) {
		case tea.QuitMsg:
			quit = true
		case messages.SubmitMsg, messages.CancelMsg, messages.OpenFileMsg, messages.SwitchViewMsg, messages.SettingsChangedMsg:
			queue = append(queue, out)
		}
	}
	return m, quit
}

// typeRunes types into the focused view. The returned command is only the
// cursor blink, so it is dropped.
func typeRunes(t *testing.T, m AppModel, s string) AppModel {
	t.Helper()
	model, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
	return model.(AppModel)
}

func TestSubmitWritesAndQuits(t *testing.T) {
	m, _, inbox := setupApp(t, Options{})

	m = typeRunes(t, m, "ship the release")
	m, quit := drive(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	assert.True(t, quit, "panel is dismissed after a successful save")
	require.Len(t, m.Saved(), 1)
	assert.Equal(t, inbox, m.Saved()[0].Path)
	assert.Empty(t, m.View())

	data, err := os.ReadFile(inbox)
	require.NoError(t, err)
	assert.Equal(t, "# Inbox\n\n- 2026-08-09 11:22 ship the release\n", string(data))
}

func TestKeepOpen(t *testing.T) {
	m, _, inbox := setupApp(t, Options{KeepOpen: true})

	m = typeRunes(t, m, "one")
	m, quit := drive(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.False(t, quit)
	m = typeRunes(t, m, "two")
	m, quit = drive(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.False(t, quit)

	assert.Len(t, m.Saved(), 2)
	assert.Contains(t, m.View(), "Saved to")

	entries, err := capture.ReadEntries(inbox)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestBlankSubmitIsNoop(t *testing.T) {
	m, _, inbox := setupApp(t, Options{})

	m = typeRunes(t, m, "   ")
	m, quit := drive(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	assert.False(t, quit)
	assert.Empty(t, m.Saved())
	_, err := os.Stat(inbox)
	assert.True(t, os.IsNotExist(err))
}

func TestEscCancelsWithoutWriting(t *testing.T) {
	m, _, inbox := setupApp(t, Options{})

	m = typeRunes(t, m, "never mind")
	_, quit := drive(t, m, tea.KeyMsg{Type: tea.KeyEsc})

	assert.True(t, quit)
	_, err := os.Stat(inbox)
	assert.True(t, os.IsNotExist(err))
}

func TestSaveFailureIsShownAndNonFatal(t *testing.T) {
	m, store, _ := setupApp(t, Options{})

	blocker := filepath.Join(t.TempDir(), "blocker")
	require.NoError(t, os.WriteFile(blocker, nil, 0644))
	require.NoError(t, store.SetSingleFilePath(filepath.Join(blocker, "Inbox.md")))

	m = typeRunes(t, m, "lost?")
	m, quit := drive(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	assert.False(t, quit)
	assert.Empty(t, m.Saved())
	assert.Contains(t, m.View(), "Not saved")
	assert.Equal(t, "lost?", m.captureView.Value(), "text is kept for a retry")
}

func TestOpenInbox(t *testing.T) {
	var opened string
	m, _, inbox := setupApp(t, Options{Open: func(p string) error { opened = p; return nil }})

	m, _ = drive(t, m, tea.KeyMsg{Type: tea.KeyCtrlO})
	assert.Equal(t, inbox, opened)
	assert.Contains(t, m.View(), "Opened")
}

func TestOpenFailureShown(t *testing.T) {
	m, _, _ := setupApp(t, Options{Open: func(string) error { return errors.New("no viewer") }})

	m, _ = drive(t, m, tea.KeyMsg{Type: tea.KeyCtrlO})
	assert.Contains(t, m.View(), "no viewer")
}

func TestSettingsRoundTrip(t *testing.T) {
	m, store, _ := setupApp(t, Options{})

	m, _ = drive(t, m, tea.KeyMsg{Type: tea.KeyCtrlT})
	require.Equal(t, ViewSettings, m.currentView)

	m, _ = drive(t, m, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	assert.Equal(t, config.ModeDaily, store.Settings().Mode)

	// esc returns to the capture panel rather than quitting
	m, quit := drive(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, quit)
	assert.Equal(t, ViewCapture, m.currentView)

	m = typeRunes(t, m, "daily note")
	m, _ = drive(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.Len(t, m.Saved(), 1)
	assert.Equal(t, "2026-08-09.md", filepath.Base(m.Saved()[0].Path))
}

func TestStartInFilesView(t *testing.T) {
	m, _, _ := setupApp(t, Options{StartView: ViewFiles, Open: func(string) error { return nil }})

	assert.Contains(t, m.View(), "Captured files")
	_, quit := drive(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.True(t, quit)
}

func TestHelpPopup(t *testing.T) {
	m, _, _ := setupApp(t, Options{})

	m = typeRunes(t, m, "?")
	assert.False(t, m.showHelp, "? is note text in the capture panel")
	assert.Equal(t, "?", m.captureView.Value())

	m, _ = drive(t, m, tea.KeyMsg{Type: tea.KeyF1})
	require.True(t, m.showHelp)
	assert.Contains(t, m.View(), "alt+enter")

	m, _ = drive(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, m.showHelp, "any key closes help without cancelling")
	assert.Equal(t, ViewCapture, m.currentView)

	m, _ = drive(t, m, tea.KeyMsg{Type: tea.KeyCtrlT})
	m = typeRunes(t, m, "?")
	assert.True(t, m.showHelp)
	assert.Contains(t, m.View(), "switch single / daily")
}
