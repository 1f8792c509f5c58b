package settings

import (
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"traynote/internal/config"
	"traynote/internal/tui/messages"
)

type fakeStore struct {
	s      config.Settings
	writes int
	err    error
}

func (f *fakeStore) Settings() config.Settings { return f.s }

func (f *fakeStore) SetMode(m config.Mode) error {
	f.writes++
	f.s.Mode = m
	return nil
}

func (f *fakeStore) SetSingleFilePath(p string) error {
	if f.err != nil {
		return f.err
	}
	f.writes++
	f.s.SingleFilePath = p
	return nil
}

func (f *fakeStore) SetDailyFolderPath(p string) error {
	f.writes++
	f.s.DailyFolderPath = p
	return nil
}

func (f *fakeStore) SetDailyFileFormat(p string) error {
	f.writes++
	f.s.DailyFileFormat = p
	return nil
}

func newStore() *fakeStore {
	return &fakeStore{s: config.Settings{
		Mode:            config.ModeSingle,
		SingleFilePath:  "/notes/Inbox.md",
		DailyFolderPath: "/notes/daily",
		DailyFileFormat: "yyyy-MM-dd",
	}}
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "space":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	case "ctrl+u":
		return tea.KeyMsg{Type: tea.KeyCtrlU}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestToggleModePersists(t *testing.T) {
	store := newStore()
	m := New(store)

	m, cmd := m.Update(key("space"))
	require.NotNil(t, cmd)
	assert.Equal(t, messages.SettingsChangedMsg{Key: "noteFileMode"}, cmd())
	assert.Equal(t, config.ModeDaily, store.s.Mode)
	assert.Equal(t, 1, store.writes)

	// paths untouched by the toggle
	assert.Equal(t, "/notes/Inbox.md", store.s.SingleFilePath)
	assert.Equal(t, "/notes/daily", store.s.DailyFolderPath)

	_, _ = m.Update(key("space"))
	assert.Equal(t, config.ModeSingle, store.s.Mode)
}

func TestEditSingleFilePath(t *testing.T) {
	store := newStore()
	m := New(store)

	m, _ = m.Update(key("j"))
	m, _ = m.Update(key("enter"))
	require.True(t, m.IsEditing())

	m, _ = m.Update(key("ctrl+u"))
	m, _ = m.Update(key("/tmp/other.md"))
	m, cmd := m.Update(key("enter"))

	require.NotNil(t, cmd)
	assert.Equal(t, messages.SettingsChangedMsg{Key: "singleFilePath"}, cmd())
	assert.False(t, m.IsEditing())
	assert.Equal(t, "/tmp/other.md", store.s.SingleFilePath)
}

func TestEditEscDiscards(t *testing.T) {
	store := newStore()
	m := New(store)

	m, _ = m.Update(key("j"))
	m, _ = m.Update(key("enter"))
	m, _ = m.Update(key("xyz"))
	m, _ = m.Update(key("esc"))

	assert.False(t, m.IsEditing())
	assert.Equal(t, "/notes/Inbox.md", store.s.SingleFilePath)
	assert.Equal(t, 0, store.writes)
}

func TestEditErrorShown(t *testing.T) {
	store := newStore()
	store.err = errors.New("single file path cannot be empty")
	m := New(store)

	m, _ = m.Update(key("j"))
	m, _ = m.Update(key("enter"))
	m, _ = m.Update(key("ctrl+u"))
	m, cmd := m.Update(key("enter"))

	assert.Nil(t, cmd)
	assert.Contains(t, m.View(), "cannot be empty")
}

func TestDailyFieldsAndPreview(t *testing.T) {
	store := newStore()
	store.s.Mode = config.ModeDaily
	m := New(store)
	m.now = func() time.Time { return time.Date(2026, time.July, 4, 10, 0, 0, 0, time.Local) }

	view := m.View()
	assert.Contains(t, view, "Folder Location")
	assert.Contains(t, view, "Filename Format")
	assert.NotContains(t, view, "File Location")
	assert.Contains(t, view, "Today's file: 2026-07-04.md")

	// edit the format and watch the preview follow the input
	m, _ = m.Update(key("j"))
	m, _ = m.Update(key("j"))
	m, _ = m.Update(key("enter"))
	m, _ = m.Update(key("ctrl+u"))
	m, _ = m.Update(key("yyyyMMdd"))
	assert.Contains(t, m.View(), "Today's file: 20260704.md")

	m, _ = m.Update(key("enter"))
	assert.Equal(t, "yyyyMMdd", store.s.DailyFileFormat)
}

func TestEscLeaves(t *testing.T) {
	m := New(newStore())
	_, cmd := m.Update(key("esc"))
	require.NotNil(t, cmd)
	assert.Equal(t, messages.CancelMsg{}, cmd())
}
