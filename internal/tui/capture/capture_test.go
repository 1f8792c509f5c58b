package capture

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"traynote/internal/tui/messages"
)

func typeText(m Model, s string) Model {
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
	return m
}

func TestEnterSubmitsTrimmedText(t *testing.T) {
	m := New()
	m = typeText(m, "  buy milk  ")

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)

	msg := cmd()
	submit, ok := msg.(messages.SubmitMsg)
	require.True(t, ok, "expected SubmitMsg, got %T", msg)
	assert.Equal(t, "buy milk", submit.Text)
	assert.Equal(t, "  buy milk  ", m.Value(), "buffer is kept until the save is confirmed")

	m.Reset()
	assert.Empty(t, m.Value())
}

func TestEnterOnBlankIsIgnored(t *testing.T) {
	m := New()
	m = typeText(m, "   ")

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)
}

func TestEscCancels(t *testing.T) {
	m := New()
	m = typeText(m, "draft")

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)
	assert.Equal(t, messages.CancelMsg{}, cmd())
	assert.Equal(t, "draft", m.Value())
}

func TestAltEnterInsertsNewline(t *testing.T) {
	m := New()
	m = typeText(m, "line one")
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter, Alt: true})
	if cmd != nil {
		_, isSubmit := cmd().(messages.SubmitMsg)
		assert.False(t, isSubmit)
	}
	m = typeText(m, "line two")

	assert.Equal(t, "line one\nline two", m.Value())

	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.Equal(t, messages.SubmitMsg{Text: "line one\nline two"}, cmd())
}

func TestViewShowsHints(t *testing.T) {
	m := New()
	m.SetTitle("~/Documents/Inbox.md")
	m.SetStatus("could not save")

	view := m.View()
	assert.Contains(t, view, "⏎ Save")
	assert.Contains(t, view, "⎋ Cancel")
	assert.Contains(t, view, "Inbox.md")
	assert.Contains(t, view, "could not save")
}
