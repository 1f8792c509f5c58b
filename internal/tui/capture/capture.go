package capture

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"traynote/internal/tui/messages"
	"traynote/internal/tui/theme"
)

const (
	minLines     = 1
	maxLines     = 8
	defaultWidth = 60
)

var (
	iconStyle = lipgloss.NewStyle().Foreground(theme.TextMuted).PaddingRight(1)
	hintStyle = theme.HelpHint
	sepStyle  = theme.HintSep
)

// Model is the terminal capture panel. It owns only the text buffer and
// reports what the user did through messages.SubmitMsg / messages.CancelMsg.
type Model struct {
	input  textarea.Model
	title  string
	status string
	width  int
}

// New creates a focused, empty capture panel.
func New() Model {
	ta := textarea.New()
	ta.Placeholder = "Capture a thought..."
	ta.ShowLineNumbers = false
	ta.Prompt = ""
	ta.CharLimit = 0
	// enter submits; newline needs a modifier
	ta.KeyMap.InsertNewline = key.NewBinding(key.WithKeys("alt+enter", "ctrl+j"))
	ta.Focus()

	m := Model{input: ta}
	m.SetWidth(defaultWidth)
	return m
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	return textarea.Blink
}

// Update handles key presses for the panel
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "esc", "ctrl+c":
			return m, messages.Cancel

		case "enter":
			text := strings.TrimSpace(m.input.Value())
			if text == "" {
				return m, nil
			}
			// the buffer stays until the owner confirms the save
			return m, messages.Submit(text)
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.fitHeight()
	return m, cmd
}

// View renders the panel with its key hints
func (m Model) View() string {
	var b strings.Builder

	if m.title != "" {
		b.WriteString(theme.Muted.Render(m.title))
		b.WriteString("\n")
	}

	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, iconStyle.Render("≡"), m.input.View()))
	b.WriteString("\n\n")

	sep := sepStyle.Render(" • ")
	b.WriteString(hintStyle.Render("⏎ Save") + sep + hintStyle.Render("⌥⏎ Newline") + sep + hintStyle.Render("⎋ Cancel"))

	if m.status != "" {
		b.WriteString("\n")
		b.WriteString(m.status)
	}

	return theme.Panel.Width(m.width).Render(b.String())
}

// SetWidth sets the outer width of the panel
func (m *Model) SetWidth(w int) {
	if w <= 0 {
		w = defaultWidth
	}
	m.width = w
	// border (2) + padding (2) + icon (2)
	m.input.SetWidth(max(10, w-6))
	m.fitHeight()
}

// SetTitle shows the target file above the input.
func (m *Model) SetTitle(title string) {
	m.title = title
}

// SetStatus shows a line under the hints (e.g. a save error).
func (m *Model) SetStatus(status string) {
	m.status = status
}

// Value returns the current buffer
func (m Model) Value() string {
	return m.input.Value()
}

// Reset clears the buffer and shrinks the panel back to one line.
func (m *Model) Reset() {
	m.input.Reset()
	m.status = ""
	m.fitHeight()
}

// Focus focuses the input
func (m *Model) Focus() tea.Cmd {
	return m.input.Focus()
}

// fitHeight grows the input with its content up to maxLines.
func (m *Model) fitHeight() {
	lines := min(max(m.input.LineCount(), minLines), maxLines)
	if lines != m.input.Height() {
		m.input.SetHeight(lines)
	}
}
