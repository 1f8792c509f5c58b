package files

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"traynote/internal/notes"
	"traynote/internal/tui/messages"
	"traynote/internal/tui/theme"
)

type pickerMode int

const (
	modeList pickerMode = iota
	modeSearch
)

var (
	dateStyle  = lipgloss.NewStyle().Foreground(theme.Secondary)
	countStyle = theme.Muted
)

// Model lists captured files and opens the selected one.
type Model struct {
	all         []notes.File
	filtered    []notes.File
	selected    int
	mode        pickerMode
	textInput   textinput.Model
	searchQuery string
	dir         string
	width       int
	height      int
}

func New(dir string, files []notes.File) Model {
	ti := textinput.New()
	ti.Placeholder = "filter..."
	ti.CharLimit = 64
	ti.Width = 40

	m := Model{dir: dir, textInput: ti}
	m.SetFiles(files)
	return m
}

// SetFiles replaces the list, keeping the current filter.
func (m *Model) SetFiles(files []notes.File) {
	m.all = files
	m.applyFilter()
}

// SetSize updates the view dimensions
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// IsTyping returns true while the filter input has focus
func (m Model) IsTyping() bool {
	return m.mode == modeSearch
}

// Selected returns the highlighted file, if any.
func (m Model) Selected() (notes.File, bool) {
	if m.selected < 0 || m.selected >= len(m.filtered) {
		return notes.File{}, false
	}
	return m.filtered[m.selected], true
}

func (m *Model) applyFilter() {
	m.filtered = notes.Filter(m.all, m.searchQuery)
	if m.selected >= len(m.filtered) {
		m.selected = max(0, len(m.filtered)-1)
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	if m.mode == modeSearch {
		switch keyMsg.String() {
		case "esc":
			m.mode = modeList
			m.searchQuery = ""
			m.textInput.SetValue("")
			m.textInput.Blur()
			m.applyFilter()
			return m, nil
		case "enter":
			m.mode = modeList
			m.textInput.Blur()
			return m, nil
		}
		var cmd tea.Cmd
		m.textInput, cmd = m.textInput.Update(msg)
		m.searchQuery = m.textInput.Value()
		m.applyFilter()
		return m, cmd
	}

	switch keyMsg.String() {
	case "j", "down":
		if m.selected < len(m.filtered)-1 {
			m.selected++
		}
	case "k", "up":
		if m.selected > 0 {
			m.selected--
		}
	case "g", "home":
		m.selected = 0
	case "G", "end":
		m.selected = max(0, len(m.filtered)-1)
	case "/":
		m.mode = modeSearch
		cmd := m.textInput.Focus()
		return m, cmd
	case "enter", "o":
		if f, ok := m.Selected(); ok {
			return m, messages.OpenFile(f.Path)
		}
	case "esc", "q":
		return m, messages.Cancel
	}
	return m, nil
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(theme.Title.Render("Captured files"))
	b.WriteString(" ")
	b.WriteString(theme.Muted.Render(abbreviatePath(m.dir)))
	b.WriteString("\n\n")

	if m.mode == modeSearch || m.searchQuery != "" {
		b.WriteString(theme.Subtitle.Render("/ ") + m.textInput.View() + "\n\n")
	}

	if len(m.filtered) == 0 {
		b.WriteString(theme.Muted.Render("No captured files found."))
		b.WriteString("\n")
	}

	visible := m.filtered
	offset := 0
	if limit := m.height - 8; limit > 0 && len(visible) > limit {
		offset = max(0, min(m.selected-limit/2, len(visible)-limit))
		visible = visible[offset : offset+limit]
	}

	for i, f := range visible {
		idx := offset + i
		cursor := "  "
		if idx == m.selected {
			cursor = theme.Cursor.Render("> ")
		}

		line := fmt.Sprintf("%s %s %s",
			dateStyle.Render(f.Date.Format("2006-01-02")),
			f.Title,
			countStyle.Render(fmt.Sprintf("(%d)", f.Entries)),
		)
		if idx == m.selected {
			line = theme.SelectedBg.Render(line)
		}
		b.WriteString(cursor + line + "\n")
	}

	help := "j/k: move  /: filter  enter: open  esc: back"
	if m.mode == modeSearch {
		help = "type to filter  enter: confirm  esc: clear"
	}
	b.WriteString("\n" + theme.HelpHint.Render(help))

	return b.String()
}

// abbreviatePath replaces home directory with ~
func abbreviatePath(path string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	if strings.HasPrefix(path, home) {
		return "~" + path[len(home):]
	}
	return path
}
