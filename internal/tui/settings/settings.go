package settings

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"traynote/internal/config"
	"traynote/internal/logs"
	"traynote/internal/tui/messages"
	"traynote/internal/tui/theme"
)

// Store is the part of config.Store the editor needs.
type Store interface {
	Settings() config.Settings
	SetMode(config.Mode) error
	SetSingleFilePath(string) error
	SetDailyFolderPath(string) error
	SetDailyFileFormat(string) error
}

type field int

const (
	fieldMode field = iota
	fieldSingleFile
	fieldDailyFolder
	fieldDailyFormat
)

var (
	labelStyle   = lipgloss.NewStyle().Foreground(theme.Secondary).Width(16)
	valueStyle   = lipgloss.NewStyle().Foreground(theme.Text)
	activeMode   = lipgloss.NewStyle().Bold(true).Foreground(theme.TextBright).Background(theme.Primary).Padding(0, 1)
	inactiveMode = lipgloss.NewStyle().Foreground(theme.TextMuted).Padding(0, 1)
)

// Model edits the persisted settings. Every confirmed change is written
// through the store straight away; there is no save step.
type Model struct {
	store   Store
	cursor  int
	editing bool
	input   textinput.Model
	status  string
	failed  bool
	width   int
	now     func() time.Time
}

func New(store Store) Model {
	ti := textinput.New()
	ti.CharLimit = 1024
	ti.Width = 48

	return Model{
		store: store,
		input: ti,
		width: 64,
		now:   time.Now,
	}
}

// SetSize updates the view dimensions
func (m *Model) SetSize(width, _ int) {
	m.width = width
	m.input.Width = max(20, width-24)
}

// IsEditing reports whether a text field has focus.
func (m Model) IsEditing() bool {
	return m.editing
}

// fields lists what is shown for the active mode.
func (m Model) fields() []field {
	if m.store.Settings().Mode == config.ModeDaily {
		return []field{fieldMode, fieldDailyFolder, fieldDailyFormat}
	}
	return []field{fieldMode, fieldSingleFile}
}

func (m Model) current() field {
	fs := m.fields()
	if m.cursor >= len(fs) {
		return fs[len(fs)-1]
	}
	return fs[m.cursor]
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		if m.editing {
			var cmd tea.Cmd
			m.input, cmd = m.input.Update(msg)
			return m, cmd
		}
		return m, nil
	}

	if m.editing {
		return m.updateEditing(keyMsg)
	}

	switch keyMsg.String() {
	case "up", "k", "shift+tab":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j", "tab":
		if m.cursor < len(m.fields())-1 {
			m.cursor++
		}
	case "left", "right", "h", "l", " ":
		if m.current() == fieldMode {
			cmd := m.toggleMode()
			return m, cmd
		}
	case "enter", "e":
		if m.current() == fieldMode {
			cmd := m.toggleMode()
			return m, cmd
		}
		m.editing = true
		m.input.SetValue(m.fieldValue(m.current()))
		m.input.CursorEnd()
		cmd := m.input.Focus()
		return m, cmd
	case "esc", "q":
		return m, messages.Cancel
	}
	return m, nil
}

func (m Model) updateEditing(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		value := strings.TrimSpace(m.input.Value())
		f := m.current()
		m.editing = false
		m.input.Blur()
		if err := m.apply(f, value); err != nil {
			logs.Logger.Warn().Err(err).Msg("settings change rejected")
			m.status, m.failed = err.Error(), true
			return m, nil
		}
		m.status, m.failed = "Saved", false
		return m, changed(f)
	case "esc":
		m.editing = false
		m.input.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) toggleMode() tea.Cmd {
	next := config.ModeDaily
	if m.store.Settings().Mode == config.ModeDaily {
		next = config.ModeSingle
	}
	if err := m.store.SetMode(next); err != nil {
		m.status, m.failed = err.Error(), true
		return nil
	}
	m.status, m.failed = "Mode: "+next.DisplayName(), false
	return changed(fieldMode)
}

func (m Model) apply(f field, value string) error {
	switch f {
	case fieldSingleFile:
		return m.store.SetSingleFilePath(value)
	case fieldDailyFolder:
		return m.store.SetDailyFolderPath(value)
	case fieldDailyFormat:
		return m.store.SetDailyFileFormat(value)
	}
	return nil
}

func (m Model) fieldValue(f field) string {
	s := m.store.Settings()
	switch f {
	case fieldSingleFile:
		return s.SingleFilePath
	case fieldDailyFolder:
		return s.DailyFolderPath
	case fieldDailyFormat:
		return s.DailyFileFormat
	}
	return string(s.Mode)
}

func keyFor(f field) string {
	switch f {
	case fieldSingleFile:
		return "singleFilePath"
	case fieldDailyFolder:
		return "dailyFolderPath"
	case fieldDailyFormat:
		return "dailyFileFormat"
	}
	return "noteFileMode"
}

func changed(f field) tea.Cmd {
	return func() tea.Msg {
		return messages.SettingsChangedMsg{Key: keyFor(f)}
	}
}

func (m Model) View() string {
	s := m.store.Settings()
	var b strings.Builder

	b.WriteString(theme.Title.Render("Note Settings"))
	b.WriteString("\n\n")

	for i, f := range m.fields() {
		cursor := "  "
		if i == m.cursor {
			cursor = theme.Cursor.Render("> ")
		}

		switch f {
		case fieldMode:
			var modes []string
			for _, mode := range config.Modes {
				if mode == s.Mode {
					modes = append(modes, activeMode.Render(mode.DisplayName()))
				} else {
					modes = append(modes, inactiveMode.Render(mode.DisplayName()))
				}
			}
			b.WriteString(cursor + labelStyle.Render("Mode") + strings.Join(modes, " ") + "\n")
			b.WriteString("  " + labelStyle.Render("") + theme.Muted.Render(s.Mode.Description()) + "\n\n")

		default:
			value := valueStyle.Render(m.fieldValue(f))
			if m.editing && i == m.cursor {
				value = m.input.View()
			}
			b.WriteString(cursor + labelStyle.Render(label(f)) + value + "\n")
		}
	}

	switch s.Mode {
	case config.ModeDaily:
		format := s.DailyFileFormat
		if m.editing && m.current() == fieldDailyFormat {
			format = m.input.Value()
		}
		b.WriteString("\n" + theme.Muted.Render(fmt.Sprintf("Today's file: %s", config.PreviewFilename(format, m.now()))))
	default:
		b.WriteString("\n" + theme.Muted.Render("Notes will be appended to this file"))
	}
	b.WriteString("\n")

	if m.status != "" {
		style := theme.Ok
		if m.failed {
			style = theme.Error
		}
		b.WriteString("\n" + style.Render(m.status) + "\n")
	}

	help := "j/k: move  enter: edit  space: toggle mode  esc: done"
	if m.editing {
		help = "enter: save  esc: cancel"
	}
	b.WriteString("\n" + theme.ModalHelp.Render(help))

	return theme.ModalBox.Width(m.width).Render(b.String())
}

func label(f field) string {
	switch f {
	case fieldSingleFile:
		return "File Location"
	case fieldDailyFolder:
		return "Folder Location"
	case fieldDailyFormat:
		return "Filename Format"
	}
	return ""
}
