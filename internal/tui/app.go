package tui

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"traynote/internal/capture"
	"traynote/internal/config"
	"traynote/internal/logs"
	"traynote/internal/notes"
	"traynote/internal/opener"
	captureview "traynote/internal/tui/capture"
	filesview "traynote/internal/tui/files"
	"traynote/internal/tui/messages"
	settingsview "traynote/internal/tui/settings"
	"traynote/internal/tui/shared"
)

// Store is what the terminal app needs from the settings store.
type Store interface {
	settingsview.Store
	CurrentFilePath() string
}

// Options tweak how the app behaves.
type Options struct {
	// StartView is the first view and the one cancel returns to.
	StartView ViewType
	// KeepOpen keeps the capture panel up after a successful save.
	KeepOpen bool
	// Open opens a file in the default viewer. Defaults to opener.Open.
	Open func(path string) error
}

// AppModel is the root model that dispatches to child views. It is the only
// place that turns a submitted note into a file write.
type AppModel struct {
	store        Store
	svc          *capture.Service
	opts         Options
	currentView  ViewType
	captureView  captureview.Model
	settingsView settingsview.Model
	filesView    filesview.Model
	status       string
	statusErr    bool
	saved        []capture.Result
	quitting     bool
	showHelp     bool
	width        int
	height       int
}

// NewAppModel creates the root application model
func NewAppModel(store Store, svc *capture.Service, opts Options) AppModel {
	if opts.Open == nil {
		opts.Open = opener.Open
	}

	m := AppModel{
		store:        store,
		svc:          svc,
		opts:         opts,
		currentView:  opts.StartView,
		captureView:  captureview.New(),
		settingsView: settingsview.New(store),
	}
	m.captureView.SetTitle(abbreviatePath(store.CurrentFilePath()))
	if opts.StartView == ViewFiles {
		m.filesView = m.scanFiles()
	}
	return m
}

// Saved returns the notes written during this session.
func (m AppModel) Saved() []capture.Result {
	return m.saved
}

func (m AppModel) Init() tea.Cmd {
	if m.currentView == ViewCapture {
		return m.captureView.Init()
	}
	return nil
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.captureView.SetWidth(min(msg.Width, 80))
		m.settingsView.SetSize(min(msg.Width, 80), msg.Height)
		m.filesView.SetSize(msg.Width, msg.Height-2)
		return m, nil

	case SubmitMsg:
		return m.handleSubmit(msg.Text)

	case CancelMsg:
		if m.currentView == m.opts.StartView {
			m.quitting = true
			return m, tea.Quit
		}
		m.currentView = m.opts.StartView
		return m, nil

	case SwitchViewMsg:
		m.currentView = msg.View
		if msg.View == ViewFiles {
			m.filesView = m.scanFiles()
		}
		return m, nil

	case OpenFileMsg:
		if err := m.opts.Open(msg.Path); err != nil {
			logs.Logger.Warn().Err(err).Str("path", msg.Path).Msg("open failed")
			m.setStatus(err.Error(), true)
		} else {
			m.setStatus("Opened "+abbreviatePath(msg.Path), false)
		}
		return m, nil

	case messages.SettingsChangedMsg:
		m.captureView.SetTitle(abbreviatePath(m.store.CurrentFilePath()))
		return m, nil

	case tea.KeyMsg:
		// Global keys: ctrl+c always quits
		if msg.String() == "ctrl+c" {
			m.quitting = true
			return m, tea.Quit
		}

		if m.showHelp {
			m.showHelp = false
			return m, nil
		}
		if msg.String() == "f1" || (msg.String() == "?" && m.acceptsHelpKey()) {
			m.showHelp = true
			return m, nil
		}

		if m.currentView == ViewCapture {
			switch msg.String() {
			case "ctrl+o":
				return m, messages.OpenFile(m.store.CurrentFilePath())
			case "ctrl+t":
				return m, messages.SwitchView(ViewSettings)
			case "ctrl+f":
				return m, messages.SwitchView(ViewFiles)
			}
		}
	}

	// Dispatch to current child view
	var cmd tea.Cmd
	switch m.currentView {
	case ViewCapture:
		m.captureView, cmd = m.captureView.Update(msg)
	case ViewSettings:
		m.settingsView, cmd = m.settingsView.Update(msg)
	case ViewFiles:
		m.filesView, cmd = m.filesView.Update(msg)
	}
	return m, cmd
}

func (m AppModel) handleSubmit(text string) (tea.Model, tea.Cmd) {
	res, err := m.svc.Capture(text)
	if errors.Is(err, capture.ErrEmptyNote) {
		return m, nil
	}
	if err != nil {
		// non-fatal: keep the text so the user can retry or cancel
		logs.Logger.Error().Err(err).Str("path", res.Path).Msg("failed to save note")
		m.captureView.SetStatus(ErrorStyle.Render("Not saved: " + err.Error()))
		return m, nil
	}

	m.saved = append(m.saved, res)
	m.captureView.Reset()
	m.captureView.SetTitle(abbreviatePath(m.store.CurrentFilePath()))

	if !m.opts.KeepOpen {
		m.quitting = true
		return m, tea.Quit
	}
	m.setStatus("Saved to "+abbreviatePath(res.Path), false)
	return m, nil
}

// acceptsHelpKey reports whether "?" is a command rather than typed text.
func (m AppModel) acceptsHelpKey() bool {
	switch m.currentView {
	case ViewSettings:
		return !m.settingsView.IsEditing()
	case ViewFiles:
		return !m.filesView.IsTyping()
	}
	return false
}

func (m AppModel) helpSections() []shared.HelpSection {
	switch m.currentView {
	case ViewSettings:
		return []shared.HelpSection{{Title: "Settings", Binds: []shared.HelpBind{
			{Key: "j/k, tab", Desc: "move between fields"},
			{Key: "space", Desc: "switch single / daily"},
			{Key: "enter, e", Desc: "edit field"},
			{Key: "esc", Desc: "cancel edit or go back"},
		}}}
	case ViewFiles:
		return []shared.HelpSection{{Title: "Files", Binds: []shared.HelpBind{
			{Key: "j/k, g/G", Desc: "move"},
			{Key: "/", Desc: "fuzzy filter"},
			{Key: "enter, o", Desc: "open in default viewer"},
			{Key: "esc, q", Desc: "go back"},
		}}}
	}
	return []shared.HelpSection{
		{Title: "Capture", Binds: []shared.HelpBind{
			{Key: "enter", Desc: "save note"},
			{Key: "alt+enter", Desc: "new line"},
			{Key: "esc", Desc: "cancel"},
		}},
		{Title: "Views", Binds: []shared.HelpBind{
			{Key: "ctrl+o", Desc: "open " + capture.Title(m.store.CurrentFilePath())},
			{Key: "ctrl+t", Desc: "settings"},
			{Key: "ctrl+f", Desc: "captured files"},
			{Key: "f1", Desc: "this help"},
		}},
	}
}

func (m *AppModel) setStatus(text string, isErr bool) {
	m.status = text
	m.statusErr = isErr
}

// scanFiles lists the folder notes are currently written to.
func (m AppModel) scanFiles() filesview.Model {
	dir := filepath.Dir(m.store.CurrentFilePath())
	files, err := notes.Scan(dir, notes.DefaultPattern)
	if err != nil {
		logs.Logger.Warn().Err(err).Str("dir", dir).Msg("scanning captured files")
	}
	fv := filesview.New(dir, files)
	fv.SetSize(m.width, m.height-2)
	return fv
}

func (m AppModel) View() string {
	if m.quitting {
		return ""
	}

	if m.showHelp {
		return shared.RenderHelpPopup(m.helpSections(), m.width, m.height)
	}

	var content string
	var hints string

	switch m.currentView {
	case ViewCapture:
		content = m.captureView.View()
		hints = "ctrl+o: open inbox  ctrl+t: settings  ctrl+f: files  f1: help"
	case ViewSettings:
		content = m.settingsView.View()
	case ViewFiles:
		content = m.filesView.View()
	}

	var statusLine string
	if m.status != "" {
		style := OkStyle
		if m.statusErr {
			style = ErrorStyle
		}
		statusLine = style.Render(m.status)
	}

	parts := []string{content}
	if hints != "" {
		parts = append(parts, HelpStyle.Render(hints))
	}
	if statusLine != "" {
		parts = append(parts, statusLine)
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
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

var _ Store = (*config.Store)(nil)
