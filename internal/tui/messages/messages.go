package messages

import tea "github.com/charmbracelet/bubbletea"

// ViewType represents the different views in the application
type ViewType int

const (
	ViewCapture ViewType = iota
	ViewSettings
	ViewFiles
)

// SwitchViewMsg is sent by child views to switch to a different view
type SwitchViewMsg struct {
	View ViewType
}

// SubmitMsg carries the text of a capture. Views never write files
// themselves; the root model hands the text to the capture service.
type SubmitMsg struct {
	Text string
}

// CancelMsg dismisses the current view.
type CancelMsg struct{}

// OpenFileMsg asks for a file to be opened in the default viewer.
type OpenFileMsg struct {
	Path string
}

// SettingsChangedMsg is sent after a setting was persisted.
type SettingsChangedMsg struct {
	Key string
}

func SwitchView(v ViewType) tea.Cmd {
	return func() tea.Msg {
		return SwitchViewMsg{View: v}
	}
}

func Submit(text string) tea.Cmd {
	return func() tea.Msg {
		return SubmitMsg{Text: text}
	}
}

func Cancel() tea.Msg {
	return CancelMsg{}
}

func OpenFile(path string) tea.Cmd {
	return func() tea.Msg {
		return OpenFileMsg{Path: path}
	}
}
