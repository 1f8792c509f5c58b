package tui

import "traynote/internal/tui/theme"

var (
	// Title styles
	TitleStyle = theme.Title

	// Status bar
	StatusBarStyle = theme.StatusBar

	// Help text
	HelpStyle = theme.HelpHint

	ErrorStyle = theme.Error
	OkStyle    = theme.Ok
)
