package tui

import "traynote/internal/tui/messages"

// Re-export types from messages package for convenience
type ViewType = messages.ViewType

const (
	ViewCapture  = messages.ViewCapture
	ViewSettings = messages.ViewSettings
	ViewFiles    = messages.ViewFiles
)

type SwitchViewMsg = messages.SwitchViewMsg
type SubmitMsg = messages.SubmitMsg
type CancelMsg = messages.CancelMsg
type OpenFileMsg = messages.OpenFileMsg
