// Package shared holds rendering helpers used by more than one view.
package shared

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"traynote/internal/tui/theme"
)

// HelpBind is a single key and what it does.
type HelpBind struct {
	Key  string
	Desc string
}

// HelpSection groups related binds under a title.
type HelpSection struct {
	Title string
	Binds []HelpBind
}

var helpKeyStyle = lipgloss.NewStyle().Bold(true).Foreground(theme.Secondary).Width(14)

// RenderHelpPopup renders sections in a box centered in width x height.
func RenderHelpPopup(sections []HelpSection, width, height int) string {
	var b strings.Builder
	for i, section := range sections {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(theme.Title.Render(section.Title) + "\n")
		for _, bind := range section.Binds {
			b.WriteString("  " + helpKeyStyle.Render(bind.Key) + bind.Desc + "\n")
		}
	}
	b.WriteString("\n" + theme.ModalHelp.Render("Press any key to close"))

	box := theme.ModalBox.Render(b.String())
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
}
