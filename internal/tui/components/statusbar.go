package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/housedash/internal/tui/theme"
)

// RenderStatusBar renders the bottom status bar. location is the current
// selection (empty when none) and note is right-aligned context such as
// the API endpoint.
func RenderStatusBar(width int, location, note string) string {
	t := theme.Active

	style := lipgloss.NewStyle().
		Foreground(t.TextMuted).
		Background(t.Surface).
		Width(width)

	left := " [s]elect  [?]help  [q]uit"
	if location != "" {
		left += "  │ " + location
	}
	right := ""
	if note != "" {
		right = note + " "
	}

	padding := width - lipgloss.Width(left) - lipgloss.Width(right)
	if padding < 1 {
		right = ""
		padding = width - lipgloss.Width(left)
		if padding < 0 {
			padding = 0
		}
	}

	return style.Render(left + strings.Repeat(" ", padding) + right)
}
