package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/housedash/internal/tui/theme"
)

// Tab represents a single tab in the tab bar.
type Tab struct {
	Name   string
	Key    rune
	KeyPos int // position of the shortcut letter in the name (-1 if not in name)
}

// Tabs defines all available tabs.
var Tabs = []Tab{
	{Name: "Overview", Key: 'o', KeyPos: 0},
	{Name: "History", Key: 'h', KeyPos: 0},
	{Name: "Forecast", Key: 'f', KeyPos: 0},
	{Name: "Data", Key: 'd', KeyPos: 0},
	{Name: "Settings", Key: 'x', KeyPos: -1}, // s is taken by the selector
}

// RenderTabBar renders the tab bar with the given active index.
func RenderTabBar(activeIdx int, width int) string {
	t := theme.Active

	bg := lipgloss.NewStyle().Background(t.Background)
	activeStyle := lipgloss.NewStyle().
		Foreground(t.Accent).
		Background(t.Background).
		Bold(true)
	inactiveStyle := lipgloss.NewStyle().
		Foreground(t.TextMuted).
		Background(t.Background)
	keyStyle := lipgloss.NewStyle().
		Foreground(t.Accent).
		Background(t.Background).
		Bold(true)
	dimKeyStyle := lipgloss.NewStyle().
		Foreground(t.TextDim).
		Background(t.Background)

	parts := make([]string, 0, len(Tabs))
	for i, tab := range Tabs {
		var rendered string
		switch {
		case i == activeIdx:
			rendered = activeStyle.Render(tab.Name)
		case tab.KeyPos >= 0 && tab.KeyPos < len(tab.Name):
			before := tab.Name[:tab.KeyPos]
			key := string(tab.Name[tab.KeyPos])
			after := tab.Name[tab.KeyPos+1:]
			rendered = inactiveStyle.Render(before) +
				dimKeyStyle.Render("[") + keyStyle.Render(key) + dimKeyStyle.Render("]") +
				inactiveStyle.Render(after)
		default:
			rendered = inactiveStyle.Render(tab.Name) +
				dimKeyStyle.Render("[") + keyStyle.Render(string(tab.Key)) + dimKeyStyle.Render("]")
		}
		parts = append(parts, rendered)
	}

	row := bg.Render(" ") + strings.Join(parts, bg.Render("  "))
	if pad := width - lipgloss.Width(row); pad > 0 {
		row += bg.Render(strings.Repeat(" ", pad))
	}
	return row
}

// TabVisualWidth returns the rendered width of a tab label, matching
// RenderTabBar.
func TabVisualWidth(tab Tab, active bool) int {
	switch {
	case active:
		return len(tab.Name)
	case tab.KeyPos >= 0 && tab.KeyPos < len(tab.Name):
		return len(tab.Name) + 2
	default:
		return len(tab.Name) + 3
	}
}

// TabIdxByKey returns the tab index for a given key press, or -1.
func TabIdxByKey(key rune) int {
	for i, tab := range Tabs {
		if tab.Key == key {
			return i
		}
	}
	return -1
}
