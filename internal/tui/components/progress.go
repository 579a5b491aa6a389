package components

import (
	"fmt"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/housedash/internal/cli"
	"github.com/theirongolddev/housedash/internal/tui/theme"
)

// RangePosition returns where v sits between lo and hi, clamped to 0-1.
// A degenerate range reports 1.
func RangePosition(v, lo, hi float64) float64 {
	if hi <= lo {
		return 1
	}
	pct := (v - lo) / (hi - lo)
	if pct < 0 {
		return 0
	}
	if pct > 1 {
		return 1
	}
	return pct
}

// ColorForPosition returns a cool-to-warm color for a 0-1 range position.
func ColorForPosition(pct float64) string {
	t := theme.Active
	switch {
	case pct >= 0.9:
		return string(t.Scale[3])
	case pct >= 0.7:
		return string(t.Scale[2])
	case pct >= 0.4:
		return string(t.Scale[1])
	default:
		return string(t.Scale[0])
	}
}

// RangeBar renders a labeled bar showing where value sits within [lo, hi],
// followed by the position as a percentage of the range.
func RangeBar(label string, value, lo, hi float64, labelW, barWidth int) string {
	t := theme.Active
	pct := RangePosition(value, lo, hi)

	bar := progress.New(
		progress.WithSolidFill(ColorForPosition(pct)),
		progress.WithWidth(barWidth),
		progress.WithoutPercentage(),
	)
	bar.EmptyColor = string(t.TextDim)

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	pctStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorForPosition(pct))).Background(t.Surface).Bold(true)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	spaceStyle := lipgloss.NewStyle().Background(t.Surface)

	return labelStyle.Render(fmt.Sprintf("%-*s", labelW, label)) +
		spaceStyle.Render(" ") +
		bar.ViewAs(pct) +
		spaceStyle.Render(" ") +
		pctStyle.Render(fmt.Sprintf("%3.0f%%", pct*100)) +
		spaceStyle.Render("  ") +
		valueStyle.Render(cli.FormatPrice(value))
}
