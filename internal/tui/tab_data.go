package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/housedash/internal/cli"
	"github.com/theirongolddev/housedash/internal/pipeline"
	"github.com/theirongolddev/housedash/internal/tui/components"
	"github.com/theirongolddev/housedash/internal/tui/theme"
)

// dataVisibleRows is how many table rows fit in a content zone of contentH
// lines: card border and title, header, rule and footer take six.
func dataVisibleRows(contentH int) int {
	return max(1, contentH-6)
}

// renderDataTab lists every point of the combined timeline, scrolled to
// a.dataRow.
func (a App) renderDataTab(cw, contentH int) string {
	t := theme.Active
	points := pipeline.CombineSeries(a.dataset.PastData, a.dataset.ForecastedPrices)
	innerW := components.CardInnerWidth(cw)

	headerStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	rowStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	histStyle := lipgloss.NewStyle().Foreground(t.Historical).Background(t.Surface)
	predStyle := lipgloss.NewStyle().Foreground(t.Forecast).Background(t.Surface)

	const (
		dateW  = 10
		priceW = 18
		chgW   = 12
	)
	var current float64
	if a.stats != nil {
		current = a.stats.CurrentPrice
	}

	header := headerStyle.Render(fmt.Sprintf("%-*s %*s %*s %*s",
		dateW, "Date", priceW, historicalName, priceW, predictedName, chgW, "vs Current"))
	rule := dimStyle.Render(strings.Repeat("─", lipgloss.Width(header)))

	rows := make([]string, 0, len(points))
	for _, p := range points {
		hist := dimStyle.Render(fmt.Sprintf("%*s", priceW, "-"))
		pred := dimStyle.Render(fmt.Sprintf("%*s", priceW, "-"))
		var v float64
		if p.Historical != nil {
			v = *p.Historical
			hist = histStyle.Render(fmt.Sprintf("%*s", priceW, cli.FormatPrice(v)))
		}
		if p.Predicted != nil {
			v = *p.Predicted
			pred = predStyle.Render(fmt.Sprintf("%*s", priceW, cli.FormatPrice(v)))
		}
		pct, ok := pipeline.PercentChange(current, v)
		rows = append(rows,
			rowStyle.Render(fmt.Sprintf("%-*s", dateW, p.Label))+
				rowStyle.Render(" ")+hist+rowStyle.Render(" ")+pred+rowStyle.Render(" ")+
				rowStyle.Render(fmt.Sprintf("%*s", chgW, cli.FormatChange(pct, ok))))
	}

	visible := dataVisibleRows(contentH)
	vp := viewport.New(innerW, visible)
	vp.Style = lipgloss.NewStyle().Background(t.Surface)
	vp.SetContent(strings.Join(rows, "\n"))
	vp.SetYOffset(a.dataRow)

	footer := dimStyle.Render(fmt.Sprintf("%d-%d of %d  [j/k] scroll  [g/G] top/bottom",
		vp.YOffset+1, min(vp.YOffset+visible, len(rows)), len(rows)))

	body := header + "\n" + rule + "\n" + vp.View() + "\n" + footer
	title := fmt.Sprintf("Data Points (%d historical, %d forecast)",
		len(a.dataset.PastData), len(a.dataset.ForecastedPrices))
	return components.ContentCard(title, body, cw)
}
