package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/housedash/internal/cli"
	"github.com/theirongolddev/housedash/internal/model"
	"github.com/theirongolddev/housedash/internal/pipeline"
	"github.com/theirongolddev/housedash/internal/tui/components"
	"github.com/theirongolddev/housedash/internal/tui/theme"
)

func (a App) renderHistoryTab(cw, contentH int) string {
	pts := pipeline.HistoricalSeries(a.dataset.PastData)
	return a.renderSingleSeries("Price History", pts, historicalLine, a.cursors[tabHistory], cw, contentH)
}

func (a App) renderForecastTab(cw, contentH int) string {
	pts := pipeline.ForecastSeries(a.dataset.ForecastedPrices)
	return a.renderSingleSeries("Price Forecast", pts, predictedLine, a.cursors[tabForecast], cw, contentH)
}

// renderSingleSeries draws one series in its own chart card with a summary
// line of first, last, and change over the period.
func (a App) renderSingleSeries(
	title string,
	pts []pipeline.SeriesPoint,
	line func([]*float64) components.LineSeries,
	cursor, cw, contentH int,
) string {
	innerW := components.CardInnerWidth(cw)

	labels := make([]string, len(pts))
	values := make([]float64, len(pts))
	for i, p := range pts {
		labels[i] = p.Label
		values[i] = p.Value
	}
	ls := line(components.Points(values))

	chartH := chartHeight(contentH, 0, 3)

	var body strings.Builder
	body.WriteString(components.LineChart([]components.LineSeries{ls}, labels, innerW, chartH, cursor))
	body.WriteString("\n")
	body.WriteString(seriesSummary(pts))
	body.WriteString("\n")
	if cursor >= 0 && cursor < len(pts) {
		body.WriteString(tooltipLine(pts[cursor].Label, ls.Name, pts[cursor].Value, ls.Color, innerW))
	}

	if len(pts) > 0 {
		title = fmt.Sprintf("%s (%s - %s)", title, pts[0].Label, pts[len(pts)-1].Label)
	}
	return components.ContentCard(title, body.String(), cw)
}

// seriesSummary renders "N points  first → last  (change)".
func seriesSummary(pts []pipeline.SeriesPoint) string {
	t := theme.Active
	dimStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)

	if len(pts) == 0 {
		return dimStyle.Render("No data points")
	}
	first, last := pts[0].Value, pts[len(pts)-1].Value
	pct, ok := pipeline.PercentChange(first, last)
	tr := model.TrendOf(pct, ok)
	changeStyle := lipgloss.NewStyle().Foreground(components.TrendColor(tr)).Background(t.Surface)

	return valueStyle.Render(cli.FormatNumber(int64(len(pts)))) + dimStyle.Render(" points  ") +
		valueStyle.Render(cli.FormatPrice(first)) + dimStyle.Render(" → ") + valueStyle.Render(cli.FormatPrice(last)) +
		dimStyle.Render("  ") + changeStyle.Render(components.TrendGlyph(tr)+cli.FormatChange(pct, ok))
}
