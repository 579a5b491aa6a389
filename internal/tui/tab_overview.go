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

const (
	historicalName = "Historical Price"
	predictedName  = "Predicted Price"

	metricCardHeight = 5
	minChartHeight   = 6
	maxChartHeight   = 20
	compactWidth     = 120
)

func historicalLine(values []*float64) components.LineSeries {
	return components.LineSeries{Name: historicalName, Values: values, Color: theme.Active.Historical}
}

func predictedLine(values []*float64) components.LineSeries {
	return components.LineSeries{Name: predictedName, Values: values, Color: theme.Active.Forecast, Dashed: true}
}

// statMetrics builds the four headline cards for s.
func statMetrics(s *model.DerivedStats, compact bool) []components.Metric {
	rangeStr := cli.FormatPriceRange(s.MinPrice, s.MaxPrice)
	if compact {
		rangeStr = cli.FormatCompactPrice(s.MinPrice) + " - " + cli.FormatCompactPrice(s.MaxPrice)
	}
	return []components.Metric{
		{Label: "Current Price", Value: cli.FormatPrice(s.CurrentPrice)},
		{
			Label: "Predicted Price",
			Value: cli.FormatPrice(s.PredictedPrice),
			Delta: cli.FormatChange(s.PriceChangePercent, s.ChangeDefined),
			Trend: s.Trend(),
		},
		{Label: "Average Price", Value: cli.FormatPrice(s.AveragePrice)},
		{Label: "Price Range", Value: rangeStr},
	}
}

// chartHeight fits a chart card below rows of other content already using
// used lines. extra is the card's own non-chart lines.
func chartHeight(contentH, used, extra int) int {
	h := contentH - used - extra - 2 // card border
	if h > maxChartHeight {
		h = maxChartHeight
	}
	if h < minChartHeight {
		h = minChartHeight
	}
	return h
}

func (a App) renderOverviewTab(cw, contentH int) string {
	d := a.dataset
	var b strings.Builder

	// Row 1: stat cards
	if a.stats != nil {
		b.WriteString(components.MetricCardRow(statMetrics(a.stats, cw < compactWidth), cw))
		b.WriteString("\n")
	}

	// Row 2: combined history + forecast chart
	points := pipeline.CombineSeries(d.PastData, d.ForecastedPrices)
	labels, hist, pred := pipeline.SplitCombined(points)
	series := []components.LineSeries{historicalLine(hist), predictedLine(pred)}

	innerW := components.CardInnerWidth(cw)
	chartH := chartHeight(contentH, metricCardHeight, 3)
	cursor := a.cursors[tabOverview]

	var body strings.Builder
	body.WriteString(components.LineChart(series, labels, innerW, chartH, cursor))
	body.WriteString("\n")
	body.WriteString(components.ChartLegend(series))
	body.WriteString("\n")
	body.WriteString(combinedTooltip(points, cursor, innerW))

	b.WriteString(components.ContentCard("Price History & Forecast", body.String(), cw))

	// Row 3: where today's and the forecast price sit in the overall range
	if a.stats != nil && contentH-metricCardHeight-chartH-5 >= 5 {
		s := a.stats
		barW := innerW - 16 - 24
		if barW < 10 {
			barW = 10
		}
		var rb strings.Builder
		rb.WriteString(components.RangeBar("Current", s.CurrentPrice, s.MinPrice, s.MaxPrice, 16, barW))
		rb.WriteString("\n")
		rb.WriteString(components.RangeBar("Predicted", s.PredictedPrice, s.MinPrice, s.MaxPrice, 16, barW))
		b.WriteString("\n")
		b.WriteString(components.ContentCard("Position in Range", rb.String(), cw))
	}

	return b.String()
}

// combinedTooltip describes the combined point under the cursor.
func combinedTooltip(points []pipeline.CombinedPoint, cursor, width int) string {
	if cursor < 0 || cursor >= len(points) {
		return ""
	}
	p := points[cursor]
	switch {
	case p.Historical != nil:
		return tooltipLine(p.Label, historicalName, *p.Historical, theme.Active.Historical, width)
	case p.Predicted != nil:
		return tooltipLine(p.Label, predictedName, *p.Predicted, theme.Active.Forecast, width)
	}
	return ""
}

// tooltipLine renders "Date: Mar '24  Historical Price: $350,000" plus a
// navigation hint when it fits.
func tooltipLine(label, name string, value float64, color lipgloss.Color, width int) string {
	t := theme.Active
	dimStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface).Bold(true)
	nameStyle := lipgloss.NewStyle().Foreground(color).Background(t.Surface)
	hintStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)

	line := dimStyle.Render("Date: ") + valueStyle.Render(label) +
		dimStyle.Render("  ") + nameStyle.Render(name+": ") + valueStyle.Render(cli.FormatPrice(value))

	hint := hintStyle.Render("[←/→] move")
	if gap := width - lipgloss.Width(line) - lipgloss.Width(hint); gap >= 2 {
		line += dimStyle.Render(fmt.Sprintf("%*s", gap, "")) + hint
	}
	return line
}
