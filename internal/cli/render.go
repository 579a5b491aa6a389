package cli

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"gonum.org/v1/gonum/floats"

	"github.com/theirongolddev/housedash/internal/model"
	"github.com/theirongolddev/housedash/internal/tui/theme"
)

// reportStyles are derived from the active theme on every render so a theme
// chosen in config applies to CLI reports as well.
type reportStyles struct {
	title, header, value, muted, dim lipgloss.Style
	up, down, warn                   lipgloss.Style
	accent                           lipgloss.Color
}

func styles() reportStyles {
	t := theme.Active
	return reportStyles{
		title:  lipgloss.NewStyle().Bold(true).Foreground(t.TextPrimary),
		header: lipgloss.NewStyle().Bold(true).Foreground(t.Accent),
		value:  lipgloss.NewStyle().Foreground(t.TextPrimary),
		muted:  lipgloss.NewStyle().Foreground(t.TextMuted),
		dim:    lipgloss.NewStyle().Foreground(t.TextDim),
		up:     lipgloss.NewStyle().Foreground(t.Rise),
		down:   lipgloss.NewStyle().Foreground(t.Fall),
		warn:   lipgloss.NewStyle().Foreground(t.Warning),
		accent: t.Accent,
	}
}

// Table is a report table. Columns holding only prices, percents or counts
// are right-aligned, and percent changes are colored by direction.
type Table struct {
	Title   string
	Headers []string
	Rows    [][]string
}

var (
	numericCell = regexp.MustCompile(`^[+-]?\$?[0-9][0-9,]*(\.[0-9]+)?[KM%]?( - [+-]?\$?[0-9][0-9,]*(\.[0-9]+)?[KM]?)?$`)
	changeCell  = regexp.MustCompile(`^([+-])?[0-9]+(\.[0-9]+)?%$`)
)

// placeholder cells do not decide a column's alignment.
func placeholder(s string) bool {
	return s == "" || s == "-" || s == NotAvailable
}

// numericColumns reports, per column, whether every meaningful cell is a
// number. A column of placeholders only stays left-aligned.
func numericColumns(rows [][]string, cols int) []bool {
	out := make([]bool, cols)
	for c := 0; c < cols; c++ {
		seen := false
		numeric := true
		for _, row := range rows {
			if c >= len(row) || placeholder(row[c]) {
				continue
			}
			seen = true
			if !numericCell.MatchString(row[c]) {
				numeric = false
				break
			}
		}
		out[c] = seen && numeric
	}
	return out
}

// RenderTitle renders a report heading underlined to its own width.
func RenderTitle(title string) string {
	s := styles()
	rule := strings.Repeat("━", lipgloss.Width(title)+2)
	return "  " + s.title.Render(title) + "\n  " + lipgloss.NewStyle().Foreground(s.accent).Render(rule)
}

// RenderTable renders t with rounded borders, followed by a newline.
func RenderTable(t Table) string {
	if len(t.Rows) == 0 && len(t.Headers) == 0 {
		return ""
	}
	s := styles()

	cols := len(t.Headers)
	for _, row := range t.Rows {
		cols = max(cols, len(row))
	}
	numeric := numericColumns(t.Rows, cols)

	tbl := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(s.dim).
		BorderHeader(len(t.Headers) > 0).
		Rows(t.Rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			st := s.value
			if row == table.HeaderRow {
				st = s.header
			} else if row < len(t.Rows) && col < len(t.Rows[row]) {
				cell := t.Rows[row][col]
				switch {
				case placeholder(cell):
					st = s.dim
				case changeCell.MatchString(cell) && strings.HasPrefix(cell, "+"):
					st = s.up
				case changeCell.MatchString(cell) && strings.HasPrefix(cell, "-"):
					st = s.down
				}
			}
			st = st.Padding(0, 1)
			if col < len(numeric) && numeric[col] {
				st = st.Align(lipgloss.Right)
			}
			return st
		})
	if len(t.Headers) > 0 {
		tbl.Headers(t.Headers...)
	}

	var b strings.Builder
	if t.Title != "" {
		b.WriteString("  ")
		b.WriteString(s.header.Render(t.Title))
		b.WriteString("\n")
	}
	b.WriteString(tbl.String())
	b.WriteString("\n")
	return b.String()
}

// RenderProgressBar renders a fetch progress line: a bar followed by
// current/total.
func RenderProgressBar(current, total int, width int) string {
	if total <= 0 {
		return ""
	}
	s := styles()
	bar := progress.New(
		progress.WithSolidFill(string(s.accent)),
		progress.WithWidth(width),
		progress.WithoutPercentage(),
	)
	bar.EmptyColor = string(theme.Active.TextDim)

	pct := float64(current) / float64(total)
	return fmt.Sprintf("[%s] %s/%s",
		bar.ViewAs(min(pct, 1)),
		FormatNumber(int64(current)),
		FormatNumber(int64(total)),
	)
}

// RenderSparkline generates a unicode block sparkline scaled between the
// series minimum and maximum, so small moves on large prices stay visible.
func RenderSparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}

	blocks := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}
	lo, hi := floats.Min(values), floats.Max(values)
	span := hi - lo

	var b strings.Builder
	for _, v := range values {
		idx := len(blocks) / 2
		if span > 0 {
			idx = int((v - lo) / span * float64(len(blocks)-1))
		}
		idx = max(0, min(idx, len(blocks)-1))
		b.WriteRune(blocks[idx])
	}

	return b.String()
}

// RenderChange renders a percent change with an arrow in the rise or fall
// color. Undefined changes render as NotAvailable.
func RenderChange(pct float64, defined bool) string {
	s := styles()
	text := FormatChange(pct, defined)
	switch model.TrendOf(pct, defined) {
	case model.TrendUp:
		return s.up.Render("▲ " + text)
	case model.TrendDown:
		return s.down.Render("▼ " + text)
	default:
		return s.dim.Render(text)
	}
}

// RenderWarning renders a one-line warning.
func RenderWarning(msg string) string {
	return styles().warn.Render("  ! " + msg)
}
