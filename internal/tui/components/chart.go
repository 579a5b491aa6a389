package components

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/housedash/internal/cli"
	"github.com/theirongolddev/housedash/internal/tui/theme"
)

// LineSeries is one line of a LineChart. A nil value is a gap: no marker
// is drawn there and no segment touches that position.
type LineSeries struct {
	Name   string
	Values []*float64
	Color  lipgloss.Color
	Dashed bool
}

// Points wraps plain values as a gap-free series value slice.
func Points(values []float64) []*float64 {
	out := make([]*float64, len(values))
	for i := range values {
		out[i] = &values[i]
	}
	return out
}

const (
	markerRune = '●'
	cursorRune = '┊'
)

type cellKind int

const (
	cellEmpty cellKind = iota
	cellCursor
	cellLine
	cellMarker
)

type cell struct {
	r     rune
	kind  cellKind
	color lipgloss.Color
}

type grid struct {
	w, h  int
	cells [][]cell
}

func newGrid(w, h int) *grid {
	g := &grid{w: w, h: h, cells: make([][]cell, h)}
	for i := range g.cells {
		g.cells[i] = make([]cell, w)
	}
	return g
}

// set writes a cell unless a higher-priority glyph already occupies it.
func (g *grid) set(col, row int, r rune, kind cellKind, color lipgloss.Color) {
	if col < 0 || col >= g.w || row < 0 || row >= g.h {
		return
	}
	if g.cells[row][col].kind > kind {
		return
	}
	g.cells[row][col] = cell{r: r, kind: kind, color: color}
}

// LineChart renders one or more series over a shared x axis of labels.
// cursor highlights one x position; pass -1 for none. Returns "" when no
// series carries a value.
func LineChart(series []LineSeries, labels []string, width, height, cursor int) string {
	n := len(labels)
	for _, s := range series {
		if len(s.Values) > n {
			n = len(s.Values)
		}
	}

	lo, hi, ok := valueRange(series)
	if !ok || n == 0 {
		return ""
	}

	t := theme.Active

	plotH := height - 2 // x axis + labels
	if plotH < 3 {
		plotH = 3
	}

	// Y axis: nice ticks spanning the value range, at most one per two rows
	span := hi - lo
	if span == 0 {
		span = math.Abs(hi) / 10
		if span == 0 {
			span = 1
		}
	}
	maxIntervals := (plotH - 1) / 2
	if maxIntervals < 1 {
		maxIntervals = 1
	}
	step := chartTickStep(span)
	var axisLo, axisHi float64
	for {
		axisLo = math.Floor(lo/step) * step
		axisHi = math.Ceil(hi/step) * step
		if axisHi == axisLo {
			axisHi = axisLo + step
		}
		if math.Round((axisHi-axisLo)/step) <= float64(maxIntervals) {
			break
		}
		step *= 2
	}
	lo, hi = axisLo, axisHi

	yRow := func(v float64) int {
		return int(math.Round((hi - v) / (hi - lo) * float64(plotH-1)))
	}

	tickLabels := make(map[int]string)
	yLabelW := 0
	for v := lo; v <= hi+step/2; v += step {
		lbl := cli.FormatPrice(v)
		tickLabels[yRow(v)] = lbl
		if len(lbl) > yLabelW {
			yLabelW = len(lbl)
		}
	}

	chartW := width - yLabelW - 1
	if chartW < 10 {
		chartW = 10
	}

	xCol := func(i int) int {
		if n == 1 {
			return chartW / 2
		}
		return int(math.Round(float64(i) * float64(chartW-1) / float64(n-1)))
	}

	g := newGrid(chartW, plotH)

	if cursor >= 0 && cursor < n {
		c := xCol(cursor)
		for row := 0; row < plotH; row++ {
			g.set(c, row, cursorRune, cellCursor, t.TextDim)
		}
	}

	for _, s := range series {
		hRune, vRune := '─', '│'
		if s.Dashed {
			hRune, vRune = '╌', '╎'
		}

		for i := 0; i+1 < len(s.Values); i++ {
			a, b := s.Values[i], s.Values[i+1]
			if a == nil || b == nil {
				continue
			}
			drawSegment(g, xCol(i), yRow(*a), xCol(i+1), yRow(*b), hRune, vRune, s.Color)
		}
		for i, v := range s.Values {
			if v == nil {
				continue
			}
			g.set(xCol(i), yRow(*v), markerRune, cellMarker, s.Color)
		}
	}

	axisStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	spaceStyle := lipgloss.NewStyle().Background(t.Surface)

	var b strings.Builder
	for row := 0; row < plotH; row++ {
		lbl, isTick := tickLabels[row]
		b.WriteString(axisStyle.Render(fmt.Sprintf("%*s", yLabelW, lbl)))
		if isTick {
			b.WriteString(axisStyle.Render("┤"))
		} else {
			b.WriteString(axisStyle.Render("│"))
		}
		b.WriteString(renderCells(g.cells[row], spaceStyle))
		b.WriteString("\n")
	}

	b.WriteString(axisStyle.Render(strings.Repeat(" ", yLabelW)))
	b.WriteString(axisStyle.Render("└"))
	b.WriteString(axisStyle.Render(strings.Repeat("─", chartW)))

	if len(labels) > 0 {
		b.WriteString("\n")
		b.WriteString(spaceStyle.Render(strings.Repeat(" ", yLabelW+1)))
		b.WriteString(axisStyle.Render(placeLabels(labels, chartW, xCol)))
	}

	return b.String()
}

// ChartLegend renders a one-line key for the given series.
func ChartLegend(series []LineSeries) string {
	t := theme.Active
	spaceStyle := lipgloss.NewStyle().Background(t.Surface)
	nameStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)

	var parts []string
	for _, s := range series {
		glyph := "●─"
		if s.Dashed {
			glyph = "●╌"
		}
		parts = append(parts,
			lipgloss.NewStyle().Foreground(s.Color).Background(t.Surface).Render(glyph)+
				spaceStyle.Render(" ")+
				nameStyle.Render(s.Name))
	}
	return strings.Join(parts, spaceStyle.Render("   "))
}

// drawSegment connects two plotted points with horizontal runs and
// vertical fills where the line climbs or drops more than one row.
func drawSegment(g *grid, c1, r1, c2, r2 int, hRune, vRune rune, color lipgloss.Color) {
	if c2 <= c1 {
		fillVertical(g, c1, r1, r2, vRune, color)
		return
	}
	prev := r1
	for c := c1 + 1; c <= c2; c++ {
		frac := float64(c-c1) / float64(c2-c1)
		r := int(math.Round(float64(r1) + frac*float64(r2-r1)))
		if c < c2 {
			g.set(c, r, hRune, cellLine, color)
		}
		fillVertical(g, c, prev, r, vRune, color)
		prev = r
	}
}

// fillVertical draws the rows strictly between from and to in column col.
func fillVertical(g *grid, col, from, to int, vRune rune, color lipgloss.Color) {
	if from > to {
		from, to = to, from
	}
	for r := from + 1; r < to; r++ {
		g.set(col, r, vRune, cellLine, color)
	}
}

// renderCells styles a row, grouping runs of the same color.
func renderCells(cells []cell, space lipgloss.Style) string {
	var b strings.Builder
	var run strings.Builder
	var runColor lipgloss.Color
	runEmpty := true

	flush := func() {
		if run.Len() == 0 {
			return
		}
		if runEmpty {
			b.WriteString(space.Render(run.String()))
		} else {
			b.WriteString(space.Foreground(runColor).Render(run.String()))
		}
		run.Reset()
	}

	for i, c := range cells {
		empty := c.kind == cellEmpty
		if i == 0 || empty != runEmpty || (!empty && c.color != runColor) {
			flush()
			runEmpty = empty
			runColor = c.color
		}
		if empty {
			run.WriteByte(' ')
		} else {
			run.WriteRune(c.r)
		}
	}
	flush()
	return b.String()
}

// placeLabels lays out x labels under their columns without overlap,
// always keeping the final label.
func placeLabels(labels []string, width int, xCol func(int) int) string {
	buf := []rune(strings.Repeat(" ", width))
	n := len(labels)

	write := func(pos int, lbl string) int {
		rs := []rune(lbl)
		if pos+len(rs) > width {
			pos = width - len(rs)
		}
		if pos < 0 {
			return -1
		}
		copy(buf[pos:], rs)
		return pos + len(rs)
	}

	lastEnd := -1
	lastLbl := []rune(labels[n-1])
	lastPos := xCol(n-1) - len(lastLbl)/2
	if lastPos+len(lastLbl) > width {
		lastPos = width - len(lastLbl)
	}

	for i := 0; i < n-1; i++ {
		lbl := labels[i]
		pos := xCol(i) - len([]rune(lbl))/2
		if pos < 0 {
			pos = 0
		}
		end := pos + len([]rune(lbl))
		if pos <= lastEnd || (n > 1 && end >= lastPos) {
			continue
		}
		lastEnd = write(pos, lbl)
	}
	if lastPos > lastEnd {
		write(lastPos, labels[n-1])
	}

	return strings.TrimRight(string(buf), " ")
}

// valueRange returns the min and max over every non-nil value.
func valueRange(series []LineSeries) (lo, hi float64, ok bool) {
	for _, s := range series {
		for _, v := range s.Values {
			if v == nil || math.IsNaN(*v) || math.IsInf(*v, 0) {
				continue
			}
			if !ok {
				lo, hi, ok = *v, *v, true
				continue
			}
			lo = math.Min(lo, *v)
			hi = math.Max(hi, *v)
		}
	}
	return lo, hi, ok
}

// chartTickStep computes a nice tick interval targeting ~5 ticks.
func chartTickStep(span float64) float64 {
	if span <= 0 {
		return 1
	}
	rough := span / 5
	exp := math.Floor(math.Log10(rough))
	base := math.Pow(10, exp)
	frac := rough / base

	switch {
	case frac < 1.5:
		return base
	case frac < 3.5:
		return 2 * base
	default:
		return 5 * base
	}
}
