package components

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/theirongolddev/housedash/internal/model"
	"github.com/theirongolddev/housedash/internal/tui/theme"
)

func init() {
	// Force TrueColor output so ANSI codes are generated in tests
	lipgloss.SetColorProfile(termenv.TrueColor)
}

func TestCardRowBackgroundFill(t *testing.T) {
	theme.SetActive("flexoki-dark")

	shortCard := ContentCard("Short", "Content", 22)
	tallCard := ContentCard("Tall", "Line 1\nLine 2\nLine 3\nLine 4\nLine 5", 22)

	shortLines := len(strings.Split(shortCard, "\n"))
	tallLines := len(strings.Split(tallCard, "\n"))
	if shortLines >= tallLines {
		t.Fatal("test setup error: short card should be shorter than tall card")
	}

	joined := CardRow([]string{tallCard, shortCard})
	lines := strings.Split(joined, "\n")
	if len(lines) != tallLines {
		t.Errorf("joined height should match tallest card: got %d, want %d", len(lines), tallLines)
	}

	for i := shortLines; i < len(lines); i++ {
		if !strings.Contains(lines[i], "\x1b[") {
			t.Errorf("line %d has no ANSI codes - padding would render unstyled", i)
		}
	}
}

func TestCardRowWidthConsistency(t *testing.T) {
	theme.SetActive("flexoki-dark")

	shortCard := ContentCard("Short", "A", 30)
	tallCard := ContentCard("Tall", "A\nB\nC\nD\nE\nF", 20)

	joined := CardRow([]string{tallCard, shortCard})
	lines := strings.Split(joined, "\n")

	want := lipgloss.Width(lines[0])
	for i, line := range lines {
		if w := lipgloss.Width(line); w != want {
			t.Errorf("line %d width = %d, want %d", i, w, want)
		}
	}
}

func TestMetricCardRowWidth(t *testing.T) {
	theme.SetActive("flexoki-dark")

	row := MetricCardRow([]Metric{
		{Label: "Current Price", Value: "$310,000"},
		{Label: "Predicted Price", Value: "$341,000", Delta: "+10.0%", Trend: model.TrendUp},
		{Label: "Average Price", Value: "$310,000"},
		{Label: "Price Range", Value: "$300,000 - $320,000"},
	}, 100)

	for i, line := range strings.Split(row, "\n") {
		if w := lipgloss.Width(line); w != 100 {
			t.Errorf("line %d width = %d, want 100", i, w)
		}
	}
	if !strings.Contains(row, "▲ +10.0%") {
		t.Error("expected up-trend change line")
	}
}

func TestLayoutRow(t *testing.T) {
	got := LayoutRow(10, 3)
	if got[0] != 4 || got[1] != 3 || got[2] != 3 {
		t.Fatalf("LayoutRow(10, 3) = %v, want [4 3 3]", got)
	}
	if LayoutRow(10, 0) != nil {
		t.Fatal("LayoutRow with n=0 should be nil")
	}
}

func TestRangePosition(t *testing.T) {
	cases := []struct {
		v, lo, hi, want float64
	}{
		{310000, 300000, 320000, 0.5},
		{300000, 300000, 320000, 0},
		{400000, 300000, 320000, 1},
		{5, 5, 5, 1},
	}
	for _, c := range cases {
		if got := RangePosition(c.v, c.lo, c.hi); got != c.want {
			t.Errorf("RangePosition(%v, %v, %v) = %v, want %v", c.v, c.lo, c.hi, got, c.want)
		}
	}
}
