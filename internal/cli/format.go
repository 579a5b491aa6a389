// Package cli provides formatting and rendering utilities for terminal output.
package cli

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/theirongolddev/housedash/internal/model"
)

// NotAvailable is shown wherever a figure cannot be computed.
const NotAvailable = "n/a"

// FormatPrice formats a USD price rounded to whole dollars.
// e.g., 350000 -> "$350,000", 1234.5 -> "$1,235"
func FormatPrice(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return NotAvailable
	}
	d := decimal.NewFromFloat(v).Round(0)
	if d.IsNegative() {
		return "-$" + FormatNumber(d.Neg().IntPart())
	}
	return "$" + FormatNumber(d.IntPart())
}

// FormatPriceRange formats a min/max pair as "$min - $max".
func FormatPriceRange(lo, hi float64) string {
	return FormatPrice(lo) + " - " + FormatPrice(hi)
}

// FormatDate formats a date as an abbreviated month and two-digit year.
// e.g., 2024-03-15 -> "Mar '24"
func FormatDate(t time.Time) string {
	return t.Format("Jan '06")
}

// FormatDateString parses s with model.ParseDate and formats it with
// FormatDate. Unparseable input is returned as-is.
func FormatDateString(s string) string {
	t, err := model.ParseDate(s)
	if err != nil {
		return s
	}
	return FormatDate(t)
}

// FormatChange formats a percent change with an explicit sign for gains.
// e.g., 10 -> "+10.0%", -2.25 -> "-2.3%"
func FormatChange(pct float64, defined bool) string {
	if !defined || math.IsNaN(pct) || math.IsInf(pct, 0) {
		return NotAvailable
	}
	if pct > 0 {
		return fmt.Sprintf("+%.1f%%", pct)
	}
	return fmt.Sprintf("%.1f%%", pct)
}

// FormatNumber adds comma separators to an integer.
// e.g., 1234567 -> "1,234,567"
func FormatNumber(n int64) string {
	if n < 0 {
		return "-" + FormatNumber(-n)
	}

	s := strconv.FormatInt(n, 10)
	if len(s) <= 3 {
		return s
	}

	var result strings.Builder
	remainder := len(s) % 3
	if remainder > 0 {
		result.WriteString(s[:remainder])
	}
	for i := remainder; i < len(s); i += 3 {
		if result.Len() > 0 {
			result.WriteByte(',')
		}
		result.WriteString(s[i : i+3])
	}
	return result.String()
}

// FormatCompactPrice formats a price with a K/M suffix for axis labels.
// e.g., 350000 -> "$350K", 1250000 -> "$1.2M"
func FormatCompactPrice(v float64) string {
	abs := math.Abs(v)
	switch {
	case abs >= 1_000_000:
		return fmt.Sprintf("$%.1fM", v/1_000_000)
	case abs >= 10_000:
		return fmt.Sprintf("$%.0fK", v/1_000)
	case abs >= 1_000:
		return fmt.Sprintf("$%.1fK", v/1_000)
	default:
		return fmt.Sprintf("$%.0f", v)
	}
}
