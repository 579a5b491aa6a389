package model

import "time"

// Location is one record of the upstream location catalog.
type Location struct {
	RegionName string `json:"RegionName"`
	StateName  string `json:"StateName"`
}

// Display returns the human-readable "Region, State" label.
func (l Location) Display() string {
	return l.RegionName + ", " + l.StateName
}

// PricePoint is a single observed (historical) price.
type PricePoint struct {
	Date  time.Time
	Price float64
}

// ForecastPoint is a single predicted price.
type ForecastPoint struct {
	Date           time.Time
	PredictedPrice float64
}

// Dataset is the historical and forecast series for one location.
// Both series are chronologically ordered as delivered by the server.
type Dataset struct {
	Location         string
	PastData         []PricePoint
	ForecastedPrices []ForecastPoint
}

// Empty reports whether either series has no points.
func (d *Dataset) Empty() bool {
	return d == nil || len(d.PastData) == 0 || len(d.ForecastedPrices) == 0
}

// DerivedStats holds the summary figures computed from a Dataset.
type DerivedStats struct {
	CurrentPrice   float64
	PredictedPrice float64
	AveragePrice   float64
	MaxPrice       float64
	MinPrice       float64

	// PriceChangePercent is NaN when CurrentPrice is zero.
	PriceChangePercent float64
	ChangeDefined      bool
}

// Trend classifies the direction of the forecast against the current price.
type Trend int

const (
	TrendNeutral Trend = iota
	TrendUp
	TrendDown
)

// Trend returns TrendUp for a positive change, TrendDown for zero or
// negative, and TrendNeutral when the change is undefined.
func (s DerivedStats) Trend() Trend {
	return TrendOf(s.PriceChangePercent, s.ChangeDefined)
}

// TrendOf classifies a percent change the same way DerivedStats.Trend does.
func TrendOf(pct float64, defined bool) Trend {
	switch {
	case !defined:
		return TrendNeutral
	case pct > 0:
		return TrendUp
	default:
		return TrendDown
	}
}

var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	time.RFC3339,
	time.RFC1123, // Flask's default datetime serialization
}

// ParseDate accepts the date formats the housing API is known to emit.
func ParseDate(s string) (time.Time, error) {
	var firstErr error
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return t, nil
		}
		if firstErr == nil {
			firstErr = err
		}
	}
	return time.Time{}, firstErr
}
