package pipeline

import "github.com/theirongolddev/housedash/internal/model"

// StatsView is the JSON form of DerivedStats. An undefined percent change
// encodes as null instead of NaN.
type StatsView struct {
	CurrentPrice       float64  `json:"currentPrice"`
	PredictedPrice     float64  `json:"predictedPrice"`
	PriceChangePercent *float64 `json:"priceChangePercent"`
	AveragePrice       float64  `json:"averagePrice"`
	MaxPrice           float64  `json:"maxPrice"`
	MinPrice           float64  `json:"minPrice"`
}

// Report bundles a dataset's stats and combined series for export.
type Report struct {
	Location string          `json:"location"`
	Stats    *StatsView      `json:"stats"`
	Series   []CombinedPoint `json:"series"`
}

// BuildReport derives stats and the combined timeline for d.
// Stats is nil when either series is empty.
func BuildReport(d *model.Dataset) Report {
	if d == nil {
		return Report{Series: []CombinedPoint{}}
	}
	r := Report{
		Location: d.Location,
		Series:   CombineSeries(d.PastData, d.ForecastedPrices),
	}
	if s := DeriveStats(d); s != nil {
		v := &StatsView{
			CurrentPrice:   s.CurrentPrice,
			PredictedPrice: s.PredictedPrice,
			AveragePrice:   s.AveragePrice,
			MaxPrice:       s.MaxPrice,
			MinPrice:       s.MinPrice,
		}
		if s.ChangeDefined {
			pct := s.PriceChangePercent
			v.PriceChangePercent = &pct
		}
		r.Stats = v
	}
	return r
}
