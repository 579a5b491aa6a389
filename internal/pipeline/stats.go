package pipeline

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/theirongolddev/housedash/internal/model"
)

// DeriveStats computes the summary figures for a dataset.
// Returns nil when the dataset is nil or either series is empty.
//
// When the current price is zero the percent change is undefined:
// PriceChangePercent is NaN and ChangeDefined is false.
func DeriveStats(d *model.Dataset) *model.DerivedStats {
	if d.Empty() {
		return nil
	}

	prices := make([]float64, len(d.PastData))
	for i, p := range d.PastData {
		prices[i] = p.Price
	}

	s := &model.DerivedStats{
		CurrentPrice:   prices[len(prices)-1],
		PredictedPrice: d.ForecastedPrices[len(d.ForecastedPrices)-1].PredictedPrice,
		AveragePrice:   stat.Mean(prices, nil),
		MaxPrice:       floats.Max(prices),
		MinPrice:       floats.Min(prices),
	}

	s.PriceChangePercent, s.ChangeDefined = PercentChange(s.CurrentPrice, s.PredictedPrice)
	return s
}

// PercentChange returns (to - from) / from * 100. A zero base yields NaN
// and false.
func PercentChange(from, to float64) (float64, bool) {
	if from == 0 {
		return math.NaN(), false
	}
	return (to - from) / from * 100, true
}
