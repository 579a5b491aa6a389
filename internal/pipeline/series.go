package pipeline

import (
	"time"

	"github.com/theirongolddev/housedash/internal/cli"
	"github.com/theirongolddev/housedash/internal/model"
)

// SeriesPoint is one point of a single-series chart.
type SeriesPoint struct {
	Date  time.Time `json:"date"`
	Label string    `json:"label"`
	Value float64   `json:"value"`
}

// CombinedPoint is one point of the combined historical+forecast timeline.
// Exactly one of Historical and Predicted is set; the other encodes as null.
type CombinedPoint struct {
	Date       time.Time `json:"date"`
	Label      string    `json:"label"`
	Historical *float64  `json:"historicalPrice"`
	Predicted  *float64  `json:"predictedPrice"`
}

// HistoricalSeries converts past prices to chart points.
func HistoricalSeries(past []model.PricePoint) []SeriesPoint {
	out := make([]SeriesPoint, len(past))
	for i, p := range past {
		out[i] = SeriesPoint{Date: p.Date, Label: cli.FormatDate(p.Date), Value: p.Price}
	}
	return out
}

// ForecastSeries converts predicted prices to chart points.
func ForecastSeries(forecast []model.ForecastPoint) []SeriesPoint {
	out := make([]SeriesPoint, len(forecast))
	for i, p := range forecast {
		out[i] = SeriesPoint{Date: p.Date, Label: cli.FormatDate(p.Date), Value: p.PredictedPrice}
	}
	return out
}

// CombineSeries places all historical points followed by all forecast
// points on one timeline. The series are concatenated, not interleaved,
// and no de-duplication of dates is attempted.
func CombineSeries(past []model.PricePoint, forecast []model.ForecastPoint) []CombinedPoint {
	out := make([]CombinedPoint, 0, len(past)+len(forecast))
	for _, p := range past {
		v := p.Price
		out = append(out, CombinedPoint{Date: p.Date, Label: cli.FormatDate(p.Date), Historical: &v})
	}
	for _, p := range forecast {
		v := p.PredictedPrice
		out = append(out, CombinedPoint{Date: p.Date, Label: cli.FormatDate(p.Date), Predicted: &v})
	}
	return out
}

// SplitCombined returns the historical and predicted columns of a combined
// timeline as parallel slices. Missing values stay nil.
func SplitCombined(points []CombinedPoint) (labels []string, historical, predicted []*float64) {
	labels = make([]string, len(points))
	historical = make([]*float64, len(points))
	predicted = make([]*float64, len(points))
	for i, p := range points {
		labels[i] = p.Label
		historical[i] = p.Historical
		predicted[i] = p.Predicted
	}
	return labels, historical, predicted
}
