package pipeline

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHistoricalAndForecastSeries(t *testing.T) {
	d := sampleDataset()

	hist := HistoricalSeries(d.PastData)
	require.Len(t, hist, 3)
	assert.Equal(t, "Jan '24", hist[0].Label)
	assert.Equal(t, 310000.0, hist[2].Value)

	fc := ForecastSeries(d.ForecastedPrices)
	require.Len(t, fc, 2)
	assert.Equal(t, "May '24", fc[1].Label)
	assert.Equal(t, 341000.0, fc[1].Value)
}

func TestCombineSeries(t *testing.T) {
	d := sampleDataset()

	got := CombineSeries(d.PastData, d.ForecastedPrices)
	require.Len(t, got, len(d.PastData)+len(d.ForecastedPrices))

	for i, p := range got {
		if i < len(d.PastData) {
			require.NotNil(t, p.Historical, "point %d", i)
			assert.Nil(t, p.Predicted, "point %d", i)
			assert.Equal(t, d.PastData[i].Price, *p.Historical)
			assert.Equal(t, d.PastData[i].Date, p.Date)
			continue
		}
		j := i - len(d.PastData)
		assert.Nil(t, p.Historical, "point %d", i)
		require.NotNil(t, p.Predicted, "point %d", i)
		assert.Equal(t, d.ForecastedPrices[j].PredictedPrice, *p.Predicted)
	}
}

// Overlapping dates are kept as two separate points.
func TestCombineSeries_NoDedup(t *testing.T) {
	d := sampleDataset()
	d.ForecastedPrices[0].Date = d.PastData[2].Date

	got := CombineSeries(d.PastData, d.ForecastedPrices)
	require.Len(t, got, 5)
	assert.Equal(t, got[2].Date, got[3].Date)
}

func TestCombinedPoint_JSONNulls(t *testing.T) {
	v := 1.5
	b, err := json.Marshal(CombinedPoint{Date: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), Label: "Mar '24", Historical: &v})
	require.NoError(t, err)
	assert.JSONEq(t, `{"date":"2024-03-01T00:00:00Z","label":"Mar '24","historicalPrice":1.5,"predictedPrice":null}`, string(b))
}

func TestSplitCombined(t *testing.T) {
	d := sampleDataset()
	labels, hist, pred := SplitCombined(CombineSeries(d.PastData, d.ForecastedPrices))

	assert.Equal(t, []string{"Jan '24", "Feb '24", "Mar '24", "Apr '24", "May '24"}, labels)
	assert.Nil(t, hist[3])
	assert.Nil(t, pred[0])
	assert.Equal(t, 335000.0, *pred[3])
}
