package pipeline

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theirongolddev/housedash/internal/model"
)

func month(y int, m time.Month) time.Time {
	return time.Date(y, m, 1, 0, 0, 0, 0, time.UTC)
}

func sampleDataset() *model.Dataset {
	return &model.Dataset{
		Location: "Austin",
		PastData: []model.PricePoint{
			{Date: month(2024, time.January), Price: 300000},
			{Date: month(2024, time.February), Price: 320000},
			{Date: month(2024, time.March), Price: 310000},
		},
		ForecastedPrices: []model.ForecastPoint{
			{Date: month(2024, time.April), PredictedPrice: 335000},
			{Date: month(2024, time.May), PredictedPrice: 341000},
		},
	}
}

func TestDeriveStats(t *testing.T) {
	s := DeriveStats(sampleDataset())
	require.NotNil(t, s)

	assert.Equal(t, 310000.0, s.CurrentPrice)
	assert.Equal(t, 341000.0, s.PredictedPrice)
	assert.InDelta(t, 310000.0, s.AveragePrice, 1e-9)
	assert.Equal(t, 320000.0, s.MaxPrice)
	assert.Equal(t, 300000.0, s.MinPrice)
	assert.True(t, s.ChangeDefined)
	assert.InDelta(t, 10.0, s.PriceChangePercent, 1e-9)
	assert.Equal(t, model.TrendUp, s.Trend())
}

func TestDeriveStats_Bounds(t *testing.T) {
	s := DeriveStats(sampleDataset())
	require.NotNil(t, s)
	assert.LessOrEqual(t, s.MinPrice, s.AveragePrice)
	assert.LessOrEqual(t, s.AveragePrice, s.MaxPrice)
	assert.LessOrEqual(t, s.MinPrice, s.CurrentPrice)
	assert.LessOrEqual(t, s.CurrentPrice, s.MaxPrice)
}

func TestDeriveStats_Decline(t *testing.T) {
	d := sampleDataset()
	d.ForecastedPrices[1].PredictedPrice = 279000

	s := DeriveStats(d)
	require.NotNil(t, s)
	assert.InDelta(t, -10.0, s.PriceChangePercent, 1e-9)
	assert.Equal(t, model.TrendDown, s.Trend())
}

func TestDeriveStats_ZeroCurrentPrice(t *testing.T) {
	d := sampleDataset()
	d.PastData[2].Price = 0

	s := DeriveStats(d)
	require.NotNil(t, s)
	assert.False(t, s.ChangeDefined)
	assert.True(t, math.IsNaN(s.PriceChangePercent))
	assert.False(t, math.IsInf(s.PriceChangePercent, 0))
	assert.Equal(t, model.TrendNeutral, s.Trend())
	assert.Equal(t, 0.0, s.MinPrice)
}

func TestDeriveStats_SinglePoint(t *testing.T) {
	d := &model.Dataset{
		PastData:         []model.PricePoint{{Date: month(2024, time.January), Price: 250000}},
		ForecastedPrices: []model.ForecastPoint{{Date: month(2024, time.February), PredictedPrice: 250000}},
	}

	s := DeriveStats(d)
	require.NotNil(t, s)
	assert.Equal(t, 250000.0, s.AveragePrice)
	assert.Equal(t, s.MinPrice, s.MaxPrice)
	assert.Equal(t, 0.0, s.PriceChangePercent)
	assert.Equal(t, model.TrendDown, s.Trend())
}

func TestDeriveStats_NilOrEmpty(t *testing.T) {
	assert.Nil(t, DeriveStats(nil))
	assert.Nil(t, DeriveStats(&model.Dataset{}))

	d := sampleDataset()
	d.ForecastedPrices = nil
	assert.Nil(t, DeriveStats(d))
}

func TestPercentChange(t *testing.T) {
	pct, ok := PercentChange(200, 250)
	assert.True(t, ok)
	assert.InDelta(t, 25.0, pct, 1e-9)

	pct, ok = PercentChange(0, 250)
	assert.False(t, ok)
	assert.True(t, math.IsNaN(pct))
}
