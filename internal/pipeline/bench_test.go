package pipeline

import (
	"fmt"
	"testing"
	"time"

	"github.com/theirongolddev/housedash/internal/model"
)

func benchLocations(n int) []model.Location {
	locs := make([]model.Location, n)
	for i := range locs {
		region := fmt.Sprintf("Region %d", i)
		if i%10 == 9 {
			// repeat the previous region
			region = fmt.Sprintf("Region %d", i-1)
		}
		locs[i] = model.Location{RegionName: region, StateName: "ST"}
	}
	return locs
}

func benchDataset(months int) *model.Dataset {
	d := &model.Dataset{Location: "Bench"}
	start := time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < months; i++ {
		d.PastData = append(d.PastData, model.PricePoint{Date: start.AddDate(0, i, 0), Price: 200000 + float64(i*250)})
	}
	for i := 0; i < 12; i++ {
		d.ForecastedPrices = append(d.ForecastedPrices, model.ForecastPoint{Date: start.AddDate(0, months+i, 0), PredictedPrice: 300000})
	}
	return d
}

func BenchmarkBuildCatalog(b *testing.B) {
	locs := benchLocations(20000)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = BuildCatalog(locs)
	}
}

func BenchmarkFilterCatalog(b *testing.B) {
	entries := BuildCatalog(benchLocations(20000))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = FilterCatalog(entries, "on 19")
	}
}

func BenchmarkDeriveStats(b *testing.B) {
	d := benchDataset(300)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = DeriveStats(d)
	}
}

func BenchmarkCombineSeries(b *testing.B) {
	d := benchDataset(300)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = CombineSeries(d.PastData, d.ForecastedPrices)
	}
}
