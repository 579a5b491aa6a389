package pipeline

import (
	"context"
	"errors"
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog"

	"github.com/theirongolddev/housedash/internal/api"
	"github.com/theirongolddev/housedash/internal/model"
)

// GenericFetchError is shown when a dataset fetch fails without a server message.
const GenericFetchError = "Failed to fetch housing data"

// CatalogSource supplies the raw location list.
type CatalogSource interface {
	Locations(ctx context.Context) ([]model.Location, error)
}

// DatasetSource supplies the housing dataset for one location.
type DatasetSource interface {
	HousingData(ctx context.Context, location string) (*model.Dataset, error)
}

// LoadCatalog fetches and deduplicates the location catalog.
// Failures are logged and degrade to an empty catalog; no retry is attempted.
func LoadCatalog(ctx context.Context, src CatalogSource, log zerolog.Logger) []CatalogEntry {
	locs, err := src.Locations(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("location catalog unavailable")
		return []CatalogEntry{}
	}
	entries := BuildCatalog(locs)
	log.Debug().Int("raw", len(locs)).Int("entries", len(entries)).Msg("location catalog loaded")
	return entries
}

// DatasetErrorMessage returns the user-facing text for a dataset fetch error:
// the server's error message when it sent one, otherwise GenericFetchError.
func DatasetErrorMessage(err error) string {
	var se *api.StatusError
	if errors.As(err, &se) && se.Message != "" {
		return se.Message
	}
	return GenericFetchError
}

// DatasetResult is the outcome of fetching one location.
type DatasetResult struct {
	Location string
	Dataset  *model.Dataset
	Stats    *model.DerivedStats
	Err      error
}

// ProgressFunc is called during LoadMany to report progress.
// current is the number of locations fetched so far, total is the total count.
type ProgressFunc func(current, total int)

// LoadMany fetches several locations with a bounded worker pool.
// Results keep the order of locations; per-location failures are recorded
// in DatasetResult.Err rather than aborting the batch.
func LoadMany(ctx context.Context, src DatasetSource, locations []string, progressFn ProgressFunc) []DatasetResult {
	results := make([]DatasetResult, len(locations))
	if len(locations) == 0 {
		return results
	}

	numWorkers := runtime.GOMAXPROCS(0)
	if numWorkers > 4 {
		numWorkers = 4
	}
	if numWorkers > len(locations) {
		numWorkers = len(locations)
	}

	work := make(chan int, len(locations))
	for i := range locations {
		work <- i
	}
	close(work)

	var wg sync.WaitGroup
	var processed atomic.Int64

	wg.Add(numWorkers)
	for w := 0; w < numWorkers; w++ {
		go func() {
			defer wg.Done()
			for idx := range work {
				loc := locations[idx]
				d, err := src.HousingData(ctx, loc)
				results[idx] = DatasetResult{Location: loc, Dataset: d, Err: err}
				if err == nil {
					results[idx].Stats = DeriveStats(d)
				}
				n := processed.Add(1)
				if progressFn != nil {
					progressFn(int(n), len(locations))
				}
			}
		}()
	}

	wg.Wait()
	return results
}
