package tui

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theirongolddev/housedash/internal/api"
	"github.com/theirongolddev/housedash/internal/model"
	"github.com/theirongolddev/housedash/internal/pipeline"
)

func init() {
	lipgloss.SetColorProfile(termenv.TrueColor)
}

type stubSource struct {
	mu      sync.Mutex
	locs    []model.Location
	locErr  error
	fail    map[string]error
	fetched []string
}

func (s *stubSource) Locations(context.Context) ([]model.Location, error) {
	return s.locs, s.locErr
}

func (s *stubSource) HousingData(_ context.Context, loc string) (*model.Dataset, error) {
	s.mu.Lock()
	s.fetched = append(s.fetched, loc)
	s.mu.Unlock()
	if err := s.fail[loc]; err != nil {
		return nil, err
	}
	return datasetFor(loc, 300000), nil
}

func month(y int, m time.Month) time.Time {
	return time.Date(y, m, 1, 0, 0, 0, 0, time.UTC)
}

func datasetFor(loc string, base float64) *model.Dataset {
	return &model.Dataset{
		Location: loc,
		PastData: []model.PricePoint{
			{Date: month(2024, time.January), Price: base},
			{Date: month(2024, time.February), Price: base + 20000},
			{Date: month(2024, time.March), Price: base + 10000},
		},
		ForecastedPrices: []model.ForecastPoint{
			{Date: month(2024, time.April), PredictedPrice: base + 35000},
			{Date: month(2024, time.May), PredictedPrice: base + 41000},
		},
	}
}

func newTestApp() App {
	a := NewApp(Options{Source: &stubSource{}, Endpoint: "http://test/api", Log: zerolog.Nop()})
	a.width, a.height = 120, 40
	return a
}

func update(t *testing.T, a App, msg tea.Msg) (App, tea.Cmd) {
	t.Helper()
	m, cmd := a.Update(msg)
	next, ok := m.(App)
	require.True(t, ok)
	return next, cmd
}

func keys(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestStaleResponseIsDiscarded(t *testing.T) {
	a := newTestApp()

	a, _ = update(t, a, LocationChangedMsg{Value: "Austin"})
	austinSeq := a.seq
	a, _ = update(t, a, LocationChangedMsg{Value: "Boston"})
	bostonSeq := a.seq
	require.NotEqual(t, austinSeq, bostonSeq)

	// Boston resolves first, then the superseded Austin request.
	a, _ = update(t, a, DatasetMsg{Key: "Boston", Seq: bostonSeq, Dataset: datasetFor("Boston", 500000)})
	a, _ = update(t, a, DatasetMsg{Key: "Austin", Seq: austinSeq, Dataset: datasetFor("Austin", 300000)})

	require.NotNil(t, a.dataset)
	assert.Equal(t, "Boston", a.dataset.Location)
	assert.Equal(t, "Boston", a.selected)
	assert.False(t, a.loading)
	require.NotNil(t, a.stats)
	assert.Equal(t, 510000.0, a.stats.CurrentPrice)
}

func TestStaleResponseWhileLoadingKeepsLoading(t *testing.T) {
	a := newTestApp()

	a, _ = update(t, a, LocationChangedMsg{Value: "Austin"})
	austinSeq := a.seq
	a, _ = update(t, a, LocationChangedMsg{Value: "Boston"})

	a, _ = update(t, a, DatasetMsg{Key: "Austin", Seq: austinSeq, Dataset: datasetFor("Austin", 300000)})
	assert.True(t, a.loading)
	assert.Nil(t, a.dataset)
}

func TestRetryOfSameLocationDiscardsEarlierGeneration(t *testing.T) {
	a := newTestApp()

	a, _ = update(t, a, LocationChangedMsg{Value: "Austin"})
	first := a.seq
	a, _ = update(t, a, keys("r"))
	require.Greater(t, a.seq, first)

	a, _ = update(t, a, DatasetMsg{Key: "Austin", Seq: first, Err: errors.New("boom")})
	assert.Empty(t, a.errMsg)
	assert.True(t, a.loading)
}

func TestDatasetErrorShowsServerMessageAndClearsData(t *testing.T) {
	a := newTestApp()

	a, _ = update(t, a, LocationChangedMsg{Value: "Austin"})
	a, _ = update(t, a, DatasetMsg{Key: "Austin", Seq: a.seq, Dataset: datasetFor("Austin", 300000)})
	require.NotNil(t, a.dataset)

	a, _ = update(t, a, keys("r"))
	a, _ = update(t, a, DatasetMsg{
		Key: "Austin",
		Seq: a.seq,
		Err: &api.StatusError{Status: 404, Message: "Location not found"},
	})

	assert.Equal(t, "Location not found", a.errMsg)
	assert.Nil(t, a.dataset)
	assert.Nil(t, a.stats)
	assert.False(t, a.loading)
	assert.Contains(t, ansi.Strip(a.View()), "Location not found")
}

func TestDatasetErrorFallsBackToGenericMessage(t *testing.T) {
	a := newTestApp()

	a, _ = update(t, a, LocationChangedMsg{Value: "Austin"})
	a, _ = update(t, a, DatasetMsg{Key: "Austin", Seq: a.seq, Err: errors.New("dial tcp: refused")})

	assert.Equal(t, pipeline.GenericFetchError, a.errMsg)
}

func TestReselectingCurrentLocationIsNoop(t *testing.T) {
	a := newTestApp()

	a, _ = update(t, a, LocationChangedMsg{Value: "Austin"})
	seq := a.seq
	a, cmd := update(t, a, LocationChangedMsg{Value: "Austin"})
	assert.Nil(t, cmd)
	assert.Equal(t, seq, a.seq)
}

func TestFetchDatasetCmdTagsResult(t *testing.T) {
	src := &stubSource{fail: map[string]error{"Nowhere": errors.New("nope")}}

	msg := fetchDatasetCmd(src, "Austin", 7, time.Second)()
	dm, ok := msg.(DatasetMsg)
	require.True(t, ok)
	assert.Equal(t, "Austin", dm.Key)
	assert.Equal(t, uint64(7), dm.Seq)
	require.NoError(t, dm.Err)
	assert.Equal(t, "Austin", dm.Dataset.Location)

	dm = fetchDatasetCmd(src, "Nowhere", 8, time.Second)().(DatasetMsg)
	assert.Error(t, dm.Err)
	assert.Nil(t, dm.Dataset)
}

func TestLoadCatalogCmdDegradesToEmpty(t *testing.T) {
	src := &stubSource{locErr: errors.New("offline")}

	msg := loadCatalogCmd(src, time.Second, zerolog.Nop())()
	cm, ok := msg.(CatalogLoadedMsg)
	require.True(t, ok)
	assert.NotNil(t, cm.Entries)
	assert.Empty(t, cm.Entries)
}

func TestInitialLocationStartsLoading(t *testing.T) {
	a := NewApp(Options{Source: &stubSource{}, Location: " Austin "})
	assert.Equal(t, "Austin", a.selected)
	assert.True(t, a.loading)
	assert.Equal(t, uint64(1), a.seq)
}

func TestEmptyStateView(t *testing.T) {
	a := newTestApp()
	out := ansi.Strip(a.View())
	assert.Contains(t, out, "No location selected")
	assert.Contains(t, out, "Overview")
}

func TestLoadingView(t *testing.T) {
	a := newTestApp()
	a, _ = update(t, a, LocationChangedMsg{Value: "Austin"})
	assert.Contains(t, ansi.Strip(a.View()), "Loading housing data...")
}

func TestOverviewShowsStatsAndTooltip(t *testing.T) {
	a := newTestApp()
	a, _ = update(t, a, LocationChangedMsg{Value: "Austin"})
	a, _ = update(t, a, DatasetMsg{Key: "Austin", Seq: a.seq, Dataset: datasetFor("Austin", 300000)})

	out := ansi.Strip(a.View())
	for _, want := range []string{
		"Current Price", "$310,000",
		"Predicted Price", "$341,000", "+10.0%",
		"Average Price",
		"Price Range",
		"Historical Price",
		"Date: Mar '24",
	} {
		assert.Contains(t, out, want)
	}

	// Cursor walks onto the forecast half of the combined timeline.
	a, _ = update(t, a, tea.KeyMsg{Type: tea.KeyRight})
	assert.Contains(t, ansi.Strip(a.View()), "Date: Apr '24  Predicted Price: $335,000")
}

func TestZeroCurrentPriceRendersNotAvailable(t *testing.T) {
	a := newTestApp()
	d := datasetFor("Ghost Town", 300000)
	d.PastData[len(d.PastData)-1].Price = 0

	a, _ = update(t, a, LocationChangedMsg{Value: "Ghost Town"})
	a, _ = update(t, a, DatasetMsg{Key: "Ghost Town", Seq: a.seq, Dataset: d})

	require.NotNil(t, a.stats)
	assert.False(t, a.stats.ChangeDefined)
	assert.Contains(t, ansi.Strip(a.View()), "n/a")
}

func TestTabKeysAndChartTabsRender(t *testing.T) {
	a := newTestApp()
	a, _ = update(t, a, LocationChangedMsg{Value: "Austin"})
	a, _ = update(t, a, DatasetMsg{Key: "Austin", Seq: a.seq, Dataset: datasetFor("Austin", 300000)})

	a, _ = update(t, a, keys("h"))
	assert.Equal(t, tabHistory, a.activeTab)
	assert.Contains(t, ansi.Strip(a.View()), "Price History (Jan '24 - Mar '24)")

	a, _ = update(t, a, keys("f"))
	assert.Equal(t, tabForecast, a.activeTab)
	assert.Contains(t, ansi.Strip(a.View()), "Price Forecast (Apr '24 - May '24)")

	a, _ = update(t, a, keys("d"))
	assert.Equal(t, tabData, a.activeTab)
	out := ansi.Strip(a.View())
	assert.Contains(t, out, "Data Points (3 historical, 2 forecast)")
	assert.Contains(t, out, "May '24")

	a, _ = update(t, a, keys("x"))
	assert.Equal(t, tabSettings, a.activeTab)
}

func TestChartCursorClamps(t *testing.T) {
	a := newTestApp()
	a, _ = update(t, a, LocationChangedMsg{Value: "Austin"})
	a, _ = update(t, a, DatasetMsg{Key: "Austin", Seq: a.seq, Dataset: datasetFor("Austin", 300000)})

	assert.Equal(t, 2, a.cursors[tabOverview])
	for i := 0; i < 10; i++ {
		a, _ = update(t, a, tea.KeyMsg{Type: tea.KeyRight})
	}
	assert.Equal(t, 4, a.cursors[tabOverview])
	for i := 0; i < 10; i++ {
		a, _ = update(t, a, tea.KeyMsg{Type: tea.KeyLeft})
	}
	assert.Equal(t, 0, a.cursors[tabOverview])
}

func TestHelpToggle(t *testing.T) {
	a := newTestApp()
	a, _ = update(t, a, keys("?"))
	require.True(t, a.showHelp)
	assert.True(t, strings.Contains(ansi.Strip(a.View()), "Keyboard Shortcuts"))

	a, _ = update(t, a, keys("j"))
	assert.False(t, a.showHelp)
}

func TestDataScrollClampsToLastPage(t *testing.T) {
	a := newTestApp()
	a.height = 12 // three table rows visible
	a, _ = update(t, a, LocationChangedMsg{Value: "Austin"})
	a, _ = update(t, a, DatasetMsg{Key: "Austin", Seq: a.seq, Dataset: datasetFor("Austin", 300000)})
	a, _ = update(t, a, keys("d"))

	a, _ = update(t, a, keys("G"))
	assert.Equal(t, 2, a.dataRow)
	assert.Contains(t, ansi.Strip(a.View()), "3-5 of 5")

	for i := 0; i < 4; i++ {
		a, _ = update(t, a, keys("j"))
	}
	assert.Equal(t, 2, a.dataRow)

	a, _ = update(t, a, tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, 1, a.dataRow)
	assert.Contains(t, ansi.Strip(a.View()), "2-4 of 5")

	a, _ = update(t, a, keys("g"))
	assert.Equal(t, 0, a.dataRow)
	assert.Contains(t, ansi.Strip(a.View()), "1-3 of 5")
}
