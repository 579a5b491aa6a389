package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL+"/api", WithTimeout(5*time.Second))
}

func TestLocations(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/locations", r.URL.Path)
		_, _ = w.Write([]byte(`{"locations":[{"RegionName":"Austin","StateName":"TX"},{"RegionName":"Boise","StateName":"ID"}],"count":2}`))
	})

	locs, err := c.Locations(context.Background())
	require.NoError(t, err)
	require.Len(t, locs, 2)
	assert.Equal(t, "Austin", locs[0].RegionName)
	assert.Equal(t, "Boise, ID", locs[1].Display())
}

func TestLocations_NotArray(t *testing.T) {
	for _, body := range []string{`{"locations":{"a":1}}`, `{"count":0}`, `{"locations":null}`, `not json`} {
		c := newTestServer(t, func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(body))
		})
		_, err := c.Locations(context.Background())
		assert.ErrorIs(t, err, ErrMalformed, "body %s", body)
	}
}

func TestHousingData(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/housing_data", r.URL.Path)
		assert.Equal(t, "St. Louis", r.URL.Query().Get("location"))
		_, _ = w.Write([]byte(`{
			"location": "St. Louis",
			"past_data": [{"Date":"2024-01-31","Price":300000},{"Date":"2024-02-29T00:00:00","Price":310000}],
			"forecasted_prices": [{"Date":"Sun, 31 Mar 2024 00:00:00 GMT","PredictedPrice":320000}]
		}`))
	})

	d, err := c.HousingData(context.Background(), "St. Louis")
	require.NoError(t, err)
	assert.Equal(t, "St. Louis", d.Location)
	require.Len(t, d.PastData, 2)
	require.Len(t, d.ForecastedPrices, 1)
	assert.Equal(t, time.February, d.PastData[1].Date.Month())
	assert.Equal(t, 310000.0, d.PastData[1].Price)
	assert.Equal(t, time.March, d.ForecastedPrices[0].Date.Month())
	assert.Equal(t, 320000.0, d.ForecastedPrices[0].PredictedPrice)
}

func TestHousingData_ServerError(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":"No historical data found for Nowhere"}`))
	})

	_, err := c.HousingData(context.Background(), "Nowhere")
	var se *StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusNotFound, se.Status)
	assert.Equal(t, "No historical data found for Nowhere", se.Message)
}

func TestHousingData_ErrorWithoutMessage(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte(`<html>bad gateway</html>`))
	})

	_, err := c.HousingData(context.Background(), "Austin")
	var se *StatusError
	require.True(t, errors.As(err, &se))
	assert.Empty(t, se.Message)
}

func TestHousingData_EmptySeries(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"location":"Austin","past_data":[],"forecasted_prices":[{"Date":"2024-01-31","PredictedPrice":1}]}`))
	})

	_, err := c.HousingData(context.Background(), "Austin")
	assert.ErrorIs(t, err, ErrEmptySeries)
}

func TestHousingData_BadDate(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"past_data":[{"Date":"yesterday","Price":1}],"forecasted_prices":[{"Date":"2024-01-31","PredictedPrice":1}]}`))
	})

	_, err := c.HousingData(context.Background(), "Austin")
	assert.ErrorIs(t, err, ErrMalformed)
}

type failingDoer struct{ calls int }

func (f *failingDoer) Do(*http.Request) (*http.Response, error) {
	f.calls++
	return nil, errors.New("connection refused")
}

func TestNoRetryOnTransportFailure(t *testing.T) {
	doer := &failingDoer{}
	c := NewClient("http://example.invalid/api", WithHTTPClient(doer))

	_, err := c.Locations(context.Background())
	require.Error(t, err)
	assert.Equal(t, 1, doer.calls)
}

func TestNewClient_DefaultsAndTrim(t *testing.T) {
	assert.Equal(t, DefaultBaseURL, NewClient("").BaseURL())
	assert.Equal(t, "http://x/api", NewClient(" http://x/api/ ").BaseURL())
}
