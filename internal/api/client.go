// Package api provides a client for the housing price API.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/theirongolddev/housedash/internal/model"
)

const (
	// DefaultBaseURL points at the dev proxy's /api prefix.
	DefaultBaseURL = "http://localhost:3000/api"

	defaultTimeout = 30 * time.Second
	maxBodySize    = 8 << 20 // 8 MB
)

var (
	// ErrMalformed indicates a response body that could not be interpreted.
	ErrMalformed = errors.New("api: malformed response")
	// ErrEmptySeries indicates a dataset with no historical or forecast points.
	ErrEmptySeries = errors.New("api: dataset has an empty series")
)

// StatusError is returned for non-2xx responses.
// Message holds the server's "error" field when it sent one.
type StatusError struct {
	Status  int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api: status %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("api: unexpected status %d", e.Status)
}

// HTTPClient is the subset of *http.Client used by Client.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client fetches the location catalog and housing datasets.
type Client struct {
	baseURL string
	timeout time.Duration
	http    HTTPClient
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(h HTTPClient) Option {
	return func(c *Client) { c.http = h }
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// NewClient creates a client rooted at baseURL (e.g. "http://host/api").
// An empty baseURL falls back to DefaultBaseURL.
func NewClient(baseURL string, opts ...Option) *Client {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		baseURL: baseURL,
		timeout: defaultTimeout,
		http:    &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the API root the client talks to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Locations fetches the raw location catalog.
func (c *Client) Locations(ctx context.Context) ([]model.Location, error) {
	body, err := c.get(ctx, "/locations", nil)
	if err != nil {
		return nil, err
	}

	var raw LocationsResponse
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("%w: parsing locations: %v", ErrMalformed, err)
	}

	trimmed := bytes.TrimSpace(raw.Locations)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, fmt.Errorf("%w: locations is not an array", ErrMalformed)
	}

	var locs []model.Location
	if err := json.Unmarshal(trimmed, &locs); err != nil {
		return nil, fmt.Errorf("%w: parsing locations: %v", ErrMalformed, err)
	}
	return locs, nil
}

// HousingData fetches the historical and forecast series for one location.
func (c *Client) HousingData(ctx context.Context, location string) (*model.Dataset, error) {
	q := url.Values{}
	q.Set("location", location)

	body, err := c.get(ctx, "/housing_data", q)
	if err != nil {
		return nil, err
	}

	var raw HousingResponse
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("%w: parsing housing data: %v", ErrMalformed, err)
	}
	return toDataset(raw, location)
}

// toDataset validates and converts the wire payload.
func toDataset(raw HousingResponse, requested string) (*model.Dataset, error) {
	if len(raw.PastData) == 0 || len(raw.ForecastedPrices) == 0 {
		return nil, ErrEmptySeries
	}

	d := &model.Dataset{
		Location:         raw.Location,
		PastData:         make([]model.PricePoint, len(raw.PastData)),
		ForecastedPrices: make([]model.ForecastPoint, len(raw.ForecastedPrices)),
	}
	if d.Location == "" {
		d.Location = requested
	}

	for i, p := range raw.PastData {
		t, err := model.ParseDate(p.Date)
		if err != nil {
			return nil, fmt.Errorf("%w: past_data[%d] date %q", ErrMalformed, i, p.Date)
		}
		d.PastData[i] = model.PricePoint{Date: t, Price: p.Price}
	}
	for i, p := range raw.ForecastedPrices {
		t, err := model.ParseDate(p.Date)
		if err != nil {
			return nil, fmt.Errorf("%w: forecasted_prices[%d] date %q", ErrMalformed, i, p.Date)
		}
		d.ForecastedPrices[i] = model.ForecastPoint{Date: t, PredictedPrice: p.PredictedPrice}
	}
	return d, nil
}

// get performs a GET request and returns the response body.
func (c *Client) get(ctx context.Context, path string, query url.Values) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("api: creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "github.com/theirongolddev/housedash/1.0")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("api: request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("api: reading response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		se := &StatusError{Status: resp.StatusCode}
		var er errorResponse
		if json.Unmarshal(body, &er) == nil {
			se.Message = er.Error
		}
		return nil, se
	}
	return body, nil
}
