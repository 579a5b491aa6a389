package api

import "encoding/json"

// LocationsResponse is the raw payload of GET /locations.
// Locations stays raw so a non-array value can be detected.
type LocationsResponse struct {
	Locations json.RawMessage `json:"locations"`
	Count     int             `json:"count"`
}

// HousingResponse is the raw payload of GET /housing_data.
type HousingResponse struct {
	Location         string          `json:"location"`
	PastData         []rawPricePoint `json:"past_data"`
	ForecastedPrices []rawForecast   `json:"forecasted_prices"`
}

type rawPricePoint struct {
	Date  string  `json:"Date"`
	Price float64 `json:"Price"`
}

type rawForecast struct {
	Date           string  `json:"Date"`
	PredictedPrice float64 `json:"PredictedPrice"`
}

// errorResponse is the body the server sends alongside a non-2xx status.
type errorResponse struct {
	Error string `json:"error"`
}
