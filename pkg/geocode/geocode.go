// Package geocode provides forward geocoding of free-text locations via
// the Mapbox geocoding API.
package geocode

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

var (
	ErrInvalidConfig = errors.New("geocode: invalid configuration")
	ErrRequestFailed = errors.New("geocode: request failed")
	ErrBadResponse   = errors.New("geocode: unexpected response")

	// ErrNoMatch reports that the provider had no result for a query.
	// Forward itself returns an empty slice in that case; callers that
	// require geometry use this sentinel when aborting.
	ErrNoMatch = errors.New("geocode: no match for query")
)

// Point is a geographic coordinate pair.
type Point struct {
	Longitude float64
	Latitude  float64
}

// Match is a single geocoding result, ordered by provider relevance.
type Match struct {
	Point      Point
	PlaceName  string
	Confidence float64
}

// Geocoder maps a free-text location to candidate geographic points.
type Geocoder interface {
	// Forward returns up to limit matches for query, best match first.
	// An unmatched query yields an empty slice, not an error.
	Forward(ctx context.Context, query string, limit int) ([]Match, error)
}

// Config holds Mapbox client configuration, populated from environment
// variables.
type Config struct {
	AccessToken string        `env:"MAPBOX_ACCESS_TOKEN,required"`
	BaseURL     string        `env:"MAPBOX_BASE_URL" envDefault:"https://api.mapbox.com"`
	Timeout     time.Duration `env:"MAPBOX_TIMEOUT" envDefault:"10s"`
}

// Client is a Mapbox forward-geocoding client.
type Client struct {
	httpClient *http.Client
	cfg        Config
}

// New creates a Mapbox geocoding client.
func New(cfg Config) (*Client, error) {
	if cfg.AccessToken == "" {
		return nil, ErrInvalidConfig
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.mapbox.com"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}

	return &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		cfg:        cfg,
	}, nil
}

// mapboxResponse mirrors the subset of the Mapbox geocoding v5 payload
// the application consumes.
type mapboxResponse struct {
	Features []struct {
		PlaceName string     `json:"place_name"`
		Relevance float64    `json:"relevance"`
		Center    [2]float64 `json:"center"` // [longitude, latitude]
	} `json:"features"`
}

// Forward geocodes query against Mapbox, returning up to limit matches
// ordered best-first. An unmatched query returns an empty slice.
func (c *Client) Forward(ctx context.Context, query string, limit int) ([]Match, error) {
	if limit <= 0 {
		limit = 1
	}

	endpoint := fmt.Sprintf("%s/geocoding/v5/mapbox.places/%s.json", c.cfg.BaseURL, url.PathEscape(query))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}

	q := req.URL.Query()
	q.Set("access_token", c.cfg.AccessToken)
	q.Set("limit", strconv.Itoa(limit))
	req.URL.RawQuery = q.Encode()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", ErrBadResponse, resp.StatusCode)
	}

	var payload mapboxResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadResponse, err)
	}

	matches := make([]Match, 0, len(payload.Features))
	for _, f := range payload.Features {
		matches = append(matches, Match{
			Point:      Point{Longitude: f.Center[0], Latitude: f.Center[1]},
			PlaceName:  f.PlaceName,
			Confidence: f.Relevance,
		})
	}

	return matches, nil
}

var _ Geocoder = (*Client)(nil)
