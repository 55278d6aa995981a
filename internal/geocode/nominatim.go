package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

// Geocoder resolves a free-text address to a coordinate pair.
type Geocoder interface {
	Geocode(ctx context.Context, address string) (lat, lon float64, err error)
}

const (
	defaultBaseURL = "https://nominatim.openstreetmap.org"
	userAgent      = "mimapa-api/1.0"
)

// Nominatim is a forward-geocoding client for the OpenStreetMap Nominatim
// API. Lookups are best-effort: an address with no matches resolves to
// (0, 0) without error.
type Nominatim struct {
	baseURL string
	client  *http.Client
}

// NewNominatim builds a client. An empty baseURL selects the public API.
func NewNominatim(baseURL string) *Nominatim {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Nominatim{baseURL: baseURL, client: http.DefaultClient}
}

// Nominatim renders coordinates as strings.
type searchResult struct {
	Lat string `json:"lat"`
	Lon string `json:"lon"`
}

// Geocode resolves address to coordinates using the first search result.
func (n *Nominatim) Geocode(ctx context.Context, address string) (float64, float64, error) {
	q := url.Values{}
	q.Set("q", address)
	q.Set("format", "json")
	q.Set("limit", "1")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, n.baseURL+"/search?"+q.Encode(), nil)
	if err != nil {
		return 0, 0, err
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := n.client.Do(req)
	if err != nil {
		return 0, 0, fmt.Errorf("nominatim: search %q: %w", address, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, 0, fmt.Errorf("nominatim: unexpected status %d", resp.StatusCode)
	}

	var results []searchResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return 0, 0, fmt.Errorf("nominatim: decode response: %w", err)
	}
	if len(results) == 0 {
		return 0, 0, nil
	}

	lat, err := strconv.ParseFloat(results[0].Lat, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("nominatim: parse lat: %w", err)
	}
	lon, err := strconv.ParseFloat(results[0].Lon, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("nominatim: parse lon: %w", err)
	}
	return lat, lon, nil
}
