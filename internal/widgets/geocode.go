package widgets

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// DefaultGeocodeURL is the public Nominatim instance.
const DefaultGeocodeURL = "https://nominatim.openstreetmap.org"

const geocodeUserAgent = "mcp-apps-go/1.0 (map widget geocoder)"

// BoundingBox is a geographic rectangle in degrees.
type BoundingBox struct {
	West  float64 `json:"west"`
	South float64 `json:"south"`
	East  float64 `json:"east"`
	North float64 `json:"north"`
}

// Place is a geocoding hit.
type Place struct {
	DisplayName string `json:"displayName"`
	BoundingBox
}

// Geocoder resolves free-text place names against a Nominatim search API.
type Geocoder struct {
	baseURL string
	client  *http.Client
}

// NewGeocoder creates a geocoder. A nil client means http.DefaultClient.
func NewGeocoder(baseURL string, client *http.Client) *Geocoder {
	if client == nil {
		client = http.DefaultClient
	}

	return &Geocoder{baseURL: strings.TrimRight(baseURL, "/"), client: client}
}

type nominatimHit struct {
	DisplayName string   `json:"display_name"`
	BoundingBox []string `json:"boundingbox"`
}

// Lookup returns the best match for query. No match is an error.
func (g *Geocoder) Lookup(ctx context.Context, query string) (*Place, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("geocode: empty query")
	}

	u := g.baseURL + "/search?" + url.Values{
		"q":      {query},
		"format": {"json"},
		"limit":  {"1"},
	}.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("geocode: create request: %w", err)
	}

	req.Header.Set("User-Agent", geocodeUserAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("geocode: request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("geocode: read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("geocode: upstream returned status %d", resp.StatusCode)
	}

	var hits []nominatimHit
	if err := json.Unmarshal(body, &hits); err != nil {
		return nil, fmt.Errorf("geocode: parse response: %w", err)
	}

	if len(hits) == 0 {
		return nil, fmt.Errorf("geocode: no results for %q", query)
	}

	// Nominatim orders the box as south, north, west, east.
	hit := hits[0]
	if len(hit.BoundingBox) != 4 {
		return nil, fmt.Errorf("geocode: malformed bounding box for %q", query)
	}

	var coords [4]float64

	for i, s := range hit.BoundingBox {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, fmt.Errorf("geocode: malformed bounding box for %q: %w", query, err)
		}

		coords[i] = v
	}

	return &Place{
		DisplayName: hit.DisplayName,
		BoundingBox: BoundingBox{
			South: coords[0],
			North: coords[1],
			West:  coords[2],
			East:  coords[3],
		},
	}, nil
}
