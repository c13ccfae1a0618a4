// Package geo resolves free-form place queries ("Musee Rodin, Paris") to
// coordinates against a Nominatim-compatible search endpoint.
package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/zaccharietardy-dotcom/voyage-planner/internal/domain"
)

// DefaultTimeout bounds one search request when the caller does not set a
// tighter one. Geocoding only decorates map pins, so a slow upstream should
// never stall a mutation for long.
const DefaultTimeout = 10 * time.Second

// userAgent identifies this service to the upstream; Nominatim's usage
// policy rejects anonymous clients.
const userAgent = "voyage-planner/1.0"

// Client is a minimal Nominatim search client. One request per lookup, no
// retries; callers that want caching wrap it in a Cache.
type Client struct {
	baseURL string
	http    *http.Client
	log     *slog.Logger
}

// NewClient constructs a Client against baseURL. A timeout of zero falls
// back to DefaultTimeout, a nil log falls back to slog.Default().
func NewClient(baseURL string, timeout time.Duration, log *slog.Logger) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if log == nil {
		log = slog.Default()
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		log:     log,
	}
}

// searchResult is one row of a Nominatim search response. Coordinates come
// back as strings on the wire.
type searchResult struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
}

// Geocode resolves query to coordinates, taking the first search result.
// Returns domain.ErrNotFound when the upstream knows no such place.
func (c *Client) Geocode(ctx context.Context, query string) (domain.Coordinates, error) {
	q := url.Values{}
	q.Set("q", query)
	q.Set("format", "json")
	q.Set("limit", "1")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/search?"+q.Encode(), nil)
	if err != nil {
		return domain.Coordinates{}, fmt.Errorf("geo.Client.Geocode: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return domain.Coordinates{}, fmt.Errorf("geo.Client.Geocode: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return domain.Coordinates{}, fmt.Errorf("geo.Client.Geocode: upstream returned status %d", resp.StatusCode)
	}

	var results []searchResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return domain.Coordinates{}, fmt.Errorf("geo.Client.Geocode: decode response: %w", err)
	}
	if len(results) == 0 {
		return domain.Coordinates{}, fmt.Errorf("%w: no results for %q", domain.ErrNotFound, query)
	}

	lat, err := strconv.ParseFloat(results[0].Lat, 64)
	if err != nil {
		return domain.Coordinates{}, fmt.Errorf("geo.Client.Geocode: parse lat %q: %w", results[0].Lat, err)
	}
	lng, err := strconv.ParseFloat(results[0].Lon, 64)
	if err != nil {
		return domain.Coordinates{}, fmt.Errorf("geo.Client.Geocode: parse lon %q: %w", results[0].Lon, err)
	}

	c.log.Debug("geocoded place", "query", query, "display_name", results[0].DisplayName)
	return domain.Coordinates{Latitude: lat, Longitude: lng}, nil
}
