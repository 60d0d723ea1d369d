// Package location resolves free-text place queries to coordinates using a
// Nominatim-compatible search endpoint.
package location

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/time/rate"

	"restaurantmap/models"
)

const (
	DefaultBaseURL   = "https://nominatim.openstreetmap.org/search"
	DefaultUserAgent = "restaurantmap/1.0"
)

// ErrNotFound is returned whenever a query cannot be turned into a single
// coordinate pair, whatever the underlying cause.
var ErrNotFound = errors.New("location not found")

// NominatimResponse is shaped for the search API response
type NominatimResponse []struct {
	PlaceID     int64  `json:"place_id"`
	OsmType     string `json:"osm_type"`
	OsmID       int64  `json:"osm_id"`
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	Class       string `json:"class"`
	Type        string `json:"type"`
	Name        string `json:"name"`
	DisplayName string `json:"display_name"`
}

type Client struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
	limiter    *rate.Limiter
	log        *slog.Logger
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

func WithBaseURL(u string) Option {
	return func(c *Client) {
		if u != "" {
			c.baseURL = u
		}
	}
}

func WithUserAgent(ua string) Option {
	return func(c *Client) {
		if ua != "" {
			c.userAgent = ua
		}
	}
}

// WithRateLimit paces outbound lookups. A non-positive value disables pacing.
func WithRateLimit(perSecond float64) Option {
	return func(c *Client) {
		if perSecond <= 0 {
			c.limiter = rate.NewLimiter(rate.Inf, 1)
			return
		}
		c.limiter = rate.NewLimiter(rate.Limit(perSecond), 1)
	}
}

func WithLogger(log *slog.Logger) Option {
	return func(c *Client) { c.log = log }
}

// NewClient returns a geocoding client. Nominatim's public usage policy allows
// one request per second, which is the default pace.
func NewClient(opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{Transport: otelhttp.NewTransport(http.DefaultTransport)},
		baseURL:    DefaultBaseURL,
		userAgent:  DefaultUserAgent,
		limiter:    rate.NewLimiter(rate.Limit(1), 1),
		log:        slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Search performs a single lookup limited to one candidate.
func (c *Client) Search(ctx context.Context, query string) (NominatimResponse, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("format", "json")
	params.Set("limit", "1")

	reqURL := fmt.Sprintf("%s?%s", c.baseURL, params.Encode())

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Error("geocoder request failed", "error", err)
		return nil, err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		c.log.Error("geocoder upstream error", "status", resp.StatusCode)
		return nil, fmt.Errorf("unexpected status: %s", resp.Status)
	}

	var results NominatimResponse
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return nil, fmt.Errorf("decode geocoder payload: %w", err)
	}
	return results, nil
}

// Resolve returns the coordinates of the first candidate for query. Every
// failure mode yields an error matching ErrNotFound; the caller is expected to
// keep its previous location.
func (c *Client) Resolve(ctx context.Context, query string) (models.Coordinates, error) {
	results, err := c.Search(ctx, query)
	if err != nil {
		return models.Coordinates{}, fmt.Errorf("%w: %q: %w", ErrNotFound, query, err)
	}
	if len(results) == 0 {
		return models.Coordinates{}, fmt.Errorf("%w: no results for %q", ErrNotFound, query)
	}

	first := results[0]
	lat, err := strconv.ParseFloat(first.Lat, 64)
	if err != nil {
		return models.Coordinates{}, fmt.Errorf("%w: bad latitude %q: %w", ErrNotFound, first.Lat, err)
	}
	lon, err := strconv.ParseFloat(first.Lon, 64)
	if err != nil {
		return models.Coordinates{}, fmt.Errorf("%w: bad longitude %q: %w", ErrNotFound, first.Lon, err)
	}
	return models.Coordinates{Lat: lat, Lon: lon}, nil
}
