// Package overpass queries an Overpass-style interpreter for restaurant nodes
// around a point.
package overpass

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const (
	DefaultURL       = "http://overpass-api.de/api/interpreter"
	DefaultUserAgent = "restaurantmap/1.0"
	// DefaultRadius is the search radius in meters.
	DefaultRadius = 7500
)

// RawPOI is one element of the interpreter response.
type RawPOI struct {
	Type string            `json:"type"`
	ID   int64             `json:"id"`
	Lat  float64           `json:"lat"`
	Lon  float64           `json:"lon"`
	Tags map[string]string `json:"tags"`
}

type response struct {
	Elements []RawPOI `json:"elements"`
}

// FetchFailure reports that the interpreter could not be reached or returned
// something that is not a valid element list.
type FetchFailure struct {
	Cause error
}

func (f *FetchFailure) Error() string {
	return fmt.Sprintf("fetch restaurants: %v", f.Cause)
}

func (f *FetchFailure) Unwrap() error { return f.Cause }

type Client struct {
	BaseURL    string
	UserAgent  string
	HTTPClient *http.Client
	Log        *slog.Logger
}

func NewClient(baseURL, userAgent string) *Client {
	return &Client{
		BaseURL:    baseURL,
		UserAgent:  userAgent,
		HTTPClient: &http.Client{Transport: otelhttp.NewTransport(http.DefaultTransport)},
		Log:        slog.Default(),
	}
}

// Query builds the interpreter payload for restaurant nodes within radius
// meters of (lat, lon).
func Query(lat, lon float64, radius int) string {
	return fmt.Sprintf(`[out:json];
node["amenity"="restaurant"](around:%d,%s,%s);
out center tags;
`, radius, formatCoord(lat), formatCoord(lon))
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// FetchNearby issues a single query. Any failure is returned as *FetchFailure;
// callers cannot tell an empty area from a failed fetch by the slice alone.
func (c *Client) FetchNearby(ctx context.Context, lat, lon float64, radius int) ([]RawPOI, error) {
	if radius <= 0 {
		radius = DefaultRadius
	}
	elements, err := c.run(ctx, Query(lat, lon, radius))
	if err != nil {
		c.logger().Error("overpass fetch failed", "error", err, "lat", lat, "lon", lon, "radius", radius)
		return nil, &FetchFailure{Cause: err}
	}
	return elements, nil
}

func (c *Client) run(ctx context.Context, query string) ([]RawPOI, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL(), strings.NewReader(query))
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", c.userAgent())
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("overpass status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var decoded response
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("decode overpass payload: %w", err)
	}
	return decoded.Elements, nil
}

func (c *Client) baseURL() string {
	if c.BaseURL != "" {
		return c.BaseURL
	}
	return DefaultURL
}

func (c *Client) userAgent() string {
	if c.UserAgent != "" {
		return c.UserAgent
	}
	return DefaultUserAgent
}

func (c *Client) httpClient() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return http.DefaultClient
}

func (c *Client) logger() *slog.Logger {
	if c.Log != nil {
		return c.Log
	}
	return slog.Default()
}
