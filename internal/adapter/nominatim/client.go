// Package nominatim implements domain.Geocoder against the OpenStreetMap
// Nominatim search API.
package nominatim

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/gauravya/contradance.uk/internal/domain"
	"github.com/gauravya/contradance.uk/internal/observability"
)

// Options configures a Client.
type Options struct {
	// BaseURL is the search endpoint, e.g.
	// "https://nominatim.openstreetmap.org/search".
	BaseURL string

	// Region is appended to every query to bias results, e.g. "UK" turns
	// "cambridge" into "cambridge, UK".
	Region string

	// CountryCode restricts results via Nominatim's countrycodes parameter.
	CountryCode string

	// UserAgent identifies this service; Nominatim's usage policy rejects
	// requests without one.
	UserAgent string

	Timeout time.Duration
}

// Client implements domain.Geocoder using the Nominatim search API.
type Client struct {
	opts       Options
	httpClient *http.Client
	metrics    *observability.Metrics
	logger     *slog.Logger
}

// NewClient creates a Nominatim geocoding client.
func NewClient(opts Options, metrics *observability.Metrics, logger *slog.Logger) *Client {
	return &Client{
		opts: opts,
		httpClient: &http.Client{
			Timeout: opts.Timeout,
		},
		metrics: metrics,
		logger:  logger,
	}
}

// Geocode resolves a free-text place query to a coordinate. A provider
// response with no candidates returns domain.ErrLocationNotFound; transport,
// status, and decode failures return a *domain.GeocodeError. The first/best
// candidate wins.
func (c *Client) Geocode(ctx context.Context, query string) (domain.GeocodingResult, error) {
	biased := query
	if c.opts.Region != "" {
		biased = fmt.Sprintf("%s, %s", query, c.opts.Region)
	}

	params := url.Values{
		"q":      {biased},
		"format": {"json"},
		"limit":  {"1"},
	}
	if c.opts.CountryCode != "" {
		params.Set("countrycodes", c.opts.CountryCode)
	}

	start := time.Now()
	result, err := c.doRequest(ctx, c.opts.BaseURL+"?"+params.Encode(), query)
	c.metrics.GeocodeAPIDuration.Observe(time.Since(start).Seconds())

	switch {
	case err == nil:
		c.metrics.GeocodeRequests.WithLabelValues("success").Inc()
	case errors.Is(err, domain.ErrLocationNotFound):
		c.metrics.GeocodeRequests.WithLabelValues("not_found").Inc()
	default:
		c.metrics.GeocodeRequests.WithLabelValues("error").Inc()
		c.logger.Warn("geocode request failed", "query", query, "error", err)
	}
	return result, err
}

func (c *Client) doRequest(ctx context.Context, fullURL, query string) (domain.GeocodingResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return domain.GeocodingResult{}, &domain.GeocodeError{Query: query, Err: fmt.Errorf("create request: %w", err)}
	}
	req.Header.Set("User-Agent", c.opts.UserAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domain.GeocodingResult{}, &domain.GeocodeError{Query: query, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return domain.GeocodingResult{}, &domain.GeocodeError{
			Query: query,
			Err:   fmt.Errorf("nominatim status %d: %s", resp.StatusCode, body),
		}
	}

	var candidates []candidate
	if err := json.NewDecoder(resp.Body).Decode(&candidates); err != nil {
		return domain.GeocodingResult{}, &domain.GeocodeError{Query: query, Err: fmt.Errorf("decode response: %w", err)}
	}

	if len(candidates) == 0 {
		return domain.GeocodingResult{}, domain.ErrLocationNotFound
	}

	best := candidates[0]
	lat, errLat := strconv.ParseFloat(best.Lat, 64)
	lon, errLon := strconv.ParseFloat(best.Lon, 64)
	if errLat != nil || errLon != nil {
		return domain.GeocodingResult{}, &domain.GeocodeError{
			Query: query,
			Err:   fmt.Errorf("malformed coordinates %q,%q", best.Lat, best.Lon),
		}
	}

	return domain.GeocodingResult{
		Coord:       domain.Coordinate{Lat: lat, Lon: lon},
		DisplayName: best.DisplayName,
	}, nil
}

// Nominatim returns coordinates as strings.
type candidate struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
}
