package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	// EventsDir is the directory of curated *.yaml event files.
	EventsDir string

	// SearchRadiusKM is the primary radius for nearby search.
	SearchRadiusKM float64

	// Nominatim geocoding configuration.
	GeocodeBaseURL     string
	GeocodeRegion      string // free-text bias appended to queries, e.g. "UK"
	GeocodeCountryCode string // ISO country code filter, e.g. "gb"
	GeocodeTimeout     time.Duration
	GeocodeUserAgent   string
}

// Load reads configuration from environment variables, applying defaults
// where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := parseDuration("SHUTDOWN_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}
	geocodeTimeout, err := parseDuration("GEOCODE_TIMEOUT", "5s")
	if err != nil {
		return nil, err
	}
	radius, err := parseRadius()
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		HTTPAddr:        envOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        envOrDefault("LOG_LEVEL", "info"),
		LogFormat:       envOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,

		EventsDir:      envOrDefault("EVENTS_DIR", "events"),
		SearchRadiusKM: radius,

		GeocodeBaseURL:     envOrDefault("GEOCODE_BASE_URL", "https://nominatim.openstreetmap.org/search"),
		GeocodeRegion:      envOrDefault("GEOCODE_REGION", "UK"),
		GeocodeCountryCode: envOrDefault("GEOCODE_COUNTRY_CODE", "gb"),
		GeocodeTimeout:     geocodeTimeout,
		GeocodeUserAgent:   envOrDefault("GEOCODE_USER_AGENT", "contradance.uk/1.0"),
	}

	if cfg.EventsDir == "" {
		return nil, errors.New("EVENTS_DIR is required")
	}
	if cfg.GeocodeBaseURL == "" {
		return nil, errors.New("GEOCODE_BASE_URL is required")
	}
	// Nominatim's usage policy requires an identifying User-Agent.
	if cfg.GeocodeUserAgent == "" {
		return nil, errors.New("GEOCODE_USER_AGENT is required")
	}

	return cfg, nil
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseDuration(key, fallback string) (time.Duration, error) {
	d, err := time.ParseDuration(envOrDefault(key, fallback))
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return d, nil
}

func parseRadius() (float64, error) {
	s := envOrDefault("SEARCH_RADIUS_KM", "100")
	r, err := strconv.ParseFloat(s, 64)
	if err != nil || r <= 0 {
		return 0, errors.New("invalid SEARCH_RADIUS_KM")
	}
	return r, nil
}
