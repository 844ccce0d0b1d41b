package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the
// events service.
type Metrics struct {
	SearchRequests *prometheus.CounterVec // labels: outcome={matched,nearby,fallback,empty,empty_query,not_found,geocode_error}
	SearchDuration prometheus.Histogram

	GeocodeRequests    *prometheus.CounterVec // labels: outcome={success,not_found,error}
	GeocodeAPIDuration prometheus.Histogram
	GeocodeShared      prometheus.Counter // lookups that piggybacked on an in-flight call

	EventsLoaded prometheus.Gauge
}

// NewMetrics creates and registers all service metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.SearchRequests,
		m.SearchDuration,
		m.GeocodeRequests,
		m.GeocodeAPIDuration,
		m.GeocodeShared,
		m.EventsLoaded,
	)
	return m
}

// NewMetricsForTesting creates Metrics without registering them, avoiding
// "already registered" panics across tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		SearchRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "contradance",
			Name:      "search_requests_total",
			Help:      "Search requests by outcome.",
		}, []string{"outcome"}),
		SearchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "contradance",
			Name:      "search_duration_seconds",
			Help:      "End-to-end duration of a search request.",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 2.5, 5},
		}),
		GeocodeRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "contradance",
			Name:      "geocode_requests_total",
			Help:      "Geocoding lookups by outcome.",
		}, []string{"outcome"}),
		GeocodeAPIDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "contradance",
			Name:      "geocode_api_duration_seconds",
			Help:      "Nominatim request duration in seconds.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}),
		GeocodeShared: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "contradance",
			Name:      "geocode_shared_total",
			Help:      "Geocode lookups that shared an already in-flight provider call.",
		}),
		EventsLoaded: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "contradance",
			Name:      "events_loaded",
			Help:      "Number of event records loaded at startup.",
		}),
	}
}
