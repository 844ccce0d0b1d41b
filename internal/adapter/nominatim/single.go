package nominatim

import (
	"context"

	"golang.org/x/sync/singleflight"

	"github.com/gauravya/contradance.uk/internal/domain"
	"github.com/gauravya/contradance.uk/internal/observability"
)

// SharedGeocoder wraps a Geocoder so that concurrent lookups for the same
// query share one in-flight provider call. Nothing is retained once a call
// returns; repeating a query later hits the provider again. This keeps the
// at-most-one-outstanding-request contract without caching results.
type SharedGeocoder struct {
	inner   domain.Geocoder
	group   singleflight.Group
	metrics *observability.Metrics
}

// NewSharedGeocoder creates a single-flight decorator around a geocoder.
func NewSharedGeocoder(inner domain.Geocoder, metrics *observability.Metrics) *SharedGeocoder {
	return &SharedGeocoder{inner: inner, metrics: metrics}
}

func (s *SharedGeocoder) Geocode(ctx context.Context, query string) (domain.GeocodingResult, error) {
	v, err, shared := s.group.Do(query, func() (any, error) {
		return s.inner.Geocode(ctx, query)
	})
	if shared {
		s.metrics.GeocodeShared.Inc()
	}
	if err != nil {
		return domain.GeocodingResult{}, err
	}
	return v.(domain.GeocodingResult), nil
}
