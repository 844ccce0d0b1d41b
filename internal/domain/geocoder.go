package domain

import "context"

// GeocodingResult is a resolved place: its coordinate and the provider's
// display name for it.
type GeocodingResult struct {
	Coord       Coordinate
	DisplayName string
}

// Geocoder resolves free-text place queries to coordinates. Implementations
// return ErrLocationNotFound when the provider has no candidate, and a
// *GeocodeError for transport-level failures, so callers can tell the two
// apart.
type Geocoder interface {
	Geocode(ctx context.Context, query string) (GeocodingResult, error)
}
