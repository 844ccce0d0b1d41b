package domain

import (
	"errors"
	"fmt"
)

// ErrEmptyQuery rejects a blank search term before any work is done.
var ErrEmptyQuery = errors.New("search query is empty")

// ErrLocationNotFound means the geocoding provider returned no candidates.
// It is a normal outcome, distinct from a transport failure.
var ErrLocationNotFound = errors.New("location not found")

// GeocodeError wraps a transport-level geocoding failure: network error,
// non-success HTTP status, or a malformed response body.
type GeocodeError struct {
	Query string
	Err   error
}

func (e *GeocodeError) Error() string {
	return fmt.Sprintf("geocode %q: %v", e.Query, e.Err)
}

func (e *GeocodeError) Unwrap() error { return e.Err }
