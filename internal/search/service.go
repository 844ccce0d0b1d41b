// Package search orchestrates the event search flow: text match first,
// geocoded nearby search as the fallback, grouped results out.
package search

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/jonboulle/clockwork"

	"github.com/gauravya/contradance.uk/internal/domain"
	"github.com/gauravya/contradance.uk/internal/observability"
)

// EventSource supplies the read-only event collection.
type EventSource interface {
	Events() []domain.Event
	Len() int
}

// Mode says which path produced a search result.
type Mode string

const (
	// ModeMatched means the query text matched event fields directly.
	ModeMatched Mode = "matched"
	// ModeNearby means the query was geocoded and events fell inside the
	// primary radius.
	ModeNearby Mode = "nearby"
	// ModeNearbyFallback means the radius was empty and the closest few
	// events were returned instead.
	ModeNearbyFallback Mode = "nearby_fallback"
)

// Result is one completed search. Empty Groups is the normal no-results
// state, not an error. Center and LocationName are set only when the query
// was geocoded.
type Result struct {
	Query        string
	Mode         Mode
	Groups       []domain.Group
	Center       *domain.Coordinate
	LocationName string
}

// Service runs searches over the event store. It is safe for concurrent use:
// the store is read-only and every search derives its own occurrences.
type Service struct {
	source   EventSource
	geocoder domain.Geocoder
	clock    clockwork.Clock
	radiusKM float64
	logger   *slog.Logger
	metrics  *observability.Metrics
}

// New creates a search service. The clock is injected so tests can pin "now".
func New(source EventSource, geocoder domain.Geocoder, clock clockwork.Clock, radiusKM float64, logger *slog.Logger, metrics *observability.Metrics) *Service {
	return &Service{
		source:   source,
		geocoder: geocoder,
		clock:    clock,
		radiusKM: radiusKM,
		logger:   logger,
		metrics:  metrics,
	}
}

// CheckReadiness reports whether the service can serve traffic.
func (s *Service) CheckReadiness(_ context.Context) error {
	if s.source == nil {
		return errors.New("event store not loaded")
	}
	return nil
}

// Listing returns every upcoming event grouped for the front page.
func (s *Service) Listing() []domain.Group {
	now := s.clock.Now()
	occs := domain.UpcomingOccurrences(s.source.Events(), now)
	return domain.GroupUpcoming(occs, now)
}

// Search runs the two-stage search. A blank query fails fast with
// domain.ErrEmptyQuery before anything else happens. The text match is tried
// first; only when it finds nothing is the geocoder invoked (once), and its
// not-found and transport failures pass through untranslated so the HTTP
// layer can report them distinctly.
func (s *Service) Search(ctx context.Context, query string) (Result, error) {
	start := s.clock.Now()
	res, err := s.search(ctx, query)
	s.metrics.SearchDuration.Observe(s.clock.Since(start).Seconds())
	s.metrics.SearchRequests.WithLabelValues(outcomeLabel(res, err)).Inc()
	return res, err
}

func (s *Service) search(ctx context.Context, query string) (Result, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return Result{}, domain.ErrEmptyQuery
	}

	now := s.clock.Now()
	events := s.source.Events()

	matched, err := domain.MatchTerm(events, query)
	if err != nil {
		return Result{}, err
	}
	if len(matched) > 0 {
		occs := domain.UpcomingOccurrences(matched, now)
		return Result{
			Query:  query,
			Mode:   ModeMatched,
			Groups: domain.GroupUpcoming(occs, now),
		}, nil
	}

	loc, err := s.geocoder.Geocode(ctx, query)
	if err != nil {
		return Result{}, err
	}
	s.logger.Debug("query geocoded", "query", query, "place", loc.DisplayName,
		"lat", loc.Coord.Lat, "lon", loc.Coord.Lon)

	occs := domain.UpcomingOccurrences(events, now)
	near := domain.Nearby(loc.Coord, occs, s.radiusKM)

	mode := ModeNearby
	if len(near) > 0 && domain.Distance(loc.Coord, near[0].Event.Coord) > s.radiusKM {
		mode = ModeNearbyFallback
	}

	center := loc.Coord
	return Result{
		Query:        query,
		Mode:         mode,
		Groups:       domain.GroupUpcoming(near, now),
		Center:       &center,
		LocationName: loc.DisplayName,
	}, nil
}

func outcomeLabel(res Result, err error) string {
	switch {
	case errors.Is(err, domain.ErrEmptyQuery):
		return "empty_query"
	case errors.Is(err, domain.ErrLocationNotFound):
		return "not_found"
	case err != nil:
		return "geocode_error"
	case len(res.Groups) == 0:
		return "empty"
	case res.Mode == ModeMatched:
		return "matched"
	case res.Mode == ModeNearbyFallback:
		return "fallback"
	default:
		return "nearby"
	}
}
