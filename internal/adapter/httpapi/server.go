// Package httpapi exposes the event listing and search over HTTP, plus the
// usual health, readiness, and metrics endpoints. It owns all presentation
// formatting; the map widget and page rendering consume its JSON as-is.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/gauravya/contradance.uk/internal/domain"
	"github.com/gauravya/contradance.uk/internal/search"
)

// Default map view for the full listing, matching the site's UK-wide frame.
var defaultCenter = domain.Coordinate{Lat: 54.5, Lon: -4}

const (
	defaultZoom = 6
	searchZoom  = 10
)

// displayDateFormat is the en-GB long date used in popups and listings.
const displayDateFormat = "2 January 2006"

// Searcher is the service surface the HTTP layer needs.
type Searcher interface {
	Search(ctx context.Context, query string) (search.Result, error)
	Listing() []domain.Group
	CheckReadiness(ctx context.Context) error
}

// Server exposes the JSON API.
type Server struct {
	httpServer *http.Server
	service    Searcher
	logger     *slog.Logger
}

// NewServer creates an HTTP server with the API, health, readiness, and
// metrics routes.
func NewServer(addr string, service Searcher, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		service: service,
		logger:  logger,
	}

	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /readyz", s.handleReady)
	mux.Handle("GET /metrics", promhttp.Handler())
	mux.HandleFunc("GET /api/events", s.handleEvents)
	mux.HandleFunc("GET /api/search", s.handleSearch)

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := s.service.CheckReadiness(ctx); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"status": "not ready",
			"error":  err.Error(),
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

func (s *Server) handleEvents(w http.ResponseWriter, _ *http.Request) {
	groups := s.service.Listing()
	writeJSON(w, http.StatusOK, resultResponse{
		Groups:    toGroupPayloads(groups),
		NoResults: len(groups) == 0,
		Map:       mapView(groups, nil),
	})
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")

	res, err := s.service.Search(r.Context(), query)
	if err != nil {
		s.writeSearchError(w, query, err)
		return
	}

	writeJSON(w, http.StatusOK, resultResponse{
		Query:        res.Query,
		Mode:         string(res.Mode),
		LocationName: res.LocationName,
		Groups:       toGroupPayloads(res.Groups),
		NoResults:    len(res.Groups) == 0,
		Map:          mapView(res.Groups, res.Center),
	})
}

// writeSearchError maps the search error kinds onto status codes: blank
// query 400, unknown place 404, geocoder transport trouble 502.
func (s *Server) writeSearchError(w http.ResponseWriter, query string, err error) {
	var ge *domain.GeocodeError
	switch {
	case errors.Is(err, domain.ErrEmptyQuery):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "please enter a search term"})
	case errors.Is(err, domain.ErrLocationNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "location not found, please try again"})
	case errors.As(err, &ge):
		s.logger.Error("geocoding failed", "query", query, "error", err)
		writeJSON(w, http.StatusBadGateway, errorResponse{Error: "error fetching location: " + ge.Err.Error()})
	default:
		s.logger.Error("search failed", "query", query, "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // best-effort response
}
