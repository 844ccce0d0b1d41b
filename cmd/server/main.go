package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/jonboulle/clockwork"

	"github.com/gauravya/contradance.uk/internal/adapter/httpapi"
	"github.com/gauravya/contradance.uk/internal/adapter/nominatim"
	"github.com/gauravya/contradance.uk/internal/config"
	"github.com/gauravya/contradance.uk/internal/observability"
	"github.com/gauravya/contradance.uk/internal/search"
	"github.com/gauravya/contradance.uk/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg.LogLevel, cfg.LogFormat)
	metrics := observability.NewMetrics()

	events, err := store.Load(cfg.EventsDir, logger)
	if err != nil {
		logger.Error("failed to load events", "dir", cfg.EventsDir, "error", err)
		os.Exit(1)
	}
	metrics.EventsLoaded.Set(float64(events.Len()))

	client := nominatim.NewClient(nominatim.Options{
		BaseURL:     cfg.GeocodeBaseURL,
		Region:      cfg.GeocodeRegion,
		CountryCode: cfg.GeocodeCountryCode,
		UserAgent:   cfg.GeocodeUserAgent,
		Timeout:     cfg.GeocodeTimeout,
	}, metrics, logger)
	geocoder := nominatim.NewSharedGeocoder(client, metrics)

	svc := search.New(events, geocoder, clockwork.NewRealClock(), cfg.SearchRadiusKM, logger, metrics)

	srv := httpapi.NewServer(cfg.HTTPAddr, svc, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}

	logger.Info("shutdown complete")
}
