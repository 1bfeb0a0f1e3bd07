// Package main is the entry point for the AgriSmart weather advisory API.
//
// It loads configuration, wires the upstream clients, caches, and advisory
// service, builds the HTTP server with the core chassis (middleware,
// routing, health check, metrics), and starts listening for requests.
//
// Graceful shutdown is handled via OS signal interception (SIGINT, SIGTERM).
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"

	"agrismart/internal/advisory"
	"agrismart/internal/api/handlers"
	"agrismart/internal/cache"
	"agrismart/internal/config"
	"agrismart/internal/core"
	"agrismart/internal/external"
	"agrismart/internal/telemetry"
	"agrismart/internal/types"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

// run encapsulates the startup lifecycle so that main() can cleanly exit on error.
func run() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	logger := newLogger(cfg.LogLevel)
	logger.Info("agrismart weather API starting",
		"environment", cfg.Environment,
		"port", cfg.Server.Port,
		"default_location", cfg.Location.DefaultName,
	)

	metrics := telemetry.New("agrismart")

	// Upstream clients share one HTTP client so the timeout applies uniformly.
	httpClient := &http.Client{Timeout: cfg.Upstream.Timeout}
	base := external.NewBaseClient(httpClient, cfg.Upstream.UserAgent)
	forecasts := external.NewOpenMeteoClient(base, cfg.Upstream.ForecastBaseURL, logger)
	geocoder := external.NewNominatimClient(base, cfg.Upstream.GeocodeBaseURL, logger)

	// Caches are constructed once per process and passed by reference; the
	// system clock drives TTL expiry in production.
	clock := cache.SystemClock{}
	weatherCache := cache.NewTTLStore[*types.WeatherResult](cfg.Cache.WeatherTTL, clock)
	adviceCache := cache.NewTTLStore[advisory.Advice](cfg.Cache.AdviceTTL, clock)

	service := advisory.NewService(
		forecasts,
		geocoder,
		weatherCache,
		adviceCache,
		cfg.Location.DefaultLat,
		cfg.Location.DefaultLon,
		cfg.Location.DefaultName,
		logger,
		advisory.WithCacheEvents(metrics),
	)

	srv, err := core.NewServer(cfg, logger)
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}
	srv.Metrics = metrics
	srv.MetricsHandler = metrics.Handler()

	weatherHandler := handlers.NewWeatherHandler(service, srv.Validator, logger)
	srv.V1RouteRegistrars = append(srv.V1RouteRegistrars, func(r chi.Router) {
		r.Route("/weather", weatherHandler.RegisterRoutes)
	})

	srv.MountRoutes()

	return runHTTPServer(srv, cfg, logger)
}

// runHTTPServer starts the server in standard HTTP mode with graceful shutdown.
func runHTTPServer(srv *core.Server, cfg *config.Config, logger *slog.Logger) error {
	addr := ":" + cfg.Server.Port

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      cfg.Server.RequestTimeout,
		IdleTimeout:       120 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("HTTP server listening", "addr", addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-shutdown:
		logger.Info("shutdown signal received", "signal", sig.String())
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
	}

	logger.Info("initiating graceful shutdown")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(ctx); err != nil {
		logger.Error("HTTP server shutdown error", "error", err)
		return fmt.Errorf("server shutdown: %w", err)
	}

	logger.Info("server stopped cleanly")
	return nil
}

// newLogger creates a structured slog.Logger configured for the given log level.
func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "info":
		lvl = slog.LevelInfo
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}

	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl})
	return slog.New(handler)
}
