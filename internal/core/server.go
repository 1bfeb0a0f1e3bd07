// Package core provides the API chassis for the AgriSmart weather advisory
// service. It creates a chi router and enforces cross-cutting concerns --
// panic recovery, request correlation, logging, CORS, and metrics -- before
// requests reach domain-specific handlers.
package core

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"agrismart/internal/config"
)

// MetricsCollector defines the interface for recording API telemetry.
type MetricsCollector interface {
	// RecordRequest records request metrics including latency and count.
	RecordRequest(method, route, status string, duration time.Duration)
}

// noopMetrics is used when no collector is injected.
type noopMetrics struct{}

func (noopMetrics) RecordRequest(string, string, string, time.Duration) {}

// Server encapsulates the chassis dependencies, allowing for easy injection
// during testing and distinct configuration for different environments.
type Server struct {
	Config    *config.Config
	Logger    *slog.Logger
	Validator *Validator
	Metrics   MetricsCollector

	// V1RouteRegistrars are populated by the application entry point; this
	// indirection avoids import cycles between core and handler packages.
	V1RouteRegistrars []func(chi.Router)

	// MetricsHandler, when set, is mounted at /metrics.
	MetricsHandler http.Handler

	router *chi.Mux
}

// NewServer initializes the chassis and prepares the server for route
// mounting. The caller is responsible for mounting routes (via MountRoutes)
// after construction, which allows tests to customize registration.
func NewServer(cfg *config.Config, logger *slog.Logger) (*Server, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config must not be nil")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger must not be nil")
	}

	return &Server{
		Config:    cfg,
		Logger:    logger,
		Validator: NewValidator(),
		Metrics:   noopMetrics{},
		router:    chi.NewRouter(),
	}, nil
}

// Handler returns the http.Handler interface for the router.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Router returns the underlying chi.Mux for route registration.
func (s *Server) Router() *chi.Mux {
	return s.router
}
