package core

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// healthResponse is the JSON body for the health check endpoint.
type healthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
}

// MountRoutes defines the top-level routing hierarchy: the global middleware
// chain, the versioned API group, and the unversioned health and metrics
// endpoints.
func (s *Server) MountRoutes() {
	s.registerGlobalMiddleware()

	s.router.Route("/v1", s.mountV1)

	s.router.Get("/health", s.HandleHealth)
	if s.MetricsHandler != nil {
		s.router.Handle("/metrics", s.MetricsHandler)
	}
}

// registerGlobalMiddleware applies middleware in strict order.
//
// Ordering rationale:
//  1. Recoverer     - outermost, catches all panics.
//  2. RequestID     - correlation ID for logs and upstream calls.
//  3. RequestLogger - structured logging with redacted headers.
//  4. CORS          - browser security headers.
//  5. Metrics       - request latency and count recording.
func (s *Server) registerGlobalMiddleware() {
	s.router.Use(s.Recoverer)
	s.router.Use(RequestIDMiddleware)
	s.router.Use(RequestLogger(s.Logger, defaultRedactedHeaders))
	s.router.Use(NewCORSMiddleware(s.corsAllowedOrigins()))
	s.router.Use(s.MetricsMiddleware)
}

// mountV1 registers all v1 endpoints via the registrars populated by the
// application entry point.
func (s *Server) mountV1(r chi.Router) {
	for _, registrar := range s.V1RouteRegistrars {
		registrar(r)
	}
}

// corsAllowedOrigins returns the CORS allowed origins from configuration.
func (s *Server) corsAllowedOrigins() []string {
	if s.Config != nil && len(s.Config.Security.CorsAllowedOrigins) > 0 {
		return s.Config.Security.CorsAllowedOrigins
	}
	return []string{"*"}
}

// HandleHealth reports liveness. This endpoint is public and is mounted at
// GET /health. The service has no hard dependencies to probe: both upstream
// APIs are called lazily per request and their failure modes are surfaced
// through the weather endpoints themselves.
func (s *Server) HandleHealth(w http.ResponseWriter, r *http.Request) {
	service := "agrismart-weather"
	if s.Config != nil && s.Config.Service != "" {
		service = s.Config.Service
	}
	JSON(w, r, http.StatusOK, healthResponse{Status: "healthy", Service: service})
}
