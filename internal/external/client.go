// Package external is the boundary between the advisory engine and the two
// public upstream APIs: the Open-Meteo forecast endpoint and the Nominatim
// reverse geocoder. All outbound HTTP goes through the BaseClient, which
// injects the request-correlation header and the User-Agent and maps
// transport failures into the AppError taxonomy.
//
// Calls are single-attempt: no retries, no backoff, no circuit breaker.
// A failed call is terminal for that logical operation and must be retried
// by the caller explicitly.
package external

import (
	"net/http"
	"time"

	"agrismart/internal/types"
)

// DefaultTimeout bounds a single upstream call when the caller does not
// configure one. A hung upstream otherwise blocks the logical operation
// until the request context is cancelled.
const DefaultTimeout = 10 * time.Second

// BaseClient wraps an *http.Client to enforce consistent outbound behavior.
// The Open-Meteo and Nominatim clients embed it.
type BaseClient struct {
	client    *http.Client
	userAgent string
}

// NewBaseClient creates a BaseClient. If httpClient is nil, a client with
// DefaultTimeout is used.
func NewBaseClient(httpClient *http.Client, userAgent string) *BaseClient {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: DefaultTimeout}
	}
	return &BaseClient{
		client:    httpClient,
		userAgent: userAgent,
	}
}

// Do executes the HTTP request with:
//  1. Request ID injection (X-Request-Id from context)
//  2. User-Agent header injection
//
// On a transport-level failure (network error, DNS failure, timeout) it
// returns a types.AppError with code upstream_weather_unavailable mapped by
// the caller; here the raw error is returned so each provider client can
// attach its own code. Non-2xx statuses are returned as-is for the caller
// to interpret.
func (c *BaseClient) Do(req *http.Request) (*http.Response, error) {
	if requestID := types.GetRequestID(req.Context()); requestID != "" {
		req.Header.Set("X-Request-Id", requestID)
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	return c.client.Do(req)
}
