package core

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agrismart/internal/config"
	"agrismart/internal/types"
)

// recordingMetrics captures RecordRequest calls for assertions.
type recordingMetrics struct {
	method, route, status string
	calls                 int
}

func (m *recordingMetrics) RecordRequest(method, route, status string, _ time.Duration) {
	m.calls++
	m.method, m.route, m.status = method, route, status
}

func testConfig() *config.Config {
	return &config.Config{
		Environment: "local",
		Service:     "agrismart-weather",
		Security: config.SecurityConfig{
			CorsAllowedOrigins: []string{"*"},
		},
	}
}

func newTestServer(t *testing.T) *Server {
	t.Helper()
	srv, err := NewServer(testConfig(), slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	return srv
}

func TestNewServerRequiresDependencies(t *testing.T) {
	_, err := NewServer(nil, slog.New(slog.NewTextHandler(io.Discard, nil)))
	assert.Error(t, err)

	_, err = NewServer(testConfig(), nil)
	assert.Error(t, err)
}

func TestMountRoutesHealth(t *testing.T) {
	srv := newTestServer(t)
	srv.MountRoutes()

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Status  string `json:"status"`
		Service string `json:"service"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body.Status)
	assert.Equal(t, "agrismart-weather", body.Service)
}

func TestMountRoutesV1Registrars(t *testing.T) {
	srv := newTestServer(t)
	srv.V1RouteRegistrars = []func(chi.Router){
		func(r chi.Router) {
			r.Get("/ping", func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte("pong"))
			})
		},
	}
	srv.MountRoutes()

	req := httptest.NewRequest(http.MethodGet, "/v1/ping", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "pong", rec.Body.String())
}

func TestMetricsEndpointMountedOnlyWhenConfigured(t *testing.T) {
	srv := newTestServer(t)
	srv.MountRoutes()

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	srv2 := newTestServer(t)
	srv2.MetricsHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("# metrics"))
	})
	srv2.MountRoutes()

	rec = httptest.NewRecorder()
	srv2.Handler().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRecovererConvertsPanicTo500(t *testing.T) {
	srv := newTestServer(t)
	srv.V1RouteRegistrars = []func(chi.Router){
		func(r chi.Router) {
			r.Get("/boom", func(w http.ResponseWriter, r *http.Request) {
				panic("handler exploded")
			})
		},
	}
	srv.MountRoutes()

	req := httptest.NewRequest(http.MethodGet, "/v1/boom", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusInternalServerError, rec.Code)

	var resp APIErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "internal_unexpected_error", resp.Error.Code)
	assert.NotContains(t, rec.Body.String(), "handler exploded")
}

func TestRequestIDMiddlewareGeneratesAndEchoes(t *testing.T) {
	var seen string
	handler := RequestIDMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = types.GetRequestID(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.NotEmpty(t, seen)
	assert.Equal(t, seen, rec.Header().Get("X-Request-Id"))
}

func TestRequestIDMiddlewarePropagatesIncoming(t *testing.T) {
	var seen string
	handler := RequestIDMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = types.GetRequestID(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-Id", "caller-supplied-id")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, "caller-supplied-id", seen)
	assert.Equal(t, "caller-supplied-id", rec.Header().Get("X-Request-Id"))
}

func TestMetricsMiddlewareRecordsRoutePattern(t *testing.T) {
	srv := newTestServer(t)
	metrics := &recordingMetrics{}
	srv.Metrics = metrics
	srv.V1RouteRegistrars = []func(chi.Router){
		func(r chi.Router) {
			r.Get("/weather", func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
			})
		},
	}
	srv.MountRoutes()

	req := httptest.NewRequest(http.MethodGet, "/v1/weather", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	require.Equal(t, 1, metrics.calls)
	assert.Equal(t, http.MethodGet, metrics.method)
	assert.Equal(t, "/v1/weather", metrics.route)
	assert.Equal(t, "200", metrics.status)
}

func TestResponseCaptureDefaultsTo200(t *testing.T) {
	rec := httptest.NewRecorder()
	rc := &responseCapture{ResponseWriter: rec, statusCode: http.StatusOK}

	rc.Write([]byte("implicit ok"))
	assert.Equal(t, http.StatusOK, rc.statusCode)
	assert.True(t, rc.written)
}

func TestResponseCaptureKeepsFirstStatus(t *testing.T) {
	rec := httptest.NewRecorder()
	rc := &responseCapture{ResponseWriter: rec, statusCode: http.StatusOK}

	rc.WriteHeader(http.StatusBadGateway)
	rc.WriteHeader(http.StatusOK) // superfluous, must not overwrite
	assert.Equal(t, http.StatusBadGateway, rc.statusCode)
}

func TestErrorWritesAppErrorEnvelope(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(types.WithRequestID(req.Context(), "req-42"))
	rec := httptest.NewRecorder()

	Error(rec, req, types.NewAppErrorWithDetails(
		types.ErrCodeUpstreamWeather,
		"weather service unavailable",
		nil,
		map[string]any{"status": 503},
	))

	require.Equal(t, http.StatusBadGateway, rec.Code)

	var resp APIErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "upstream_weather_unavailable", resp.Error.Code)
	assert.Equal(t, "weather service unavailable", resp.Error.Message)
	assert.Equal(t, "req-42", resp.Error.RequestID)
}

func TestErrorHidesGenericErrors(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()

	Error(rec, req, errors.New("pq: connection refused"))

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "pq:")

	var resp APIErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "internal_unexpected_error", resp.Error.Code)
}

func TestValidatorParseLatitude(t *testing.T) {
	v := NewValidator()

	lat, err := v.ParseLatitude("27.5057")
	require.NoError(t, err)
	assert.Equal(t, 27.5057, lat)

	for _, raw := range []string{"abc", "90.0001", "-90.0001", ""} {
		_, err := v.ParseLatitude(raw)
		var appErr *types.AppError
		require.ErrorAs(t, err, &appErr, "input %q", raw)
		assert.Equal(t, types.ErrCodeValidationInvalidLat, appErr.Code)
	}
}

func TestValidatorParseLongitude(t *testing.T) {
	v := NewValidator()

	lon, err := v.ParseLongitude("-180")
	require.NoError(t, err)
	assert.Equal(t, -180.0, lon)

	for _, raw := range []string{"east", "180.5", "-181"} {
		_, err := v.ParseLongitude(raw)
		var appErr *types.AppError
		require.ErrorAs(t, err, &appErr, "input %q", raw)
		assert.Equal(t, types.ErrCodeValidationInvalidLon, appErr.Code)
	}
}
