package telemetry

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scrape(t *testing.T, m *Metrics) string {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	return rec.Body.String()
}

func TestRecordRequestExposed(t *testing.T) {
	m := New("agrismart")
	m.RecordRequest("GET", "/v1/weather", "200", 42*time.Millisecond)
	m.RecordRequest("GET", "/v1/weather", "200", 17*time.Millisecond)
	m.RecordRequest("GET", "/v1/weather", "502", 3*time.Millisecond)

	body := scrape(t, m)
	assert.Contains(t, body, `agrismart_http_requests_total{method="GET",route="/v1/weather",status="200"} 2`)
	assert.Contains(t, body, `agrismart_http_requests_total{method="GET",route="/v1/weather",status="502"} 1`)
	assert.Contains(t, body, `agrismart_http_request_duration_seconds_count{method="GET",route="/v1/weather"} 3`)
}

func TestCacheEventsExposed(t *testing.T) {
	m := New("agrismart")
	m.CacheHit("weather")
	m.CacheHit("weather")
	m.CacheMiss("weather")
	m.CacheMiss("advice")

	body := scrape(t, m)
	assert.Contains(t, body, `agrismart_cache_events_total{cache="weather",event="hit"} 2`)
	assert.Contains(t, body, `agrismart_cache_events_total{cache="weather",event="miss"} 1`)
	assert.Contains(t, body, `agrismart_cache_events_total{cache="advice",event="miss"} 1`)
}

func TestRegistriesAreIsolated(t *testing.T) {
	a := New("agrismart")
	b := New("agrismart")
	a.CacheHit("weather")

	body := scrape(t, b)
	assert.False(t, strings.Contains(body, `event="hit"} 1`),
		"a second Metrics instance must not see the first instance's counts")
}
