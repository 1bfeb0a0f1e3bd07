package advisory

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"agrismart/internal/cache"
	"agrismart/internal/external"
	"agrismart/internal/types"
)

// CacheEvents receives cache hit/miss notifications for telemetry.
// Implementations must be safe for concurrent use.
type CacheEvents interface {
	CacheHit(cacheName string)
	CacheMiss(cacheName string)
}

// noopCacheEvents is used when no telemetry sink is provided.
type noopCacheEvents struct{}

func (noopCacheEvents) CacheHit(string)  {}
func (noopCacheEvents) CacheMiss(string) {}

// Query identifies the location a caller wants advisories for. Lat/Lon are
// optional together; when absent the service's default coordinate is used.
// Name is the caller-supplied display name, used as the fallback when
// reverse geocoding degrades.
type Query struct {
	Lat  *float64
	Lon  *float64
	Name string
}

// Service orchestrates the advisory pipeline: fetch observations, project
// them, evaluate alert rules and agricultural metrics, assemble the result,
// and memoize it. Callers may invoke it concurrently; the only shared state
// is the cache layer.
type Service struct {
	forecasts external.ForecastClient
	geocoder  external.Geocoder

	weatherCache *cache.TTLStore[*types.WeatherResult]
	adviceCache  *cache.TTLStore[Advice]

	defaultLat  float64
	defaultLon  float64
	defaultName string

	logger *slog.Logger
	events CacheEvents
}

// ServiceOption configures optional Service dependencies.
type ServiceOption func(*Service)

// WithCacheEvents wires a telemetry sink for cache hits and misses.
func WithCacheEvents(events CacheEvents) ServiceOption {
	return func(s *Service) { s.events = events }
}

// NewService creates the advisory service. weatherCache and adviceCache must
// be non-nil; they are constructed once per process and injected so tests
// can control the clock.
func NewService(
	forecasts external.ForecastClient,
	geocoder external.Geocoder,
	weatherCache *cache.TTLStore[*types.WeatherResult],
	adviceCache *cache.TTLStore[Advice],
	defaultLat, defaultLon float64,
	defaultName string,
	logger *slog.Logger,
	opts ...ServiceOption,
) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Service{
		forecasts:    forecasts,
		geocoder:     geocoder,
		weatherCache: weatherCache,
		adviceCache:  adviceCache,
		defaultLat:   defaultLat,
		defaultLon:   defaultLon,
		defaultName:  defaultName,
		logger:       logger,
		events:       noopCacheEvents{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GetWeather returns the assembled WeatherResult for the queried location,
// served from cache within the validity window. On a miss it fetches fresh
// observations and overwrites the prior cached entry for that coordinate.
//
// The forecast call is mandatory: its failure fails the whole operation with
// upstream_weather_unavailable and no partial result. The geocode call is
// cosmetic: its failure silently falls back to the caller-supplied name.
func (s *Service) GetWeather(ctx context.Context, q Query) (*types.WeatherResult, error) {
	lat, lon, name := s.resolve(q)

	key := cache.CoordinateKey(lat, lon)
	if cached, ok := s.weatherCache.Get(key); ok {
		s.events.CacheHit("weather")
		return cached, nil
	}
	s.events.CacheMiss("weather")

	result, err := s.fetchAndAssemble(ctx, lat, lon, name)
	if err != nil {
		return nil, err
	}

	s.weatherCache.Set(key, result)
	return result, nil
}

// GetAdvice returns the advisory text for the queried location in the given
// language, memoized per (locationID, language).
func (s *Service) GetAdvice(ctx context.Context, q Query, lang string) (Advice, error) {
	if !SupportedLanguage(lang) {
		return Advice{}, types.NewAppErrorWithDetails(
			types.ErrCodeValidationInvalidLanguage,
			fmt.Sprintf("unsupported language %q", lang),
			nil,
			map[string]any{"supported": []string{LangEnglish, LangNepali}},
		)
	}

	lat, lon, _ := s.resolve(q)
	key := cache.AdviceKey(locationID(lat, lon), lang)
	if cached, ok := s.adviceCache.Get(key); ok {
		s.events.CacheHit("advice")
		return cached, nil
	}
	s.events.CacheMiss("advice")

	result, err := s.GetWeather(ctx, q)
	if err != nil {
		return Advice{}, err
	}

	advice := ComposeAdvice(result, lang)
	s.adviceCache.Set(key, advice)
	return advice, nil
}

// resolve applies the default coordinate when the query carries none.
func (s *Service) resolve(q Query) (lat, lon float64, name string) {
	lat, lon = s.defaultLat, s.defaultLon
	if q.Lat != nil && q.Lon != nil {
		lat, lon = *q.Lat, *q.Lon
	}
	name = q.Name
	if name == "" {
		name = s.defaultName
	}
	return lat, lon, name
}

// fetchAndAssemble runs the full pipeline for one coordinate. The geocode
// and forecast calls are independent lookups on the same coordinate, so
// they run concurrently; only the forecast failure aborts.
func (s *Service) fetchAndAssemble(ctx context.Context, lat, lon float64, fallbackName string) (*types.WeatherResult, error) {
	var (
		payload *external.ForecastPayload
		name    = fallbackName
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		p, err := s.forecasts.Fetch(gctx, lat, lon)
		if err != nil {
			return err
		}
		payload = p
		return nil
	})

	g.Go(func() error {
		resolved, err := s.geocoder.ReverseGeocode(gctx, lat, lon)
		if err != nil {
			// Degraded, not fatal: keep the caller-supplied name.
			s.logger.WarnContext(gctx, "reverse geocoding degraded",
				"lat", lat,
				"lon", lon,
				"error", err,
			)
			return nil
		}
		name = resolved
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	obs := ParseObservation(payload)
	hourly := ProjectHourly(payload)
	daily := ProjectDaily(payload)

	return &types.WeatherResult{
		LocationID:   locationID(lat, lon),
		LocationName: name,
		Timestamp:    obs.Time,

		Temperature: obs.Temperature,
		Rainfall:    obs.Rainfall,
		Humidity:    obs.Humidity,
		WindSpeed:   obs.WindSpeed,
		Condition:   ConditionLabel(obs.WeatherCode),
		UVIndex:     obs.UVIndex,

		Alerts:               DeriveAlerts(obs, hourly, daily),
		HourlyForecast:       hourly,
		Forecast7Day:         daily,
		AgriculturalMetrics:  DeriveMetrics(obs, hourly),
		HistoricalComparison: DeriveHistory(obs, daily),
	}, nil
}

// locationID derives the stable location identity from the rounded
// coordinate, matching the weather cache key granularity.
func locationID(lat, lon float64) string {
	return fmt.Sprintf("loc_%.4f_%.4f", lat, lon)
}
