// Package config defines the typed configuration for the AgriSmart weather
// advisory service and its loading lifecycle (.env file, environment
// variables, struct validation).
package config

import "time"

// Config is the root configuration struct, populated from the environment
// via envconfig tags and validated with go-playground/validator.
type Config struct {
	// System metadata
	Environment string `envconfig:"APP_ENV" default:"local" validate:"required,oneof=local dev staging prod"`
	Service     string `envconfig:"SERVICE_NAME" default:"agrismart-weather"`
	LogLevel    string `envconfig:"LOG_LEVEL" default:"info" validate:"oneof=debug info warn error"`

	// Domain configurations
	Server   ServerConfig
	Upstream UpstreamConfig
	Cache    CacheConfig
	Location LocationConfig
	Security SecurityConfig
}

// ServerConfig holds HTTP server parameters.
type ServerConfig struct {
	Port           string        `envconfig:"PORT" default:"8080"`
	RequestTimeout time.Duration `envconfig:"REQUEST_TIMEOUT" default:"29s"`
}

// UpstreamConfig holds the external API endpoints and client tuning.
// Both calls are single-attempt: no retries, no circuit breaker. The timeout
// bounds how long a hung upstream can block one logical operation.
type UpstreamConfig struct {
	ForecastBaseURL string        `envconfig:"FORECAST_API_URL" default:"https://api.open-meteo.com/v1/forecast" validate:"required,url"`
	GeocodeBaseURL  string        `envconfig:"GEOCODE_API_URL" default:"https://nominatim.openstreetmap.org/reverse" validate:"required,url"`
	Timeout         time.Duration `envconfig:"UPSTREAM_TIMEOUT" default:"10s"`
	UserAgent       string        `envconfig:"UPSTREAM_USER_AGENT" default:"agrismart-weather/1.0"`
}

// CacheConfig holds the validity windows for the in-process caches.
type CacheConfig struct {
	WeatherTTL time.Duration `envconfig:"WEATHER_CACHE_TTL" default:"15m"`
	AdviceTTL  time.Duration `envconfig:"ADVICE_CACHE_TTL" default:"15m"`
}

// LocationConfig holds the default coordinate used when a request carries no
// coordinate of its own.
type LocationConfig struct {
	DefaultLat  float64 `envconfig:"DEFAULT_LAT" default:"27.5057" validate:"min=-90,max=90"`
	DefaultLon  float64 `envconfig:"DEFAULT_LON" default:"83.4163" validate:"min=-180,max=180"`
	DefaultName string  `envconfig:"DEFAULT_LOCATION" default:"Bhairahawa"`
}

// SecurityConfig holds browser-facing security settings.
type SecurityConfig struct {
	CorsAllowedOrigins []string `envconfig:"CORS_ALLOWED_ORIGINS" default:"*"`
}
