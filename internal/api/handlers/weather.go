// Package handlers contains the HTTP handler implementations for the
// AgriSmart weather advisory API:
//   - Weather result retrieval (GET /v1/weather)
//   - Advisory text retrieval (GET /v1/weather/advice)
package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"agrismart/internal/advisory"
	"agrismart/internal/core"
	"agrismart/internal/types"
)

// AdvisoryServiceInterface defines the service contract for the weather
// handler. It matches the advisory.Service methods but is declared locally
// to keep the handler decoupled from the concrete service.
type AdvisoryServiceInterface interface {
	GetWeather(ctx context.Context, q advisory.Query) (*types.WeatherResult, error)
	GetAdvice(ctx context.Context, q advisory.Query, lang string) (advisory.Advice, error)
}

// WeatherHandler maps HTTP requests to advisory service methods.
type WeatherHandler struct {
	service   AdvisoryServiceInterface
	validator *core.Validator
	logger    *slog.Logger
}

// NewWeatherHandler creates a WeatherHandler with the provided dependencies.
func NewWeatherHandler(svc AdvisoryServiceInterface, val *core.Validator, logger *slog.Logger) *WeatherHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &WeatherHandler{
		service:   svc,
		validator: val,
		logger:    logger,
	}
}

// RegisterRoutes mounts the weather endpoints onto the router.
func (h *WeatherHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.HandleGetWeather)
	r.Get("/advice", h.HandleGetAdvice)
}

// HandleGetWeather handles GET /v1/weather.
//
// Query parameters: lat and lon (optional together; the configured default
// coordinate is used when absent) and location (optional display-name
// fallback used when reverse geocoding degrades).
func (h *WeatherHandler) HandleGetWeather(w http.ResponseWriter, r *http.Request) {
	q, err := h.parseQuery(r)
	if err != nil {
		core.Error(w, r, err)
		return
	}

	result, err := h.service.GetWeather(r.Context(), q)
	if err != nil {
		core.Error(w, r, err)
		return
	}

	core.JSON(w, r, http.StatusOK, core.APIResponse{Data: result})
}

// HandleGetAdvice handles GET /v1/weather/advice.
//
// Accepts the same location parameters as HandleGetWeather plus lang
// (defaults to "en").
func (h *WeatherHandler) HandleGetAdvice(w http.ResponseWriter, r *http.Request) {
	q, err := h.parseQuery(r)
	if err != nil {
		core.Error(w, r, err)
		return
	}

	lang := r.URL.Query().Get("lang")
	if lang == "" {
		lang = advisory.LangEnglish
	}

	advice, err := h.service.GetAdvice(r.Context(), q, lang)
	if err != nil {
		core.Error(w, r, err)
		return
	}

	core.JSON(w, r, http.StatusOK, core.APIResponse{Data: advice})
}

// parseQuery extracts and validates the shared location parameters. lat and
// lon must be supplied together; supplying only one is a validation error.
func (h *WeatherHandler) parseQuery(r *http.Request) (advisory.Query, error) {
	values := r.URL.Query()
	q := advisory.Query{Name: values.Get("location")}

	latStr := values.Get("lat")
	lonStr := values.Get("lon")
	if latStr == "" && lonStr == "" {
		return q, nil
	}
	if latStr == "" || lonStr == "" {
		return q, types.NewAppError(
			types.ErrCodeValidationMissingField,
			"lat and lon must be supplied together",
			nil,
		)
	}

	lat, err := h.validator.ParseLatitude(latStr)
	if err != nil {
		return q, err
	}
	lon, err := h.validator.ParseLongitude(lonStr)
	if err != nil {
		return q, err
	}

	q.Lat = &lat
	q.Lon = &lon
	return q, nil
}
