package external

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"agrismart/internal/types"
)

// Open-Meteo field lists requested on every fetch. The hourly and daily
// blocks come back as parallel arrays keyed by field name with a shared
// time index array.
const (
	currentFields = "temperature_2m,relative_humidity_2m,precipitation,weather_code,wind_speed_10m,uv_index"
	hourlyFields  = "temperature_2m,precipitation,relative_humidity_2m,weather_code,wind_speed_10m,uv_index"
	dailyFields   = "weather_code,temperature_2m_max,temperature_2m_min,precipitation_sum,wind_speed_10m_max"

	// forecastDays is the horizon requested from the upstream.
	forecastDays = 7
)

// TimeLayout is the minute-resolution timestamp format used by Open-Meteo
// for the current and hourly time fields.
const TimeLayout = "2006-01-02T15:04"

// DateLayout is the day-resolution format used for the daily time field.
const DateLayout = "2006-01-02"

// ForecastClient retrieves raw weather observations for a coordinate.
type ForecastClient interface {
	// Fetch performs a single forecast retrieval. It fails closed: any
	// network error, non-2xx status, or malformed payload yields a
	// types.AppError with code upstream_weather_unavailable and no
	// partial result.
	Fetch(ctx context.Context, lat, lon float64) (*ForecastPayload, error)
}

// ForecastPayload is the validated upstream response. Field names follow the
// Open-Meteo wire format.
type ForecastPayload struct {
	Latitude  float64       `json:"latitude"`
	Longitude float64       `json:"longitude"`
	Timezone  string        `json:"timezone"`
	Current   CurrentBlock  `json:"current"`
	Hourly    HourlyBlock   `json:"hourly"`
	Daily     DailyBlock    `json:"daily"`
}

// CurrentBlock is the current-conditions section of the response.
type CurrentBlock struct {
	Time          string  `json:"time"`
	Temperature2M float64 `json:"temperature_2m"`
	Humidity2M    float64 `json:"relative_humidity_2m"`
	Precipitation float64 `json:"precipitation"`
	WeatherCode   int     `json:"weather_code"`
	WindSpeed10M  float64 `json:"wind_speed_10m"`
	UVIndex       float64 `json:"uv_index"`
}

// HourlyBlock holds the parallel hourly arrays keyed by the shared time index.
type HourlyBlock struct {
	Time          []string  `json:"time"`
	Temperature2M []float64 `json:"temperature_2m"`
	Precipitation []float64 `json:"precipitation"`
	Humidity2M    []float64 `json:"relative_humidity_2m"`
	WeatherCode   []int     `json:"weather_code"`
	WindSpeed10M  []float64 `json:"wind_speed_10m"`
	UVIndex       []float64 `json:"uv_index"`
}

// DailyBlock holds the parallel daily arrays keyed by the shared time index.
type DailyBlock struct {
	Time             []string  `json:"time"`
	WeatherCode      []int     `json:"weather_code"`
	Temperature2MMax []float64 `json:"temperature_2m_max"`
	Temperature2MMin []float64 `json:"temperature_2m_min"`
	PrecipitationSum []float64 `json:"precipitation_sum"`
	WindSpeed10MMax  []float64 `json:"wind_speed_10m_max"`
}

// openMeteoClient implements ForecastClient against the Open-Meteo API.
type openMeteoClient struct {
	base    *BaseClient
	baseURL string
	logger  *slog.Logger
}

// NewOpenMeteoClient creates a ForecastClient for the given endpoint.
func NewOpenMeteoClient(base *BaseClient, baseURL string, logger *slog.Logger) ForecastClient {
	if logger == nil {
		logger = slog.Default()
	}
	return &openMeteoClient{
		base:    base,
		baseURL: baseURL,
		logger:  logger,
	}
}

// Fetch performs the single mandatory forecast call.
func (c *openMeteoClient) Fetch(ctx context.Context, lat, lon float64) (*ForecastPayload, error) {
	q := url.Values{}
	q.Set("latitude", strconv.FormatFloat(lat, 'f', 4, 64))
	q.Set("longitude", strconv.FormatFloat(lon, 'f', 4, 64))
	q.Set("current", currentFields)
	q.Set("hourly", hourlyFields)
	q.Set("daily", dailyFields)
	q.Set("timezone", "auto")
	q.Set("forecast_days", strconv.Itoa(forecastDays))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, types.NewAppError(
			types.ErrCodeInternalUnexpected,
			"failed to build forecast request",
			err,
		)
	}

	resp, err := c.base.Do(req)
	if err != nil {
		return nil, types.NewAppError(
			types.ErrCodeUpstreamWeather,
			"weather service unavailable",
			err,
		)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, types.NewAppErrorWithDetails(
			types.ErrCodeUpstreamWeather,
			"weather service unavailable",
			nil,
			map[string]any{"status": resp.StatusCode},
		)
	}

	var payload ForecastPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, types.NewAppError(
			types.ErrCodeUpstreamWeather,
			"weather service returned malformed data",
			err,
		)
	}

	if err := payload.validate(); err != nil {
		return nil, types.NewAppError(
			types.ErrCodeUpstreamWeather,
			"weather service returned malformed data",
			err,
		)
	}

	return &payload, nil
}

// validate checks the payload at the fetch boundary so that downstream
// projection and rule evaluation are total over their inputs. Missing arrays
// or mismatched parallel-array lengths fail closed rather than propagating
// as zero values.
func (p *ForecastPayload) validate() error {
	if p.Current.Time == "" {
		return fmt.Errorf("current block missing time")
	}

	h := p.Hourly
	if len(h.Time) == 0 {
		return fmt.Errorf("hourly block missing time index")
	}
	for name, n := range map[string]int{
		"temperature_2m":       len(h.Temperature2M),
		"precipitation":        len(h.Precipitation),
		"relative_humidity_2m": len(h.Humidity2M),
		"weather_code":         len(h.WeatherCode),
		"wind_speed_10m":       len(h.WindSpeed10M),
		"uv_index":             len(h.UVIndex),
	} {
		if n != len(h.Time) {
			return fmt.Errorf("hourly %s has %d entries, want %d", name, n, len(h.Time))
		}
	}

	d := p.Daily
	if len(d.Time) == 0 {
		return fmt.Errorf("daily block missing time index")
	}
	for name, n := range map[string]int{
		"weather_code":       len(d.WeatherCode),
		"temperature_2m_max": len(d.Temperature2MMax),
		"temperature_2m_min": len(d.Temperature2MMin),
		"precipitation_sum":  len(d.PrecipitationSum),
		"wind_speed_10m_max": len(d.WindSpeed10MMax),
	} {
		if n != len(d.Time) {
			return fmt.Errorf("daily %s has %d entries, want %d", name, n, len(d.Time))
		}
	}

	return nil
}
