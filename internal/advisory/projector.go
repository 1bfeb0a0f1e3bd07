// Package advisory implements the weather-alert derivation and
// agricultural-recommendation engine: projection of raw upstream arrays into
// hourly/daily sequences, threshold-rule alert evaluation, categorical
// farming metrics, and the orchestrating service with its TTL cache.
package advisory

import (
	"time"

	"agrismart/internal/external"
	"agrismart/internal/types"
)

// HourlyHorizon is the number of entries in the hourly projection when the
// upstream series permits. Shorter upstream data produces a shorter
// projection, never an error.
const HourlyHorizon = 24

// DailyHorizon is the number of entries in the daily projection.
const DailyHorizon = 7

// ConditionLabel maps a WMO weather interpretation code to a display label.
// The ranges are disjoint; any code outside them is "Unknown".
func ConditionLabel(code int) string {
	switch {
	case code == 0:
		return "Clear"
	case code >= 1 && code <= 3:
		return "Partly Cloudy"
	case code == 45 || code == 48:
		return "Fog"
	case code >= 51 && code <= 55:
		return "Drizzle"
	case code >= 61 && code <= 67:
		return "Rain"
	case code >= 71 && code <= 77:
		return "Snow"
	case code >= 80 && code <= 82:
		return "Showers"
	case code >= 95 && code <= 99:
		return "Thunderstorm"
	default:
		return "Unknown"
	}
}

// SoilMoistureEstimate derives the heuristic soil-moisture proxy for one
// hour from its rainfall (mm) and temperature (degrees C):
//
//	clamp(0, 100, 60 + rainfall*5 - max(0, temperature-25)*2)
//
// This is a modeled proxy, not measured ground truth. It rises with recent
// rainfall and falls with temperatures above 25 degrees.
func SoilMoistureEstimate(rainfall, temperature float64) float64 {
	heatPenalty := 0.0
	if temperature > 25 {
		heatPenalty = (temperature - 25) * 2
	}
	estimate := 60 + rainfall*5 - heatPenalty
	if estimate < 0 {
		return 0
	}
	if estimate > 100 {
		return 100
	}
	return estimate
}

// ParseObservation converts the validated current block into an Observation.
func ParseObservation(p *external.ForecastPayload) types.Observation {
	// The payload was validated at the fetch boundary, so a parse failure
	// here can only come from an unexpected timestamp format; fall back to
	// the zero time rather than failing the whole evaluation.
	obsTime, err := time.Parse(external.TimeLayout, p.Current.Time)
	if err != nil {
		obsTime = time.Time{}
	}
	return types.Observation{
		Time:        obsTime,
		Temperature: p.Current.Temperature2M,
		Humidity:    p.Current.Humidity2M,
		WindSpeed:   p.Current.WindSpeed10M,
		Rainfall:    p.Current.Precipitation,
		WeatherCode: p.Current.WeatherCode,
		UVIndex:     p.Current.UVIndex,
	}
}

// ProjectHourly builds the 24-hour projection starting at the hourly index
// whose timestamp matches the current observation (index 0 if no match),
// clipping when fewer than 24 entries remain.
func ProjectHourly(p *external.ForecastPayload) []types.HourlyEntry {
	h := p.Hourly

	start := 0
	current := p.Current.Time
	// Open-Meteo reports the current time at minute resolution while the
	// hourly index is on the hour; compare on the hour prefix.
	currentHour := truncateToHour(current)
	for i, ts := range h.Time {
		if truncateToHour(ts) == currentHour {
			start = i
			break
		}
	}

	end := start + HourlyHorizon
	if end > len(h.Time) {
		end = len(h.Time)
	}

	entries := make([]types.HourlyEntry, 0, end-start)
	for i := start; i < end; i++ {
		entries = append(entries, types.HourlyEntry{
			Hour:         hourLabel(h.Time[i]),
			Temperature:  h.Temperature2M[i],
			Rainfall:     h.Precipitation[i],
			Humidity:     h.Humidity2M[i],
			Condition:    ConditionLabel(h.WeatherCode[i]),
			WindSpeed:    h.WindSpeed10M[i],
			UVIndex:      h.UVIndex[i],
			SoilMoisture: SoilMoistureEstimate(h.Precipitation[i], h.Temperature2M[i]),
		})
	}
	return entries
}

// ProjectDaily builds the 7-day projection: one entry per calendar day,
// chronologically ascending, first entry today. The mean temperature is the
// midpoint of the daily extremes (the upstream does not report a daily mean).
func ProjectDaily(p *external.ForecastPayload) []types.DailyEntry {
	d := p.Daily

	n := len(d.Time)
	if n > DailyHorizon {
		n = DailyHorizon
	}

	entries := make([]types.DailyEntry, 0, n)
	for i := 0; i < n; i++ {
		date, err := time.Parse(external.DateLayout, d.Time[i])
		if err != nil {
			continue
		}
		entries = append(entries, types.DailyEntry{
			Date:         date,
			TempMean:     (d.Temperature2MMin[i] + d.Temperature2MMax[i]) / 2,
			TempMin:      d.Temperature2MMin[i],
			TempMax:      d.Temperature2MMax[i],
			Condition:    ConditionLabel(d.WeatherCode[i]),
			RainfallSum:  d.PrecipitationSum[i],
			WindSpeedMax: d.WindSpeed10MMax[i],
		})
	}
	return entries
}

// truncateToHour reduces a minute-resolution timestamp string
// ("2006-01-02T15:04") to its hour component ("2006-01-02T15").
func truncateToHour(ts string) string {
	if len(ts) < 13 {
		return ts
	}
	return ts[:13]
}

// hourLabel extracts the clock label ("15:00") from an hourly timestamp.
func hourLabel(ts string) string {
	if len(ts) < 13 {
		return ts
	}
	return ts[11:13] + ":00"
}
