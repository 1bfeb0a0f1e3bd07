package advisory

import (
	"sort"
	"time"

	"agrismart/internal/types"
)

// Rule thresholds. Each rule is a two-branch ladder producing at most one
// alert per category; the highest applicable severity within a category wins.
const (
	heatRedThresholdC    = 42.0
	heatOrangeThresholdC = 38.0

	rain24RedThresholdMM    = 100.0
	rain24OrangeThresholdMM = 50.0

	droughtRainAvgMM      = 2.0
	droughtTempThresholdC = 35.0

	frostThresholdC = 5.0

	windOrangeThresholdKmh = 25.0
	windYellowThresholdKmh = 15.0

	sprayWindMaxKmh = 15.0
	sprayUVMax      = 8.0
)

// Explicit alert priorities. Lower is more urgent; the final list is sorted
// ascending by priority with ties keeping insertion order. Values are spaced
// so future rules can slot in without renumbering.
const (
	priorityHeatRed    = 10
	priorityRainRed    = 11
	priorityFrost      = 12
	priorityHeatOrange = 20
	priorityRainOrange = 21
	priorityDrought    = 22
	priorityWindOrange = 23
	priorityWindYellow = 30
	prioritySpraying   = 40
	priorityFavorable  = 50
)

// Validity windows per category, measured from the observation time.
const (
	shortValidity = 6 * time.Hour
	dayValidity   = 24 * time.Hour
	weekValidity  = 7 * 24 * time.Hour
)

// DeriveAlerts evaluates the threshold rules against the observation and its
// projections and returns the prioritized alert list. The rules are
// independent across categories. The list is never empty: when no red or
// orange alert fired, a green "favorable" alert is appended so that an
// all-clear is explicit rather than an absence.
func DeriveAlerts(obs types.Observation, hourly []types.HourlyEntry, daily []types.DailyEntry) []types.Alert {
	var alerts []types.Alert

	if a, ok := heatRule(obs); ok {
		alerts = append(alerts, a)
	}
	if a, ok := heavyRainRule(obs, hourly); ok {
		alerts = append(alerts, a)
	}
	if a, ok := droughtRule(obs, daily); ok {
		alerts = append(alerts, a)
	}
	if a, ok := frostRule(obs, daily); ok {
		alerts = append(alerts, a)
	}
	if a, ok := windRule(obs); ok {
		alerts = append(alerts, a)
	}
	if a, ok := sprayingWindowRule(obs); ok {
		alerts = append(alerts, a)
	}

	if !hasCritical(alerts) {
		alerts = append(alerts, types.Alert{
			ID:             "favorable_green",
			Category:       types.AlertFavorable,
			Severity:       types.SeverityGreen,
			Message:        "Weather conditions are favorable for farming activities",
			Recommendation: "Proceed with planned field work; no critical conditions expected",
			Priority:       priorityFavorable,
			ValidFrom:      obs.Time,
			ValidUntil:     obs.Time.Add(dayValidity),
		})
	}

	// Stable sort: equal priorities keep insertion order.
	sort.SliceStable(alerts, func(i, j int) bool {
		return alerts[i].Priority < alerts[j].Priority
	})

	return alerts
}

// hasCritical reports whether any alert carries red or orange severity.
func hasCritical(alerts []types.Alert) bool {
	for _, a := range alerts {
		if a.Severity.IsCritical() {
			return true
		}
	}
	return false
}

// heatRule fires red above 42C, orange above 38C.
func heatRule(obs types.Observation) (types.Alert, bool) {
	switch {
	case obs.Temperature > heatRedThresholdC:
		return types.Alert{
			ID:             "heatwave_red",
			Category:       types.AlertHeatwave,
			Severity:       types.SeverityRed,
			Message:        "Extreme heat: temperatures above 42°C",
			Recommendation: "Irrigate in early morning or evening; shade young plants and livestock",
			Priority:       priorityHeatRed,
			ValidFrom:      obs.Time,
			ValidUntil:     obs.Time.Add(dayValidity),
		}, true
	case obs.Temperature > heatOrangeThresholdC:
		return types.Alert{
			ID:             "heatwave_orange",
			Category:       types.AlertHeatwave,
			Severity:       types.SeverityOrange,
			Message:        "High heat: temperatures above 38°C",
			Recommendation: "Increase irrigation frequency and avoid midday field work",
			Priority:       priorityHeatOrange,
			ValidFrom:      obs.Time,
			ValidUntil:     obs.Time.Add(dayValidity),
		}, true
	}
	return types.Alert{}, false
}

// heavyRainRule fires on the rainfall sum over the next 24 hourly entries:
// red above 100mm, orange above 50mm.
func heavyRainRule(obs types.Observation, hourly []types.HourlyEntry) (types.Alert, bool) {
	var sum float64
	for _, h := range hourly {
		sum += h.Rainfall
	}

	switch {
	case sum > rain24RedThresholdMM:
		return types.Alert{
			ID:             "heavy_rain_red",
			Category:       types.AlertHeavyRain,
			Severity:       types.SeverityRed,
			Message:        "Very heavy rainfall expected in the next 24 hours",
			Recommendation: "Clear drainage channels and postpone fertilizer application",
			Priority:       priorityRainRed,
			ValidFrom:      obs.Time,
			ValidUntil:     obs.Time.Add(dayValidity),
		}, true
	case sum > rain24OrangeThresholdMM:
		return types.Alert{
			ID:             "heavy_rain_orange",
			Category:       types.AlertHeavyRain,
			Severity:       types.SeverityOrange,
			Message:        "Heavy rainfall expected in the next 24 hours",
			Recommendation: "Check field drainage and delay spraying",
			Priority:       priorityRainOrange,
			ValidFrom:      obs.Time,
			ValidUntil:     obs.Time.Add(dayValidity),
		}, true
	}
	return types.Alert{}, false
}

// droughtRule fires orange when the 7-day average rainfall is strictly below
// 2mm and the current temperature exceeds 35C.
func droughtRule(obs types.Observation, daily []types.DailyEntry) (types.Alert, bool) {
	if len(daily) == 0 {
		return types.Alert{}, false
	}

	var sum float64
	for _, d := range daily {
		sum += d.RainfallSum
	}
	avg := sum / float64(len(daily))

	if avg < droughtRainAvgMM && obs.Temperature > droughtTempThresholdC {
		return types.Alert{
			ID:             "drought_orange",
			Category:       types.AlertDrought,
			Severity:       types.SeverityOrange,
			Message:        "Drought conditions: low rainfall with high temperatures",
			Recommendation: "Prioritize irrigation of vulnerable crops and mulch to retain moisture",
			Priority:       priorityDrought,
			ValidFrom:      obs.Time,
			ValidUntil:     obs.Time.Add(weekValidity),
		}, true
	}
	return types.Alert{}, false
}

// frostRule fires red when the projected 7-day minimum temperature drops
// below 5C, regardless of current conditions.
func frostRule(obs types.Observation, daily []types.DailyEntry) (types.Alert, bool) {
	if len(daily) == 0 {
		return types.Alert{}, false
	}

	minTemp := daily[0].TempMin
	for _, d := range daily[1:] {
		if d.TempMin < minTemp {
			minTemp = d.TempMin
		}
	}

	if minTemp < frostThresholdC {
		return types.Alert{
			ID:             "frost_red",
			Category:       types.AlertFrost,
			Severity:       types.SeverityRed,
			Message:        "Frost risk: temperatures below 5°C expected this week",
			Recommendation: "Cover sensitive crops overnight and delay transplanting",
			Priority:       priorityFrost,
			ValidFrom:      obs.Time,
			ValidUntil:     obs.Time.Add(weekValidity),
		}, true
	}
	return types.Alert{}, false
}

// windRule fires orange above 25 km/h and yellow for 15-25 km/h inclusive.
func windRule(obs types.Observation) (types.Alert, bool) {
	switch {
	case obs.WindSpeed > windOrangeThresholdKmh:
		return types.Alert{
			ID:             "strong_wind_orange",
			Category:       types.AlertStrongWind,
			Severity:       types.SeverityOrange,
			Message:        "Strong winds above 25 km/h",
			Recommendation: "Do not spray; secure row covers and greenhouse panels",
			Priority:       priorityWindOrange,
			ValidFrom:      obs.Time,
			ValidUntil:     obs.Time.Add(shortValidity),
		}, true
	case obs.WindSpeed >= windYellowThresholdKmh:
		return types.Alert{
			ID:             "strong_wind_yellow",
			Category:       types.AlertStrongWind,
			Severity:       types.SeverityYellow,
			Message:        "Moderate winds of 15-25 km/h",
			Recommendation: "Spray only with drift-reducing nozzles, or wait for calmer conditions",
			Priority:       priorityWindYellow,
			ValidFrom:      obs.Time,
			ValidUntil:     obs.Time.Add(shortValidity),
		}, true
	}
	return types.Alert{}, false
}

// sprayingWindowRule fires an additive green alert when current conditions
// are good for spraying: calm wind, no rain, and UV below 8. It is not
// exclusive with the other categories.
func sprayingWindowRule(obs types.Observation) (types.Alert, bool) {
	if obs.WindSpeed < sprayWindMaxKmh && obs.Rainfall == 0 && obs.UVIndex < sprayUVMax {
		return types.Alert{
			ID:             "spraying_conditions_green",
			Category:       types.AlertSpraying,
			Severity:       types.SeverityGreen,
			Message:        "Good spraying window: calm wind, no rain, moderate UV",
			Recommendation: "Apply pesticides or foliar fertilizer now",
			Priority:       prioritySpraying,
			ValidFrom:      obs.Time,
			ValidUntil:     obs.Time.Add(shortValidity),
		}, true
	}
	return types.Alert{}, false
}
