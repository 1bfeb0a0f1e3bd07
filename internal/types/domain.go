// Package types defines the shared domain model for the AgriSmart weather
// advisory service: observations, projections, alerts, agricultural metrics,
// the assembled weather result, and the error taxonomy.
package types

import "time"

// Observation is a point-in-time snapshot of current conditions at a
// coordinate. Produced once per upstream fetch and immutable afterwards.
type Observation struct {
	Time        time.Time `json:"time"`
	Temperature float64   `json:"temperature"`   // degrees Celsius
	Humidity    float64   `json:"humidity"`      // relative humidity, percent
	WindSpeed   float64   `json:"windSpeed"`     // km/h
	Rainfall    float64   `json:"rainfall"`      // precipitation rate, mm
	WeatherCode int       `json:"weatherCode"`   // WMO weather interpretation code
	UVIndex     float64   `json:"uvIndex"`
}

// HourlyEntry is a single hour in the 24-hour projection.
//
// SoilMoisture is a heuristic proxy derived from rainfall and temperature,
// not a measured value. It is bounded to [0, 100].
type HourlyEntry struct {
	Hour         string  `json:"hour"` // clock label, e.g. "14:00"
	Temperature  float64 `json:"temperature"`
	Rainfall     float64 `json:"rainfall"`
	Humidity     float64 `json:"humidity"`
	Condition    string  `json:"condition"`
	WindSpeed    float64 `json:"windSpeed"`
	UVIndex      float64 `json:"uvIndex"`
	SoilMoisture float64 `json:"soilMoisture"`
}

// DailyEntry is a single calendar day in the 7-day projection.
// Entries are chronologically ascending and the first entry is today.
type DailyEntry struct {
	Date         time.Time `json:"date"`
	TempMean     float64   `json:"tempMean"`
	TempMin      float64   `json:"tempMin"`
	TempMax      float64   `json:"tempMax"`
	Condition    string    `json:"condition"`
	RainfallSum  float64   `json:"rainfallSum"`
	WindSpeedMax float64   `json:"windSpeedMax"`
}

// Alert is a categorized, severity-ranked advisory notice. ID doubles as the
// dedup key within a single evaluation. Priority defines the sort order of a
// result's alert list: lower means more urgent, ties keep insertion order.
type Alert struct {
	ID             string        `json:"id"`
	Category       AlertCategory `json:"category"`
	Severity       Severity      `json:"severity"`
	Message        string        `json:"message"`
	Recommendation string        `json:"recommendation"`
	Priority       int           `json:"priority"`
	ValidFrom      time.Time     `json:"validFrom"`
	ValidUntil     time.Time     `json:"validUntil"`
}

// AgriculturalMetrics is the derived categorical recommendation snapshot.
// It is a pure function of the Observation and the upcoming hourly window,
// recomputed on every evaluation and never mutated.
type AgriculturalMetrics struct {
	SoilMoisture    int              `json:"soilMoisture"` // probability, percent
	UVIndex         int              `json:"uvIndex"`
	WindForSpraying WindBand         `json:"windForSpraying"`
	Spraying        SprayingAdvice   `json:"sprayingRecommendation"`
	Irrigation      IrrigationAdvice `json:"irrigationRecommendation"`
	FieldOperations FieldOpsBand     `json:"fieldOperationSuitability"`
}

// HistoricalComparison is a synthetic estimate of same-period-last-year
// conditions with the deviation of the current observation from it. The
// estimate is modeled, not measured.
type HistoricalComparison struct {
	LastYearTemperature  float64 `json:"lastYearTemperature"`
	TemperatureDeviation float64 `json:"temperatureDeviation"`
	LastYearRainfall     float64 `json:"lastYearRainfall"`
	RainfallDeviation    float64 `json:"rainfallDeviation"`
}

// WeatherResult is the assembled advisory output for one coordinate. It is
// owned by the cache layer between fetches; callers receive it read-only and
// must not mutate it. A result is replaced wholesale on refresh, never
// partially updated.
type WeatherResult struct {
	LocationID   string    `json:"locationId"`
	LocationName string    `json:"locationName"`
	Timestamp    time.Time `json:"timestamp"`

	// Current observation, flattened.
	Temperature float64 `json:"temperature"`
	Rainfall    float64 `json:"rainfall"`
	Humidity    float64 `json:"humidity"`
	WindSpeed   float64 `json:"windSpeed"`
	Condition   string  `json:"condition"`
	UVIndex     float64 `json:"uvIndex"`

	Alerts               []Alert              `json:"alerts"`
	HourlyForecast       []HourlyEntry        `json:"hourlyForecast"`
	Forecast7Day         []DailyEntry         `json:"forecast7Day"`
	AgriculturalMetrics  AgriculturalMetrics  `json:"agriculturalMetrics"`
	HistoricalComparison HistoricalComparison `json:"historicalComparison"`
}
