package advisory

import (
	"math"

	"agrismart/internal/types"
)

// warmingTrendC is the assumed year-over-year temperature increase used for
// the synthetic last-year estimate.
const warmingTrendC = 1.2

// seasonalAmplitudeC is the amplitude of the seasonal adjustment applied to
// the synthetic estimate so that it varies smoothly over the year.
const seasonalAmplitudeC = 0.4

// DeriveHistory produces the synthetic same-period-last-year comparison
// block. The estimate is modeled (a fixed warming trend plus a small
// seasonal term), not retrieved from an archive; it exists so that consumers
// can render a year-over-year deviation without a historical data source.
func DeriveHistory(obs types.Observation, daily []types.DailyEntry) types.HistoricalComparison {
	seasonal := seasonalAmplitudeC * math.Sin(2*math.Pi*float64(obs.Time.YearDay())/365)
	lastYearTemp := round1(obs.Temperature - warmingTrendC + seasonal)

	var rain7 float64
	for _, d := range daily {
		rain7 += d.RainfallSum
	}
	// Model last year's same-period rainfall as slightly below the current
	// projection, consistent with the warming-trend assumption above.
	lastYearRain := round1(rain7 * 0.9)

	return types.HistoricalComparison{
		LastYearTemperature:  lastYearTemp,
		TemperatureDeviation: round1(obs.Temperature - lastYearTemp),
		LastYearRainfall:     lastYearRain,
		RainfallDeviation:    round1(rain7 - lastYearRain),
	}
}

// round1 rounds to one decimal place for display stability.
func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
