package advisory

import (
	"math"

	"agrismart/internal/types"
)

// metricsWindow is the number of upcoming hourly entries averaged for the
// agricultural metrics. Missing entries contribute the fallback soil value.
const metricsWindow = 12

// soilMoistureFallback substitutes for each hourly entry missing from a
// short upstream series when averaging soil moisture.
const soilMoistureFallback = 60.0

// DeriveMetrics computes the categorical farming recommendations from the
// observation and the upcoming hourly window. It is a pure function,
// independent of the alert rule engine, and cannot fail.
func DeriveMetrics(obs types.Observation, hourly []types.HourlyEntry) types.AgriculturalMetrics {
	soil := averageSoilMoisture(hourly)
	avgWind, avgUV := windowAverages(obs, hourly)
	rain24 := rainfallSum(hourly)

	return types.AgriculturalMetrics{
		SoilMoisture:    int(math.Round(soil)),
		UVIndex:         int(math.Round(obs.UVIndex)),
		WindForSpraying: windBand(avgWind),
		Spraying:        sprayingAdvice(avgWind, avgUV, obs.Rainfall),
		Irrigation:      irrigationAdvice(soil, obs.Temperature, rain24),
		FieldOperations: fieldOpsBand(obs),
	}
}

// averageSoilMoisture means the soil-moisture estimates over the next
// metricsWindow hours, always dividing by the full window size with the
// fallback value substituted for missing entries.
func averageSoilMoisture(hourly []types.HourlyEntry) float64 {
	var sum float64
	for i := 0; i < metricsWindow; i++ {
		if i < len(hourly) {
			sum += hourly[i].SoilMoisture
		} else {
			sum += soilMoistureFallback
		}
	}
	return sum / metricsWindow
}

// windowAverages computes mean wind speed and UV index over the next
// metricsWindow hourly entries, falling back to the current observation
// when the series is empty.
func windowAverages(obs types.Observation, hourly []types.HourlyEntry) (avgWind, avgUV float64) {
	n := len(hourly)
	if n > metricsWindow {
		n = metricsWindow
	}
	if n == 0 {
		return obs.WindSpeed, obs.UVIndex
	}

	var windSum, uvSum float64
	for i := 0; i < n; i++ {
		windSum += hourly[i].WindSpeed
		uvSum += hourly[i].UVIndex
	}
	return windSum / float64(n), uvSum / float64(n)
}

// rainfallSum totals rainfall over the hourly projection (up to 24 entries).
func rainfallSum(hourly []types.HourlyEntry) float64 {
	var sum float64
	for _, h := range hourly {
		sum += h.Rainfall
	}
	return sum
}

// windBand classifies average wind speed for spraying.
func windBand(avgWind float64) types.WindBand {
	switch {
	case avgWind < 15:
		return types.WindOptimal
	case avgWind < 20:
		return types.WindModerate
	case avgWind < 25:
		return types.WindHigh
	default:
		return types.WindUnsuitable
	}
}

// sprayingAdvice derives the spraying recommendation from the averaged wind
// and UV plus the current rainfall rate.
func sprayingAdvice(avgWind, avgUV, currentRain float64) types.SprayingAdvice {
	switch {
	case avgWind < 15 && currentRain == 0 && avgUV < 8:
		return types.SprayRecommended
	case avgWind < 20 && currentRain == 0:
		return types.SprayCaution
	default:
		return types.SprayNotRecommended
	}
}

// irrigationAdvice derives the irrigation recommendation. Branches are
// evaluated in priority order; the first match wins.
func irrigationAdvice(soil, currentTemp, rain24 float64) types.IrrigationAdvice {
	switch {
	case soil < 40 || currentTemp > 35:
		return types.IrrigationIncrease
	case soil > 80 || rain24 > 50:
		return types.IrrigationDelay
	case soil > 60:
		return types.IrrigationDecrease
	default:
		return types.IrrigationProceed
	}
}

// fieldOpsBand classifies overall field-operation suitability from the
// current observation.
func fieldOpsBand(obs types.Observation) types.FieldOpsBand {
	switch {
	case obs.WindSpeed < 15 && obs.Rainfall == 0 && obs.Temperature < 38:
		return types.FieldOpsExcellent
	case obs.WindSpeed < 20 && obs.Rainfall < 5 && obs.Temperature < 40:
		return types.FieldOpsGood
	case obs.WindSpeed < 25 && obs.Rainfall < 10:
		return types.FieldOpsModerate
	default:
		return types.FieldOpsPoor
	}
}
