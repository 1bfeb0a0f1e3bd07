package advisory

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agrismart/internal/types"
)

func calmObservation() types.Observation {
	return types.Observation{
		Time:        time.Date(2025, 4, 15, 12, 0, 0, 0, time.UTC),
		Temperature: 25,
		Humidity:    55,
		WindSpeed:   8,
		Rainfall:    0,
		WeatherCode: 1,
		UVIndex:     4,
	}
}

// mildDaily builds a 7-day projection that triggers no drought or frost:
// minimums well above 5C, rainfall average well above 2mm.
func mildDaily() []types.DailyEntry {
	base := time.Date(2025, 4, 15, 0, 0, 0, 0, time.UTC)
	daily := make([]types.DailyEntry, 7)
	for i := range daily {
		daily[i] = types.DailyEntry{
			Date:        base.AddDate(0, 0, i),
			TempMin:     14,
			TempMax:     28,
			TempMean:    21,
			Condition:   "Partly Cloudy",
			RainfallSum: 3,
		}
	}
	return daily
}

func dryHourly() []types.HourlyEntry {
	hourly := make([]types.HourlyEntry, 24)
	for i := range hourly {
		hourly[i] = types.HourlyEntry{
			Hour:         "12:00",
			Temperature:  25,
			Rainfall:     0,
			SoilMoisture: 60,
		}
	}
	return hourly
}

func alertsByCategory(alerts []types.Alert) map[types.AlertCategory]types.Alert {
	m := make(map[types.AlertCategory]types.Alert, len(alerts))
	for _, a := range alerts {
		m[a.Category] = a
	}
	return m
}

func TestDeriveAlertsNeverEmpty(t *testing.T) {
	alerts := DeriveAlerts(types.Observation{}, nil, nil)
	assert.NotEmpty(t, alerts)
}

func TestDeriveAlertsSortedByPriority(t *testing.T) {
	// An observation that trips several categories at once.
	obs := calmObservation()
	obs.Temperature = 43
	obs.WindSpeed = 30
	obs.UVIndex = 9

	hourly := dryHourly()
	for i := range hourly {
		hourly[i].Rainfall = 5 // 120mm over 24h, red rain
	}
	daily := mildDaily()
	daily[2].TempMin = 2 // frost

	alerts := DeriveAlerts(obs, hourly, daily)
	require.GreaterOrEqual(t, len(alerts), 4)
	for i := 1; i < len(alerts); i++ {
		assert.LessOrEqual(t, alerts[i-1].Priority, alerts[i].Priority)
	}
}

func TestDeriveAlertsHeatwaveScenario(t *testing.T) {
	obs := calmObservation()
	obs.Temperature = 43
	obs.UVIndex = 9 // suppress the spraying window

	alerts := DeriveAlerts(obs, dryHourly(), mildDaily())

	byCat := alertsByCategory(alerts)
	heat, ok := byCat[types.AlertHeatwave]
	require.True(t, ok)
	assert.Equal(t, types.SeverityRed, heat.Severity)
	assert.Equal(t, "heatwave_red", heat.ID)

	heatCount := 0
	for _, a := range alerts {
		if a.Category == types.AlertHeatwave {
			heatCount++
		}
	}
	assert.Equal(t, 1, heatCount)
	assert.NotContains(t, byCat, types.AlertFavorable)
}

func TestDeriveAlertsHeatOrangeBand(t *testing.T) {
	obs := calmObservation()
	obs.Temperature = 39

	alerts := DeriveAlerts(obs, dryHourly(), mildDaily())
	byCat := alertsByCategory(alerts)
	require.Contains(t, byCat, types.AlertHeatwave)
	assert.Equal(t, types.SeverityOrange, byCat[types.AlertHeatwave].Severity)
	assert.NotContains(t, byCat, types.AlertFavorable)
}

func TestDeriveAlertsAllClearScenario(t *testing.T) {
	alerts := DeriveAlerts(calmObservation(), dryHourly(), mildDaily())

	byCat := alertsByCategory(alerts)
	require.Contains(t, byCat, types.AlertSpraying)
	require.Contains(t, byCat, types.AlertFavorable)
	assert.Equal(t, types.SeverityGreen, byCat[types.AlertSpraying].Severity)
	assert.Equal(t, types.SeverityGreen, byCat[types.AlertFavorable].Severity)

	// Spraying sorts ahead of favorable.
	require.Len(t, alerts, 2)
	assert.Equal(t, types.AlertSpraying, alerts[0].Category)
	assert.Equal(t, types.AlertFavorable, alerts[1].Category)
}

func TestDeriveAlertsFrostScenario(t *testing.T) {
	daily := mildDaily()
	daily[4].TempMin = 3

	alerts := DeriveAlerts(calmObservation(), dryHourly(), daily)
	byCat := alertsByCategory(alerts)
	require.Contains(t, byCat, types.AlertFrost)
	assert.Equal(t, types.SeverityRed, byCat[types.AlertFrost].Severity)
	assert.NotContains(t, byCat, types.AlertFavorable)
}

func TestDeriveAlertsDroughtBoundary(t *testing.T) {
	obs := calmObservation()
	obs.Temperature = 36
	obs.UVIndex = 9 // keep spraying out of the way

	tests := []struct {
		name        string
		avgRainfall float64
		wantDrought bool
	}{
		{"below threshold fires", 1.9, true},
		{"at threshold does not fire", 2.0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			daily := mildDaily()
			for i := range daily {
				daily[i].RainfallSum = tt.avgRainfall
			}

			alerts := DeriveAlerts(obs, dryHourly(), daily)
			byCat := alertsByCategory(alerts)
			if tt.wantDrought {
				require.Contains(t, byCat, types.AlertDrought)
				assert.Equal(t, types.SeverityOrange, byCat[types.AlertDrought].Severity)
			} else {
				assert.NotContains(t, byCat, types.AlertDrought)
			}
		})
	}
}

func TestDeriveAlertsRainBands(t *testing.T) {
	tests := []struct {
		name         string
		hourlyRain   float64 // per entry over 24 entries
		wantSeverity types.Severity
		wantAlert    bool
	}{
		{"no rain", 0, "", false},
		{"moderate sum stays silent", 2, "", false}, // 48mm
		{"orange band", 3, types.SeverityOrange, true},  // 72mm
		{"red band", 5, types.SeverityRed, true},        // 120mm
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			obs := calmObservation()
			obs.UVIndex = 9
			hourly := dryHourly()
			for i := range hourly {
				hourly[i].Rainfall = tt.hourlyRain
			}

			alerts := DeriveAlerts(obs, hourly, mildDaily())
			byCat := alertsByCategory(alerts)
			if tt.wantAlert {
				require.Contains(t, byCat, types.AlertHeavyRain)
				assert.Equal(t, tt.wantSeverity, byCat[types.AlertHeavyRain].Severity)
			} else {
				assert.NotContains(t, byCat, types.AlertHeavyRain)
			}
		})
	}
}

func TestDeriveAlertsWindBoundaries(t *testing.T) {
	tests := []struct {
		name         string
		windSpeed    float64
		wantSeverity types.Severity
		wantAlert    bool
	}{
		{"calm", 14.9, "", false},
		{"yellow lower bound inclusive", 15, types.SeverityYellow, true},
		{"yellow upper bound inclusive", 25, types.SeverityYellow, true},
		{"orange above band", 25.1, types.SeverityOrange, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			obs := calmObservation()
			obs.WindSpeed = tt.windSpeed

			alerts := DeriveAlerts(obs, dryHourly(), mildDaily())
			byCat := alertsByCategory(alerts)
			if tt.wantAlert {
				require.Contains(t, byCat, types.AlertStrongWind)
				assert.Equal(t, tt.wantSeverity, byCat[types.AlertStrongWind].Severity)
			} else {
				assert.NotContains(t, byCat, types.AlertStrongWind)
			}
		})
	}
}

func TestDeriveAlertsYellowWindKeepsFavorable(t *testing.T) {
	obs := calmObservation()
	obs.WindSpeed = 18 // yellow only, not critical

	alerts := DeriveAlerts(obs, dryHourly(), mildDaily())
	byCat := alertsByCategory(alerts)
	assert.Contains(t, byCat, types.AlertStrongWind)
	assert.Contains(t, byCat, types.AlertFavorable)
	assert.NotContains(t, byCat, types.AlertSpraying) // wind too high
}

func TestSprayingWindowRule(t *testing.T) {
	tests := []struct {
		name string
		obs  types.Observation
		want bool
	}{
		{"calm dry low UV", types.Observation{WindSpeed: 10, Rainfall: 0, UVIndex: 4}, true},
		{"wind at limit", types.Observation{WindSpeed: 15, Rainfall: 0, UVIndex: 4}, false},
		{"raining", types.Observation{WindSpeed: 10, Rainfall: 0.2, UVIndex: 4}, false},
		{"UV at limit", types.Observation{WindSpeed: 10, Rainfall: 0, UVIndex: 8}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := sprayingWindowRule(tt.obs)
			assert.Equal(t, tt.want, ok)
		})
	}
}

func TestAlertValidityWindows(t *testing.T) {
	obs := calmObservation()
	obs.Temperature = 43
	obs.UVIndex = 9

	alerts := DeriveAlerts(obs, dryHourly(), mildDaily())
	byCat := alertsByCategory(alerts)
	heat := byCat[types.AlertHeatwave]
	assert.Equal(t, obs.Time, heat.ValidFrom)
	assert.Equal(t, obs.Time.Add(24*time.Hour), heat.ValidUntil)
}
