package advisor

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agrisense/agroadvisor/gapclient"
)

// weekOf builds a 7-day series with uniform weather.
func weekOf(maxTemp, dailyRain, humidity float64) *gapclient.ForecastSeries {
	series := &gapclient.ForecastSeries{}
	for i := 1; i <= 7; i++ {
		series.Days = append(series.Days, gapclient.DailyForecast{
			Date: fmt.Sprintf("2025-03-%02d", i),
			Values: map[string]float64{
				gapclient.AttrMaxTemperature:   maxTemp,
				gapclient.AttrPrecipitation:    dailyRain,
				gapclient.AttrRelativeHumidity: humidity,
			},
		})
	}
	return series
}

func Test_EvaluatePlanting_MaizeFavorable(t *testing.T) {
	// mean max 24°C, total rain 50mm
	v := EvaluatePlanting(weekOf(24, 50.0/7, 0.55), CropMaize)

	assert.Equal(t, OutcomeFavorable, v.Outcome)
	require.Len(t, v.Reasons, 2)
	assert.Equal(t, SeverityOK, v.Reasons[0].Severity)
	assert.Contains(t, v.Reasons[0].Text, "Temperature is favorable")
	assert.Equal(t, SeverityOK, v.Reasons[1].Severity)
	assert.Contains(t, v.Reasons[1].Text, "Rainfall is adequate")
}

func Test_EvaluatePlanting_MaizeRainWarningKeepsVerdict(t *testing.T) {
	// rain above the 100mm band warns but does not flip the flag for maize
	v := EvaluatePlanting(weekOf(24, 20, 0.55), CropMaize)

	assert.Equal(t, OutcomeFavorable, v.Outcome)
	require.Len(t, v.Reasons, 2)
	assert.Equal(t, SeverityWarning, v.Reasons[1].Severity)
}

func Test_EvaluatePlanting_BeansRainOverride(t *testing.T) {
	// 20°C is inside the beans band, but 85mm exceeds the 70mm maximum:
	// the rainfall check overrides the favorable temperature write.
	v := EvaluatePlanting(weekOf(20, 85.0/7, 0.55), CropBeans)

	assert.Equal(t, OutcomeWait, v.Outcome)
	require.Len(t, v.Reasons, 2)
	assert.Equal(t, SeverityOK, v.Reasons[0].Severity)
	assert.Equal(t, SeverityBlocking, v.Reasons[1].Severity)
	assert.Contains(t, v.Reasons[1].Text, "Too much rain")
}

func Test_EvaluatePlanting_TooCold(t *testing.T) {
	v := EvaluatePlanting(weekOf(10, 6, 0.5), CropMaize)

	assert.Equal(t, OutcomeWait, v.Outcome)
	assert.Equal(t, SeverityBlocking, v.Reasons[0].Severity)
	assert.Contains(t, v.Reasons[0].Text, "Too cold")
}

func Test_EvaluatePlanting_TooHot(t *testing.T) {
	v := EvaluatePlanting(weekOf(38, 6, 0.5), CropWheat)

	assert.Equal(t, OutcomeWait, v.Outcome)
	assert.Contains(t, v.Reasons[0].Text, "Too hot")
}

func Test_EvaluatePlanting_RiceIrrigationDependent(t *testing.T) {
	// below the 50mm minimum: warning about irrigation, verdict stays
	// favorable on temperature
	v := EvaluatePlanting(weekOf(28, 3, 0.7), CropRice)

	assert.Equal(t, OutcomeFavorable, v.Outcome)
	require.Len(t, v.Reasons, 2)
	assert.Equal(t, SeverityWarning, v.Reasons[1].Severity)
	assert.Contains(t, v.Reasons[1].Text, "irrigation")
}

func Test_EvaluatePlanting_TeaHumidityBonus(t *testing.T) {
	v := EvaluatePlanting(weekOf(22, 5, 0.72), CropTea)

	assert.Equal(t, OutcomeFavorable, v.Outcome)
	assert.Contains(t, v.Reasons[1].Text, "High humidity (72%)")

	v = EvaluatePlanting(weekOf(22, 5, 0.40), CropTea)
	assert.Equal(t, OutcomeFavorable, v.Outcome)
	assert.Equal(t, SeverityWarning, v.Reasons[1].Severity)
}

func Test_EvaluatePlanting_SorghumPrefersDry(t *testing.T) {
	v := EvaluatePlanting(weekOf(30, 2, 0.4), CropSorghum)

	assert.Equal(t, OutcomeFavorable, v.Outcome)
	assert.Contains(t, v.Reasons[1].Text, "Dry conditions suit sorghum")
}

func Test_EvaluatePlanting_UnknownCropUsesDefaults(t *testing.T) {
	// default profile: 18-30°C, at least 20mm
	v := EvaluatePlanting(weekOf(25, 5, 0.5), Crop("quinoa"))
	assert.Equal(t, OutcomeFavorable, v.Outcome)
	assert.Contains(t, v.Reasons[1].Text, "adequate")
}

func Test_EvaluatePlanting_OnlyFirstWeekCounts(t *testing.T) {
	series := weekOf(24, 50.0/7, 0.55)
	// a scorching second week must not change the verdict
	for i := 8; i <= 14; i++ {
		series.Days = append(series.Days, gapclient.DailyForecast{
			Date: fmt.Sprintf("2025-03-%02d", i),
			Values: map[string]float64{
				gapclient.AttrMaxTemperature: 45,
				gapclient.AttrPrecipitation:  0,
			},
		})
	}

	v := EvaluatePlanting(series, CropMaize)
	assert.Equal(t, OutcomeFavorable, v.Outcome)
}

func Test_EvaluatePlanting_NoData(t *testing.T) {
	v := EvaluatePlanting(&gapclient.ForecastSeries{}, CropMaize)

	assert.Equal(t, OutcomeWait, v.Outcome)
	require.Len(t, v.Reasons, 1)
	assert.Equal(t, SeverityWarning, v.Reasons[0].Severity)
}

func Test_ResolvePlantingFlag(t *testing.T) {
	assert.False(t, resolvePlantingFlag(nil))
	assert.False(t, resolvePlantingFlag([]flagWrite{nil, nil}))
	assert.True(t, resolvePlantingFlag([]flagWrite{writeFlag(true), nil}))
	// last write wins
	assert.False(t, resolvePlantingFlag([]flagWrite{writeFlag(true), writeFlag(false)}))
	assert.True(t, resolvePlantingFlag([]flagWrite{writeFlag(false), writeFlag(true)}))
}

func Test_FormatPlanting(t *testing.T) {
	v := EvaluatePlanting(weekOf(24, 50.0/7, 0.55), CropMaize)
	text := FormatPlanting(CropMaize, v)

	assert.Contains(t, text, "Planting Advice — maize")
	assert.Contains(t, text, "✅ YES")

	v = EvaluatePlanting(weekOf(20, 85.0/7, 0.55), CropBeans)
	text = FormatPlanting(CropBeans, v)
	assert.Contains(t, text, "⏳ WAIT")

	sp := Crop("sweet_potato")
	assert.Contains(t, FormatPlanting(sp, EvaluatePlanting(weekOf(20, 7, 0.5), sp)), "sweet potato")
}
