package advisor

import (
	"fmt"
	"strings"

	"github.com/agrisense/agroadvisor/gapclient"
)

// Farming advisory window bounds. The caller may ask for 7–14 days;
// anything else is clamped.
const (
	FarmingWindowMin     = 7
	FarmingWindowMax     = 14
	FarmingWindowDefault = 14
)

// ClampFarmingWindow normalizes a caller-supplied window size.
func ClampFarmingWindow(days int) int {
	if days == 0 {
		return FarmingWindowDefault
	}
	if days < FarmingWindowMin {
		return FarmingWindowMin
	}
	if days > FarmingWindowMax {
		return FarmingWindowMax
	}
	return days
}

// Window-wide banding thresholds for the general advisory.
const (
	heatStressTemp   = 35.0
	coldDelayTemp    = 15.0
	droughtRainTotal = 10.0
	excessRainTotal  = 100.0
	fieldWorkDryDay  = 2.0
	maxFieldWorkDays = 3
)

// FarmingAdvice produces the general farming advisory over the given
// window. The temperature band and the rainfall band are independent;
// both may fire. A crop adds its profile facts and a conditional favorable
// line, and the advisory closes with up to three dry days suited to field
// work.
func FarmingAdvice(series *gapclient.ForecastSeries, crop Crop, windowDays int) string {
	days := series.Window(ClampFarmingWindow(windowDays))

	var b strings.Builder
	b.WriteString("🚜 Farming Advisory\n")
	fmt.Fprintf(&b, "Based on the weather outlook for the next %d days:\n\n", len(days))

	meanMaxTemp, tempOK := meanOver(days, gapclient.AttrMaxTemperature)
	totalRain := sumOver(days, gapclient.AttrPrecipitation)
	meanHumidity, humidityOK := meanOver(days, gapclient.AttrRelativeHumidity)

	if tempOK {
		switch {
		case meanMaxTemp > heatStressTemp:
			fmt.Fprintf(&b, "🌡 Heat stress likely (mean maximum %.1f°C). Mulch to retain soil moisture, water in the early morning or evening, and provide shade for sensitive crops.\n", meanMaxTemp)
		case meanMaxTemp < coldDelayTemp:
			fmt.Fprintf(&b, "🌡 Cool conditions expected (mean maximum %.1f°C). Growth will slow; delay planting of warm-season crops and watch for fungal disease in damp fields.\n", meanMaxTemp)
		default:
			fmt.Fprintf(&b, "🌡 Temperatures are favorable for most field activities (mean maximum %.1f°C).\n", meanMaxTemp)
		}
	}

	switch {
	case totalRain < droughtRainTotal:
		fmt.Fprintf(&b, "🌧 Very little rain expected (%.1f mm in total). Prioritize irrigation, mulch exposed soil, and postpone fertilizer application until moisture improves.\n", totalRain)
	case totalRain > excessRainTotal:
		fmt.Fprintf(&b, "🌧 Heavy rainfall expected (%.1f mm in total). Clear drainage channels, delay spraying, and harvest anything that standing water could spoil.\n", totalRain)
	default:
		fmt.Fprintf(&b, "🌧 Rainfall is adequate for the period (%.1f mm in total).\n", totalRain)
	}

	if humidityOK {
		fmt.Fprintf(&b, "💨 Mean relative humidity around %.0f%%.\n", meanHumidity*100)
	}

	if crop != "" {
		b.WriteString("\n")
		b.WriteString(cropGuidance(crop, meanMaxTemp, tempOK))
	}

	if dry := fieldWorkDays(days); len(dry) > 0 {
		b.WriteString("\n🛠 Good days for field work (little rain expected): ")
		b.WriteString(strings.Join(dry, ", "))
		b.WriteString("\n")
	}

	return b.String()
}

// cropGuidance renders the crop's profile facts plus one conditional
// favorable line when the expected mean fits the crop's optimal band.
func cropGuidance(crop Crop, meanMaxTemp float64, tempOK bool) string {
	p := ProfileFor(crop)

	var b strings.Builder
	fmt.Fprintf(&b, "🌱 Notes for %s (%s):\n", crop.Name(), p.Group)
	fmt.Fprintf(&b, "- Optimal temperature range: %.0f–%.0f°C\n", p.TempMin, p.TempMax)

	switch p.RainRule {
	case RainBand, RainBandForceWait:
		fmt.Fprintf(&b, "- Water need: %.0f–%.0f mm per week\n", p.RainMin, p.RainMax)
	case RainAtLeast, RainAtLeastIrrigable:
		fmt.Fprintf(&b, "- Water need: at least %.0f mm per week\n", p.RainMin)
	case RainAtMostPreferred:
		fmt.Fprintf(&b, "- Drought tolerant; prefers under %.0f mm per week\n", p.RainMax)
	case RainHumidityBonus:
		fmt.Fprintf(&b, "- Thrives in humid conditions (%.0f%%+ relative humidity)\n", p.HumidityMin*100)
	}

	if tempOK && meanMaxTemp >= p.TempMin && meanMaxTemp <= p.TempMax {
		fmt.Fprintf(&b, "✅ Expected temperatures fall inside the optimal band for %s.\n", crop.Name())
	}
	return b.String()
}

// fieldWorkDays lists dates with under 2 mm of expected rain, capped at
// three entries.
func fieldWorkDays(days []gapclient.DailyForecast) []string {
	var out []string
	for i := range days {
		rain, _ := days[i].Value(gapclient.AttrPrecipitation)
		if rain < fieldWorkDryDay {
			out = append(out, days[i].Date)
			if len(out) == maxFieldWorkDays {
				break
			}
		}
	}
	return out
}
