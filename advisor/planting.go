package advisor

import (
	"fmt"
	"strings"

	"github.com/agrisense/agroadvisor/gapclient"
)

// plantingWindowDays is fixed: planting viability is judged on the imminent
// week only, regardless of how many days were fetched.
const plantingWindowDays = 7

// EvaluatePlanting judges whether the coming week favors planting the crop.
// It evaluates the first seven days of the series: mean daily maximum
// temperature, total rainfall and mean relative humidity, checked against
// the crop's profile.
//
// The temperature band and the rainfall band are checked in that fixed
// order, and each may or may not write the planting flag; the resolved flag
// is last-write-wins (see resolvePlantingFlag).
func EvaluatePlanting(series *gapclient.ForecastSeries, crop Crop) *Verdict {
	days := series.Window(plantingWindowDays)
	v := &Verdict{}

	if len(days) == 0 {
		v.Outcome = OutcomeWait
		v.add(SeverityWarning, "No forecast data is available for the coming week; wait until a forecast can be retrieved.")
		return v
	}

	meanMaxTemp, tempOK := meanOver(days, gapclient.AttrMaxTemperature)
	if !tempOK {
		v.Outcome = OutcomeWait
		v.add(SeverityWarning, "Temperature data is missing from the forecast; planting conditions cannot be judged yet.")
		return v
	}
	totalRain := sumOver(days, gapclient.AttrPrecipitation)
	meanHumidity, humidityOK := meanOver(days, gapclient.AttrRelativeHumidity)

	p := ProfileFor(crop)

	var writes []flagWrite
	writes = append(writes, checkTemperature(v, p, meanMaxTemp))
	writes = append(writes, checkRainfall(v, p, totalRain, meanHumidity, humidityOK))

	if resolvePlantingFlag(writes) {
		v.Outcome = OutcomeFavorable
	} else {
		v.Outcome = OutcomeWait
	}
	return v
}

// checkTemperature applies the crop's temperature band. It always writes
// the planting flag: in-band writes true, out-of-band writes false.
func checkTemperature(v *Verdict, p Profile, meanMaxTemp float64) flagWrite {
	switch {
	case meanMaxTemp < p.TempMin:
		v.add(SeverityBlocking, fmt.Sprintf("Too cold for %s: expected mean maximum of %.1f°C is below the %.0f–%.0f°C optimal range.",
			p.label(), meanMaxTemp, p.TempMin, p.TempMax))
		return writeFlag(false)
	case meanMaxTemp > p.TempMax:
		v.add(SeverityBlocking, fmt.Sprintf("Too hot for %s: expected mean maximum of %.1f°C is above the %.0f–%.0f°C optimal range.",
			p.label(), meanMaxTemp, p.TempMin, p.TempMax))
		return writeFlag(false)
	default:
		v.add(SeverityOK, fmt.Sprintf("Temperature is favorable: expected mean maximum of %.1f°C is within the %.0f–%.0f°C optimal range.",
			meanMaxTemp, p.TempMin, p.TempMax))
		return writeFlag(true)
	}
}

// checkRainfall applies the crop's rainfall rule. Most rules only append
// reasons; RainBandForceWait additionally writes the flag to false when
// rainfall exceeds the band, overriding a favorable temperature result.
func checkRainfall(v *Verdict, p Profile, totalRain, meanHumidity float64, humidityOK bool) flagWrite {
	switch p.RainRule {
	case RainBand, RainBandForceWait:
		switch {
		case totalRain < p.RainMin:
			v.add(SeverityWarning, fmt.Sprintf("Expected rainfall of %.1f mm over the week is below the %.0f–%.0f mm range; plan for supplemental irrigation.",
				totalRain, p.RainMin, p.RainMax))
		case totalRain > p.RainMax:
			if p.RainRule == RainBandForceWait {
				v.add(SeverityBlocking, fmt.Sprintf("Too much rain for %s: %.1f mm expected against a maximum of %.0f mm; waterlogging would damage the crop.",
					p.label(), totalRain, p.RainMax))
				return writeFlag(false)
			}
			v.add(SeverityWarning, fmt.Sprintf("Expected rainfall of %.1f mm over the week exceeds the %.0f–%.0f mm range; ensure the field drains well.",
				totalRain, p.RainMin, p.RainMax))
		default:
			v.add(SeverityOK, fmt.Sprintf("Rainfall is adequate: %.1f mm expected, within the %.0f–%.0f mm range.",
				totalRain, p.RainMin, p.RainMax))
		}

	case RainAtLeast:
		if totalRain >= p.RainMin {
			v.add(SeverityOK, fmt.Sprintf("Rainfall is adequate: %.1f mm expected, at least %.0f mm needed.", totalRain, p.RainMin))
		} else {
			v.add(SeverityWarning, fmt.Sprintf("Only %.1f mm of rain expected, below the %.0f mm needed; plan for supplemental irrigation.", totalRain, p.RainMin))
		}

	case RainAtLeastIrrigable:
		if totalRain >= p.RainMin {
			v.add(SeverityOK, fmt.Sprintf("Rainfall is adequate: %.1f mm expected, at least %.0f mm needed.", totalRain, p.RainMin))
		} else {
			v.add(SeverityWarning, fmt.Sprintf("Only %.1f mm of rain expected; planting %s will depend on irrigation being available.", totalRain, p.label()))
		}

	case RainAtMostPreferred:
		if totalRain < p.RainMax {
			v.add(SeverityOK, fmt.Sprintf("Dry conditions suit %s: %.1f mm expected, below %.0f mm.", p.label(), totalRain, p.RainMax))
		} else {
			v.add(SeverityWarning, fmt.Sprintf("Wetter than %s prefers: %.1f mm expected against %.0f mm.", p.label(), totalRain, p.RainMax))
		}

	case RainHumidityBonus:
		if humidityOK && meanHumidity >= p.HumidityMin {
			v.add(SeverityOK, fmt.Sprintf("High humidity (%.0f%%) favors %s establishment.", meanHumidity*100, p.label()))
		} else if humidityOK {
			v.add(SeverityWarning, fmt.Sprintf("Mean humidity of %.0f%% is below the %.0f%% %s prefers; young plants may need shading and mulching.",
				meanHumidity*100, p.HumidityMin*100, p.label()))
		} else {
			v.add(SeverityWarning, "Humidity data is missing from the forecast; monitor moisture closely after planting.")
		}
	}
	return nil
}

func (p Profile) label() string {
	if p.Crop == "" {
		return "this crop"
	}
	return p.Crop.Name()
}

// FormatPlanting renders the planting verdict as farmer-facing text.
// The surfaced verdict is binary: plant now, or wait.
func FormatPlanting(crop Crop, v *Verdict) string {
	var b strings.Builder
	fmt.Fprintf(&b, "🌱 Planting Advice — %s\n", crop.Name())
	b.WriteString("Based on the weather outlook for the next 7 days:\n\n")
	for _, r := range v.Reasons {
		fmt.Fprintf(&b, "%s %s\n", r.Marker(), r.Text)
	}
	b.WriteString("\n")
	if v.Outcome == OutcomeFavorable {
		fmt.Fprintf(&b, "Verdict: ✅ YES — conditions look favorable for planting %s this week.", crop.Name())
	} else {
		fmt.Fprintf(&b, "Verdict: ⏳ WAIT — hold off on planting %s and check again in a few days.", crop.Name())
	}
	return b.String()
}
