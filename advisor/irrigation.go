package advisor

import (
	"fmt"
	"strings"

	"github.com/agrisense/agroadvisor/gapclient"
)

// etCoefficient converts mean daily maximum temperature (°C) into a rough
// daily evapotranspiration estimate (mm). Empirical shortcut, not a
// physical model.
const etCoefficient = 0.6

// irrigationWindowDays is fixed at one week.
const irrigationWindowDays = 7

// IrrigationTier is the weekly irrigation recommendation level.
type IrrigationTier int

const (
	TierNone IrrigationTier = iota
	TierLight
	TierModerate
	TierHeavy
)

// DailyAdvice is a per-day micro-recommendation, independent of the weekly
// tier.
type DailyAdvice struct {
	Date   string
	Advice string
}

// IrrigationPlan is the outcome of the irrigation evaluation over a 7-day
// window. Deficit keeps its sign so the tier can be selected from it;
// DisplayDeficit is clamped at zero for presentation.
type IrrigationPlan struct {
	TotalRainfall float64
	MeanMaxTemp   float64
	MeanHumidity  float64
	HasHumidity   bool

	DailyET float64
	// Deficit is DailyET×7 − TotalRainfall, unclamped.
	Deficit float64

	Tier  IrrigationTier
	Daily []DailyAdvice
}

// DisplayDeficit is the deficit clamped to zero; a wet week reads as
// "0 mm", never as a negative number.
func (p *IrrigationPlan) DisplayDeficit() float64 {
	if p.Deficit < 0 {
		return 0
	}
	return p.Deficit
}

// EvaluateIrrigation estimates the week's water deficit and derives the
// irrigation tier plus a micro-recommendation per forecast day. Returns nil
// when the series is empty or carries no temperature data; the caller
// reports "no data" in that case.
func EvaluateIrrigation(series *gapclient.ForecastSeries) *IrrigationPlan {
	days := series.Window(irrigationWindowDays)
	if len(days) == 0 {
		return nil
	}

	meanMaxTemp, ok := meanOver(days, gapclient.AttrMaxTemperature)
	if !ok {
		return nil
	}

	p := &IrrigationPlan{
		TotalRainfall: sumOver(days, gapclient.AttrPrecipitation),
		MeanMaxTemp:   meanMaxTemp,
	}
	p.MeanHumidity, p.HasHumidity = meanOver(days, gapclient.AttrRelativeHumidity)

	p.DailyET = meanMaxTemp * etCoefficient
	p.Deficit = p.DailyET*irrigationWindowDays - p.TotalRainfall

	switch {
	case p.Deficit <= 0:
		p.Tier = TierNone
	case p.Deficit < 20:
		p.Tier = TierLight
	case p.Deficit < 40:
		p.Tier = TierModerate
	default:
		p.Tier = TierHeavy
	}

	for i := range days {
		p.Daily = append(p.Daily, DailyAdvice{
			Date:   days[i].Date,
			Advice: dailyIrrigationAdvice(&days[i]),
		})
	}
	return p
}

// dailyIrrigationAdvice picks the micro-recommendation for one day.
// Rules fire in order: heavy rain, light rain, heat, default.
func dailyIrrigationAdvice(day *gapclient.DailyForecast) string {
	rain, _ := day.Value(gapclient.AttrPrecipitation)
	maxTemp, hasTemp := day.Value(gapclient.AttrMaxTemperature)

	switch {
	case rain >= 10:
		return "Skip irrigation — significant rain expected."
	case rain >= 5:
		return "Light irrigation only if the soil is dry."
	case hasTemp && maxTemp > 30:
		return "Irrigate — hot and dry conditions expected."
	default:
		return "Irrigate if there has been no recent rain."
	}
}

// FormatIrrigation renders the plan as farmer-facing text. The crop only
// affects the closing caveat: rice gets standing-water guidance instead of
// the generic waterlogging caution.
func FormatIrrigation(crop Crop, p *IrrigationPlan) string {
	var b strings.Builder
	b.WriteString("💧 Irrigation Advice")
	if crop != "" {
		fmt.Fprintf(&b, " — %s", crop.Name())
	}
	b.WriteString("\nBased on the weather outlook for the next 7 days:\n\n")

	fmt.Fprintf(&b, "Expected rainfall: %.1f mm\n", p.TotalRainfall)
	if p.HasHumidity {
		fmt.Fprintf(&b, "Mean humidity: %.0f%%\n", p.MeanHumidity*100)
	}
	fmt.Fprintf(&b, "Estimated crop water use: %.1f mm/day (%.1f mm for the week)\n", p.DailyET, p.DailyET*irrigationWindowDays)
	fmt.Fprintf(&b, "Estimated water deficit: %.1f mm\n\n", p.DisplayDeficit())

	switch p.Tier {
	case TierNone:
		b.WriteString("✅ No irrigation needed this week — expected rainfall covers the crop's water demand.\n")
	case TierLight:
		b.WriteString("💧 Light irrigation recommended: 1–2 sessions this week.\n")
	case TierModerate:
		b.WriteString("💧 Moderate irrigation recommended: 2–3 sessions this week.\n")
	case TierHeavy:
		b.WriteString("💧 Heavy irrigation recommended: 3–4 sessions this week. Consider drip irrigation to save water.\n")
	}

	b.WriteString("\nDay by day:\n")
	for _, d := range p.Daily {
		fmt.Fprintf(&b, "- %s: %s\n", d.Date, d.Advice)
	}

	if crop == CropRice {
		b.WriteString("\n🌾 Rice note: maintain standing water in the paddy as usual; the deficit above applies to the field water balance, not to drained soil.")
	} else {
		b.WriteString("\n⚠️ Avoid waterlogging: let the topsoil dry out between irrigation sessions.")
	}
	return b.String()
}
