package advisor

import (
	"fmt"
	"strings"

	"github.com/agrisense/agroadvisor/gapclient"
)

// attributeFormat describes how one weather attribute is presented.
type attributeFormat struct {
	Attr  string
	Label string
	Unit  string
	// Percent marks fraction attributes that are shown as percentages.
	Percent bool
}

// displayOrder fixes the per-day attribute listing order and units.
var displayOrder = []attributeFormat{
	{Attr: gapclient.AttrMaxTemperature, Label: "Max temperature", Unit: "°C"},
	{Attr: gapclient.AttrMinTemperature, Label: "Min temperature", Unit: "°C"},
	{Attr: gapclient.AttrPrecipitation, Label: "Rainfall", Unit: " mm"},
	{Attr: gapclient.AttrRelativeHumidity, Label: "Humidity", Unit: "%", Percent: true},
	{Attr: gapclient.AttrWindSpeed, Label: "Wind speed", Unit: " m/s"},
	{Attr: gapclient.AttrSolarRadiation, Label: "Solar radiation", Unit: " W/m²"},
	{Attr: gapclient.AttrTemperatureAnom, Label: "Temperature anomaly", Unit: "°C"},
	{Attr: gapclient.AttrPrecipitationAnom, Label: "Rainfall anomaly", Unit: " mm"},
}

// FormatForecast renders the aggregated series as a per-day listing with a
// period summary. No verdict is produced.
func FormatForecast(series *gapclient.ForecastSeries) string {
	var b strings.Builder
	fmt.Fprintf(&b, "🌤 Weather Forecast (%d days)\n", series.Count())

	for i := range series.Days {
		day := &series.Days[i]
		fmt.Fprintf(&b, "\n📅 %s\n", day.Date)
		for _, f := range displayOrder {
			v, ok := day.Value(f.Attr)
			if !ok {
				continue
			}
			if f.Percent {
				v *= 100
			}
			fmt.Fprintf(&b, "  %s: %.1f%s\n", f.Label, v, f.Unit)
		}
	}

	b.WriteString("\n📊 Period summary\n")
	if v, ok := meanOver(series.Days, gapclient.AttrMaxTemperature); ok {
		fmt.Fprintf(&b, "  Mean max temperature: %.1f°C\n", v)
	}
	if v, ok := meanOver(series.Days, gapclient.AttrMinTemperature); ok {
		fmt.Fprintf(&b, "  Mean min temperature: %.1f°C\n", v)
	}
	if v, ok := meanOver(series.Days, gapclient.AttrRelativeHumidity); ok {
		fmt.Fprintf(&b, "  Mean humidity: %.0f%%\n", v*100)
	}
	fmt.Fprintf(&b, "  Total rainfall: %.1f mm\n", sumOver(series.Days, gapclient.AttrPrecipitation))

	return b.String()
}
