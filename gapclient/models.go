package gapclient

import (
	"encoding/json"

	"github.com/cockroachdb/errors"
)

// Weather attribute names as served by the GAP measurement API.
const (
	AttrMaxTemperature    = "max_temperature"
	AttrMinTemperature    = "min_temperature"
	AttrPrecipitation     = "precipitation"
	AttrRelativeHumidity  = "relative_humidity"
	AttrWindSpeed         = "wind_speed"
	AttrSolarRadiation    = "solar_radiation"
	AttrTemperatureAnom   = "temperature_anom"
	AttrPrecipitationAnom = "precipitation_anom"
)

// Coordinate is a geographic point. Latitude must be in [-90, 90] and
// longitude in [-180, 180]; the tool layer validates before any fetch.
type Coordinate struct {
	Latitude  float64
	Longitude float64
}

// RawSample is a single observation from the measurement API: a timestamp
// plus attribute values. An ensemble forecast carries an array of member
// values per attribute, historical data a single number.
type RawSample struct {
	Datetime string
	Values   map[string]any
}

// UnmarshalJSON splits the datetime field from the attribute values.
func (s *RawSample) UnmarshalJSON(bs []byte) error {
	var m map[string]any
	if err := json.Unmarshal(bs, &m); err != nil {
		return errors.WithStack(err)
	}
	if dt, ok := m["datetime"].(string); ok {
		s.Datetime = dt
	}
	delete(m, "datetime")
	s.Values = m
	return nil
}

// DailyForecast holds the aggregated weather attributes for one calendar day.
// Each value is the mean over all ensemble members and sub-daily samples for
// that date. Relative humidity is kept as a fraction in [0, 1]; presentation
// converts to a percentage.
type DailyForecast struct {
	Date      string  `json:"date"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`

	Values map[string]float64 `json:"values"`
}

// Value returns the aggregated attribute value, if present for this day.
func (d *DailyForecast) Value(attr string) (float64, bool) {
	v, ok := d.Values[attr]
	return v, ok
}

// ForecastSeries is an ordered run of daily forecasts, ascending by date,
// with unique dates. An empty series is a valid "no data" outcome, not an
// error.
type ForecastSeries struct {
	Days []DailyForecast `json:"days"`
}

func (s *ForecastSeries) Count() int {
	return len(s.Days)
}

func (s *ForecastSeries) IsEmpty() bool {
	return len(s.Days) == 0
}

// Window returns the first n days of the series, or fewer if the series is
// shorter.
func (s *ForecastSeries) Window(n int) []DailyForecast {
	if n > len(s.Days) {
		n = len(s.Days)
	}
	return s.Days[:n]
}

// measurementResponse mirrors the GAP API JSON envelope.
type measurementResponse struct {
	Results []struct {
		Geometry struct {
			Type string `json:"type"`
			// [longitude, latitude]
			Coordinates []float64 `json:"coordinates"`
		} `json:"geometry"`
		Data []RawSample `json:"data"`
	} `json:"results"`
}
