package gapclient

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testLoc = Coordinate{Latitude: -1.29, Longitude: 36.82}

func sample(datetime string, values map[string]any) RawSample {
	return RawSample{Datetime: datetime, Values: values}
}

func Test_Aggregate_EnsembleMean(t *testing.T) {
	samples := []RawSample{
		sample("2025-03-01T00:00:00Z", map[string]any{
			AttrMaxTemperature: []any{20.0, 22.0, 24.0},
			AttrPrecipitation:  []any{0.0, 3.0},
		}),
		sample("2025-03-01T12:00:00Z", map[string]any{
			AttrMaxTemperature: []any{26.0, 28.0},
			AttrPrecipitation:  3.0,
		}),
	}

	series := Aggregate(samples, testLoc)
	require.Equal(t, 1, series.Count())

	day := series.Days[0]
	assert.Equal(t, "2025-03-01", day.Date)
	assert.Equal(t, testLoc.Latitude, day.Latitude)
	assert.Equal(t, testLoc.Longitude, day.Longitude)

	// mean over every ensemble member and sample for the date
	assert.InDelta(t, 24.0, day.Values[AttrMaxTemperature], 1e-9)
	assert.InDelta(t, 2.0, day.Values[AttrPrecipitation], 1e-9)
}

func Test_Aggregate_ScalarIdentity(t *testing.T) {
	samples := []RawSample{
		sample("2025-03-02T00:00:00Z", map[string]any{AttrMinTemperature: 14.5}),
	}

	series := Aggregate(samples, testLoc)
	require.Equal(t, 1, series.Count())
	assert.InDelta(t, 14.5, series.Days[0].Values[AttrMinTemperature], 1e-9)
}

func Test_Aggregate_OrderIndependent(t *testing.T) {
	samples := []RawSample{
		sample("2025-03-03T00:00:00Z", map[string]any{AttrMaxTemperature: 30.0}),
		sample("2025-03-01T00:00:00Z", map[string]any{AttrMaxTemperature: 20.0}),
		sample("2025-03-02T00:00:00Z", map[string]any{AttrMaxTemperature: 25.0}),
		sample("2025-03-01T06:00:00Z", map[string]any{AttrMaxTemperature: 22.0}),
	}

	expected := Aggregate(samples, testLoc)

	rnd := rand.New(rand.NewSource(42))
	for i := 0; i < 10; i++ {
		shuffled := make([]RawSample, len(samples))
		copy(shuffled, samples)
		rnd.Shuffle(len(shuffled), func(a, b int) {
			shuffled[a], shuffled[b] = shuffled[b], shuffled[a]
		})
		assert.Equal(t, expected, Aggregate(shuffled, testLoc))
	}

	// sorted strictly ascending, no duplicate dates
	require.Equal(t, 3, expected.Count())
	for i := 1; i < len(expected.Days); i++ {
		assert.Less(t, expected.Days[i-1].Date, expected.Days[i].Date)
	}
}

func Test_Aggregate_Empty(t *testing.T) {
	series := Aggregate(nil, testLoc)
	require.NotNil(t, series)
	assert.Equal(t, 0, series.Count())
	assert.True(t, series.IsEmpty())
}

func Test_Aggregate_DropsNonNumeric(t *testing.T) {
	samples := []RawSample{
		sample("2025-03-01T00:00:00Z", map[string]any{
			AttrMaxTemperature: []any{20.0, "n/a", 30.0},
			AttrWindSpeed:      "calm",
		}),
	}

	series := Aggregate(samples, testLoc)
	require.Equal(t, 1, series.Count())

	day := series.Days[0]
	assert.InDelta(t, 25.0, day.Values[AttrMaxTemperature], 1e-9)

	// attribute with no numeric values is omitted, not zeroed
	_, ok := day.Value(AttrWindSpeed)
	assert.False(t, ok)
}

func Test_ForecastSeries_Window(t *testing.T) {
	series := &ForecastSeries{Days: []DailyForecast{
		{Date: "2025-03-01"}, {Date: "2025-03-02"}, {Date: "2025-03-03"},
	}}

	assert.Len(t, series.Window(2), 2)
	assert.Len(t, series.Window(7), 3)
	assert.Len(t, series.Window(0), 0)
}
