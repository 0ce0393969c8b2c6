package advisor

import (
	"github.com/agrisense/agroadvisor/gapclient"
)

// meanOver returns the mean of an attribute across the days that carry it.
// Returns false when no day carries the attribute.
func meanOver(days []gapclient.DailyForecast, attr string) (float64, bool) {
	var sum float64
	var n int
	for i := range days {
		if v, ok := days[i].Value(attr); ok {
			sum += v
			n++
		}
	}
	if n == 0 {
		return 0, false
	}
	return sum / float64(n), true
}

// sumOver returns the total of an attribute across the days that carry it.
// Days without the attribute contribute nothing.
func sumOver(days []gapclient.DailyForecast, attr string) float64 {
	var sum float64
	for i := range days {
		if v, ok := days[i].Value(attr); ok {
			sum += v
		}
	}
	return sum
}
