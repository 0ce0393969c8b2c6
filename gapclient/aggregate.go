package gapclient

import (
	"sort"
)

// Aggregate reduces raw API samples to one DailyForecast per calendar date.
// All samples sharing a date form one bucket; every numeric value of an
// attribute in that bucket, including each ensemble member of an array
// value, contributes to a single arithmetic mean. Attributes with no
// numeric values for a date are omitted from that day's record.
//
// Aggregate is pure and order-independent: permuting the input samples
// yields the same series, sorted ascending by date.
func Aggregate(samples []RawSample, loc Coordinate) *ForecastSeries {
	buckets := make(map[string][]RawSample)
	for _, s := range samples {
		date := dateOf(s.Datetime)
		if date == "" {
			continue
		}
		buckets[date] = append(buckets[date], s)
	}

	dates := make([]string, 0, len(buckets))
	for date := range buckets {
		dates = append(dates, date)
	}
	// Lexicographic order is chronological for zero-padded YYYY-MM-DD.
	sort.Strings(dates)

	series := &ForecastSeries{Days: make([]DailyForecast, 0, len(dates))}
	for _, date := range dates {
		day := DailyForecast{
			Date:      date,
			Latitude:  loc.Latitude,
			Longitude: loc.Longitude,
			Values:    make(map[string]float64),
		}
		for _, attr := range attributesOf(buckets[date]) {
			if mean, ok := meanOf(buckets[date], attr); ok {
				day.Values[attr] = mean
			}
		}
		series.Days = append(series.Days, day)
	}
	return series
}

// dateOf truncates an ISO datetime to its calendar date.
func dateOf(datetime string) string {
	if len(datetime) < 10 {
		return ""
	}
	return datetime[:10]
}

// attributesOf returns the sorted union of attribute names present across
// the bucket's samples.
func attributesOf(bucket []RawSample) []string {
	seen := make(map[string]bool)
	for _, s := range bucket {
		for attr := range s.Values {
			seen[attr] = true
		}
	}
	attrs := make([]string, 0, len(seen))
	for attr := range seen {
		attrs = append(attrs, attr)
	}
	sort.Strings(attrs)
	return attrs
}

// meanOf flattens every numeric value of the attribute across the bucket,
// expanding ensemble arrays into their members, and returns the arithmetic
// mean. Non-numeric values are dropped. Returns false when no numeric
// values exist.
func meanOf(bucket []RawSample, attr string) (float64, bool) {
	var sum float64
	var n int
	for _, s := range bucket {
		raw, ok := s.Values[attr]
		if !ok {
			continue
		}
		switch v := raw.(type) {
		case float64:
			sum += v
			n++
		case []any:
			for _, member := range v {
				if f, ok := member.(float64); ok {
					sum += f
					n++
				}
			}
		}
	}
	if n == 0 {
		return 0, false
	}
	return sum / float64(n), true
}
