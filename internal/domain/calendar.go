package domain

import "time"

const (
	SeasonDry   = "Dry Season"
	SeasonRainy = "Rainy Season"
)

// DateOf truncates a timestamp to its UTC calendar date.
func DateOf(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// SeasonFor maps a month to the fixed monsoon calendar: November through
// April is the dry season, May through October the rainy season.
func SeasonFor(month time.Month) string {
	if month >= time.May && month <= time.October {
		return SeasonRainy
	}
	return SeasonDry
}

// TimeOfDayFor buckets an hour of day: [5,12) Morning, [12,17) Afternoon,
// [17,21) Evening, otherwise Night.
func TimeOfDayFor(hour int) string {
	switch {
	case hour >= 5 && hour < 12:
		return "Morning"
	case hour >= 12 && hour < 17:
		return "Afternoon"
	case hour >= 17 && hour < 21:
		return "Evening"
	default:
		return "Night"
	}
}

// quarterOf returns the calendar quarter (1-4) for a month.
func quarterOf(month time.Month) int {
	return (int(month)-1)/3 + 1
}

// dateKeyOf encodes a date as YYYYMMDD.
func dateKeyOf(d time.Time) int {
	return d.Year()*10000 + int(d.Month())*100 + d.Day()
}
