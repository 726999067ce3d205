package domain

import (
	"sort"
	"time"
)

// BuildLocationDim derives the location dimension from the distinct
// (name, latitude, longitude) triples present in the raw store, enriched
// with the fixed region lookup and the constant timezone.
func BuildLocationDim(raw []RawObservation) []LocationDim {
	type key struct {
		name     string
		lat, lon float64
	}

	seen := make(map[key]bool)
	var out []LocationDim
	for _, r := range raw {
		if r.LocationName == "" {
			continue
		}
		k := key{name: r.LocationName, lat: r.Latitude, lon: r.Longitude}
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, LocationDim{
			LocationName: r.LocationName,
			Latitude:     r.Latitude,
			Longitude:    r.Longitude,
			Region:       RegionFor(r.LocationName),
			Timezone:     Timezone,
		})
	}

	sort.Slice(out, func(i, j int) bool { return out[i].LocationName < out[j].LocationName })
	return out
}

// BuildDateDim generates the calendar spine: one row per day from start
// through end inclusive, all attributes pure functions of the date.
func BuildDateDim(start, end time.Time) []DateDim {
	start, end = DateOf(start), DateOf(end)

	var out []DateDim
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		_, week := d.ISOWeek()
		wd := d.Weekday()
		out = append(out, DateDim{
			DateKey:    dateKeyOf(d),
			Date:       d,
			Year:       d.Year(),
			Month:      int(d.Month()),
			MonthName:  d.Month().String(),
			Day:        d.Day(),
			DayOfWeek:  int(wd),
			DayName:    wd.String(),
			WeekOfYear: week,
			Quarter:    quarterOf(d.Month()),
			IsWeekend:  wd == time.Saturday || wd == time.Sunday,
			Season:     SeasonFor(d.Month()),
		})
	}
	return out
}
