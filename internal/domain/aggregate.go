package domain

import (
	"sort"
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// AggregateDaily collapses enriched hourly rows into one row per (location,
// date). Rows dated after runDate are excluded; the second return reports
// how many. Output is ordered by location, then date.
func AggregateDaily(rows []EnrichedObservation, runDate time.Time) ([]DailyAggregate, int) {
	type key struct {
		location string
		date     time.Time
	}

	groups := make(map[key][]EnrichedObservation)
	var keys []key
	futureRows := 0
	for _, r := range rows {
		if r.ObservationDate.After(runDate) {
			futureRows++
			continue
		}
		k := key{location: r.LocationName, date: r.ObservationDate}
		if _, seen := groups[k]; !seen {
			keys = append(keys, k)
		}
		groups[k] = append(groups[k], r)
	}

	sort.Slice(keys, func(i, j int) bool {
		if keys[i].location != keys[j].location {
			return keys[i].location < keys[j].location
		}
		return keys[i].date.Before(keys[j].date)
	})

	out := make([]DailyAggregate, 0, len(keys))
	for _, k := range keys {
		out = append(out, aggregateGroup(k.location, k.date, groups[k]))
	}
	return out, futureRows
}

func aggregateGroup(location string, date time.Time, rows []EnrichedObservation) DailyAggregate {
	agg := DailyAggregate{
		LocationName:     location,
		Date:             date,
		ObservationCount: len(rows),
	}

	temps := collect(rows, func(r EnrichedObservation) *float64 { return r.Temperature })
	agg.AvgTemperature, agg.MinTemperature, agg.MaxTemperature, agg.StddevTemperature = summarize(temps)

	humidity := collect(rows, func(r EnrichedObservation) *float64 { return r.Humidity })
	agg.AvgHumidity, agg.MinHumidity, agg.MaxHumidity, agg.StddevHumidity = summarize(humidity)

	pressure := collect(rows, func(r EnrichedObservation) *float64 { return r.Pressure })
	agg.AvgPressure, agg.MinPressure, agg.MaxPressure, agg.StddevPressure = summarize(pressure)

	wind := collect(rows, func(r EnrichedObservation) *float64 { return r.WindSpeed })
	avgWind, _, maxWind, stdWind := summarize(wind)
	agg.AvgWindSpeed, agg.MaxWindSpeed, agg.StddevWindSpeed = avgWind, maxWind, stdWind

	precip := collect(rows, func(r EnrichedObservation) *float64 { return r.Precipitation })
	if len(precip) > 0 {
		agg.TotalPrecipitation = floats.Sum(precip)
		agg.AvgPrecipitation = stat.Mean(precip, nil)
		agg.MaxPrecipitation = floats.Max(precip)
	}

	var scoreSum float64
	for _, r := range rows {
		scoreSum += r.DataQualityScore
		agg.HoursHot += boolToInt(r.IsHot)
		agg.HoursCold += boolToInt(r.IsCold)
		agg.HoursHumid += boolToInt(r.IsHumid)
		agg.HoursWindy += boolToInt(r.IsWindy)
		agg.HoursCloudy += boolToInt(r.IsCloudy)
		agg.HoursRaining += boolToInt(r.IsRaining)
	}
	if len(rows) > 0 {
		agg.AvgQualityScore = scoreSum / float64(len(rows))
	}

	return agg
}

// collect gathers the non-null values of one measurement across a day.
func collect(rows []EnrichedObservation, get func(EnrichedObservation) *float64) []float64 {
	vals := make([]float64, 0, len(rows))
	for _, r := range rows {
		if v := get(r); v != nil {
			vals = append(vals, *v)
		}
	}
	return vals
}

// summarize computes mean/min/max/sample-stddev over the valid values of a
// day. Mean/min/max need at least one value, stddev at least two.
func summarize(vals []float64) (mean, min, max, stddev *float64) {
	if len(vals) == 0 {
		return nil, nil, nil, nil
	}
	mean = ptr(stat.Mean(vals, nil))
	min = ptr(floats.Min(vals))
	max = ptr(floats.Max(vals))
	if len(vals) >= 2 {
		stddev = ptr(stat.StdDev(vals, nil))
	}
	return mean, min, max, stddev
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
