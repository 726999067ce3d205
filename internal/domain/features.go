package domain

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// BuildFeatures turns the per-location, date-ordered daily aggregates into
// the ML feature table. Every lag and rolling feature reads only rows
// strictly before the current one; the current day contributes nothing but
// the prediction target. Rows without at least one day of history (nil
// temp_lag_1d) are excluded. Numeric outputs are rounded to two decimals at
// the final projection, after all feature arithmetic.
//
// Lags are row offsets in the location's sequence, not calendar offsets: a
// missing day shifts every subsequent lag. Rolling windows cover the k rows
// immediately preceding the current row and shrink near the start of a
// sequence rather than going null.
func BuildFeatures(aggs []DailyAggregate) []FeatureRow {
	byLocation := make(map[string][]DailyAggregate)
	var locations []string
	for _, a := range aggs {
		if _, seen := byLocation[a.LocationName]; !seen {
			locations = append(locations, a.LocationName)
		}
		byLocation[a.LocationName] = append(byLocation[a.LocationName], a)
	}
	sort.Strings(locations)

	var out []FeatureRow
	for _, loc := range locations {
		seq := byLocation[loc]
		sort.Slice(seq, func(i, j int) bool { return seq[i].Date.Before(seq[j].Date) })
		out = append(out, buildLocationFeatures(seq)...)
	}
	return out
}

// Metric accessors over the daily aggregate sequence.
func tempOf(a DailyAggregate) *float64     { return a.AvgTemperature }
func humidityOf(a DailyAggregate) *float64 { return a.AvgHumidity }
func pressureOf(a DailyAggregate) *float64 { return a.AvgPressure }
func windOf(a DailyAggregate) *float64     { return a.AvgWindSpeed }
func precipOf(a DailyAggregate) *float64   { return ptr(a.TotalPrecipitation) }

func buildLocationFeatures(seq []DailyAggregate) []FeatureRow {
	out := make([]FeatureRow, 0, len(seq))

	for i := range seq {
		cur := seq[i]

		tempLag1 := lag(seq, i, 1, tempOf)
		if tempLag1 == nil {
			// First row of the sequence, or the previous day had no valid
			// temperature: no usable history, so no feature row.
			continue
		}

		tempLag2 := lag(seq, i, 2, tempOf)
		tempLag3 := lag(seq, i, 3, tempOf)
		tempLag7 := lag(seq, i, 7, tempOf)
		tempLag14 := lag(seq, i, 14, tempOf)

		pressureLag1 := lag(seq, i, 1, pressureOf)
		pressureLag3 := lag(seq, i, 3, pressureOf)
		humidityLag1 := lag(seq, i, 1, humidityOf)

		tempWin7 := window(seq, i, 7, tempOf)
		tempWin14 := window(seq, i, 14, tempOf)
		tempWin30 := window(seq, i, 30, tempOf)
		tempRoll7 := windowMean(tempWin7)
		tempRoll30 := windowMean(tempWin30)

		row := FeatureRow{
			LocationName:  cur.LocationName,
			Date:          cur.Date,
			Month:         int(cur.Date.Month()),
			DayOfWeek:     int(cur.Date.Weekday()),
			IsRainySeason: SeasonFor(cur.Date.Month()) == SeasonRainy,

			TempLag1d:  round2p(tempLag1),
			TempLag2d:  round2p(tempLag2),
			TempLag3d:  round2p(tempLag3),
			TempLag7d:  round2p(tempLag7),
			TempLag14d: round2p(tempLag14),

			HumidityLag1d: round2p(humidityLag1),
			HumidityLag2d: round2p(lag(seq, i, 2, humidityOf)),
			HumidityLag3d: round2p(lag(seq, i, 3, humidityOf)),

			PressureLag1d: round2p(pressureLag1),
			PressureLag2d: round2p(lag(seq, i, 2, pressureOf)),
			PressureLag3d: round2p(pressureLag3),

			WindSpeedLag1d: round2p(lag(seq, i, 1, windOf)),
			WindSpeedLag2d: round2p(lag(seq, i, 2, windOf)),
			WindSpeedLag3d: round2p(lag(seq, i, 3, windOf)),

			PrecipLag1d: round2p(lag(seq, i, 1, precipOf)),
			PrecipLag2d: round2p(lag(seq, i, 2, precipOf)),
			PrecipLag3d: round2p(lag(seq, i, 3, precipOf)),
			PrecipLag7d: round2p(lag(seq, i, 7, precipOf)),

			TempRolling7dPrev:  round2p(tempRoll7),
			TempRolling7dStd:   round2p(windowStddev(tempWin7)),
			TempRolling7dMin:   round2p(windowMin(tempWin7)),
			TempRolling7dMax:   round2p(windowMax(tempWin7)),
			TempRolling14dPrev: round2p(windowMean(tempWin14)),
			TempRolling14dStd:  round2p(windowStddev(tempWin14)),
			TempRolling30dPrev: round2p(tempRoll30),
			TempRolling30dStd:  round2p(windowStddev(tempWin30)),

			HumidityRolling7dPrev:  round2p(windowMean(window(seq, i, 7, humidityOf))),
			HumidityRolling14dPrev: round2p(windowMean(window(seq, i, 14, humidityOf))),
			PressureRolling7dPrev:  round2p(windowMean(window(seq, i, 7, pressureOf))),
			PressureRolling7dStd:   round2p(windowStddev(window(seq, i, 7, pressureOf))),
			WindSpeedRolling7dPrev: round2p(windowMean(window(seq, i, 7, windOf))),
			PrecipRolling7dSum:     round2p(windowSum(window(seq, i, 7, precipOf))),

			// Change/trend/deviation arithmetic runs on unrounded inputs.
			TempChange1d:     round2p(sub(tempLag1, tempLag2)),
			TempChange7d:     round2p(sub(tempLag1, tempLag7)),
			TempTrend7d:      round2p(divBy(sub(tempLag1, tempLag7), 6)),
			TempVs7dAvg:      round2p(sub(tempLag1, tempRoll7)),
			TempVs30dAvg:     round2p(sub(tempLag1, tempRoll30)),
			HumidityChange1d: round2p(sub(humidityLag1, lag(seq, i, 2, humidityOf))),
			PressureChange1d: round2p(sub(pressureLag1, lag(seq, i, 2, pressureOf))),
			PressureTrend3d:  round2p(divBy(sub(pressureLag1, pressureLag3), 2)),

			AvgTemperature: round2p(cur.AvgTemperature),
		}

		out = append(out, row)
	}
	return out
}

// lag returns the metric value k rows back in the sequence, nil when fewer
// than k prior rows exist.
func lag(seq []DailyAggregate, i, k int, get func(DailyAggregate) *float64) *float64 {
	if i-k < 0 {
		return nil
	}
	return get(seq[i-k])
}

// window collects the non-null metric values of the k rows strictly preceding
// row i, oldest first. The current row is never included.
func window(seq []DailyAggregate, i, k int, get func(DailyAggregate) *float64) []float64 {
	lo := i - k
	if lo < 0 {
		lo = 0
	}
	vals := make([]float64, 0, i-lo)
	for j := lo; j < i; j++ {
		if v := get(seq[j]); v != nil {
			vals = append(vals, *v)
		}
	}
	return vals
}

func windowMean(vals []float64) *float64 {
	if len(vals) == 0 {
		return nil
	}
	return ptr(stat.Mean(vals, nil))
}

func windowStddev(vals []float64) *float64 {
	if len(vals) < 2 {
		return nil
	}
	return ptr(stat.StdDev(vals, nil))
}

func windowMin(vals []float64) *float64 {
	if len(vals) == 0 {
		return nil
	}
	return ptr(floats.Min(vals))
}

func windowMax(vals []float64) *float64 {
	if len(vals) == 0 {
		return nil
	}
	return ptr(floats.Max(vals))
}

func windowSum(vals []float64) *float64 {
	if len(vals) == 0 {
		return nil
	}
	return ptr(floats.Sum(vals))
}

func sub(a, b *float64) *float64 {
	if a == nil || b == nil {
		return nil
	}
	return ptr(*a - *b)
}

func divBy(a *float64, d float64) *float64 {
	if a == nil {
		return nil
	}
	return ptr(*a / d)
}

// round2p rounds to two decimals for the final projection; nil passes through.
func round2p(v *float64) *float64 {
	if v == nil {
		return nil
	}
	return ptr(math.Round(*v*100) / 100)
}
