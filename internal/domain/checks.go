package domain

import (
	"fmt"
	"math"
	"sort"
	"time"
)

// Violation is one failed data-quality assertion. The battery reports
// violations instead of failing the pipeline: a non-empty result set is the
// contract signal that downstream consumers cannot trust the run.
type Violation struct {
	Check  string `json:"check"`
	Detail string `json:"detail"`
}

// CheckResult is the outcome of a single named assertion.
type CheckResult struct {
	Name       string
	Violations []Violation
}

// Passed reports whether the assertion held over the whole input.
func (r CheckResult) Passed() bool { return len(r.Violations) == 0 }

// LagTolerance is the floating tolerance for the lag-consistency check; lag
// features are rounded to two decimals at projection, stored aggregates are not.
const LagTolerance = 0.1

// RunChecks executes the full assertion battery over the materialized layers.
func RunChecks(quality []QualityObservation, aggs []DailyAggregate, feats []FeatureRow, runDate time.Time) []CheckResult {
	return []CheckResult{
		{Name: "daily temperature ordering", Violations: CheckDailyTemperatureOrdering(aggs)},
		{Name: "daily precipitation non-negative", Violations: CheckDailyPrecipitation(aggs)},
		{Name: "daily key uniqueness", Violations: CheckDailyUniqueness(aggs)},
		{Name: "no future-dated aggregates", Violations: CheckNoFutureDates(aggs, runDate)},
		{Name: "quality score formula", Violations: CheckQualityScores(quality)},
		{Name: "lag consistency", Violations: CheckLagConsistency(aggs, feats)},
		{Name: "rolling window plausibility", Violations: CheckRollingPlausibility(feats)},
		{Name: "expected locations present", Violations: CheckExpectedLocations(aggs, KnownLocations)},
		{Name: "date continuity", Violations: CheckDateContinuity(aggs)},
	}
}

// CheckDailyTemperatureOrdering asserts min <= avg <= max for every row that
// has temperature statistics.
func CheckDailyTemperatureOrdering(aggs []DailyAggregate) []Violation {
	var out []Violation
	for _, a := range aggs {
		if a.AvgTemperature == nil || a.MinTemperature == nil || a.MaxTemperature == nil {
			continue
		}
		if *a.MinTemperature > *a.AvgTemperature || *a.AvgTemperature > *a.MaxTemperature {
			out = append(out, violation("daily_temperature_ordering",
				"%s %s: min=%.2f avg=%.2f max=%.2f",
				a.LocationName, day(a.Date), *a.MinTemperature, *a.AvgTemperature, *a.MaxTemperature))
		}
	}
	return out
}

// CheckDailyPrecipitation asserts total precipitation is never negative.
func CheckDailyPrecipitation(aggs []DailyAggregate) []Violation {
	var out []Violation
	for _, a := range aggs {
		if a.TotalPrecipitation < 0 {
			out = append(out, violation("daily_precipitation_non_negative",
				"%s %s: total_precipitation=%.2f", a.LocationName, day(a.Date), a.TotalPrecipitation))
		}
	}
	return out
}

// CheckDailyUniqueness asserts at most one row per (location, date).
func CheckDailyUniqueness(aggs []DailyAggregate) []Violation {
	seen := make(map[string]int)
	var out []Violation
	for _, a := range aggs {
		k := a.LocationName + "|" + day(a.Date)
		seen[k]++
		if seen[k] == 2 {
			out = append(out, violation("daily_key_uniqueness", "duplicate key %s", k))
		}
	}
	return out
}

// CheckNoFutureDates asserts no aggregate is dated beyond the run date.
func CheckNoFutureDates(aggs []DailyAggregate, runDate time.Time) []Violation {
	var out []Violation
	for _, a := range aggs {
		if a.Date.After(runDate) {
			out = append(out, violation("no_future_dates",
				"%s %s is beyond run date %s", a.LocationName, day(a.Date), day(runDate)))
		}
	}
	return out
}

// CheckQualityScores asserts every retained row scores within [0,100] and
// that the score matches 100 minus 20 per raised flag.
func CheckQualityScores(rows []QualityObservation) []Violation {
	var out []Violation
	for _, q := range rows {
		if q.DataQualityScore < 0 || q.DataQualityScore > 100 {
			out = append(out, violation("quality_score_range",
				"%s: score %.1f outside [0,100]", q.RecordID, q.DataQualityScore))
			continue
		}
		expected := 100 - OutlierPenalty*float64(q.OutlierCount())
		if q.DataQualityScore != expected {
			out = append(out, violation("quality_score_formula",
				"%s: score %.1f, expected %.1f for %d flags", q.RecordID, q.DataQualityScore, expected, q.OutlierCount()))
		}
	}
	return out
}

// CheckLagConsistency asserts temp_lag_1d equals the avg_temperature of the
// immediately preceding daily row for the same location, within LagTolerance.
func CheckLagConsistency(aggs []DailyAggregate, feats []FeatureRow) []Violation {
	ordered := aggsByLocation(aggs)

	var out []Violation
	for _, f := range feats {
		if f.TempLag1d == nil {
			out = append(out, violation("lag_consistency",
				"%s %s: emitted feature row without temp_lag_1d", f.LocationName, day(f.Date)))
			continue
		}
		prev := previousAggregate(ordered[f.LocationName], f.Date)
		if prev == nil || prev.AvgTemperature == nil {
			out = append(out, violation("lag_consistency",
				"%s %s: no preceding daily row to support temp_lag_1d", f.LocationName, day(f.Date)))
			continue
		}
		if math.Abs(*f.TempLag1d-*prev.AvgTemperature) > LagTolerance {
			out = append(out, violation("lag_consistency",
				"%s %s: temp_lag_1d=%.2f, preceding avg_temperature=%.4f",
				f.LocationName, day(f.Date), *f.TempLag1d, *prev.AvgTemperature))
		}
	}
	return out
}

// CheckRollingPlausibility bounds the distance between the target and its
// trailing rolling means: 15°C for the 7-day window, 20°C for the 30-day one.
func CheckRollingPlausibility(feats []FeatureRow) []Violation {
	var out []Violation
	for _, f := range feats {
		if f.AvgTemperature == nil {
			continue
		}
		if f.TempRolling7dPrev != nil && math.Abs(*f.AvgTemperature-*f.TempRolling7dPrev) > 15 {
			out = append(out, violation("rolling_plausibility",
				"%s %s: |target-rolling_7d| = %.2f", f.LocationName, day(f.Date),
				math.Abs(*f.AvgTemperature-*f.TempRolling7dPrev)))
		}
		if f.TempRolling30dPrev != nil && math.Abs(*f.AvgTemperature-*f.TempRolling30dPrev) > 20 {
			out = append(out, violation("rolling_plausibility",
				"%s %s: |target-rolling_30d| = %.2f", f.LocationName, day(f.Date),
				math.Abs(*f.AvgTemperature-*f.TempRolling30dPrev)))
		}
	}
	return out
}

// CheckExpectedLocations reports tracked locations absent from the daily fact
// table. Gaps are operator-investigated, never auto-corrected.
func CheckExpectedLocations(aggs []DailyAggregate, expected []KnownLocation) []Violation {
	present := make(map[string]bool)
	for _, a := range aggs {
		present[a.LocationName] = true
	}
	var out []Violation
	for _, loc := range expected {
		if !present[loc.Name] {
			out = append(out, violation("expected_locations", "no daily rows for %q", loc.Name))
		}
	}
	return out
}

// CheckDateContinuity reports per-location gaps of more than one day between
// consecutive daily rows.
func CheckDateContinuity(aggs []DailyAggregate) []Violation {
	ordered := aggsByLocation(aggs)

	var locations []string
	for loc := range ordered {
		locations = append(locations, loc)
	}
	sort.Strings(locations)

	var out []Violation
	for _, loc := range locations {
		seq := ordered[loc]
		for i := 1; i < len(seq); i++ {
			gap := seq[i].Date.Sub(seq[i-1].Date)
			if gap > 24*time.Hour {
				out = append(out, violation("date_continuity",
					"%s: %d-day gap between %s and %s", loc,
					int(gap.Hours()/24), day(seq[i-1].Date), day(seq[i].Date)))
			}
		}
	}
	return out
}

// aggsByLocation groups and date-orders the daily aggregates per location.
func aggsByLocation(aggs []DailyAggregate) map[string][]DailyAggregate {
	m := make(map[string][]DailyAggregate)
	for _, a := range aggs {
		m[a.LocationName] = append(m[a.LocationName], a)
	}
	for loc := range m {
		seq := m[loc]
		sort.Slice(seq, func(i, j int) bool { return seq[i].Date.Before(seq[j].Date) })
	}
	return m
}

// previousAggregate returns the latest aggregate dated strictly before d.
func previousAggregate(seq []DailyAggregate, d time.Time) *DailyAggregate {
	var prev *DailyAggregate
	for i := range seq {
		if !seq[i].Date.Before(d) {
			break
		}
		prev = &seq[i]
	}
	return prev
}

func violation(check, format string, args ...any) Violation {
	return Violation{Check: check, Detail: fmt.Sprintf(format, args...)}
}

func day(t time.Time) string { return t.Format("2006-01-02") }
