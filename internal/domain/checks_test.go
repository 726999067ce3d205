package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func healthyAgg(location string, date time.Time, avgTemp float64) DailyAggregate {
	return DailyAggregate{
		LocationName:   location,
		Date:           date,
		AvgTemperature: ptr(avgTemp),
		MinTemperature: ptr(avgTemp - 3),
		MaxTemperature: ptr(avgTemp + 3),
	}
}

func TestCheckDailyTemperatureOrdering(t *testing.T) {
	day := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)

	t.Run("ordered statistics pass", func(t *testing.T) {
		assert.Empty(t, CheckDailyTemperatureOrdering([]DailyAggregate{healthyAgg("Hanoi", day, 28)}))
	})

	t.Run("min above avg is a violation", func(t *testing.T) {
		a := healthyAgg("Hanoi", day, 28)
		a.MinTemperature = ptr(30)

		violations := CheckDailyTemperatureOrdering([]DailyAggregate{a})

		require.Len(t, violations, 1)
		assert.Equal(t, "daily_temperature_ordering", violations[0].Check)
	})

	t.Run("rows without statistics are skipped", func(t *testing.T) {
		a := DailyAggregate{LocationName: "Hanoi", Date: day}
		assert.Empty(t, CheckDailyTemperatureOrdering([]DailyAggregate{a}))
	})
}

func TestCheckDailyUniqueness(t *testing.T) {
	day := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)
	aggs := []DailyAggregate{
		healthyAgg("Hanoi", day, 28),
		healthyAgg("Hanoi", day, 29),
		healthyAgg("Da Nang", day, 30),
	}

	violations := CheckDailyUniqueness(aggs)

	require.Len(t, violations, 1)
	assert.Contains(t, violations[0].Detail, "Hanoi")
}

func TestCheckNoFutureDates(t *testing.T) {
	runDate := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)
	aggs := []DailyAggregate{
		healthyAgg("Hanoi", runDate, 28),
		healthyAgg("Hanoi", runDate.AddDate(0, 0, 1), 28),
	}

	violations := CheckNoFutureDates(aggs, runDate)

	require.Len(t, violations, 1)
	assert.Contains(t, violations[0].Detail, "2024-06-16")
}

func TestCheckQualityScores(t *testing.T) {
	row := func(score float64, flags int) QualityObservation {
		q := QualityObservation{RecordID: "r", DataQualityScore: score}
		if flags > 0 {
			q.TemperatureOutlier = true
		}
		if flags > 1 {
			q.HumidityOutlier = true
		}
		return q
	}

	t.Run("score matching the formula passes", func(t *testing.T) {
		assert.Empty(t, CheckQualityScores([]QualityObservation{row(100, 0), row(80, 1), row(60, 2)}))
	})

	t.Run("out-of-range score", func(t *testing.T) {
		violations := CheckQualityScores([]QualityObservation{row(120, 0)})
		require.Len(t, violations, 1)
		assert.Equal(t, "quality_score_range", violations[0].Check)
	})

	t.Run("score inconsistent with flag count", func(t *testing.T) {
		violations := CheckQualityScores([]QualityObservation{row(100, 1)})
		require.Len(t, violations, 1)
		assert.Equal(t, "quality_score_formula", violations[0].Check)
	})
}

func TestCheckLagConsistency(t *testing.T) {
	day := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)
	aggs := []DailyAggregate{
		healthyAgg("Hanoi", day, 28.123),
		healthyAgg("Hanoi", day.AddDate(0, 0, 1), 29),
	}

	t.Run("rounded lag within tolerance passes", func(t *testing.T) {
		feats := []FeatureRow{{
			LocationName: "Hanoi",
			Date:         day.AddDate(0, 0, 1),
			TempLag1d:    ptr(28.12),
		}}

		assert.Empty(t, CheckLagConsistency(aggs, feats))
	})

	t.Run("lag disagreeing with the preceding day fails", func(t *testing.T) {
		feats := []FeatureRow{{
			LocationName: "Hanoi",
			Date:         day.AddDate(0, 0, 1),
			TempLag1d:    ptr(25.0),
		}}

		violations := CheckLagConsistency(aggs, feats)

		require.Len(t, violations, 1)
		assert.Equal(t, "lag_consistency", violations[0].Check)
	})

	t.Run("feature row without a preceding daily row fails", func(t *testing.T) {
		feats := []FeatureRow{{
			LocationName: "Hanoi",
			Date:         day,
			TempLag1d:    ptr(27.0),
		}}

		violations := CheckLagConsistency(aggs, feats)

		require.Len(t, violations, 1)
	})

	t.Run("nil lag on an emitted row fails", func(t *testing.T) {
		feats := []FeatureRow{{LocationName: "Hanoi", Date: day.AddDate(0, 0, 1)}}

		violations := CheckLagConsistency(aggs, feats)

		require.Len(t, violations, 1)
	})
}

func TestCheckRollingPlausibility(t *testing.T) {
	day := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)

	t.Run("target near the rolling means passes", func(t *testing.T) {
		feats := []FeatureRow{{
			LocationName:       "Hanoi",
			Date:               day,
			AvgTemperature:     ptr(28),
			TempRolling7dPrev:  ptr(27),
			TempRolling30dPrev: ptr(26),
		}}

		assert.Empty(t, CheckRollingPlausibility(feats))
	})

	t.Run("target far from the 7-day mean fails", func(t *testing.T) {
		feats := []FeatureRow{{
			LocationName:      "Hanoi",
			Date:              day,
			AvgTemperature:    ptr(45),
			TempRolling7dPrev: ptr(25),
		}}

		violations := CheckRollingPlausibility(feats)

		require.Len(t, violations, 1)
		assert.Contains(t, violations[0].Detail, "rolling_7d")
	})
}

func TestCheckExpectedLocations(t *testing.T) {
	day := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)
	aggs := []DailyAggregate{
		healthyAgg("Hanoi", day, 28),
		healthyAgg("Ho Chi Minh City", day, 30),
		healthyAgg("Da Nang", day, 29),
		healthyAgg("Can Tho", day, 30),
	}

	violations := CheckExpectedLocations(aggs, KnownLocations)

	require.Len(t, violations, 1)
	assert.Contains(t, violations[0].Detail, "Hai Phong")
}

func TestCheckDateContinuity(t *testing.T) {
	day := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)

	t.Run("consecutive days pass", func(t *testing.T) {
		aggs := []DailyAggregate{
			healthyAgg("Hanoi", day, 28),
			healthyAgg("Hanoi", day.AddDate(0, 0, 1), 28),
		}

		assert.Empty(t, CheckDateContinuity(aggs))
	})

	t.Run("multi-day gap is reported", func(t *testing.T) {
		aggs := []DailyAggregate{
			healthyAgg("Hanoi", day, 28),
			healthyAgg("Hanoi", day.AddDate(0, 0, 3), 28),
		}

		violations := CheckDateContinuity(aggs)

		require.Len(t, violations, 1)
		assert.Contains(t, violations[0].Detail, "3-day gap")
	})

	t.Run("gaps are per location", func(t *testing.T) {
		aggs := []DailyAggregate{
			healthyAgg("Hanoi", day, 28),
			healthyAgg("Da Nang", day.AddDate(0, 0, 5), 29),
		}

		assert.Empty(t, CheckDateContinuity(aggs))
	})
}

func TestRunChecksNamesEveryAssertion(t *testing.T) {
	results := RunChecks(nil, nil, nil, time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC))

	require.Len(t, results, 9)
	seen := map[string]bool{}
	for _, r := range results {
		assert.NotEmpty(t, r.Name)
		assert.False(t, seen[r.Name], "duplicate check name %q", r.Name)
		seen[r.Name] = true
	}
	// With no data every structural check passes except location coverage.
	for _, r := range results {
		if r.Name == "expected locations present" {
			assert.Len(t, r.Violations, len(KnownLocations))
			continue
		}
		assert.True(t, r.Passed(), "check %q unexpectedly failed", r.Name)
	}
}
