package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func qualityRow(month time.Month, hour int) QualityObservation {
	dt := time.Date(2024, month, 15, hour, 0, 0, 0, time.UTC)
	return QualityObservation{
		RecordID:        "Hanoi_test",
		Datetime:        dt,
		ObservationDate: DateOf(dt),
		Hour:            hour,
		LocationName:    "Hanoi",
	}
}

func TestEnrichSeasonAndTimeOfDay(t *testing.T) {
	tests := []struct {
		name      string
		month     time.Month
		hour      int
		season    string
		timeOfDay string
	}{
		{"january morning", time.January, 8, SeasonDry, "Morning"},
		{"april boundary", time.April, 12, SeasonDry, "Afternoon"},
		{"may starts rainy season", time.May, 16, SeasonRainy, "Afternoon"},
		{"october ends rainy season", time.October, 17, SeasonRainy, "Evening"},
		{"november back to dry", time.November, 21, SeasonDry, "Night"},
		{"early hours are night", time.June, 4, SeasonRainy, "Night"},
		{"five is morning", time.June, 5, SeasonRainy, "Morning"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			enriched := Enrich([]QualityObservation{qualityRow(tt.month, tt.hour)})

			require.Len(t, enriched, 1)
			assert.Equal(t, tt.season, enriched[0].Season)
			assert.Equal(t, tt.timeOfDay, enriched[0].TimeOfDay)
		})
	}
}

func TestEnrichConditionFlags(t *testing.T) {
	t.Run("thresholds are strict", func(t *testing.T) {
		q := qualityRow(time.June, 14)
		q.Temperature = ptr(32) // exactly at the hot threshold
		q.Humidity = ptr(80)
		q.WindSpeed = ptr(20)
		q.CloudCover = ptr(70)
		q.Precipitation = ptr(0)

		e := Enrich([]QualityObservation{q})[0]

		assert.False(t, e.IsHot)
		assert.False(t, e.IsHumid)
		assert.False(t, e.IsWindy)
		assert.False(t, e.IsCloudy)
		assert.False(t, e.IsRaining)
	})

	t.Run("all conditions raised", func(t *testing.T) {
		q := qualityRow(time.June, 14)
		q.Temperature = ptr(33)
		q.Humidity = ptr(85)
		q.WindSpeed = ptr(25)
		q.CloudCover = ptr(90)
		q.Precipitation = ptr(1.2)

		e := Enrich([]QualityObservation{q})[0]

		assert.True(t, e.IsHot)
		assert.False(t, e.IsCold)
		assert.True(t, e.IsHumid)
		assert.True(t, e.IsWindy)
		assert.True(t, e.IsCloudy)
		assert.True(t, e.IsRaining)
	})

	t.Run("cold below twenty", func(t *testing.T) {
		q := qualityRow(time.January, 6)
		q.Temperature = ptr(19.9)

		e := Enrich([]QualityObservation{q})[0]

		assert.True(t, e.IsCold)
		assert.False(t, e.IsHot)
	})

	t.Run("null measurements never raise flags", func(t *testing.T) {
		q := qualityRow(time.June, 14)

		e := Enrich([]QualityObservation{q})[0]

		assert.False(t, e.IsHot)
		assert.False(t, e.IsCold)
		assert.False(t, e.IsHumid)
		assert.False(t, e.IsWindy)
		assert.False(t, e.IsCloudy)
		assert.False(t, e.IsRaining)
	})
}

func TestEnrichCompositeIndices(t *testing.T) {
	t.Run("computed when inputs present", func(t *testing.T) {
		q := qualityRow(time.June, 14)
		q.Temperature = ptr(30)
		q.Humidity = ptr(80)
		q.WindSpeed = ptr(20)

		e := Enrich([]QualityObservation{q})[0]

		require.NotNil(t, e.TempHumidityIndex)
		assert.InDelta(t, 50.0, *e.TempHumidityIndex, 1e-9) // 30 + 0.05*80*5
		require.NotNil(t, e.WindChillIndex)
		assert.InDelta(t, 28.0, *e.WindChillIndex, 1e-9) // 30 - 20/10
	})

	t.Run("null when either input is null", func(t *testing.T) {
		q := qualityRow(time.June, 14)
		q.Temperature = ptr(30)

		e := Enrich([]QualityObservation{q})[0]

		assert.Nil(t, e.TempHumidityIndex)
		assert.Nil(t, e.WindChillIndex)
	})
}

func TestPrecipIntensity(t *testing.T) {
	tests := []struct {
		name   string
		precip *float64
		want   string
	}{
		{"null", nil, "No Rain"},
		{"zero", ptr(0), "No Rain"},
		{"light", ptr(1.0), "Light Rain"},
		{"light upper bound", ptr(2.49), "Light Rain"},
		{"moderate", ptr(2.5), "Moderate Rain"},
		{"heavy", ptr(10), "Heavy Rain"},
		{"very heavy", ptr(50), "Very Heavy Rain"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, precipIntensity(tt.precip))
		})
	}
}
