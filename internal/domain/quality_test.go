package domain

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// hourlyRow builds a staging row for the given location at baseDay+hour with
// one temperature value; other measurements stay nil unless set by the caller.
func hourlyRow(location string, hour int, temp *float64) StagingObservation {
	baseDay := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)
	dt := baseDay.Add(time.Duration(hour) * time.Hour)
	return StagingObservation{
		RecordID:        fmt.Sprintf("%s_%02d", location, hour),
		Datetime:        dt,
		ObservationDate: baseDay,
		Hour:            hour,
		LocationName:    location,
		Temperature:     temp,
	}
}

func TestValidateRowBounds(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*StagingObservation)
		inspect func(*testing.T, QualityObservation)
	}{
		{
			name:   "temperature below range is nulled and flagged",
			mutate: func(s *StagingObservation) { s.Temperature = ptr(-999) },
			inspect: func(t *testing.T, q QualityObservation) {
				assert.True(t, q.TemperatureOutlier)
				assert.Nil(t, q.Temperature)
			},
		},
		{
			name:   "temperature in range passes through",
			mutate: func(s *StagingObservation) { s.Temperature = ptr(31.5) },
			inspect: func(t *testing.T, q QualityObservation) {
				assert.False(t, q.TemperatureOutlier)
				require.NotNil(t, q.Temperature)
				assert.Equal(t, 31.5, *q.Temperature)
			},
		},
		{
			name:   "humidity above 100 clamps and flags",
			mutate: func(s *StagingObservation) { s.Humidity = ptr(120) },
			inspect: func(t *testing.T, q QualityObservation) {
				assert.True(t, q.HumidityOutlier)
				require.NotNil(t, q.Humidity)
				assert.Equal(t, 100.0, *q.Humidity)
			},
		},
		{
			name:   "negative humidity clamps to zero and flags",
			mutate: func(s *StagingObservation) { s.Humidity = ptr(-5) },
			inspect: func(t *testing.T, q QualityObservation) {
				assert.True(t, q.HumidityOutlier)
				require.NotNil(t, q.Humidity)
				assert.Equal(t, 0.0, *q.Humidity)
			},
		},
		{
			name:   "negative precipitation clamps to zero and flags",
			mutate: func(s *StagingObservation) { s.Precipitation = ptr(-3) },
			inspect: func(t *testing.T, q QualityObservation) {
				assert.True(t, q.PrecipitationOutlier)
				require.NotNil(t, q.Precipitation)
				assert.Equal(t, 0.0, *q.Precipitation)
			},
		},
		{
			name:   "missing precipitation zero-fills without a flag",
			mutate: func(s *StagingObservation) { s.Precipitation = nil },
			inspect: func(t *testing.T, q QualityObservation) {
				assert.False(t, q.PrecipitationOutlier)
				require.NotNil(t, q.Precipitation)
				assert.Equal(t, 0.0, *q.Precipitation)
			},
		},
		{
			name:   "pressure outside range is nulled and flagged",
			mutate: func(s *StagingObservation) { s.Pressure = ptr(900) },
			inspect: func(t *testing.T, q QualityObservation) {
				assert.True(t, q.PressureOutlier)
				assert.Nil(t, q.Pressure)
			},
		},
		{
			name:   "negative wind speed clamps to zero and flags",
			mutate: func(s *StagingObservation) { s.WindSpeed = ptr(-4) },
			inspect: func(t *testing.T, q QualityObservation) {
				assert.True(t, q.WindSpeedOutlier)
				require.NotNil(t, q.WindSpeed)
				assert.Equal(t, 0.0, *q.WindSpeed)
			},
		},
		{
			name:   "wind speed above ceiling is nulled and flagged",
			mutate: func(s *StagingObservation) { s.WindSpeed = ptr(200) },
			inspect: func(t *testing.T, q QualityObservation) {
				assert.True(t, q.WindSpeedOutlier)
				assert.Nil(t, q.WindSpeed)
			},
		},
		{
			name:   "missing temperature is not an outlier",
			mutate: func(s *StagingObservation) { s.Temperature = nil },
			inspect: func(t *testing.T, q QualityObservation) {
				assert.False(t, q.TemperatureOutlier)
				assert.Nil(t, q.Temperature)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := hourlyRow("Hanoi", 0, nil)
			tt.mutate(&s)
			tt.inspect(t, validateRow(s))
		})
	}
}

func TestCheckQualityGapFill(t *testing.T) {
	t.Run("fills from centered window of same location and day", func(t *testing.T) {
		staged := []StagingObservation{
			hourlyRow("Hanoi", 0, ptr(20)),
			hourlyRow("Hanoi", 1, ptr(22)),
			hourlyRow("Hanoi", 2, ptr(-999)), // flagged, then recovered
			hourlyRow("Hanoi", 3, ptr(26)),
			hourlyRow("Hanoi", 4, ptr(24)),
		}

		quality, dropped := CheckQuality(staged)

		require.Len(t, quality, 5)
		assert.Equal(t, 0, dropped)

		filled := quality[2]
		assert.True(t, filled.TemperatureOutlier)
		require.NotNil(t, filled.Temperature)
		assert.Equal(t, 23.0, *filled.Temperature) // (20+22+26+24)/4
		assert.Equal(t, 80.0, filled.DataQualityScore)
	})

	t.Run("fills read pre-fill values only", func(t *testing.T) {
		staged := []StagingObservation{
			hourlyRow("Hanoi", 0, nil),
			hourlyRow("Hanoi", 1, nil),
			hourlyRow("Hanoi", 2, ptr(10)),
		}

		quality, _ := CheckQuality(staged)

		require.Len(t, quality, 3)
		// Both nulls see only the original value 10, never each other's fill.
		require.NotNil(t, quality[0].Temperature)
		require.NotNil(t, quality[1].Temperature)
		assert.Equal(t, 10.0, *quality[0].Temperature)
		assert.Equal(t, 10.0, *quality[1].Temperature)
	})

	t.Run("window never crosses a day boundary", func(t *testing.T) {
		day2 := hourlyRow("Hanoi", 0, nil)
		day2.Datetime = day2.Datetime.AddDate(0, 0, 1)
		day2.ObservationDate = day2.ObservationDate.AddDate(0, 0, 1)
		day2.RecordID = "Hanoi_d2"

		staged := []StagingObservation{
			hourlyRow("Hanoi", 22, ptr(25)),
			hourlyRow("Hanoi", 23, ptr(27)),
			day2,
		}

		quality, _ := CheckQuality(staged)

		require.Len(t, quality, 3)
		assert.Nil(t, quality[2].Temperature)
	})

	t.Run("window never crosses locations", func(t *testing.T) {
		staged := []StagingObservation{
			hourlyRow("Da Nang", 0, ptr(30)),
			hourlyRow("Da Nang", 1, ptr(30)),
			hourlyRow("Hanoi", 0, nil),
		}

		quality, _ := CheckQuality(staged)

		require.Len(t, quality, 3)
		// Sorted by location: Da Nang rows first, Hanoi last.
		assert.Equal(t, "Hanoi", quality[2].LocationName)
		assert.Nil(t, quality[2].Temperature)
	})

	t.Run("value with an all-null window stays null", func(t *testing.T) {
		staged := []StagingObservation{hourlyRow("Hanoi", 0, nil)}

		quality, _ := CheckQuality(staged)

		require.Len(t, quality, 1)
		assert.Nil(t, quality[0].Temperature)
	})
}

func TestCheckQualityScoreFilter(t *testing.T) {
	t.Run("three flags drop the row", func(t *testing.T) {
		bad := hourlyRow("Hanoi", 0, ptr(-999))
		bad.Humidity = ptr(150)
		bad.WindSpeed = ptr(999)

		quality, dropped := CheckQuality([]StagingObservation{bad})

		assert.Empty(t, quality)
		assert.Equal(t, 1, dropped)
	})

	t.Run("two flags score 60 and survive", func(t *testing.T) {
		row := hourlyRow("Hanoi", 0, ptr(30))
		row.Humidity = ptr(150)
		row.WindSpeed = ptr(-1)

		quality, dropped := CheckQuality([]StagingObservation{row})

		require.Len(t, quality, 1)
		assert.Equal(t, 0, dropped)
		assert.Equal(t, 60.0, quality[0].DataQualityScore)
	})

	t.Run("clean row scores 100", func(t *testing.T) {
		row := hourlyRow("Hanoi", 0, ptr(30))
		row.Humidity = ptr(70)
		row.Pressure = ptr(1010)
		row.WindSpeed = ptr(12)
		row.Precipitation = ptr(0.5)

		quality, _ := CheckQuality([]StagingObservation{row})

		require.Len(t, quality, 1)
		assert.Equal(t, 100.0, quality[0].DataQualityScore)
	})
}

func TestCheckQualityOrdering(t *testing.T) {
	staged := []StagingObservation{
		hourlyRow("Hanoi", 5, ptr(30)),
		hourlyRow("Can Tho", 3, ptr(28)),
		hourlyRow("Hanoi", 1, ptr(26)),
	}

	quality, _ := CheckQuality(staged)

	require.Len(t, quality, 3)
	assert.Equal(t, "Can Tho", quality[0].LocationName)
	assert.Equal(t, "Hanoi", quality[1].LocationName)
	assert.Equal(t, 1, quality[1].Hour)
	assert.Equal(t, 5, quality[2].Hour)
}
