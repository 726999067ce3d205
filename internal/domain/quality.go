package domain

import "sort"

// Validity bounds for the five checked measurements. Values outside a bound
// are flagged; depending on the measurement they are clamped to the nearest
// bound or nulled for gap filling.
const (
	TemperatureMin = -50.0
	TemperatureMax = 60.0
	HumidityMin    = 0.0
	HumidityMax    = 100.0
	PressureMin    = 950.0
	PressureMax    = 1050.0
	WindSpeedMin   = 0.0
	WindSpeedMax   = 150.0

	// OutlierPenalty is the quality-score cost of each raised flag.
	OutlierPenalty = 20.0

	// MinQualityScore is the hard filter: rows scoring below it are excluded
	// from every downstream stage.
	MinQualityScore = 60.0

	// gapFillReach is how many neighbours on each side feed the centered
	// moving average used to recover nulled values (a 5-wide window).
	gapFillReach = 2
)

// CheckQuality validates staging rows against physical bounds, clamps or
// nulls offending values, recovers nulls from a centered 5-row window within
// each location/day, scores each row, and drops rows scoring below
// MinQualityScore. Returns the surviving rows ordered by location and
// timestamp, plus the count of rows dropped by the score filter.
func CheckQuality(staged []StagingObservation) ([]QualityObservation, int) {
	rows := make([]QualityObservation, 0, len(staged))
	for _, s := range staged {
		rows = append(rows, validateRow(s))
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].LocationName != rows[j].LocationName {
			return rows[i].LocationName < rows[j].LocationName
		}
		return rows[i].Datetime.Before(rows[j].Datetime)
	})

	fillGaps(rows)

	kept := make([]QualityObservation, 0, len(rows))
	dropped := 0
	for _, r := range rows {
		r.DataQualityScore = 100 - OutlierPenalty*float64(r.OutlierCount())
		if r.DataQualityScore < MinQualityScore {
			dropped++
			continue
		}
		kept = append(kept, r)
	}
	return kept, dropped
}

// validateRow applies the per-measurement bound checks to one staging row.
func validateRow(s StagingObservation) QualityObservation {
	q := QualityObservation{
		RecordID:        s.RecordID,
		Datetime:        s.Datetime,
		ObservationDate: s.ObservationDate,
		Hour:            s.Hour,
		DayOfWeek:       s.DayOfWeek,
		WeekOfYear:      s.WeekOfYear,
		Month:           s.Month,
		Quarter:         s.Quarter,
		Year:            s.Year,
		LocationName:    s.LocationName,
		Latitude:        s.Latitude,
		Longitude:       s.Longitude,
		WindDirection:   s.WindDirection,
		CloudCover:      s.CloudCover,
	}

	// Temperature and pressure outliers are nulled for gap filling.
	if s.Temperature != nil {
		if *s.Temperature < TemperatureMin || *s.Temperature > TemperatureMax {
			q.TemperatureOutlier = true
		} else {
			q.Temperature = ptr(*s.Temperature)
		}
	}
	if s.Pressure != nil {
		if *s.Pressure < PressureMin || *s.Pressure > PressureMax {
			q.PressureOutlier = true
		} else {
			q.Pressure = ptr(*s.Pressure)
		}
	}

	// Humidity is clamped to its nearest bound rather than discarded.
	if s.Humidity != nil {
		switch {
		case *s.Humidity < HumidityMin:
			q.HumidityOutlier = true
			q.Humidity = ptr(HumidityMin)
		case *s.Humidity > HumidityMax:
			q.HumidityOutlier = true
			q.Humidity = ptr(HumidityMax)
		default:
			q.Humidity = ptr(*s.Humidity)
		}
	}

	// Negative precipitation clamps to zero; missing precipitation is a dry
	// hour, not a gap, so it zero-fills without raising a flag.
	switch {
	case s.Precipitation == nil:
		q.Precipitation = ptr(0.0)
	case *s.Precipitation < 0:
		q.PrecipitationOutlier = true
		q.Precipitation = ptr(0.0)
	default:
		q.Precipitation = ptr(*s.Precipitation)
	}

	// Wind speed clamps at zero, nulls above the plausibility ceiling.
	if s.WindSpeed != nil {
		switch {
		case *s.WindSpeed < WindSpeedMin:
			q.WindSpeedOutlier = true
			q.WindSpeed = ptr(WindSpeedMin)
		case *s.WindSpeed > WindSpeedMax:
			q.WindSpeedOutlier = true
		default:
			q.WindSpeed = ptr(*s.WindSpeed)
		}
	}

	return q
}

// fillGaps recovers nulled temperature, humidity, pressure, and wind-speed
// values from the average of up to two preceding and two following rows of
// the same location and day, ordered by timestamp. The window reads the
// pre-fill values so earlier fills never feed later ones. A value whose whole
// window is null stays null.
func fillGaps(rows []QualityObservation) {
	for start := 0; start < len(rows); {
		end := start + 1
		for end < len(rows) &&
			rows[end].LocationName == rows[start].LocationName &&
			rows[end].ObservationDate.Equal(rows[start].ObservationDate) {
			end++
		}
		fillPartition(rows[start:end])
		start = end
	}
}

type measurementAccess struct {
	get func(*QualityObservation) *float64
	set func(*QualityObservation, *float64)
}

var gapFilled = []measurementAccess{
	{get: func(q *QualityObservation) *float64 { return q.Temperature },
		set: func(q *QualityObservation, v *float64) { q.Temperature = v }},
	{get: func(q *QualityObservation) *float64 { return q.Humidity },
		set: func(q *QualityObservation, v *float64) { q.Humidity = v }},
	{get: func(q *QualityObservation) *float64 { return q.Pressure },
		set: func(q *QualityObservation, v *float64) { q.Pressure = v }},
	{get: func(q *QualityObservation) *float64 { return q.WindSpeed },
		set: func(q *QualityObservation, v *float64) { q.WindSpeed = v }},
}

func fillPartition(part []QualityObservation) {
	for _, m := range gapFilled {
		snapshot := make([]*float64, len(part))
		for i := range part {
			snapshot[i] = m.get(&part[i])
		}
		for i := range part {
			if snapshot[i] != nil {
				continue
			}
			sum, n := 0.0, 0
			for j := i - gapFillReach; j <= i+gapFillReach; j++ {
				if j < 0 || j >= len(part) || j == i || snapshot[j] == nil {
					continue
				}
				sum += *snapshot[j]
				n++
			}
			if n > 0 {
				m.set(&part[i], ptr(sum/float64(n)))
			}
		}
	}
}

func ptr(v float64) *float64 { return &v }
