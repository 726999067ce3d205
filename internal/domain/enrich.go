package domain

// Condition thresholds, documented operational values rather than data-driven ones.
const (
	HotThreshold    = 32.0 // °C
	ColdThreshold   = 20.0 // °C
	HumidThreshold  = 80.0 // %
	WindyThreshold  = 20.0 // km/h
	CloudyThreshold = 70.0 // %
)

// Enrich derives categorical features, condition flags, and composite indices
// for each quality-checked row. It is a pure per-row transformation; flags on
// rows whose underlying measurement is still null stay false.
func Enrich(rows []QualityObservation) []EnrichedObservation {
	out := make([]EnrichedObservation, 0, len(rows))
	for _, q := range rows {
		e := EnrichedObservation{
			QualityObservation: q,
			Season:             SeasonFor(q.Datetime.Month()),
			TimeOfDay:          TimeOfDayFor(q.Hour),
			IsHot:              exceeds(q.Temperature, HotThreshold),
			IsCold:             below(q.Temperature, ColdThreshold),
			IsHumid:            exceeds(q.Humidity, HumidThreshold),
			IsWindy:            exceeds(q.WindSpeed, WindyThreshold),
			IsCloudy:           exceeds(q.CloudCover, CloudyThreshold),
			IsRaining:          exceeds(q.Precipitation, 0),
			PrecipIntensity:    precipIntensity(q.Precipitation),
		}

		if q.Temperature != nil && q.Humidity != nil {
			e.TempHumidityIndex = ptr(*q.Temperature + 0.05**q.Humidity*5)
		}
		if q.Temperature != nil && q.WindSpeed != nil {
			e.WindChillIndex = ptr(*q.Temperature - *q.WindSpeed/10)
		}

		out = append(out, e)
	}
	return out
}

func exceeds(v *float64, threshold float64) bool {
	return v != nil && *v > threshold
}

func below(v *float64, threshold float64) bool {
	return v != nil && *v < threshold
}

// precipIntensity buckets hourly precipitation in millimetres.
func precipIntensity(precip *float64) string {
	if precip == nil {
		return "No Rain"
	}
	switch {
	case *precip <= 0:
		return "No Rain"
	case *precip < 2.5:
		return "Light Rain"
	case *precip < 10:
		return "Moderate Rain"
	case *precip < 50:
		return "Heavy Rain"
	default:
		return "Very Heavy Rain"
	}
}
