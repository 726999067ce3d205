package domain

// NormalizeStaging builds the staging layer from raw observations: it derives
// calendar fields from the timestamp, flags missing core measurements, and
// drops rows without a timestamp or location. Dropped rows are returned as a
// count so the caller can report them; they never propagate downstream.
func NormalizeStaging(raw []RawObservation) ([]StagingObservation, int) {
	out := make([]StagingObservation, 0, len(raw))
	dropped := 0

	for _, r := range raw {
		if r.Datetime.IsZero() || r.LocationName == "" {
			dropped++
			continue
		}

		dt := r.Datetime.UTC()
		_, week := dt.ISOWeek()

		out = append(out, StagingObservation{
			RecordID:        r.RecordID,
			Datetime:        dt,
			ObservationDate: DateOf(dt),
			Hour:            dt.Hour(),
			DayOfWeek:       int(dt.Weekday()),
			WeekOfYear:      week,
			Month:           int(dt.Month()),
			Quarter:         quarterOf(dt.Month()),
			Year:            dt.Year(),
			LocationName:    r.LocationName,
			Latitude:        r.Latitude,
			Longitude:       r.Longitude,

			Temperature:   r.Temperature,
			Humidity:      r.Humidity,
			Precipitation: r.Precipitation,
			Pressure:      r.Pressure,
			WindSpeed:     r.WindSpeed,
			WindDirection: r.WindDirection,
			CloudCover:    r.CloudCover,

			TemperatureMissing:   r.Temperature == nil,
			HumidityMissing:      r.Humidity == nil,
			PrecipitationMissing: r.Precipitation == nil,
			PressureMissing:      r.Pressure == nil,
			WindSpeedMissing:     r.WindSpeed == nil,
		})
	}

	return out, dropped
}
