package parquet

import (
	"time"

	"github.com/monsoonlab/weather-marts-etl/internal/domain"
)

// Parquet row mirrors of the marts tables. Dates are epoch-millisecond
// INT64 columns (TIMESTAMP_MILLIS); pointer fields become OPTIONAL columns.

type dailyRow struct {
	LocationName     string `parquet:"name=location_name, type=BYTE_ARRAY, convertedtype=UTF8"`
	Date             int64  `parquet:"name=date, type=INT64, convertedtype=TIMESTAMP_MILLIS"`
	ObservationCount int32  `parquet:"name=observation_count, type=INT32"`

	AvgTemperature    *float64 `parquet:"name=avg_temperature, type=DOUBLE"`
	MinTemperature    *float64 `parquet:"name=min_temperature, type=DOUBLE"`
	MaxTemperature    *float64 `parquet:"name=max_temperature, type=DOUBLE"`
	StddevTemperature *float64 `parquet:"name=stddev_temperature, type=DOUBLE"`

	AvgHumidity    *float64 `parquet:"name=avg_humidity, type=DOUBLE"`
	MinHumidity    *float64 `parquet:"name=min_humidity, type=DOUBLE"`
	MaxHumidity    *float64 `parquet:"name=max_humidity, type=DOUBLE"`
	StddevHumidity *float64 `parquet:"name=stddev_humidity, type=DOUBLE"`

	AvgPressure    *float64 `parquet:"name=avg_pressure, type=DOUBLE"`
	MinPressure    *float64 `parquet:"name=min_pressure, type=DOUBLE"`
	MaxPressure    *float64 `parquet:"name=max_pressure, type=DOUBLE"`
	StddevPressure *float64 `parquet:"name=stddev_pressure, type=DOUBLE"`

	AvgWindSpeed    *float64 `parquet:"name=avg_wind_speed, type=DOUBLE"`
	MaxWindSpeed    *float64 `parquet:"name=max_wind_speed, type=DOUBLE"`
	StddevWindSpeed *float64 `parquet:"name=stddev_wind_speed, type=DOUBLE"`

	TotalPrecipitation float64 `parquet:"name=total_precipitation, type=DOUBLE"`
	AvgPrecipitation   float64 `parquet:"name=avg_precipitation, type=DOUBLE"`
	MaxPrecipitation   float64 `parquet:"name=max_precipitation, type=DOUBLE"`

	HoursHot     int32 `parquet:"name=hours_hot, type=INT32"`
	HoursCold    int32 `parquet:"name=hours_cold, type=INT32"`
	HoursHumid   int32 `parquet:"name=hours_humid, type=INT32"`
	HoursWindy   int32 `parquet:"name=hours_windy, type=INT32"`
	HoursCloudy  int32 `parquet:"name=hours_cloudy, type=INT32"`
	HoursRaining int32 `parquet:"name=hours_raining, type=INT32"`

	AvgQualityScore float64 `parquet:"name=avg_quality_score, type=DOUBLE"`
}

func dailyRows(aggs []domain.DailyAggregate) []dailyRow {
	out := make([]dailyRow, 0, len(aggs))
	for _, a := range aggs {
		out = append(out, dailyRow{
			LocationName:     a.LocationName,
			Date:             millis(a.Date),
			ObservationCount: int32(a.ObservationCount),

			AvgTemperature:    a.AvgTemperature,
			MinTemperature:    a.MinTemperature,
			MaxTemperature:    a.MaxTemperature,
			StddevTemperature: a.StddevTemperature,

			AvgHumidity:    a.AvgHumidity,
			MinHumidity:    a.MinHumidity,
			MaxHumidity:    a.MaxHumidity,
			StddevHumidity: a.StddevHumidity,

			AvgPressure:    a.AvgPressure,
			MinPressure:    a.MinPressure,
			MaxPressure:    a.MaxPressure,
			StddevPressure: a.StddevPressure,

			AvgWindSpeed:    a.AvgWindSpeed,
			MaxWindSpeed:    a.MaxWindSpeed,
			StddevWindSpeed: a.StddevWindSpeed,

			TotalPrecipitation: a.TotalPrecipitation,
			AvgPrecipitation:   a.AvgPrecipitation,
			MaxPrecipitation:   a.MaxPrecipitation,

			HoursHot:     int32(a.HoursHot),
			HoursCold:    int32(a.HoursCold),
			HoursHumid:   int32(a.HoursHumid),
			HoursWindy:   int32(a.HoursWindy),
			HoursCloudy:  int32(a.HoursCloudy),
			HoursRaining: int32(a.HoursRaining),

			AvgQualityScore: a.AvgQualityScore,
		})
	}
	return out
}

type featureRowOut struct {
	LocationName  string `parquet:"name=location_name, type=BYTE_ARRAY, convertedtype=UTF8"`
	Date          int64  `parquet:"name=date, type=INT64, convertedtype=TIMESTAMP_MILLIS"`
	Month         int32  `parquet:"name=month, type=INT32"`
	DayOfWeek     int32  `parquet:"name=day_of_week, type=INT32"`
	IsRainySeason bool   `parquet:"name=is_rainy_season, type=BOOLEAN"`

	TempLag1d  *float64 `parquet:"name=temp_lag_1d, type=DOUBLE"`
	TempLag2d  *float64 `parquet:"name=temp_lag_2d, type=DOUBLE"`
	TempLag3d  *float64 `parquet:"name=temp_lag_3d, type=DOUBLE"`
	TempLag7d  *float64 `parquet:"name=temp_lag_7d, type=DOUBLE"`
	TempLag14d *float64 `parquet:"name=temp_lag_14d, type=DOUBLE"`

	HumidityLag1d *float64 `parquet:"name=humidity_lag_1d, type=DOUBLE"`
	HumidityLag2d *float64 `parquet:"name=humidity_lag_2d, type=DOUBLE"`
	HumidityLag3d *float64 `parquet:"name=humidity_lag_3d, type=DOUBLE"`

	PressureLag1d *float64 `parquet:"name=pressure_lag_1d, type=DOUBLE"`
	PressureLag2d *float64 `parquet:"name=pressure_lag_2d, type=DOUBLE"`
	PressureLag3d *float64 `parquet:"name=pressure_lag_3d, type=DOUBLE"`

	WindSpeedLag1d *float64 `parquet:"name=wind_speed_lag_1d, type=DOUBLE"`
	WindSpeedLag2d *float64 `parquet:"name=wind_speed_lag_2d, type=DOUBLE"`
	WindSpeedLag3d *float64 `parquet:"name=wind_speed_lag_3d, type=DOUBLE"`

	PrecipLag1d *float64 `parquet:"name=precip_lag_1d, type=DOUBLE"`
	PrecipLag2d *float64 `parquet:"name=precip_lag_2d, type=DOUBLE"`
	PrecipLag3d *float64 `parquet:"name=precip_lag_3d, type=DOUBLE"`
	PrecipLag7d *float64 `parquet:"name=precip_lag_7d, type=DOUBLE"`

	TempRolling7dPrev  *float64 `parquet:"name=temp_rolling_7d_prev, type=DOUBLE"`
	TempRolling7dStd   *float64 `parquet:"name=temp_rolling_7d_std, type=DOUBLE"`
	TempRolling7dMin   *float64 `parquet:"name=temp_rolling_7d_min, type=DOUBLE"`
	TempRolling7dMax   *float64 `parquet:"name=temp_rolling_7d_max, type=DOUBLE"`
	TempRolling14dPrev *float64 `parquet:"name=temp_rolling_14d_prev, type=DOUBLE"`
	TempRolling14dStd  *float64 `parquet:"name=temp_rolling_14d_std, type=DOUBLE"`
	TempRolling30dPrev *float64 `parquet:"name=temp_rolling_30d_prev, type=DOUBLE"`
	TempRolling30dStd  *float64 `parquet:"name=temp_rolling_30d_std, type=DOUBLE"`

	HumidityRolling7dPrev  *float64 `parquet:"name=humidity_rolling_7d_prev, type=DOUBLE"`
	HumidityRolling14dPrev *float64 `parquet:"name=humidity_rolling_14d_prev, type=DOUBLE"`
	PressureRolling7dPrev  *float64 `parquet:"name=pressure_rolling_7d_prev, type=DOUBLE"`
	PressureRolling7dStd   *float64 `parquet:"name=pressure_rolling_7d_std, type=DOUBLE"`
	WindSpeedRolling7dPrev *float64 `parquet:"name=wind_speed_rolling_7d_prev, type=DOUBLE"`
	PrecipRolling7dSum     *float64 `parquet:"name=precip_rolling_7d_sum, type=DOUBLE"`

	TempChange1d     *float64 `parquet:"name=temp_change_1d, type=DOUBLE"`
	TempChange7d     *float64 `parquet:"name=temp_change_7d, type=DOUBLE"`
	TempTrend7d      *float64 `parquet:"name=temp_trend_7d, type=DOUBLE"`
	TempVs7dAvg      *float64 `parquet:"name=temp_vs_7d_avg, type=DOUBLE"`
	TempVs30dAvg     *float64 `parquet:"name=temp_vs_30d_avg, type=DOUBLE"`
	HumidityChange1d *float64 `parquet:"name=humidity_change_1d, type=DOUBLE"`
	PressureChange1d *float64 `parquet:"name=pressure_change_1d, type=DOUBLE"`
	PressureTrend3d  *float64 `parquet:"name=pressure_trend_3d, type=DOUBLE"`

	AvgTemperature *float64 `parquet:"name=avg_temperature, type=DOUBLE"`
}

func featureRows(feats []domain.FeatureRow) []featureRowOut {
	out := make([]featureRowOut, 0, len(feats))
	for _, f := range feats {
		out = append(out, featureRowOut{
			LocationName:  f.LocationName,
			Date:          millis(f.Date),
			Month:         int32(f.Month),
			DayOfWeek:     int32(f.DayOfWeek),
			IsRainySeason: f.IsRainySeason,

			TempLag1d:  f.TempLag1d,
			TempLag2d:  f.TempLag2d,
			TempLag3d:  f.TempLag3d,
			TempLag7d:  f.TempLag7d,
			TempLag14d: f.TempLag14d,

			HumidityLag1d: f.HumidityLag1d,
			HumidityLag2d: f.HumidityLag2d,
			HumidityLag3d: f.HumidityLag3d,

			PressureLag1d: f.PressureLag1d,
			PressureLag2d: f.PressureLag2d,
			PressureLag3d: f.PressureLag3d,

			WindSpeedLag1d: f.WindSpeedLag1d,
			WindSpeedLag2d: f.WindSpeedLag2d,
			WindSpeedLag3d: f.WindSpeedLag3d,

			PrecipLag1d: f.PrecipLag1d,
			PrecipLag2d: f.PrecipLag2d,
			PrecipLag3d: f.PrecipLag3d,
			PrecipLag7d: f.PrecipLag7d,

			TempRolling7dPrev:  f.TempRolling7dPrev,
			TempRolling7dStd:   f.TempRolling7dStd,
			TempRolling7dMin:   f.TempRolling7dMin,
			TempRolling7dMax:   f.TempRolling7dMax,
			TempRolling14dPrev: f.TempRolling14dPrev,
			TempRolling14dStd:  f.TempRolling14dStd,
			TempRolling30dPrev: f.TempRolling30dPrev,
			TempRolling30dStd:  f.TempRolling30dStd,

			HumidityRolling7dPrev:  f.HumidityRolling7dPrev,
			HumidityRolling14dPrev: f.HumidityRolling14dPrev,
			PressureRolling7dPrev:  f.PressureRolling7dPrev,
			PressureRolling7dStd:   f.PressureRolling7dStd,
			WindSpeedRolling7dPrev: f.WindSpeedRolling7dPrev,
			PrecipRolling7dSum:     f.PrecipRolling7dSum,

			TempChange1d:     f.TempChange1d,
			TempChange7d:     f.TempChange7d,
			TempTrend7d:      f.TempTrend7d,
			TempVs7dAvg:      f.TempVs7dAvg,
			TempVs30dAvg:     f.TempVs30dAvg,
			HumidityChange1d: f.HumidityChange1d,
			PressureChange1d: f.PressureChange1d,
			PressureTrend3d:  f.PressureTrend3d,

			AvgTemperature: f.AvgTemperature,
		})
	}
	return out
}

type locationRow struct {
	LocationName string  `parquet:"name=location_name, type=BYTE_ARRAY, convertedtype=UTF8"`
	Latitude     float64 `parquet:"name=latitude, type=DOUBLE"`
	Longitude    float64 `parquet:"name=longitude, type=DOUBLE"`
	Region       string  `parquet:"name=region, type=BYTE_ARRAY, convertedtype=UTF8"`
	Timezone     string  `parquet:"name=timezone, type=BYTE_ARRAY, convertedtype=UTF8"`
}

func locationRows(locations []domain.LocationDim) []locationRow {
	out := make([]locationRow, 0, len(locations))
	for _, l := range locations {
		out = append(out, locationRow{
			LocationName: l.LocationName,
			Latitude:     l.Latitude,
			Longitude:    l.Longitude,
			Region:       l.Region,
			Timezone:     l.Timezone,
		})
	}
	return out
}

type dateRow struct {
	DateKey    int32  `parquet:"name=date_key, type=INT32"`
	Date       int64  `parquet:"name=date, type=INT64, convertedtype=TIMESTAMP_MILLIS"`
	Year       int32  `parquet:"name=year, type=INT32"`
	Month      int32  `parquet:"name=month, type=INT32"`
	MonthName  string `parquet:"name=month_name, type=BYTE_ARRAY, convertedtype=UTF8"`
	Day        int32  `parquet:"name=day, type=INT32"`
	DayOfWeek  int32  `parquet:"name=day_of_week, type=INT32"`
	DayName    string `parquet:"name=day_name, type=BYTE_ARRAY, convertedtype=UTF8"`
	WeekOfYear int32  `parquet:"name=week_of_year, type=INT32"`
	Quarter    int32  `parquet:"name=quarter, type=INT32"`
	IsWeekend  bool   `parquet:"name=is_weekend, type=BOOLEAN"`
	Season     string `parquet:"name=season, type=BYTE_ARRAY, convertedtype=UTF8"`
}

func dateRows(dates []domain.DateDim) []dateRow {
	out := make([]dateRow, 0, len(dates))
	for _, d := range dates {
		out = append(out, dateRow{
			DateKey:    int32(d.DateKey),
			Date:       millis(d.Date),
			Year:       int32(d.Year),
			Month:      int32(d.Month),
			MonthName:  d.MonthName,
			Day:        int32(d.Day),
			DayOfWeek:  int32(d.DayOfWeek),
			DayName:    d.DayName,
			WeekOfYear: int32(d.WeekOfYear),
			Quarter:    int32(d.Quarter),
			IsWeekend:  d.IsWeekend,
			Season:     d.Season,
		})
	}
	return out
}

func millis(t time.Time) int64 { return t.UnixMilli() }
