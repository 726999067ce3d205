package domain

import "time"

// DailyAggregate is one row per (location, date) in the daily fact table.
// Statistical fields are nil when no valid hourly value survived the quality
// filter for that day (stddev additionally requires two valid values).
type DailyAggregate struct {
	LocationName     string    `gorm:"column:location_name;primaryKey" json:"location_name"`
	Date             time.Time `gorm:"column:date;primaryKey" json:"date"`
	ObservationCount int       `gorm:"column:observation_count" json:"observation_count"`

	AvgTemperature    *float64 `gorm:"column:avg_temperature" json:"avg_temperature"`
	MinTemperature    *float64 `gorm:"column:min_temperature" json:"min_temperature"`
	MaxTemperature    *float64 `gorm:"column:max_temperature" json:"max_temperature"`
	StddevTemperature *float64 `gorm:"column:stddev_temperature" json:"stddev_temperature"`

	AvgHumidity    *float64 `gorm:"column:avg_humidity" json:"avg_humidity"`
	MinHumidity    *float64 `gorm:"column:min_humidity" json:"min_humidity"`
	MaxHumidity    *float64 `gorm:"column:max_humidity" json:"max_humidity"`
	StddevHumidity *float64 `gorm:"column:stddev_humidity" json:"stddev_humidity"`

	AvgPressure    *float64 `gorm:"column:avg_pressure" json:"avg_pressure"`
	MinPressure    *float64 `gorm:"column:min_pressure" json:"min_pressure"`
	MaxPressure    *float64 `gorm:"column:max_pressure" json:"max_pressure"`
	StddevPressure *float64 `gorm:"column:stddev_pressure" json:"stddev_pressure"`

	AvgWindSpeed    *float64 `gorm:"column:avg_wind_speed" json:"avg_wind_speed"`
	MaxWindSpeed    *float64 `gorm:"column:max_wind_speed" json:"max_wind_speed"`
	StddevWindSpeed *float64 `gorm:"column:stddev_wind_speed" json:"stddev_wind_speed"`

	// Precipitation is zero-filled upstream, so these are always present.
	TotalPrecipitation float64 `gorm:"column:total_precipitation" json:"total_precipitation"`
	AvgPrecipitation   float64 `gorm:"column:avg_precipitation" json:"avg_precipitation"`
	MaxPrecipitation   float64 `gorm:"column:max_precipitation" json:"max_precipitation"`

	HoursHot     int `gorm:"column:hours_hot" json:"hours_hot"`
	HoursCold    int `gorm:"column:hours_cold" json:"hours_cold"`
	HoursHumid   int `gorm:"column:hours_humid" json:"hours_humid"`
	HoursWindy   int `gorm:"column:hours_windy" json:"hours_windy"`
	HoursCloudy  int `gorm:"column:hours_cloudy" json:"hours_cloudy"`
	HoursRaining int `gorm:"column:hours_raining" json:"hours_raining"`

	AvgQualityScore float64 `gorm:"column:avg_quality_score" json:"avg_quality_score"`
}

// TableName specifies the daily fact table name.
func (DailyAggregate) TableName() string { return "fct_weather_daily" }

// FeatureRow is one row per (location, date) in the ML feature table. Every
// lag and rolling field is derived strictly from rows dated before Date; the
// current day's aggregate appears only as the AvgTemperature target.
type FeatureRow struct {
	LocationName  string    `gorm:"column:location_name;primaryKey" json:"location_name"`
	Date          time.Time `gorm:"column:date;primaryKey" json:"date"`
	Month         int       `gorm:"column:month" json:"month"`
	DayOfWeek     int       `gorm:"column:day_of_week" json:"day_of_week"`
	IsRainySeason bool      `gorm:"column:is_rainy_season" json:"is_rainy_season"`

	TempLag1d  *float64 `gorm:"column:temp_lag_1d" json:"temp_lag_1d"`
	TempLag2d  *float64 `gorm:"column:temp_lag_2d" json:"temp_lag_2d"`
	TempLag3d  *float64 `gorm:"column:temp_lag_3d" json:"temp_lag_3d"`
	TempLag7d  *float64 `gorm:"column:temp_lag_7d" json:"temp_lag_7d"`
	TempLag14d *float64 `gorm:"column:temp_lag_14d" json:"temp_lag_14d"`

	HumidityLag1d *float64 `gorm:"column:humidity_lag_1d" json:"humidity_lag_1d"`
	HumidityLag2d *float64 `gorm:"column:humidity_lag_2d" json:"humidity_lag_2d"`
	HumidityLag3d *float64 `gorm:"column:humidity_lag_3d" json:"humidity_lag_3d"`

	PressureLag1d *float64 `gorm:"column:pressure_lag_1d" json:"pressure_lag_1d"`
	PressureLag2d *float64 `gorm:"column:pressure_lag_2d" json:"pressure_lag_2d"`
	PressureLag3d *float64 `gorm:"column:pressure_lag_3d" json:"pressure_lag_3d"`

	WindSpeedLag1d *float64 `gorm:"column:wind_speed_lag_1d" json:"wind_speed_lag_1d"`
	WindSpeedLag2d *float64 `gorm:"column:wind_speed_lag_2d" json:"wind_speed_lag_2d"`
	WindSpeedLag3d *float64 `gorm:"column:wind_speed_lag_3d" json:"wind_speed_lag_3d"`

	PrecipLag1d *float64 `gorm:"column:precip_lag_1d" json:"precip_lag_1d"`
	PrecipLag2d *float64 `gorm:"column:precip_lag_2d" json:"precip_lag_2d"`
	PrecipLag3d *float64 `gorm:"column:precip_lag_3d" json:"precip_lag_3d"`
	PrecipLag7d *float64 `gorm:"column:precip_lag_7d" json:"precip_lag_7d"`

	TempRolling7dPrev  *float64 `gorm:"column:temp_rolling_7d_prev" json:"temp_rolling_7d_prev"`
	TempRolling7dStd   *float64 `gorm:"column:temp_rolling_7d_std" json:"temp_rolling_7d_std"`
	TempRolling7dMin   *float64 `gorm:"column:temp_rolling_7d_min" json:"temp_rolling_7d_min"`
	TempRolling7dMax   *float64 `gorm:"column:temp_rolling_7d_max" json:"temp_rolling_7d_max"`
	TempRolling14dPrev *float64 `gorm:"column:temp_rolling_14d_prev" json:"temp_rolling_14d_prev"`
	TempRolling14dStd  *float64 `gorm:"column:temp_rolling_14d_std" json:"temp_rolling_14d_std"`
	TempRolling30dPrev *float64 `gorm:"column:temp_rolling_30d_prev" json:"temp_rolling_30d_prev"`
	TempRolling30dStd  *float64 `gorm:"column:temp_rolling_30d_std" json:"temp_rolling_30d_std"`

	HumidityRolling7dPrev  *float64 `gorm:"column:humidity_rolling_7d_prev" json:"humidity_rolling_7d_prev"`
	HumidityRolling14dPrev *float64 `gorm:"column:humidity_rolling_14d_prev" json:"humidity_rolling_14d_prev"`
	PressureRolling7dPrev  *float64 `gorm:"column:pressure_rolling_7d_prev" json:"pressure_rolling_7d_prev"`
	PressureRolling7dStd   *float64 `gorm:"column:pressure_rolling_7d_std" json:"pressure_rolling_7d_std"`
	WindSpeedRolling7dPrev *float64 `gorm:"column:wind_speed_rolling_7d_prev" json:"wind_speed_rolling_7d_prev"`
	PrecipRolling7dSum     *float64 `gorm:"column:precip_rolling_7d_sum" json:"precip_rolling_7d_sum"`

	TempChange1d     *float64 `gorm:"column:temp_change_1d" json:"temp_change_1d"`
	TempChange7d     *float64 `gorm:"column:temp_change_7d" json:"temp_change_7d"`
	TempTrend7d      *float64 `gorm:"column:temp_trend_7d" json:"temp_trend_7d"`
	TempVs7dAvg      *float64 `gorm:"column:temp_vs_7d_avg" json:"temp_vs_7d_avg"`
	TempVs30dAvg     *float64 `gorm:"column:temp_vs_30d_avg" json:"temp_vs_30d_avg"`
	HumidityChange1d *float64 `gorm:"column:humidity_change_1d" json:"humidity_change_1d"`
	PressureChange1d *float64 `gorm:"column:pressure_change_1d" json:"pressure_change_1d"`
	PressureTrend3d  *float64 `gorm:"column:pressure_trend_3d" json:"pressure_trend_3d"`

	// AvgTemperature is the prediction target: the current day's average,
	// carried through unmodified apart from presentation rounding.
	AvgTemperature *float64 `gorm:"column:avg_temperature" json:"avg_temperature"`
}

// TableName specifies the feature fact table name.
func (FeatureRow) TableName() string { return "fct_weather_features" }

// LocationDim is the descriptive location dimension.
type LocationDim struct {
	LocationName string  `gorm:"column:location_name;primaryKey" json:"location_name"`
	Latitude     float64 `gorm:"column:latitude" json:"latitude"`
	Longitude    float64 `gorm:"column:longitude" json:"longitude"`
	Region       string  `gorm:"column:region" json:"region"`
	Timezone     string  `gorm:"column:timezone" json:"timezone"`
}

// TableName specifies the location dimension table name.
func (LocationDim) TableName() string { return "dim_location" }

// DateDim is one row per calendar day in the generated date spine.
type DateDim struct {
	DateKey    int       `gorm:"column:date_key;primaryKey" json:"date_key"`
	Date       time.Time `gorm:"column:date" json:"date"`
	Year       int       `gorm:"column:year" json:"year"`
	Month      int       `gorm:"column:month" json:"month"`
	MonthName  string    `gorm:"column:month_name" json:"month_name"`
	Day        int       `gorm:"column:day" json:"day"`
	DayOfWeek  int       `gorm:"column:day_of_week" json:"day_of_week"`
	DayName    string    `gorm:"column:day_name" json:"day_name"`
	WeekOfYear int       `gorm:"column:week_of_year" json:"week_of_year"`
	Quarter    int       `gorm:"column:quarter" json:"quarter"`
	IsWeekend  bool      `gorm:"column:is_weekend" json:"is_weekend"`
	Season     string    `gorm:"column:season" json:"season"`
}

// TableName specifies the date dimension table name.
func (DateDim) TableName() string { return "dim_date" }
