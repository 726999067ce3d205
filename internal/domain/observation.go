package domain

import "time"

// RawObservation is an hourly observation row as loaded into the raw store by
// the external extraction process. Measurement pointers are nil when the
// source CSV carried an empty value.
type RawObservation struct {
	RecordID      string    `gorm:"column:record_id;primaryKey" json:"record_id"`
	Datetime      time.Time `gorm:"column:datetime;index" json:"datetime"`
	LocationName  string    `gorm:"column:location_name;index" json:"location_name"`
	Latitude      float64   `gorm:"column:latitude" json:"latitude"`
	Longitude     float64   `gorm:"column:longitude" json:"longitude"`
	Temperature   *float64  `gorm:"column:temperature" json:"temperature"`
	Humidity      *float64  `gorm:"column:humidity" json:"humidity"`
	Precipitation *float64  `gorm:"column:precipitation" json:"precipitation"`
	Pressure      *float64  `gorm:"column:pressure" json:"pressure"`
	WindSpeed     *float64  `gorm:"column:wind_speed" json:"wind_speed"`
	WindDirection *float64  `gorm:"column:wind_direction" json:"wind_direction"`
	CloudCover    *float64  `gorm:"column:cloud_cover" json:"cloud_cover"`
	ExtractDate   time.Time `gorm:"column:extract_date" json:"extract_date"`
	LoadedAt      time.Time `gorm:"column:loaded_at" json:"loaded_at"`
}

// TableName specifies the raw-layer table name.
func (RawObservation) TableName() string { return "raw_weather" }

// StagingObservation is a typed, minimally filtered hourly row with derived
// calendar fields. Rows missing datetime or location never reach this layer.
type StagingObservation struct {
	RecordID        string    `gorm:"column:record_id;primaryKey" json:"record_id"`
	Datetime        time.Time `gorm:"column:datetime" json:"datetime"`
	ObservationDate time.Time `gorm:"column:observation_date;index" json:"observation_date"`
	Hour            int       `gorm:"column:hour" json:"hour"`
	DayOfWeek       int       `gorm:"column:day_of_week" json:"day_of_week"`
	WeekOfYear      int       `gorm:"column:week_of_year" json:"week_of_year"`
	Month           int       `gorm:"column:month" json:"month"`
	Quarter         int       `gorm:"column:quarter" json:"quarter"`
	Year            int       `gorm:"column:year" json:"year"`
	LocationName    string    `gorm:"column:location_name;index" json:"location_name"`
	Latitude        float64   `gorm:"column:latitude" json:"latitude"`
	Longitude       float64   `gorm:"column:longitude" json:"longitude"`

	Temperature   *float64 `gorm:"column:temperature" json:"temperature"`
	Humidity      *float64 `gorm:"column:humidity" json:"humidity"`
	Precipitation *float64 `gorm:"column:precipitation" json:"precipitation"`
	Pressure      *float64 `gorm:"column:pressure" json:"pressure"`
	WindSpeed     *float64 `gorm:"column:wind_speed" json:"wind_speed"`
	WindDirection *float64 `gorm:"column:wind_direction" json:"wind_direction"`
	CloudCover    *float64 `gorm:"column:cloud_cover" json:"cloud_cover"`

	// Missing-measurement flags for the five quality-checked measurements.
	TemperatureMissing   bool `gorm:"column:temperature_missing" json:"temperature_missing"`
	HumidityMissing      bool `gorm:"column:humidity_missing" json:"humidity_missing"`
	PrecipitationMissing bool `gorm:"column:precipitation_missing" json:"precipitation_missing"`
	PressureMissing      bool `gorm:"column:pressure_missing" json:"pressure_missing"`
	WindSpeedMissing     bool `gorm:"column:wind_speed_missing" json:"wind_speed_missing"`
}

// TableName specifies the staging-layer table name.
func (StagingObservation) TableName() string { return "stg_weather_hourly" }

// QualityObservation is a staging row after range validation, clamping,
// gap filling, and quality scoring. Measurement fields hold cleaned values;
// a nil value means out-of-range (or missing) and not recoverable from the
// surrounding window.
type QualityObservation struct {
	RecordID        string    `gorm:"column:record_id;primaryKey" json:"record_id"`
	Datetime        time.Time `gorm:"column:datetime" json:"datetime"`
	ObservationDate time.Time `gorm:"column:observation_date;index" json:"observation_date"`
	Hour            int       `gorm:"column:hour" json:"hour"`
	DayOfWeek       int       `gorm:"column:day_of_week" json:"day_of_week"`
	WeekOfYear      int       `gorm:"column:week_of_year" json:"week_of_year"`
	Month           int       `gorm:"column:month" json:"month"`
	Quarter         int       `gorm:"column:quarter" json:"quarter"`
	Year            int       `gorm:"column:year" json:"year"`
	LocationName    string    `gorm:"column:location_name;index" json:"location_name"`
	Latitude        float64   `gorm:"column:latitude" json:"latitude"`
	Longitude       float64   `gorm:"column:longitude" json:"longitude"`

	Temperature   *float64 `gorm:"column:temperature" json:"temperature"`
	Humidity      *float64 `gorm:"column:humidity" json:"humidity"`
	Precipitation *float64 `gorm:"column:precipitation" json:"precipitation"`
	Pressure      *float64 `gorm:"column:pressure" json:"pressure"`
	WindSpeed     *float64 `gorm:"column:wind_speed" json:"wind_speed"`
	WindDirection *float64 `gorm:"column:wind_direction" json:"wind_direction"`
	CloudCover    *float64 `gorm:"column:cloud_cover" json:"cloud_cover"`

	TemperatureOutlier   bool `gorm:"column:temperature_outlier" json:"temperature_outlier"`
	HumidityOutlier      bool `gorm:"column:humidity_outlier" json:"humidity_outlier"`
	PrecipitationOutlier bool `gorm:"column:precipitation_outlier" json:"precipitation_outlier"`
	PressureOutlier      bool `gorm:"column:pressure_outlier" json:"pressure_outlier"`
	WindSpeedOutlier     bool `gorm:"column:wind_speed_outlier" json:"wind_speed_outlier"`

	DataQualityScore float64 `gorm:"column:data_quality_score" json:"data_quality_score"`
}

// TableName specifies the intermediate quality table name.
func (QualityObservation) TableName() string { return "int_weather_quality" }

// OutlierCount returns the number of raised outlier flags.
func (q QualityObservation) OutlierCount() int {
	n := 0
	for _, f := range []bool{
		q.TemperatureOutlier, q.HumidityOutlier, q.PrecipitationOutlier,
		q.PressureOutlier, q.WindSpeedOutlier,
	} {
		if f {
			n++
		}
	}
	return n
}

// EnrichedObservation is a quality row with derived categorical features,
// condition flags, and composite indices.
type EnrichedObservation struct {
	QualityObservation `gorm:"embedded"`

	Season    string `gorm:"column:season" json:"season"`
	TimeOfDay string `gorm:"column:time_of_day" json:"time_of_day"`

	IsHot     bool `gorm:"column:is_hot" json:"is_hot"`
	IsCold    bool `gorm:"column:is_cold" json:"is_cold"`
	IsHumid   bool `gorm:"column:is_humid" json:"is_humid"`
	IsWindy   bool `gorm:"column:is_windy" json:"is_windy"`
	IsCloudy  bool `gorm:"column:is_cloudy" json:"is_cloudy"`
	IsRaining bool `gorm:"column:is_raining" json:"is_raining"`

	TempHumidityIndex *float64 `gorm:"column:temp_humidity_index" json:"temp_humidity_index"`
	WindChillIndex    *float64 `gorm:"column:wind_chill_index" json:"wind_chill_index"`
	PrecipIntensity   string   `gorm:"column:precip_intensity" json:"precip_intensity"`
}

// TableName specifies the intermediate enriched table name.
func (EnrichedObservation) TableName() string { return "int_weather_enriched" }
