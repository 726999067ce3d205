package domain

// Timezone is the fixed timezone for all tracked locations.
const Timezone = "Asia/Ho_Chi_Minh"

// KnownLocation is one of the cities the extraction process tracks.
type KnownLocation struct {
	Name      string
	Latitude  float64
	Longitude float64
}

// KnownLocations is the canonical five-city extraction set. The referential
// data-quality check reports any of these missing from the daily fact table.
var KnownLocations = []KnownLocation{
	{Name: "Hanoi", Latitude: 21.0285, Longitude: 105.8542},
	{Name: "Ho Chi Minh City", Latitude: 10.8231, Longitude: 106.6297},
	{Name: "Da Nang", Latitude: 16.0544, Longitude: 108.2022},
	{Name: "Can Tho", Latitude: 10.0452, Longitude: 105.7469},
	{Name: "Hai Phong", Latitude: 20.8449, Longitude: 106.6881},
}

// regionByLocation maps exact location names to regions. Unmapped names
// fall back to "Other".
var regionByLocation = map[string]string{
	"Hanoi":            "North",
	"Hai Phong":        "North",
	"Da Nang":          "Central",
	"Ho Chi Minh City": "South",
	"Can Tho":          "South",
}

// RegionFor returns the region for a location name, or "Other" when unmapped.
func RegionFor(locationName string) string {
	if r, ok := regionByLocation[locationName]; ok {
		return r
	}
	return "Other"
}
