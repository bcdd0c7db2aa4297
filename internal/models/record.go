package models

import "strings"

type DisasterType string

const (
	DisasterTypeEarthquake DisasterType = "Earthquake"
	DisasterTypeFlood      DisasterType = "Flood"
	DisasterTypeStorm      DisasterType = "Storm"
	DisasterTypeDrought    DisasterType = "Drought"
)

// AllowedTypes returns the disaster categories the dashboard supports.
// Records of any other category are excluded at load time.
func AllowedTypes() []DisasterType {
	return []DisasterType{
		DisasterTypeDrought,
		DisasterTypeEarthquake,
		DisasterTypeFlood,
		DisasterTypeStorm,
	}
}

// Valid reports whether t is exactly one of the allow-listed categories.
// The source data uses these canonical names; matching at load time is
// case-sensitive so anything else is excluded.
func (t DisasterType) Valid() bool {
	switch t {
	case DisasterTypeEarthquake, DisasterTypeFlood, DisasterTypeStorm, DisasterTypeDrought:
		return true
	}
	return false
}

// ParseDisasterType matches s against the allow-list, case-insensitively,
// and returns the canonical value. Used for user-supplied selector values;
// load-time filtering goes through Valid instead.
func ParseDisasterType(s string) (DisasterType, bool) {
	for _, t := range AllowedTypes() {
		if strings.EqualFold(s, string(t)) {
			return t, true
		}
	}
	return "", false
}

// Record is one row of the loaded disaster table. Every retained record has
// valid coordinates, an allow-listed type, and a non-empty location.
type Record struct {
	Latitude    float64      `json:"latitude"`
	Longitude   float64      `json:"longitude"`
	TotalDeaths int64        `json:"total_deaths"`
	TotalDamage float64      `json:"total_damage"` // thousands of US$, inflation-adjusted
	StartYear   int          `json:"start_year"`
	Type        DisasterType `json:"disaster_type"`
	Location    string       `json:"location"`
}

type Coordinates struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

func (r Record) Coordinates() Coordinates {
	return Coordinates{Lat: r.Latitude, Lon: r.Longitude}
}
