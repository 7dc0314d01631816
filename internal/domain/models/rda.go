package models

// Sex codes follow the AKG reference table. SexAny marks the bands that are
// not split by sex.
const (
	SexMale   = "L"
	SexFemale = "P"
	SexAny    = "NA"
)

// RDARow holds the recommended daily allowance targets for one demographic
// group (age band x sex). Static reference data, immutable within a session.
type RDARow struct {
	Group   string         `json:"group"`
	AgeBand string         `json:"age_band"`
	Sex     string         `json:"sex"`
	Targets NutrientVector `json:"targets"`
}
