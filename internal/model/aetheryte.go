package model

import "strings"

// Aetheryte is one teleport point record in the dataset.
// X and Y of (0, 0) mean the coordinates are not yet known; any other
// pair is authoritative and must never be overwritten.
type Aetheryte struct {
	Name    string  `json:"Name"`
	MapArea string  `json:"MapArea"`
	X       float64 `json:"X"`
	Y       float64 `json:"Y"`
}

// HasCoords reports whether the record already carries authoritative
// coordinates.
func (a Aetheryte) HasCoords() bool {
	return a.X != 0 || a.Y != 0
}

// Candidate is a teleport point parsed from wiki text, not yet matched
// to a dataset record. Candidates live only for the duration of one
// area's processing.
type Candidate struct {
	Name string
	X    float64
	Y    float64
}

// AreaKey normalizes an area display name into the key used for wiki
// page lookup, cache entries, and the per-run processed set.
func AreaKey(displayName string) string {
	return strings.ReplaceAll(displayName, " ", "_")
}

// AreaDisplay is the inverse of AreaKey.
func AreaDisplay(key string) string {
	return strings.ReplaceAll(key, "_", " ")
}
