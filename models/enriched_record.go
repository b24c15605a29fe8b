package models

import "database/sql"

// EnrichedRecord is an AthleteEvent joined with its NOC region.
// Region is invalid when the NOC has no entry in the lookup table.
type EnrichedRecord struct {
	AthleteEvent
	Region sql.NullString `db:"region" json:"region,omitempty"`
	Notes  sql.NullString `db:"notes" json:"notes,omitempty"`
}

// RegionName returns the region or "" when unmatched.
func (r EnrichedRecord) RegionName() string {
	if r.Region.Valid {
		return r.Region.String
	}
	return ""
}
