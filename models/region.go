package models

// Region represents a row of the noc_regions lookup table
type Region struct {
	NOC   string `db:"noc" json:"noc"`
	Name  string `db:"region" json:"region"`
	Notes string `db:"notes" json:"notes,omitempty"`
}
