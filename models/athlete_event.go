package models

import "database/sql"

// Medal values as they appear in the athlete_events table.
const (
	MedalGold   = "Gold"
	MedalSilver = "Silver"
	MedalBronze = "Bronze"
)

// Sex and season codes.
const (
	SexMale      = "M"
	SexFemale    = "F"
	SeasonSummer = "Summer"
	SeasonWinter = "Winter"
)

// AthleteEvent represents one row of the athlete_events table: one athlete
// entered in one event at one Games.
type AthleteEvent struct {
	ID     int             `db:"id" json:"id"`
	Name   string          `db:"name" json:"name"`
	Sex    string          `db:"sex" json:"sex"`
	Age    sql.NullFloat64 `db:"age" json:"age,omitempty"`
	Height sql.NullFloat64 `db:"height" json:"height,omitempty"`
	Weight sql.NullFloat64 `db:"weight" json:"weight,omitempty"`
	Team   string          `db:"team" json:"team"`
	NOC    string          `db:"noc" json:"noc"`
	Games  string          `db:"games" json:"games"`
	Year   int             `db:"year" json:"year"`
	Season string          `db:"season" json:"season"`
	City   string          `db:"city" json:"city"`
	Sport  string          `db:"sport" json:"sport"`
	Event  string          `db:"event" json:"event"`
	Medal  sql.NullString  `db:"medal" json:"medal,omitempty"`
}

// HasMedal reports whether the entry won Gold, Silver or Bronze.
func (a AthleteEvent) HasMedal() bool {
	if !a.Medal.Valid {
		return false
	}
	switch a.Medal.String {
	case MedalGold, MedalSilver, MedalBronze:
		return true
	}
	return false
}

// IsGold reports whether the entry won Gold.
func (a AthleteEvent) IsGold() bool {
	return a.Medal.Valid && a.Medal.String == MedalGold
}
