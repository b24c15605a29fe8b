package analysis

import (
	"database/sql"

	"github.com/nonsonwune/olympics_eda/models"
)

// entry builds an EnrichedRecord; options fill the rest.
func entry(opts ...func(*models.EnrichedRecord)) models.EnrichedRecord {
	r := models.EnrichedRecord{}
	r.Sex = models.SexMale
	r.Season = models.SeasonSummer
	r.Year = 2000
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

func withMedal(m string) func(*models.EnrichedRecord) {
	return func(r *models.EnrichedRecord) { r.Medal = sql.NullString{String: m, Valid: true} }
}

func withAge(a float64) func(*models.EnrichedRecord) {
	return func(r *models.EnrichedRecord) { r.Age = sql.NullFloat64{Float64: a, Valid: true} }
}

func withHeight(h float64) func(*models.EnrichedRecord) {
	return func(r *models.EnrichedRecord) { r.Height = sql.NullFloat64{Float64: h, Valid: true} }
}

func withWeight(w float64) func(*models.EnrichedRecord) {
	return func(r *models.EnrichedRecord) { r.Weight = sql.NullFloat64{Float64: w, Valid: true} }
}

func withRegion(region string) func(*models.EnrichedRecord) {
	return func(r *models.EnrichedRecord) { r.Region = sql.NullString{String: region, Valid: true} }
}

func withSex(sex string) func(*models.EnrichedRecord) {
	return func(r *models.EnrichedRecord) { r.Sex = sex }
}

func withYear(y int) func(*models.EnrichedRecord) {
	return func(r *models.EnrichedRecord) { r.Year = y }
}

func withSeason(s string) func(*models.EnrichedRecord) {
	return func(r *models.EnrichedRecord) { r.Season = s }
}

func withSport(sport, event string) func(*models.EnrichedRecord) {
	return func(r *models.EnrichedRecord) {
		r.Sport = sport
		r.Event = event
	}
}

func withNOC(noc string) func(*models.EnrichedRecord) {
	return func(r *models.EnrichedRecord) { r.NOC = noc }
}
