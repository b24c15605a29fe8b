package analysis

import (
	"database/sql"

	"github.com/nonsonwune/olympics_eda/models"
)

// Feature names a numeric attribute of an athlete entry.
type Feature string

// Numeric features.
const (
	FeatureAge    Feature = "Age"
	FeatureHeight Feature = "Height"
	FeatureWeight Feature = "Weight"
)

// Value returns the feature for r.
func (f Feature) Value(r models.EnrichedRecord) sql.NullFloat64 {
	switch f {
	case FeatureAge:
		return r.Age
	case FeatureHeight:
		return r.Height
	case FeatureWeight:
		return r.Weight
	}
	return sql.NullFloat64{}
}

// values collects the non-missing values of f.
func (f Feature) values(records []models.EnrichedRecord) []float64 {
	out := make([]float64, 0, len(records))
	for _, r := range records {
		if v := f.Value(r); v.Valid {
			out = append(out, v.Float64)
		}
	}
	return out
}
