package analysis

import (
	"github.com/nonsonwune/olympics_eda/models"
)

// PhysicalTraitsResult holds the per-year, per-sex height and weight
// distributions of one sport.
type PhysicalTraitsResult struct {
	Sport   string
	Entries int
	Height  []GroupValues
	Weight  []GroupValues
}

// PhysicalTraits groups the heights and weights of a sport's athletes by
// year and sex.
func PhysicalTraits(records []models.EnrichedRecord, sport string) (PhysicalTraitsResult, error) {
	subset := filter(records, func(r models.EnrichedRecord) bool { return r.Sport == sport })
	if len(subset) == 0 {
		return PhysicalTraitsResult{}, emptyResult("no entries for sport %s", sport)
	}

	bySex := func(r models.EnrichedRecord) string { return r.Sex }
	return PhysicalTraitsResult{
		Sport:   sport,
		Entries: len(subset),
		Height:  valuesByYear(subset, FeatureHeight, bySex),
		Weight:  valuesByYear(subset, FeatureWeight, bySex),
	}, nil
}

// Feature returns the groups for f.
func (r PhysicalTraitsResult) Feature(f Feature) []GroupValues {
	if f == FeatureWeight {
		return r.Weight
	}
	return r.Height
}
