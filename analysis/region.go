package analysis

import (
	"github.com/nonsonwune/olympics_eda/models"
)

// RegionResult is a closer look at one region's athletes.
type RegionResult struct {
	Region     string
	Entries    int
	Medalists  []models.EnrichedRecord
	MedalRatio float64
	// AgeByYear holds the known ages per Games year, ascending.
	AgeByYear []GroupValues
}

// RegionDeepDive reports the medal ratio of one region and the age
// distribution of its athletes over time.
func RegionDeepDive(records []models.EnrichedRecord, region string) (RegionResult, error) {
	subset := filter(records, func(r models.EnrichedRecord) bool { return r.Region.Valid && r.Region.String == region })
	if len(subset) == 0 {
		return RegionResult{}, emptyResult("no entries for region %s", region)
	}

	medalists := filter(subset, func(r models.EnrichedRecord) bool { return r.Medal.Valid })
	ratio, err := Ratio(len(medalists), len(subset))
	if err != nil {
		return RegionResult{}, err
	}

	return RegionResult{
		Region:     region,
		Entries:    len(subset),
		Medalists:  medalists,
		MedalRatio: ratio,
		AgeByYear:  valuesByYear(subset, FeatureAge, nil),
	}, nil
}
