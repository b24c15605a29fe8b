package analysis

import (
	"github.com/nonsonwune/olympics_eda/models"
)

// MedalsByCountryResult ranks regions by medals won.
type MedalsByCountryResult struct {
	Medals    int
	Top       []Count
	TopMale   []Count
	TopFemale []Count
}

// MedalsByCountry ranks regions by Gold, Silver and Bronze entries, overall
// and per sex. Entries whose NOC has no region are left out of the ranking.
func MedalsByCountry(records []models.EnrichedRecord, n int) (MedalsByCountryResult, error) {
	medals := filter(records, func(r models.EnrichedRecord) bool { return r.HasMedal() })
	if len(medals) == 0 {
		return MedalsByCountryResult{}, emptyResult("no medal entries")
	}

	regionOf := func(r models.EnrichedRecord) string { return r.RegionName() }
	bySex := func(sex string) []Count {
		subset := filter(medals, func(r models.EnrichedRecord) bool { return r.Sex == sex })
		return RankCounts(countBy(subset, regionOf), n)
	}

	return MedalsByCountryResult{
		Medals:    len(medals),
		Top:       RankCounts(countBy(medals, regionOf), n),
		TopMale:   bySex(models.SexMale),
		TopFemale: bySex(models.SexFemale),
	}, nil
}
