package analysis

import (
	"database/sql"
	"sort"

	"github.com/nonsonwune/olympics_eda/models"
)

// ValueCount is the number of rows sharing a numeric value.
type ValueCount struct {
	Value float64
	Count int
}

// GoldMedalAgeResult summarises the ages of gold medalists.
type GoldMedalAgeResult struct {
	Medalists int
	MeanAge   float64
	MedianAge float64
	StdDevAge sql.NullFloat64
	MinAge    float64
	MaxAge    float64

	// AgeCounts is the age distribution, ascending by age.
	AgeCounts []ValueCount

	OlderThan   float64
	Older       int
	OlderSports []Count
}

// GoldMedalAge computes age statistics over gold medalists with a known
// age, and the sports of those older than olderThan.
func GoldMedalAge(records []models.EnrichedRecord, olderThan float64) (GoldMedalAgeResult, error) {
	gold := filter(records, func(r models.EnrichedRecord) bool {
		return r.IsGold() && r.Age.Valid && finite(r.Age.Float64).Valid
	})
	if len(gold) == 0 {
		return GoldMedalAgeResult{}, emptyResult("no gold medalists with a known age")
	}

	ages := FeatureAge.values(gold)
	res := GoldMedalAgeResult{
		Medalists: len(gold),
		StdDevAge: StdDev(ages),
		AgeCounts: countValues(ages),
		OlderThan: olderThan,
	}

	var err error
	if res.MeanAge, err = Mean(ages); err != nil {
		return GoldMedalAgeResult{}, err
	}
	if res.MedianAge, err = Median(ages); err != nil {
		return GoldMedalAgeResult{}, err
	}
	if res.MinAge, res.MaxAge, err = Bounds(ages); err != nil {
		return GoldMedalAgeResult{}, err
	}

	older := filter(gold, func(r models.EnrichedRecord) bool { return r.Age.Float64 > olderThan })
	res.Older = len(older)
	res.OlderSports = RankCounts(countBy(older, func(r models.EnrichedRecord) string { return r.Sport }), 0)
	return res, nil
}

func countValues(xs []float64) []ValueCount {
	counts := make(map[float64]int)
	for _, x := range xs {
		counts[x]++
	}
	out := make([]ValueCount, 0, len(counts))
	for v, c := range counts {
		out = append(out, ValueCount{Value: v, Count: c})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Value < out[j].Value })
	return out
}
