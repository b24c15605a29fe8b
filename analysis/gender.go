package analysis

import (
	"database/sql"
	"sort"

	"github.com/nonsonwune/olympics_eda/models"
)

// YearRatio is the share of female entries in one year.
type YearRatio struct {
	Year   int
	Female int
	Total  int
	// Percent is invalid when Total is zero.
	Percent sql.NullFloat64
}

// GenderEvolutionResult tracks female participation over time.
type GenderEvolutionResult struct {
	// FemaleSummer counts female Summer entries per year.
	FemaleSummer []YearCount
	// Ratio is the female share of all entries per year, every season.
	Ratio []YearRatio
}

// ParticipationRatio returns female/total as a percentage, or an invalid
// value when total is zero.
func ParticipationRatio(female, total int) sql.NullFloat64 {
	return nullable(percent(female, total))
}

func percent(num, den int) (float64, error) {
	r, err := Ratio(num, den)
	return r * 100, err
}

// GenderEvolution counts female Summer entries per year and the yearly
// female participation ratio across all seasons.
func GenderEvolution(records []models.EnrichedRecord) (GenderEvolutionResult, error) {
	if len(records) == 0 {
		return GenderEvolutionResult{}, emptyResult("no athlete entries")
	}

	femaleSummer := filter(records, func(r models.EnrichedRecord) bool {
		return r.Sex == models.SexFemale && r.Season == models.SeasonSummer
	})

	female := make(map[int]int)
	total := make(map[int]int)
	for _, r := range records {
		if r.Sex == "" {
			continue
		}
		total[r.Year]++
		if r.Sex == models.SexFemale {
			female[r.Year]++
		}
	}

	return GenderEvolutionResult{
		FemaleSummer: countByYear(femaleSummer),
		Ratio:        participationSeries(female, total),
	}, nil
}

// participationSeries builds the yearly ratio over every year present in
// either map, ascending.
func participationSeries(female, total map[int]int) []YearRatio {
	years := make(map[int]bool, len(total))
	for y := range total {
		years[y] = true
	}
	for y := range female {
		years[y] = true
	}

	out := make([]YearRatio, 0, len(years))
	for y := range years {
		out = append(out, YearRatio{
			Year:    y,
			Female:  female[y],
			Total:   total[y],
			Percent: ParticipationRatio(female[y], total[y]),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Year < out[j].Year })
	return out
}
