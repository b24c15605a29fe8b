package analysis

import (
	"database/sql"
	"sort"

	"github.com/nonsonwune/olympics_eda/models"
)

// TeamYear is the medal a team won in one year.
type TeamYear struct {
	Year  int
	Event string
	Medal string
}

// DisciplineResult describes where one country wins its medals.
type DisciplineResult struct {
	NOC       string
	Medals    int
	TopEvent  Count
	TopEvents []Count

	Sport string
	Sex   string
	// TeamYears holds one medal entry per year for Sport/Sex, ascending.
	TeamYears []TeamYear
	Golds     int
	// GoldRatio is invalid when TeamYears is empty.
	GoldRatio sql.NullFloat64
}

// DisciplineDominance finds the event in which noc won the most medals and
// the share of gold among its sport/sex medal years. Repeated entries for
// the same year (one per team member) count once, keeping the first.
func DisciplineDominance(records []models.EnrichedRecord, noc, sport, sex string, n int) (DisciplineResult, error) {
	medals := filter(records, func(r models.EnrichedRecord) bool {
		return r.HasMedal() && r.NOC == noc
	})
	if len(medals) == 0 {
		return DisciplineResult{}, emptyResult("no medal entries for %s", noc)
	}

	events := RankCounts(countBy(medals, func(r models.EnrichedRecord) string { return r.Event }), 0)
	if len(events) == 0 {
		return DisciplineResult{}, emptyResult("no named events for %s", noc)
	}
	res := DisciplineResult{
		NOC:      noc,
		Medals:   len(medals),
		TopEvent: events[0],
		Sport:    sport,
		Sex:      sex,
	}
	res.TopEvents = events
	if n > 0 && len(events) > n {
		res.TopEvents = events[:n]
	}

	seen := make(map[int]bool)
	for _, r := range medals {
		if r.Sport != sport || r.Sex != sex || seen[r.Year] {
			continue
		}
		seen[r.Year] = true
		res.TeamYears = append(res.TeamYears, TeamYear{Year: r.Year, Event: r.Event, Medal: r.Medal.String})
		if r.IsGold() {
			res.Golds++
		}
	}
	sort.SliceStable(res.TeamYears, func(i, j int) bool { return res.TeamYears[i].Year < res.TeamYears[j].Year })
	res.GoldRatio = nullable(Ratio(res.Golds, len(res.TeamYears)))
	return res, nil
}
