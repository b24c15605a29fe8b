package importer

import (
	"database/sql"

	"github.com/nonsonwune/olympics_eda/models"
)

// Join left-joins athlete events with the region lookup on NOC.
//
// The result has exactly one record per event, in input order. Codes with
// no lookup entry get an invalid Region. When the lookup lists a code more
// than once the first entry wins, so events are never duplicated.
func Join(events []models.AthleteEvent, regions []models.Region) []models.EnrichedRecord {
	byNOC := make(map[string]models.Region, len(regions))
	for _, r := range regions {
		if _, seen := byNOC[r.NOC]; !seen {
			byNOC[r.NOC] = r
		}
	}

	out := make([]models.EnrichedRecord, len(events))
	for i, e := range events {
		out[i].AthleteEvent = e
		if r, ok := byNOC[e.NOC]; ok {
			out[i].Region = nullString(r.Name)
			out[i].Notes = nullString(r.Notes)
		}
	}
	return out
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
