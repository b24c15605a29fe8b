package migrations

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMissingColumns(t *testing.T) {
	complete := map[string][]string{
		AthleteEventsTable: RequiredColumns[AthleteEventsTable],
		RegionsTable:       {"row_id", "NOC", "Region", "Notes"},
	}
	assert.Empty(t, MissingColumns(complete))

	partial := map[string][]string{
		AthleteEventsTable: {"id", "name", "sex", "age", "height", "weight", "team", "noc",
			"games", "year", "season", "city", "sport", "event"},
	}
	assert.Equal(t, []string{
		"athlete_events.medal",
		"athlete_events.row_id",
		"noc_regions.noc",
		"noc_regions.notes",
		"noc_regions.region",
		"noc_regions.row_id",
	}, MissingColumns(partial))
}

func TestSchemaColumnTypes(t *testing.T) {
	columnType := func(ddl, column string) string {
		m := regexp.MustCompile(`(?m)^\s*` + column + `\s+([A-Z]+)`).FindStringSubmatch(ddl)
		if m == nil {
			return ""
		}
		return m[1]
	}

	assert.Equal(t, "TEXT", columnType(createAthleteEvents, "noc"), "join keys must not be blank-padded")
	assert.Equal(t, columnType(createRegions, "noc"), columnType(createAthleteEvents, "noc"))
	assert.Equal(t, "TEXT", columnType(createAthleteEvents, "sex"))

	for _, ddl := range []string{createAthleteEvents, createRegions} {
		assert.Equal(t, "BIGSERIAL", columnType(ddl, RowOrderColumn))
	}
}
