package importer

import "strings"

// Column names of the athlete_events table.
const (
	ColID     = "ID"
	ColName   = "Name"
	ColSex    = "Sex"
	ColAge    = "Age"
	ColHeight = "Height"
	ColWeight = "Weight"
	ColTeam   = "Team"
	ColNOC    = "NOC"
	ColGames  = "Games"
	ColYear   = "Year"
	ColSeason = "Season"
	ColCity   = "City"
	ColSport  = "Sport"
	ColEvent  = "Event"
	ColMedal  = "Medal"
)

// Column names of the noc_regions table.
const (
	ColRegion = "region"
	ColNotes  = "notes"
)

// RequiredAthleteColumns must be present in the athlete-events source.
var RequiredAthleteColumns = []string{
	ColID, ColSex, ColAge, ColHeight, ColWeight, ColNOC,
	ColYear, ColSeason, ColSport, ColEvent, ColMedal,
}

// OptionalAthleteColumns are read when present.
var OptionalAthleteColumns = []string{ColName, ColTeam, ColGames, ColCity}

// RequiredRegionColumns must be present in the region lookup source.
var RequiredRegionColumns = []string{ColNOC, ColRegion}

// getColumnIndex returns the index of a column in headers, or -1.
// Matching ignores case, spaces and underscores.
func getColumnIndex(headers []string, columnName string) int {
	want := normalizeColumn(columnName)
	for i, header := range headers {
		if normalizeColumn(header) == want {
			return i
		}
	}
	return -1
}

func normalizeColumn(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, " ", "")
	return strings.ReplaceAll(s, "_", "")
}

// resolveColumns maps each wanted column to the header actually used in
// the source. Missing required columns are reported together.
func resolveColumns(headers, required, optional []string) (map[string]string, []string) {
	resolved := make(map[string]string, len(required)+len(optional))
	var missing []string
	for _, col := range required {
		if i := getColumnIndex(headers, col); i >= 0 {
			resolved[col] = headers[i]
		} else {
			missing = append(missing, col)
		}
	}
	for _, col := range optional {
		if i := getColumnIndex(headers, col); i >= 0 {
			resolved[col] = headers[i]
		}
	}
	return resolved, missing
}
