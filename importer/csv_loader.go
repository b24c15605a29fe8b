package importer

import (
	"context"
	"database/sql"
	"encoding/csv"
	"errors"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"github.com/nonsonwune/olympics_eda/models"
)

// nanValues are the raw cell values treated as missing.
var nanValues = []string{"NA", "NaN", "<nil>", ""}

var athleteTextColumns = []string{
	ColName, ColSex, ColTeam, ColNOC, ColGames, ColSeason, ColCity, ColSport, ColEvent, ColMedal,
}

// FileSource reads both tables from delimited files on disk.
type FileSource struct {
	AthleteEventsPath string
	RegionsPath       string
}

// NewFileSource creates a FileSource for the given paths.
func NewFileSource(athleteEventsPath, regionsPath string) *FileSource {
	return &FileSource{
		AthleteEventsPath: athleteEventsPath,
		RegionsPath:       regionsPath,
	}
}

// AthleteEvents opens and parses the athlete-events file.
func (s *FileSource) AthleteEvents(ctx context.Context) ([]models.AthleteEvent, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := os.Open(s.AthleteEventsPath)
	if err != nil {
		return nil, missingFile(s.AthleteEventsPath, err)
	}
	defer f.Close()

	return parseAthleteEvents(s.AthleteEventsPath, f)
}

// Regions opens and parses the NOC region lookup file.
func (s *FileSource) Regions(ctx context.Context) ([]models.Region, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := os.Open(s.RegionsPath)
	if err != nil {
		return nil, missingFile(s.RegionsPath, err)
	}
	defer f.Close()

	return parseRegions(s.RegionsPath, f)
}

// LoadAthleteEvents parses athlete-event rows from r.
func LoadAthleteEvents(r io.Reader) ([]models.AthleteEvent, error) {
	return parseAthleteEvents("athlete_events", r)
}

// LoadRegions parses NOC region rows from r.
func LoadRegions(r io.Reader) ([]models.Region, error) {
	return parseRegions("noc_regions", r)
}

// readFrame parses r into a dataframe. Numeric column types are inferred
// from the cell contents; the listed text columns are pinned to strings so
// values like "F" or "1" are never reinterpreted.
func readFrame(source string, r io.Reader, required, optional, text []string) (dataframe.DataFrame, map[string]string, error) {
	reader := csv.NewReader(r)
	records, err := reader.ReadAll()
	if err != nil {
		return dataframe.DataFrame{}, nil, parseError(source, err)
	}
	if len(records) == 0 {
		return dataframe.DataFrame{}, nil, parseError(source, errors.New("no header row"))
	}

	cols, missing := resolveColumns(records[0], required, optional)
	if len(missing) > 0 {
		return dataframe.DataFrame{}, nil, schemaError(source, "missing required columns: %v", missing)
	}

	if len(records) == 1 {
		return dataframe.DataFrame{}, cols, nil
	}

	types := make(map[string]series.Type, len(text))
	for _, col := range text {
		if name, ok := cols[col]; ok {
			types[name] = series.String
		}
	}

	df := dataframe.LoadRecords(records,
		dataframe.HasHeader(true),
		dataframe.DetectTypes(true),
		dataframe.NaNValues(nanValues),
		dataframe.WithTypes(types),
	)
	if df.Err != nil {
		return df, nil, parseError(source, df.Err)
	}
	return df, cols, nil
}

func parseAthleteEvents(source string, r io.Reader) ([]models.AthleteEvent, error) {
	df, cols, err := readFrame(source, r, RequiredAthleteColumns, OptionalAthleteColumns, athleteTextColumns)
	if err != nil {
		return nil, err
	}
	if df.Nrow() == 0 {
		return []models.AthleteEvent{}, nil
	}

	frame := &columnReader{source: source, df: df, cols: cols}
	ids, err := frame.integers(ColID)
	if err != nil {
		return nil, err
	}
	years, err := frame.integers(ColYear)
	if err != nil {
		return nil, err
	}
	ages := frame.floats(ColAge)
	heights := frame.floats(ColHeight)
	weights := frame.floats(ColWeight)

	names := frame.text(ColName)
	sexes := frame.text(ColSex)
	teams := frame.text(ColTeam)
	nocs := frame.text(ColNOC)
	games := frame.text(ColGames)
	seasons := frame.text(ColSeason)
	cities := frame.text(ColCity)
	sports := frame.text(ColSport)
	events := frame.text(ColEvent)
	medals := frame.text(ColMedal)

	n := df.Nrow()
	out := make([]models.AthleteEvent, n)
	for i := 0; i < n; i++ {
		out[i] = models.AthleteEvent{
			ID:     ids[i],
			Name:   names[i].String,
			Sex:    sexes[i].String,
			Age:    ages[i],
			Height: heights[i],
			Weight: weights[i],
			Team:   teams[i].String,
			NOC:    nocs[i].String,
			Games:  games[i].String,
			Year:   years[i],
			Season: seasons[i].String,
			City:   cities[i].String,
			Sport:  sports[i].String,
			Event:  events[i].String,
			Medal:  medals[i],
		}
	}
	return out, nil
}

func parseRegions(source string, r io.Reader) ([]models.Region, error) {
	df, cols, err := readFrame(source, r, RequiredRegionColumns, []string{ColNotes}, []string{ColNOC, ColRegion, ColNotes})
	if err != nil {
		return nil, err
	}
	if df.Nrow() == 0 {
		return []models.Region{}, nil
	}

	frame := &columnReader{source: source, df: df, cols: cols}
	nocs := frame.text(ColNOC)
	regions := frame.text(ColRegion)
	notes := frame.text(ColNotes)

	out := make([]models.Region, df.Nrow())
	for i := range out {
		out[i] = models.Region{
			NOC:   nocs[i].String,
			Name:  regions[i].String,
			Notes: notes[i].String,
		}
	}
	return out, nil
}

// columnReader extracts typed columns from a parsed frame.
type columnReader struct {
	source string
	df     dataframe.DataFrame
	cols   map[string]string
}

// text returns the column as nullable strings. Absent optional columns
// come back as all-missing.
func (c *columnReader) text(col string) []sql.NullString {
	out := make([]sql.NullString, c.df.Nrow())
	name, ok := c.cols[col]
	if !ok {
		return out
	}
	s := c.df.Col(name)
	for i := range out {
		e := s.Elem(i)
		if e.IsNA() {
			continue
		}
		out[i] = sql.NullString{String: strings.TrimSpace(e.String()), Valid: true}
	}
	return out
}

// floats returns a numeric column. Missing cells and cells that do not
// parse as a number are marked invalid.
func (c *columnReader) floats(col string) []sql.NullFloat64 {
	s := c.df.Col(c.cols[col])
	out := make([]sql.NullFloat64, s.Len())
	for i := range out {
		if v, ok := number(s, i); ok {
			out[i] = sql.NullFloat64{Float64: v, Valid: true}
		}
	}
	return out
}

// integers returns a numeric column that may not contain missing or
// malformed cells.
func (c *columnReader) integers(col string) ([]int, error) {
	s := c.df.Col(c.cols[col])
	out := make([]int, s.Len())
	for i := range out {
		v, ok := number(s, i)
		switch {
		case ok && v == math.Trunc(v):
			out[i] = int(v)
		case ok:
			return nil, schemaError(c.source, "column %s: row %d is not an integer (%v)", col, i+1, v)
		case s.Elem(i).IsNA():
			return nil, schemaError(c.source, "column %s: row %d is missing", col, i+1)
		default:
			return nil, schemaError(c.source, "column %s: row %d: expected a number, found %q", col, i+1, s.Elem(i).String())
		}
	}
	return out, nil
}

// number reads cell i of s. A column holding any non-numeric cell is
// inferred as text, so its cells are parsed one by one.
func number(s series.Series, i int) (float64, bool) {
	e := s.Elem(i)
	if e.IsNA() {
		return 0, false
	}
	var v float64
	switch s.Type() {
	case series.Float, series.Int:
		v = e.Float()
	default:
		f, err := strconv.ParseFloat(strings.TrimSpace(e.String()), 64)
		if err != nil {
			return 0, false
		}
		v = f
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}
