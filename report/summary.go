package report

import (
	"database/sql"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/nonsonwune/olympics_eda/analysis"
)

// Analysis statuses written to the summary.
const (
	StatusOK      = "ok"
	StatusFailed  = "failed"
	StatusSkipped = "skipped"
)

// Summary is the machine-readable record of one run.
type Summary struct {
	RunID       string     `yaml:"run_id"`
	GeneratedAt time.Time  `yaml:"generated_at"`
	Source      string     `yaml:"source"`
	Records     int        `yaml:"records"`
	Analyses    []*Section `yaml:"analyses"`
}

// Section is the summary of one analysis.
type Section struct {
	Name     string      `yaml:"name"`
	Status   string      `yaml:"status"`
	Duration string      `yaml:"duration,omitempty"`
	Error    string      `yaml:"error,omitempty"`
	Charts   []string    `yaml:"charts,omitempty"`
	Result   interface{} `yaml:"result,omitempty"`
}

// NewSummary starts a summary for the given analyses, all skipped until
// they report.
func NewSummary(runID, source string, records int, names []string) *Summary {
	s := &Summary{
		RunID:       runID,
		GeneratedAt: time.Now().UTC(),
		Source:      source,
		Records:     records,
	}
	for _, name := range names {
		s.Analyses = append(s.Analyses, &Section{Name: name, Status: StatusSkipped})
	}
	return s
}

func (s *Summary) section(name string) *Section {
	for _, sec := range s.Analyses {
		if sec.Name == name {
			return sec
		}
	}
	sec := &Section{Name: name, Status: StatusSkipped}
	s.Analyses = append(s.Analyses, sec)
	return sec
}

// SetResult stores the result document and charts of an analysis.
func (s *Summary) SetResult(name string, result interface{}, charts []string) {
	sec := s.section(name)
	sec.Result = result
	sec.Charts = charts
}

// SetOutcomes records how each analysis finished.
func (s *Summary) SetOutcomes(outcomes []analysis.Outcome) {
	for _, o := range outcomes {
		sec := s.section(o.Name)
		sec.Duration = o.Duration.String()
		sec.Status = StatusOK
		sec.Error = ""
		if o.Err != nil {
			sec.Status = StatusFailed
			sec.Error = o.Err.Error()
		}
	}
}

// Encode writes s as YAML.
func (s *Summary) Encode(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(s); err != nil {
		return fmt.Errorf("encode summary: %w", err)
	}
	return enc.Close()
}

// WriteSummary writes s to path.
func WriteSummary(path string, s *Summary) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create summary: %w", err)
	}
	if err := s.Encode(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// CountDoc is a ranked category.
type CountDoc struct {
	Key   string `yaml:"key"`
	Count int    `yaml:"count"`
}

func countDocs(counts []analysis.Count) []CountDoc {
	out := make([]CountDoc, len(counts))
	for i, c := range counts {
		out[i] = CountDoc{Key: c.Key, Count: c.Count}
	}
	return out
}

// optionalValue maps a missing value to a YAML null.
func optionalValue(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}

// GoldMedalAgeDoc summarises analysis.GoldMedalAgeResult.
type GoldMedalAgeDoc struct {
	Medalists   int        `yaml:"medalists"`
	MeanAge     float64    `yaml:"mean_age"`
	MedianAge   float64    `yaml:"median_age"`
	StdDevAge   *float64   `yaml:"stddev_age"`
	MinAge      float64    `yaml:"min_age"`
	MaxAge      float64    `yaml:"max_age"`
	OlderThan   float64    `yaml:"older_than"`
	Older       int        `yaml:"older"`
	OlderSports []CountDoc `yaml:"older_sports"`
}

// NewGoldMedalAgeDoc converts res.
func NewGoldMedalAgeDoc(res analysis.GoldMedalAgeResult) GoldMedalAgeDoc {
	return GoldMedalAgeDoc{
		Medalists:   res.Medalists,
		MeanAge:     res.MeanAge,
		MedianAge:   res.MedianAge,
		StdDevAge:   optionalValue(res.StdDevAge),
		MinAge:      res.MinAge,
		MaxAge:      res.MaxAge,
		OlderThan:   res.OlderThan,
		Older:       res.Older,
		OlderSports: countDocs(res.OlderSports),
	}
}

// YearRatioDoc is the female share of one year.
type YearRatioDoc struct {
	Year    int      `yaml:"year"`
	Female  int      `yaml:"female"`
	Total   int      `yaml:"total"`
	Percent *float64 `yaml:"percent"`
}

// GenderEvolutionDoc summarises analysis.GenderEvolutionResult.
type GenderEvolutionDoc struct {
	Years []YearRatioDoc `yaml:"years"`
}

// NewGenderEvolutionDoc converts res.
func NewGenderEvolutionDoc(res analysis.GenderEvolutionResult) GenderEvolutionDoc {
	doc := GenderEvolutionDoc{Years: make([]YearRatioDoc, len(res.Ratio))}
	for i, r := range res.Ratio {
		doc.Years[i] = YearRatioDoc{Year: r.Year, Female: r.Female, Total: r.Total, Percent: optionalValue(r.Percent)}
	}
	return doc
}

// MedalsByCountryDoc summarises analysis.MedalsByCountryResult.
type MedalsByCountryDoc struct {
	Medals    int        `yaml:"medals"`
	Top       []CountDoc `yaml:"top"`
	TopMale   []CountDoc `yaml:"top_male"`
	TopFemale []CountDoc `yaml:"top_female"`
}

// NewMedalsByCountryDoc converts res.
func NewMedalsByCountryDoc(res analysis.MedalsByCountryResult) MedalsByCountryDoc {
	return MedalsByCountryDoc{
		Medals:    res.Medals,
		Top:       countDocs(res.Top),
		TopMale:   countDocs(res.TopMale),
		TopFemale: countDocs(res.TopFemale),
	}
}

// DisciplineDoc summarises analysis.DisciplineResult.
type DisciplineDoc struct {
	NOC       string     `yaml:"noc"`
	Medals    int        `yaml:"medals"`
	TopEvent  CountDoc   `yaml:"top_event"`
	Sport     string     `yaml:"sport"`
	Sex       string     `yaml:"sex"`
	TeamYears int        `yaml:"team_years"`
	Golds     int        `yaml:"golds"`
	GoldRatio *float64   `yaml:"gold_ratio"`
	TopEvents []CountDoc `yaml:"top_events"`
}

// NewDisciplineDoc converts res.
func NewDisciplineDoc(res analysis.DisciplineResult) DisciplineDoc {
	return DisciplineDoc{
		NOC:       res.NOC,
		Medals:    res.Medals,
		TopEvent:  CountDoc{Key: res.TopEvent.Key, Count: res.TopEvent.Count},
		Sport:     res.Sport,
		Sex:       res.Sex,
		TeamYears: len(res.TeamYears),
		Golds:     res.Golds,
		GoldRatio: optionalValue(res.GoldRatio),
		TopEvents: countDocs(res.TopEvents),
	}
}

// HeightWeightDoc summarises analysis.HeightWeightResult.
type HeightWeightDoc struct {
	Medalists        int      `yaml:"medalists"`
	HeightMissing    int      `yaml:"height_missing"`
	HeightUnfilled   int      `yaml:"height_unfilled"`
	WeightMissing    int      `yaml:"weight_missing"`
	WeightUnfilled   int      `yaml:"weight_unfilled"`
	Pairs            int      `yaml:"pairs"`
	Correlation      *float64 `yaml:"correlation"`
	BMILower         float64  `yaml:"bmi_lower"`
	BMIUpper         float64  `yaml:"bmi_upper"`
	Outliers         int      `yaml:"outliers"`
	CleanCorrelation *float64 `yaml:"clean_correlation"`
}

// NewHeightWeightDoc converts res.
func NewHeightWeightDoc(res analysis.HeightWeightResult) HeightWeightDoc {
	return HeightWeightDoc{
		Medalists:        res.Medalists,
		HeightMissing:    res.Height.Missing,
		HeightUnfilled:   res.Height.Unfilled,
		WeightMissing:    res.Weight.Missing,
		WeightUnfilled:   res.Weight.Unfilled,
		Pairs:            len(res.All),
		Correlation:      optionalValue(res.Correlation),
		BMILower:         res.Bounds.Lower,
		BMIUpper:         res.Bounds.Upper,
		Outliers:         res.Outliers,
		CleanCorrelation: optionalValue(res.CleanCorrelation),
	}
}

// RegionDoc summarises analysis.RegionResult.
type RegionDoc struct {
	Region     string  `yaml:"region"`
	Entries    int     `yaml:"entries"`
	Medalists  int     `yaml:"medalists"`
	MedalRatio float64 `yaml:"medal_ratio"`
}

// NewRegionDoc converts res.
func NewRegionDoc(res analysis.RegionResult) RegionDoc {
	return RegionDoc{
		Region:     res.Region,
		Entries:    res.Entries,
		Medalists:  len(res.Medalists),
		MedalRatio: res.MedalRatio,
	}
}

// PhysicalTraitsDoc summarises analysis.PhysicalTraitsResult.
type PhysicalTraitsDoc struct {
	Sport        string `yaml:"sport"`
	Entries      int    `yaml:"entries"`
	HeightGroups int    `yaml:"height_groups"`
	WeightGroups int    `yaml:"weight_groups"`
}

// NewPhysicalTraitsDoc converts res.
func NewPhysicalTraitsDoc(res analysis.PhysicalTraitsResult) PhysicalTraitsDoc {
	return PhysicalTraitsDoc{
		Sport:        res.Sport,
		Entries:      res.Entries,
		HeightGroups: len(res.Height),
		WeightGroups: len(res.Weight),
	}
}
