package report

import (
	"database/sql"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"

	"github.com/nonsonwune/olympics_eda/analysis"
	"github.com/nonsonwune/olympics_eda/models"
)

// Console prints analysis results as headed tables.
type Console struct {
	w       io.Writer
	heading *color.Color
	title   *color.Color
	warn    *color.Color
	good    *color.Color
}

// NewConsole creates a Console writing to w.
func NewConsole(w io.Writer) *Console {
	return &Console{
		w:       w,
		heading: color.New(color.FgCyan, color.Bold),
		title:   color.New(color.FgYellow),
		warn:    color.New(color.FgRed),
		good:    color.New(color.FgGreen),
	}
}

// Heading prints a section banner.
func (c *Console) Heading(text string) {
	c.heading.Fprintf(c.w, "\n=== %s ===\n", text)
}

func (c *Console) table(title string, header []string, rows [][]string) {
	c.title.Fprintf(c.w, "\n%s\n", title)
	table := tablewriter.NewWriter(c.w)
	table.SetHeader(header)
	table.SetAutoWrapText(false)
	table.AppendBulk(rows)
	table.Render()
}

func (c *Console) line(format string, args ...interface{}) {
	fmt.Fprintf(c.w, format+"\n", args...)
}

// GoldMedalAge prints the age statistics of gold medalists.
func (c *Console) GoldMedalAge(res analysis.GoldMedalAgeResult) {
	c.Heading("Gold Medalists by Age")
	c.table("Age statistics", []string{"Statistic", "Value"}, [][]string{
		{"Gold medalists", strconv.Itoa(res.Medalists)},
		{"Mean age", decimal(res.MeanAge)},
		{"Median age", decimal(res.MedianAge)},
		{"Std deviation", optional(res.StdDevAge)},
		{"Youngest", decimal(res.MinAge)},
		{"Oldest", decimal(res.MaxAge)},
	})

	c.line("\nGold medalists older than %s: %d", decimal(res.OlderThan), res.Older)
	if res.Older == 0 {
		c.warn.Fprintln(c.w, "No gold medalists above the age threshold")
		return
	}
	c.table("Sports of older gold medalists", []string{"Sport", "Gold Medals"}, countRows(res.OlderSports))
}

// GenderEvolution prints female participation per year.
func (c *Console) GenderEvolution(res analysis.GenderEvolutionResult) {
	c.Heading("Women Participation Over Time")

	rows := make([][]string, 0, len(res.FemaleSummer))
	for _, yc := range res.FemaleSummer {
		rows = append(rows, []string{strconv.Itoa(yc.Year), strconv.Itoa(yc.Count)})
	}
	c.table("Female entries per Summer Games", []string{"Year", "Female Entries"}, rows)

	rows = make([][]string, 0, len(res.Ratio))
	for _, r := range res.Ratio {
		rows = append(rows, []string{
			strconv.Itoa(r.Year),
			strconv.Itoa(r.Female),
			strconv.Itoa(r.Total),
			optional(r.Percent),
		})
	}
	c.table("Female participation ratio", []string{"Year", "Female", "Total", "Percent"}, rows)
}

// MedalsByCountry prints the regional medal rankings.
func (c *Console) MedalsByCountry(res analysis.MedalsByCountryResult) {
	c.Heading("Medals by Country")
	c.line("Medal entries: %d", res.Medals)
	c.table("Top countries by total medals", []string{"Rank", "Region", "Medals"}, rankRows(res.Top))
	c.table("Top countries by male medals", []string{"Rank", "Region", "Medals"}, rankRows(res.TopMale))
	c.table("Top countries by female medals", []string{"Rank", "Region", "Medals"}, rankRows(res.TopFemale))
}

// DisciplineDominance prints where one country wins its medals.
func (c *Console) DisciplineDominance(res analysis.DisciplineResult) {
	c.Heading(fmt.Sprintf("Discipline Dominance: %s", res.NOC))
	c.line("Medal entries: %d", res.Medals)
	c.good.Fprintf(c.w, "Most decorated event: %s (%d medals)\n", res.TopEvent.Key, res.TopEvent.Count)
	c.table("Top events", []string{"Rank", "Event", "Medals"}, rankRows(res.TopEvents))

	rows := make([][]string, 0, len(res.TeamYears))
	for _, ty := range res.TeamYears {
		rows = append(rows, []string{strconv.Itoa(ty.Year), ty.Event, ty.Medal})
	}
	c.table(fmt.Sprintf("%s %s medals by year", res.Sport, sexLabel(res.Sex)), []string{"Year", "Event", "Medal"}, rows)
	c.line("Gold medals: %d of %d years (%s)", res.Golds, len(res.TeamYears), optionalPercent(res.GoldRatio))
}

// HeightWeight prints the correlation before and after outlier removal.
func (c *Console) HeightWeight(res analysis.HeightWeightResult) {
	c.Heading("Height vs Weight of Medalists")
	c.table("Missing values", []string{"Feature", "Missing", "Filled", "Still Missing"}, [][]string{
		imputationRow("Height", res.Height),
		imputationRow("Weight", res.Weight),
	})
	c.table("Correlation", []string{"Sample", "Medalists", "Pearson r"}, [][]string{
		{"All medalists", strconv.Itoa(len(res.All)), optional(res.Correlation)},
		{"Without BMI outliers", strconv.Itoa(len(res.Clean)), optional(res.CleanCorrelation)},
	})
	b := res.Bounds
	c.line("BMI Q1 %s, Q3 %s, IQR %s, bounds [%s, %s], outliers removed: %d",
		decimal(b.Q1), decimal(b.Q3), decimal(b.IQR), decimal(b.Lower), decimal(b.Upper), res.Outliers)
}

// RegionDeepDive prints the medalists of one region.
func (c *Console) RegionDeepDive(res analysis.RegionResult) {
	c.Heading(fmt.Sprintf("Region: %s", res.Region))
	c.line("Entries: %d, medal entries: %d, medal ratio: %s",
		res.Entries, len(res.Medalists), decimal(res.MedalRatio*100)+"%")

	rows := make([][]string, 0, len(res.Medalists))
	for _, r := range res.Medalists {
		rows = append(rows, []string{r.Name, strconv.Itoa(r.Year), r.Sport, r.Event, r.Medal.String})
	}
	c.table("Medalists", []string{"Name", "Year", "Sport", "Event", "Medal"}, rows)
}

// PhysicalTraits prints the median height and weight per year and sex.
func (c *Console) PhysicalTraits(res analysis.PhysicalTraitsResult) {
	c.Heading(fmt.Sprintf("Physical Traits: %s", res.Sport))
	c.line("Entries: %d", res.Entries)
	for _, f := range []analysis.Feature{analysis.FeatureHeight, analysis.FeatureWeight} {
		groups := res.Feature(f)
		rows := make([][]string, 0, len(groups))
		for _, g := range groups {
			median, err := analysis.Median(g.Values)
			if err != nil {
				continue
			}
			rows = append(rows, []string{strconv.Itoa(g.Year), sexLabel(g.Group), strconv.Itoa(len(g.Values)), decimal(median)})
		}
		c.table(fmt.Sprintf("%s by year", f), []string{"Year", "Sex", "Athletes", "Median"}, rows)
	}
}

// Outcomes prints how each analysis finished.
func (c *Console) Outcomes(outcomes []analysis.Outcome) {
	c.Heading("Run Summary")
	rows := make([][]string, 0, len(outcomes))
	for _, o := range outcomes {
		status, cause := "ok", ""
		if o.Err != nil {
			status, cause = "failed", o.Err.Error()
		}
		rows = append(rows, []string{o.Name, status, o.Duration.Round(time.Microsecond).String(), cause})
	}
	c.table("Analyses", []string{"Analysis", "Status", "Duration", "Error"}, rows)

	if failed := analysis.Failed(outcomes); len(failed) > 0 {
		c.warn.Fprintf(c.w, "%d of %d analyses failed\n", len(failed), len(outcomes))
		return
	}
	c.good.Fprintf(c.w, "All %d analyses completed\n", len(outcomes))
}

func countRows(counts []analysis.Count) [][]string {
	rows := make([][]string, 0, len(counts))
	for _, ct := range counts {
		rows = append(rows, []string{ct.Key, strconv.Itoa(ct.Count)})
	}
	return rows
}

func rankRows(counts []analysis.Count) [][]string {
	rows := make([][]string, 0, len(counts))
	for i, ct := range counts {
		rows = append(rows, []string{strconv.Itoa(i + 1), ct.Key, strconv.Itoa(ct.Count)})
	}
	return rows
}

func imputationRow(name string, imp analysis.Imputation) []string {
	return []string{name, strconv.Itoa(imp.Missing), strconv.Itoa(imp.Filled), strconv.Itoa(imp.Unfilled)}
}

func decimal(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func optional(v sql.NullFloat64) string {
	if !v.Valid {
		return "undefined"
	}
	return decimal(v.Float64)
}

func optionalPercent(v sql.NullFloat64) string {
	if !v.Valid {
		return "undefined"
	}
	return decimal(v.Float64*100) + "%"
}

func sexLabel(sex string) string {
	switch sex {
	case models.SexMale:
		return "Male"
	case models.SexFemale:
		return "Female"
	}
	return sex
}
