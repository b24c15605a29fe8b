package main

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
	"gonum.org/v1/plot/vg"

	"github.com/nonsonwune/olympics_eda/analysis"
	"github.com/nonsonwune/olympics_eda/config"
	"github.com/nonsonwune/olympics_eda/metrics"
	"github.com/nonsonwune/olympics_eda/models"
	"github.com/nonsonwune/olympics_eda/render"
	"github.com/nonsonwune/olympics_eda/report"
)

// Analysis names, in run order.
const (
	stepGoldAge      = "gold-age"
	stepGender       = "gender"
	stepMedals       = "medals"
	stepDiscipline   = "discipline"
	stepHeightWeight = "height-weight"
	stepRegion       = "region"
	stepTraits       = "traits"
)

type analysisDef struct {
	name        string
	description string
	run         func(s *session) error
}

// catalog is every analysis in the order they run.
var catalog = []analysisDef{
	{stepGoldAge, "Age of gold medalists and the sports of the oldest", (*session).goldAge},
	{stepGender, "Female participation per year", (*session).gender},
	{stepMedals, "Regions ranked by medals, overall and per sex", (*session).medals},
	{stepDiscipline, "Most decorated event of one country and its team gold ratio", (*session).discipline},
	{stepHeightWeight, "Height/weight correlation of medalists before and after BMI outliers", (*session).heightWeight},
	{stepRegion, "Medalists and age distribution of one region", (*session).region},
	{stepTraits, "Height and weight over time in one sport, by sex", (*session).traits},
}

// session is the state shared by the analyses of one run.
type session struct {
	cfg     *config.Config
	records []models.EnrichedRecord
	console *report.Console
	charts  render.Config
	summary *report.Summary
	metrics *metrics.Manager
	log     logrus.FieldLogger
}

func (s *session) steps(defs []analysisDef) []analysis.Step {
	steps := make([]analysis.Step, len(defs))
	for i, def := range defs {
		def := def
		steps[i] = analysis.Step{
			Name:        def.name,
			Description: def.description,
			Run:         func(context.Context) error { return def.run(s) },
		}
	}
	return steps
}

// chartSet collects the charts of one analysis. Charts without data are
// skipped with a warning; the first write error is kept.
type chartSet struct {
	s     *session
	log   logrus.FieldLogger
	paths []string
	err   error
}

func (s *session) newCharts(step string) *chartSet {
	return &chartSet{s: s, log: s.log.WithField("analysis", step)}
}

func (cs *chartSet) add(path string, err error) {
	if cs.err != nil {
		return
	}
	switch {
	case errors.Is(err, render.ErrNoData):
		cs.log.WithError(err).Warn("Chart skipped")
	case err != nil:
		cs.err = fmt.Errorf("render: %w", err)
	default:
		cs.paths = append(cs.paths, path)
		cs.s.metrics.ChartWritten()
		cs.log.WithField("chart", path).Debug("Chart written")
	}
}

// tall is the figure used for charts with many x categories.
func (s *session) tall() render.Config {
	return s.charts.WithSize(render.DefaultWidth, 8*vg.Inch)
}

func (s *session) goldAge() error {
	res, err := analysis.GoldMedalAge(s.records, s.cfg.OlderThan)
	if err != nil {
		return err
	}
	s.console.GoldMedalAge(res)

	cs := s.newCharts(stepGoldAge)
	ages := make([]render.Bar, len(res.AgeCounts))
	for i, vc := range res.AgeCounts {
		ages[i] = render.Bar{Label: strconv.FormatFloat(vc.Value, 'f', -1, 64), Value: float64(vc.Count)}
	}
	cs.add(s.tall().CountPlot("gold_age_distribution",
		render.Labels{Title: "Distribution of Gold Medalists' Ages", X: "Age", Rotation: 90}, ages))

	if res.Older == 0 {
		cs.log.WithField("older_than", res.OlderThan).Warn("No gold medalists above the age threshold, sport chart skipped")
	} else {
		cs.add(s.tall().CountPlot("gold_older_sports",
			render.Labels{Title: "Sports with Older Gold Medalists", X: "Sport", Rotation: 90}, countBars(res.OlderSports)))
	}

	s.summary.SetResult(stepGoldAge, report.NewGoldMedalAgeDoc(res), cs.paths)
	return cs.err
}

func (s *session) gender() error {
	res, err := analysis.GenderEvolution(s.records)
	if err != nil {
		return err
	}
	s.console.GenderEvolution(res)

	cs := s.newCharts(stepGender)
	women := make([]render.Bar, len(res.FemaleSummer))
	for i, yc := range res.FemaleSummer {
		women[i] = render.Bar{Label: strconv.Itoa(yc.Year), Value: float64(yc.Count)}
	}
	cs.add(s.tall().CountPlot("women_participation",
		render.Labels{Title: "Women Participation Over Time", X: "Year", Rotation: 90}, women))

	var ratio []render.Point
	for _, r := range res.Ratio {
		if r.Percent.Valid {
			ratio = append(ratio, render.Point{X: float64(r.Year), Y: r.Percent.Float64})
		}
	}
	cs.add(s.charts.Line("female_participation_ratio",
		render.Labels{Title: "Female Participation Ratio Over Time", X: "Year", Y: "Percentage"}, ratio))

	s.summary.SetResult(stepGender, report.NewGenderEvolutionDoc(res), cs.paths)
	return cs.err
}

func (s *session) medals() error {
	res, err := analysis.MedalsByCountry(s.records, s.cfg.TopN)
	if err != nil {
		return err
	}
	s.console.MedalsByCountry(res)

	cs := s.newCharts(stepMedals)
	for _, chart := range []struct {
		name   string
		title  string
		counts []analysis.Count
	}{
		{"top_countries_total", "Top %d Countries by Total Medals", res.Top},
		{"top_countries_male", "Top %d Countries by Male Medals", res.TopMale},
		{"top_countries_female", "Top %d Countries by Female Medals", res.TopFemale},
	} {
		cs.add(s.charts.BarPlot(chart.name, render.Labels{
			Title:    fmt.Sprintf(chart.title, s.cfg.TopN),
			X:        "Region",
			Y:        "Medals",
			Rotation: 45,
		}, countBars(chart.counts)))
	}

	s.summary.SetResult(stepMedals, report.NewMedalsByCountryDoc(res), cs.paths)
	return cs.err
}

func (s *session) discipline() error {
	res, err := analysis.DisciplineDominance(s.records, s.cfg.CountryCode, s.cfg.TeamSport, s.cfg.TeamSex, s.cfg.TopN)
	if err != nil {
		return err
	}
	s.console.DisciplineDominance(res)

	cs := s.newCharts(stepDiscipline)
	if !res.GoldRatio.Valid {
		cs.log.WithFields(logrus.Fields{"sport": res.Sport, "sex": res.Sex}).Warn("No team medals, gold ratio undefined")
	}
	cs.add(s.charts.BarPlot("discipline_top_events", render.Labels{
		Title:    fmt.Sprintf("Most Decorated Events of %s", res.NOC),
		X:        "Event",
		Y:        "Medals",
		Rotation: 45,
	}, countBars(res.TopEvents)))

	s.summary.SetResult(stepDiscipline, report.NewDisciplineDoc(res), cs.paths)
	return cs.err
}

func (s *session) heightWeight() error {
	res, err := analysis.HeightWeight(s.records)
	if err != nil {
		return err
	}
	s.console.HeightWeight(res)

	cs := s.newCharts(stepHeightWeight)
	if !res.Correlation.Valid {
		cs.log.Warn("Correlation undefined")
	}
	cs.add(s.charts.Scatter("height_weight_medalists",
		render.Labels{Title: "Height vs Weight (Medalists)", X: "Weight", Y: "Height"}, bodyPoints(res.All)))
	cs.add(s.charts.Scatter("height_weight_no_outliers",
		render.Labels{Title: "Height vs Weight (No Outliers)", X: "Weight", Y: "Height"}, bodyPoints(res.Clean)))

	s.summary.SetResult(stepHeightWeight, report.NewHeightWeightDoc(res), cs.paths)
	return cs.err
}

func (s *session) region() error {
	res, err := analysis.RegionDeepDive(s.records, s.cfg.Region)
	if err != nil {
		return err
	}
	s.console.RegionDeepDive(res)

	cs := s.newCharts(stepRegion)
	cs.add(s.charts.BoxPlot("region_age_by_year", render.Labels{
		Title: fmt.Sprintf("Age Distribution of %s Athletes Over Time", res.Region),
		X:     "Year",
		Y:     "Age",
	}, boxes(res.AgeByYear)))

	s.summary.SetResult(stepRegion, report.NewRegionDoc(res), cs.paths)
	return cs.err
}

func (s *session) traits() error {
	res, err := analysis.PhysicalTraits(s.records, s.cfg.TraitSport)
	if err != nil {
		return err
	}
	s.console.PhysicalTraits(res)

	cs := s.newCharts(stepTraits)
	for _, f := range []analysis.Feature{analysis.FeatureHeight, analysis.FeatureWeight} {
		cs.add(s.tall().BoxPlot("traits_"+strings.ToLower(string(f)), render.Labels{
			Title:    fmt.Sprintf("%s Variation Over Time (%s)", f, res.Sport),
			X:        "Year",
			Y:        string(f),
			Rotation: 90,
		}, boxes(res.Feature(f))))
	}

	s.summary.SetResult(stepTraits, report.NewPhysicalTraitsDoc(res), cs.paths)
	return cs.err
}

func countBars(counts []analysis.Count) []render.Bar {
	bars := make([]render.Bar, len(counts))
	for i, c := range counts {
		bars[i] = render.Bar{Label: c.Key, Value: float64(c.Count)}
	}
	return bars
}

func bodyPoints(points []analysis.Point) []render.Point {
	out := make([]render.Point, len(points))
	for i, p := range points {
		out[i] = render.Point{X: p.Weight, Y: p.Height}
	}
	return out
}

func boxes(groups []analysis.GroupValues) []render.Box {
	out := make([]render.Box, len(groups))
	for i, g := range groups {
		out[i] = render.Box{Category: strconv.Itoa(g.Year), Hue: g.Group, Values: g.Values}
	}
	return out
}
