// Package config holds the run settings of the analysis tool.
package config

import (
	"fmt"
	"strings"

	"github.com/creasty/defaults"
	"github.com/sirupsen/logrus"
)

// Data sources.
const (
	SourceCSV      = "csv"
	SourcePostgres = "postgres"
)

// Config contains every setting of a run. Defaults come from the default
// tags.
type Config struct {
	// LogLevel is a logrus level name.
	LogLevel string `koanf:"log_level" default:"info"`

	// Source selects where rows are read from: csv or postgres.
	Source            string `koanf:"source" default:"csv"`
	AthleteEventsPath string `koanf:"athlete_events_path" default:"athlete_events.csv"`
	RegionsPath       string `koanf:"regions_path" default:"noc_regions.csv"`
	DatabaseURL       string `koanf:"database_url"`

	// OutputDir receives the PNG charts.
	OutputDir string `koanf:"output_dir" default:"charts"`
	DPI       int    `koanf:"dpi" default:"150"`
	Style     string `koanf:"style" default:"whitegrid"`

	// ReportPath and MetricsPath are written only when set.
	ReportPath  string `koanf:"report_path"`
	MetricsPath string `koanf:"metrics_path"`

	TopN        int     `koanf:"top_n" default:"10"`
	OlderThan   float64 `koanf:"older_than" default:"50"`
	CountryCode string  `koanf:"country_code" default:"USA"`
	TeamSport   string  `koanf:"team_sport" default:"Basketball"`
	TeamSex     string  `koanf:"team_sex" default:"M"`
	Region      string  `koanf:"region" default:"Tunisia"`
	TraitSport  string  `koanf:"trait_sport" default:"Gymnastics"`
}

// New returns the default configuration.
func New() *Config {
	c := &Config{}
	if err := defaults.Set(c); err != nil {
		// Only reachable with a malformed default tag.
		panic(fmt.Sprintf("config: %v", err))
	}
	return c
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return invalid("log_level: %v", err)
	}

	switch c.Source {
	case SourceCSV:
		if c.AthleteEventsPath == "" || c.RegionsPath == "" {
			return invalid("athlete_events_path and regions_path are required for the csv source")
		}
	case SourcePostgres:
		if c.DatabaseURL == "" {
			return invalid("database_url is required for the postgres source")
		}
	default:
		return invalid("source must be %s or %s, got %q", SourceCSV, SourcePostgres, c.Source)
	}

	if c.OutputDir == "" {
		return invalid("output_dir must not be empty")
	}
	if c.DPI <= 0 {
		return invalid("dpi must be positive, got %d", c.DPI)
	}
	if c.Style != "whitegrid" && c.Style != "plain" {
		return invalid("style must be whitegrid or plain, got %q", c.Style)
	}
	if c.TopN <= 0 {
		return invalid("top_n must be positive, got %d", c.TopN)
	}
	if c.TeamSex != "M" && c.TeamSex != "F" {
		return invalid("team_sex must be M or F, got %q", c.TeamSex)
	}
	for key, v := range map[string]string{
		"country_code": c.CountryCode,
		"team_sport":   c.TeamSport,
		"region":       c.Region,
		"trait_sport":  c.TraitSport,
	} {
		if strings.TrimSpace(v) == "" {
			return invalid("%s must not be empty", key)
		}
	}
	return nil
}

func invalid(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidConfig, fmt.Sprintf(format, args...))
}
