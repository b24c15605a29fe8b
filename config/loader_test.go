package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate runs the test in an empty directory so no stray .env is read.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	t.Setenv(EnvConfigFile, "")
	return dir
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	isolate(t)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, New(), cfg)
	assert.Equal(t, "athlete_events.csv", cfg.AthleteEventsPath)
	assert.Equal(t, 150, cfg.DPI)
	assert.Equal(t, 10, cfg.TopN)
	assert.Equal(t, 50.0, cfg.OlderThan)
}

func TestLoadLayering(t *testing.T) {
	dir := isolate(t)

	path := writeFile(t, dir, "olympics.yaml", `
output_dir: out
dpi: 300
region: Kenya
top_n: 5
`)
	t.Setenv("OLYMPICS_DPI", "72")
	t.Setenv("OLYMPICS_TRAIT_SPORT", "Swimming")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "out", cfg.OutputDir, "file overrides default")
	assert.Equal(t, "Kenya", cfg.Region)
	assert.Equal(t, 5, cfg.TopN)
	assert.Equal(t, 72, cfg.DPI, "env overrides file")
	assert.Equal(t, "Swimming", cfg.TraitSport)
	assert.Equal(t, "USA", cfg.CountryCode, "untouched keys keep defaults")
}

func TestLoadConfigFromEnvPath(t *testing.T) {
	dir := isolate(t)
	path := writeFile(t, dir, "c.yaml", "style: plain\n")
	t.Setenv(EnvConfigFile, path)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "plain", cfg.Style)
}

func TestLoadDotenv(t *testing.T) {
	dir := isolate(t)
	writeFile(t, dir, ".env", "OLYMPICS_COUNTRY_CODE=TUN\n")
	t.Cleanup(func() { os.Unsetenv("OLYMPICS_COUNTRY_CODE") })

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "TUN", cfg.CountryCode)
}

func TestLoadErrors(t *testing.T) {
	dir := isolate(t)

	_, err := Load(filepath.Join(dir, "missing.yaml"))
	assert.ErrorIs(t, err, ErrLoadConfig)

	bad := writeFile(t, dir, "bad.yaml", "dpi: [1, 2\n")
	_, err = Load(bad)
	assert.ErrorIs(t, err, ErrLoadConfig)

	pg := writeFile(t, dir, "pg.yaml", "source: postgres\n")
	_, err = Load(pg)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{name: "log level", mutate: func(c *Config) { c.LogLevel = "loud" }},
		{name: "source", mutate: func(c *Config) { c.Source = "parquet" }},
		{name: "csv paths", mutate: func(c *Config) { c.RegionsPath = "" }},
		{name: "dpi", mutate: func(c *Config) { c.DPI = 0 }},
		{name: "style", mutate: func(c *Config) { c.Style = "darkgrid" }},
		{name: "top n", mutate: func(c *Config) { c.TopN = -1 }},
		{name: "team sex", mutate: func(c *Config) { c.TeamSex = "X" }},
		{name: "region", mutate: func(c *Config) { c.Region = " " }},
		{name: "output dir", mutate: func(c *Config) { c.OutputDir = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := New()
			tt.mutate(cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
		})
	}

	pg := New()
	pg.Source = SourcePostgres
	pg.DatabaseURL = "postgres://localhost/olympics?sslmode=disable"
	assert.NoError(t, pg.Validate())
	assert.NoError(t, New().Validate())
}
