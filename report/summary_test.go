package report

import (
	"bytes"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/nonsonwune/olympics_eda/analysis"
)

func TestSummary(t *testing.T) {
	s := NewSummary("run-1", "csv", 2, []string{"gold-age", "region", "traits"})

	s.SetResult("gold-age", NewGoldMedalAgeDoc(analysis.GoldMedalAgeResult{
		Medalists: 2,
		MeanAge:   40,
		MedianAge: 40,
		OlderThan: 50,
		Older:     1,
		OlderSports: []analysis.Count{
			{Key: "Wrestling", Count: 1},
		},
	}), []string{"charts/gold_age.png"})

	s.SetOutcomes([]analysis.Outcome{
		{Name: "gold-age", Duration: time.Second},
		{Name: "region", Duration: time.Second, Err: errors.New("no data")},
	})

	var buf bytes.Buffer
	require.NoError(t, s.Encode(&buf))

	var doc struct {
		RunID    string `yaml:"run_id"`
		Records  int    `yaml:"records"`
		Analyses []struct {
			Name   string                 `yaml:"name"`
			Status string                 `yaml:"status"`
			Error  string                 `yaml:"error"`
			Charts []string               `yaml:"charts"`
			Result map[string]interface{} `yaml:"result"`
		} `yaml:"analyses"`
	}
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &doc))

	assert.Equal(t, "run-1", doc.RunID)
	assert.Equal(t, 2, doc.Records)
	require.Len(t, doc.Analyses, 3)

	gold := doc.Analyses[0]
	assert.Equal(t, StatusOK, gold.Status)
	assert.Equal(t, []string{"charts/gold_age.png"}, gold.Charts)
	assert.Equal(t, 1, gold.Result["older"])
	assert.Nil(t, gold.Result["stddev_age"], "undefined deviation is null")
	assert.Contains(t, gold.Result, "stddev_age")

	assert.Equal(t, StatusFailed, doc.Analyses[1].Status)
	assert.Equal(t, "no data", doc.Analyses[1].Error)
	assert.Equal(t, StatusSkipped, doc.Analyses[2].Status)
}

func TestWriteSummary(t *testing.T) {
	path := filepath.Join(t.TempDir(), "summary.yaml")
	s := NewSummary("run-2", "postgres", 0, nil)
	s.SetResult("region", NewRegionDoc(analysis.RegionResult{Region: "Tunisia", Entries: 4, MedalRatio: 0.5}), nil)

	require.NoError(t, WriteSummary(path, s))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "region: Tunisia")
	assert.Contains(t, string(raw), "medal_ratio: 0.5")
}

func TestWriteSummaryBadPath(t *testing.T) {
	err := WriteSummary(filepath.Join(t.TempDir(), "missing", "summary.yaml"), NewSummary("x", "csv", 0, nil))
	assert.Error(t, err)
}

func TestDocsKeepMissingValuesNull(t *testing.T) {
	doc := NewDisciplineDoc(analysis.DisciplineResult{NOC: "TUN"})
	assert.Nil(t, doc.GoldRatio)

	doc = NewDisciplineDoc(analysis.DisciplineResult{NOC: "USA", GoldRatio: sql.NullFloat64{Float64: 0.5, Valid: true}})
	require.NotNil(t, doc.GoldRatio)
	assert.Equal(t, 0.5, *doc.GoldRatio)

	hw := NewHeightWeightDoc(analysis.HeightWeightResult{All: make([]analysis.Point, 3), Outliers: 1})
	assert.Equal(t, 3, hw.Pairs)
	assert.Nil(t, hw.Correlation)
}
