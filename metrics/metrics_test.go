package metrics

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveAnalysis(t *testing.T) {
	m := NewManager()

	m.ObserveAnalysis("gold-age", 10*time.Millisecond, nil)
	m.ObserveAnalysis("gold-age", 20*time.Millisecond, nil)
	m.ObserveAnalysis("region", time.Millisecond, errors.New("no data"))

	assert.Equal(t, 2.0, testutil.ToFloat64(m.analyses.WithLabelValues("gold-age", StatusOK)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.analyses.WithLabelValues("region", StatusFailed)))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.analyses.WithLabelValues("region", StatusOK)))
	assert.Equal(t, 2, testutil.CollectAndCount(m.analysisSeconds))
}

func TestRecordsAndCharts(t *testing.T) {
	m := NewManager(WithNamespace("test"))

	m.SetRecords("athlete_events", 271116)
	m.ChartWritten()
	m.ChartWritten()

	assert.Equal(t, 271116.0, testutil.ToFloat64(m.records.WithLabelValues("athlete_events")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.charts))
}

func TestWriteTextfile(t *testing.T) {
	m := NewManager(WithHistogramBuckets([]float64{0.1, 1}))
	m.ObserveAnalysis("traits", 50*time.Millisecond, nil)

	path := filepath.Join(t.TempDir(), "olympics.prom")
	require.NoError(t, m.WriteTextfile(path))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	out := string(raw)
	assert.Contains(t, out, `olympics_eda_analyses_total{analysis="traits",status="ok"} 1`)
	assert.Contains(t, out, `olympics_eda_analysis_duration_seconds_bucket{analysis="traits",le="0.1"} 1`)
	assert.Contains(t, out, "olympics_eda_last_run_timestamp_seconds")
}

func TestWriteTextfileBadPath(t *testing.T) {
	err := NewManager().WriteTextfile(filepath.Join(t.TempDir(), "missing", "x.prom"))
	assert.Error(t, err)
}
