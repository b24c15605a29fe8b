// Package metrics records run statistics as Prometheus metrics.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Status label values.
const (
	StatusOK     = "ok"
	StatusFailed = "failed"
)

// Manager holds the metrics of one run in its own registry.
type Manager struct {
	namespace string
	buckets   []float64
	registry  *prometheus.Registry

	analyses        *prometheus.CounterVec
	analysisSeconds *prometheus.HistogramVec
	records         *prometheus.GaugeVec
	charts          prometheus.Counter
	lastRun         prometheus.Gauge
}

// Option configures a Manager.
type Option func(*Manager)

// WithNamespace sets the metric name prefix.
func WithNamespace(namespace string) Option {
	return func(m *Manager) { m.namespace = namespace }
}

// WithHistogramBuckets sets the duration buckets in seconds.
func WithHistogramBuckets(buckets []float64) Option {
	return func(m *Manager) { m.buckets = buckets }
}

// NewManager creates a Manager with a fresh registry.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace: "olympics_eda",
		buckets:   prometheus.DefBuckets,
		registry:  prometheus.NewRegistry(),
	}
	for _, opt := range opts {
		opt(m)
	}

	factory := promauto.With(m.registry)
	m.analyses = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "analyses_total",
		Help:      "Analyses run, by name and status.",
	}, []string{"analysis", "status"})
	m.analysisSeconds = factory.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Name:      "analysis_duration_seconds",
		Help:      "Time spent in each analysis.",
		Buckets:   m.buckets,
	}, []string{"analysis"})
	m.records = factory.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Name:      "records_loaded",
		Help:      "Rows loaded per table.",
	}, []string{"table"})
	m.charts = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "charts_written_total",
		Help:      "Chart files written.",
	})
	m.lastRun = factory.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Name:      "last_run_timestamp_seconds",
		Help:      "Unix time the run finished.",
	})
	return m
}

// Registry exposes the underlying registry.
func (m *Manager) Registry() *prometheus.Registry {
	return m.registry
}

// ObserveAnalysis records one finished analysis.
func (m *Manager) ObserveAnalysis(name string, duration time.Duration, err error) {
	status := StatusOK
	if err != nil {
		status = StatusFailed
	}
	m.analyses.WithLabelValues(name, status).Inc()
	m.analysisSeconds.WithLabelValues(name).Observe(duration.Seconds())
}

// SetRecords records the number of rows loaded for table.
func (m *Manager) SetRecords(table string, n int) {
	m.records.WithLabelValues(table).Set(float64(n))
}

// ChartWritten counts one rendered chart.
func (m *Manager) ChartWritten() {
	m.charts.Inc()
}

// WriteTextfile stamps the run end time and writes every metric to path in
// the text exposition format.
func (m *Manager) WriteTextfile(path string) error {
	m.lastRun.SetToCurrentTime()
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("write metrics: %w", err)
	}
	return nil
}
