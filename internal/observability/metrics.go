package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the
// transformation pipeline. Stage-labelled vectors use the stage names
// staging, quality, enrich, aggregate, features, dimensions.
type Metrics struct {
	RowsIn        *prometheus.CounterVec // label: stage
	RowsOut       *prometheus.CounterVec // label: stage
	RowsDropped   *prometheus.CounterVec // labels: stage, reason={structural,quality_score,future_date,no_history}
	OutlierFlags  *prometheus.CounterVec // label: measurement
	StageDuration *prometheus.HistogramVec

	RunsTotal       *prometheus.CounterVec // label: outcome={success,error}
	PipelineRunning prometheus.Gauge
	LastRunUnixtime prometheus.Gauge
	RunDuration     prometheus.Histogram
}

// NewMetrics creates and registers all pipeline metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.RowsIn,
		m.RowsOut,
		m.RowsDropped,
		m.OutlierFlags,
		m.StageDuration,
		m.RunsTotal,
		m.PipelineRunning,
		m.LastRunUnixtime,
		m.RunDuration,
	)
	return m
}

// NewMetricsForTesting creates Metrics without registering them, avoiding
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		RowsIn: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "weather_etl",
			Name:      "stage_rows_in_total",
			Help:      "Rows entering each transformation stage.",
		}, []string{"stage"}),
		RowsOut: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "weather_etl",
			Name:      "stage_rows_out_total",
			Help:      "Rows emitted by each transformation stage.",
		}, []string{"stage"}),
		RowsDropped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "weather_etl",
			Name:      "stage_rows_dropped_total",
			Help:      "Rows excluded by a stage, by reason.",
		}, []string{"stage", "reason"}),
		OutlierFlags: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "weather_etl",
			Name:      "outlier_flags_total",
			Help:      "Out-of-range measurement flags raised by the quality checker.",
		}, []string{"measurement"}),
		StageDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "weather_etl",
			Name:      "stage_duration_seconds",
			Help:      "Wall time of each transformation stage, including materialization.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10, 30},
		}, []string{"stage"}),
		RunsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "weather_etl",
			Name:      "runs_total",
			Help:      "Completed pipeline runs by outcome.",
		}, []string{"outcome"}),
		PipelineRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "weather_etl",
			Name:      "pipeline_running",
			Help:      "1 while a pipeline run is in progress.",
		}),
		LastRunUnixtime: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "weather_etl",
			Name:      "last_successful_run_timestamp_seconds",
			Help:      "Unix time of the last successful pipeline run.",
		}),
		RunDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "weather_etl",
			Name:      "run_duration_seconds",
			Help:      "Duration of a complete pipeline run.",
			Buckets:   []float64{0.1, 0.5, 1, 5, 10, 30, 60, 120, 300},
		}),
	}
}
