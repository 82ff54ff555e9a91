package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain repository.Metrics using Prometheus.
type Recorder struct {
	forecastsTotal   *prometheus.CounterVec
	fallbacksTotal   *prometheus.CounterVec
	errorsTotal      *prometheus.CounterVec
	datasetSize      *prometheus.GaugeVec
	forecastDuration *prometheus.HistogramVec
	insightsTotal    *prometheus.CounterVec
}

// New creates a new Prometheus metrics recorder.
func New() *Recorder {
	return &Recorder{
		forecastsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tradepulse_forecasts_total",
				Help: "Total number of forecasts computed by method",
			},
			[]string{"method"},
		),
		fallbacksTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tradepulse_fallbacks_total",
				Help: "Total number of fallback prediction series served",
			},
			[]string{"reason"},
		),
		errorsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tradepulse_errors_total",
				Help: "Total number of errors encountered",
			},
			[]string{"type"},
		),
		datasetSize: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "tradepulse_dataset_records",
				Help: "Number of trade records last loaded per flow",
			},
			[]string{"flow"},
		),
		forecastDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "tradepulse_forecast_duration_seconds",
				Help:    "Duration of forecast computations in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method"},
		),
		insightsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tradepulse_insights_total",
				Help: "Total number of AI insight requests by outcome",
			},
			[]string{"outcome"},
		),
	}
}

// RecordForecast records one computed forecast and its duration.
func (r *Recorder) RecordForecast(method string, seconds float64) {
	r.forecastsTotal.WithLabelValues(method).Inc()
	r.forecastDuration.WithLabelValues(method).Observe(seconds)
}

// RecordFallback records a fallback prediction series being served.
func (r *Recorder) RecordFallback(reason string) {
	r.fallbacksTotal.WithLabelValues(reason).Inc()
}

// RecordError records an error occurrence.
func (r *Recorder) RecordError(kind string) {
	r.errorsTotal.WithLabelValues(kind).Inc()
}

// RecordDatasetSize records the number of records loaded for a flow.
func (r *Recorder) RecordDatasetSize(flow string, n int) {
	r.datasetSize.WithLabelValues(flow).Set(float64(n))
}

// RecordInsight records an AI insight request outcome.
func (r *Recorder) RecordInsight(outcome string) {
	r.insightsTotal.WithLabelValues(outcome).Inc()
}
