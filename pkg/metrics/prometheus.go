package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain repository.Metrics using Prometheus.
type Recorder struct {
	forecastsTotal *prometheus.CounterVec
	errorsTotal    *prometheus.CounterVec
	anomaliesFound *prometheus.CounterVec
	latency        *prometheus.HistogramVec
}

// New creates a new Prometheus metrics recorder.
func New() *Recorder {
	return &Recorder{
		forecastsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "demandcast_forecasts_total",
				Help: "Total number of forecasts generated",
			},
			[]string{"product"},
		),
		errorsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "demandcast_errors_total",
				Help: "Total number of errors encountered",
			},
			[]string{"type"},
		),
		anomaliesFound: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "demandcast_anomalies_found_total",
				Help: "Total number of anomalies detected",
			},
			[]string{"product"},
		),
		latency: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "demandcast_operation_duration_seconds",
				Help:    "Duration of operations in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
	}
}

// RecordForecast records a generated forecast for a product.
func (r *Recorder) RecordForecast(productID string) {
	r.forecastsTotal.WithLabelValues(productID).Inc()
}

// RecordError records an error occurrence.
func (r *Recorder) RecordError(kind string) {
	r.errorsTotal.WithLabelValues(kind).Inc()
}

// RecordAnomalies records detected anomalies for a product.
func (r *Recorder) RecordAnomalies(productID string, count int) {
	if count <= 0 {
		return
	}
	r.anomaliesFound.WithLabelValues(productID).Add(float64(count))
}

// RecordLatency records operation latency in seconds.
func (r *Recorder) RecordLatency(op string, seconds float64) {
	r.latency.WithLabelValues(op).Observe(seconds)
}
