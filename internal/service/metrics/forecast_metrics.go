package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	ForecastLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "demandcast",
			Subsystem: "forecast",
			Name:      "latency_seconds",
			Help:      "Latency of forecasting endpoints",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"endpoint"},
	)

	ForecastErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "demandcast",
			Subsystem: "forecast",
			Name:      "errors_total",
			Help:      "Errors by forecasting endpoint",
		},
		[]string{"endpoint"},
	)

	ForecastHorizonDays = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "demandcast",
			Subsystem: "forecast",
			Name:      "horizon_days",
			Help:      "Requested forecast horizon distribution",
			Buckets:   []float64{7, 14, 30, 60, 90, 180, 365},
		},
		[]string{"endpoint"},
	)
)

func Register() {
	once.Do(func() {
		prometheus.MustRegister(ForecastLatency, ForecastErrors, ForecastHorizonDays)
	})
}
