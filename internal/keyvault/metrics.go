package keyvault

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type metrics struct {
	duration *prometheus.HistogramVec
	failures *prometheus.CounterVec
}

var fetcherMetrics = newMetrics()

func newMetrics() *metrics {
	return &metrics{
		duration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "word_of_the_day",
				Subsystem: "",
				Name:      "secret_fetch_duration",
				Help:      "secret store round trip duration",
				Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 5},
			}, []string{"stage"}),
		failures: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "word_of_the_day",
				Subsystem: "",
				Name:      "secret_fetch_failures_total",
				Help:      "total quantity of failed secret lookups",
			}, []string{"stage"}),
	}
}
