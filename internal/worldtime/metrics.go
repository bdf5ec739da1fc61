package worldtime

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	resultOK        = "ok"
	resultBadStatus = "bad_status"
	resultError     = "error"
)

type metrics struct {
	duration prometheus.Histogram
	requests *prometheus.CounterVec
}

var clientMetrics = newMetrics()

func newMetrics() *metrics {
	return &metrics{
		duration: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: "word_of_the_day",
				Subsystem: "",
				Name:      "time_api_duration",
				Help:      "public time API response duration",
				Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
			}),
		requests: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "word_of_the_day",
				Subsystem: "",
				Name:      "time_api_requests_total",
				Help:      "total quantity of public time API requests by result",
			}, []string{"result"}),
	}
}
