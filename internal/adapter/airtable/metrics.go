package airtable

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	requestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "airtable_requests_total",
			Help: "Total number of requests sent to Airtable",
		},
		[]string{"method", "table", "status"},
	)

	requestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "airtable_request_duration_ms",
			Help:    "Duration of Airtable requests in ms",
			Buckets: []float64{25, 50, 100, 200, 400, 800, 1600, 3200, 6400},
		},
		[]string{"method", "table"},
	)
)

func observe(method, table, status string, started time.Time) {
	requestsTotal.WithLabelValues(method, table, status).Inc()
	requestDuration.WithLabelValues(method, table).Observe(float64(time.Since(started).Milliseconds()))
}
