// Package metrics exposes the Prometheus collectors of the API, ingestor and recorder.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "route", "status"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	// Status recording
	StatusSamplesRecorded = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "dam_status_samples_recorded_total",
			Help: "Status samples appended to history without touching the current row",
		},
	)

	StatusUpserts = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "dam_status_upserts_total",
			Help: "Current status writes, each mirrored into history",
		},
	)

	StatusWriteErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dam_status_write_errors_total",
			Help: "Failed status writes by stage",
		},
		[]string{"stage"}, // "current", "history", "archive"
	)

	// MQTT ingest
	IngestMessages = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mqtt_ingest_messages_total",
			Help: "MQTT status messages handled by result",
		},
		[]string{"result"},
	)

	FloodAlertsSent = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "flood_alerts_sent_total",
			Help: "Flood alerts published after a transition to Red",
		},
	)
)

// RecordAPIRequest records one finished request.
func RecordAPIRequest(method, route string, status int, d time.Duration) {
	APIRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	APIRequestDuration.WithLabelValues(method, route).Observe(d.Seconds())
}
