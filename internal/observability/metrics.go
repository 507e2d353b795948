package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/neuroautomation/neuro-backend/internal/core"
)

var (
	HTTPRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "neuro_http_requests_total",
		Help: "Total HTTP requests",
	}, []string{"route", "method", "code"})

	HTTPRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "neuro_http_request_duration_seconds",
		Help:    "HTTP request latency",
		Buckets: prometheus.DefBuckets,
	}, []string{"route", "method"})

	ActiveRequests = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "neuro_active_requests",
		Help: "Current in-flight requests",
	})

	// 0 uninitialized, 1 connected, 2 disconnected
	DBConnectivityState = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "neuro_db_connectivity_state",
		Help: "Database connectivity state",
	})

	DBConnectAttempts = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "neuro_db_connect_attempts_total",
		Help: "Database connect attempts by outcome",
	}, []string{"result", "reason"})

	DBConnectDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "neuro_db_connect_duration_seconds",
		Help:    "Time taken by the database connect attempt",
		Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 2, 5, 10, 30, 60},
	})
)

func RegisterAll(reg prometheus.Registerer) {
	reg.MustRegister(
		HTTPRequestsTotal, HTTPRequestDuration, ActiveRequests,
		DBConnectivityState, DBConnectAttempts, DBConnectDuration,
	)
}

// RecordConnect records the outcome of a database connect attempt.
func RecordConnect(state core.ConnectivityState, reason core.ConnectReason, took time.Duration) {
	result := "success"
	if state != core.ConnectivityConnected {
		result = "failure"
	}
	DBConnectAttempts.WithLabelValues(result, string(reason)).Inc()
	DBConnectDuration.Observe(took.Seconds())
	DBConnectivityState.Set(float64(state))
}
