// Signin Triage - Sign-in Anomaly Scoring and Triage
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/signintriage

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Batch outcome labels.
const (
	OutcomeSuccess     = "success"
	OutcomeSchemaError = "schema_error"
	OutcomeReadError   = "read_error"
)

var (
	// Triage Batch Metrics
	BatchesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "triage_batches_total",
			Help: "Total number of triage batches by outcome",
		},
		[]string{"outcome"}, // "success", "schema_error", "read_error"
	)

	BatchDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "triage_batch_duration_seconds",
			Help:    "Duration of one triage batch in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5, 10, 30},
		},
	)

	RowsReadTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "triage_rows_read_total",
			Help: "Total number of data rows read across batches",
		},
	)

	RowsDroppedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "triage_rows_dropped_total",
			Help: "Total number of rows dropped during normalization",
		},
		[]string{"reason"}, // "invalid_timestamp", "invalid_coordinates"
	)

	AlertsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "triage_alerts_total",
			Help: "Total number of alerts produced by severity",
		},
		[]string{"severity"},
	)

	RiskScore = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "triage_risk_score",
			Help:    "Distribution of risk scores over scored events",
			Buckets: []float64{0, 15, 20, 25, 35, 40, 45, 60, 65, 75, 85, 100},
		},
	)

	// Notification Metrics
	NotificationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "triage_notifications_total",
			Help: "Total number of batch summary notifications by result",
		},
		[]string{"notifier", "result"}, // result: "success", "failure"
	)

	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10}, // Optimized for API latency
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)
)

// BatchObservation is everything recorded for one finished batch.
type BatchObservation struct {
	Outcome  string
	Duration time.Duration
	RowsRead int
	Dropped  map[string]int
	Alerts   map[string]int
	Scores   []int
}

// RecordBatch records the metrics of one triage batch.
func RecordBatch(obs BatchObservation) {
	outcome := obs.Outcome
	if outcome == "" {
		outcome = OutcomeSuccess
	}
	BatchesTotal.WithLabelValues(outcome).Inc()
	BatchDuration.Observe(obs.Duration.Seconds())
	RowsReadTotal.Add(float64(obs.RowsRead))

	for reason, n := range obs.Dropped {
		if n > 0 {
			RowsDroppedTotal.WithLabelValues(reason).Add(float64(n))
		}
	}
	for severity, n := range obs.Alerts {
		if n > 0 {
			AlertsTotal.WithLabelValues(severity).Add(float64(n))
		}
	}
	for _, s := range obs.Scores {
		RiskScore.Observe(float64(s))
	}
}

// RecordNotification records one notifier delivery attempt.
func RecordNotification(notifier, result string) {
	NotificationsTotal.WithLabelValues(notifier, result).Inc()
}

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks active API requests
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}
