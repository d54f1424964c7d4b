// Signin Triage - Sign-in Anomaly Scoring and Triage
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/signintriage

/*
Package metrics provides Prometheus metrics collection and export for observability.

All collectors are registered with the default registry through promauto and
exposed by the HTTP server at /metrics:

	curl http://localhost:8790/metrics

# Available Metrics

Triage Metrics:
  - triage_batches_total: Batches processed (counter)
    Labels: outcome (success, schema_error, read_error)
  - triage_batch_duration_seconds: Batch latency (histogram)
  - triage_rows_read_total: Data rows read (counter)
  - triage_rows_dropped_total: Rows dropped during normalization (counter)
    Labels: reason (invalid_timestamp, invalid_coordinates)
  - triage_alerts_total: Alerts produced (counter)
    Labels: severity (info, warning, critical)
  - triage_risk_score: Risk score distribution over scored events (histogram)
  - triage_notifications_total: Batch summary deliveries (counter)
    Labels: notifier, result

HTTP Metrics:
  - api_requests_total: Total API requests (counter)
    Labels: method, endpoint, status_code
  - api_request_duration_seconds: Request latency (histogram)
    Labels: method, endpoint
  - api_active_requests: Requests in flight (gauge)

# Usage

	start := time.Now()
	// ... run a batch ...
	metrics.RecordBatch(metrics.BatchObservation{
	    Outcome:  metrics.OutcomeSuccess,
	    Duration: time.Since(start),
	    RowsRead: 120,
	})
*/
package metrics
