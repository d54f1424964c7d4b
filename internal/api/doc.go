// Signin Triage - Sign-in Anomaly Scoring and Triage
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/signintriage

/*
Package api provides the HTTP REST API for Signin Triage.

The API is a thin caller of internal/pipeline: it acquires the threshold
from the query string (falling back to configuration), hands the uploaded
table to the pipeline, and renders the result.

Endpoints:

	POST /api/v1/triage?threshold=N
	    Upload (multipart "file" field or raw text/csv body). Returns the
	    batch summary and the alert view in the JSON envelope.

	POST /api/v1/triage/export?threshold=N&format=csv|json|cef&layout=full|view
	    Same upload, returns the alerts as a file download.

	GET /api/v1/health/live
	GET /api/v1/health/ready
	GET /metrics

Error Mapping:

  - missing required columns: 422 SCHEMA_ERROR, message lists the sorted columns
  - bad threshold, format, or layout: 400 VALIDATION_ERROR
  - unreadable upload or missing "file" part: 400 INVALID_INPUT
  - unsupported content type: 415 INVALID_INPUT
  - upload over triage.max_upload_bytes: 413 PAYLOAD_TOO_LARGE
  - rate limit: 429 RATE_LIMIT_EXCEEDED

Middleware Stack:

Global: request ID with logging context, real IP, panic recovery, CORS.
Triage routes add an httprate per-client limit, Prometheus instrumentation,
and gzip compression.

Notifications:

When a batch produces alerts and notifiers are enabled, the summary is
delivered in the background after the response is written. Delivery
failures are logged and counted, never returned to the client.
*/
package api
