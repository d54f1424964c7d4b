// Signin Triage - Sign-in Anomaly Scoring and Triage
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/signintriage

package models

import (
	"time"
)

// APIResponse represents a standardized API response wrapper used by all HTTP endpoints.
// It provides consistent structure for both successful and error responses, with metadata
// for observability.
//
// Status field values:
//   - "success": Request completed successfully, see Data field
//   - "error": Request failed, see Error field for details
//
// Example successful response:
//
//	{
//	  "status": "success",
//	  "data": {"summary": {...}, "alerts": [...]},
//	  "metadata": {
//	    "timestamp": "2026-03-02T12:00:00Z",
//	    "request_id": "5f0c...",
//	    "batch_id": "9a1e...",
//	    "processing_time_ms": 12
//	  }
//	}
//
// Example error response:
//
//	{
//	  "status": "error",
//	  "data": null,
//	  "error": {
//	    "code": "SCHEMA_ERROR",
//	    "message": "input is missing required column(s): device, ip",
//	    "details": {"missing": ["device", "ip"]}
//	  },
//	  "metadata": {"timestamp": "2026-03-02T12:00:00Z"}
//	}
type APIResponse struct {
	Status   string      `json:"status"`
	Data     interface{} `json:"data"`
	Metadata Metadata    `json:"metadata"`
	Error    *APIError   `json:"error,omitempty"`
}

// Metadata contains response metadata for observability.
//
// Fields:
//   - Timestamp: Server time when the response was generated
//   - RequestID: Request ID assigned by the router (omitted when absent)
//   - BatchID: Triage batch ID, set on responses that ran a batch
//   - ProcessingTimeMS: Batch wall time in milliseconds
type Metadata struct {
	Timestamp        time.Time `json:"timestamp"`
	RequestID        string    `json:"request_id,omitempty"`
	BatchID          string    `json:"batch_id,omitempty"`
	ProcessingTimeMS int64     `json:"processing_time_ms,omitempty"`
}

// APIError represents an error response with structured error details.
//
// Error codes:
//   - SCHEMA_ERROR: Upload lacks required columns (422)
//   - VALIDATION_ERROR: Invalid query parameters (400)
//   - INVALID_INPUT: Upload missing or not readable as delimited text (400)
//   - PAYLOAD_TOO_LARGE: Upload exceeds the configured limit (413)
//   - RATE_LIMIT_EXCEEDED: Too many uploads from one client (429)
//   - NOT_FOUND, METHOD_NOT_ALLOWED: Routing failures (404, 405)
//   - INTERNAL_ERROR: Unexpected failure (500)
type APIError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// Error codes used in APIError.Code.
const (
	ErrCodeSchema           = "SCHEMA_ERROR"
	ErrCodeValidation       = "VALIDATION_ERROR"
	ErrCodeInvalidInput     = "INVALID_INPUT"
	ErrCodePayloadTooLarge  = "PAYLOAD_TOO_LARGE"
	ErrCodeRateLimited      = "RATE_LIMIT_EXCEEDED"
	ErrCodeNotFound         = "NOT_FOUND"
	ErrCodeMethodNotAllowed = "METHOD_NOT_ALLOWED"
	ErrCodeInternal         = "INTERNAL_ERROR"
)
