// Signin Triage - Sign-in Anomaly Scoring and Triage
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/signintriage

package models

import (
	"github.com/tomtom215/signintriage/internal/export"
	"github.com/tomtom215/signintriage/internal/pipeline"
)

// TriageResponse is the data payload of POST /api/v1/triage: the batch
// summary and the interactive alert view, highest risk first.
//
// Example:
//
//	{
//	  "summary": {"batch_id": "...", "threshold": 40, "rows_read": 3, "alerts": 1, ...},
//	  "alerts": [
//	    {
//	      "timestamp": "2024-01-05 10:10:00+00:00",
//	      "user": "alice",
//	      "city": "Tokyo",
//	      "country": "JP",
//	      "device": "d1",
//	      "risk_score": 65,
//	      "severity": "warning",
//	      "triage_note": "alice login from Tokyo, JP (9713 km since last). ..."
//	    }
//	  ]
//	}
type TriageResponse struct {
	Summary pipeline.Summary    `json:"summary"`
	Alerts  []export.ViewRecord `json:"alerts"`
}

// HealthResponse is returned by the liveness and readiness probes.
type HealthResponse struct {
	Status    string `json:"status"`
	Version   string `json:"version,omitempty"`
	Uptime    int64  `json:"uptime_seconds"`
	Notifiers int    `json:"notifiers_enabled"`
}
