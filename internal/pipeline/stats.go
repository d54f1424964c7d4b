// Signin Triage - Sign-in Anomaly Scoring and Triage
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/signintriage

package pipeline

import (
	"time"

	"github.com/tomtom215/signintriage/internal/detection"
	"github.com/tomtom215/signintriage/internal/signin"
)

// Stats holds statistics about one pipeline run.
type Stats struct {
	// BatchID identifies the run in logs and notifications.
	BatchID string

	// Threshold is the alert cut-off the run was filtered with.
	Threshold int

	// RowsRead is the number of data rows in the input.
	RowsRead int

	// RowsKept is the number of rows that survived normalization.
	RowsKept int

	// Drops counts removed rows by reason.
	Drops signin.DropStats

	// Users is the number of distinct users among kept rows.
	Users int

	// Alerts is the number of rows at or above Threshold.
	Alerts int

	// Severities counts alerts per severity band.
	Severities map[detection.Severity]int

	StartTime time.Time
	EndTime   time.Time
}

// Duration returns the wall time of the run.
func (s *Stats) Duration() time.Duration {
	if s.EndTime.IsZero() {
		return time.Since(s.StartTime)
	}
	return s.EndTime.Sub(s.StartTime)
}

// RowsDropped returns the number of rows removed during normalization.
func (s *Stats) RowsDropped() int {
	return s.Drops.Total()
}

// Summary is the JSON form of Stats returned by the API.
type Summary struct {
	BatchID            string                     `json:"batch_id"`
	Threshold          int                        `json:"threshold"`
	RowsRead           int                        `json:"rows_read"`
	RowsKept           int                        `json:"rows_kept"`
	RowsDropped        int                        `json:"rows_dropped"`
	InvalidTimestamp   int                        `json:"invalid_timestamp"`
	InvalidCoordinates int                        `json:"invalid_coordinates"`
	Users              int                        `json:"users"`
	Alerts             int                        `json:"alerts"`
	Severities         map[detection.Severity]int `json:"severities"`
	DurationMs         int64                      `json:"duration_ms"`
}

// ToSummary converts s to its JSON form.
func (s *Stats) ToSummary() Summary {
	return Summary{
		BatchID:            s.BatchID,
		Threshold:          s.Threshold,
		RowsRead:           s.RowsRead,
		RowsKept:           s.RowsKept,
		RowsDropped:        s.RowsDropped(),
		InvalidTimestamp:   s.Drops.InvalidTimestamp,
		InvalidCoordinates: s.Drops.InvalidCoordinates,
		Users:              s.Users,
		Alerts:             s.Alerts,
		Severities:         s.Severities,
		DurationMs:         s.Duration().Milliseconds(),
	}
}

func countUsers(events []signin.SignInEvent) int {
	seen := make(map[string]struct{})
	for i := range events {
		seen[events[i].User] = struct{}{}
	}
	return len(seen)
}
