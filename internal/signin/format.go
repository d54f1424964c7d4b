// Signin Triage - Sign-in Anomaly Scoring and Triage
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/signintriage

package signin

import (
	"strconv"
	"time"
)

// TimestampLayout is the export form of every timestamp.
const TimestampLayout = "2006-01-02 15:04:05.999999999-07:00"

// FormatTimestamp renders t in UTC using TimestampLayout.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

// FormatFloat renders f in shortest round-trip form.
func FormatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// FormatFlag renders a 0/1 indicator.
func FormatFlag(b bool) string {
	if b {
		return "1"
	}
	return "0"
}
