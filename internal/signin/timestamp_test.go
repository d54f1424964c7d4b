// Signin Triage - Sign-in Anomaly Scoring and Triage
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/signintriage

package signin

import (
	"testing"
	"time"
)

func TestParseTimestamp(t *testing.T) {
	t.Parallel()

	base := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		input  string
		want   time.Time
		wantOK bool
	}{
		{"rfc3339 utc", "2024-03-01T10:00:00Z", base, true},
		{"rfc3339 offset", "2024-03-01T12:00:00+02:00", base, true},
		{"rfc3339 fractional", "2024-03-01T10:00:00.5Z", base.Add(500 * time.Millisecond), true},
		{"space separated offset", "2024-03-01 10:00:00+00:00", base, true},
		{"space separated fractional offset", "2024-03-01 10:00:00.25+00:00", base.Add(250 * time.Millisecond), true},
		{"compact offset", "2024-03-01T05:00:00-0500", base, true},
		{"naive", "2024-03-01 10:00:00", base, true},
		{"naive T", "2024-03-01T10:00:00", base, true},
		{"naive minutes", "2024-03-01 10:00", base, true},
		{"date only", "2024-03-01", time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), true},
		{"slash date", "2024/03/01 10:00:00", base, true},
		{"us date", "03/01/2024 10:00", base, true},
		{"surrounding spaces", "  2024-03-01 10:00:00  ", base, true},
		{"empty", "", time.Time{}, false},
		{"garbage", "yesterday", time.Time{}, false},
		{"invalid month", "2024-13-01 10:00:00", time.Time{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, ok := ParseTimestamp(tt.input)
			if ok != tt.wantOK {
				t.Fatalf("ParseTimestamp(%q) ok = %v, want %v", tt.input, ok, tt.wantOK)
			}
			if !ok {
				return
			}
			if !got.Equal(tt.want) {
				t.Errorf("ParseTimestamp(%q) = %v, want %v", tt.input, got, tt.want)
			}
			if got.Location() != time.UTC {
				t.Errorf("ParseTimestamp(%q) location = %v, want UTC", tt.input, got.Location())
			}
		})
	}
}

func TestFormatTimestampRoundTrip(t *testing.T) {
	t.Parallel()

	ts := time.Date(2024, 3, 1, 10, 0, 0, 123000000, time.UTC)
	s := FormatTimestamp(ts)
	if s != "2024-03-01 10:00:00.123+00:00" {
		t.Errorf("FormatTimestamp() = %q", s)
	}
	back, ok := ParseTimestamp(s)
	if !ok || !back.Equal(ts) {
		t.Errorf("round trip = %v, %v; want %v", back, ok, ts)
	}

	whole := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	if got := FormatTimestamp(whole); got != "2024-03-01 10:00:00+00:00" {
		t.Errorf("FormatTimestamp(whole) = %q", got)
	}
}
