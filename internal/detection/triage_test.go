// Signin Triage - Sign-in Anomaly Scoring and Triage
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/signintriage

package detection

import (
	"testing"

	"github.com/tomtom215/signintriage/internal/signin"
)

func TestTriageNote(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*signin.FeaturizedEvent)
		want   string
	}{
		{
			name: "travel and mfa",
			mutate: func(f *signin.FeaturizedEvent) {
				f.City = "Tokyo"
				f.Country = "Japan"
				f.DistKm = 9735.99
				f.MFAResult = false
			},
			want: "alice login from Tokyo, Japan (9735 km since last). Indicators: impossible travel, MFA not completed. Next: confirm user, review last 3 logins, enforce MFA, check access changes.",
		},
		{
			name: "all indicators in order",
			mutate: func(f *signin.FeaturizedEvent) {
				f.DistKm = 1200.4
				f.NewIP = true
				f.NewDevice = true
				f.MFAResult = false
			},
			want: "alice login from Paris, France (1200 km since last). Indicators: impossible travel, new device, new IP, MFA not completed. Next: confirm user, review last 3 logins, enforce MFA, check access changes.",
		},
		{
			name:   "no indicators",
			mutate: func(*signin.FeaturizedEvent) {},
			want:   "alice login from Paris, France (0 km since last). Indicators: baseline deviation. Next: confirm user, review last 3 logins, enforce MFA, check access changes.",
		},
		{
			name: "distance truncated not rounded",
			mutate: func(f *signin.FeaturizedEvent) {
				f.DistKm = 12.999
				f.NewIP = true
			},
			want: "alice login from Paris, France (12 km since last). Indicators: new IP. Next: confirm user, review last 3 logins, enforce MFA, check access changes.",
		},
		{
			name: "empty city and country",
			mutate: func(f *signin.FeaturizedEvent) {
				f.City = ""
				f.Country = ""
				f.NewDevice = true
			},
			want: "alice login from ,  (0 km since last). Indicators: new device. Next: confirm user, review last 3 logins, enforce MFA, check access changes.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			f := event("alice")
			tt.mutate(&f)
			if got := TriageNote(&f); got != tt.want {
				t.Errorf("TriageNote() =\n%q\nwant\n%q", got, tt.want)
			}
		})
	}
}
