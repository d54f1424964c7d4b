// Signin Triage - Sign-in Anomaly Scoring and Triage
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/signintriage

package signin

import "time"

// ExtractFeatures derives the sequential features for every event.
//
// events must be ordered by timestamp within each user (Normalize does
// this); users need not be contiguous. The result is index-aligned with
// events, and each event only ever looks back at the same user's most
// recent earlier event.
func ExtractFeatures(events []SignInEvent) []FeaturizedEvent {
	out := make([]FeaturizedEvent, len(events))
	last := make(map[string]int, 64)

	for i := range events {
		ev := events[i]
		f := FeaturizedEvent{
			SignInEvent: ev,
			Hour:        ev.Timestamp.UTC().Hour(),
			IsWeekend:   isWeekend(ev.Timestamp),
		}

		if j, ok := last[ev.User]; ok {
			p := &events[j]
			f.Prev = &Previous{
				Latitude:  p.Latitude,
				Longitude: p.Longitude,
				Timestamp: p.Timestamp,
				IP:        p.IP,
				Device:    p.Device,
				Country:   p.Country,
			}
			f.DistKm = DistanceKm(p.Latitude, p.Longitude, ev.Latitude, ev.Longitude)
			f.MinsSinceLast = ev.Timestamp.Sub(p.Timestamp).Minutes()
		}

		f.NewIP = f.Prev == nil || f.Prev.IP != ev.IP
		f.NewDevice = f.Prev == nil || f.Prev.Device != ev.Device
		f.NewCountry = f.Prev == nil || f.Prev.Country != ev.Country

		out[i] = f
		last[ev.User] = i
	}
	return out
}

func isWeekend(t time.Time) bool {
	switch t.UTC().Weekday() {
	case time.Saturday, time.Sunday:
		return true
	}
	return false
}
