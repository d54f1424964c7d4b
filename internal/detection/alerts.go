// Signin Triage - Sign-in Anomaly Scoring and Triage
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/signintriage

package detection

import "sort"

// FilterAlerts keeps events with RiskScore >= threshold, attaches a triage
// note to each, and orders them by score descending. Equal scores keep their
// input order. scored is not modified.
//
// The threshold is used as given; callers validate it against
// MinThreshold and MaxThreshold.
func FilterAlerts(scored []ScoredEvent, threshold int) []ScoredEvent {
	alerts := make([]ScoredEvent, 0)
	for i := range scored {
		if scored[i].RiskScore < threshold {
			continue
		}
		alert := scored[i]
		alert.TriageNote = TriageNote(&alert.FeaturizedEvent)
		alerts = append(alerts, alert)
	}

	sort.SliceStable(alerts, func(i, j int) bool {
		return alerts[i].RiskScore > alerts[j].RiskScore
	})
	return alerts
}

// CountBySeverity tallies alerts per severity band.
func CountBySeverity(alerts []ScoredEvent) map[Severity]int {
	counts := map[Severity]int{
		SeverityInfo:     0,
		SeverityWarning:  0,
		SeverityCritical: 0,
	}
	for i := range alerts {
		counts[alerts[i].Severity()]++
	}
	return counts
}
