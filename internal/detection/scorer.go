// Signin Triage - Sign-in Anomaly Scoring and Triage
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/signintriage

package detection

import "github.com/tomtom215/signintriage/internal/signin"

// Score computes the additive risk score of one event (0 to 100).
func Score(f *signin.FeaturizedEvent) int {
	score := 0
	for _, ind := range indicators {
		if ind.fires(f) {
			score += ind.Weight
		}
	}
	return score
}

// ScoreAll scores every event. The result is index-aligned with features.
func ScoreAll(features []signin.FeaturizedEvent) []ScoredEvent {
	out := make([]ScoredEvent, len(features))
	for i := range features {
		out[i] = ScoredEvent{
			FeaturizedEvent: features[i],
			RiskScore:       Score(&features[i]),
		}
	}
	return out
}
