// Signin Triage - Sign-in Anomaly Scoring and Triage
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/signintriage

package detection

import (
	"fmt"
	"strings"

	"github.com/tomtom215/signintriage/internal/signin"
)

// baselinePhrase is used when no indicator fired.
const baselinePhrase = "baseline deviation"

const nextSteps = "confirm user, review last 3 logins, enforce MFA, check access changes"

// TriageNote renders the analyst note for one event. The distance is
// truncated to whole kilometers.
func TriageNote(f *signin.FeaturizedEvent) string {
	var phrases []string
	for _, ind := range Fired(f) {
		phrases = append(phrases, ind.Phrase)
	}
	reasons := baselinePhrase
	if len(phrases) > 0 {
		reasons = strings.Join(phrases, ", ")
	}

	return fmt.Sprintf("%s login from %s, %s (%d km since last). Indicators: %s. Next: %s.",
		f.User, f.City, f.Country, int(f.DistKm), reasons, nextSteps)
}
