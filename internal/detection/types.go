// Signin Triage - Sign-in Anomaly Scoring and Triage
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/signintriage

package detection

import (
	"context"

	"github.com/tomtom215/signintriage/internal/signin"
)

// RuleType identifies a risk indicator.
type RuleType string

const (
	// RuleTypeImpossibleTravel fires when the user moved more than ImpossibleTravelKm.
	RuleTypeImpossibleTravel RuleType = "impossible_travel"

	// RuleTypeNewDevice fires when the device differs from the previous sign-in.
	RuleTypeNewDevice RuleType = "new_device"

	// RuleTypeNewIP fires when the IP differs from the previous sign-in.
	RuleTypeNewIP RuleType = "new_ip"

	// RuleTypeMFANotCompleted fires when MFA was not completed.
	RuleTypeMFANotCompleted RuleType = "mfa_not_completed"

	// RuleTypeBaselineDeviation labels an alert where no indicator fired.
	RuleTypeBaselineDeviation RuleType = "baseline_deviation"
)

// Severity indicates the severity level of an alert.
type Severity string

const (
	SeverityInfo     Severity = "info"
	SeverityWarning  Severity = "warning"
	SeverityCritical Severity = "critical"
)

// Severity band lower bounds on risk score.
const (
	CriticalScore = 75
	WarningScore  = 40
)

// SeverityForScore maps a risk score to its severity band.
func SeverityForScore(score int) Severity {
	switch {
	case score >= CriticalScore:
		return SeverityCritical
	case score >= WarningScore:
		return SeverityWarning
	default:
		return SeverityInfo
	}
}

// Threshold bounds and default for alert selection.
const (
	MinThreshold     = 0
	MaxThreshold     = 100
	DefaultThreshold = 40
)

// ScoredEvent is a featurized event with its risk score. TriageNote is set
// only on events returned by FilterAlerts.
type ScoredEvent struct {
	signin.FeaturizedEvent

	RiskScore  int
	TriageNote string
}

// Severity returns the severity band of the event's score.
func (s *ScoredEvent) Severity() Severity {
	return SeverityForScore(s.RiskScore)
}

// Notifier delivers batch summaries to an external system.
type Notifier interface {
	// Name returns the notifier name for logging.
	Name() string

	// Enabled returns whether this notifier is active.
	Enabled() bool

	// Send delivers a batch summary.
	Send(ctx context.Context, summary *BatchSummary) error
}
