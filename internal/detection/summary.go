// Signin Triage - Sign-in Anomaly Scoring and Triage
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/signintriage

package detection

import (
	"time"
)

// MaxSummaryAlerts caps the alerts carried in a BatchSummary.
const MaxSummaryAlerts = 50

// AlertDigest is the compact form of an alert sent to notifiers.
type AlertDigest struct {
	Timestamp  time.Time  `json:"timestamp"`
	User       string     `json:"user"`
	City       string     `json:"city"`
	Country    string     `json:"country"`
	Device     string     `json:"device"`
	IP         string     `json:"ip"`
	RiskScore  int        `json:"risk_score"`
	Severity   Severity   `json:"severity"`
	Indicators []RuleType `json:"indicators"`
	TriageNote string     `json:"triage_note"`
}

// BatchSummary describes the alerts produced by one batch.
type BatchSummary struct {
	BatchID    string           `json:"batch_id"`
	Threshold  int              `json:"threshold"`
	AlertCount int              `json:"alert_count"`
	Severities map[Severity]int `json:"severities"`
	Alerts     []AlertDigest    `json:"alerts"`
	Truncated  bool             `json:"truncated"`
	CreatedAt  time.Time        `json:"created_at"`
}

// NewBatchSummary builds a summary from alerts already ordered by
// FilterAlerts. Only the first MaxSummaryAlerts are included.
func NewBatchSummary(batchID string, threshold int, alerts []ScoredEvent) *BatchSummary {
	n := len(alerts)
	if n > MaxSummaryAlerts {
		n = MaxSummaryAlerts
	}

	digests := make([]AlertDigest, 0, n)
	for i := 0; i < n; i++ {
		a := &alerts[i]
		rules := make([]RuleType, 0, len(indicators))
		for _, ind := range Fired(&a.FeaturizedEvent) {
			rules = append(rules, ind.Rule)
		}
		digests = append(digests, AlertDigest{
			Timestamp:  a.Timestamp,
			User:       a.User,
			City:       a.City,
			Country:    a.Country,
			Device:     a.Device,
			IP:         a.IP,
			RiskScore:  a.RiskScore,
			Severity:   a.Severity(),
			Indicators: rules,
			TriageNote: a.TriageNote,
		})
	}

	return &BatchSummary{
		BatchID:    batchID,
		Threshold:  threshold,
		AlertCount: len(alerts),
		Severities: CountBySeverity(alerts),
		Alerts:     digests,
		Truncated:  len(alerts) > MaxSummaryAlerts,
		CreatedAt:  time.Now().UTC(),
	}
}
