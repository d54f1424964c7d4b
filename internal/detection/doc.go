// Signin Triage - Sign-in Anomaly Scoring and Triage
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/signintriage

// Package detection scores featurized sign-in events, writes analyst triage
// notes, and selects the events that cross the alert threshold.
//
// Detection Architecture:
//
//	FeaturizedEvent -> Score -> FilterAlerts -> []ScoredEvent (with notes)
//	                                  |
//	                                  v
//	                        BatchSummary -> Notifier (webhook)
//
// Scoring is a fixed additive model over four indicators, evaluated in this
// order everywhere they appear:
//
//   - Impossible Travel: more than 800 km from the user's previous sign-in (40)
//   - New Device: device differs from the previous sign-in (20)
//   - New IP: IP differs from the previous sign-in (15)
//   - MFA Not Completed: mfa_result is 0 (25)
//
// Scores therefore range from 0 to 100. Severity bands (info, warning,
// critical) are derived from the score for reporting only and never affect
// scoring or filtering.
//
// Notifiers are invoked by callers after a batch completes; the scoring
// functions themselves perform no I/O.
package detection
