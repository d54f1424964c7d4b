// Signin Triage - Sign-in Anomaly Scoring and Triage
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/signintriage

/*
Package models defines the JSON shapes returned by the HTTP API.

Every endpoint except the export download and /metrics answers with an
APIResponse envelope. Successful triage requests carry a TriageResponse in
Data; failures carry an APIError with one of the ErrCode constants.

The core record types (SignInEvent, FeaturizedEvent, ScoredEvent) live in
internal/signin and internal/detection; the view and full alert records
used for JSON output live in internal/export.
*/
package models
