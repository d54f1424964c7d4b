// Signin Triage - Sign-in Anomaly Scoring and Triage
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/signintriage

// Package signin turns a raw table of authentication events into typed,
// per-user sequential feature records.
//
// Pipeline Position:
//
//	CSV bytes -> ReadTable -> Normalize -> ExtractFeatures -> detection
//	                |            |
//	                v            v
//	           ErrRead     SchemaError / DropStats
//
// Normalization lower-cases and trims column names, requires the canonical
// column set, parses timestamps to UTC, drops rows whose timestamp or
// coordinates are unusable, and orders the surviving events by
// (user, timestamp) with ties kept in input order.
//
// Feature extraction looks back exactly one event per user. A user's first
// event has no previous event (Prev is nil), zero distance and zero elapsed
// minutes, and is always novel on IP, device and country.
//
// Distances are ellipsoidal (WGS-84) geodesic kilometers.
package signin
