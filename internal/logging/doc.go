// Signin Triage - Sign-in Anomaly Scoring and Triage
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/signintriage

// Package logging provides centralized zerolog-based structured logging.
//
// # Quick Start
//
//	logging.Init(logging.Config{
//	    Level:  "info",
//	    Format: "json",
//	})
//
//	logging.Info().Str("file", path).Msg("Batch started")
//	logging.Err(err).Msg("Batch failed")
//
// # Context Correlation
//
// HTTP middleware stores a request ID in the request context, and every
// triage run stores a batch ID. Ctx adds both to each log line:
//
//	ctx = logging.ContextWithBatchID(ctx, logging.GenerateBatchID())
//	logging.Ctx(ctx).Info().Int("alerts", 3).Msg("Batch complete")
//
// # Configuration
//
// Environment Variables (read by internal/config):
//
//	LOG_LEVEL   - trace, debug, info, warn, error (default: info)
//	LOG_FORMAT  - json, console (default: json)
//	LOG_CALLER  - include caller file:line (default: false)
//
// # slog Bridge
//
// NewSlogLogger returns a *slog.Logger that writes through zerolog, used by
// the suture supervisor event hook.
//
// Always terminate log chains with .Msg() or .Send(); an unterminated event
// is never written.
package logging
