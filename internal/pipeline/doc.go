// Signin Triage - Sign-in Anomaly Scoring and Triage
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/signintriage

/*
Package pipeline runs one sign-in batch end to end.

	reader -> signin.Normalize -> signin.ExtractFeatures
	       -> detection.ScoreAll -> detection.FilterAlerts

Each run is independent: it owns its input and shares no state with other
runs, so callers may execute batches concurrently. A run tags its context
with a fresh batch ID, records Prometheus batch metrics, and logs a single
summary line.

Usage:

	res, err := pipeline.Run(ctx, file, detection.DefaultThreshold)
	if err != nil {
	    var se *signin.SchemaError
	    if errors.As(err, &se) {
	        // missing columns: se.Missing
	    }
	    return err
	}
	exp, _ := export.New(export.FormatCSV, export.LayoutFull)
	_ = exp.Export(w, res.Document())
*/
package pipeline
