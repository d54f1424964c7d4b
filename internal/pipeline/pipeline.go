// Signin Triage - Sign-in Anomaly Scoring and Triage
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/signintriage

package pipeline

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/tomtom215/signintriage/internal/detection"
	"github.com/tomtom215/signintriage/internal/export"
	"github.com/tomtom215/signintriage/internal/logging"
	"github.com/tomtom215/signintriage/internal/metrics"
	"github.com/tomtom215/signintriage/internal/signin"
)

// Result is the output of one run.
type Result struct {
	Schema *signin.Schema

	// Featurized holds every kept row in (user, timestamp) order.
	Featurized []signin.FeaturizedEvent

	// Scored parallels Featurized.
	Scored []detection.ScoredEvent

	// Alerts holds the scored rows at or above the threshold, highest first.
	Alerts []detection.ScoredEvent

	Dropped []signin.DroppedRow
	Stats   Stats
}

// Document returns the alert table for export.
func (r *Result) Document() *export.Document {
	return &export.Document{Schema: r.Schema, Alerts: r.Alerts}
}

// Summary returns the notifier summary for the alerts of r.
func (r *Result) Summary() *detection.BatchSummary {
	return detection.NewBatchSummary(r.Stats.BatchID, r.Stats.Threshold, r.Alerts)
}

// Run reads a delimited sign-in table from r and triages it. Errors are
// signin.ErrRead for malformed input and *signin.SchemaError for missing
// columns.
func Run(ctx context.Context, r io.Reader, threshold int) (*Result, error) {
	ctx, stats := begin(ctx, threshold)

	raw, err := signin.ReadTable(r)
	if err != nil {
		return nil, fail(ctx, stats, err)
	}
	return run(ctx, stats, raw)
}

// RunTable triages an already-read table.
func RunTable(ctx context.Context, raw *signin.RawTable, threshold int) (*Result, error) {
	ctx, stats := begin(ctx, threshold)
	return run(ctx, stats, raw)
}

func begin(ctx context.Context, threshold int) (context.Context, *Stats) {
	batchID := logging.GenerateBatchID()
	ctx = logging.ContextWithBatchID(ctx, batchID)
	return ctx, &Stats{
		BatchID:   batchID,
		Threshold: threshold,
		StartTime: time.Now(),
	}
}

func run(ctx context.Context, stats *Stats, raw *signin.RawTable) (*Result, error) {
	batch, err := signin.Normalize(ctx, raw)
	if err != nil {
		return nil, fail(ctx, stats, err)
	}

	featurized := signin.ExtractFeatures(batch.Events)
	scored := detection.ScoreAll(featurized)
	alerts := detection.FilterAlerts(scored, stats.Threshold)

	stats.RowsRead = batch.RowsRead
	stats.RowsKept = len(batch.Events)
	stats.Drops = batch.Drops
	stats.Users = countUsers(batch.Events)
	stats.Alerts = len(alerts)
	stats.Severities = detection.CountBySeverity(alerts)
	stats.EndTime = time.Now()

	record(stats, metrics.OutcomeSuccess, scored)

	logging.Ctx(ctx).Info().
		Int("rows_read", stats.RowsRead).
		Int("rows_kept", stats.RowsKept).
		Int("rows_dropped", stats.RowsDropped()).
		Int("users", stats.Users).
		Int("alerts", stats.Alerts).
		Int("threshold", stats.Threshold).
		Int64("duration_ms", stats.Duration().Milliseconds()).
		Msg("Triage batch completed")

	return &Result{
		Schema:     batch.Schema,
		Featurized: featurized,
		Scored:     scored,
		Alerts:     alerts,
		Dropped:    batch.Dropped,
		Stats:      *stats,
	}, nil
}

func fail(ctx context.Context, stats *Stats, err error) error {
	stats.EndTime = time.Now()

	outcome := metrics.OutcomeReadError
	var se *signin.SchemaError
	if errors.As(err, &se) {
		outcome = metrics.OutcomeSchemaError
	}
	record(stats, outcome, nil)

	logging.CtxErr(ctx, err).
		Str("outcome", outcome).
		Int64("duration_ms", stats.Duration().Milliseconds()).
		Msg("Triage batch failed")
	return err
}

func record(stats *Stats, outcome string, scored []detection.ScoredEvent) {
	obs := metrics.BatchObservation{
		Outcome:  outcome,
		Duration: stats.Duration(),
		RowsRead: stats.RowsRead,
		Dropped: map[string]int{
			string(signin.DropInvalidTimestamp):   stats.Drops.InvalidTimestamp,
			string(signin.DropInvalidCoordinates): stats.Drops.InvalidCoordinates,
		},
	}
	if len(stats.Severities) > 0 {
		obs.Alerts = make(map[string]int, len(stats.Severities))
		for sev, n := range stats.Severities {
			obs.Alerts[string(sev)] = n
		}
	}
	if len(scored) > 0 {
		obs.Scores = make([]int, len(scored))
		for i := range scored {
			obs.Scores[i] = scored[i].RiskScore
		}
	}
	metrics.RecordBatch(obs)
}
