// Signin Triage - Sign-in Anomaly Scoring and Triage
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/signintriage

package detection

import (
	"context"

	"github.com/tomtom215/signintriage/internal/logging"
	"github.com/tomtom215/signintriage/internal/metrics"
)

// NotifyAll sends summary to every enabled notifier. Failures are logged
// and counted but never returned; a batch is complete once it is scored.
// Summaries with no alerts are not sent. It returns the number of
// notifiers that accepted the summary.
func NotifyAll(ctx context.Context, notifiers []Notifier, summary *BatchSummary) int {
	if summary == nil || summary.AlertCount == 0 {
		return 0
	}

	delivered := 0
	for _, n := range notifiers {
		if n == nil || !n.Enabled() {
			continue
		}
		if err := n.Send(ctx, summary); err != nil {
			metrics.RecordNotification(n.Name(), "failure")
			logging.CtxErr(ctx, err).
				Str("notifier", n.Name()).
				Str("batch_id", summary.BatchID).
				Msg("Failed to deliver batch summary")
			continue
		}
		metrics.RecordNotification(n.Name(), "success")
		delivered++
	}
	return delivered
}
