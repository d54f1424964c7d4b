// Signin Triage - Sign-in Anomaly Scoring and Triage
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/signintriage

package api

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/tomtom215/signintriage/internal/config"
	"github.com/tomtom215/signintriage/internal/detection"
	"github.com/tomtom215/signintriage/internal/logging"
)

// notifyTimeout bounds one background delivery of a batch summary.
const notifyTimeout = 30 * time.Second

// Handler contains dependencies for API handlers
//
// Handler methods are split across files:
//   - handlers.go: Handler struct, constructor, notification fan-out (this file)
//   - handlers_helpers.go: JSON envelope and validation helpers
//   - handlers_health.go: liveness and readiness probes
//   - handlers_triage.go: upload → alerts and upload → export download
type Handler struct {
	triage    config.TriageConfig
	notifiers []detection.Notifier
	version   string
	startTime time.Time
	ready     atomic.Bool

	notifyWG sync.WaitGroup
}

// NewHandler creates a new API handler.
//
// Dependencies:
//   - triage: default threshold, upload limit, default export format
//   - notifiers: optional batch summary destinations (may be empty)
//
// The handler starts not ready; call SetReady(true) once the listener is up.
func NewHandler(triage config.TriageConfig, notifiers []detection.Notifier, version string) *Handler {
	return &Handler{
		triage:    triage,
		notifiers: notifiers,
		version:   version,
		startTime: time.Now(),
	}
}

// SetReady flips the readiness probe.
func (h *Handler) SetReady(ready bool) {
	h.ready.Store(ready)
}

// enabledNotifiers counts notifiers that would receive a summary.
func (h *Handler) enabledNotifiers() int {
	n := 0
	for _, nt := range h.notifiers {
		if nt != nil && nt.Enabled() {
			n++
		}
	}
	return n
}

// notifyAsync delivers summary in the background so a slow webhook never
// holds up the response. The request context's values are kept for log
// correlation, its cancellation is not.
func (h *Handler) notifyAsync(ctx context.Context, summary *detection.BatchSummary) {
	if summary == nil || summary.AlertCount == 0 || h.enabledNotifiers() == 0 {
		return
	}

	h.notifyWG.Add(1)
	go func() {
		defer h.notifyWG.Done()

		nctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), notifyTimeout)
		defer cancel()

		delivered := detection.NotifyAll(nctx, h.notifiers, summary)
		logging.Ctx(nctx).Debug().
			Str("batch_id", summary.BatchID).
			Int("delivered", delivered).
			Msg("Batch summary notifications finished")
	}()
}

// WaitNotifications blocks until background notifications have finished.
// Called during shutdown.
func (h *Handler) WaitNotifications() {
	h.notifyWG.Wait()
}
