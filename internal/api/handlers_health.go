// Signin Triage - Sign-in Anomaly Scoring and Triage
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/signintriage

package api

import (
	"net/http"
	"time"

	"github.com/tomtom215/signintriage/internal/models"
)

// HealthLive reports that the process is up.
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status:   "success",
		Data:     h.health("alive"),
		Metadata: newMetadata(r),
	})
}

// HealthReady reports whether the server accepts uploads. The pipeline has
// no external dependencies, so readiness only tracks startup and shutdown.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	statusCode := http.StatusOK
	status := "ready"
	if !h.ready.Load() {
		statusCode = http.StatusServiceUnavailable
		status = "not_ready"
	}

	respondJSON(w, statusCode, &models.APIResponse{
		Status:   status,
		Data:     h.health(status),
		Metadata: newMetadata(r),
	})
}

func (h *Handler) health(status string) models.HealthResponse {
	return models.HealthResponse{
		Status:    status,
		Version:   h.version,
		Uptime:    int64(time.Since(h.startTime).Seconds()),
		Notifiers: h.enabledNotifiers(),
	}
}
