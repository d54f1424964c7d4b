// Signin Triage - Sign-in Anomaly Scoring and Triage
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/signintriage

package api

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strconv"
	"strings"

	"github.com/tomtom215/signintriage/internal/export"
	"github.com/tomtom215/signintriage/internal/logging"
	"github.com/tomtom215/signintriage/internal/models"
	"github.com/tomtom215/signintriage/internal/pipeline"
	"github.com/tomtom215/signintriage/internal/signin"
)

// uploadField is the multipart form field holding the sign-in table.
const uploadField = "file"

// triageParams are the query parameters of the triage endpoints.
type triageParams struct {
	Threshold int    `query:"threshold" validate:"threshold"`
	Format    string `query:"format" validate:"omitempty,exportformat"`
	Layout    string `query:"layout" validate:"omitempty,oneof=full view"`
}

// parseParams reads and validates the query string. Defaults come from
// the triage configuration.
func (h *Handler) parseParams(r *http.Request) (triageParams, *models.APIError) {
	q := r.URL.Query()
	params := triageParams{
		Threshold: h.triage.DefaultThreshold,
		Format:    strings.ToLower(strings.TrimSpace(q.Get("format"))),
		Layout:    strings.ToLower(strings.TrimSpace(q.Get("layout"))),
	}

	if raw := strings.TrimSpace(q.Get("threshold")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return params, &models.APIError{
				Code:    models.ErrCodeValidation,
				Message: "threshold must be an integer between 0 and 100",
				Details: map[string]interface{}{"field": "threshold", "value": sanitizeLogValue(raw)},
			}
		}
		params.Threshold = n
	}
	if params.Format == "" {
		params.Format = h.triage.ExportFormat
	}
	if params.Layout == "" {
		params.Layout = string(export.LayoutFull)
	}

	if apiErr := validateRequest(&params); apiErr != nil {
		return params, apiErr
	}
	return params, nil
}

// openUpload returns the uploaded table. The body is capped at the
// configured upload size; overruns surface as *http.MaxBytesError while
// the table is read.
func (h *Handler) openUpload(w http.ResponseWriter, r *http.Request) (io.Reader, error) {
	r.Body = http.MaxBytesReader(w, r.Body, h.triage.MaxUploadBytes)

	ct := r.Header.Get("Content-Type")
	if ct == "" {
		return r.Body, nil
	}
	mediaType, _, err := mime.ParseMediaType(ct)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedMedia, err)
	}

	switch mediaType {
	case "text/csv", "text/plain", "application/csv", "application/octet-stream":
		return r.Body, nil
	case "multipart/form-data":
		return findFilePart(r)
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupportedMedia, mediaType)
}

// findFilePart streams multipart parts until the upload field, so the
// table is never buffered to disk.
func findFilePart(r *http.Request) (io.Reader, error) {
	mr, err := r.MultipartReader()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", signin.ErrRead, err)
	}
	for {
		part, err := mr.NextPart()
		if errors.Is(err, io.EOF) {
			return nil, ErrNoUpload
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %w", signin.ErrRead, err)
		}
		if part.FormName() == uploadField {
			return part, nil
		}
	}
}

// runBatch validates parameters, reads the upload, and runs the pipeline.
// It writes the error response itself and returns nil on failure.
func (h *Handler) runBatch(w http.ResponseWriter, r *http.Request) (*pipeline.Result, triageParams) {
	params, apiErr := h.parseParams(r)
	if apiErr != nil {
		respondAPIError(w, r, http.StatusBadRequest, apiErr, nil)
		return nil, params
	}

	body, err := h.openUpload(w, r)
	if err != nil {
		status, apiErr := classifyError(err)
		respondAPIError(w, r, status, apiErr, err)
		return nil, params
	}

	res, err := pipeline.Run(r.Context(), body, params.Threshold)
	if err != nil {
		status, apiErr := classifyError(err)
		respondAPIError(w, r, status, apiErr, err)
		return nil, params
	}

	h.notifyAsync(r.Context(), res.Summary())
	return res, params
}

// Triage scores an uploaded sign-in table and returns the alert view.
//
// POST /api/v1/triage?threshold=40
//
// The body is either multipart/form-data with a "file" field or the raw
// comma-delimited table. Alerts are ordered by risk score, highest first.
func (h *Handler) Triage(w http.ResponseWriter, r *http.Request) {
	res, _ := h.runBatch(w, r)
	if res == nil {
		return
	}

	md := newMetadata(r)
	md.BatchID = res.Stats.BatchID
	md.ProcessingTimeMS = res.Stats.Duration().Milliseconds()

	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data: models.TriageResponse{
			Summary: res.Stats.ToSummary(),
			Alerts:  export.ViewRecords(res.Alerts),
		},
		Metadata: md,
	})
}

// TriageExport scores an uploaded sign-in table and returns the alerts as
// a file download.
//
// POST /api/v1/triage/export?threshold=40&format=csv|json|cef&layout=full|view
func (h *Handler) TriageExport(w http.ResponseWriter, r *http.Request) {
	res, params := h.runBatch(w, r)
	if res == nil {
		return
	}

	format, err := export.ParseFormat(params.Format)
	if err != nil {
		respondError(w, r, http.StatusBadRequest, models.ErrCodeValidation, err.Error(), nil)
		return
	}
	exp, err := export.New(format, export.Layout(params.Layout))
	if err != nil {
		respondError(w, r, http.StatusBadRequest, models.ErrCodeValidation, err.Error(), nil)
		return
	}

	var buf bytes.Buffer
	if err := exp.Export(&buf, res.Document()); err != nil {
		respondError(w, r, http.StatusInternalServerError, models.ErrCodeInternal, "Failed to export alerts", err)
		return
	}

	w.Header().Set("Content-Type", exp.ContentType())
	w.Header().Set("Content-Disposition", "attachment; filename=\""+exp.FileName()+"\"")
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("X-Batch-ID", res.Stats.BatchID)
	w.Header().Set("X-Alert-Count", strconv.Itoa(len(res.Alerts)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(buf.Bytes()); err != nil {
		// Headers are already sent.
		logging.Ctx(r.Context()).Warn().Err(err).Msg("Failed to write export")
	}
}
