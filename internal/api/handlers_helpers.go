// Signin Triage - Sign-in Anomaly Scoring and Triage
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/signintriage

package api

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/signintriage/internal/logging"
	"github.com/tomtom215/signintriage/internal/models"
	"github.com/tomtom215/signintriage/internal/validation"
)

// sanitizeLogValue removes control characters from strings to prevent log injection attacks.
// Uploaded column names end up in error messages, so they pass through here too.
func sanitizeLogValue(s string) string {
	var result strings.Builder
	result.Grow(len(s))
	for _, r := range s {
		if r < 0x20 || r == 0x7F {
			result.WriteString(fmt.Sprintf("\\x%02x", r))
		} else {
			result.WriteRune(r)
		}
	}
	return result.String()
}

// newMetadata stamps response metadata with the request ID, if any.
func newMetadata(r *http.Request) models.Metadata {
	md := models.Metadata{Timestamp: time.Now().UTC()}
	if r != nil {
		md.RequestID = logging.RequestIDFromContext(r.Context())
	}
	return md
}

// respondJSON sends a JSON response with proper headers.
// Triage results are per-upload, so nothing is cacheable.
func respondJSON(w http.ResponseWriter, status int, response *models.APIResponse) {
	data, err := json.Marshal(response)
	if err != nil {
		logging.Error().Err(err).Msg("Failed to marshal JSON response")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("ETag", generateETag(data))

	w.WriteHeader(status)
	if _, err := w.Write(data); err != nil {
		logging.Error().Err(err).Msg("Failed to write JSON response")
	}
}

// generateETag returns an FNV-1a hash of data in hex.
func generateETag(data []byte) string {
	hash := uint32(2166136261)
	for _, b := range data {
		hash ^= uint32(b)
		hash *= 16777619
	}
	return strconv.FormatUint(uint64(hash), 16)
}

// respondError sends an error response
func respondError(w http.ResponseWriter, r *http.Request, status int, code, message string, err error) {
	respondAPIError(w, r, status, &models.APIError{Code: code, Message: message}, err)
}

// respondAPIError sends a prepared APIError. err, when non-nil, is logged
// with the request's correlation fields.
func respondAPIError(w http.ResponseWriter, r *http.Request, status int, apiErr *models.APIError, err error) {
	if err != nil {
		event := logging.Warn()
		if status >= http.StatusInternalServerError {
			event = logging.Error()
		}
		if r != nil {
			event = event.Str("request_id", logging.RequestIDFromContext(r.Context()))
		}
		event.Str("code", sanitizeLogValue(apiErr.Code)).
			Str("error", sanitizeLogValue(err.Error())).
			Int("status", status).
			Msg("API Error")
	}

	respondJSON(w, status, &models.APIResponse{
		Status:   "error",
		Data:     nil,
		Metadata: newMetadata(r),
		Error:    apiErr,
	})
}

// validateRequest validates a request struct and returns an APIError if validation fails.
//
// Example:
//
//	req := triageParams{Threshold: 40, Format: "csv"}
//	if apiErr := validateRequest(&req); apiErr != nil {
//	    respondAPIError(w, r, http.StatusBadRequest, apiErr, nil)
//	    return
//	}
func validateRequest(v interface{}) *models.APIError {
	validationErr := validation.ValidateStruct(v)
	if validationErr == nil {
		return nil
	}

	apiErr := validationErr.ToAPIError()
	return &models.APIError{
		Code:    apiErr.Code,
		Message: apiErr.Message,
		Details: apiErr.Details,
	}
}
