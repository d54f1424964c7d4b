// Signin Triage - Sign-in Anomaly Scoring and Triage
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/signintriage

package api

import (
	"errors"
	"net/http"

	"github.com/tomtom215/signintriage/internal/models"
	"github.com/tomtom215/signintriage/internal/signin"
)

// Common API errors
var (
	// ErrNoUpload indicates a multipart request without a "file" part.
	ErrNoUpload = errors.New("no file part in upload")

	// ErrUnsupportedMedia indicates a request body that is neither
	// multipart nor delimited text.
	ErrUnsupportedMedia = errors.New("unsupported content type")
)

// classifyError maps a batch or upload failure to its HTTP status and
// envelope error.
func classifyError(err error) (int, *models.APIError) {
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		return http.StatusRequestEntityTooLarge, &models.APIError{
			Code:    models.ErrCodePayloadTooLarge,
			Message: "Upload exceeds the maximum allowed size",
			Details: map[string]interface{}{"limit_bytes": maxErr.Limit},
		}
	}

	var schemaErr *signin.SchemaError
	if errors.As(err, &schemaErr) {
		return http.StatusUnprocessableEntity, &models.APIError{
			Code:    models.ErrCodeSchema,
			Message: schemaErr.Error(),
			Details: map[string]interface{}{"missing": schemaErr.Missing},
		}
	}

	switch {
	case errors.Is(err, ErrUnsupportedMedia):
		return http.StatusUnsupportedMediaType, &models.APIError{
			Code:    models.ErrCodeInvalidInput,
			Message: "Send multipart/form-data with a \"file\" field or a text/csv body",
		}
	case errors.Is(err, ErrNoUpload):
		return http.StatusBadRequest, &models.APIError{
			Code:    models.ErrCodeInvalidInput,
			Message: "Multipart upload must include a \"file\" field",
		}
	case errors.Is(err, signin.ErrRead):
		return http.StatusBadRequest, &models.APIError{
			Code:    models.ErrCodeInvalidInput,
			Message: "Upload could not be read as comma-delimited text",
		}
	}

	return http.StatusInternalServerError, &models.APIError{
		Code:    models.ErrCodeInternal,
		Message: "Triage failed",
	}
}
