// Signin Triage - Sign-in Anomaly Scoring and Triage
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/signintriage

// Package validation provides struct validation using go-playground/validator v10.
//
// The package wraps a thread-safe singleton validator with two tag aliases
// used across the service and user-facing error messages that match the API
// VALIDATION_ERROR format.
//
// # Aliases
//
//   - threshold: min=0,max=100 (alert threshold on the risk score scale)
//   - exportformat: oneof=csv json cef
//
// # Field Names
//
// Errors name fields by their query, json, or koanf tag (first one set), so
// an API caller sees "threshold must be at most 100" rather than the Go
// field name.
//
// # Usage
//
//	type TriageRequest struct {
//	    Threshold int    `query:"threshold" validate:"threshold"`
//	    Format    string `query:"format" validate:"omitempty,exportformat"`
//	}
//
//	if verr := validation.ValidateStruct(&req); verr != nil {
//	    apiErr := verr.ToAPIError()
//	    respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
//	    return
//	}
//
// # Thread Safety
//
// GetValidator and ValidateStruct are safe for concurrent use. The validator
// caches struct reflection information after the first call per type.
package validation
