// Signin Triage - Sign-in Anomaly Scoring and Triage
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/signintriage

package validation

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// CodeValidation is the API error code for failed validation.
const CodeValidation = "VALIDATION_ERROR"

// ValidationError describes one field that failed validation.
type ValidationError struct {
	field   string
	tag     string
	value   interface{}
	message string
}

// Field returns the field's wire name.
func (e *ValidationError) Field() string { return e.field }

// Tag returns the failing tag as written, so an alias reports its alias name.
func (e *ValidationError) Tag() string { return e.tag }

func (e *ValidationError) Error() string { return e.message }

// RequestValidationError collects the field errors of one struct.
type RequestValidationError struct {
	errors []ValidationError
}

// Errors returns the individual field errors.
func (ve *RequestValidationError) Errors() []ValidationError {
	return ve.errors
}

func (ve *RequestValidationError) Error() string {
	if len(ve.errors) == 0 {
		return "validation failed"
	}
	msgs := make([]string, len(ve.errors))
	for i := range ve.errors {
		msgs[i] = ve.errors[i].message
	}
	return strings.Join(msgs, "; ")
}

// APIError mirrors models.APIError; the api package converts it.
type APIError struct {
	Code    string
	Message string
	Details map[string]interface{}
}

// ToAPIError renders the errors as a VALIDATION_ERROR. A single error keeps
// its message; several are joined as "field: message" and listed under
// details.fields.
func (ve *RequestValidationError) ToAPIError() *APIError {
	switch len(ve.errors) {
	case 0:
		return &APIError{Code: CodeValidation, Message: "Validation failed"}
	case 1:
		e := ve.errors[0]
		return &APIError{
			Code:    CodeValidation,
			Message: e.message,
			Details: map[string]interface{}{
				"field": e.field,
				"tag":   e.tag,
				"value": e.value,
			},
		}
	}

	fields := make([]map[string]interface{}, len(ve.errors))
	msgs := make([]string, len(ve.errors))
	for i, e := range ve.errors {
		fields[i] = map[string]interface{}{
			"field":   e.field,
			"tag":     e.tag,
			"message": e.message,
		}
		msgs[i] = e.field + ": " + e.message
	}
	return &APIError{
		Code:    CodeValidation,
		Message: strings.Join(msgs, "; "),
		Details: map[string]interface{}{"fields": fields},
	}
}

// message builds the operator-facing text for fe. Aliases are reported by
// the underlying tag that failed, e.g. "threshold must be at most 100".
func message(fe validator.FieldError) string {
	field, param := fe.Field(), fe.Param()

	switch fe.ActualTag() {
	case "required":
		return field + " is required"
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, param)
	case "url":
		return field + " must be a valid URL"
	case "http_url":
		return field + " must be a valid http or https URL"
	case "latitude":
		return field + " must be a valid latitude (-90 to 90)"
	case "longitude":
		return field + " must be a valid longitude (-180 to 180)"
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, param)
	case "gte":
		return fmt.Sprintf("%s must be greater than or equal to %s", field, param)
	case "lt":
		return fmt.Sprintf("%s must be less than %s", field, param)
	case "lte":
		return fmt.Sprintf("%s must be less than or equal to %s", field, param)
	case "min":
		return bound(fe, "at least")
	case "max":
		return bound(fe, "at most")
	}
	return fmt.Sprintf("%s failed %s validation", field, fe.ActualTag())
}

// bound words min/max as a length for strings and a value otherwise.
func bound(fe validator.FieldError, rel string) string {
	if fe.Kind() == reflect.String {
		return fmt.Sprintf("%s must be %s %s characters", fe.Field(), rel, fe.Param())
	}
	return fmt.Sprintf("%s must be %s %s", fe.Field(), rel, fe.Param())
}
