// Signin Triage - Sign-in Anomaly Scoring and Triage
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/signintriage

package validation

import (
	"errors"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// Tag aliases shared by config, query and CLI structs.
const (
	// TagThreshold bounds an alert threshold to the 0-100 risk score range.
	TagThreshold = "threshold"

	// TagExportFormat accepts the supported export encodings.
	TagExportFormat = "exportformat"
)

var aliases = map[string]string{
	TagThreshold:    "min=0,max=100",
	TagExportFormat: "oneof=csv json cef",
}

// fieldNameTags are consulted in order to name a field in messages, so
// errors say "threshold" rather than "Threshold".
var fieldNameTags = []string{"query", "json", "koanf"}

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// GetValidator returns the shared validator. It is safe for concurrent use.
func GetValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		for alias, tags := range aliases {
			validate.RegisterAlias(alias, tags)
		}
		validate.RegisterTagNameFunc(fieldName)
	})
	return validate
}

func fieldName(fld reflect.StructField) string {
	for _, tag := range fieldNameTags {
		name, _, _ := strings.Cut(fld.Tag.Get(tag), ",")
		switch name {
		case "":
			continue
		case "-":
			return "-"
		default:
			return name
		}
	}
	return fld.Name
}

// ValidateStruct validates s against its `validate` tags. It returns nil
// when s is valid.
//
//	if verr := validation.ValidateStruct(&params); verr != nil {
//	    respondAPIError(w, r, http.StatusBadRequest, verr.ToAPIError(), verr)
//	    return
//	}
func ValidateStruct(s interface{}) *RequestValidationError {
	err := GetValidator().Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		// InvalidValidationError: s was not a struct.
		return &RequestValidationError{errors: []ValidationError{{
			field:   "unknown",
			tag:     "unknown",
			message: err.Error(),
		}}}
	}

	out := &RequestValidationError{errors: make([]ValidationError, 0, len(fieldErrs))}
	for _, fe := range fieldErrs {
		out.errors = append(out.errors, ValidationError{
			field:   fe.Field(),
			tag:     fe.Tag(),
			value:   fe.Value(),
			message: message(fe),
		})
	}
	return out
}
