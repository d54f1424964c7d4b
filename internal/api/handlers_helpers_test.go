// Signin Triage - Sign-in Anomaly Scoring and Triage
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/signintriage

package api

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/goccy/go-json"

	"github.com/tomtom215/signintriage/internal/models"
	"github.com/tomtom215/signintriage/internal/signin"
)

func TestSanitizeLogValue(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  string
	}{
		{"device", "device"},
		{"line1\nline2", "line1\\x0aline2"},
		{"tab\there", "tab\\x09here"},
		{"del\x7f", "del\\x7f"},
		{"Zürich", "Zürich"},
	}
	for _, tt := range tests {
		if got := sanitizeLogValue(tt.input); got != tt.want {
			t.Errorf("sanitizeLogValue(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestGenerateETag(t *testing.T) {
	t.Parallel()

	a := generateETag([]byte(`{"status":"success"}`))
	b := generateETag([]byte(`{"status":"success"}`))
	c := generateETag([]byte(`{"status":"error"}`))
	if a != b {
		t.Error("same content should produce same ETag")
	}
	if a == c {
		t.Error("different content should produce different ETag")
	}
	if generateETag(nil) != "811c9dc5" {
		t.Errorf("empty ETag = %q, want FNV offset basis", generateETag(nil))
	}
}

func TestRespondJSON(t *testing.T) {
	t.Parallel()

	w := httptest.NewRecorder()
	respondJSON(w, http.StatusOK, &models.APIResponse{Status: "success", Data: map[string]int{"alerts": 1}})

	if w.Code != http.StatusOK {
		t.Errorf("status = %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q", ct)
	}
	if cc := w.Header().Get("Cache-Control"); cc != "no-store" {
		t.Errorf("Cache-Control = %q, want no-store", cc)
	}
	if w.Header().Get("ETag") == "" {
		t.Error("missing ETag")
	}

	var decoded models.APIResponse
	if err := json.Unmarshal(w.Body.Bytes(), &decoded); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if decoded.Status != "success" {
		t.Errorf("status = %q", decoded.Status)
	}
}

func TestClassifyError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{
			name:       "schema",
			err:        &signin.SchemaError{Missing: []string{"device", "ip"}},
			wantStatus: http.StatusUnprocessableEntity,
			wantCode:   models.ErrCodeSchema,
		},
		{
			name:       "wrapped schema",
			err:        fmt.Errorf("batch: %w", &signin.SchemaError{Missing: []string{"ip"}}),
			wantStatus: http.StatusUnprocessableEntity,
			wantCode:   models.ErrCodeSchema,
		},
		{
			name:       "read",
			err:        fmt.Errorf("%w: bare quote", signin.ErrRead),
			wantStatus: http.StatusBadRequest,
			wantCode:   models.ErrCodeInvalidInput,
		},
		{
			name:       "too large inside read",
			err:        fmt.Errorf("%w: %w", signin.ErrRead, &http.MaxBytesError{Limit: 10}),
			wantStatus: http.StatusRequestEntityTooLarge,
			wantCode:   models.ErrCodePayloadTooLarge,
		},
		{
			name:       "no upload",
			err:        ErrNoUpload,
			wantStatus: http.StatusBadRequest,
			wantCode:   models.ErrCodeInvalidInput,
		},
		{
			name:       "media type",
			err:        fmt.Errorf("%w: application/xml", ErrUnsupportedMedia),
			wantStatus: http.StatusUnsupportedMediaType,
			wantCode:   models.ErrCodeInvalidInput,
		},
		{
			name:       "unknown",
			err:        errors.New("boom"),
			wantStatus: http.StatusInternalServerError,
			wantCode:   models.ErrCodeInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			status, apiErr := classifyError(tt.err)
			if status != tt.wantStatus {
				t.Errorf("status = %d, want %d", status, tt.wantStatus)
			}
			if apiErr.Code != tt.wantCode {
				t.Errorf("code = %q, want %q", apiErr.Code, tt.wantCode)
			}
		})
	}
}
