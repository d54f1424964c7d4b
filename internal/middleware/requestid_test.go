// Signin Triage - Sign-in Anomaly Scoring and Triage
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/signintriage

package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/tomtom215/signintriage/internal/logging"
)

func TestRequestID(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		incoming   string
		wantReused bool
	}{
		{"generates new ID", "", false},
		{"preserves upstream ID", "proxy-abc-123", true},
		{"replaces oversized ID", strings.Repeat("x", maxRequestIDLength+1), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var ctxID, corrID string
			handler := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				ctxID = logging.RequestIDFromContext(r.Context())
				corrID = logging.CorrelationIDFromContext(r.Context())
			}))

			req := httptest.NewRequest(http.MethodPost, "/api/v1/triage", nil)
			if tt.incoming != "" {
				req.Header.Set(RequestIDHeader, tt.incoming)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			respID := rec.Header().Get(RequestIDHeader)
			if respID != ctxID {
				t.Errorf("context ID %q != response header %q", ctxID, respID)
			}
			if corrID == "" {
				t.Error("expected correlation ID in context")
			}

			if tt.wantReused {
				if respID != tt.incoming {
					t.Errorf("X-Request-ID = %q, want %q", respID, tt.incoming)
				}
				return
			}
			if _, err := uuid.Parse(respID); err != nil {
				t.Errorf("generated X-Request-ID %q is not a UUID: %v", respID, err)
			}
		})
	}
}
