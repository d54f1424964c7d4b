// Signin Triage - Sign-in Anomaly Scoring and Triage
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/signintriage

package logging

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()

	if cfg.Level != "info" {
		t.Errorf("expected default level 'info', got '%s'", cfg.Level)
	}
	if cfg.Format != "json" {
		t.Errorf("expected default format 'json', got '%s'", cfg.Format)
	}
	if cfg.Caller {
		t.Error("expected default caller to be false")
	}
	if !cfg.Timestamp {
		t.Error("expected default timestamp to be true")
	}
}

func TestInit(t *testing.T) {
	var buf bytes.Buffer
	Init(Config{Level: "debug", Format: "json", Timestamp: true, Output: &buf})
	defer Init(DefaultConfig())

	Info().Str("file", "signins.csv").Msg("test message")

	output := buf.String()
	if !strings.Contains(output, "test message") {
		t.Errorf("expected output to contain 'test message', got: %s", output)
	}
	if !strings.Contains(output, `"level":"info"`) {
		t.Errorf("expected output to contain level, got: %s", output)
	}
	if !strings.Contains(output, `"file":"signins.csv"`) {
		t.Errorf("expected output to contain field, got: %s", output)
	}
}

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input    string
		expected zerolog.Level
	}{
		{"trace", zerolog.TraceLevel},
		{"debug", zerolog.DebugLevel},
		{"info", zerolog.InfoLevel},
		{"warn", zerolog.WarnLevel},
		{"warning", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"fatal", zerolog.FatalLevel},
		{"disabled", zerolog.Disabled},
		{"DEBUG", zerolog.DebugLevel},
		{"nonsense", zerolog.InfoLevel},
		{"", zerolog.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()
			if got := parseLevel(tt.input); got != tt.expected {
				t.Errorf("parseLevel(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestLogLevels(t *testing.T) {
	var buf bytes.Buffer
	Init(Config{Level: "warn", Output: &buf})
	defer Init(DefaultConfig())

	Debug().Msg("debug-line")
	Info().Msg("info-line")
	Warn().Msg("warn-line")
	Error().Msg("error-line")

	out := buf.String()
	if strings.Contains(out, "debug-line") || strings.Contains(out, "info-line") {
		t.Errorf("lines below warn should be suppressed: %s", out)
	}
	if !strings.Contains(out, "warn-line") || !strings.Contains(out, "error-line") {
		t.Errorf("warn and error lines missing: %s", out)
	}
}

func TestConsoleFormat(t *testing.T) {
	var buf bytes.Buffer
	Init(Config{Level: "info", Format: "console", Output: &buf})
	defer Init(DefaultConfig())

	Info().Msg("console message")

	out := buf.String()
	if !strings.Contains(out, "console message") {
		t.Errorf("expected message in console output: %s", out)
	}
	if strings.HasPrefix(strings.TrimSpace(out), "{") {
		t.Errorf("console output should not be JSON: %s", out)
	}
}

func TestErr(t *testing.T) {
	var buf bytes.Buffer
	SetLogger(NewTestLogger(&buf))
	defer Init(DefaultConfig())

	Err(errors.New("input is missing required column(s): city")).Msg("Batch failed")

	out := buf.String()
	if !strings.Contains(out, `"error":"input is missing required column(s): city"`) {
		t.Errorf("expected error field, got: %s", out)
	}
}

func TestWith(t *testing.T) {
	var buf bytes.Buffer
	SetLogger(NewTestLogger(&buf))
	defer Init(DefaultConfig())

	l := With().Str("component", "cli").Logger()
	l.Info().Msg("child")

	if !strings.Contains(buf.String(), `"component":"cli"`) {
		t.Errorf("expected component field, got: %s", buf.String())
	}
}

func TestSetLevelString(t *testing.T) {
	original := GetLevel()
	defer zerolog.SetGlobalLevel(original)

	SetLevelString("error")
	if GetLevel() != zerolog.ErrorLevel {
		t.Errorf("GetLevel() = %v, want error", GetLevel())
	}
}

func TestInit_ServiceField(t *testing.T) {
	var buf bytes.Buffer
	Init(Config{Level: "info", Service: "signintriage", Output: &buf})
	defer Init(DefaultConfig())

	Warn().Msg("with service")

	if !strings.Contains(buf.String(), `"service":"signintriage"`) {
		t.Errorf("expected service field, got: %s", buf.String())
	}
	if strings.Contains(buf.String(), `"time"`) {
		t.Errorf("timestamp disabled but present: %s", buf.String())
	}
}
