// Signin Triage - Sign-in Anomaly Scoring and Triage
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/signintriage

package detection

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func TestNewDiscordNotifier(t *testing.T) {
	notifier := NewDiscordNotifier(DiscordConfig{
		WebhookURL:  "https://discord.com/api/webhooks/test",
		Enabled:     true,
		RateLimitMs: 500,
	})

	if notifier.Name() != "discord" {
		t.Errorf("Name() = %q, want %q", notifier.Name(), "discord")
	}
	if !notifier.Enabled() {
		t.Error("notifier should be enabled")
	}
}

func TestNewDiscordNotifier_DefaultRateLimit(t *testing.T) {
	notifier := NewDiscordNotifier(DiscordConfig{WebhookURL: "https://discord.com/api/webhooks/test"})

	if got := notifier.limiter.Limit(); got != 1 {
		t.Errorf("limit = %v events/s, want 1", got)
	}
}

func TestDiscordNotifier_Enabled(t *testing.T) {
	tests := []struct {
		name     string
		config   DiscordConfig
		expected bool
	}{
		{"enabled with URL", DiscordConfig{WebhookURL: "https://discord.com/api/webhooks/test", Enabled: true}, true},
		{"disabled", DiscordConfig{WebhookURL: "https://discord.com/api/webhooks/test"}, false},
		{"enabled but no URL", DiscordConfig{Enabled: true}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NewDiscordNotifier(tt.config).Enabled(); got != tt.expected {
				t.Errorf("Enabled() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestDiscordNotifier_SetEnabled(t *testing.T) {
	notifier := NewDiscordNotifier(DiscordConfig{WebhookURL: "https://discord.com/api/webhooks/test"})

	notifier.SetEnabled(true)
	if !notifier.Enabled() {
		t.Error("notifier should be enabled after SetEnabled(true)")
	}
	notifier.SetEnabled(false)
	if notifier.Enabled() {
		t.Error("notifier should be disabled after SetEnabled(false)")
	}
}

func TestDiscordNotifier_Send(t *testing.T) {
	var received discordWebhookPayload
	var requestCount int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&requestCount, 1)
		if r.Header.Get("Content-Type") != "application/json" {
			t.Errorf("Content-Type = %s", r.Header.Get("Content-Type"))
		}
		if err := json.NewDecoder(r.Body).Decode(&received); err != nil {
			t.Errorf("failed to decode payload: %v", err)
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	notifier := NewDiscordNotifier(DiscordConfig{WebhookURL: server.URL, Enabled: true, RateLimitMs: 10})
	if err := notifier.Send(context.Background(), testSummary()); err != nil {
		t.Fatalf("Send() error = %v", err)
	}

	if atomic.LoadInt32(&requestCount) != 1 {
		t.Errorf("expected 1 request, got %d", requestCount)
	}
	// Header plus four alerts.
	if len(received.Embeds) != 5 {
		t.Fatalf("got %d embeds, want 5", len(received.Embeds))
	}
	if received.Embeds[0].Color != 0xFF0000 {
		t.Errorf("header color = 0x%X, want critical red", received.Embeds[0].Color)
	}
	if received.Embeds[1].Fields[0].Value != "d" {
		t.Errorf("first alert user = %q, want d", received.Embeds[1].Fields[0].Value)
	}
}

func TestDiscordNotifier_SendDisabled(t *testing.T) {
	var requestCount int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&requestCount, 1)
	}))
	defer server.Close()

	notifier := NewDiscordNotifier(DiscordConfig{WebhookURL: server.URL})
	if err := notifier.Send(context.Background(), testSummary()); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if atomic.LoadInt32(&requestCount) != 0 {
		t.Error("disabled notifier should not send")
	}
}

func TestDiscordNotifier_SendServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	notifier := NewDiscordNotifier(DiscordConfig{WebhookURL: server.URL, Enabled: true, RateLimitMs: 10})
	if err := notifier.Send(context.Background(), testSummary()); err == nil {
		t.Error("expected error for 500 status")
	}
}

func TestSeverityColor(t *testing.T) {
	tests := []struct {
		severity Severity
		expected int
	}{
		{SeverityCritical, 0xFF0000},
		{SeverityWarning, 0xFFA500},
		{SeverityInfo, 0x3498DB},
		{Severity("unknown"), 0x95A5A6},
	}

	for _, tt := range tests {
		t.Run(string(tt.severity), func(t *testing.T) {
			if got := severityColor(tt.severity); got != tt.expected {
				t.Errorf("severityColor(%q) = 0x%X, want 0x%X", tt.severity, got, tt.expected)
			}
		})
	}
}

func TestBuildEmbeds_CapsAlerts(t *testing.T) {
	var scored []ScoredEvent
	for i := 0; i < 20; i++ {
		scored = append(scored, ScoredEvent{FeaturizedEvent: event("u"), RiskScore: 50})
	}
	summary := NewBatchSummary("b", 40, FilterAlerts(scored, 40))

	embeds := buildEmbeds(summary)
	if len(embeds) != 1+discordMaxAlertEmbeds {
		t.Fatalf("got %d embeds, want %d", len(embeds), 1+discordMaxAlertEmbeds)
	}
	if embeds[0].Color != 0xFFA500 {
		t.Errorf("header color = 0x%X, want warning orange", embeds[0].Color)
	}
	if got := embeds[1].Fields[2].Value; got != string(RuleTypeBaselineDeviation) {
		t.Errorf("indicators = %q, want baseline_deviation", got)
	}
}

func TestBuildEmbeds_EmptyFieldsUsePlaceholder(t *testing.T) {
	t.Parallel()

	ev := event("")
	ev.City, ev.Country = "", " "
	summary := NewBatchSummary("b", 0, FilterAlerts([]ScoredEvent{{FeaturizedEvent: ev, RiskScore: 50}}, 0))

	embeds := buildEmbeds(summary)
	if len(embeds) != 2 {
		t.Fatalf("got %d embeds, want 2", len(embeds))
	}
	for _, e := range embeds {
		for _, f := range e.Fields {
			if f.Value == "" {
				t.Errorf("embed %q field %q has an empty value", e.Title, f.Name)
			}
		}
	}
	if got := embeds[1].Title; got != "- from -, -" {
		t.Errorf("title = %q, want placeholders", got)
	}
}

func TestDiscordNotifier_RateLimiting(t *testing.T) {
	var requestCount int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&requestCount, 1)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	notifier := NewDiscordNotifier(DiscordConfig{WebhookURL: server.URL, Enabled: true, RateLimitMs: 100})

	start := time.Now()
	for i := 0; i < 2; i++ {
		if err := notifier.Send(context.Background(), testSummary()); err != nil {
			t.Fatalf("Send() error = %v", err)
		}
	}
	if elapsed := time.Since(start); elapsed < 90*time.Millisecond {
		t.Errorf("second send not delayed by rate limit: %v", elapsed)
	}
	if atomic.LoadInt32(&requestCount) != 2 {
		t.Errorf("expected 2 requests, got %d", requestCount)
	}
}
