// Signin Triage - Sign-in Anomaly Scoring and Triage
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/signintriage

package main

import (
	"testing"

	"github.com/tomtom215/signintriage/internal/config"
)

func TestBuildNotifiers(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		cfg  config.NotifyConfig
		want []string
	}{
		{name: "none enabled", want: nil},
		{
			name: "webhook only",
			cfg: config.NotifyConfig{
				Webhook: config.WebhookNotifierConfig{Enabled: true, WebhookURL: "https://hooks.example.com/triage"},
			},
			want: []string{"webhook"},
		},
		{
			name: "both, webhook first",
			cfg: config.NotifyConfig{
				Discord: config.DiscordNotifierConfig{Enabled: true, WebhookURL: "https://discord.com/api/webhooks/1/x"},
				Webhook: config.WebhookNotifierConfig{Enabled: true, WebhookURL: "https://hooks.example.com/triage"},
			},
			want: []string{"webhook", "discord"},
		},
		{
			name: "disabled with url",
			cfg: config.NotifyConfig{
				Discord: config.DiscordNotifierConfig{WebhookURL: "https://discord.com/api/webhooks/1/x"},
			},
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := buildNotifiers(&tt.cfg)
			if len(got) != len(tt.want) {
				t.Fatalf("got %d notifiers, want %d", len(got), len(tt.want))
			}
			for i, n := range got {
				if n.Name() != tt.want[i] {
					t.Errorf("notifier[%d] = %q, want %q", i, n.Name(), tt.want[i])
				}
				if !n.Enabled() {
					t.Errorf("notifier %q not enabled", n.Name())
				}
			}
		})
	}
}
