// Signin Triage - Sign-in Anomaly Scoring and Triage
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/signintriage

package main

import (
	"github.com/tomtom215/signintriage/internal/config"
	"github.com/tomtom215/signintriage/internal/detection"
)

// buildNotifiers returns the enabled notifiers, webhook first.
func buildNotifiers(cfg *config.NotifyConfig) []detection.Notifier {
	var notifiers []detection.Notifier

	if w := cfg.Webhook; w.Enabled {
		notifiers = append(notifiers, detection.NewWebhookNotifier(detection.WebhookConfig{
			WebhookURL:       w.WebhookURL,
			Headers:          w.Headers,
			Enabled:          true,
			RateLimitMs:      w.RateLimitMs,
			Timeout:          w.Timeout,
			FailureThreshold: w.FailureThreshold,
		}))
	}

	if d := cfg.Discord; d.Enabled {
		notifiers = append(notifiers, detection.NewDiscordNotifier(detection.DiscordConfig{
			WebhookURL:  d.WebhookURL,
			Enabled:     true,
			RateLimitMs: d.RateLimitMs,
		}))
	}

	return notifiers
}
