// Signin Triage - Sign-in Anomaly Scoring and Triage
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/signintriage

package detection

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/goccy/go-json"
	"golang.org/x/time/rate"
)

// Discord accepts at most ten embeds per message; one is the batch header.
const discordMaxAlertEmbeds = 9

// DiscordNotifier sends batch summaries to Discord via webhooks.
type DiscordNotifier struct {
	webhookURL string
	client     *http.Client
	limiter    *rate.Limiter
	enabled    bool
	mu         sync.RWMutex
}

// DiscordConfig configures the Discord notifier.
type DiscordConfig struct {
	WebhookURL  string `json:"webhook_url"`
	Enabled     bool   `json:"enabled"`
	RateLimitMs int    `json:"rate_limit_ms"` // Minimum ms between messages
}

// NewDiscordNotifier creates a new Discord notifier.
func NewDiscordNotifier(config DiscordConfig) *DiscordNotifier {
	interval := time.Duration(config.RateLimitMs) * time.Millisecond
	if interval <= 0 {
		interval = 1 * time.Second
	}

	return &DiscordNotifier{
		webhookURL: config.WebhookURL,
		enabled:    config.Enabled,
		limiter:    rate.NewLimiter(rate.Every(interval), 1),
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Name returns the notifier name.
func (n *DiscordNotifier) Name() string {
	return "discord"
}

// Enabled returns whether this notifier is enabled.
func (n *DiscordNotifier) Enabled() bool {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.enabled && n.webhookURL != ""
}

// SetEnabled enables or disables the notifier.
func (n *DiscordNotifier) SetEnabled(enabled bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.enabled = enabled
}

// Send delivers a batch summary to Discord.
func (n *DiscordNotifier) Send(ctx context.Context, summary *BatchSummary) error {
	n.mu.RLock()
	if !n.enabled || n.webhookURL == "" {
		n.mu.RUnlock()
		return nil
	}
	webhookURL := n.webhookURL
	n.mu.RUnlock()

	if err := n.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("discord rate limit wait: %w", err)
	}

	body, err := json.Marshal(discordWebhookPayload{Embeds: buildEmbeds(summary)})
	if err != nil {
		return fmt.Errorf("failed to marshal Discord payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, webhookURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create Discord request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send Discord webhook: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode >= 400 {
		return fmt.Errorf("discord webhook returned status %d", resp.StatusCode)
	}
	return nil
}

// buildEmbeds renders a header embed plus one embed per top alert.
func buildEmbeds(summary *BatchSummary) []discordEmbed {
	top := SeverityInfo
	switch {
	case summary.Severities[SeverityCritical] > 0:
		top = SeverityCritical
	case summary.Severities[SeverityWarning] > 0:
		top = SeverityWarning
	}

	embeds := []discordEmbed{{
		Title: fmt.Sprintf("%d suspicious sign-in(s) at threshold %d", summary.AlertCount, summary.Threshold),
		Color: severityColor(top),
		Fields: []discordEmbedField{
			{Name: "Critical", Value: fmt.Sprintf("%d", summary.Severities[SeverityCritical]), Inline: true},
			{Name: "Warning", Value: fmt.Sprintf("%d", summary.Severities[SeverityWarning]), Inline: true},
			{Name: "Info", Value: fmt.Sprintf("%d", summary.Severities[SeverityInfo]), Inline: true},
		},
		Timestamp: summary.CreatedAt.Format(time.RFC3339),
		Footer:    discordEmbedFooter{Text: "Batch " + summary.BatchID},
	}}

	for i := range summary.Alerts {
		if i == discordMaxAlertEmbeds {
			break
		}
		a := &summary.Alerts[i]
		rules := make([]string, 0, len(a.Indicators))
		for _, r := range a.Indicators {
			rules = append(rules, string(r))
		}
		if len(rules) == 0 {
			rules = append(rules, string(RuleTypeBaselineDeviation))
		}

		fields := []discordEmbedField{
			{Name: "User", Value: orDash(a.User), Inline: true},
			{Name: "Risk Score", Value: fmt.Sprintf("%d", a.RiskScore), Inline: true},
			{Name: "Indicators", Value: strings.Join(rules, ", "), Inline: true},
		}
		if a.IP != "" {
			fields = append(fields, discordEmbedField{Name: "IP Address", Value: a.IP, Inline: true})
		}
		if a.Device != "" {
			fields = append(fields, discordEmbedField{Name: "Device", Value: a.Device, Inline: true})
		}

		embeds = append(embeds, discordEmbed{
			Title:       fmt.Sprintf("%s from %s, %s", orDash(a.User), orDash(a.City), orDash(a.Country)),
			Description: a.TriageNote,
			Color:       severityColor(a.Severity),
			Timestamp:   a.Timestamp.Format(time.RFC3339),
			Fields:      fields,
		})
	}
	return embeds
}

// orDash substitutes a placeholder for empty text; Discord rejects embed
// fields with an empty value.
func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}

// severityColor returns the Discord embed color for a severity level.
func severityColor(severity Severity) int {
	switch severity {
	case SeverityCritical:
		return 0xFF0000 // Red
	case SeverityWarning:
		return 0xFFA500 // Orange
	case SeverityInfo:
		return 0x3498DB // Blue
	default:
		return 0x95A5A6 // Gray
	}
}

// Discord webhook structures
type discordWebhookPayload struct {
	Content string         `json:"content,omitempty"`
	Embeds  []discordEmbed `json:"embeds,omitempty"`
}

type discordEmbed struct {
	Title       string              `json:"title,omitempty"`
	Description string              `json:"description,omitempty"`
	Color       int                 `json:"color,omitempty"`
	Timestamp   string              `json:"timestamp,omitempty"`
	Fields      []discordEmbedField `json:"fields,omitempty"`
	Footer      discordEmbedFooter  `json:"footer,omitempty"`
}

type discordEmbedField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline,omitempty"`
}

type discordEmbedFooter struct {
	Text string `json:"text,omitempty"`
}
