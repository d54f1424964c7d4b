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
	"sync"
	"time"

	"github.com/goccy/go-json"
	gobreaker "github.com/sony/gobreaker/v2"
	"golang.org/x/time/rate"

	"github.com/tomtom215/signintriage/internal/logging"
)

// Webhook defaults applied when the config leaves a field zero.
const (
	DefaultWebhookRateLimit        = 500 * time.Millisecond
	DefaultWebhookTimeout          = 10 * time.Second
	DefaultWebhookFailureThreshold = 5
	webhookBreakerOpenTimeout      = 30 * time.Second
)

// WebhookNotifier posts batch summaries to a generic webhook endpoint.
type WebhookNotifier struct {
	webhookURL string
	headers    map[string]string
	client     *http.Client
	limiter    *rate.Limiter
	breaker    *gobreaker.CircuitBreaker[interface{}]
	enabled    bool
	mu         sync.RWMutex
}

// WebhookConfig configures the generic webhook notifier.
type WebhookConfig struct {
	WebhookURL       string            `json:"webhook_url"`
	Headers          map[string]string `json:"headers,omitempty"` // Custom headers (e.g., auth)
	Enabled          bool              `json:"enabled"`
	RateLimitMs      int               `json:"rate_limit_ms"`
	Timeout          time.Duration     `json:"timeout"`
	FailureThreshold uint32            `json:"failure_threshold"`
}

// WebhookPayload is the JSON payload sent to the webhook endpoint.
type WebhookPayload struct {
	Summary   *BatchSummary `json:"summary"`
	EventType string        `json:"event_type"` // triage_batch
	Timestamp time.Time     `json:"timestamp"`
	Source    string        `json:"source"` // signintriage
}

// NewWebhookNotifier creates a new generic webhook notifier.
func NewWebhookNotifier(config WebhookConfig) *WebhookNotifier {
	interval := time.Duration(config.RateLimitMs) * time.Millisecond
	if interval <= 0 {
		interval = DefaultWebhookRateLimit
	}
	timeout := config.Timeout
	if timeout <= 0 {
		timeout = DefaultWebhookTimeout
	}
	threshold := config.FailureThreshold
	if threshold == 0 {
		threshold = DefaultWebhookFailureThreshold
	}

	headers := make(map[string]string, len(config.Headers))
	for k, v := range config.Headers {
		headers[k] = v
	}

	breaker := gobreaker.NewCircuitBreaker[interface{}](gobreaker.Settings{
		Name:        "webhook",
		MaxRequests: 1,
		Timeout:     webhookBreakerOpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= threshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logging.Warn().
				Str("breaker", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("Notifier circuit breaker state changed")
		},
	})

	return &WebhookNotifier{
		webhookURL: config.WebhookURL,
		headers:    headers,
		enabled:    config.Enabled,
		limiter:    rate.NewLimiter(rate.Every(interval), 1),
		breaker:    breaker,
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

// Name returns the notifier name.
func (n *WebhookNotifier) Name() string {
	return "webhook"
}

// Enabled returns whether this notifier is enabled.
func (n *WebhookNotifier) Enabled() bool {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.enabled && n.webhookURL != ""
}

// SetEnabled enables or disables the notifier.
func (n *WebhookNotifier) SetEnabled(enabled bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.enabled = enabled
}

// BreakerState reports the circuit breaker state (closed, half-open, open).
func (n *WebhookNotifier) BreakerState() string {
	return n.breaker.State().String()
}

// Send delivers a batch summary to the webhook endpoint.
func (n *WebhookNotifier) Send(ctx context.Context, summary *BatchSummary) error {
	n.mu.RLock()
	if !n.enabled || n.webhookURL == "" {
		n.mu.RUnlock()
		return nil
	}
	webhookURL := n.webhookURL
	headers := make(map[string]string, len(n.headers))
	for k, v := range n.headers {
		headers[k] = v
	}
	n.mu.RUnlock()

	if err := n.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("webhook rate limit wait: %w", err)
	}

	payload := WebhookPayload{
		Summary:   summary,
		EventType: "triage_batch",
		Timestamp: time.Now().UTC(),
		Source:    "signintriage",
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal webhook payload: %w", err)
	}

	_, err = n.breaker.Execute(func() (interface{}, error) {
		return nil, n.post(ctx, webhookURL, headers, body)
	})
	return err
}

func (n *WebhookNotifier) post(ctx context.Context, webhookURL string, headers map[string]string, body []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, webhookURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create webhook request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send webhook: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode >= 400 {
		return fmt.Errorf("webhook returned status %d", resp.StatusCode)
	}
	return nil
}
