// Signin Triage - Sign-in Anomaly Scoring and Triage
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/signintriage

package config

import (
	"fmt"
	"time"

	"github.com/tomtom215/signintriage/internal/validation"
)

// Validate checks that required configuration is present and valid
func (c *Config) Validate() error {
	// Field-level bounds come from struct tags.
	if verr := validation.ValidateStruct(c); verr != nil {
		return verr
	}

	if err := c.validateSecurity(); err != nil {
		return err
	}

	if err := c.validateNotify(); err != nil {
		return err
	}

	return c.validateLogging()
}

// validateSecurity validates security configuration
func (c *Config) validateSecurity() error {
	if c.IsProduction() && c.hasWildcardCORS() {
		return fmt.Errorf("CORS_ORIGINS=* (wildcard) is not allowed in production. " +
			"Set specific origins: CORS_ORIGINS=https://soc.example.com " +
			"or use ENVIRONMENT=development for testing purposes")
	}
	return c.validateRateLimits()
}

// hasWildcardCORS checks if CORS is configured with wildcard origins
func (c *Config) hasWildcardCORS() bool {
	for _, origin := range c.Security.CORSOrigins {
		if origin == "*" {
			return true
		}
	}
	return false
}

// ShouldWarnAboutCORS returns true if CORS configuration has security concerns
// that should be logged at startup
func (c *Config) ShouldWarnAboutCORS() bool {
	return c.hasWildcardCORS()
}

// Rate limit constants
const (
	minRateLimitRequests = 1           // Minimum 1 request allowed
	maxRateLimitRequests = 100000      // Maximum 100K requests per window
	minRateLimitWindow   = time.Second // Minimum 1 second window
	maxRateLimitWindow   = time.Hour   // Maximum 1 hour window
)

// validateRateLimits validates rate limiting configuration bounds.
func (c *Config) validateRateLimits() error {
	if c.Security.RateLimitDisabled {
		return nil
	}

	if c.Security.RateLimitReqs < minRateLimitRequests || c.Security.RateLimitReqs > maxRateLimitRequests {
		return fmt.Errorf("RATE_LIMIT_REQUESTS must be between %d and %d", minRateLimitRequests, maxRateLimitRequests)
	}
	if c.Security.RateLimitWindow < minRateLimitWindow || c.Security.RateLimitWindow > maxRateLimitWindow {
		return fmt.Errorf("RATE_LIMIT_WINDOW must be between %v and %v", minRateLimitWindow, maxRateLimitWindow)
	}
	return nil
}

// validateNotify checks notifier URLs (only if enabled)
func (c *Config) validateNotify() error {
	if w := c.Notify.Webhook; w.Enabled {
		if w.WebhookURL == "" {
			return fmt.Errorf("WEBHOOK_URL is required when WEBHOOK_ENABLED=true")
		}
		if err := validateWebhookURL(w.WebhookURL, "WEBHOOK_URL"); err != nil {
			return err
		}
	}

	if d := c.Notify.Discord; d.Enabled {
		if d.WebhookURL == "" {
			return fmt.Errorf("DISCORD_WEBHOOK_URL is required when DISCORD_ENABLED=true")
		}
		if err := validateWebhookURL(d.WebhookURL, "DISCORD_WEBHOOK_URL"); err != nil {
			return err
		}
	}
	return nil
}

// validLogLevels defines the allowed log levels
var validLogLevels = map[string]bool{
	"trace": true,
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// validLogFormats defines the allowed log formats
var validLogFormats = map[string]bool{
	"json":    true,
	"console": true,
}

// validateLogging validates logging configuration
func (c *Config) validateLogging() error {
	if !validLogLevels[c.Logging.Level] {
		return fmt.Errorf("LOG_LEVEL must be one of: trace, debug, info, warn, error")
	}
	if c.Logging.Format != "" && !validLogFormats[c.Logging.Format] {
		return fmt.Errorf("LOG_FORMAT must be one of: json, console")
	}
	return nil
}
