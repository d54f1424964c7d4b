// Signin Triage - Sign-in Anomaly Scoring and Triage
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/signintriage

package config

import (
	"time"
)

// Config holds all application configuration loaded from defaults, an
// optional config file, an optional .env file, and environment variables.
//
// Configuration Loading Order (Koanf v2):
//  1. Defaults: Built-in sensible defaults for all settings
//  2. Config File: Optional YAML config file (config.yaml)
//  3. .env File: Optional dotenv file loaded into the process environment
//  4. Environment Variables: Override any mapped setting
//
// Configuration Categories:
//   - Triage: alert threshold, upload limit, default export format
//   - Server: HTTP listener settings
//   - Security: CORS and upload rate limiting
//   - Notify: optional webhook and Discord delivery of batch summaries
//   - Logging: log level, format, and caller info
//
// Example:
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal("Failed to load config:", err)
//	}
//	res, err := pipeline.Run(ctx, file, cfg.Triage.DefaultThreshold)
//
// Thread Safety:
// Config is immutable after Load() and safe for concurrent read access.
type Config struct {
	Triage   TriageConfig   `koanf:"triage"`
	Server   ServerConfig   `koanf:"server"`
	Security SecurityConfig `koanf:"security"`
	Notify   NotifyConfig   `koanf:"notify"`
	Logging  LoggingConfig  `koanf:"logging"`
}

// TriageConfig holds the batch scoring settings handed to the pipeline.
//
// Environment Variables:
//   - TRIAGE_THRESHOLD: default alert threshold 0-100 (default: 40)
//   - TRIAGE_MAX_UPLOAD_BYTES: largest accepted upload (default: 32 MiB)
//   - TRIAGE_EXPORT_FORMAT: csv, json, cef (default: csv)
type TriageConfig struct {
	DefaultThreshold int    `koanf:"default_threshold" validate:"threshold"`
	MaxUploadBytes   int64  `koanf:"max_upload_bytes" validate:"min=1024"`
	ExportFormat     string `koanf:"export_format" validate:"exportformat"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port        int           `koanf:"port" validate:"min=1,max=65535"`
	Host        string        `koanf:"host"`
	Timeout     time.Duration `koanf:"timeout" validate:"gt=0"`
	Environment string        `koanf:"environment" validate:"oneof=development staging production"`
}

// SecurityConfig holds CORS and rate limiting settings
type SecurityConfig struct {
	CORSOrigins       []string      `koanf:"cors_origins"`
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
}

// NotifyConfig holds the optional notifiers for batch summaries.
//
// Environment Variables:
//   - WEBHOOK_ENABLED: Enable generic webhook notifications (default: false)
//   - WEBHOOK_URL: Generic webhook URL
//   - WEBHOOK_HEADERS: Comma-separated key=value headers (e.g., "Authorization=Bearer xyz,X-Custom=value")
//   - WEBHOOK_RATE_LIMIT_MS: Minimum ms between posts (default: 500)
//   - WEBHOOK_TIMEOUT: HTTP timeout (default: 10s)
//   - WEBHOOK_FAILURE_THRESHOLD: Consecutive failures before the circuit opens (default: 5)
//   - DISCORD_ENABLED: Enable Discord notifications (default: false)
//   - DISCORD_WEBHOOK_URL: Discord webhook URL
//   - DISCORD_RATE_LIMIT_MS: Minimum ms between messages (default: 1000)
type NotifyConfig struct {
	Webhook WebhookNotifierConfig `koanf:"webhook"`
	Discord DiscordNotifierConfig `koanf:"discord"`
}

// WebhookNotifierConfig holds generic webhook notification settings.
type WebhookNotifierConfig struct {
	Enabled          bool              `koanf:"enabled"`
	WebhookURL       string            `koanf:"webhook_url"`
	Headers          map[string]string `koanf:"headers"`
	RateLimitMs      int               `koanf:"rate_limit_ms" validate:"min=0"`
	Timeout          time.Duration     `koanf:"timeout" validate:"min=0"`
	FailureThreshold uint32            `koanf:"failure_threshold"`
}

// DiscordNotifierConfig holds Discord webhook notification settings.
type DiscordNotifierConfig struct {
	Enabled     bool   `koanf:"enabled"`
	WebhookURL  string `koanf:"webhook_url"`
	RateLimitMs int    `koanf:"rate_limit_ms" validate:"min=0"`
}

// LoggingConfig holds logging settings for zerolog.
//
// Environment Variables:
//   - LOG_LEVEL: trace, debug, info, warn, error (default: info)
//   - LOG_FORMAT: json, console (default: json)
//   - LOG_CALLER: true/false - include caller file:line (default: false)
type LoggingConfig struct {
	// Level is the minimum log level: trace, debug, info, warn, error.
	Level string `koanf:"level"`

	// Format is the output format: json or console.
	Format string `koanf:"format"`

	// Caller includes caller file and line number in logs.
	Caller bool `koanf:"caller"`
}

// Load reads configuration from all layers and validates it.
// See LoadWithKoanf() for the underlying implementation.
func Load() (*Config, error) {
	return LoadWithKoanf()
}

// IsProduction reports whether the server runs in production mode.
func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}

// IsDevelopment reports whether the server runs in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Server.Environment == "development"
}
