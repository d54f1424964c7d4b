// Signin Triage - Sign-in Anomaly Scoring and Triage
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/signintriage

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"

	"github.com/tomtom215/signintriage/internal/detection"
)

// DefaultConfigPaths lists the paths where config files are searched in order of priority.
// The first file found will be used.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/signintriage/config.yaml",
	"/etc/signintriage/config.yml",
}

// ConfigPathEnvVar is the environment variable that can override the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

// DotEnvPathEnvVar overrides the dotenv file location (default: .env).
const DotEnvPathEnvVar = "DOTENV_PATH"

// defaultConfig returns a Config struct with all sensible default values.
// These defaults are applied first, then overridden by config file and env vars.
func defaultConfig() *Config {
	return &Config{
		Triage: TriageConfig{
			DefaultThreshold: detection.DefaultThreshold,
			MaxUploadBytes:   32 << 20, // 32 MiB
			ExportFormat:     "csv",
		},
		Server: ServerConfig{
			Port:        8790,
			Host:        "0.0.0.0",
			Timeout:     30 * time.Second,
			Environment: "development",
		},
		Security: SecurityConfig{
			CORSOrigins:       []string{"*"},
			RateLimitReqs:     30,
			RateLimitWindow:   1 * time.Minute,
			RateLimitDisabled: false,
		},
		Notify: NotifyConfig{
			Webhook: WebhookNotifierConfig{
				Enabled:          false,
				RateLimitMs:      int(detection.DefaultWebhookRateLimit / time.Millisecond),
				Timeout:          detection.DefaultWebhookTimeout,
				FailureThreshold: detection.DefaultWebhookFailureThreshold,
			},
			Discord: DiscordNotifierConfig{
				Enabled:     false,
				RateLimitMs: 1000,
			},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
	}
}

// LoadWithKoanf loads configuration using Koanf v2 with layered sources.
//
// Loading order (later sources override earlier):
//  1. Struct defaults
//  2. YAML config file (CONFIG_PATH or DefaultConfigPaths)
//  3. .env file, merged into the process environment without overriding it
//  4. Environment variables (mapped names only)
func LoadWithKoanf() (*Config, error) {
	k := koanf.New(".")

	// Layer 1: Load defaults from struct
	defaults := defaultConfig()
	if err := k.Load(structs.Provider(defaults, "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// Layer 2: Load config file (optional)
	configPath := findConfigFile()
	if configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	// Layer 3: .env (optional)
	if err := loadDotEnv(); err != nil {
		return nil, err
	}

	// Layer 4: Load environment variables (highest priority)
	// TRIAGE_THRESHOLD -> triage.default_threshold
	envProvider := env.Provider("", ".", envTransformFunc)
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	// Post-process slice and map fields from comma-separated strings
	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}
	if err := processMapFields(k); err != nil {
		return nil, fmt.Errorf("failed to process map fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// findConfigFile returns the first existing config file path, or "".
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// loadDotEnv merges a dotenv file into the environment. Variables already
// set in the environment win. A missing file is not an error.
func loadDotEnv() error {
	path := os.Getenv(DotEnvPathEnvVar)
	if path == "" {
		path = ".env"
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

// sliceConfigPaths defines which config paths should be parsed as comma-separated slices
var sliceConfigPaths = []string{
	"security.cors_origins",
}

// mapConfigPaths defines which config paths should be parsed as comma-separated key=value maps
var mapConfigPaths = []string{
	"notify.webhook.headers",
}

// processSliceFields converts comma-separated string values to slices.
func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		val := k.Get(path)
		if val == nil {
			continue
		}

		// If it's already a slice (from YAML file), skip
		if _, ok := val.([]interface{}); ok {
			continue
		}
		if _, ok := val.([]string); ok {
			continue
		}

		if strVal, ok := val.(string); ok {
			if strVal == "" {
				continue
			}
			parts := strings.Split(strVal, ",")
			trimmed := make([]string, 0, len(parts))
			for _, p := range parts {
				p = strings.TrimSpace(p)
				if p != "" {
					trimmed = append(trimmed, p)
				}
			}
			if len(trimmed) > 0 {
				if err := k.Set(path, trimmed); err != nil {
					return fmt.Errorf("failed to set %s: %w", path, err)
				}
			}
		}
	}
	return nil
}

// processMapFields converts "k1=v1,k2=v2" string values to maps.
// Example: WEBHOOK_HEADERS="Authorization=Bearer xyz,X-Custom=value"
func processMapFields(k *koanf.Koanf) error {
	for _, path := range mapConfigPaths {
		strVal, ok := k.Get(path).(string)
		if !ok {
			continue
		}
		// Drop the string so Set replaces rather than merges into it.
		k.Delete(path)

		m := parseKeyValueList(strVal)
		if len(m) == 0 {
			continue
		}
		if err := k.Set(path, m); err != nil {
			return fmt.Errorf("failed to set %s: %w", path, err)
		}
	}
	return nil
}

// parseKeyValueList splits "k1=v1,k2=v2" on the first '=' of each item.
// Items without '=' or with an empty key are skipped.
func parseKeyValueList(value string) map[string]interface{} {
	result := make(map[string]interface{})
	for _, item := range strings.Split(value, ",") {
		trimmed := strings.TrimSpace(item)
		if trimmed == "" {
			continue
		}
		parts := strings.SplitN(trimmed, "=", 2)
		if len(parts) != 2 {
			continue
		}
		key := strings.TrimSpace(parts[0])
		if key != "" {
			result[key] = strings.TrimSpace(parts[1])
		}
	}
	return result
}

// envMappings maps lower-cased environment variable names to koanf paths.
var envMappings = map[string]string{
	// Triage mappings
	"triage_threshold":        "triage.default_threshold",
	"triage_max_upload_bytes": "triage.max_upload_bytes",
	"triage_export_format":    "triage.export_format",

	// Server mappings
	"http_port":    "server.port",
	"http_host":    "server.host",
	"http_timeout": "server.timeout",
	"environment":  "server.environment",

	// Security mappings
	"cors_origins":        "security.cors_origins",
	"rate_limit_requests": "security.rate_limit_reqs",
	"rate_limit_window":   "security.rate_limit_window",
	"disable_rate_limit":  "security.rate_limit_disabled",

	// Webhook notifier mappings
	"webhook_enabled":           "notify.webhook.enabled",
	"webhook_url":               "notify.webhook.webhook_url",
	"webhook_headers":           "notify.webhook.headers",
	"webhook_rate_limit_ms":     "notify.webhook.rate_limit_ms",
	"webhook_timeout":           "notify.webhook.timeout",
	"webhook_failure_threshold": "notify.webhook.failure_threshold",

	// Discord notifier mappings
	"discord_enabled":       "notify.discord.enabled",
	"discord_webhook_url":   "notify.discord.webhook_url",
	"discord_rate_limit_ms": "notify.discord.rate_limit_ms",

	// Logging mappings
	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",
}

// envTransformFunc transforms environment variable names to koanf paths.
// Only explicitly mapped variables are loaded.
func envTransformFunc(key string) string {
	if mapped, ok := envMappings[strings.ToLower(key)]; ok {
		return mapped
	}

	// For unmapped keys, return empty string to skip them
	// This prevents random environment variables from polluting config
	return ""
}

// NewConfigWatcher returns a watcher for the config file at path. The
// supervisor owns its lifecycle; callers reload via Load() on change and
// apply whatever settings can change at runtime (currently the log level).
func NewConfigWatcher(path string) *file.File {
	return file.Provider(path)
}

// ConfigFilePath returns the config file LoadWithKoanf would read, or "".
func ConfigFilePath() string {
	return findConfigFile()
}
