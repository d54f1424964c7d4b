// Signin Triage - Sign-in Anomaly Scoring and Triage
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/signintriage

/*
Package config provides centralized configuration management for Signin Triage.

Configuration is layered with Koanf v2. Later layers override earlier ones:

 1. Struct defaults (defaultConfig)
 2. YAML file: CONFIG_PATH, or the first of DefaultConfigPaths that exists
 3. .env file (DOTENV_PATH, default .env), merged without overriding the
    existing environment
 4. Environment variables listed in envMappings; anything else is ignored

# Configuration Structure

  - TriageConfig: default alert threshold, upload size cap, export format
  - ServerConfig: HTTP listener host, port, timeout, environment
  - SecurityConfig: CORS origins and per-IP upload rate limit
  - NotifyConfig: optional webhook and Discord batch summary delivery
  - LoggingConfig: zerolog level, format, caller info

# Environment Variables

	TRIAGE_THRESHOLD=40
	TRIAGE_MAX_UPLOAD_BYTES=33554432
	TRIAGE_EXPORT_FORMAT=csv
	HTTP_HOST=0.0.0.0
	HTTP_PORT=8790
	HTTP_TIMEOUT=30s
	ENVIRONMENT=development
	CORS_ORIGINS=https://soc.example.com,https://siem.example.com
	RATE_LIMIT_REQUESTS=30
	RATE_LIMIT_WINDOW=1m
	DISABLE_RATE_LIMIT=false
	WEBHOOK_ENABLED=true
	WEBHOOK_URL=https://hooks.example.com/triage
	WEBHOOK_HEADERS=Authorization=Bearer xyz,X-Team=soc
	WEBHOOK_RATE_LIMIT_MS=500
	WEBHOOK_TIMEOUT=10s
	WEBHOOK_FAILURE_THRESHOLD=5
	DISCORD_ENABLED=false
	DISCORD_WEBHOOK_URL=
	DISCORD_RATE_LIMIT_MS=1000
	LOG_LEVEL=info
	LOG_FORMAT=json
	LOG_CALLER=false

# YAML Example

	triage:
	  default_threshold: 50
	  export_format: cef
	server:
	  port: 8080
	notify:
	  webhook:
	    enabled: true
	    webhook_url: https://hooks.example.com/triage
	    headers:
	      Authorization: Bearer xyz

# Validation

Validate applies go-playground/validator struct tags through
internal/validation (threshold 0-100, port range, export format, server
environment) and then cross-field checks: wildcard CORS is rejected in
production, rate limit bounds are enforced unless disabled, and an enabled
notifier needs an absolute http(s) URL.

# Thread Safety

Config is immutable after Load() and safe for concurrent reads.
*/
package config
