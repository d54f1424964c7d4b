// Signin Triage - Sign-in Anomaly Scoring and Triage
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/signintriage

/*
Package main is the entry point for the sign-in triage HTTP server.

The server accepts sign-in log uploads, scores every sign-in for
anomaly indicators and returns the events at or above the alert
threshold, either as a JSON envelope or as a CSV, JSON or CEF export.

# Application Architecture

	RootSupervisor ("signintriage")
	├── APISupervisor ("api-layer")
	│   └── HTTP Server (chi router)
	└── ControlSupervisor ("control-layer")
	    └── Config watcher (when a config file is present)

Startup order:

 1. Configuration: Koanf v2 (defaults, config.yaml, .env, environment)
 2. Logging: zerolog with JSON or console output
 3. Notifiers: webhook and Discord, if enabled
 4. HTTP Server: chi router with CORS, rate limiting and metrics
 5. Supervisor Tree: suture v4

# Endpoints

	POST /api/v1/triage           score an upload, JSON envelope
	POST /api/v1/triage/export    score an upload, download alerts
	GET  /api/v1/health/live      liveness
	GET  /api/v1/health/ready     readiness
	GET  /metrics                 Prometheus

# Signal Handling

SIGINT and SIGTERM stop the tree. The HTTP server stops accepting
connections, finishes in-flight requests, then waits for batch
notifications still being delivered.

# Example Usage

	export TRIAGE_THRESHOLD=40
	export CORS_ORIGINS=https://soc.example.com
	./signintriage-server

	curl -F file=@signins.csv http://localhost:8790/api/v1/triage
	curl --data-binary @signins.csv -H 'Content-Type: text/csv' \
	    'http://localhost:8790/api/v1/triage/export?format=cef' -o alerts.cef
*/
package main
