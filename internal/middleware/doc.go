// Signin Triage - Sign-in Anomaly Scoring and Triage
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/signintriage

/*
Package middleware provides HTTP middleware for the triage API.

All middleware has the chi signature func(http.Handler) http.Handler.

  - RequestID: honours or generates X-Request-ID and seeds the logging
    request and correlation IDs
  - PrometheusMetrics: request count, latency, and in-flight gauge labelled
    by chi route pattern
  - Compression: gzip for clients sending Accept-Encoding: gzip

Usage:

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.PrometheusMetrics)
	r.Use(middleware.Compression)
*/
package middleware
