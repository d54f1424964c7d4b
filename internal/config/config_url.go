// Signin Triage - Sign-in Anomaly Scoring and Triage
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/signintriage

package config

import (
	"fmt"
	"net/url"
)

// validateWebhookURL validates that a notifier endpoint is an absolute
// HTTP/HTTPS URL. Paths and query strings are allowed since webhook
// endpoints usually carry both.
func validateWebhookURL(rawURL, fieldName string) error {
	parsedURL, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("%s failed to parse URL: %w", fieldName, err)
	}

	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return fmt.Errorf("%s scheme must be http or https, got: %s", fieldName, parsedURL.Scheme)
	}

	if parsedURL.Host == "" {
		return fmt.Errorf("%s host is required", fieldName)
	}

	if parsedURL.User != nil {
		return fmt.Errorf("%s must not embed credentials, use WEBHOOK_HEADERS instead", fieldName)
	}

	return nil
}
