// SPDX-FileCopyrightText: Copyright 2026 oauth-guardian authors
// SPDX-License-Identifier: Apache-2.0

// Package http provides validation functions for HTTP headers and target URLs.
package http

import (
	"fmt"
	"net/url"

	"golang.org/x/net/http/httpguts"
)

// ValidateHeaderName validates that a string is a valid HTTP header name per RFC 7230.
// It checks for CRLF injection, control characters, and ensures RFC token compliance.
// Configured extra headers pass through here before any request is sent.
func ValidateHeaderName(name string) error {
	if name == "" {
		return fmt.Errorf("header name cannot be empty")
	}

	// Length limit to prevent DoS
	if len(name) > 256 {
		return fmt.Errorf("header name exceeds maximum length of 256 bytes")
	}

	// Use httpguts validation (same as Go's HTTP/2 implementation)
	if !httpguts.ValidHeaderFieldName(name) {
		return fmt.Errorf("invalid HTTP header name: contains invalid characters")
	}

	return nil
}

// ValidateHeaderValue validates that a string is a valid HTTP header value per RFC 7230.
// It checks for CRLF injection and control characters.
func ValidateHeaderValue(value string) error {
	if value == "" {
		return fmt.Errorf("header value cannot be empty")
	}

	// Length limit to prevent DoS (common HTTP server limit)
	if len(value) > 8192 {
		return fmt.Errorf("header value exceeds maximum length of 8192 bytes")
	}

	// Use httpguts validation
	if !httpguts.ValidHeaderFieldValue(value) {
		return fmt.Errorf("invalid HTTP header value: contains control characters")
	}

	return nil
}

// ValidateTargetURL validates that an audit target is a usable absolute URL.
// A target that fails here is a hard configuration error; everything that
// happens after this point is a recorded discovery attempt, never a panic.
//
// A valid target must:
//   - Parse as a URL
//   - Include an http or https scheme
//   - Include a host
//   - Not contain a fragment
func ValidateTargetURL(target string) error {
	if target == "" {
		return fmt.Errorf("target URL cannot be empty")
	}

	parsed, err := url.Parse(target)
	if err != nil {
		return fmt.Errorf("invalid target URL: %w", err)
	}

	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("target URL must use the http or https scheme: %s", target)
	}

	if parsed.Host == "" {
		return fmt.Errorf("target URL must include a host: %s", target)
	}

	if parsed.Fragment != "" {
		return fmt.Errorf("target URL must not contain fragments (#): %s", target)
	}

	return nil
}
