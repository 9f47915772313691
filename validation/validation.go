// SPDX-FileCopyrightText: Copyright 2026 JFP Labs
// SPDX-License-Identifier: Apache-2.0

// Package validation provides security-focused validation for values that
// cross the HTTP boundary: cached ETags replayed as request headers and
// registry URLs taken from the environment.
package validation

import (
	"fmt"
	"net/url"

	"golang.org/x/net/http/httpguts"
)

// maxHeaderValueLength is a common HTTP server limit.
const maxHeaderValueLength = 8192

// ValidateHeaderValue validates that a string is safe to send as an HTTP
// header value per RFC 7230. It rejects CRLF injection and control
// characters; cached ETags pass through it before being replayed as
// If-None-Match.
func ValidateHeaderValue(value string) error {
	if value == "" {
		return fmt.Errorf("header value cannot be empty")
	}

	if len(value) > maxHeaderValueLength {
		return fmt.Errorf("header value exceeds maximum length of %d bytes", maxHeaderValueLength)
	}

	// Same validation Go's HTTP/2 implementation applies.
	if !httpguts.ValidHeaderFieldValue(value) {
		return fmt.Errorf("invalid HTTP header value: contains control characters")
	}

	return nil
}

// ValidateRegistryURL validates a registry endpoint URL. A usable endpoint
// must have an http or https scheme, a host, and no fragment.
func ValidateRegistryURL(rawURL string) error {
	if rawURL == "" {
		return fmt.Errorf("registry URL cannot be empty")
	}

	parsed, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("invalid registry URL: %w", err)
	}

	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("registry URL must use http or https: %s", rawURL)
	}

	if parsed.Host == "" {
		return fmt.Errorf("registry URL must include a host: %s", rawURL)
	}

	if parsed.Fragment != "" {
		return fmt.Errorf("registry URL must not contain fragments (#): %s", rawURL)
	}

	return nil
}
