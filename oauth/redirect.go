// SPDX-FileCopyrightText: Copyright 2026 oauth-guardian authors
// SPDX-License-Identifier: Apache-2.0

package oauth

import (
	"context"
	"fmt"
	"net/url"

	"github.com/ory/fosite"
)

// MaxRedirectURILength caps a single redirect URI. Protects the parser per
// RFC 3986 practical constraints.
const MaxRedirectURILength = 2048

// RedirectURIPolicy controls which URI schemes pass redirect URI validation.
type RedirectURIPolicy int

const (
	// RedirectURIPolicyStrict allows only https and http-loopback schemes,
	// per RFC 8252 Section 8.4.
	RedirectURIPolicyStrict RedirectURIPolicy = iota

	// RedirectURIPolicyAllowPrivateSchemes also allows private-use URI
	// schemes (myapp://) per RFC 8252 Section 7.1, for audits of native
	// application clients with pre-registered URIs.
	RedirectURIPolicyAllowPrivateSchemes
)

// ValidateRedirectURI validates one configured redirect URI per RFC 6749
// Section 3.1.2 and RFC 8252. The returned error names the violated rule.
func ValidateRedirectURI(uri string, policy RedirectURIPolicy) error {
	if len(uri) > MaxRedirectURILength {
		return fmt.Errorf("redirect URI too long (maximum %d characters)", MaxRedirectURILength)
	}

	parsed, err := url.Parse(uri)
	if err != nil {
		return fmt.Errorf("invalid redirect URI format: %w", err)
	}

	// RFC 6749 Section 3.1.2: absolute URI without fragment.
	if !fosite.IsValidRedirectURI(parsed) {
		return fmt.Errorf("redirect URI must be an absolute URI without a fragment")
	}

	switch policy {
	case RedirectURIPolicyStrict:
		if !fosite.IsRedirectURISecureStrict(context.Background(), parsed) {
			return fmt.Errorf("redirect URI must use https, or http only for loopback addresses")
		}
	case RedirectURIPolicyAllowPrivateSchemes:
		if !fosite.IsRedirectURISecure(context.Background(), parsed) {
			return fmt.Errorf("redirect URI must use https, http for loopback, or a private-use scheme")
		}
	default:
		return fmt.Errorf("unknown redirect URI policy: %d", policy)
	}

	return nil
}
