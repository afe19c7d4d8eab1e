// SPDX-FileCopyrightText: Copyright 2026 oauth-guardian authors
// SPDX-License-Identifier: Apache-2.0

// Package oauth provides the normalized OAuth 2.0 / OpenID Connect server
// metadata model and the discovery client that fetches it from well-known
// endpoints.
//
// # Discovery
//
// Discovery walks a fixed, ordered list of well-known metadata locations
// (OIDC Discovery 1.0 first, then RFC 8414 OAuth 2.0 Authorization Server
// Metadata, with path-aware fallbacks for issuers published under a path)
// and records every attempt regardless of outcome:
//
//	client := oauth.NewClient(oauth.WithTimeout(10 * time.Second))
//	result, err := client.Discover(ctx, "https://auth.example.com")
//	if err != nil {
//		// unusable target URL; everything else is a recorded attempt
//	}
//	if result.Success {
//		fmt.Println(result.Metadata.Issuer)
//	}
//
// Ordinary HTTP failure (404, 5xx, timeout, malformed JSON) is never an
// error. Each failed candidate becomes a DiscoveryAttempt and discovery
// moves on to the next one. Only an unparseable target URL is a hard error.
//
// Discovery results are memoized per target within one client, and
// concurrent requesters for the same target share a single in-flight fetch.
package oauth
