// SPDX-FileCopyrightText: Copyright 2026 oauth-guardian authors
// SPDX-License-Identifier: Apache-2.0

// Package checks holds the built-in audit checks: OAuth 2.0 best practices,
// NIST SP 800-63B assurance-level compliance, OWASP authentication guidance,
// and CEL-based custom checks built from configuration.
//
// Every check is a thin, stateless predicate over the discovered server
// metadata. Checks never authenticate against the target and never execute
// a live authorization flow; findings derive purely from the published
// metadata document and documented protocol semantics.
package checks
