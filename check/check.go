// SPDX-FileCopyrightText: Copyright 2026 oauth-guardian authors
// SPDX-License-Identifier: Apache-2.0

package check

import (
	"context"
	"fmt"
	"time"

	"github.com/asg5704/oauth-guardian-sub001/oauth"
)

// Check is the polymorphic unit of analysis. Implementations share no
// mutable state: every execution is independent and may run concurrently
// with others against the same Context, since discovery results are
// read-only snapshots.
//
// Execute is the only operation with side effects (network calls through
// the shared transport, logging). Plugin-supplied checks satisfy this exact
// interface to be runnable.
type Check interface {
	// ID returns the stable identifier used in configuration filters.
	ID() string
	// Name returns the human-readable check name.
	Name() string
	// Category returns the guidance body the check derives from.
	Category() Category
	// DefaultSeverity returns the severity attached to this check's
	// findings unless configuration overrides it.
	DefaultSeverity() Severity
	// Description explains what the check verifies.
	Description() string
	// References returns documentation links backing the check.
	References() []string
	// Execute runs the check and returns exactly one result.
	Execute(ctx context.Context, cc *Context) *Result
}

// Base standardizes result construction for checks. It binds the check's
// own id, category, and default severity into every produced Result so
// individual checks only supply message, remediation, and evidence.
type Base struct {
	id          string
	name        string
	category    Category
	severity    Severity
	description string
	references  []string
}

// NewBase creates the shared descriptor embedded by every check variant.
func NewBase(id, name string, category Category, severity Severity, description string, references ...string) Base {
	return Base{
		id:          id,
		name:        name,
		category:    category,
		severity:    severity,
		description: description,
		references:  references,
	}
}

// ID implements Check.
func (b *Base) ID() string { return b.id }

// Name implements Check.
func (b *Base) Name() string { return b.name }

// Category implements Check.
func (b *Base) Category() Category { return b.category }

// DefaultSeverity implements Check.
func (b *Base) DefaultSeverity() Severity { return b.severity }

// Description implements Check.
func (b *Base) Description() string { return b.description }

// References implements Check.
func (b *Base) References() []string { return b.references }

// newResult stamps the check identity onto a result.
func (b *Base) newResult(status Status, severity Severity, message string) *Result {
	return &Result{
		CheckID:   b.id,
		Category:  b.category,
		Status:    status,
		Severity:  severity,
		Message:   message,
		Timestamp: time.Now().UTC(),
	}
}

// Pass builds a PASS result with the check's default severity.
func (b *Base) Pass(message string, metadata Metadata) *Result {
	r := b.newResult(StatusPass, b.severity, message)
	r.Metadata = metadata.Normalize()
	return r
}

// Fail builds a FAIL result carrying remediation guidance and evidence.
func (b *Base) Fail(message, remediation string, metadata Metadata) *Result {
	r := b.newResult(StatusFail, b.severity, message)
	r.Remediation = remediation
	r.Metadata = metadata.Normalize()
	return r
}

// Warn builds a WARNING result carrying remediation guidance and evidence.
func (b *Base) Warn(message, remediation string, metadata Metadata) *Result {
	r := b.newResult(StatusWarning, b.severity, message)
	r.Remediation = remediation
	r.Metadata = metadata.Normalize()
	return r
}

// Info builds an advisory INFO result.
func (b *Base) Info(message string, metadata Metadata) *Result {
	r := b.newResult(StatusInfo, SeverityInfo, message)
	r.Metadata = metadata.Normalize()
	return r
}

// Skip builds a SKIP result; the reason goes in the message and is repeated
// in the evidence bag so renderers that drop messages still explain it.
func (b *Base) Skip(reason string) *Result {
	r := b.newResult(StatusSkip, SeverityInfo, reason)
	r.Metadata = Metadata{"skip_reason": reason}
	return r
}

// Error builds an ERROR result for tool or environment defects. The cause
// lands in the evidence bag; ERROR results never carry remediation because
// there is nothing for the target's operator to fix.
func (b *Base) Error(err error) *Result {
	r := b.newResult(StatusError, b.severity, err.Error())
	r.Metadata = Metadata{"error": err.Error()}
	return r
}

// DiscoveryFailedWarning is the uniform result a metadata-dependent check
// returns when discovery fails. Discovery failure is a fact about the
// target, not a tool error, so the status is WARNING.
func (b *Base) DiscoveryFailedWarning(result *oauth.DiscoveryResult) *Result {
	attempts := make([]string, 0, len(result.Attempts))
	for _, a := range result.Attempts {
		attempts = append(attempts, fmt.Sprintf("%s (%d)", a.URL, a.Status))
	}
	return b.Warn(
		fmt.Sprintf("unable to discover server metadata: %s", result.Error),
		"Publish an OAuth 2.0 Authorization Server Metadata (RFC 8414) or OIDC "+
			"discovery document at a well-known endpoint, and verify it is reachable "+
			"without authentication.",
		Metadata{
			"discovery_failed": true,
			"attempted_urls":   attempts,
		},
	)
}

// GuardContext returns an ERROR result when a required collaborator is
// missing from the context, nil otherwise. Checks call it first thing in
// Execute.
func (b *Base) GuardContext(cc *Context) *Result {
	if err := cc.Validate(); err != nil {
		return b.Error(err)
	}
	return nil
}
