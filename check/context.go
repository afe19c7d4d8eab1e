// SPDX-FileCopyrightText: Copyright 2026 oauth-guardian authors
// SPDX-License-Identifier: Apache-2.0

package check

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/asg5704/oauth-guardian-sub001/config"
	"github.com/asg5704/oauth-guardian-sub001/oauth"
)

// Context is the per-audit-run value object handed to every check. It is
// read-only from the checks' perspective except for logging side effects.
// The discovery client memoizes per target, so every check sharing one
// Context observes the same metadata snapshot.
type Context struct {
	// TargetURL is the audit target.
	TargetURL string

	// HTTPClient is the shared transport handle for check-specific probes.
	HTTPClient *http.Client

	// Discovery performs the memoized metadata fetch.
	Discovery *oauth.Client

	// Logger receives per-check diagnostics.
	Logger *slog.Logger

	// Config is the resolved, already-validated configuration object.
	Config *config.Config
}

// Collaborator-missing errors. A check surfaces these as ERROR results:
// they are defects in how the audit tool was assembled, not findings about
// the target.
var (
	ErrNoTarget    = errors.New("no target URL in check context")
	ErrNoTransport = errors.New("no HTTP transport handle in check context")
	ErrNoDiscovery = errors.New("no discovery client in check context")
)

// Validate reports the first missing required collaborator, if any.
func (c *Context) Validate() error {
	switch {
	case c == nil || c.TargetURL == "":
		return ErrNoTarget
	case c.HTTPClient == nil:
		return ErrNoTransport
	case c.Discovery == nil:
		return ErrNoDiscovery
	}
	return nil
}

// Log returns the context logger, falling back to the default slog logger
// so checks can log unconditionally.
func (c *Context) Log() *slog.Logger {
	if c != nil && c.Logger != nil {
		return c.Logger
	}
	return slog.Default()
}
