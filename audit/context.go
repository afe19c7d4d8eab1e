// SPDX-FileCopyrightText: Copyright 2026 oauth-guardian authors
// SPDX-License-Identifier: Apache-2.0

package audit

import (
	"log/slog"
	"net/http"

	"github.com/asg5704/oauth-guardian-sub001/check"
	"github.com/asg5704/oauth-guardian-sub001/config"
	"github.com/asg5704/oauth-guardian-sub001/logging"
	"github.com/asg5704/oauth-guardian-sub001/oauth"
)

// NewContext assembles the per-run check context from a resolved
// configuration: one shared HTTP transport bounded by the configured
// timeout, the memoized discovery client riding on it, and a structured
// logger at the configured verbosity.
func NewContext(cfg *config.Config) *check.Context {
	httpClient := &http.Client{Timeout: cfg.TimeoutDuration()}

	level := slog.LevelInfo
	if cfg.Verbose {
		level = slog.LevelDebug
	}

	return &check.Context{
		TargetURL:  cfg.Target,
		HTTPClient: httpClient,
		Discovery: oauth.NewClient(
			oauth.WithHTTPClient(httpClient),
			oauth.WithUserAgent(cfg.UserAgent),
			oauth.WithHeaders(cfg.Headers),
		),
		Logger: logging.New(logging.WithLevel(level)),
		Config: cfg,
	}
}
