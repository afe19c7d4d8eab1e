// SPDX-FileCopyrightText: Copyright 2026 oauth-guardian authors
// SPDX-License-Identifier: Apache-2.0

package audit

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/asg5704/oauth-guardian-sub001/check"
	"github.com/asg5704/oauth-guardian-sub001/config"
	"github.com/asg5704/oauth-guardian-sub001/recovery"
)

// DefaultConcurrency bounds how many checks execute at once. Checks share a
// memoized discovery result, so the bound mostly limits check-specific
// probes.
const DefaultConcurrency = 8

// Runner owns the registered check set and executes the configured subset.
type Runner struct {
	checks      []check.Check
	cfg         *config.Config
	concurrency int
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithConcurrency sets the maximum number of concurrently executing checks.
func WithConcurrency(n int) RunnerOption {
	return func(r *Runner) {
		if n > 0 {
			r.concurrency = n
		}
	}
}

// NewRunner creates a runner over the registered checks. Registration order
// determines report order.
func NewRunner(registered []check.Check, cfg *config.Config, opts ...RunnerOption) *Runner {
	r := &Runner{
		checks:      registered,
		cfg:         cfg,
		concurrency: DefaultConcurrency,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run executes the selected checks against the context and aggregates the
// report. Checks execute concurrently; a panicking check becomes an ERROR
// result rather than aborting the run. On cancellation, in-flight requests
// abort and checks not yet started are omitted from the report entirely, so
// partial results remain meaningful.
func (r *Runner) Run(ctx context.Context, cc *check.Context) (*Report, error) {
	failOn, err := r.failOnThreshold()
	if err != nil {
		return nil, err
	}

	overrides := map[string]config.Override{}
	if r.cfg != nil {
		overrides = r.cfg.Overrides()
	}

	selected := r.selectChecks(overrides)
	results := make([]*check.Result, len(selected))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.concurrency)
	for i, c := range selected {
		g.Go(func() error {
			// Cancelled before start: omit, do not report SKIP.
			if gctx.Err() != nil {
				return nil
			}

			cc.Log().Debug("executing check", "check_id", c.ID())
			if err := recovery.Go(func() error {
				results[i] = c.Execute(gctx, cc)
				return nil
			}); err != nil {
				cc.Log().Error("check panicked", "check_id", c.ID(), "error", err)
				results[i] = panicResult(c, err)
			}
			return nil
		})
	}
	// Worker funcs never return errors; panics are converted per check.
	_ = g.Wait()

	final := make([]*check.Result, 0, len(results))
	for _, res := range results {
		if res == nil {
			continue
		}
		final = append(final, applyOverride(res, overrides[res.CheckID]))
	}

	report := &Report{
		Timestamp: time.Now().UTC(),
		Results:   final,
		Summary:   summarize(final, failOn, r.failOnError()),
	}
	if cc != nil {
		report.Target = cc.TargetURL
	}
	return report, nil
}

// selectChecks applies the configuration filters in registration order:
// disabled toggles, then category allow-list, then include/exclude id
// filters.
func (r *Runner) selectChecks(overrides map[string]config.Override) []check.Check {
	var (
		include    []string
		exclude    []string
		categories []string
	)
	if r.cfg != nil {
		include = r.cfg.Checks.Include
		exclude = r.cfg.Checks.Exclude
		categories = r.cfg.Checks.Categories
	}

	selected := make([]check.Check, 0, len(r.checks))
	for _, c := range r.checks {
		if overrides[c.ID()] == config.OverrideDisabled {
			continue
		}
		if len(categories) > 0 && !containsFold(categories, string(c.Category())) {
			continue
		}
		if len(include) > 0 && !containsFold(include, c.ID()) {
			continue
		}
		if containsFold(exclude, c.ID()) {
			continue
		}
		selected = append(selected, c)
	}
	return selected
}

// failOnThreshold parses the configured failOn severity, defaulting to HIGH.
func (r *Runner) failOnThreshold() (check.Severity, error) {
	if r.cfg == nil || r.cfg.Reporting.FailOn == "" {
		return check.SeverityHigh, nil
	}
	sev, err := check.ParseSeverity(r.cfg.Reporting.FailOn)
	if err != nil {
		return 0, fmt.Errorf("invalid failOn threshold: %w", err)
	}
	return sev, nil
}

func (r *Runner) failOnError() bool {
	return r.cfg != nil && r.cfg.Reporting.FailOnError
}

// applyOverride resolves a forced status on negative findings. Forcing never
// touches PASS, SKIP, INFO, or ERROR results.
func applyOverride(res *check.Result, o config.Override) *check.Result {
	switch {
	case o == config.OverrideForcedError && res.Status == check.StatusWarning:
		res.Status = check.StatusFail
	case o == config.OverrideForcedWarning && res.Status == check.StatusFail:
		res.Status = check.StatusWarning
	default:
		return res
	}

	if res.Metadata == nil {
		res.Metadata = check.Metadata{}
	}
	res.Metadata["status_forced"] = true
	return res
}

// panicResult converts a recovered check panic into an ERROR result.
func panicResult(c check.Check, err error) *check.Result {
	metadata := check.Metadata{"error": err.Error()}
	if perr, ok := err.(*recovery.PanicError); ok {
		metadata["stack"] = string(perr.Stack)
	}
	return &check.Result{
		CheckID:   c.ID(),
		Category:  c.Category(),
		Status:    check.StatusError,
		Severity:  c.DefaultSeverity(),
		Message:   fmt.Sprintf("check aborted: %s", err),
		Metadata:  metadata,
		Timestamp: time.Now().UTC(),
	}
}

func containsFold(haystack []string, needle string) bool {
	for _, s := range haystack {
		if strings.EqualFold(s, needle) {
			return true
		}
	}
	return false
}
