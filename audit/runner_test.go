// SPDX-FileCopyrightText: Copyright 2026 oauth-guardian authors
// SPDX-License-Identifier: Apache-2.0

package audit

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/asg5704/oauth-guardian-sub001/check"
	"github.com/asg5704/oauth-guardian-sub001/config"
)

// stubCheck returns a canned result, or runs a custom function when set.
type stubCheck struct {
	check.Base
	execute func(ctx context.Context, cc *check.Context) *check.Result
}

func (s *stubCheck) Execute(ctx context.Context, cc *check.Context) *check.Result {
	return s.execute(ctx, cc)
}

func newStub(id string, category check.Category, severity check.Severity, status check.Status) *stubCheck {
	s := &stubCheck{Base: check.NewBase(id, id, category, severity, "stub")}
	s.execute = func(_ context.Context, _ *check.Context) *check.Result {
		switch status {
		case check.StatusPass:
			return s.Pass("ok", nil)
		case check.StatusFail:
			return s.Fail("bad", "fix", nil)
		case check.StatusWarning:
			return s.Warn("unsure", "verify", nil)
		default:
			return s.Info("fyi", nil)
		}
	}
	return s
}

func testContext() *check.Context {
	return &check.Context{TargetURL: "https://auth.example.com"}
}

func TestRunPreservesRegistrationOrder(t *testing.T) {
	t.Parallel()

	registered := []check.Check{
		newStub("a", check.CategoryOAuth, check.SeverityLow, check.StatusPass),
		newStub("b", check.CategoryNIST, check.SeverityLow, check.StatusPass),
		newStub("c", check.CategoryOWASP, check.SeverityLow, check.StatusPass),
		newStub("d", check.CategoryCustom, check.SeverityLow, check.StatusPass),
	}

	report, err := NewRunner(registered, nil).Run(context.Background(), testContext())
	require.NoError(t, err)

	ids := make([]string, 0, len(report.Results))
	for _, r := range report.Results {
		ids = append(ids, r.CheckID)
	}
	assert.Equal(t, []string{"a", "b", "c", "d"}, ids)
	assert.Equal(t, "https://auth.example.com", report.Target)
	assert.Equal(t, 4, report.Summary.Total)
	assert.Equal(t, 4, report.Summary.ByStatus[check.StatusPass])
}

func TestRunSelectionFilters(t *testing.T) {
	t.Parallel()

	registered := []check.Check{
		newStub("oauth-a", check.CategoryOAuth, check.SeverityLow, check.StatusPass),
		newStub("oauth-b", check.CategoryOAuth, check.SeverityLow, check.StatusPass),
		newStub("nist-a", check.CategoryNIST, check.SeverityLow, check.StatusPass),
	}

	tests := []struct {
		name string
		cfg  *config.Config
		want []string
	}{
		{
			name: "category allow-list",
			cfg:  &config.Config{Checks: config.ChecksConfig{Categories: []string{"oauth"}}},
			want: []string{"oauth-a", "oauth-b"},
		},
		{
			name: "include filter",
			cfg:  &config.Config{Checks: config.ChecksConfig{Include: []string{"nist-a"}}},
			want: []string{"nist-a"},
		},
		{
			name: "exclude filter",
			cfg:  &config.Config{Checks: config.ChecksConfig{Exclude: []string{"oauth-b"}}},
			want: []string{"oauth-a", "nist-a"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			report, err := NewRunner(registered, tt.cfg).Run(context.Background(), testContext())
			require.NoError(t, err)

			ids := make([]string, 0, len(report.Results))
			for _, r := range report.Results {
				ids = append(ids, r.CheckID)
			}
			assert.Equal(t, tt.want, ids)
		})
	}
}

func TestRunDisabledToggleRemovesCheck(t *testing.T) {
	t.Parallel()

	cfg, err := config.Parse([]byte(`
target: https://auth.example.com
oauth:
  oauth-a: false
`))
	require.NoError(t, err)

	registered := []check.Check{
		newStub("oauth-a", check.CategoryOAuth, check.SeverityLow, check.StatusPass),
		newStub("oauth-b", check.CategoryOAuth, check.SeverityLow, check.StatusPass),
	}

	report, err := NewRunner(registered, cfg).Run(context.Background(), testContext())
	require.NoError(t, err)

	require.Len(t, report.Results, 1)
	assert.Equal(t, "oauth-b", report.Results[0].CheckID)
}

func TestRunAppliesStatusOverrides(t *testing.T) {
	t.Parallel()

	cfg, err := config.Parse([]byte(`
target: https://auth.example.com
oauth:
  warns: error
  fails: warning
`))
	require.NoError(t, err)

	registered := []check.Check{
		newStub("warns", check.CategoryOAuth, check.SeverityMedium, check.StatusWarning),
		newStub("fails", check.CategoryOAuth, check.SeverityMedium, check.StatusFail),
		newStub("passes", check.CategoryOAuth, check.SeverityMedium, check.StatusPass),
	}

	report, err := NewRunner(registered, cfg).Run(context.Background(), testContext())
	require.NoError(t, err)
	require.Len(t, report.Results, 3)

	byID := make(map[string]*check.Result)
	for _, r := range report.Results {
		byID[r.CheckID] = r
	}

	assert.Equal(t, check.StatusFail, byID["warns"].Status)
	assert.Equal(t, true, byID["warns"].Metadata["status_forced"])
	assert.Equal(t, check.StatusWarning, byID["fails"].Status)
	assert.Equal(t, check.StatusPass, byID["passes"].Status)
	assert.Nil(t, byID["passes"].Metadata["status_forced"])
}

func TestRunConvertsPanicToErrorResult(t *testing.T) {
	t.Parallel()

	panicking := &stubCheck{Base: check.NewBase("boom", "boom", check.CategoryOAuth, check.SeverityLow, "stub")}
	panicking.execute = func(_ context.Context, _ *check.Context) *check.Result {
		panic("nil dereference")
	}

	registered := []check.Check{
		panicking,
		newStub("after", check.CategoryOAuth, check.SeverityLow, check.StatusPass),
	}

	report, err := NewRunner(registered, nil).Run(context.Background(), testContext())
	require.NoError(t, err)
	require.Len(t, report.Results, 2)

	boom := report.Results[0]
	assert.Equal(t, check.StatusError, boom.Status)
	assert.Contains(t, boom.Message, "nil dereference")
	assert.NotEmpty(t, boom.Metadata["stack"])

	assert.Equal(t, check.StatusPass, report.Results[1].Status)
}

func TestRunFailureThreshold(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		failOn     string
		status     check.Status
		severity   check.Severity
		wantFailed bool
	}{
		{name: "fail at threshold", failOn: "high", status: check.StatusFail, severity: check.SeverityHigh, wantFailed: true},
		{name: "fail above threshold", failOn: "medium", status: check.StatusFail, severity: check.SeverityCritical, wantFailed: true},
		{name: "fail below threshold", failOn: "high", status: check.StatusFail, severity: check.SeverityMedium, wantFailed: false},
		{name: "warning never fails the run", failOn: "info", status: check.StatusWarning, severity: check.SeverityCritical, wantFailed: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := &config.Config{Reporting: config.ReportingConfig{FailOn: tt.failOn}}
			registered := []check.Check{newStub("one", check.CategoryOAuth, tt.severity, tt.status)}

			report, err := NewRunner(registered, cfg).Run(context.Background(), testContext())
			require.NoError(t, err)
			assert.Equal(t, tt.wantFailed, report.Summary.OverallFailed)
		})
	}
}

func TestRunFailOnError(t *testing.T) {
	t.Parallel()

	erroring := &stubCheck{Base: check.NewBase("err", "err", check.CategoryOAuth, check.SeverityLow, "stub")}
	erroring.execute = func(_ context.Context, _ *check.Context) *check.Result {
		return erroring.Error(assert.AnError)
	}
	registered := []check.Check{erroring}

	report, err := NewRunner(registered, nil).Run(context.Background(), testContext())
	require.NoError(t, err)
	assert.False(t, report.Summary.OverallFailed)

	cfg := &config.Config{Reporting: config.ReportingConfig{FailOnError: true}}
	report, err = NewRunner(registered, cfg).Run(context.Background(), testContext())
	require.NoError(t, err)
	assert.True(t, report.Summary.OverallFailed)
	assert.Equal(t, 1, report.Summary.ByStatus[check.StatusError])
}

func TestRunInvalidFailOnIsRejected(t *testing.T) {
	t.Parallel()

	cfg := &config.Config{Reporting: config.ReportingConfig{FailOn: "fatal"}}
	_, err := NewRunner(nil, cfg).Run(context.Background(), testContext())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failOn")
}

func TestRunCancellationOmitsUnstartedChecks(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())

	cancelling := &stubCheck{Base: check.NewBase("first", "first", check.CategoryOAuth, check.SeverityLow, "stub")}
	cancelling.execute = func(_ context.Context, _ *check.Context) *check.Result {
		cancel()
		return cancelling.Pass("ran before cancel", nil)
	}

	registered := []check.Check{
		cancelling,
		newStub("second", check.CategoryOAuth, check.SeverityLow, check.StatusPass),
		newStub("third", check.CategoryOAuth, check.SeverityLow, check.StatusPass),
	}

	// Serial execution makes the cancellation point deterministic.
	report, err := NewRunner(registered, nil, WithConcurrency(1)).Run(ctx, testContext())
	require.NoError(t, err)

	require.Len(t, report.Results, 1)
	assert.Equal(t, "first", report.Results[0].CheckID)
	assert.Equal(t, 1, report.Summary.Total)
	assert.Zero(t, report.Summary.ByStatus[check.StatusSkip])
}
