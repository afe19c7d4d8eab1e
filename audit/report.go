// SPDX-FileCopyrightText: Copyright 2026 oauth-guardian authors
// SPDX-License-Identifier: Apache-2.0

package audit

import (
	"time"

	"github.com/asg5704/oauth-guardian-sub001/check"
)

// Summary is the run-level aggregate over all reported results.
type Summary struct {
	// Total is the number of results in the report.
	Total int `json:"total"`

	// ByStatus counts results per status.
	ByStatus map[check.Status]int `json:"by_status"`

	// BySeverity counts FAIL and WARNING results per severity label.
	BySeverity map[string]int `json:"by_severity"`

	// OverallFailed is true when any FAIL result meets the configured
	// failOn severity threshold, or any ERROR result occurred and
	// failOnError is set.
	OverallFailed bool `json:"overall_failed"`
}

// Report is the payload handed to report renderers: the ordered result
// collection plus the run summary. Result order matches check registration
// order, not execution-completion order, so reports are reproducible.
type Report struct {
	Target    string          `json:"target"`
	Timestamp time.Time       `json:"timestamp"`
	Results   []*check.Result `json:"results"`
	Summary   Summary         `json:"summary"`
}

// summarize computes the run summary from the final result list.
func summarize(results []*check.Result, failOn check.Severity, failOnError bool) Summary {
	s := Summary{
		Total:      len(results),
		ByStatus:   make(map[check.Status]int),
		BySeverity: make(map[string]int),
	}

	for _, r := range results {
		s.ByStatus[r.Status]++

		switch r.Status {
		case check.StatusFail:
			s.BySeverity[r.Severity.String()]++
			if r.Severity >= failOn {
				s.OverallFailed = true
			}
		case check.StatusWarning:
			s.BySeverity[r.Severity.String()]++
		case check.StatusError:
			if failOnError {
				s.OverallFailed = true
			}
		}
	}
	return s
}
