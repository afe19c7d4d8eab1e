// SPDX-FileCopyrightText: Copyright 2026 oauth-guardian authors
// SPDX-License-Identifier: Apache-2.0

package check

import (
	"fmt"
	"strings"
	"time"
)

// Status is the outcome classification of one executed check.
type Status string

const (
	// StatusPass means the audited property holds.
	StatusPass Status = "PASS"
	// StatusFail means the audited property is violated.
	StatusFail Status = "FAIL"
	// StatusWarning means the property could not be confirmed or is weakly
	// held; findings that need manual verification land here.
	StatusWarning Status = "WARNING"
	// StatusError means the audit tool itself could not run the check
	// (missing collaborator, panic). Never a finding about the target.
	StatusError Status = "ERROR"
	// StatusSkip means the check's preconditions are not met for this target.
	StatusSkip Status = "SKIP"
	// StatusInfo means an advisory observation with no pass/fail judgement.
	StatusInfo Status = "INFO"
)

// Severity rates the impact of a finding. The order is total:
// INFO < LOW < MEDIUM < HIGH < CRITICAL.
type Severity int

const (
	// SeverityInfo marks purely informational findings.
	SeverityInfo Severity = iota
	// SeverityLow marks hardening opportunities.
	SeverityLow
	// SeverityMedium marks weaknesses that need a second factor to exploit.
	SeverityMedium
	// SeverityHigh marks directly exploitable weaknesses.
	SeverityHigh
	// SeverityCritical marks weaknesses that compromise the deployment outright.
	SeverityCritical
)

var severityNames = map[Severity]string{
	SeverityInfo:     "INFO",
	SeverityLow:      "LOW",
	SeverityMedium:   "MEDIUM",
	SeverityHigh:     "HIGH",
	SeverityCritical: "CRITICAL",
}

// String returns the canonical upper-case label.
func (s Severity) String() string {
	if name, ok := severityNames[s]; ok {
		return name
	}
	return fmt.Sprintf("Severity(%d)", int(s))
}

// MarshalText implements encoding.TextMarshaler so results serialize with
// labels instead of magic numbers.
func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// ParseSeverity converts a label (any case) into a Severity.
func ParseSeverity(label string) (Severity, error) {
	for sev, name := range severityNames {
		if strings.EqualFold(label, name) {
			return sev, nil
		}
	}
	return SeverityInfo, fmt.Errorf("unknown severity %q", label)
}

// Category groups checks by the guidance body they derive from.
type Category string

const (
	// CategoryOAuth covers OAuth 2.0 protocol best practices.
	CategoryOAuth Category = "OAUTH"
	// CategoryNIST covers NIST SP 800-63B assurance-level compliance.
	CategoryNIST Category = "NIST"
	// CategoryOWASP covers OWASP authentication guidance.
	CategoryOWASP Category = "OWASP"
	// CategoryCustom covers user-defined checks.
	CategoryCustom Category = "CUSTOM"
)

// Metadata is the structured evidence bag attached to a result. Values are
// restricted to serializable shapes (string, number, boolean, string
// sequence, nested Metadata) so every report renderer can serialize it
// uniformly; Normalize coerces anything else to its string form.
type Metadata map[string]any

// Normalize returns a copy with every value coerced to an allowed shape.
func (m Metadata) Normalize() Metadata {
	if m == nil {
		return nil
	}
	out := make(Metadata, len(m))
	for k, v := range m {
		out[k] = normalizeValue(v)
	}
	return out
}

func normalizeValue(v any) any {
	switch val := v.(type) {
	case nil, string, bool,
		int, int32, int64, float32, float64:
		return val
	case []string:
		return val
	case Metadata:
		return val.Normalize()
	case map[string]any:
		return Metadata(val).Normalize()
	case fmt.Stringer:
		return val.String()
	default:
		return fmt.Sprintf("%v", val)
	}
}

// Result is the immutable outcome of one check execution, the unit the
// report renderer consumes.
type Result struct {
	CheckID     string    `json:"check_id"`
	Category    Category  `json:"category"`
	Status      Status    `json:"status"`
	Severity    Severity  `json:"severity"`
	Message     string    `json:"message"`
	Remediation string    `json:"remediation,omitempty"`
	Metadata    Metadata  `json:"metadata,omitempty"`
	Timestamp   time.Time `json:"timestamp"`
}
