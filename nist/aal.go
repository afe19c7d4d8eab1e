// SPDX-FileCopyrightText: Copyright 2026 oauth-guardian authors
// SPDX-License-Identifier: Apache-2.0

// Package nist maps advertised Authentication Context Class Reference (ACR)
// values to NIST SP 800-63B Authenticator Assurance Levels (AALs).
package nist

import (
	"fmt"
	"slices"
)

// AssuranceLevel is a NIST SP 800-63B Authenticator Assurance Level.
// Levels are totally ordered: AAL1 < AAL2 < AAL3.
type AssuranceLevel int

const (
	// AAL1 provides some assurance; single-factor authentication suffices.
	AAL1 AssuranceLevel = iota + 1
	// AAL2 requires two distinct authentication factors.
	AAL2
	// AAL3 requires a hardware-based authenticator and verifier impersonation resistance.
	AAL3
)

// String returns the human-readable label for the level.
func (l AssuranceLevel) String() string {
	switch l {
	case AAL1:
		return "AAL1"
	case AAL2:
		return "AAL2"
	case AAL3:
		return "AAL3"
	default:
		return fmt.Sprintf("AssuranceLevel(%d)", int(l))
	}
}

// Confidence rates how completely the declared ACR values mapped to known
// assurance levels.
type Confidence string

const (
	// ConfidenceExact means every declared ACR value mapped.
	ConfidenceExact Confidence = "exact"
	// ConfidenceHeuristic means some but not all declared values mapped.
	ConfidenceHeuristic Confidence = "heuristic"
	// ConfidenceNone means values were declared but none mapped.
	ConfidenceNone Confidence = "none"
)

// AcrAnalysis is the per-value breakdown of an ACR mapping. AcrValues holds
// recognized values keyed to their level; UnmappedValues holds the declared
// values with no known mapping, in declaration order.
type AcrAnalysis struct {
	AcrValues      map[string]AssuranceLevel `json:"acr_values"`
	UnmappedValues []string                  `json:"unmapped_values,omitempty"`
	Confidence     Confidence                `json:"confidence"`
}

// Detection is the structured outcome of mapping a provider's declared ACR
// values to assurance levels.
type Detection struct {
	// HighestAAL is the maximum mapped level under the AAL total order,
	// zero when nothing mapped.
	HighestAAL AssuranceLevel

	// SupportedAALs holds the deduplicated mapped levels in ascending order.
	SupportedAALs []AssuranceLevel

	// Analysis is the per-value breakdown.
	Analysis AcrAnalysis

	// CanDetermine is false only when no ACR values were declared at all.
	// Declared-but-unrecognized values still allow a determination attempt
	// (Confidence none).
	CanDetermine bool
}

// Supports reports whether the detection found the given level among the
// mapped ones.
func (d Detection) Supports(level AssuranceLevel) bool {
	for _, l := range d.SupportedAALs {
		if l == level {
			return true
		}
	}
	return false
}

// acrTable is the canonical lookup table from ACR value to assurance level:
// the NIST SP 800-63-3 URNs plus pre-registered provider aliases
// (Login.gov publishes idmanagement.gov ACR URIs).
var acrTable = map[string]AssuranceLevel{
	"urn:nist:800-63-3:aal:1": AAL1,
	"urn:nist:800-63-3:aal:2": AAL2,
	"urn:nist:800-63-3:aal:3": AAL3,

	"http://idmanagement.gov/ns/assurance/aal/1": AAL1,
	"http://idmanagement.gov/ns/assurance/aal/2": AAL2,
	"http://idmanagement.gov/ns/assurance/aal/3": AAL3,
}

// URN returns the canonical NIST URN for the level.
func (l AssuranceLevel) URN() string {
	return fmt.Sprintf("urn:nist:800-63-3:aal:%d", int(l))
}

// MapAcrToAal maps a provider's declared acr_values_supported to NIST
// assurance levels.
//
// When no values are declared the result has CanDetermine false and the
// caller decides, from claims_supported, whether the provider is ambiguous
// (acr/amr claims advertised without enumerated values) or simply without
// support. Otherwise every declared value is looked up exactly in the
// canonical table; matches contribute their level, non-matches are recorded
// in declaration order and do not affect the supported set.
//
// The mapping is deterministic and order-independent on its output set.
func MapAcrToAal(acrValuesSupported []string) Detection {
	if len(acrValuesSupported) == 0 {
		return Detection{
			Analysis: AcrAnalysis{
				AcrValues:  map[string]AssuranceLevel{},
				Confidence: ConfidenceNone,
			},
			CanDetermine: false,
		}
	}

	mapped := make(map[string]AssuranceLevel)
	var unmapped []string
	seen := make(map[AssuranceLevel]bool)
	var supported []AssuranceLevel

	for _, acr := range acrValuesSupported {
		level, ok := acrTable[acr]
		if !ok {
			unmapped = append(unmapped, acr)
			continue
		}
		mapped[acr] = level
		if !seen[level] {
			seen[level] = true
			supported = append(supported, level)
		}
	}

	// Ascending under the AAL total order, never lexical.
	slices.Sort(supported)

	var highest AssuranceLevel
	if len(supported) > 0 {
		highest = supported[len(supported)-1]
	}

	confidence := ConfidenceNone
	switch {
	case len(unmapped) == 0:
		confidence = ConfidenceExact
	case len(mapped) > 0:
		confidence = ConfidenceHeuristic
	}

	return Detection{
		HighestAAL:    highest,
		SupportedAALs: supported,
		Analysis: AcrAnalysis{
			AcrValues:      mapped,
			UnmappedValues: unmapped,
			Confidence:     confidence,
		},
		CanDetermine: true,
	}
}
