// SPDX-FileCopyrightText: Copyright 2026 oauth-guardian authors
// SPDX-License-Identifier: Apache-2.0

// Package check defines the polymorphic check contract and the shared
// vocabulary of audit results.
//
// A Check is a single unit of analysis executed against an audit Context.
// The Base struct standardizes result construction so individual checks
// only supply their message, remediation, and evidence; NISTBase layers the
// discovery and assurance-level helpers that NIST-category checks share.
//
// Results use a closed Status set (PASS, FAIL, WARNING, ERROR, SKIP, INFO)
// and an ordered Severity scale. ERROR marks tool or environment defects
// and never carries remediation; SKIP marks checks whose preconditions do
// not hold for the target.
package check
