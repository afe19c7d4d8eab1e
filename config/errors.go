// SPDX-FileCopyrightText: Copyright 2026 oauth-guardian authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"fmt"
	"strings"
)

// ValidationError aggregates every violation found in one configuration
// document. Messages are path-qualified so the user can fix all problems in
// a single pass instead of replaying the parser one error at a time.
type ValidationError struct {
	Messages []string
}

// Error implements the error interface with a numbered list of violations.
func (e *ValidationError) Error() string {
	if len(e.Messages) == 1 {
		return fmt.Sprintf("invalid configuration: %s", e.Messages[0])
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("invalid configuration (%d errors):", len(e.Messages)))
	for i, msg := range e.Messages {
		sb.WriteString(fmt.Sprintf("\n  %d. %s", i+1, msg))
	}
	return sb.String()
}
