// SPDX-FileCopyrightText: Copyright 2026 oauth-guardian authors
// SPDX-License-Identifier: Apache-2.0

// Package config loads and validates audit configuration.
//
// Configuration is a YAML (or JSON) document validated in two phases: a
// JSON-schema pass for structural violations, then a semantic pass for
// constraints the schema cannot express (URL shape, header tokens, CEL
// expression compilability). All violations from both phases surface as one
// ValidationError with path-qualified messages.
//
// Per-check toggles resolve to Override values the audit runner applies
// after check execution: a check can be disabled outright or have its
// negative findings forced to FAIL or WARNING.
package config
