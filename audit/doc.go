// SPDX-FileCopyrightText: Copyright 2026 oauth-guardian authors
// SPDX-License-Identifier: Apache-2.0

// Package audit owns the registered check set and produces the final report
// payload. The Runner selects checks through configuration filters, executes
// them concurrently against one shared context, applies per-check overrides,
// and aggregates the ordered results with a run-level summary consumed by
// report renderers.
package audit
