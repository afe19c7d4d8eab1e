// SPDX-FileCopyrightText: Copyright 2026 oauth-guardian authors
// SPDX-License-Identifier: Apache-2.0

// Package recovery provides panic recovery for check execution.
//
// A check that panics (unexpected nil dereference, index out of range) must
// not abort the overall audit. The runner wraps every check execution in
// recovery.Go and converts a recovered panic into an ERROR result carrying
// the original panic message.
//
// # Basic Usage
//
//	err := recovery.Go(func() error {
//		result = chk.Execute(ctx)
//		return nil
//	})
//	var pe *recovery.PanicError
//	if errors.As(err, &pe) {
//		// build an ERROR result from pe
//	}
package recovery
