// SPDX-FileCopyrightText: Copyright 2026 oauth-guardian authors
// SPDX-License-Identifier: Apache-2.0

package recovery

import (
	"fmt"
	"runtime/debug"
)

// PanicError carries the recovered panic value and the stack captured at the
// point of recovery. The audit runner converts it into an ERROR result so a
// single broken check cannot abort the run.
type PanicError struct {
	Value any
	Stack []byte
}

// Error implements the error interface.
func (e *PanicError) Error() string {
	return fmt.Sprintf("panic: %v", e.Value)
}

// Go runs fn, converting any panic into a *PanicError. A nil return means fn
// completed without panicking; fn's own error, if any, is returned unchanged.
func Go(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &PanicError{Value: r, Stack: debug.Stack()}
		}
	}()
	return fn()
}
