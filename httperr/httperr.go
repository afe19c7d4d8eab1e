// SPDX-FileCopyrightText: Copyright 2026 oauth-guardian authors
// SPDX-License-Identifier: Apache-2.0

// Package httperr provides error types carrying HTTP status codes through
// the discovery call stack.
package httperr

import (
	"errors"
	"net/http"
)

// StatusTransportError is the sentinel status recorded for a discovery
// attempt that never produced an HTTP response (DNS failure, connection
// refused, timeout). It deliberately sits outside the valid HTTP status
// range so renderers can distinguish it from real response codes.
const StatusTransportError = 0

// CodedError wraps an error with an HTTP status code.
// This allows errors to carry the status of the response that caused them
// through the call stack, so discovery can classify each attempt without
// string-matching error messages.
type CodedError struct {
	err  error
	code int
}

// Error implements the error interface.
func (e *CodedError) Error() string {
	return e.err.Error()
}

// Unwrap returns the underlying error for errors.Is() and errors.As() compatibility.
func (e *CodedError) Unwrap() error {
	return e.err
}

// HTTPCode returns the HTTP status code associated with this error.
func (e *CodedError) HTTPCode() int {
	return e.code
}

// WithCode wraps an error with an HTTP status code.
// The returned error implements Unwrap() for use with errors.Is() and errors.As().
// If err is nil, WithCode returns nil.
func WithCode(err error, code int) error {
	if err == nil {
		return nil
	}
	return &CodedError{err: err, code: code}
}

// Code extracts the HTTP status code from an error.
// It unwraps the error chain looking for a CodedError.
// If no CodedError is found, it returns StatusTransportError, treating the
// error as a transport-level failure that never reached the server.
func Code(err error) int {
	if err == nil {
		return http.StatusOK
	}

	var coded *CodedError
	if errors.As(err, &coded) {
		return coded.code
	}

	return StatusTransportError
}

// New creates a new error with the given message and HTTP status code.
// This is a convenience function equivalent to WithCode(errors.New(message), code).
func New(message string, code int) error {
	return &CodedError{err: errors.New(message), code: code}
}
