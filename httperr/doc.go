// SPDX-FileCopyrightText: Copyright 2026 oauth-guardian authors
// SPDX-License-Identifier: Apache-2.0

/*
Package httperr provides error types with HTTP status codes for classifying
discovery outcomes.

Every discovery attempt is recorded with the status code of the response
that ended it. Attempts that fail before any response arrives (DNS failure,
connection refused, timeout) carry the StatusTransportError sentinel instead
of a real code. CodedError lets that status travel with the error through
the call stack, supporting errors.Is() and errors.As().

# Basic Usage

Create errors with HTTP status codes:

	// Create a new error with a status code
	err := httperr.New("metadata endpoint returned 404", http.StatusNotFound)

	// Wrap an existing error with a status code
	err := httperr.WithCode(err, http.StatusBadGateway)

# Extracting Status Codes

Extract the HTTP status code from an error chain:

	code := httperr.Code(err)
	// Returns the code if err contains a CodedError
	// Returns httperr.StatusTransportError (0) if no CodedError found
	// Returns http.StatusOK (200) if err is nil

# Error Wrapping

CodedError supports the standard Go error wrapping pattern:

	sentinel := errors.New("metadata document invalid")
	err := httperr.WithCode(sentinel, http.StatusOK)

	// errors.Is works through the wrapper
	if errors.Is(err, sentinel) {
		// handle specific error
	}

	// errors.As can extract the CodedError
	var coded *httperr.CodedError
	if errors.As(err, &coded) {
		log.Printf("HTTP %d: %s", coded.HTTPCode(), coded.Error())
	}
*/
package httperr
