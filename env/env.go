// SPDX-FileCopyrightText: Copyright 2026 oauth-guardian authors
// SPDX-License-Identifier: Apache-2.0

package env

//go:generate mockgen -source=env.go -destination=mocks/mock_reader.go -package=mocks Reader

import "os"

// Reader abstracts environment variable access so the logger's environment
// probing can be tested without mutating the real process environment.
type Reader interface {
	Getenv(key string) string
}

// OSReader reads from the real process environment.
type OSReader struct{}

// Getenv returns the value of the named environment variable, empty when unset.
func (*OSReader) Getenv(key string) string {
	return os.Getenv(key)
}
