// SPDX-FileCopyrightText: Copyright 2026 oauth-guardian authors
// SPDX-License-Identifier: Apache-2.0

package http

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateHeaderName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		header  string
		wantErr bool
	}{
		{"valid simple header", "Authorization", false},
		{"valid custom header", "X-Audit-Run-Id", false},
		{"empty name", "", true},
		{"name with space", "X Custom", true},
		{"name with CRLF", "X-Custom\r\nInjected: value", true},
		{"name with colon", "X-Custom:", true},
		{"name too long", strings.Repeat("a", 257), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := ValidateHeaderName(tt.header)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateHeaderValue(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		value   string
		wantErr bool
	}{
		{"valid value", "Bearer token123", false},
		{"valid value with spaces", "some value here", false},
		{"empty value", "", true},
		{"value with CRLF", "value\r\nX-Injected: evil", true},
		{"value with null byte", "value\x00", true},
		{"value too long", strings.Repeat("a", 8193), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := ValidateHeaderValue(tt.value)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateTargetURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		target  string
		wantErr bool
	}{
		{"valid https target", "https://auth.example.com", false},
		{"valid http target", "http://localhost:8080", false},
		{"valid target with path", "https://auth.example.com/tenant1", false},
		{"empty target", "", true},
		{"missing scheme", "auth.example.com", true},
		{"non-http scheme", "ftp://auth.example.com", true},
		{"missing host", "https://", true},
		{"target with fragment", "https://auth.example.com#section", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := ValidateTargetURL(tt.target)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
