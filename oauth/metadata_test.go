// SPDX-FileCopyrightText: Copyright 2026 oauth-guardian authors
// SPDX-License-Identifier: Apache-2.0

package oauth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServerMetadata_IsOIDCProvider(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		responseTypes []string
		want          bool
	}{
		{"nil slice", nil, false},
		{"code only", []string{"code"}, false},
		{"standalone id_token", []string{"code", "id_token"}, true},
		{"compound response type", []string{"code id_token"}, true},
		{"token is not id_token", []string{"token"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			m := ServerMetadata{ResponseTypesSupported: tt.responseTypes}
			assert.Equal(t, tt.want, m.IsOIDCProvider())
		})
	}
}

func TestServerMetadata_SupportsPKCE(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		methods []string
		want    bool
	}{
		{"nil slice", nil, false},
		{"only plain", []string{"plain"}, false},
		{"S256 present", []string{"S256"}, true},
		{"both plain and S256", []string{"plain", "S256"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			m := ServerMetadata{CodeChallengeMethodsSupported: tt.methods}
			assert.Equal(t, tt.want, m.SupportsPKCE())
		})
	}
}

func TestServerMetadata_SupportsGrantType(t *testing.T) {
	t.Parallel()

	m := ServerMetadata{GrantTypesSupported: []string{GrantTypeAuthorizationCode}}
	assert.True(t, m.SupportsGrantType(GrantTypeAuthorizationCode))
	assert.False(t, m.SupportsGrantType(GrantTypeRefreshToken))

	empty := ServerMetadata{}
	assert.False(t, empty.SupportsGrantType(GrantTypeAuthorizationCode))
}

func TestServerMetadata_SupportsClaim(t *testing.T) {
	t.Parallel()

	m := ServerMetadata{ClaimsSupported: []string{"sub", "acr", "auth_time"}}
	assert.True(t, m.SupportsClaim(ClaimACR))
	assert.True(t, m.SupportsClaim(ClaimAuthTime))
	assert.False(t, m.SupportsClaim(ClaimAMR))

	absent := ServerMetadata{}
	assert.False(t, absent.SupportsClaim(ClaimACR))
	assert.Nil(t, absent.ClaimsSupported)
}

func TestServerMetadata_Endpoints(t *testing.T) {
	t.Parallel()

	m := ServerMetadata{
		Issuer:                "https://auth.example.com",
		AuthorizationEndpoint: "https://auth.example.com/authorize",
		TokenEndpoint:         "https://auth.example.com/token",
	}

	endpoints := m.Endpoints()
	assert.Equal(t, map[string]string{
		"authorization_endpoint": "https://auth.example.com/authorize",
		"token_endpoint":         "https://auth.example.com/token",
	}, endpoints)
}

func TestServerMetadata_AsMap(t *testing.T) {
	t.Parallel()

	m := ServerMetadata{
		Issuer:                 "https://auth.example.com",
		ResponseTypesSupported: []string{"code", "id_token"},
	}

	doc, err := m.AsMap()
	require.NoError(t, err)

	assert.Equal(t, "https://auth.example.com", doc["issuer"])
	assert.Equal(t, []any{"code", "id_token"}, doc["response_types_supported"])
	_, present := doc["claims_supported"]
	assert.False(t, present, "absent fields should be omitted")
}
