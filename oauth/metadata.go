// SPDX-FileCopyrightText: Copyright 2026 oauth-guardian authors
// SPDX-License-Identifier: Apache-2.0

package oauth

import (
	"encoding/json"
	"strings"
)

// ServerMetadata is the normalized OAuth 2.0 / OIDC server metadata document
// per RFC 8414 and OpenID Connect Discovery 1.0. It is immutable once
// fetched and shared by reference across all checks in one audit run.
//
// Slice fields distinguish "absent" (nil) from "declared empty": an absent
// claims_supported means the provider said nothing about claims, not that it
// supports none.
type ServerMetadata struct {
	// Issuer is the authorization server's issuer identifier (REQUIRED per
	// RFC 8414). It is the identity key for the document.
	Issuer string `json:"issuer"`

	// AuthorizationEndpoint is the URL of the authorization endpoint (RECOMMENDED).
	AuthorizationEndpoint string `json:"authorization_endpoint,omitempty"`

	// TokenEndpoint is the URL of the token endpoint (RECOMMENDED).
	TokenEndpoint string `json:"token_endpoint,omitempty"`

	// JWKSURI is the URL of the JSON Web Key Set document (RECOMMENDED).
	JWKSURI string `json:"jwks_uri,omitempty"`

	// RegistrationEndpoint is the URL of the Dynamic Client Registration endpoint (OPTIONAL).
	RegistrationEndpoint string `json:"registration_endpoint,omitempty"`

	// IntrospectionEndpoint is the URL of the token introspection endpoint (OPTIONAL, RFC 7662).
	IntrospectionEndpoint string `json:"introspection_endpoint,omitempty"`

	// UserinfoEndpoint is the URL of the UserInfo endpoint (OPTIONAL, OIDC specific).
	UserinfoEndpoint string `json:"userinfo_endpoint,omitempty"`

	// ResponseTypesSupported lists the response types supported (RECOMMENDED).
	ResponseTypesSupported []string `json:"response_types_supported,omitempty"`

	// GrantTypesSupported lists the grant types supported (OPTIONAL).
	GrantTypesSupported []string `json:"grant_types_supported,omitempty"`

	// CodeChallengeMethodsSupported lists the PKCE code challenge methods supported (OPTIONAL).
	CodeChallengeMethodsSupported []string `json:"code_challenge_methods_supported,omitempty"`

	// TokenEndpointAuthMethodsSupported lists the authentication methods supported
	// at the token endpoint (OPTIONAL).
	TokenEndpointAuthMethodsSupported []string `json:"token_endpoint_auth_methods_supported,omitempty"`

	// ScopesSupported lists the OAuth 2.0 scope values supported (RECOMMENDED per RFC 8414).
	ScopesSupported []string `json:"scopes_supported,omitempty"`

	// SubjectTypesSupported lists the subject identifier types supported (OIDC).
	SubjectTypesSupported []string `json:"subject_types_supported,omitempty"`

	// IDTokenSigningAlgValuesSupported lists the JWS algorithms supported for ID tokens (OIDC).
	IDTokenSigningAlgValuesSupported []string `json:"id_token_signing_alg_values_supported,omitempty"`

	// ClaimsSupported lists the claims that can be returned (RECOMMENDED for OIDC).
	// Absent means unknown, not empty.
	ClaimsSupported []string `json:"claims_supported,omitempty"`

	// ACRValuesSupported lists the Authentication Context Class References the
	// provider advertises, in provider-declared order. The order is preserved
	// and treated as significant for display.
	ACRValuesSupported []string `json:"acr_values_supported,omitempty"`
}

// IsOIDCProvider reports whether the server advertises OIDC capability,
// defined as response_types_supported containing id_token.
func (m *ServerMetadata) IsOIDCProvider() bool {
	return m.SupportsResponseType(ResponseTypeIDToken)
}

// SupportsResponseType returns true if response_types_supported contains the
// given response type, either standalone or as a component of a compound
// value like "code id_token".
func (m *ServerMetadata) SupportsResponseType(responseType string) bool {
	for _, rt := range m.ResponseTypesSupported {
		for _, component := range strings.Fields(rt) {
			if component == responseType {
				return true
			}
		}
	}
	return false
}

// SupportsPKCE returns true if the authorization server supports PKCE with S256.
func (m *ServerMetadata) SupportsPKCE() bool {
	for _, method := range m.CodeChallengeMethodsSupported {
		if method == PKCEMethodS256 {
			return true
		}
	}
	return false
}

// SupportsGrantType returns true if the authorization server supports the given grant type.
func (m *ServerMetadata) SupportsGrantType(grantType string) bool {
	for _, gt := range m.GrantTypesSupported {
		if gt == grantType {
			return true
		}
	}
	return false
}

// SupportsClaim returns true if claims_supported declares the given claim.
// It returns false when claims_supported is absent; callers that need the
// absent/empty distinction check ClaimsSupported == nil themselves.
func (m *ServerMetadata) SupportsClaim(claim string) bool {
	for _, c := range m.ClaimsSupported {
		if c == claim {
			return true
		}
	}
	return false
}

// Endpoints returns the advertised endpoint URLs keyed by their metadata
// field name, omitting absent ones. Checks that validate endpoint transport
// security iterate this map.
func (m *ServerMetadata) Endpoints() map[string]string {
	endpoints := make(map[string]string)
	for name, u := range map[string]string{
		"authorization_endpoint": m.AuthorizationEndpoint,
		"token_endpoint":         m.TokenEndpoint,
		"jwks_uri":               m.JWKSURI,
		"registration_endpoint":  m.RegistrationEndpoint,
		"introspection_endpoint": m.IntrospectionEndpoint,
		"userinfo_endpoint":      m.UserinfoEndpoint,
	} {
		if u != "" {
			endpoints[name] = u
		}
	}
	return endpoints
}

// AsMap renders the document as a generic map for expression evaluation.
// Absent fields are omitted, matching the wire document shape.
func (m *ServerMetadata) AsMap() (map[string]any, error) {
	data, err := json.Marshal(m)
	if err != nil {
		return nil, err
	}
	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return doc, nil
}
