// SPDX-FileCopyrightText: Copyright 2026 oauth-guardian authors
// SPDX-License-Identifier: Apache-2.0

package oauth

// Well-known endpoint paths as defined by OpenID Connect Discovery 1.0 and RFC 8414.
const (
	// WellKnownOIDCPath is the standard OIDC discovery endpoint path
	// per OpenID Connect Discovery 1.0 specification.
	WellKnownOIDCPath = "/.well-known/openid-configuration"

	// WellKnownOAuthServerPath is the standard OAuth authorization server metadata endpoint path
	// per RFC 8414 (OAuth 2.0 Authorization Server Metadata).
	WellKnownOAuthServerPath = "/.well-known/oauth-authorization-server"
)

// Response types as defined by RFC 6749 and OIDC Core.
const (
	// ResponseTypeCode is the authorization code response type (RFC 6749 Section 4.1.1).
	ResponseTypeCode = "code"

	// ResponseTypeIDToken is the OIDC implicit ID token response type.
	// Its presence in response_types_supported marks an OIDC provider.
	ResponseTypeIDToken = "id_token"

	// ResponseTypeToken is the OAuth 2.0 implicit access token response type,
	// deprecated by the OAuth 2.0 Security Best Current Practice.
	ResponseTypeToken = "token"
)

// Grant types as defined by RFC 6749.
const (
	// GrantTypeAuthorizationCode is the authorization code grant type (RFC 6749 Section 4.1).
	GrantTypeAuthorizationCode = "authorization_code"

	// GrantTypeImplicit is the implicit grant type (RFC 6749 Section 4.2), deprecated.
	GrantTypeImplicit = "implicit"

	// GrantTypeRefreshToken is the refresh token grant type (RFC 6749 Section 6).
	GrantTypeRefreshToken = "refresh_token"
)

// Token endpoint authentication methods as defined by RFC 7591.
const (
	// TokenEndpointAuthMethodNone indicates no client authentication (public clients).
	TokenEndpointAuthMethodNone = "none"
)

// PKCE (Proof Key for Code Exchange) methods as defined by RFC 7636.
const (
	// PKCEMethodS256 uses SHA-256 hash of the code verifier (recommended).
	PKCEMethodS256 = "S256"

	// PKCEMethodPlain sends the code verifier unhashed, acceptable only
	// when S256 is unavailable.
	PKCEMethodPlain = "plain"
)

// OIDC claims the NIST checks inspect in claims_supported.
const (
	// ClaimACR is the Authentication Context Class Reference claim.
	ClaimACR = "acr"

	// ClaimAMR is the Authentication Methods References claim.
	ClaimAMR = "amr"

	// ClaimAuthTime is the time-of-authentication claim, needed to verify
	// reauthentication requirements.
	ClaimAuthTime = "auth_time"
)
