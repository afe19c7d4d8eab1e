// SPDX-FileCopyrightText: Copyright 2026 oauth-guardian authors
// SPDX-License-Identifier: Apache-2.0

package checks

import (
	"context"
	"fmt"
	"strings"

	"github.com/asg5704/oauth-guardian-sub001/check"
	"github.com/asg5704/oauth-guardian-sub001/oauth"
)

// ImplicitFlowCheck flags authorization servers that still advertise the
// deprecated implicit grant (access tokens in the front channel).
type ImplicitFlowCheck struct {
	check.Base
}

// NewImplicitFlowCheck creates the implicit flow check.
func NewImplicitFlowCheck() *ImplicitFlowCheck {
	return &ImplicitFlowCheck{Base: check.NewBase(
		"owasp-implicit-flow",
		"Implicit flow exposure",
		check.CategoryOWASP,
		check.SeverityHigh,
		"Flags response types that deliver access tokens via the deprecated implicit grant.",
		"https://datatracker.ietf.org/doc/html/draft-ietf-oauth-security-topics#section-2.1.2",
		"https://cheatsheetseries.owasp.org/cheatsheets/OAuth2_Cheat_Sheet.html",
	)}
}

// Execute implements check.Check.
func (c *ImplicitFlowCheck) Execute(ctx context.Context, cc *check.Context) *check.Result {
	if r := c.GuardContext(cc); r != nil {
		return r
	}

	res, err := cc.Discovery.Discover(ctx, cc.TargetURL)
	if err != nil {
		return c.Error(err)
	}
	if !res.Success {
		return c.DiscoveryFailedWarning(res)
	}
	m := res.Metadata

	var implicit []string
	for _, rt := range m.ResponseTypesSupported {
		for _, component := range strings.Fields(rt) {
			if component == oauth.ResponseTypeToken {
				implicit = append(implicit, rt)
				break
			}
		}
	}

	evidence := check.Metadata{
		"response_types":      m.ResponseTypesSupported,
		"implicit_grant_type": m.SupportsGrantType(oauth.GrantTypeImplicit),
	}

	if len(implicit) == 0 {
		return c.Pass("no access-token-bearing implicit response types advertised", evidence)
	}

	evidence["implicit_response_types"] = implicit
	return c.Fail(
		fmt.Sprintf("implicit flow response types advertised: %s", strings.Join(implicit, ", ")),
		"Disable the implicit grant and migrate clients to the authorization code "+
			"flow with PKCE; access tokens must not transit the front channel.",
		evidence,
	)
}

// TokenEndpointAuthCheck audits the client authentication methods accepted
// at the token endpoint.
type TokenEndpointAuthCheck struct {
	check.Base
}

// NewTokenEndpointAuthCheck creates the token endpoint authentication check.
func NewTokenEndpointAuthCheck() *TokenEndpointAuthCheck {
	return &TokenEndpointAuthCheck{Base: check.NewBase(
		"owasp-token-endpoint-auth",
		"Token endpoint authentication",
		check.CategoryOWASP,
		check.SeverityMedium,
		"Audits the client authentication methods accepted at the token endpoint.",
		"https://datatracker.ietf.org/doc/html/rfc8414#section-2",
		"https://cheatsheetseries.owasp.org/cheatsheets/OAuth2_Cheat_Sheet.html",
	)}
}

// Execute implements check.Check.
func (c *TokenEndpointAuthCheck) Execute(ctx context.Context, cc *check.Context) *check.Result {
	if r := c.GuardContext(cc); r != nil {
		return r
	}

	res, err := cc.Discovery.Discover(ctx, cc.TargetURL)
	if err != nil {
		return c.Error(err)
	}
	if !res.Success {
		return c.DiscoveryFailedWarning(res)
	}
	m := res.Metadata

	methods := m.TokenEndpointAuthMethodsSupported
	evidence := check.Metadata{"token_endpoint_auth_methods": methods}

	if len(methods) == 0 {
		return c.Info("token_endpoint_auth_methods_supported not declared; the RFC 8414 "+
			"default client_secret_basic applies", evidence)
	}

	confidential := false
	for _, method := range methods {
		if method != oauth.TokenEndpointAuthMethodNone {
			confidential = true
			break
		}
	}
	if !confidential {
		return c.Warn(
			"token endpoint accepts only unauthenticated (public) clients",
			"Offer an authenticated client method (client_secret_basic, private_key_jwt) "+
				"for confidential clients, and bind public clients with PKCE.",
			evidence,
		)
	}

	return c.Pass("token endpoint accepts authenticated client methods", evidence)
}

// OpenRegistrationCheck reports whether dynamic client registration is
// exposed. Exposure is not a defect on its own, so the finding is advisory.
type OpenRegistrationCheck struct {
	check.Base
}

// NewOpenRegistrationCheck creates the dynamic registration advisory check.
func NewOpenRegistrationCheck() *OpenRegistrationCheck {
	return &OpenRegistrationCheck{Base: check.NewBase(
		"owasp-open-registration",
		"Dynamic client registration exposure",
		check.CategoryOWASP,
		check.SeverityInfo,
		"Reports whether a dynamic client registration endpoint is advertised.",
		"https://datatracker.ietf.org/doc/html/rfc7591",
		"https://cheatsheetseries.owasp.org/cheatsheets/OAuth2_Cheat_Sheet.html",
	)}
}

// Execute implements check.Check.
func (c *OpenRegistrationCheck) Execute(ctx context.Context, cc *check.Context) *check.Result {
	if r := c.GuardContext(cc); r != nil {
		return r
	}

	res, err := cc.Discovery.Discover(ctx, cc.TargetURL)
	if err != nil {
		return c.Error(err)
	}
	if !res.Success {
		return c.DiscoveryFailedWarning(res)
	}
	m := res.Metadata

	if m.RegistrationEndpoint == "" {
		return c.Pass("no dynamic client registration endpoint advertised", nil)
	}

	return c.Info(
		fmt.Sprintf("dynamic client registration endpoint advertised at %s; verify it "+
			"requires an initial access token or is otherwise rate-limited",
			m.RegistrationEndpoint),
		check.Metadata{"registration_endpoint": m.RegistrationEndpoint},
	)
}
