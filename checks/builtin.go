// SPDX-FileCopyrightText: Copyright 2026 oauth-guardian authors
// SPDX-License-Identifier: Apache-2.0

package checks

import (
	"github.com/asg5704/oauth-guardian-sub001/check"
	"github.com/asg5704/oauth-guardian-sub001/config"
)

// BuiltIn returns the built-in check set in registration order. Report
// ordering follows this order, so it is stable across runs.
func BuiltIn() []check.Check {
	return []check.Check{
		NewPKCECheck(),
		NewHTTPSEndpointsCheck(),
		NewStateParameterCheck(),
		NewRedirectURICheck(),
		NewAAL1Check(),
		NewAAL2Check(),
		NewAAL3Check(),
		NewImplicitFlowCheck(),
		NewTokenEndpointAuthCheck(),
		NewOpenRegistrationCheck(),
	}
}

// All returns the built-in checks followed by the configured custom checks.
func All(cfg *config.Config) ([]check.Check, error) {
	all := BuiltIn()
	custom, err := FromConfig(cfg)
	if err != nil {
		return nil, err
	}
	return append(all, custom...), nil
}
