// SPDX-FileCopyrightText: Copyright 2026 oauth-guardian authors
// SPDX-License-Identifier: Apache-2.0

package checks

import (
	"context"
	"fmt"

	"github.com/asg5704/oauth-guardian-sub001/check"
	"github.com/asg5704/oauth-guardian-sub001/nist"
	"github.com/asg5704/oauth-guardian-sub001/oauth"
)

// AALCheck audits whether the provider advertises support for one NIST
// SP 800-63B Authenticator Assurance Level. One instance exists per level;
// all share the inference and reporting flow.
type AALCheck struct {
	check.NISTBase
	level nist.AssuranceLevel
}

// NewAALCheck creates the compliance check for the given assurance level.
func NewAALCheck(level nist.AssuranceLevel, severity check.Severity) *AALCheck {
	return &AALCheck{
		NISTBase: check.NewNISTBase(
			fmt.Sprintf("nist-aal%d", int(level)),
			fmt.Sprintf("NIST %s support", level),
			severity,
			fmt.Sprintf("Verifies the provider advertises authentication contexts satisfying NIST %s.", level),
			"https://pages.nist.gov/800-63-3/sp800-63b.html",
			"https://openid.net/specs/openid-connect-core-1_0.html#acrSemantics",
		),
		level: level,
	}
}

// NewAAL1Check creates the AAL1 compliance check.
func NewAAL1Check() *AALCheck { return NewAALCheck(nist.AAL1, check.SeverityMedium) }

// NewAAL2Check creates the AAL2 compliance check.
func NewAAL2Check() *AALCheck { return NewAALCheck(nist.AAL2, check.SeverityMedium) }

// NewAAL3Check creates the AAL3 compliance check.
func NewAAL3Check() *AALCheck { return NewAALCheck(nist.AAL3, check.SeverityLow) }

// Execute implements check.Check.
func (c *AALCheck) Execute(ctx context.Context, cc *check.Context) *check.Result {
	if r := c.GuardContext(cc); r != nil {
		return r
	}

	res, err := c.DiscoverMetadata(ctx, cc)
	if err != nil {
		return c.Error(err)
	}
	if !res.Success {
		return c.DiscoveryFailedWarning(res)
	}
	m := res.Metadata

	if !c.IsOIDCProvider(m) {
		return c.Skip(fmt.Sprintf(
			"target is not an OIDC provider (response_types_supported lacks id_token); "+
				"%s compliance does not apply", c.FormatAAL(c.level)))
	}

	support := c.DetectAALSupport(m)
	evidence := check.Metadata{
		"oidc_provider":       true,
		"acr_values":          m.ACRValuesSupported,
		"auth_time_supported": m.SupportsClaim(oauth.ClaimAuthTime),
	}

	if !support.Detection.CanDetermine {
		if support.Ambiguous {
			evidence["ambiguous"] = true
			return c.Warn(
				fmt.Sprintf("provider advertises acr/amr claims but does not enumerate "+
					"acr_values_supported; %s support requires manual verification",
					c.FormatAAL(c.level)),
				"Enumerate the supported authentication contexts in acr_values_supported "+
					"so relying parties can request a specific assurance level.",
				evidence,
			)
		}
		return c.Warn(
			fmt.Sprintf("provider declares no acr_values_supported; %s support cannot "+
				"be determined from metadata", c.FormatAAL(c.level)),
			"Declare the supported NIST assurance contexts (urn:nist:800-63-3:aal:N) "+
				"in acr_values_supported.",
			evidence,
		)
	}

	d := support.Detection
	advertised := d.Supports(c.level) || d.HighestAAL >= c.level
	evidence[fmt.Sprintf("aal%d_advertised", int(c.level))] = advertised
	evidence["confidence"] = string(d.Analysis.Confidence)
	if d.HighestAAL != 0 {
		evidence["highest_aal"] = d.HighestAAL.String()
	}
	if len(d.Analysis.UnmappedValues) > 0 {
		evidence["unmapped_acr_values"] = d.Analysis.UnmappedValues
	}

	if advertised {
		return c.Pass(fmt.Sprintf(
			"provider advertises authentication contexts satisfying %s",
			c.FormatAAL(c.level)), evidence)
	}

	return c.Fail(
		fmt.Sprintf("provider does not advertise any authentication context "+
			"satisfying %s", c.FormatAAL(c.level)),
		fmt.Sprintf("Support and advertise an authentication context mapping to %s "+
			"(for example %s).", c.FormatAAL(c.level), c.level.URN()),
		evidence,
	)
}
