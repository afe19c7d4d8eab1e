// SPDX-FileCopyrightText: Copyright 2026 oauth-guardian authors
// SPDX-License-Identifier: Apache-2.0

package check

import (
	"context"
	"fmt"

	"github.com/asg5704/oauth-guardian-sub001/nist"
	"github.com/asg5704/oauth-guardian-sub001/oauth"
)

// NISTBase extends Base with the helpers every NIST-category check needs:
// metadata discovery, OIDC capability detection, and ACR-to-AAL inference.
// It lives in the composition layer, not an inheritance chain; a new check
// category adds a helper struct like this one, not a subclass.
type NISTBase struct {
	Base
}

// NewNISTBase creates the descriptor for a NIST-category check.
func NewNISTBase(id, name string, severity Severity, description string, references ...string) NISTBase {
	return NISTBase{Base: NewBase(id, name, CategoryNIST, severity, description, references...)}
}

// DiscoverMetadata fetches the target's metadata through the context's
// memoized discovery client. The result is shared across all checks in the
// run; at most one network fetch per target occurs.
func (n *NISTBase) DiscoverMetadata(ctx context.Context, cc *Context) (*oauth.DiscoveryResult, error) {
	return cc.Discovery.Discover(ctx, cc.TargetURL)
}

// IsOIDCProvider reports whether the discovered server advertises OIDC
// capability (response_types_supported contains id_token).
func (*NISTBase) IsOIDCProvider(m *oauth.ServerMetadata) bool {
	return m.IsOIDCProvider()
}

// AALSupport is the outcome of DetectAALSupport. When the provider declares
// no ACR values, Detection.CanDetermine is false and Ambiguous separates
// "acr/amr claims advertised, values not enumerated" (manual verification
// needed) from plain absence of support.
type AALSupport struct {
	Detection nist.Detection
	Ambiguous bool
}

// DetectAALSupport infers the target's assurance-level support from its
// advertised ACR values and claims.
func (*NISTBase) DetectAALSupport(m *oauth.ServerMetadata) AALSupport {
	detection := nist.MapAcrToAal(m.ACRValuesSupported)

	ambiguous := false
	if !detection.CanDetermine {
		ambiguous = m.SupportsClaim(oauth.ClaimACR) || m.SupportsClaim(oauth.ClaimAMR)
	}

	return AALSupport{Detection: detection, Ambiguous: ambiguous}
}

// FormatAAL renders a human-readable assurance level label.
func (*NISTBase) FormatAAL(level nist.AssuranceLevel) string {
	return fmt.Sprintf("NIST %s", level)
}
