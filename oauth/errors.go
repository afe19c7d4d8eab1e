// SPDX-FileCopyrightText: Copyright 2026 oauth-guardian authors
// SPDX-License-Identifier: Apache-2.0

package oauth

import "errors"

var (
	// ErrMissingIssuer indicates the issuer field is missing from a metadata document.
	ErrMissingIssuer = errors.New("missing issuer")

	// ErrInvalidTargetURL indicates the audit target URL could not be used to
	// build discovery candidates. This is the only hard error discovery raises.
	ErrInvalidTargetURL = errors.New("invalid target URL")
)
