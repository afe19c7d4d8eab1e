// SPDX-FileCopyrightText: Copyright 2026 oauth-guardian authors
// SPDX-License-Identifier: Apache-2.0

package checks

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/asg5704/oauth-guardian-sub001/check"
	"github.com/asg5704/oauth-guardian-sub001/config"
	"github.com/asg5704/oauth-guardian-sub001/oauth"
)

// newMetadataServer serves the given document at the OIDC well-known path.
// The issuer field is filled with the server's own URL unless the document
// already sets one.
func newMetadataServer(t *testing.T, doc map[string]any) *httptest.Server {
	t.Helper()

	var srv *httptest.Server
	srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != oauth.WellKnownOIDCPath {
			http.NotFound(w, r)
			return
		}
		if _, ok := doc["issuer"]; !ok {
			doc["issuer"] = srv.URL
		}
		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(doc))
	}))
	t.Cleanup(srv.Close)
	return srv
}

// newContext builds a check context wired to the given test server.
func newContext(t *testing.T, srv *httptest.Server, cfg *config.Config) *check.Context {
	t.Helper()

	return &check.Context{
		TargetURL:  srv.URL,
		HTTPClient: srv.Client(),
		Discovery:  oauth.NewClient(oauth.WithHTTPClient(srv.Client())),
		Config:     cfg,
	}
}

// newUnreachableContext builds a context whose target refuses connections.
func newUnreachableContext(t *testing.T) *check.Context {
	t.Helper()

	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()
	return &check.Context{
		TargetURL:  srv.URL,
		HTTPClient: http.DefaultClient,
		Discovery:  oauth.NewClient(),
	}
}

func TestBuiltInOrderIsStable(t *testing.T) {
	t.Parallel()

	ids := make([]string, 0)
	seen := make(map[string]bool)
	for _, c := range BuiltIn() {
		require.False(t, seen[c.ID()], "duplicate check id %s", c.ID())
		seen[c.ID()] = true
		ids = append(ids, c.ID())
	}

	require.Equal(t, []string{
		"oauth-pkce",
		"oauth-https-endpoints",
		"oauth-state-parameter",
		"oauth-redirect-uri",
		"nist-aal1",
		"nist-aal2",
		"nist-aal3",
		"owasp-implicit-flow",
		"owasp-token-endpoint-auth",
		"owasp-open-registration",
	}, ids)
}

func TestAllAppendsCustomChecks(t *testing.T) {
	t.Parallel()

	cfg, err := config.Parse([]byte(`
target: https://auth.example.com
custom:
  - id: require-jwks
    expression: '"jwks_uri" in metadata'
`))
	require.NoError(t, err)

	all, err := All(cfg)
	require.NoError(t, err)
	require.Len(t, all, len(BuiltIn())+1)
	require.Equal(t, "require-jwks", all[len(all)-1].ID())
	require.Equal(t, check.CategoryCustom, all[len(all)-1].Category())
}
