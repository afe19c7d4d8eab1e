// SPDX-FileCopyrightText: Copyright 2026 oauth-guardian authors
// SPDX-License-Identifier: Apache-2.0

package oauth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/asg5704/oauth-guardian-sub001/httperr"
)

func metadataHandler(t *testing.T, issuer string) http.HandlerFunc {
	t.Helper()
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		err := json.NewEncoder(w).Encode(map[string]any{
			"issuer":                   issuer,
			"authorization_endpoint":   issuer + "/authorize",
			"token_endpoint":           issuer + "/token",
			"response_types_supported": []string{"code", "id_token"},
		})
		require.NoError(t, err)
	}
}

func TestClient_Discover_OIDCEndpoint(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	srv := httptest.NewServer(mux)
	defer srv.Close()
	mux.HandleFunc(WellKnownOIDCPath, metadataHandler(t, srv.URL))

	client := NewClient()
	result, err := client.Discover(context.Background(), srv.URL)
	require.NoError(t, err)

	assert.True(t, result.Success)
	require.NotNil(t, result.Metadata)
	assert.Equal(t, srv.URL, result.Metadata.Issuer)
	require.Len(t, result.Attempts, 1)
	assert.Equal(t, http.StatusOK, result.Attempts[0].Status)
	assert.Equal(t, srv.URL+WellKnownOIDCPath, result.Attempts[0].URL)
}

func TestClient_Discover_FallsBackToOAuthEndpoint(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	srv := httptest.NewServer(mux)
	defer srv.Close()
	// Only RFC 8414 metadata published; the OIDC candidate 404s.
	mux.HandleFunc(WellKnownOAuthServerPath, metadataHandler(t, srv.URL))

	client := NewClient()
	result, err := client.Discover(context.Background(), srv.URL)
	require.NoError(t, err)

	assert.True(t, result.Success)
	require.Len(t, result.Attempts, 2)
	assert.Equal(t, http.StatusNotFound, result.Attempts[0].Status)
	assert.Equal(t, http.StatusOK, result.Attempts[1].Status)
	assert.Equal(t, srv.URL+WellKnownOAuthServerPath, result.Attempts[1].URL)
}

func TestClient_Discover_AllCandidatesFail(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	client := NewClient()
	result, err := client.Discover(context.Background(), srv.URL)
	require.NoError(t, err, "ordinary HTTP failure is not an error")

	assert.False(t, result.Success)
	assert.Nil(t, result.Metadata, "failed discovery never carries metadata")
	assert.Len(t, result.Attempts, 2, "one attempt per candidate tried")
	assert.NotEmpty(t, result.Error)
}

func TestClient_Discover_MalformedJSONMovesOn(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	srv := httptest.NewServer(mux)
	defer srv.Close()
	mux.HandleFunc(WellKnownOIDCPath, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("{not json"))
	})
	mux.HandleFunc(WellKnownOAuthServerPath, metadataHandler(t, srv.URL))

	client := NewClient()
	result, err := client.Discover(context.Background(), srv.URL)
	require.NoError(t, err)

	assert.True(t, result.Success)
	require.Len(t, result.Attempts, 2)
	assert.Equal(t, http.StatusOK, result.Attempts[0].Status)
	assert.Contains(t, result.Attempts[0].Error, "malformed JSON")
}

func TestClient_Discover_MissingIssuerRejected(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	srv := httptest.NewServer(mux)
	defer srv.Close()
	mux.HandleFunc(WellKnownOIDCPath, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"authorization_endpoint": "https://example.com/authorize"}`))
	})

	client := NewClient()
	result, err := client.Discover(context.Background(), srv.URL)
	require.NoError(t, err)

	assert.False(t, result.Success)
	require.Len(t, result.Attempts, 2)
	assert.Equal(t, ErrMissingIssuer.Error(), result.Attempts[0].Error)
}

func TestClient_Discover_TransportFailureSentinel(t *testing.T) {
	t.Parallel()

	// Reserve a port, then close it so connections are refused.
	srv := httptest.NewServer(http.NotFoundHandler())
	target := srv.URL
	srv.Close()

	client := NewClient()
	result, err := client.Discover(context.Background(), target)
	require.NoError(t, err)

	assert.False(t, result.Success)
	require.NotEmpty(t, result.Attempts)
	assert.Equal(t, httperr.StatusTransportError, result.Attempts[0].Status)
	assert.NotEmpty(t, result.Attempts[0].Error)
}

func TestClient_Discover_InvalidTargetURL(t *testing.T) {
	t.Parallel()

	client := NewClient()

	_, err := client.Discover(context.Background(), "not-a-url")
	assert.ErrorIs(t, err, ErrInvalidTargetURL)

	_, err = client.Discover(context.Background(), "")
	assert.ErrorIs(t, err, ErrInvalidTargetURL)
}

func TestClient_Discover_MemoizesPerTarget(t *testing.T) {
	t.Parallel()

	var fetches atomic.Int32
	mux := http.NewServeMux()
	srv := httptest.NewServer(mux)
	defer srv.Close()
	mux.HandleFunc(WellKnownOIDCPath, func(w http.ResponseWriter, r *http.Request) {
		fetches.Add(1)
		metadataHandler(t, srv.URL)(w, r)
	})

	client := NewClient()

	first, err := client.Discover(context.Background(), srv.URL)
	require.NoError(t, err)
	second, err := client.Discover(context.Background(), srv.URL)
	require.NoError(t, err)

	assert.Same(t, first, second, "later requesters read the published result")
	assert.Equal(t, int32(1), fetches.Load(), "no second fetch for the same target")
}

func TestClient_Discover_ConcurrentSingleFetch(t *testing.T) {
	t.Parallel()

	var fetches atomic.Int32
	release := make(chan struct{})
	mux := http.NewServeMux()
	srv := httptest.NewServer(mux)
	defer srv.Close()
	mux.HandleFunc(WellKnownOIDCPath, func(w http.ResponseWriter, r *http.Request) {
		fetches.Add(1)
		<-release
		metadataHandler(t, srv.URL)(w, r)
	})

	client := NewClient()

	const requesters = 8
	results := make([]*DiscoveryResult, requesters)
	var wg sync.WaitGroup
	for i := range requesters {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r, err := client.Discover(context.Background(), srv.URL)
			assert.NoError(t, err)
			results[i] = r
		}()
	}

	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), fetches.Load(), "concurrent requesters share one in-flight fetch")
	for i := 1; i < requesters; i++ {
		assert.Same(t, results[0], results[i])
	}
}

func TestDiscoveryCandidates(t *testing.T) {
	t.Parallel()

	t.Run("origin-only target", func(t *testing.T) {
		t.Parallel()

		got := discoveryCandidates("https://auth.example.com")
		assert.Equal(t, []string{
			"https://auth.example.com/.well-known/openid-configuration",
			"https://auth.example.com/.well-known/oauth-authorization-server",
		}, got)
	})

	t.Run("target with issuer path", func(t *testing.T) {
		t.Parallel()

		got := discoveryCandidates("https://auth.example.com/tenant1/")
		assert.Equal(t, []string{
			"https://auth.example.com/tenant1/.well-known/openid-configuration",
			"https://auth.example.com/.well-known/oauth-authorization-server/tenant1",
			"https://auth.example.com/.well-known/openid-configuration",
			"https://auth.example.com/.well-known/oauth-authorization-server",
		}, got)
	})
}
