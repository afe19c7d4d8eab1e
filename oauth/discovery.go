// SPDX-FileCopyrightText: Copyright 2026 oauth-guardian authors
// SPDX-License-Identifier: Apache-2.0

package oauth

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/asg5704/oauth-guardian-sub001/httperr"
	"github.com/asg5704/oauth-guardian-sub001/logger"
	validate "github.com/asg5704/oauth-guardian-sub001/validation/http"
)

// maxMetadataBodySize caps the metadata document size read from a candidate
// endpoint. Documents in the wild are a few kilobytes.
const maxMetadataBodySize = 1 << 20

// DefaultTimeout is the per-request timeout used when no timeout is configured.
const DefaultTimeout = 10 * time.Second

// DefaultUserAgent identifies discovery requests when no user agent is configured.
const DefaultUserAgent = "oauth-guardian/1.0"

// DiscoveryAttempt records one metadata fetch: the candidate URL, the HTTP
// status that ended it (httperr.StatusTransportError when no response
// arrived), and when it happened. Attempts are append-only, one per
// candidate tried.
type DiscoveryAttempt struct {
	URL       string    `json:"url"`
	Status    int       `json:"status"`
	Error     string    `json:"error,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// DiscoveryResult is the terminal outcome of discovery for one target URL.
// It is never mutated after construction. Success false implies Metadata nil.
type DiscoveryResult struct {
	Success  bool               `json:"success"`
	Metadata *ServerMetadata    `json:"metadata,omitempty"`
	Attempts []DiscoveryAttempt `json:"attempts"`
	Error    string             `json:"error,omitempty"`
}

// Client fetches server metadata from well-known endpoints. Results are
// memoized per target URL: the first caller for a target performs the fetch
// and every concurrent or later caller for the same target receives the same
// published DiscoveryResult without a second network round trip.
//
// A Client is safe for concurrent use.
type Client struct {
	httpClient *http.Client
	userAgent  string
	headers    map[string]string

	group singleflight.Group

	mu    sync.Mutex
	cache map[string]*DiscoveryResult
}

// ClientOption configures a discovery Client.
type ClientOption func(*Client)

// WithTimeout sets the per-request timeout. The default is DefaultTimeout.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// WithUserAgent sets the User-Agent header on discovery requests.
func WithUserAgent(ua string) ClientOption {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// WithHeaders sets extra headers sent with every discovery request.
// Header names and values should already have passed validation.
func WithHeaders(headers map[string]string) ClientOption {
	return func(c *Client) {
		c.headers = headers
	}
}

// WithHTTPClient replaces the underlying HTTP client entirely. Options that
// modify the client (WithTimeout) should come after it.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// NewClient creates a discovery client with the given options.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: DefaultTimeout},
		userAgent:  DefaultUserAgent,
		cache:      make(map[string]*DiscoveryResult),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Discover fetches and normalizes server metadata for the target URL.
//
// Candidate well-known locations are tried in a fixed order; every attempt
// is recorded whether it succeeds or not. The first candidate returning
// HTTP 200 with a JSON body that parses into ServerMetadata and carries an
// issuer wins. If every candidate fails, the result has Success false and a
// summary error string. Only an unusable target URL returns a non-nil error.
func (c *Client) Discover(ctx context.Context, targetURL string) (*DiscoveryResult, error) {
	if err := validate.ValidateTargetURL(targetURL); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidTargetURL, err)
	}

	c.mu.Lock()
	if cached, ok := c.cache[targetURL]; ok {
		c.mu.Unlock()
		return cached, nil
	}
	c.mu.Unlock()

	// Concurrent requesters for the same target await the in-flight fetch
	// instead of re-fetching.
	v, err, _ := c.group.Do(targetURL, func() (any, error) {
		result := c.discover(ctx, targetURL)
		c.mu.Lock()
		c.cache[targetURL] = result
		c.mu.Unlock()
		return result, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*DiscoveryResult), nil
}

// discover runs the candidate walk for one target. Target URL validity was
// established by the caller.
func (c *Client) discover(ctx context.Context, targetURL string) *DiscoveryResult {
	candidates := discoveryCandidates(targetURL)
	attempts := make([]DiscoveryAttempt, 0, len(candidates))

	for _, candidate := range candidates {
		metadata, attempt := c.fetchCandidate(ctx, candidate)
		attempts = append(attempts, attempt)

		if metadata != nil {
			logger.Debugw("metadata discovered", "url", candidate, "issuer", metadata.Issuer)
			return &DiscoveryResult{
				Success:  true,
				Metadata: metadata,
				Attempts: attempts,
			}
		}

		// Cancellation aborts the walk; remaining candidates are not tried.
		if ctx.Err() != nil {
			break
		}
	}

	return &DiscoveryResult{
		Success:  false,
		Attempts: attempts,
		Error:    summarizeAttempts(attempts),
	}
}

// fetchCandidate issues one GET against a candidate URL. It never returns a
// transport or parse error; the outcome is encoded in the attempt record,
// and metadata is non-nil only for a usable 200 response.
func (c *Client) fetchCandidate(ctx context.Context, candidateURL string) (*ServerMetadata, DiscoveryAttempt) {
	attempt := DiscoveryAttempt{
		URL:       candidateURL,
		Timestamp: time.Now().UTC(),
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, candidateURL, nil)
	if err != nil {
		attempt.Status = httperr.StatusTransportError
		attempt.Error = err.Error()
		return nil, attempt
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	for name, value := range c.headers {
		req.Header.Set(name, value)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		attempt.Status = httperr.Code(err)
		attempt.Error = err.Error()
		return nil, attempt
	}
	defer resp.Body.Close()

	attempt.Status = resp.StatusCode
	if resp.StatusCode != http.StatusOK {
		attempt.Error = fmt.Sprintf("unexpected status %d", resp.StatusCode)
		return nil, attempt
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxMetadataBodySize))
	if err != nil {
		attempt.Error = fmt.Sprintf("reading body: %s", err)
		return nil, attempt
	}

	var metadata ServerMetadata
	if err := json.Unmarshal(body, &metadata); err != nil {
		attempt.Error = fmt.Sprintf("malformed JSON: %s", err)
		return nil, attempt
	}
	if metadata.Issuer == "" {
		attempt.Error = ErrMissingIssuer.Error()
		return nil, attempt
	}

	return &metadata, attempt
}

// discoveryCandidates builds the ordered candidate URL list for a target.
//
// For an origin-only target the list is OIDC discovery then RFC 8414. When
// the target carries a path segment, metadata may be published per issuer
// path, so path-aware forms come first (OIDC path-appended per OIDC
// Discovery, then RFC 8414 path-inserted), falling back to the origin-root
// conventions.
func discoveryCandidates(targetURL string) []string {
	u, err := url.Parse(targetURL)
	if err != nil {
		// Caller validated the target already.
		return nil
	}

	origin := u.Scheme + "://" + u.Host
	path := strings.TrimSuffix(u.Path, "/")

	if path == "" {
		return []string{
			origin + WellKnownOIDCPath,
			origin + WellKnownOAuthServerPath,
		}
	}

	return []string{
		origin + path + WellKnownOIDCPath,
		origin + WellKnownOAuthServerPath + path,
		origin + WellKnownOIDCPath,
		origin + WellKnownOAuthServerPath,
	}
}

// summarizeAttempts condenses a failed candidate walk into one error string.
func summarizeAttempts(attempts []DiscoveryAttempt) string {
	parts := make([]string, 0, len(attempts))
	for _, a := range attempts {
		if a.Status == httperr.StatusTransportError {
			parts = append(parts, fmt.Sprintf("%s: %s", a.URL, a.Error))
		} else {
			parts = append(parts, fmt.Sprintf("%s: HTTP %d", a.URL, a.Status))
		}
	}
	return "no usable metadata document found: " + strings.Join(parts, "; ")
}
