package resolver

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
)

// tokenRefreshMargin is how close to expiry a cached token is still
// considered stale. A token inside the margin is never served.
const tokenRefreshMargin = 30 * time.Second

// Doer is the minimal HTTP client surface, injectable for tests.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// TokenCache holds a single process-wide bearer token obtained via the
// client-credentials grant and refreshes it lazily near expiry.
type TokenCache struct {
	mu        sync.Mutex
	value     string
	expiresAt time.Time

	tokenURL     string
	clientID     string
	clientSecret string
	scope        string
	client       Doer
	now          func() time.Time
}

// TokenCacheOption configures a TokenCache.
type TokenCacheOption func(*TokenCache)

// WithClock overrides the time source, for tests.
func WithClock(now func() time.Time) TokenCacheOption {
	return func(tc *TokenCache) { tc.now = now }
}

// WithTokenDoer overrides the HTTP client used for the token exchange.
func WithTokenDoer(d Doer) TokenCacheOption {
	return func(tc *TokenCache) { tc.client = d }
}

// NewTokenCache creates a token cache for the given credential set.
func NewTokenCache(tokenURL, clientID, clientSecret, scope string, opts ...TokenCacheOption) *TokenCache {
	tc := &TokenCache{
		tokenURL:     tokenURL,
		clientID:     clientID,
		clientSecret: clientSecret,
		scope:        scope,
		client:       &http.Client{Timeout: 10 * time.Second},
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(tc)
	}
	return tc
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int64  `json:"expires_in"`
}

// Get returns the cached token, refreshing it when absent or within the
// safety margin of its stated expiry.
func (tc *TokenCache) Get(ctx context.Context) (string, error) {
	tc.mu.Lock()
	defer tc.mu.Unlock()

	if tc.value != "" && tc.now().Before(tc.expiresAt.Add(-tokenRefreshMargin)) {
		return tc.value, nil
	}

	form := url.Values{}
	form.Set("grant_type", "client_credentials")
	form.Set("client_id", tc.clientID)
	form.Set("client_secret", tc.clientSecret)
	form.Set("scope", tc.scope)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, tc.tokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("catalog token: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := tc.client.Do(req)
	if err != nil {
		tokenRefreshTotal.WithLabelValues("error").Inc()
		return "", fmt.Errorf("catalog token: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		tokenRefreshTotal.WithLabelValues("error").Inc()
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return "", fmt.Errorf("catalog token: unexpected status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var decoded tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		tokenRefreshTotal.WithLabelValues("error").Inc()
		return "", fmt.Errorf("catalog token: decode response: %w", err)
	}
	if decoded.AccessToken == "" {
		tokenRefreshTotal.WithLabelValues("error").Inc()
		return "", fmt.Errorf("catalog token: empty access_token in response")
	}

	tc.value = decoded.AccessToken
	tc.expiresAt = tc.now().Add(time.Duration(decoded.ExpiresIn) * time.Second)
	tokenRefreshTotal.WithLabelValues("ok").Inc()
	return tc.value, nil
}
