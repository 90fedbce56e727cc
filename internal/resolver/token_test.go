package resolver

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func TestTokenCacheReusesValidToken(t *testing.T) {
	var fetches int64
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			t.Errorf("parse form: %v", err)
		}
		if got := r.FormValue("grant_type"); got != "client_credentials" {
			t.Errorf("grant_type = %q", got)
		}
		if got := r.FormValue("client_id"); got != "id" {
			t.Errorf("client_id = %q", got)
		}
		atomic.AddInt64(&fetches, 1)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"access_token":"tok-1","expires_in":3600}`))
	}))
	defer ts.Close()

	tc := NewTokenCache(ts.URL, "id", "secret", "scope", WithTokenDoer(ts.Client()))

	for i := 0; i < 3; i++ {
		tok, err := tc.Get(context.Background())
		if err != nil {
			t.Fatalf("Get() error: %v", err)
		}
		if tok != "tok-1" {
			t.Fatalf("Get() = %q, want tok-1", tok)
		}
	}
	if n := atomic.LoadInt64(&fetches); n != 1 {
		t.Errorf("token endpoint hit %d times, want 1", n)
	}
}

func TestTokenCacheRefreshesNearExpiry(t *testing.T) {
	var fetches int64
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := atomic.AddInt64(&fetches, 1)
		w.Header().Set("Content-Type", "application/json")
		if n == 1 {
			w.Write([]byte(`{"access_token":"tok-1","expires_in":60}`))
		} else {
			w.Write([]byte(`{"access_token":"tok-2","expires_in":60}`))
		}
	}))
	defer ts.Close()

	now := time.Now()
	clock := &now
	tc := NewTokenCache(ts.URL, "id", "secret", "scope",
		WithTokenDoer(ts.Client()),
		WithClock(func() time.Time { return *clock }),
	)

	tok, err := tc.Get(context.Background())
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if tok != "tok-1" {
		t.Fatalf("Get() = %q, want tok-1", tok)
	}

	// Still comfortably within the 60s validity, minus the 30s margin.
	advanced := now.Add(20 * time.Second)
	clock = &advanced
	if tok, _ := tc.Get(context.Background()); tok != "tok-1" {
		t.Errorf("Get() after 20s = %q, want cached tok-1", tok)
	}

	// Inside the refresh margin: must refetch.
	advanced = now.Add(40 * time.Second)
	tok, err = tc.Get(context.Background())
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if tok != "tok-2" {
		t.Errorf("Get() inside margin = %q, want refreshed tok-2", tok)
	}
	if n := atomic.LoadInt64(&fetches); n != 2 {
		t.Errorf("token endpoint hit %d times, want 2", n)
	}
}

func TestTokenCacheErrorResponses(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"unauthorized", http.StatusUnauthorized, `{"error":"invalid_client"}`},
		{"empty token", http.StatusOK, `{"access_token":"","expires_in":3600}`},
		{"garbage body", http.StatusOK, `not json`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer ts.Close()

			tc := NewTokenCache(ts.URL, "id", "secret", "scope", WithTokenDoer(ts.Client()))
			if _, err := tc.Get(context.Background()); err == nil {
				t.Error("Get() error = nil, want non-nil")
			}
		})
	}
}
