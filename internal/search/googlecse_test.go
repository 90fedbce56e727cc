package search

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestGoogleCSERequiresCredentials(t *testing.T) {
	if _, err := NewGoogleCSEProvider("", "engine", "", time.Second); err == nil {
		t.Error("NewGoogleCSEProvider() without api key: error = nil")
	}
	if _, err := NewGoogleCSEProvider("key", "", "", time.Second); err == nil {
		t.Error("NewGoogleCSEProvider() without engine id: error = nil")
	}
}

func TestGoogleCSESearch(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("key") != "key" || q.Get("cx") != "engine" {
			t.Errorf("credentials not forwarded: %v", q)
		}
		if q.Get("siteSearch") != "mouser.com" || q.Get("siteSearchFilter") != "i" {
			t.Errorf("site scoping not forwarded: %v", q)
		}
		if q.Get("num") != "2" {
			t.Errorf("num = %q, want 2", q.Get("num"))
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"items":[
			{"title":"LM317T","link":"https://www.mouser.com/ProductDetail/511-LM317T","snippet":"Voltage regulator"},
			{"title":"no link","link":"","snippet":"dropped"}
		]}`))
	}))
	defer ts.Close()

	p, err := NewGoogleCSEProvider("key", "engine", ts.URL, 2*time.Second)
	if err != nil {
		t.Fatalf("NewGoogleCSEProvider() error: %v", err)
	}

	results, err := p.Search(context.Background(), "LM317T", SearchOptions{Limit: 2, Site: "mouser.com"})
	if err != nil {
		t.Fatalf("Search() error: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("got %d results, want 1 (entries without a link are dropped)", len(results))
	}
	if results[0].URL != "https://www.mouser.com/ProductDetail/511-LM317T" {
		t.Errorf("results[0].URL = %q", results[0].URL)
	}
	if results[0].Content != "Voltage regulator" {
		t.Errorf("results[0].Content = %q", results[0].Content)
	}
}

func TestGoogleCSEBadStatus(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer ts.Close()

	p, err := NewGoogleCSEProvider("key", "engine", ts.URL, 2*time.Second)
	if err != nil {
		t.Fatalf("NewGoogleCSEProvider() error: %v", err)
	}
	if _, err := p.Search(context.Background(), "LM317T", SearchOptions{}); err == nil {
		t.Error("Search() error = nil on a 403 response")
	}
}

func TestNewProviderFactory(t *testing.T) {
	if _, err := NewProvider(Config{Provider: "duckduckgo"}); err != nil {
		t.Errorf("NewProvider(duckduckgo) error: %v", err)
	}
	if _, err := NewProvider(Config{Provider: ""}); err != nil {
		t.Errorf("NewProvider(default) error: %v", err)
	}
	if _, err := NewProvider(Config{Provider: "googlecse", APIKey: "k", EngineID: "e"}); err != nil {
		t.Errorf("NewProvider(googlecse) error: %v", err)
	}
	if _, err := NewProvider(Config{Provider: "bing"}); err == nil {
		t.Error("NewProvider(bing) error = nil, want unsupported provider error")
	}
}
