package config

import (
	"testing"
	"time"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg := LoadConfig()

	if cfg.Port != "18030" {
		t.Errorf("Port = %q, want 18030", cfg.Port)
	}
	if cfg.SearchProvider != "duckduckgo" {
		t.Errorf("SearchProvider = %q", cfg.SearchProvider)
	}
	if cfg.DefaultCurrency != "EUR" {
		t.Errorf("DefaultCurrency = %q", cfg.DefaultCurrency)
	}
	if cfg.EnableSearchFallback {
		t.Error("EnableSearchFallback = true, want disabled by default")
	}
	if cfg.ProbeTimeout != 6*time.Second {
		t.Errorf("ProbeTimeout = %v", cfg.ProbeTimeout)
	}
	if cfg.CatalogEnabled() {
		t.Error("CatalogEnabled() = true without credentials")
	}
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("BOMATOR_CURRENCY", "usd")
	t.Setenv("BOMATOR_ENABLE_SEARCH_FALLBACK", "true")
	t.Setenv("BOMATOR_PROBE_TIMEOUT", "2s")
	t.Setenv("NEXAR_CLIENT_ID", "id")
	t.Setenv("NEXAR_CLIENT_SECRET", "secret")

	cfg := LoadConfig()

	if cfg.DefaultCurrency != "USD" {
		t.Errorf("DefaultCurrency = %q, want uppercased USD", cfg.DefaultCurrency)
	}
	if !cfg.EnableSearchFallback {
		t.Error("EnableSearchFallback = false")
	}
	if cfg.ProbeTimeout != 2*time.Second {
		t.Errorf("ProbeTimeout = %v", cfg.ProbeTimeout)
	}
	if !cfg.CatalogEnabled() {
		t.Error("CatalogEnabled() = false with credentials set")
	}
}

func TestNormalizeCurrency(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"eur", "EUR"},
		{" usd ", "USD"},
		{"euro", "EUR"},
		{"", "EUR"},
	}
	for _, tt := range tests {
		if got := normalizeCurrency(tt.in); got != tt.want {
			t.Errorf("normalizeCurrency(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
