package search

import (
	"fmt"
	"time"
)

const (
	providerDuckDuckGo = "duckduckgo"
	providerGoogleCSE  = "googlecse"
)

// Config holds configuration for search providers.
type Config struct {
	Provider string
	APIKey   string
	EngineID string
	APIURL   string
	Timeout  time.Duration
}

// NewProvider creates a search provider from configuration.
func NewProvider(cfg Config) (Provider, error) {
	switch cfg.Provider {
	case providerDuckDuckGo, "":
		return NewDuckDuckGoProvider(cfg.APIURL, cfg.Timeout), nil
	case providerGoogleCSE, "cse", "google":
		return NewGoogleCSEProvider(cfg.APIKey, cfg.EngineID, cfg.APIURL, cfg.Timeout)
	default:
		return nil, fmt.Errorf("unsupported search provider: %s", cfg.Provider)
	}
}
