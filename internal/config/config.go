package config

import (
	"strings"
	"time"
)

// Config stores environment configuration for Bomator.
type Config struct {
	Port                 string
	LLMProvider          string
	LLMModel             string
	LLMAPIKey            string
	LLMAPIURL            string
	LLMMaxTokens         int
	SearchProvider       string
	SearchAPIKey         string
	SearchEngineID       string
	SearchAPIURL         string
	CatalogClientID      string
	CatalogClientSecret  string
	CatalogScope         string
	CatalogTokenURL      string
	CatalogAPIURL        string
	DefaultCurrency      string
	EnableSearchFallback bool
	ProbeTimeout         time.Duration
	SearchTimeout        time.Duration
	PriceFetchTimeout    time.Duration
}

// CatalogEnabled reports whether catalog resolution credentials are present.
// Absence disables the catalog tier; it is not an error.
func (c Config) CatalogEnabled() bool {
	return c.CatalogClientID != "" && c.CatalogClientSecret != ""
}

// LoadConfig loads the Bomator configuration from environment variables.
func LoadConfig() Config {
	return Config{
		Port:                 GetEnv("PORT", "18030"),
		LLMProvider:          GetEnv("LLM_PROVIDER", "openai"),
		LLMModel:             GetEnv("LLM_MODEL", ""),
		LLMAPIKey:            GetEnv("LLM_API_KEY", ""),
		LLMAPIURL:            GetEnv("LLM_API_URL", ""),
		LLMMaxTokens:         GetEnvInt("LLM_MAX_TOKENS", 4096),
		SearchProvider:       GetEnv("SEARCH_PROVIDER", "duckduckgo"),
		SearchAPIKey:         GetEnv("SEARCH_API_KEY", GetEnv("GOOGLE_API_KEY", "")),
		SearchEngineID:       GetEnv("SEARCH_ENGINE_ID", GetEnv("GOOGLE_CSE_ID", "")),
		SearchAPIURL:         GetEnv("SEARCH_API_URL", ""),
		CatalogClientID:      GetEnv("NEXAR_CLIENT_ID", ""),
		CatalogClientSecret:  GetEnv("NEXAR_CLIENT_SECRET", ""),
		CatalogScope:         GetEnv("NEXAR_SCOPE", "marketplace.catalog.read"),
		CatalogTokenURL:      GetEnv("NEXAR_TOKEN_URL", "https://identity.nexar.com/connect/token"),
		CatalogAPIURL:        GetEnv("NEXAR_GRAPHQL_URL", "https://api.nexar.com/graphql"),
		DefaultCurrency:      normalizeCurrency(GetEnv("BOMATOR_CURRENCY", "EUR")),
		EnableSearchFallback: GetEnvBool("BOMATOR_ENABLE_SEARCH_FALLBACK", false),
		ProbeTimeout:         parseDuration(GetEnv("BOMATOR_PROBE_TIMEOUT", "6s"), 6*time.Second),
		SearchTimeout:        parseDuration(GetEnv("BOMATOR_SEARCH_TIMEOUT", "6s"), 6*time.Second),
		PriceFetchTimeout:    parseDuration(GetEnv("BOMATOR_PRICE_TIMEOUT", "5s"), 5*time.Second),
	}
}

func normalizeCurrency(s string) string {
	s = strings.ToUpper(strings.TrimSpace(s))
	if len(s) != 3 {
		return "EUR"
	}
	return s
}

func parseDuration(s string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil {
		return fallback
	}
	return d
}
