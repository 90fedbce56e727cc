package llm

import (
	"fmt"
	"strings"
)

// Config holds provider configuration.
type Config struct {
	Provider  string
	Model     string
	APIKey    string
	APIURL    string
	MaxTokens int
}

// NewProvider creates an LLM provider from configuration. Ollama and other
// OpenAI-compatible servers are reached through the openai provider with a
// custom APIURL.
func NewProvider(cfg Config) (Provider, error) {
	switch strings.ToLower(cfg.Provider) {
	case "openai", "":
		return NewOpenAIProvider(cfg), nil
	default:
		return nil, fmt.Errorf("unknown LLM provider %q", cfg.Provider)
	}
}
