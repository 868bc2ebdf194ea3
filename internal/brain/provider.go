// Package brain talks to the language-model APIs behind the summarization
// proxy.
package brain

import (
	"context"
	"net/http"

	"github.com/abelbrown/newsdeck/internal/config"
)

// Provider is the interface for AI providers
type Provider interface {
	// Name returns the provider name (e.g., "claude", "openai")
	Name() string

	// Available returns true if the provider is configured and ready
	Available() bool

	// Generate sends a prompt and returns the response
	Generate(ctx context.Context, req Request) (Response, error)
}

// Request is a prompt request to an AI provider
type Request struct {
	SystemPrompt string
	UserPrompt   string
	MaxTokens    int
	Temperature  float64 // 0 leaves the provider default
}

// Response is the AI provider's response
type Response struct {
	Content     string
	Model       string
	RawResponse string // The raw API response body for logging/debugging
}

// Select returns the named provider when it is available, otherwise the
// first available one. Nil when none is available.
func Select(name string, providers ...Provider) Provider {
	if name != "" {
		for _, p := range providers {
			if p != nil && p.Name() == name && p.Available() {
				return p
			}
		}
	}
	for _, p := range providers {
		if p != nil && p.Available() {
			return p
		}
	}
	return nil
}

// ListAvailable returns names of all available providers
func ListAvailable(providers ...Provider) []string {
	var names []string
	for _, p := range providers {
		if p != nil && p.Available() {
			names = append(names, p.Name())
		}
	}
	return names
}

// ProvidersFrom builds the providers a proxy config describes, in fallback
// order: OpenAI, Claude, Ollama. Ollama is only probed when it is selected
// or no hosted provider has a key. A nil client uses the default.
func ProvidersFrom(cfg config.ProxyConfig, client *http.Client) []Provider {
	withClient := WithHTTPClient(client)
	providers := []Provider{
		NewOpenAI(cfg.Keys.OpenAI, cfg.Models.OpenAI, withClient),
		NewClaude(cfg.Keys.Anthropic, cfg.Models.Claude, withClient),
	}
	if cfg.Provider == "ollama" || ListAvailable(providers...) == nil {
		providers = append(providers, NewOllama(cfg.Models.OllamaHost, cfg.Models.Ollama, withClient))
	}
	return providers
}
