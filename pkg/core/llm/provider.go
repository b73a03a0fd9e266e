// Package llm abstracts the language-model services used for financial data
// estimation behind a single Provider interface.
package llm

import (
	"context"
	"fmt"
	"strings"
)

// Provider is the interface for all LLM providers.
type Provider interface {
	GenerateResponse(ctx context.Context, prompt string, systemPrompt string, options map[string]interface{}) (string, error)
}

// NewProvider selects an implementation by name. "gemini" (and the empty
// string) map to the GenAI client; "googleai" to the legacy SDK client. The
// model falls back to the implementation's default when empty.
func NewProvider(name, model string) (Provider, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "gemini":
		return &GeminiProvider{Model: model}, nil
	case "googleai", "google-ai":
		return &GoogleAIProvider{Model: model}, nil
	default:
		return nil, fmt.Errorf("llm: unknown provider %q", name)
	}
}
