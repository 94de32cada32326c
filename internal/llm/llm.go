// Package llm talks to the language-model providers that write recipes.
package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"recipehub/pkg/utils"
)

var (
	ErrMissingAPIKey  = errors.New("llm api key not configured")
	ErrEmptyReply     = errors.New("llm returned no content")
	ErrMalformedReply = errors.New("llm reply is not the expected JSON")
)

// Generator completes a single system + user prompt and returns the raw
// model text.
type Generator interface {
	Complete(ctx context.Context, system, user string) (string, error)
}

// New builds the Generator selected by cfg.Provider.
func New(ctx context.Context, cfg utils.LLMConfig) (Generator, error) {
	httpClient := &http.Client{Timeout: cfg.Timeout}
	switch cfg.Provider {
	case "", "openai":
		return NewOpenAIClient(cfg.OpenAIKey, cfg.OpenAIBaseURL, cfg.OpenAIModel, httpClient), nil
	case "gemini":
		return NewGeminiClient(ctx, cfg.GeminiKey, cfg.GeminiModel, httpClient)
	default:
		return nil, fmt.Errorf("unknown llm provider %q", cfg.Provider)
	}
}
