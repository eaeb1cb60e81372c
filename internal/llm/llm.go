// Package llm talks to a vision-capable inference service. Two providers are
// supported: any OpenAI-compatible endpoint such as LM Studio (the default),
// and the Gemini API.
package llm

import (
	"context"
	"fmt"

	"github.com/mj1618/screenpilot/internal/config"
)

// Client sends one multimodal request (a fixed instruction prompt plus one
// JPEG frame) and returns the raw text completion. No streaming.
type Client interface {
	Complete(ctx context.Context, prompt string, imageJPEG []byte) (string, error)
}

// New builds a Client for the configured provider.
func New(ctx context.Context, cfg config.ServiceConfig) (Client, error) {
	switch cfg.Provider {
	case config.ProviderLMStudio:
		return NewLMStudioClient(cfg), nil
	case config.ProviderGemini:
		return NewGeminiClient(ctx, cfg)
	default:
		return nil, fmt.Errorf("unknown service provider: %q", cfg.Provider)
	}
}
