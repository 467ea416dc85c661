package llm

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/weblearn/weblearn/internal/store"
)

// NewProvider creates a Provider from configuration, wrapped with retry and
// logging middleware. It returns nil, nil when no provider is selected.
func NewProvider(ctx context.Context, cfg Config, events store.EventRepo, log *zap.Logger) (Provider, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var base Provider
	var err error

	switch cfg.Provider {
	case "", ProviderNone:
		return nil, nil
	case "anthropic":
		base, err = NewAnthropicProvider(cfg.Anthropic)
	case "openai":
		base, err = NewOpenAIProvider(cfg.OpenAI)
	case "gemini":
		base, err = NewGeminiProvider(ctx, cfg.Gemini)
	case "openrouter":
		base, err = NewOpenRouterProvider(cfg.OpenRouter)
	case "mock":
		base = NewMockProvider(MockResponse{Text: "This is a canned answer from the mock provider."})
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	// caller → retry → logging → base
	logged := WithLogging(base, cfg.Provider, events, log)
	return WithRetry(logged, cfg.Retry, log), nil
}
