package llm

import (
	"fmt"
	"os"
	"time"
)

// ProviderNone disables the model fallback; the assistant then answers from
// its keyword rules only.
const ProviderNone = "none"

// Config holds all LLM provider configuration.
type Config struct {
	// Provider selects which LLM provider to use.
	// Values: "none", "anthropic", "openai", "gemini", "openrouter", "mock"
	Provider string `yaml:"provider" koanf:"provider"`

	Anthropic  AnthropicConfig  `yaml:"anthropic" koanf:"anthropic"`
	OpenAI     OpenAIConfig     `yaml:"openai" koanf:"openai"`
	Gemini     GeminiConfig     `yaml:"gemini" koanf:"gemini"`
	OpenRouter OpenRouterConfig `yaml:"openrouter" koanf:"openrouter"`
	Retry      RetryConfig      `yaml:"retry" koanf:"retry"`

	// Timeout bounds a single question, retries included.
	Timeout time.Duration `yaml:"timeout" koanf:"timeout"`
}

// AnthropicConfig holds Anthropic-specific configuration.
type AnthropicConfig struct {
	APIKey  string `yaml:"api_key" koanf:"api_key"`
	Model   string `yaml:"model" koanf:"model"` // Default: "claude-haiku"
	BaseURL string `yaml:"base_url" koanf:"base_url"`
}

// OpenAIConfig holds OpenAI-specific configuration.
type OpenAIConfig struct {
	APIKey  string `yaml:"api_key" koanf:"api_key"`
	Model   string `yaml:"model" koanf:"model"` // Default: "gpt-mini"
	BaseURL string `yaml:"base_url" koanf:"base_url"`
}

// GeminiConfig holds Gemini-specific configuration.
type GeminiConfig struct {
	APIKey string `yaml:"api_key" koanf:"api_key"`
	Model  string `yaml:"model" koanf:"model"` // Default: "gemini-flash"
}

// OpenRouterConfig holds OpenRouter-specific configuration.
type OpenRouterConfig struct {
	APIKey  string `yaml:"api_key" koanf:"api_key"`
	Model   string `yaml:"model" koanf:"model"`
	BaseURL string `yaml:"base_url" koanf:"base_url"`
}

// RetryConfig configures retry behavior for transient failures.
type RetryConfig struct {
	MaxAttempts int           `yaml:"max_attempts" koanf:"max_attempts"`
	InitialWait time.Duration `yaml:"initial_wait" koanf:"initial_wait"`
	MaxWait     time.Duration `yaml:"max_wait" koanf:"max_wait"`
	Multiplier  float64       `yaml:"multiplier" koanf:"multiplier"`
}

// DefaultConfig returns the configuration used when nothing is set: no
// provider, so questions outside the rules get the canned reply.
func DefaultConfig() Config {
	return Config{
		Provider:   ProviderNone,
		Anthropic:  AnthropicConfig{Model: "claude-haiku"},
		OpenAI:     OpenAIConfig{Model: "gpt-mini"},
		Gemini:     GeminiConfig{Model: "gemini-flash"},
		OpenRouter: OpenRouterConfig{Model: "google/gemini-2.5-flash"},
		Retry: RetryConfig{
			MaxAttempts: 3,
			InitialWait: 1 * time.Second,
			MaxWait:     10 * time.Second,
			Multiplier:  2.0,
		},
		Timeout: 30 * time.Second,
	}
}

// Enabled reports whether a provider is selected.
func (c Config) Enabled() bool {
	return c.Provider != "" && c.Provider != ProviderNone
}

// Discover fills in the first provider whose conventional API key variable
// is set, checking Anthropic, OpenAI, Gemini then OpenRouter. It reports
// false and leaves c untouched when none is found.
func (c Config) Discover() (Config, bool) {
	if k := os.Getenv("ANTHROPIC_API_KEY"); k != "" {
		c.Provider = "anthropic"
		c.Anthropic.APIKey = k
		return c, true
	}
	if k := os.Getenv("OPENAI_API_KEY"); k != "" {
		c.Provider = "openai"
		c.OpenAI.APIKey = k
		return c, true
	}
	if k := os.Getenv("GEMINI_API_KEY"); k != "" {
		c.Provider = "gemini"
		c.Gemini.APIKey = k
		return c, true
	}
	if k := os.Getenv("OPENROUTER_API_KEY"); k != "" {
		c.Provider = "openrouter"
		c.OpenRouter.APIKey = k
		return c, true
	}
	return c, false
}

// Validate checks that the selected provider has its required API key set.
func (c Config) Validate() error {
	switch c.Provider {
	case "", ProviderNone, "mock":
	case "anthropic":
		if c.Anthropic.APIKey == "" {
			return fmt.Errorf("assistant.llm.anthropic.api_key is required for the anthropic provider")
		}
	case "openai":
		if c.OpenAI.APIKey == "" {
			return fmt.Errorf("assistant.llm.openai.api_key is required for the openai provider")
		}
	case "gemini":
		if c.Gemini.APIKey == "" {
			return fmt.Errorf("assistant.llm.gemini.api_key is required for the gemini provider")
		}
	case "openrouter":
		if c.OpenRouter.APIKey == "" {
			return fmt.Errorf("assistant.llm.openrouter.api_key is required for the openrouter provider")
		}
	default:
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
	if c.Retry.MaxAttempts < 1 && c.Enabled() {
		return fmt.Errorf("assistant.llm.retry.max_attempts must be at least 1")
	}
	return nil
}
