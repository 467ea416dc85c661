package config

import (
	"time"

	"github.com/weblearn/weblearn/internal/llm"
)

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() *Config {
	return &Config{
		Theme: "light",
		Log: LogConfig{
			Level:      "info",
			MaxSizeMB:  10,
			MaxBackups: 3,
			MaxAgeDays: 28,
		},
		Server: ServerConfig{
			Addr:           "127.0.0.1:8080",
			AllowedOrigins: []string{"*"},
			ReadTimeout:    10 * time.Second,
			WriteTimeout:   60 * time.Second,
		},
		Assistant: AssistantConfig{
			MaxTokens: 400,
			Discover:  true,
			LLM:       llm.DefaultConfig(),
		},
		Playground: PlaygroundConfig{
			Debounce: time.Second,
		},
	}
}
