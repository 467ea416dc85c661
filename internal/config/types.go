package config

import (
	"time"

	"github.com/weblearn/weblearn/internal/llm"
)

// Config is the top-level weblearn configuration, read from config.yaml.
type Config struct {
	// DataDir holds the database, logs and playground files. Empty means
	// $XDG_DATA_HOME/weblearn.
	DataDir string `yaml:"data_dir" koanf:"data_dir"`

	// DBPath overrides the database location inside DataDir.
	DBPath string `yaml:"db_path" koanf:"db_path"`

	// Theme is the initial theme when none has been saved yet.
	Theme string `yaml:"theme" koanf:"theme"`

	Log        LogConfig        `yaml:"log" koanf:"log"`
	Server     ServerConfig     `yaml:"server" koanf:"server"`
	Assistant  AssistantConfig  `yaml:"assistant" koanf:"assistant"`
	Playground PlaygroundConfig `yaml:"playground" koanf:"playground"`
}

// LogConfig configures the rotating log file.
type LogConfig struct {
	Level      string `yaml:"level" koanf:"level"`
	File       string `yaml:"file" koanf:"file"`
	MaxSizeMB  int    `yaml:"max_size_mb" koanf:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups" koanf:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days" koanf:"max_age_days"`
	Compress   bool   `yaml:"compress" koanf:"compress"`
}

// ServerConfig configures `weblearn serve`.
type ServerConfig struct {
	Addr           string        `yaml:"addr" koanf:"addr"`
	AllowedOrigins []string      `yaml:"allowed_origins" koanf:"allowed_origins"`
	ReadTimeout    time.Duration `yaml:"read_timeout" koanf:"read_timeout"`
	WriteTimeout   time.Duration `yaml:"write_timeout" koanf:"write_timeout"`
}

// AssistantConfig configures the learning assistant.
type AssistantConfig struct {
	// MaxTokens caps model replies.
	MaxTokens int `yaml:"max_tokens" koanf:"max_tokens"`

	// Discover picks a provider from ANTHROPIC_API_KEY and friends when
	// llm.provider is "none".
	Discover bool `yaml:"discover" koanf:"discover"`

	LLM llm.Config `yaml:"llm" koanf:"llm"`
}

// PlaygroundConfig configures the code playground.
type PlaygroundConfig struct {
	// Debounce delays preview rebuilds while files are still changing.
	Debounce time.Duration `yaml:"debounce" koanf:"debounce"`
}
