// Package config loads weblearn settings from YAML with WEBLEARN_* overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"go.uber.org/zap/zapcore"
	yamlv3 "gopkg.in/yaml.v3"

	"github.com/weblearn/weblearn/internal/store"
)

const envPrefix = "WEBLEARN_"

// Load reads configuration from the given YAML file, then overlays
// environment variable overrides. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	defaults, err := yamlv3.Marshal(DefaultConfig())
	if err != nil {
		return nil, fmt.Errorf("marshalling defaults: %w", err)
	}
	if err := k.Load(bytesProvider(defaults), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("loading defaults: %w", err)
	}

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
				return nil, fmt.Errorf("reading config %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("accessing config %s: %w", path, err)
		}
	}

	// WEBLEARN_SERVER_ADDR -> server.addr. Known keys are matched first so
	// that underscores inside names survive (WEBLEARN_LOG_MAX_SIZE_MB).
	known := make(map[string]string)
	for _, key := range k.Keys() {
		known[strings.ReplaceAll(key, ".", "_")] = key
	}
	if err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		name := strings.ToLower(strings.TrimPrefix(s, envPrefix))
		if key, ok := known[name]; ok {
			return key
		}
		return strings.ReplaceAll(name, "_", ".")
	}), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}
	return cfg, nil
}

// Save writes the configuration to the given YAML file path.
func (c *Config) Save(path string) error {
	data, err := yamlv3.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := store.EnsureDir(path); err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

// Validate checks that the configuration contains valid values.
func (c *Config) Validate() error {
	if c.Theme != "light" && c.Theme != "dark" {
		return fmt.Errorf("invalid theme %q: must be light or dark", c.Theme)
	}
	if _, err := zapcore.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("invalid log.level %q", c.Log.Level)
	}
	if c.Log.MaxSizeMB < 0 || c.Log.MaxBackups < 0 || c.Log.MaxAgeDays < 0 {
		return fmt.Errorf("log rotation limits must be non-negative")
	}
	if c.Server.Addr == "" {
		return fmt.Errorf("server.addr is required")
	}
	if c.Assistant.MaxTokens <= 0 {
		return fmt.Errorf("assistant.max_tokens must be positive")
	}
	if c.Playground.Debounce <= 0 {
		return fmt.Errorf("playground.debounce must be positive")
	}
	if err := c.Assistant.LLM.Validate(); err != nil {
		return err
	}
	return nil
}

// DefaultPath returns $XDG_CONFIG_HOME/weblearn/config.yaml.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve config dir: %w", err)
	}
	return filepath.Join(dir, "weblearn", "config.yaml"), nil
}

// ResolveDataDir returns DataDir or the XDG default.
func (c *Config) ResolveDataDir() (string, error) {
	if c.DataDir != "" {
		return c.DataDir, nil
	}
	home, err := store.DataHome()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, "weblearn"), nil
}

// ResolveDBPath returns DBPath, WEBLEARN_DB, or weblearn.db in the data
// directory, creating the parent directory.
func (c *Config) ResolveDBPath() (string, error) {
	if c.DBPath != "" {
		return c.DBPath, store.EnsureDir(c.DBPath)
	}
	if c.DataDir == "" {
		return store.DefaultDBPath()
	}
	p := filepath.Join(c.DataDir, "weblearn.db")
	return p, store.EnsureDir(p)
}

// ResolveLogFile returns log.file or logs/weblearn.log in the data directory.
func (c *Config) ResolveLogFile() (string, error) {
	if c.Log.File != "" {
		return c.Log.File, nil
	}
	dir, err := c.ResolveDataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "logs", "weblearn.log"), nil
}

// bytesProvider feeds an in-memory YAML document to koanf.
type bytesProvider []byte

func (b bytesProvider) ReadBytes() ([]byte, error) { return b, nil }

func (b bytesProvider) Read() (map[string]any, error) {
	return nil, fmt.Errorf("bytes provider does not support Read")
}
