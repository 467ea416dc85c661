package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Theme != "light" {
		t.Errorf("expected default theme light, got %q", cfg.Theme)
	}
	if cfg.Server.Addr != "127.0.0.1:8080" {
		t.Errorf("expected default addr, got %q", cfg.Server.Addr)
	}
	if cfg.Playground.Debounce != time.Second {
		t.Errorf("expected 1s debounce, got %s", cfg.Playground.Debounce)
	}
	if cfg.Assistant.LLM.Enabled() {
		t.Errorf("expected no llm provider by default, got %q", cfg.Assistant.LLM.Provider)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	original := DefaultConfig()
	original.Theme = "dark"
	original.Server.Addr = ":9000"
	original.Server.AllowedOrigins = []string{"https://weblearn.dev", "http://localhost:3000"}
	original.Assistant.LLM.Provider = "openai"
	original.Assistant.LLM.OpenAI.APIKey = "sk-test"
	original.Assistant.LLM.Timeout = 5 * time.Second
	original.Playground.Debounce = 250 * time.Millisecond

	if err := original.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if loaded.Theme != "dark" {
		t.Errorf("theme: got %q, want dark", loaded.Theme)
	}
	if loaded.Server.Addr != ":9000" {
		t.Errorf("addr: got %q", loaded.Server.Addr)
	}
	if len(loaded.Server.AllowedOrigins) != 2 || loaded.Server.AllowedOrigins[1] != "http://localhost:3000" {
		t.Errorf("origins: got %v", loaded.Server.AllowedOrigins)
	}
	if loaded.Assistant.LLM.Provider != "openai" || loaded.Assistant.LLM.OpenAI.APIKey != "sk-test" {
		t.Errorf("llm: got %+v", loaded.Assistant.LLM)
	}
	if loaded.Assistant.LLM.Timeout != 5*time.Second {
		t.Errorf("timeout: got %s", loaded.Assistant.LLM.Timeout)
	}
	if loaded.Playground.Debounce != 250*time.Millisecond {
		t.Errorf("debounce: got %s", loaded.Playground.Debounce)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode().Perm() != 0o600 {
		t.Errorf("config file mode = %v, want 0600", info.Mode().Perm())
	}
}

func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nonexistent.yaml"))
	if err != nil {
		t.Fatalf("Load of missing file should not error: %v", err)
	}
	if cfg.Log.Level != "info" || cfg.Assistant.MaxTokens != 400 {
		t.Errorf("expected defaults, got %+v", cfg)
	}
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("theme: dark\nserver:\n  addr: \":7000\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Theme != "dark" || cfg.Server.Addr != ":7000" {
		t.Errorf("file values not applied: %+v", cfg)
	}
	if cfg.Server.ReadTimeout != 10*time.Second {
		t.Errorf("read timeout default lost: %s", cfg.Server.ReadTimeout)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("WEBLEARN_SERVER_ADDR", ":5555")
	t.Setenv("WEBLEARN_LOG_MAX_SIZE_MB", "42")
	t.Setenv("WEBLEARN_ASSISTANT_LLM_ANTHROPIC_API_KEY", "sk-ant")
	t.Setenv("WEBLEARN_PLAYGROUND_DEBOUNCE", "2s")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Server.Addr != ":5555" {
		t.Errorf("addr: got %q", cfg.Server.Addr)
	}
	if cfg.Log.MaxSizeMB != 42 {
		t.Errorf("max_size_mb: got %d", cfg.Log.MaxSizeMB)
	}
	if cfg.Assistant.LLM.Anthropic.APIKey != "sk-ant" {
		t.Errorf("anthropic key: got %q", cfg.Assistant.LLM.Anthropic.APIKey)
	}
	if cfg.Playground.Debounce != 2*time.Second {
		t.Errorf("debounce: got %s", cfg.Playground.Debounce)
	}
}

func TestLoadInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("theme: [unclosed"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected error for invalid YAML")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"bad theme", func(c *Config) { c.Theme = "sepia" }},
		{"bad level", func(c *Config) { c.Log.Level = "loud" }},
		{"negative rotation", func(c *Config) { c.Log.MaxBackups = -1 }},
		{"no addr", func(c *Config) { c.Server.Addr = "" }},
		{"zero tokens", func(c *Config) { c.Assistant.MaxTokens = 0 }},
		{"zero debounce", func(c *Config) { c.Playground.Debounce = 0 }},
		{"llm without key", func(c *Config) { c.Assistant.LLM.Provider = "gemini" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}

func TestResolvePaths(t *testing.T) {
	dir := t.TempDir()
	cfg := DefaultConfig()
	cfg.DataDir = dir

	db, err := cfg.ResolveDBPath()
	if err != nil {
		t.Fatal(err)
	}
	if db != filepath.Join(dir, "weblearn.db") {
		t.Errorf("db path = %q", db)
	}

	logFile, err := cfg.ResolveLogFile()
	if err != nil {
		t.Fatal(err)
	}
	if logFile != filepath.Join(dir, "logs", "weblearn.log") {
		t.Errorf("log file = %q", logFile)
	}

	cfg.DBPath = filepath.Join(dir, "other", "x.db")
	db, _ = cfg.ResolveDBPath()
	if db != cfg.DBPath {
		t.Errorf("explicit db path ignored: %q", db)
	}
	if _, err := os.Stat(filepath.Join(dir, "other")); err != nil {
		t.Errorf("parent dir not created: %v", err)
	}
}
