package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(contents), 0600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadFromPath(t *testing.T) {
	path := writeConfig(t, `
anthropic:
  api_key: test-key
  model: claude-haiku-4-5
  max_tokens: 2048
generation:
  timeout: 30s
  retries: 5
serve:
  addr: ":9000"
history:
  enabled: false
`)

	cfg, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("LoadFromPath: %v", err)
	}

	if cfg.Anthropic.APIKey != "test-key" {
		t.Errorf("api_key = %q, want test-key", cfg.Anthropic.APIKey)
	}
	if cfg.Anthropic.Model != "claude-haiku-4-5" {
		t.Errorf("model = %q, want claude-haiku-4-5", cfg.Anthropic.Model)
	}
	if cfg.Anthropic.MaxTokens != 2048 {
		t.Errorf("max_tokens = %d, want 2048", cfg.Anthropic.MaxTokens)
	}
	if cfg.Generation.Timeout != 30*time.Second {
		t.Errorf("timeout = %v, want 30s", cfg.Generation.Timeout)
	}
	if cfg.Generation.Retries != 5 {
		t.Errorf("retries = %d, want 5", cfg.Generation.Retries)
	}
	if cfg.Serve.Addr != ":9000" {
		t.Errorf("serve addr = %q, want :9000", cfg.Serve.Addr)
	}
	if cfg.History.Enabled {
		t.Error("history enabled, want disabled")
	}
}

func TestLoadFromPath_DefaultsFillGaps(t *testing.T) {
	path := writeConfig(t, `
anthropic:
  api_key: test-key
`)

	cfg, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("LoadFromPath: %v", err)
	}

	want := Default()
	if cfg.Anthropic.Model != want.Anthropic.Model {
		t.Errorf("model = %q, want default %q", cfg.Anthropic.Model, want.Anthropic.Model)
	}
	if cfg.Generation.Timeout != want.Generation.Timeout {
		t.Errorf("timeout = %v, want default %v", cfg.Generation.Timeout, want.Generation.Timeout)
	}
	if cfg.Serve.Addr != want.Serve.Addr {
		t.Errorf("serve addr = %q, want default %q", cfg.Serve.Addr, want.Serve.Addr)
	}
	if !cfg.History.Enabled {
		t.Error("history disabled, want enabled by default")
	}
}

func TestLoadFromPath_ExpandsEnvInAPIKey(t *testing.T) {
	t.Setenv("CREWPLAN_TEST_KEY", "expanded-secret")
	path := writeConfig(t, `
anthropic:
  api_key: ${CREWPLAN_TEST_KEY}
`)

	cfg, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("LoadFromPath: %v", err)
	}
	if cfg.Anthropic.APIKey != "expanded-secret" {
		t.Errorf("api_key = %q, want expanded-secret", cfg.Anthropic.APIKey)
	}
}

func TestLoadFromPath_MissingFile(t *testing.T) {
	if _, err := LoadFromPath(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing config file")
	}
}

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Anthropic.Model == "" {
		t.Error("default model is empty")
	}
	if cfg.Anthropic.MaxTokens <= 0 {
		t.Errorf("default max_tokens = %d, want > 0", cfg.Anthropic.MaxTokens)
	}
	if cfg.Generation.Timeout <= 0 {
		t.Error("default generation timeout not set")
	}
	if cfg.Serve.Addr == "" {
		t.Error("default serve addr is empty")
	}
}

func TestSaveAndReload(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg := Default()
	cfg.Anthropic.APIKey = "saved-key"
	cfg.Serve.Addr = ":7070"
	if err := Save(cfg); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := LoadFromPath(GetUserConfigPath())
	if err != nil {
		t.Fatalf("LoadFromPath: %v", err)
	}
	if got.Anthropic.APIKey != "saved-key" {
		t.Errorf("api_key = %q, want saved-key", got.Anthropic.APIKey)
	}
	if got.Serve.Addr != ":7070" {
		t.Errorf("serve addr = %q, want :7070", got.Serve.Addr)
	}
}
