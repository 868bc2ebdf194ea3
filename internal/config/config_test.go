package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	t.Setenv("NEWSDECK_API_BASE", "")
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.News.APIBase != DefaultAPIBase {
		t.Errorf("expected default api base, got %q", cfg.News.APIBase)
	}
	if cfg.Proxy.Models.OpenAI != "gpt-3.5-turbo" {
		t.Errorf("expected gpt-3.5-turbo, got %q", cfg.Proxy.Models.OpenAI)
	}
	if cfg.Proxy.Temperature != 0.7 {
		t.Errorf("expected temperature 0.7, got %v", cfg.Proxy.Temperature)
	}
}

func TestLoadYAMLOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := `
news:
  api_base: http://example.test/v1
  request_timeout: 5s
  feeds:
    - id: hn
      name: Hacker News
      url: https://news.ycombinator.com/rss
proxy:
  provider: ollama
ui:
  swipe_min_distance: 12
`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.News.APIBase != "http://example.test/v1" {
		t.Errorf("unexpected api base %q", cfg.News.APIBase)
	}
	if cfg.News.RequestTimeout != 5*time.Second {
		t.Errorf("expected 5s timeout, got %v", cfg.News.RequestTimeout)
	}
	if len(cfg.News.Feeds) != 1 || cfg.News.Feeds[0].ID != "hn" {
		t.Errorf("unexpected feeds %+v", cfg.News.Feeds)
	}
	if cfg.Proxy.Provider != "ollama" {
		t.Errorf("expected ollama, got %q", cfg.Proxy.Provider)
	}
	if cfg.UI.SwipeMinDistance != 12 {
		t.Errorf("expected swipe distance 12, got %d", cfg.UI.SwipeMinDistance)
	}
	// Untouched sections keep defaults.
	if cfg.Summary.ProxyURL == "" {
		t.Error("summary proxy url should keep its default")
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("proxy:\n  provider: bard\n"), 0644); err != nil {
		t.Fatal(err)
	}
	_, err := Load(path)
	if err == nil || !strings.Contains(err.Error(), "bard") {
		t.Errorf("expected provider validation error, got %v", err)
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("NEWSDECK_PROXY_URL", "http://proxy.test/api/summarize")
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("ANTHROPIC_API_KEY", "ant-test")
	t.Setenv("NEWSDECK_RATE", "5.5")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Summary.ProxyURL != "http://proxy.test/api/summarize" {
		t.Errorf("unexpected proxy url %q", cfg.Summary.ProxyURL)
	}
	if cfg.Proxy.Keys.OpenAI != "sk-test" || cfg.Proxy.Keys.Anthropic != "ant-test" {
		t.Errorf("keys not populated: %+v", cfg.Proxy.Keys)
	}
	if cfg.Proxy.RatePerSec != 5.5 {
		t.Errorf("expected rate 5.5, got %v", cfg.Proxy.RatePerSec)
	}
}

func TestSaveDoesNotPersistKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.yaml")
	cfg := DefaultConfig()
	cfg.Proxy.Keys.OpenAI = "sk-secret"
	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(data), "sk-secret") {
		t.Error("API keys must not be written to the config file")
	}
}

func TestLoadFileIgnoresEnv(t *testing.T) {
	t.Setenv("NEWSDECK_API_BASE", "http://env.test/v1")
	t.Setenv("NEWSDECK_PROVIDER", "claude")
	t.Setenv("OPENAI_MODEL", "gpt-env")
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("proxy:\n  burst: 9\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}
	if cfg.News.APIBase != DefaultAPIBase {
		t.Errorf("expected default api base, got %q", cfg.News.APIBase)
	}
	if cfg.Proxy.Burst != 9 {
		t.Errorf("expected burst 9 from file, got %d", cfg.Proxy.Burst)
	}

	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	for _, leaked := range []string{"env.test", "provider: claude", "gpt-env"} {
		if strings.Contains(string(data), leaked) {
			t.Errorf("expected %q to stay out of the saved file, got:\n%s", leaked, data)
		}
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.News.APIBase != "http://env.test/v1" || loaded.Proxy.Provider != "claude" {
		t.Errorf("expected env overrides on Load, got %q %q", loaded.News.APIBase, loaded.Proxy.Provider)
	}
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	envPath := filepath.Join(dir, ".env")
	if err := os.WriteFile(envPath, []byte("NEWSDECK_TEST_DOTENV=from-file\n"), 0600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("NEWSDECK_TEST_DOTENV", "")
	os.Unsetenv("NEWSDECK_TEST_DOTENV")

	if err := LoadDotEnv(envPath, filepath.Join(dir, "missing.env")); err != nil {
		t.Fatalf("LoadDotEnv failed: %v", err)
	}
	if got := os.Getenv("NEWSDECK_TEST_DOTENV"); got != "from-file" {
		t.Errorf("expected from-file, got %q", got)
	}
}
