package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DefaultAPIBase is the public news API the portals and posts come from.
const DefaultAPIBase = "https://breaking-api.alpha.tv2.no/v1/public"

// PageSize is the fixed number of articles requested per portal.
const PageSize = 10

// Config is the persistent application configuration
type Config struct {
	News    NewsConfig    `yaml:"news"`
	Summary SummaryConfig `yaml:"summary"`
	Proxy   ProxyConfig   `yaml:"proxy"`
	UI      UIConfig      `yaml:"ui"`
	Log     LogConfig     `yaml:"log"`
}

// NewsConfig points the content sources at their upstreams.
type NewsConfig struct {
	APIBase        string        `yaml:"api_base"`
	RequestTimeout time.Duration `yaml:"request_timeout"`
	Feeds          []FeedConfig  `yaml:"feeds,omitempty"`
}

// FeedConfig is an RSS/Atom feed exposed as an extra portal.
type FeedConfig struct {
	ID   string `yaml:"id"`
	Name string `yaml:"name"`
	URL  string `yaml:"url"`
}

// SummaryConfig is the client side of the summarization proxy.
type SummaryConfig struct {
	ProxyURL string        `yaml:"proxy_url"`
	Timeout  time.Duration `yaml:"timeout"`
}

// ProxyConfig configures the summarization proxy server.
type ProxyConfig struct {
	Listen      string       `yaml:"listen"`
	Provider    string       `yaml:"provider"` // "openai", "claude", "ollama"; empty = first available
	RatePerSec  float64      `yaml:"rate_per_sec"`
	Burst       int          `yaml:"burst"`
	Temperature float64      `yaml:"temperature"`
	Models      ModelsConfig `yaml:"models"`
	Keys        ProviderKeys `yaml:"-"` // never written to disk
}

// ModelsConfig holds per-provider model names.
type ModelsConfig struct {
	OpenAI string `yaml:"openai"`
	Claude string `yaml:"claude"`
	Ollama string `yaml:"ollama"`
	// OllamaHost is the base URL of a local Ollama server.
	OllamaHost string `yaml:"ollama_host"`
}

// ProviderKeys are resolved from the environment only.
type ProviderKeys struct {
	OpenAI    string
	Anthropic string
}

// UIConfig holds UI preferences
type UIConfig struct {
	Mouse            bool    `yaml:"mouse"`
	SwipeMinDistance int     `yaml:"swipe_min_distance"` // terminal cells
	SwipeMinVelocity float64 `yaml:"swipe_min_velocity"` // cells per second
	Animate          bool    `yaml:"animate"`
	GlamourStyle     string  `yaml:"glamour_style"` // dark, light, notty
}

// LogConfig selects the log level.
type LogConfig struct {
	Level string `yaml:"level"`
}

// DefaultConfig returns sensible defaults
func DefaultConfig() *Config {
	return &Config{
		News: NewsConfig{
			APIBase:        DefaultAPIBase,
			RequestTimeout: 20 * time.Second,
		},
		Summary: SummaryConfig{
			ProxyURL: "http://127.0.0.1:8787/api/summarize",
			Timeout:  60 * time.Second,
		},
		Proxy: ProxyConfig{
			Listen:      "127.0.0.1:8787",
			RatePerSec:  2,
			Burst:       4,
			Temperature: 0.7,
			Models: ModelsConfig{
				OpenAI:     "gpt-3.5-turbo",
				Claude:     "claude-sonnet-4-5-20250929",
				OllamaHost: "http://localhost:11434",
			},
		},
		UI: UIConfig{
			Mouse:            true,
			SwipeMinDistance: 8,
			SwipeMinVelocity: 20,
			Animate:          true,
			GlamourStyle:     "dark",
		},
		Log: LogConfig{Level: "info"},
	}
}

// ConfigPath returns the path to the config file
func ConfigPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".newsdeck", "config.yaml")
}

// Load reads config from path (ConfigPath when empty), or returns defaults
// when the file does not exist. Environment overrides are applied last.
func Load(path string) (*Config, error) {
	cfg, err := LoadFile(path)
	if err != nil {
		return nil, err
	}

	cfg.AutoPopulateFromEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFile reads defaults plus the file at path, without environment
// overrides. This is the config Save should write back.
func LoadFile(path string) (*Config, error) {
	if path == "" {
		path = ConfigPath()
	}

	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist):
	default:
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes config to disk
func (c *Config) Save(path string) error {
	if path == "" {
		path = ConfigPath()
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// LoadDotEnv loads KEY=value pairs from the given .env files into the
// process environment. Missing files are ignored; existing variables win.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("load %s: %w", f, err)
		}
	}
	return nil
}

// AutoPopulateFromEnv fills in keys and overrides from environment variables
func (c *Config) AutoPopulateFromEnv() {
	if v := os.Getenv("NEWSDECK_API_BASE"); v != "" {
		c.News.APIBase = v
	}
	if v := os.Getenv("NEWSDECK_PROXY_URL"); v != "" {
		c.Summary.ProxyURL = v
	}
	if v := os.Getenv("NEWSDECK_LISTEN"); v != "" {
		c.Proxy.Listen = v
	}
	if v := os.Getenv("NEWSDECK_PROVIDER"); v != "" {
		c.Proxy.Provider = v
	}
	if v := os.Getenv("NEWSDECK_RATE"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			c.Proxy.RatePerSec = f
		}
	}
	if v := os.Getenv("NEWSDECK_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv("OPENAI_MODEL"); v != "" {
		c.Proxy.Models.OpenAI = v
	}
	if v := os.Getenv("CLAUDE_MODEL"); v != "" {
		c.Proxy.Models.Claude = v
	}
	if v := os.Getenv("OLLAMA_MODEL"); v != "" {
		c.Proxy.Models.Ollama = v
	}
	if v := os.Getenv("OLLAMA_HOST"); v != "" {
		c.Proxy.Models.OllamaHost = v
	}
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		c.Proxy.Keys.OpenAI = key
	}
	if key := os.Getenv("CLAUDE_API_KEY"); key != "" {
		c.Proxy.Keys.Anthropic = key
	}
	if key := os.Getenv("ANTHROPIC_API_KEY"); key != "" {
		c.Proxy.Keys.Anthropic = key
	}
}

// Validate rejects configurations the rest of the program cannot use.
func (c *Config) Validate() error {
	var problems []string
	if strings.TrimSpace(c.News.APIBase) == "" && len(c.News.Feeds) == 0 {
		problems = append(problems, "news.api_base is empty and no feeds are configured")
	}
	for i, f := range c.News.Feeds {
		if f.ID == "" || f.URL == "" {
			problems = append(problems, fmt.Sprintf("news.feeds[%d] needs id and url", i))
		}
	}
	if c.Proxy.RatePerSec < 0 {
		problems = append(problems, "proxy.rate_per_sec must not be negative")
	}
	if c.Proxy.Burst < 0 {
		problems = append(problems, "proxy.burst must not be negative")
	}
	switch c.Proxy.Provider {
	case "", "openai", "claude", "ollama":
	default:
		problems = append(problems, fmt.Sprintf("proxy.provider %q is not one of openai, claude, ollama", c.Proxy.Provider))
	}
	if c.UI.SwipeMinDistance < 1 {
		problems = append(problems, "ui.swipe_min_distance must be at least 1")
	}
	if len(problems) > 0 {
		return fmt.Errorf("invalid config: %s", strings.Join(problems, "; "))
	}
	return nil
}
