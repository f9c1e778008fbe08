// Package config loads, validates and saves the YAML project configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/zalando/go-keyring"
	"gopkg.in/yaml.v3"
)

var (
	// ErrNotFound is returned when an explicitly requested config file does not exist.
	ErrNotFound = errors.New("config file not found")
	// ErrMissingAPIKey is returned by RequireAPIKey for hosted providers without a key.
	ErrMissingAPIKey = errors.New("LLM API key not configured")
	// ErrUnknownKey is returned by Get and Set for a dotted key that does not exist.
	ErrUnknownKey = errors.New("config key not found")
)

// Config holds the project configuration
type Config struct {
	Name             string                 `yaml:"name" validate:"required"`
	TargetURLs       []string               `yaml:"target_urls" validate:"dive,url"`
	AppRepo          string                 `yaml:"app_repo"`
	TestRepo         string                 `yaml:"test_repo"`
	Browser          BrowserConfig          `yaml:"browser"`
	Docker           DockerConfig           `yaml:"docker"`
	LLM              LLMConfig              `yaml:"llm"`
	VisualRegression VisualRegressionConfig `yaml:"visual_regression"`
	Crawl            CrawlConfig            `yaml:"crawl"`
}

// BrowserConfig configures browser launch. Timeout and SlowMo are milliseconds.
type BrowserConfig struct {
	Browsers       []string `yaml:"browsers" validate:"min=1,dive,oneof=chromium firefox webkit chrome edge safari"`
	Engine         string   `yaml:"engine" validate:"omitempty,oneof=rod chromedp playwright"`
	Headless       bool     `yaml:"headless"`
	Timeout        int      `yaml:"timeout" validate:"gt=0"`
	ViewportWidth  int      `yaml:"viewport_width" validate:"gt=0"`
	ViewportHeight int      `yaml:"viewport_height" validate:"gt=0"`
	Args           []string `yaml:"args"`
	SlowMo         int      `yaml:"slow_mo" validate:"gte=0"`
	Locale         string   `yaml:"locale"`
	Timezone       string   `yaml:"timezone"`
	ProfileDir     string   `yaml:"profile_dir"`
}

// DockerConfig is carried for generated projects; this tool does not run Docker.
type DockerConfig struct {
	Enabled bool              `yaml:"enabled"`
	Images  map[string]string `yaml:"images"`
}

// LLMConfig selects the model used for analysis and generation.
type LLMConfig struct {
	Provider    string  `yaml:"provider" validate:"oneof=openai anthropic ollama gemini"`
	Model       string  `yaml:"model"`
	APIKey      string  `yaml:"api_key"`
	BaseURL     string  `yaml:"base_url" validate:"omitempty,url"`
	Temperature float64 `yaml:"temperature" validate:"gte=0,lte=2"`
	MaxTokens   int     `yaml:"max_tokens" validate:"gt=0"`
}

// VisualRegressionConfig is carried for generated projects.
type VisualRegressionConfig struct {
	Enabled         bool    `yaml:"enabled"`
	Threshold       float64 `yaml:"threshold" validate:"gte=0,lte=1"`
	UpdateBaselines bool    `yaml:"update_baselines"`
}

// CrawlConfig sets the defaults for `analyze --crawl`.
type CrawlConfig struct {
	MaxPages          int     `yaml:"max_pages" validate:"gt=0"`
	SameOriginOnly    bool    `yaml:"same_origin_only"`
	RequestsPerSecond float64 `yaml:"requests_per_second" validate:"gte=0"`
}

// LocalPath returns config.yaml in the working directory.
func LocalPath() string {
	return FileName
}

// GlobalPath returns ~/.config/frontend-tester/config.yaml.
func GlobalPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate home directory: %w", err)
	}
	return filepath.Join(home, ".config", "frontend-tester", FileName), nil
}

// Load resolves the configuration: the explicit path if given (it must
// exist), else ./config.yaml, else the global file, else the defaults.
// Environment overrides and the keyring API key are applied in every case.
// It returns the file the configuration came from, or "" for the defaults.
func Load(explicit string) (*Config, string, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return nil, "", fmt.Errorf("%w: %s", ErrNotFound, explicit)
		}
		cfg, err := LoadFile(explicit)
		return cfg, explicit, err
	}

	candidates := []string{LocalPath()}
	if global, err := GlobalPath(); err == nil {
		candidates = append(candidates, global)
	}
	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			cfg, err := LoadFile(path)
			return cfg, path, err
		}
	}

	cfg := Default()
	if err := cfg.finish(); err != nil {
		return nil, "", err
	}
	return cfg, "", nil
}

// LoadFile reads a config file over the defaults, applies overrides and validates.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	if err := cfg.finish(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	log.Debug().Str("path", path).Msg("Loaded config")
	return cfg, nil
}

func (c *Config) finish() error {
	c.applyEnv()
	c.normalize()
	c.applyKeyring()
	return c.Validate()
}

// applyEnv applies environment overrides. Each provider reads its own key variable.
func (c *Config) applyEnv() {
	provider := strings.ToLower(c.LLM.Provider)
	switch {
	case provider == "openai" && os.Getenv("OPENAI_API_KEY") != "":
		c.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
	case provider == "anthropic" && os.Getenv("ANTHROPIC_API_KEY") != "":
		c.LLM.APIKey = os.Getenv("ANTHROPIC_API_KEY")
	case provider == "gemini" && os.Getenv("GEMINI_API_KEY") != "":
		c.LLM.APIKey = os.Getenv("GEMINI_API_KEY")
	}

	if v := os.Getenv("FRONTEND_TESTER_BROWSER"); v != "" {
		c.Browser.Browsers = []string{v}
	}
	if v := os.Getenv("FRONTEND_TESTER_HEADLESS"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Browser.Headless = b
		}
	}
}

func (c *Config) normalize() {
	c.LLM.Provider = strings.ToLower(strings.TrimSpace(c.LLM.Provider))
	c.Browser.Engine = strings.ToLower(strings.TrimSpace(c.Browser.Engine))
	for i, b := range c.Browser.Browsers {
		c.Browser.Browsers[i] = strings.ToLower(strings.TrimSpace(b))
	}
}

// applyKeyring fills a missing API key from the OS keyring. A keyring that is
// unavailable is treated like an empty one.
func (c *Config) applyKeyring() {
	if c.LLM.APIKey != "" || c.LLM.Provider == "ollama" {
		return
	}
	key, err := keyring.Get(KeyringService, c.LLM.Provider)
	if err != nil {
		if !errors.Is(err, keyring.ErrNotFound) {
			log.Debug().Err(err).Msg("Keyring unavailable")
		}
		return
	}
	c.LLM.APIKey = key
}

// SetAPIKey stores key for provider in the OS keyring.
func SetAPIKey(provider, key string) error {
	if err := keyring.Set(KeyringService, strings.ToLower(provider), key); err != nil {
		return fmt.Errorf("failed to store API key in keyring: %w", err)
	}
	return nil
}

// RequireAPIKey fails when a hosted provider has no API key.
func (c *Config) RequireAPIKey() error {
	if c.LLM.Provider == "ollama" || c.LLM.APIKey != "" {
		return nil
	}
	return fmt.Errorf("%w: set %s or run `frontend-tester config set-key`", ErrMissingAPIKey, envKeyName(c.LLM.Provider))
}

func envKeyName(provider string) string {
	switch provider {
	case "anthropic":
		return "ANTHROPIC_API_KEY"
	case "gemini":
		return "GEMINI_API_KEY"
	default:
		return "OPENAI_API_KEY"
	}
}

// Save writes the configuration as YAML, creating parent directories. The
// API key is never written.
func (c *Config) Save(path string) error {
	out := *c
	out.LLM.APIKey = ""

	data, err := yaml.Marshal(&out)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}
