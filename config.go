package cerebras

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// DefaultBaseURL is the production Cerebras Inference API endpoint.
const DefaultBaseURL = "https://api.cerebras.ai/v1"

// Config holds client configuration. A Config is passed explicitly into
// NewClientWithConfig and copied; the client never reads ambient state after
// construction.
type Config struct {
	// APIKey authenticates requests. Required.
	APIKey string `json:"api_key" yaml:"api_key" toml:"api_key"`

	// BaseURL is the API endpoint. Default: DefaultBaseURL.
	BaseURL string `json:"base_url" yaml:"base_url" toml:"base_url"`

	// Model is the default model used when a request leaves it empty.
	// Optional.
	Model string `json:"model" yaml:"model" toml:"model"`

	// Timeout bounds non-streaming requests. Streaming requests are exempt;
	// their lifetime is governed by the caller's context. 0 means no timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout" toml:"timeout"`

	// HTTPClient overrides the transport. Default: http.DefaultClient.
	HTTPClient *http.Client `json:"-" yaml:"-" toml:"-"`

	// Logger receives debug-level request logging. nil disables logging.
	Logger *slog.Logger `json:"-" yaml:"-" toml:"-"`
}

// DefaultConfig returns a Config with sensible defaults.
// APIKey must still be set before use.
func DefaultConfig() Config {
	return Config{
		BaseURL: DefaultBaseURL,
		Timeout: 60 * time.Second,
	}
}

// LoadFromEnv populates config fields from environment variables, which take
// precedence over existing values.
//
// Supported variables:
//   - CEREBRAS_API_KEY: API key
//   - CEREBRAS_BASE_URL: API endpoint
//   - CEREBRAS_MODEL: Default model
//   - CEREBRAS_TIMEOUT: Request timeout duration (e.g., "90s")
func (c *Config) LoadFromEnv() {
	if v := os.Getenv("CEREBRAS_API_KEY"); v != "" {
		c.APIKey = v
	}
	if v := os.Getenv("CEREBRAS_BASE_URL"); v != "" {
		c.BaseURL = v
	}
	if v := os.Getenv("CEREBRAS_MODEL"); v != "" {
		c.Model = v
	}
	if v := os.Getenv("CEREBRAS_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			c.Timeout = d
		}
	}
}

// ConfigFromEnv creates a Config from environment variables with defaults.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()
	cfg.LoadFromEnv()
	return cfg
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.APIKey == "" {
		return &Error{Op: "config", Message: "set APIKey or CEREBRAS_API_KEY", Err: ErrMissingAPIKey}
	}
	if c.BaseURL == "" {
		return fmt.Errorf("base URL is required")
	}
	if _, err := url.Parse(c.BaseURL); err != nil {
		return fmt.Errorf("parse base URL: %w", err)
	}
	if c.Timeout < 0 {
		return fmt.Errorf("timeout must be >= 0, got %v", c.Timeout)
	}
	return nil
}

// WithAPIKey returns a copy of the config with the specified API key.
func (c Config) WithAPIKey(key string) Config {
	c.APIKey = key
	return c
}

// WithBaseURL returns a copy of the config with the specified endpoint.
func (c Config) WithBaseURL(u string) Config {
	c.BaseURL = u
	return c
}

// WithModel returns a copy of the config with the specified default model.
func (c Config) WithModel(model string) Config {
	c.Model = model
	return c
}

// WithTimeout returns a copy of the config with the specified timeout.
func (c Config) WithTimeout(d time.Duration) Config {
	c.Timeout = d
	return c
}

// WithHTTPClient returns a copy of the config with the specified HTTP client.
func (c Config) WithHTTPClient(hc *http.Client) Config {
	c.HTTPClient = hc
	return c
}

// WithLogger returns a copy of the config with the specified logger.
func (c Config) WithLogger(l *slog.Logger) Config {
	c.Logger = l
	return c
}

// fileConfig is the on-disk schema. Timeout is a duration string so the same
// shape works across TOML, YAML and JSON.
type fileConfig struct {
	APIKey  string `json:"api_key" yaml:"api_key" toml:"api_key"`
	BaseURL string `json:"base_url" yaml:"base_url" toml:"base_url"`
	Model   string `json:"model" yaml:"model" toml:"model"`
	Timeout string `json:"timeout" yaml:"timeout" toml:"timeout"`
}

// LoadConfigFile reads a config file on top of DefaultConfig. The format is
// chosen by extension: .toml, .yaml/.yml, or .json. Unset file fields keep
// their defaults.
func LoadConfigFile(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}

	var fc fileConfig
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		if err := toml.Unmarshal(data, &fc); err != nil {
			return cfg, fmt.Errorf("parse TOML config: %w", err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &fc); err != nil {
			return cfg, fmt.Errorf("parse YAML config: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(data, &fc); err != nil {
			return cfg, fmt.Errorf("parse JSON config: %w", err)
		}
	default:
		return cfg, fmt.Errorf("unsupported config format %q", ext)
	}

	if fc.APIKey != "" {
		cfg.APIKey = fc.APIKey
	}
	if fc.BaseURL != "" {
		cfg.BaseURL = fc.BaseURL
	}
	if fc.Model != "" {
		cfg.Model = fc.Model
	}
	if fc.Timeout != "" {
		d, err := time.ParseDuration(fc.Timeout)
		if err != nil {
			return cfg, fmt.Errorf("parse timeout: %w", err)
		}
		cfg.Timeout = d
	}

	return cfg, nil
}
