package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/openproject-tools/openproject-mcp/internal/common"
)

// Environment variable names for the OpenProject connection. The prefixed
// names are the primary convention; the camel-case names are a legacy
// convention still honoured as a fallback.
const (
	EnvBaseURL = "OPENPROJECT_BASE_URL"
	EnvAPIKey  = "OPENPROJECT_API_KEY"
	EnvTimeout = "OPENPROJECT_TIMEOUT"

	AltEnvBaseURL = "baseUrl"
	AltEnvAPIKey  = "apiKey"
	AltEnvTimeout = "timeout"
)

// Config holds all openproject-mcp configuration.
type Config struct {
	Server      ServerConfig         `toml:"server"`
	OpenProject OpenProjectConfig    `toml:"openproject"`
	Logging     common.LoggingConfig `toml:"logging"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Name string `toml:"name"`
	Host string `toml:"host"`
	Port int    `toml:"port"`
}

// OpenProjectConfig contains the remote OpenProject API connection settings.
// BaseURL and APIKey are mandatory; TimeoutSeconds defaults to 30.
type OpenProjectConfig struct {
	BaseURL        string `toml:"base_url"`
	APIKey         string `toml:"api_key"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// Timeout returns the configured request timeout as a duration.
func (c *OpenProjectConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// NewDefaultConfig returns a Config with sensible defaults.
func NewDefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Name: "OpenProject MCP Server",
			Host: "0.0.0.0",
			Port: 8080,
		},
		OpenProject: OpenProjectConfig{
			TimeoutSeconds: 30,
		},
		Logging: common.LoggingConfig{
			Level:      "info",
			Outputs:    []string{"console", "file"},
			FilePath:   "logs/openproject-mcp.log",
			MaxSizeMB:  100,
			MaxBackups: 3,
		},
	}
}

// Load loads configuration with priority: defaults -> TOML file -> env.
// A missing config file is not an error; a malformed one is.
func Load(path string) (*Config, error) {
	cfg := NewDefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
			}
			// File not found — use defaults
		} else {
			if err := toml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
			}
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.OpenProject.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// applyEnvOverrides applies environment variable overrides to config.
// OpenProject connection settings honour the primary OPENPROJECT_* names
// first and the legacy camel-case names only when the primary is unset.
func applyEnvOverrides(cfg *Config) {
	if v := envFirst(EnvBaseURL, AltEnvBaseURL); v != "" {
		cfg.OpenProject.BaseURL = v
	}
	if v := envFirst(EnvAPIKey, AltEnvAPIKey); v != "" {
		cfg.OpenProject.APIKey = v
	}
	if v := envFirst(EnvTimeout, AltEnvTimeout); v != "" {
		if secs, err := strconv.Atoi(v); err == nil && secs > 0 {
			cfg.OpenProject.TimeoutSeconds = secs
		}
	}

	if port := os.Getenv("PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			cfg.Server.Port = p
		}
	}
	if host := os.Getenv("HOST"); host != "" {
		cfg.Server.Host = host
	}
	if level := os.Getenv("LOG_LEVEL"); level != "" {
		cfg.Logging.Level = level
	}
}

// envFirst returns the first non-empty value among the named variables.
func envFirst(names ...string) string {
	for _, name := range names {
		if v := os.Getenv(name); v != "" {
			return v
		}
	}
	return ""
}

// Validate checks the OpenProject connection settings and normalizes the
// base URL. It returns a descriptive error naming the offending field and,
// for missing values, both environment variable conventions that were tried.
func (c *OpenProjectConfig) Validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("openproject base URL is required (set %s or %s)", EnvBaseURL, AltEnvBaseURL)
	}
	if !strings.HasPrefix(c.BaseURL, "http://") && !strings.HasPrefix(c.BaseURL, "https://") {
		return fmt.Errorf("openproject base URL must start with http:// or https://, got %q", c.BaseURL)
	}
	c.BaseURL = strings.TrimRight(c.BaseURL, "/")

	if c.APIKey == "" {
		return fmt.Errorf("openproject API key is required (set %s or %s)", EnvAPIKey, AltEnvAPIKey)
	}
	if len(c.APIKey) < 10 {
		return fmt.Errorf("openproject API key appears too short (%d characters, need at least 10)", len(c.APIKey))
	}

	if c.TimeoutSeconds <= 0 {
		c.TimeoutSeconds = 30
	}
	return nil
}

// ApplyFlagOverrides applies command-line flag overrides to config.
func ApplyFlagOverrides(cfg *Config, port int, host string) {
	if port > 0 {
		cfg.Server.Port = port
	}
	if host != "" {
		cfg.Server.Host = host
	}
}
