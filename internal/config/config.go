// Package config provides configuration loading and validation for the CLI and server.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/jonathan/resume-analyzer/internal/logging"
)

// Environment variables read by Resolve
const (
	EnvConfigPath = "RESUME_ANALYZER_CONFIG"
	EnvPort       = "PORT"
	EnvLogLevel   = "LOG_LEVEL"
)

// Config represents the configuration that can be loaded from a JSON or YAML file.
// All fields are optional; missing values use defaults.
type Config struct {
	// Analysis
	LexiconPath          string `json:"lexicon_path,omitempty" yaml:"lexicon_path,omitempty"`                   // YAML lexicon overriding the built-in tables
	PreviewRunes         int    `json:"preview_runes,omitempty" yaml:"preview_runes,omitempty" validate:"gte=0"` // Length of text_preview
	MaxInputRunes        int    `json:"max_input_runes,omitempty" yaml:"max_input_runes,omitempty" validate:"gte=0"`
	Timeout              string `json:"timeout,omitempty" yaml:"timeout,omitempty"` // Go duration, e.g. "30s"
	ConcurrentExtractors bool   `json:"concurrent_extractors,omitempty" yaml:"concurrent_extractors,omitempty"`

	// Uploads
	MaxUploadBytes int64 `json:"max_upload_bytes,omitempty" yaml:"max_upload_bytes,omitempty" validate:"gte=0"`

	Log    logging.Config `json:"log" yaml:"log"`
	Server ServerConfig   `json:"server" yaml:"server"`
}

// ServerConfig configures the HTTP server
type ServerConfig struct {
	Port      int             `json:"port,omitempty" yaml:"port,omitempty" validate:"gte=0,lte=65535"`
	RateLimit RateLimitConfig `json:"rate_limit" yaml:"rate_limit"`
}

// RateLimitConfig configures the per-client token bucket
type RateLimitConfig struct {
	Enabled           bool `json:"enabled" yaml:"enabled"`
	RequestsPerMinute int  `json:"requests_per_minute,omitempty" yaml:"requests_per_minute,omitempty" validate:"gte=0"`
	Burst             int  `json:"burst,omitempty" yaml:"burst,omitempty" validate:"gte=0"`
}

// Default returns the built-in configuration
func Default() Config {
	return Config{
		PreviewRunes:   8000,
		MaxInputRunes:  200000,
		Timeout:        "30s",
		MaxUploadBytes: 10 << 20,
		Log: logging.Config{
			Level:  "info",
			Format: "json",
		},
		Server: ServerConfig{
			Port: 8080,
			RateLimit: RateLimitConfig{
				Enabled:           true,
				RequestsPerMinute: 60,
				Burst:             10,
			},
		},
	}
}

// LoadConfig loads configuration from a JSON or YAML file, chosen by extension.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config YAML: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config JSON: %w", err)
		}
	}

	return &cfg, nil
}

// Resolve loads the file at path (or at $RESUME_ANALYZER_CONFIG when path is
// empty), applies environment overrides, fills defaults and validates.
func Resolve(path string) (*Config, error) {
	if path == "" {
		path = os.Getenv(EnvConfigPath)
	}

	cfg := &Config{}
	if path != "" {
		loaded, err := LoadConfig(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return nil, err
	}

	merged := cfg.MergeWithDefaults(Default())
	if err := merged.Validate(); err != nil {
		return nil, err
	}
	return &merged, nil
}

// ApplyEnv overrides the port and log level from the environment
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvPort); ok && v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("config error: invalid %s %q: %w", EnvPort, v, err)
		}
		c.Server.Port = port
	}
	if v, ok := lookup(EnvLogLevel); ok && v != "" {
		c.Log.Level = strings.ToLower(v)
	}
	return nil
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("config error: %w", err)
	}

	if c.Timeout != "" {
		d, err := time.ParseDuration(c.Timeout)
		if err != nil {
			return fmt.Errorf("config error: invalid 'timeout': %w", err)
		}
		if d < 0 {
			return fmt.Errorf("config error: 'timeout' must be non-negative")
		}
	}

	// Validate file paths exist (if specified)
	if c.LexiconPath != "" {
		if _, err := os.Stat(c.LexiconPath); os.IsNotExist(err) {
			return fmt.Errorf("config error: lexicon file not found: %s", c.LexiconPath)
		}
	}

	return nil
}

// TimeoutDuration returns the parsed timeout, zero when unset or invalid
func (c *Config) TimeoutDuration() time.Duration {
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 0
	}
	return d
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	if result.LexiconPath == "" {
		result.LexiconPath = defaults.LexiconPath
	}
	if result.Timeout == "" {
		result.Timeout = defaults.Timeout
	}
	if result.Log.Level == "" {
		result.Log.Level = defaults.Log.Level
	}
	if result.Log.Format == "" {
		result.Log.Format = defaults.Log.Format
	}
	if result.Log.TimeFormat == "" {
		result.Log.TimeFormat = defaults.Log.TimeFormat
	}

	// Int fields: use default if zero
	if result.PreviewRunes == 0 {
		result.PreviewRunes = defaults.PreviewRunes
	}
	if result.MaxInputRunes == 0 {
		result.MaxInputRunes = defaults.MaxInputRunes
	}
	if result.MaxUploadBytes == 0 {
		result.MaxUploadBytes = defaults.MaxUploadBytes
	}
	if result.Server.Port == 0 {
		result.Server.Port = defaults.Server.Port
	}

	// An untouched rate limit block takes the defaults wholesale; bools
	// cannot be told apart from unset otherwise
	if result.Server.RateLimit == (RateLimitConfig{}) {
		result.Server.RateLimit = defaults.Server.RateLimit
	} else {
		if result.Server.RateLimit.RequestsPerMinute == 0 {
			result.Server.RateLimit.RequestsPerMinute = defaults.Server.RateLimit.RequestsPerMinute
		}
		if result.Server.RateLimit.Burst == 0 {
			result.Server.RateLimit.Burst = defaults.Server.RateLimit.Burst
		}
	}

	return result
}
