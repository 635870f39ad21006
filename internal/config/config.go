// Package config provides configuration loading and validation for the CLI
// and the HTTP server.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
)

// Config represents the application configuration. Values can come from an
// optional JSON file, from environment variables, or from CLI flags; flags
// win over environment, environment wins over the file.
type Config struct {
	// Server
	Port int `json:"port,omitempty"` // HTTP listen port

	// Engine policy
	LexiconPath string `json:"lexicon_path,omitempty"` // Optional lexicon YAML override

	// Integrations (all optional)
	DatabaseURL  string `json:"database_url,omitempty"`   // PostgreSQL URL for analysis history
	GeminiAPIKey string `json:"gemini_api_key,omitempty"` // Enables the AI narrative review

	// Vacancy fetching
	FetchTimeoutSeconds int `json:"fetch_timeout_seconds,omitempty"`
	FetchMaxRetries     int `json:"fetch_max_retries,omitempty"`

	// Logging
	LogLevel  string `json:"log_level,omitempty"`  // debug, info, warn, error
	LogFormat string `json:"log_format,omitempty"` // json or pretty
}

// Defaults returns the baseline configuration.
func Defaults() Config {
	return Config{
		Port:                8080,
		FetchTimeoutSeconds: 10,
		FetchMaxRetries:     3,
		LogLevel:            "info",
		LogFormat:           "json",
	}
}

// LoadFile loads configuration from a JSON file.
func LoadFile(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}
	return &cfg, nil
}

// FromEnv overlays environment variables onto the configuration and
// returns the result.
func (c Config) FromEnv() Config {
	if v := os.Getenv("PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			c.Port = port
		}
	}
	if v := os.Getenv("LEXICON_PATH"); v != "" {
		c.LexiconPath = v
	}
	if v := os.Getenv("DATABASE_URL"); v != "" {
		c.DatabaseURL = v
	}
	if v := os.Getenv("GEMINI_API_KEY"); v != "" {
		c.GeminiAPIKey = v
	}
	if v := os.Getenv("FETCH_TIMEOUT"); v != "" {
		if seconds, err := strconv.Atoi(v); err == nil {
			c.FetchTimeoutSeconds = seconds
		}
	}
	if v := os.Getenv("FETCH_MAX_RETRIES"); v != "" {
		if retries, err := strconv.Atoi(v); err == nil {
			c.FetchMaxRetries = retries
		}
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		c.LogFormat = v
	}
	return c
}

// MergeWithDefaults fills zero-valued fields from defaults.
func (c Config) MergeWithDefaults(defaults Config) Config {
	result := c
	if result.Port == 0 {
		result.Port = defaults.Port
	}
	if result.LexiconPath == "" {
		result.LexiconPath = defaults.LexiconPath
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.GeminiAPIKey == "" {
		result.GeminiAPIKey = defaults.GeminiAPIKey
	}
	if result.FetchTimeoutSeconds == 0 {
		result.FetchTimeoutSeconds = defaults.FetchTimeoutSeconds
	}
	if result.FetchMaxRetries == 0 {
		result.FetchMaxRetries = defaults.FetchMaxRetries
	}
	if result.LogLevel == "" {
		result.LogLevel = defaults.LogLevel
	}
	if result.LogFormat == "" {
		result.LogFormat = defaults.LogFormat
	}
	return result
}

// Validate checks that the configuration has usable values.
func (c Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be in 1..65535, got %d", c.Port)
	}
	if c.FetchTimeoutSeconds <= 0 {
		return fmt.Errorf("config error: 'fetch_timeout_seconds' must be positive")
	}
	if c.FetchMaxRetries < 0 {
		return fmt.Errorf("config error: 'fetch_max_retries' cannot be negative")
	}
	if c.LexiconPath != "" {
		if _, err := os.Stat(c.LexiconPath); os.IsNotExist(err) {
			return fmt.Errorf("config error: lexicon file not found: %s", c.LexiconPath)
		}
	}
	return nil
}
