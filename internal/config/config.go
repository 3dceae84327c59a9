// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Environment variables consulted when a value is absent from the config file.
const (
	EnvAPIKey      = "GEMINI_API_KEY"
	EnvDatabaseURL = "DATABASE_URL"
)

// Config represents the CLI configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults, flags or environment.
type Config struct {
	APIKey      string `json:"api_key,omitempty"`      // Gemini API key, only needed for non-experience questions
	DatabaseURL string `json:"database_url,omitempty"` // PostgreSQL URL for analytics; empty disables the database sink

	// Experience computation
	ReversedInterval string `json:"reversed_interval,omitempty" validate:"omitempty,oneof=drop error swap"`

	// LLM
	ModelTier string `json:"model_tier,omitempty" validate:"omitempty,oneof=lite standard advanced"`
	// Model overrides the model name for ModelTier.
	Model string `json:"model,omitempty"`
	// Temperature nil means the default; an explicit 0 is kept.
	Temperature *float32 `json:"temperature,omitempty" validate:"omitempty,gte=0,lte=2"`

	// Logging
	LogLevel  string `json:"log_level,omitempty" validate:"omitempty,oneof=debug info warn error"`
	LogFormat string `json:"log_format,omitempty" validate:"omitempty,oneof=json pretty"`
	Verbose   bool   `json:"verbose,omitempty"`
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		ReversedInterval: "drop",
		ModelTier:        "lite",
		Temperature:      float32Ptr(0.2),
		LogLevel:         "info",
		LogFormat:        "json",
	}
}

// LoadConfig loads configuration from a JSON file.
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
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Validate checks enumerated and numeric fields.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, fmt.Sprintf("'%s' failed '%s' (got %v)", jsonName(fe.Field()), fe.Tag(), fe.Value()))
			}
			return fmt.Errorf("config error: %s", strings.Join(msgs, "; "))
		}
		return fmt.Errorf("config error: %w", err)
	}
	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.ReversedInterval == "" {
		result.ReversedInterval = defaults.ReversedInterval
	}
	if result.ModelTier == "" {
		result.ModelTier = defaults.ModelTier
	}
	if result.Temperature == nil && defaults.Temperature != nil {
		result.Temperature = float32Ptr(*defaults.Temperature)
	}
	if result.LogLevel == "" {
		result.LogLevel = defaults.LogLevel
	}
	if result.LogFormat == "" {
		result.LogFormat = defaults.LogFormat
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}

// ApplyEnv fills secrets that are still empty from the environment.
func (c *Config) ApplyEnv(getenv func(string) string) {
	if getenv == nil {
		getenv = os.Getenv
	}
	if c.APIKey == "" {
		c.APIKey = getenv(EnvAPIKey)
	}
	if c.DatabaseURL == "" {
		c.DatabaseURL = getenv(EnvDatabaseURL)
	}
}

func float32Ptr(v float32) *float32 {
	return &v
}

// jsonName maps a struct field name to its JSON key for error messages.
func jsonName(field string) string {
	switch field {
	case "ReversedInterval":
		return "reversed_interval"
	case "ModelTier":
		return "model_tier"
	case "Temperature":
		return "temperature"
	case "LogLevel":
		return "log_level"
	case "LogFormat":
		return "log_format"
	default:
		return field
	}
}
