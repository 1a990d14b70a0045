// Package config provides configuration loading and validation for the CLI and server.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
)

// Config represents the configuration that can be loaded from a JSON file and
// overridden by environment variables. All fields are optional.
type Config struct {
	// Server
	Port int `json:"port,omitempty" env:"PORT"`

	// Catalogs (empty means the built-in questionnaire)
	Catalog            string `json:"catalog,omitempty" env:"CATALOG_PATH"`                         // Two-axis catalog file (YAML or JSON)
	DimensionalCatalog string `json:"dimensional_catalog,omitempty" env:"DIMENSIONAL_CATALOG_PATH"` // Four-axis catalog file

	// Scoring
	CountUnansweredInMax bool `json:"count_unanswered_in_max,omitempty" env:"COUNT_UNANSWERED_IN_MAX"` // Unanswered questions lower the percentage

	// Persistence
	DatabaseURL       string `json:"database_url,omitempty" env:"DATABASE_URL"`                        // PostgreSQL connection URL
	SpreadsheetID     string `json:"spreadsheet_id,omitempty" env:"SPREADSHEET_ID"`                    // Google Sheets target
	SpreadsheetRange  string `json:"spreadsheet_range,omitempty" env:"SPREADSHEET_RANGE"`              // A1 range rows are appended to
	CredentialsFile   string `json:"credentials_file,omitempty" env:"GOOGLE_APPLICATION_CREDENTIALS"` // Service-account key for Sheets
	LocalFallbackPath string `json:"local_fallback_path,omitempty" env:"LOCAL_FALLBACK_PATH"`          // SQLite file used when the remote sink fails
	RespondentHashKey string `json:"respondent_hash_key,omitempty" env:"RESPONDENT_HASH_KEY"`          // Key for respondent pseudonymisation
	RetryCount        int    `json:"retry_count,omitempty" env:"PERSIST_RETRY_COUNT"`                  // Remote attempts before falling back

	// Logging
	LogLevel string `json:"log_level,omitempty" env:"LOG_LEVEL"`
}

// Defaults returns the values used for anything left unset.
func Defaults() Config {
	return Config{
		Port:              8080,
		SpreadsheetRange:  "Sheet1!A1",
		LocalFallbackPath: filepath.Join("data", "assessments.db"),
		RetryCount:        3,
		LogLevel:          "info",
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

// ApplyEnv overrides fields from the process environment. Unset variables leave
// the field untouched.
func (c *Config) ApplyEnv() error {
	if err := env.Parse(c); err != nil {
		return fmt.Errorf("failed to parse environment: %w", err)
	}
	return nil
}

// ApplyEnvFrom is ApplyEnv with an explicit environment.
func (c *Config) ApplyEnvFrom(environ map[string]string) error {
	if err := env.ParseWithOptions(c, env.Options{Environment: environ}); err != nil {
		return fmt.Errorf("failed to parse environment: %w", err)
	}
	return nil
}

// Resolve builds the effective configuration: file (if any), then environment,
// then defaults, then validation.
func Resolve(path string) (*Config, error) {
	cfg := &Config{}
	if path != "" {
		loaded, err := LoadConfig(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}

	merged := cfg.MergeWithDefaults(Defaults())
	if err := merged.Validate(); err != nil {
		return nil, err
	}
	return &merged, nil
}

var logLevels = map[string]bool{"debug": true, "info": true, "error": true, "fatal": true}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	// Validate mutually exclusive fields
	if c.DatabaseURL != "" && c.SpreadsheetID != "" {
		return fmt.Errorf("config error: 'database_url' and 'spreadsheet_id' are mutually exclusive")
	}

	// Validate numeric ranges
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be between 0 and 65535")
	}
	if c.RetryCount < 0 {
		return fmt.Errorf("config error: 'retry_count' must be non-negative")
	}

	if c.LogLevel != "" && !logLevels[c.LogLevel] {
		return fmt.Errorf("config error: 'log_level' must be one of debug, info, error, fatal")
	}

	// Validate file paths exist (if specified)
	if c.Catalog != "" {
		if _, err := os.Stat(c.Catalog); os.IsNotExist(err) {
			return fmt.Errorf("config error: catalog file not found: %s", c.Catalog)
		}
	}
	if c.DimensionalCatalog != "" {
		if _, err := os.Stat(c.DimensionalCatalog); os.IsNotExist(err) {
			return fmt.Errorf("config error: dimensional catalog file not found: %s", c.DimensionalCatalog)
		}
	}
	if c.CredentialsFile != "" {
		if _, err := os.Stat(c.CredentialsFile); os.IsNotExist(err) {
			return fmt.Errorf("config error: credentials file not found: %s", c.CredentialsFile)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	if result.Catalog == "" {
		result.Catalog = defaults.Catalog
	}
	if result.DimensionalCatalog == "" {
		result.DimensionalCatalog = defaults.DimensionalCatalog
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.SpreadsheetID == "" {
		result.SpreadsheetID = defaults.SpreadsheetID
	}
	if result.SpreadsheetRange == "" {
		result.SpreadsheetRange = defaults.SpreadsheetRange
	}
	if result.CredentialsFile == "" {
		result.CredentialsFile = defaults.CredentialsFile
	}
	if result.LocalFallbackPath == "" {
		result.LocalFallbackPath = defaults.LocalFallbackPath
	}
	if result.RespondentHashKey == "" {
		result.RespondentHashKey = defaults.RespondentHashKey
	}
	if result.LogLevel == "" {
		result.LogLevel = defaults.LogLevel
	}

	// Int fields: use default if zero
	if result.Port == 0 {
		result.Port = defaults.Port
	}
	if result.RetryCount == 0 {
		result.RetryCount = defaults.RetryCount
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags and env should always win for bools)

	return result
}
