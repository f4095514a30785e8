package config

import (
	"fmt"
	"slices"
	"strings"

	"github.com/caarlos0/env/v8"
)

const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"

	// DefaultFilePath is where the ledger lives when nothing is configured.
	DefaultFilePath = "expenses.txt"
)

var (
	validBackends   = []string{BackendFile, BackendSQLite}
	validLogLevels  = []string{"debug", "info", "warn", "warning", "error"}
	validLogFormats = []string{"text", "json"}
)

// Config is read from the environment. Every field has a default, so an
// empty environment yields the plain flat-file ledger.
type Config struct {
	// Storage
	Backend      string `env:"LEDGER_BACKEND" envDefault:"file"`
	FilePath     string `env:"LEDGER_FILE" envDefault:"expenses.txt"`
	SQLiteDBPath string `env:"LEDGER_SQLITE_PATH" envDefault:"./data/ledger.db"`

	// Logging
	LogLevel  string `env:"LOG_LEVEL" envDefault:"warn"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"text"`
}

func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}
	cfg.Backend = strings.ToLower(strings.TrimSpace(cfg.Backend))
	return cfg, nil
}

// Validate validates the configuration and returns an error if invalid.
// It only inspects values; directories are created by the backend.
func (c *Config) Validate() error {
	var errors []string

	if !slices.Contains(validBackends, c.Backend) {
		errors = append(errors, fmt.Sprintf("invalid backend '%s': must be one of %v", c.Backend, validBackends))
	}

	if c.Backend == BackendFile && strings.TrimSpace(c.FilePath) == "" {
		errors = append(errors, "ledger file path cannot be empty when using file backend")
	}

	if c.Backend == BackendSQLite && strings.TrimSpace(c.SQLiteDBPath) == "" {
		errors = append(errors, "SQLite database path cannot be empty when using sqlite backend")
	}

	if !slices.Contains(validLogLevels, strings.ToLower(c.LogLevel)) {
		errors = append(errors, fmt.Sprintf("invalid log level '%s': must be one of %v", c.LogLevel, validLogLevels))
	}
	if !slices.Contains(validLogFormats, strings.ToLower(c.LogFormat)) {
		errors = append(errors, fmt.Sprintf("invalid log format '%s': must be one of %v", c.LogFormat, validLogFormats))
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}

	return nil
}

// JSONLogs reports whether logs should be emitted as JSON.
func (c *Config) JSONLogs() bool {
	return strings.EqualFold(c.LogFormat, "json")
}
