package config

import (
	"fmt"
	"strings"

	"github.com/LeJamon/goAMMd/internal/storage/compression"
)

// ValidateConfig performs validation on the complete configuration
func ValidateConfig(config *Config) error {
	if err := config.Ledger.Validate(); err != nil {
		return fmt.Errorf("ledger validation failed: %w", err)
	}
	if err := config.History.Validate(); err != nil {
		return fmt.Errorf("history validation failed: %w", err)
	}
	if config.Engine.Workers < 0 {
		return fmt.Errorf("engine workers must be non-negative, got %d", config.Engine.Workers)
	}
	if err := config.Log.Validate(); err != nil {
		return fmt.Errorf("log validation failed: %w", err)
	}
	return nil
}

// Validate performs validation on the ledger configuration
func (l *LedgerConfig) Validate() error {
	switch l.Backend {
	case BackendMemory:
	case BackendPebble, BackendLevelDB:
		if l.Path == "" {
			return fmt.Errorf("path is required for the %s backend", l.Backend)
		}
	default:
		return fmt.Errorf("invalid backend: %q (valid options: memory, pebble, leveldb)", l.Backend)
	}

	if l.CacheSize < 0 {
		return fmt.Errorf("cache_size must be non-negative, got %d", l.CacheSize)
	}
	if !compression.IsAvailable(l.Compression) {
		return fmt.Errorf("invalid compression: %q (valid options: %s)", l.Compression, strings.Join(compression.Available(), ", "))
	}
	return nil
}

// Validate performs validation on the history configuration
func (h *HistoryConfig) Validate() error {
	if !h.Enabled {
		return nil
	}
	switch h.Driver {
	case "sqlite", "postgres":
	default:
		return fmt.Errorf("invalid driver: %q (valid options: sqlite, postgres)", h.Driver)
	}
	if h.DSN == "" {
		return fmt.Errorf("dsn is required")
	}
	if h.Timeout < 0 {
		return fmt.Errorf("timeout must be non-negative, got %s", h.Timeout)
	}
	return nil
}

// Validate performs validation on the log configuration
func (l *LogConfig) Validate() error {
	validLevels := []string{"debug", "info", "warn", "error"}
	if !contains(validLevels, strings.ToLower(l.Level)) {
		return fmt.Errorf("invalid level: %q (valid options: %s)", l.Level, strings.Join(validLevels, ", "))
	}
	if l.Format != "json" && l.Format != "console" {
		return fmt.Errorf("invalid format: %q (valid options: json, console)", l.Format)
	}
	return nil
}

func contains(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
