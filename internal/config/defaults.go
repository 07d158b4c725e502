package config

import "github.com/spf13/viper"

// DefaultConfigFile is looked up in the working directory when no path is given.
const DefaultConfigFile = "ammd.toml"

// setDefaults sets all default values
func setDefaults(v *viper.Viper) {
	// Ledger defaults
	v.SetDefault("ledger.backend", BackendPebble)
	v.SetDefault("ledger.path", "data/ledger")
	v.SetDefault("ledger.cache_size", 4096)
	v.SetDefault("ledger.compression", "lz4")

	// History defaults
	v.SetDefault("history.enabled", true)
	v.SetDefault("history.driver", "sqlite")
	v.SetDefault("history.dsn", "file:data/history.db?_pragma=journal_mode(WAL)")
	v.SetDefault("history.timeout", "10s")

	// Engine defaults
	v.SetDefault("engine.workers", 0) // 0 means auto-detect

	// Log defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
}
