package config

import "time"

// Config represents the complete ammd configuration
type Config struct {
	Ledger  LedgerConfig  `toml:"ledger" mapstructure:"ledger"`
	History HistoryConfig `toml:"history" mapstructure:"history"`
	Engine  EngineConfig  `toml:"engine" mapstructure:"engine"`
	Log     LogConfig     `toml:"log" mapstructure:"log"`

	// Path of the file the configuration was read from, if any
	configPath string
}

// LedgerConfig represents the [ledger] section
// Selects where ledger records are kept
type LedgerConfig struct {
	// Backend is one of memory, pebble or leveldb
	Backend string `toml:"backend" mapstructure:"backend"`
	Path    string `toml:"path" mapstructure:"path"`
	// CacheSize is the number of decoded records kept in memory
	CacheSize   int    `toml:"cache_size" mapstructure:"cache_size"`
	Compression string `toml:"compression" mapstructure:"compression"`
}

// HistoryConfig represents the [history] section
type HistoryConfig struct {
	Enabled bool   `toml:"enabled" mapstructure:"enabled"`
	Driver  string `toml:"driver" mapstructure:"driver"`
	DSN     string `toml:"dsn" mapstructure:"dsn"`
	// Timeout bounds opening the history database
	Timeout time.Duration `toml:"timeout" mapstructure:"timeout"`
}

// EngineConfig represents the [engine] section
type EngineConfig struct {
	// Workers bounds concurrent calls in a batch. 0 means one per CPU.
	Workers int `toml:"workers" mapstructure:"workers"`
}

// LogConfig represents the [log] section
type LogConfig struct {
	Level string `toml:"level" mapstructure:"level"`
	// Format is json or console
	Format string `toml:"format" mapstructure:"format"`
}

// Ledger backends
const (
	BackendMemory  = "memory"
	BackendPebble  = "pebble"
	BackendLevelDB = "leveldb"
)

// GetConfigPath returns the path of the loaded file, or "" when the
// configuration came from defaults and environment only.
func (c *Config) GetConfigPath() string {
	return c.configPath
}

// IsPersistent reports whether ledger records survive a restart.
func (c *Config) IsPersistent() bool {
	return c.Ledger.Backend != BackendMemory
}
