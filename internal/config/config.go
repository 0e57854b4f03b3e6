// Package config provides centralized configuration management for the
// service. It loads configuration from environment variables with sensible
// defaults and validates all settings on startup to fail fast on
// misconfiguration.
package config

import "time"

// Config holds all application configuration.
// All settings can be configured via environment variables.
type Config struct {
	Account AccountConfig
	Store   StoreConfig
	Bulk    BulkConfig
	Refdata RefdataConfig
	Paging  PagingConfig
	Logging LoggingConfig
}

// AccountConfig identifies the exporter account the process operates as.
// Records are partitioned per account in the store.
type AccountConfig struct {
	// ID scopes every record read and write (default: local)
	ID string `env:"ACCOUNT_ID" default:"local"`
}

// StoreConfig selects and configures the record store backend.
type StoreConfig struct {
	// Driver selects the backend: memory, sqlite or postgres (default: memory)
	Driver string `env:"STORE_DRIVER" default:"memory"`

	// DSN is the sqlite file path or the postgres connection URL.
	// Supports both STORE_DSN and DATABASE_URL for compatibility.
	DSN string `env:"STORE_DSN" envAlt:"DATABASE_URL"`

	// Timeout bounds opening the store and its schema setup (default: 30s)
	Timeout time.Duration `env:"STORE_TIMEOUT" default:"30s"`
}

// BulkConfig holds CSV batch processing settings.
type BulkConfig struct {
	// MaxRows is the maximum number of data rows per file (default: 10000)
	MaxRows int `env:"BULK_MAX_ROWS" default:"10000"`

	// Locale is the language for validation messages: en or cy (default: en)
	Locale string `env:"BULK_LOCALE" default:"en"`
}

// RefdataConfig points at the reference-data lists.
type RefdataConfig struct {
	// Dir is a directory of YAML lists overriding the embedded defaults.
	// Empty means use the embedded data.
	Dir string `env:"REFDATA_DIR"`
}

// PagingConfig holds listing defaults.
type PagingConfig struct {
	// PageLimit is the default page size for listings (default: 15)
	PageLimit int `env:"PAGE_LIMIT" default:"15"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: debug, info, warn, error (default: info)
	Level string `env:"LOG_LEVEL" default:"info"`

	// Format is the log format: text or json (default: text)
	Format string `env:"LOG_FORMAT" default:"text"`
}
