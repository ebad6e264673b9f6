// Package config provides configuration management for the rollcalld daemon.
//
// Values come from three layers, highest precedence first:
//
//   - Command line flags explicitly set by the operator
//   - ROLLCALL_* environment variables
//   - Built-in defaults from internal/config
//
// The daemon tracks which flags were explicitly set so that environment
// overrides never clobber a value the operator typed on the command line.
package config

import (
	"time"

	configDefaults "github.com/concave-dev/rollcall/internal/config"
)

// ConfigField represents a configuration field that can be explicitly set
type ConfigField int

const (
	// Configuration field identifiers
	APIAddrField ConfigField = iota
	UpstreamField
	SessionCookieField
	ConcurrencyField
	WaveDelayField
	CallTimeoutField
	MaxAttemptsField
	RetryBaseDelayField
	LogLevelField
	LogFileField
)

const (
	DefaultAPI      = configDefaults.DefaultBindAddr + ":8008" // Default API address
	DefaultLogLevel = configDefaults.DefaultLogLevel           // Default log level
)

// Config holds all daemon configuration values
type Config struct {
	APIAddr        string        // HTTP API bind address (host part after validation)
	APIPort        int           // HTTP API port (derived from APIAddr)
	UpstreamURL    string        // Portal base URL
	SessionCookie  string        // Cookie name carrying the session token
	Concurrency    int           // Server-side concurrency ceiling
	WaveDelay      time.Duration // Server-side delay between releases
	CallTimeout    time.Duration // Per-call upstream timeout
	MaxAttempts    int           // Attempts per user for transient failures
	RetryBaseDelay time.Duration // First retry backoff step
	MaxBatchUsers  int           // Upper bound on users per batch request
	LogLevel       string        // Log level: DEBUG, INFO, WARN, ERROR
	LogFile        string        // Optional log file path

	OTelEndpoint string // OTLP/HTTP endpoint; empty disables tracing
	OTelEnabled  bool   // Master switch for tracing

	// Flags to track if values were explicitly set by user
	explicitlySet map[ConfigField]bool
}

// Global configuration instance
var Global Config

// SetExplicitlySet marks a configuration field as explicitly set by the user.
func (c *Config) SetExplicitlySet(field ConfigField, value bool) {
	if c.explicitlySet == nil {
		c.explicitlySet = make(map[ConfigField]bool)
	}
	c.explicitlySet[field] = value
}

// IsExplicitlySet returns whether a configuration field was explicitly set by the user.
func (c *Config) IsExplicitlySet(field ConfigField) bool {
	return c.explicitlySet[field]
}
