// Package config provides configuration management for the rollcallctl CLI.
package config

import (
	"time"

	configDefaults "github.com/concave-dev/rollcall/internal/config"
	"github.com/concave-dev/rollcall/internal/version"
)

const (
	DefaultAPIAddr = "127.0.0.1:8008" // Default rollcalld address (routable)
)

// Version returns the current rollcallctl CLI version from the centralized version package
var Version = version.RollcallctlVersion

// Global holds the global CLI configuration
var Global struct {
	APIAddr  string // Address of the rollcalld API server
	LogLevel string // Log level for CLI operations
	Timeout  int    // Daemon health timeout in seconds, floor of batch deadlines
	Verbose  bool   // Show verbose output
	Output   string // Output format: table, json
}

// Mark holds the mark command configuration
var Mark struct {
	EventID   string // Event to mark attendance for
	UsersFile string // JSON file of [{identifier, sessionToken}]
	NoBatch   bool   // Skip the daemon and use the local queue only

	UpstreamURL    string        // Portal base URL for the local queue path
	SessionCookie  string        // Cookie name carrying the session token
	Concurrency    int           // Local concurrency ceiling
	WaveDelay      time.Duration // Local delay between releases
	CallTimeout    time.Duration // Per-call portal timeout
	Threshold      int           // Users at which the daemon is preferred
	MaxAttempts    int           // Attempts per user for transient failures
	RetryBaseDelay time.Duration // First retry backoff step
	Quiet          bool          // Suppress per-user progress lines
}

// Health holds the health command configuration
var Health struct {
	Watch bool // Refresh the health view until interrupted
}

// ResetMark restores the mark configuration to built-in defaults.
func ResetMark() {
	Mark.EventID = ""
	Mark.UsersFile = ""
	Mark.NoBatch = false
	Mark.UpstreamURL = ""
	Mark.SessionCookie = configDefaults.DefaultSessionCookie
	Mark.Concurrency = configDefaults.DefaultConcurrency
	Mark.WaveDelay = configDefaults.DefaultWaveDelay
	Mark.CallTimeout = configDefaults.DefaultCallTimeout
	Mark.Threshold = configDefaults.DefaultBatchThreshold
	Mark.MaxAttempts = configDefaults.DefaultMaxAttempts
	Mark.RetryBaseDelay = configDefaults.DefaultRetryBaseDelay
	Mark.Quiet = false
}
