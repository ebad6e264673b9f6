// Package api provides the rollcalld HTTP API server.
//
// This file defines configuration structures and validation logic for the REST
// API server that accepts whole attendance batches from rollcallctl and runs
// them against the portal through the server-side Batcher. The configuration
// covers network binding and the submission pipeline the server drives.
//
// Server-side pacing is configured independently of the CLI's local queue so
// that the daemon can be tuned to what the portal tolerates from a single
// source address.
package api

import (
	"fmt"

	"github.com/concave-dev/rollcall/internal/attendance"
	"github.com/concave-dev/rollcall/internal/batching"
	"github.com/concave-dev/rollcall/internal/config"
	"github.com/concave-dev/rollcall/internal/validate"
	"github.com/concave-dev/rollcall/internal/version"
)

// Config holds all configuration parameters required for running the HTTP API
// server.
//
// The Submitter is the full per-user pipeline the batch endpoint drives,
// normally a RetrySubmitter wrapped around the portal client. It is injected
// so tests can run the server against a scripted submitter.
//
// TODO: Add support for TLS/HTTPS configuration (cert/key files)
type Config struct {
	BindAddr       string               // HTTP server bind address (e.g., "0.0.0.0")
	BindPort       int                  // HTTP server bind port
	BatchingConfig *batching.Config     // Server-side pacing for batch requests
	Submitter      attendance.Submitter // Per-user submission pipeline
	Version        string               // Reported by the health endpoint
	MaxBatchUsers  int                  // Upper bound on users in one batch request
}

// DefaultConfig creates a new Config instance with sensible default values
// for local development and testing environments. Submitter must be set by
// the caller.
func DefaultConfig() *Config {
	return &Config{
		// Default to loopback for safer local development. Daemon can override.
		BindAddr:       "127.0.0.1",
		BindPort:       config.DefaultAPIPort,
		BatchingConfig: batching.DefaultServerConfig(),
		Submitter:      nil, // Must be set by caller
		Version:        version.RollcalldVersion,
		MaxBatchUsers:  config.DefaultMaxBatchUsers,
	}
}

// Validate checks that the server can start and has a pipeline to drive.
func (c *Config) Validate() error {
	if err := validate.ValidateRequiredString(c.BindAddr, "bind address"); err != nil {
		return err
	}
	if err := validate.ValidatePortRange(c.BindPort); err != nil {
		return fmt.Errorf("bind port validation failed: %w", err)
	}
	if c.BatchingConfig == nil {
		return fmt.Errorf("batching config cannot be nil")
	}
	if err := c.BatchingConfig.Validate(); err != nil {
		return fmt.Errorf("batching config validation failed: %w", err)
	}
	if c.Submitter == nil {
		return fmt.Errorf("submitter cannot be nil")
	}
	if c.MaxBatchUsers < 1 {
		return fmt.Errorf("max batch users must be positive, got %d", c.MaxBatchUsers)
	}

	return nil
}
