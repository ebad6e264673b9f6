// Package config provides default configuration values shared across Rollcall
// components (pipeline, HTTP API, CLI) and the environment overlay that both
// binaries read before applying their flags.
package config

import "time"

const (
	// DefaultBindAddr is the default bind address for the rollcalld API.
	DefaultBindAddr = "0.0.0.0"

	// DefaultAPIPort is the default port of the rollcalld API.
	DefaultAPIPort = 8008

	// DefaultLogLevel is the default log level for all components
	DefaultLogLevel = "INFO"

	// DefaultConcurrency is the client-side concurrency ceiling C.
	DefaultConcurrency = 3

	// DefaultWaveDelay is the client-side delay D between releases.
	DefaultWaveDelay = 300 * time.Millisecond

	// DefaultServerConcurrency and DefaultServerWaveDelay pace the
	// server-side batch endpoint. They are tuned separately from the client
	// queue; the upstream tolerates slightly slower server waves better.
	DefaultServerConcurrency = 3
	DefaultServerWaveDelay   = 500 * time.Millisecond

	// DefaultCallTimeout is the per-call timeout T for one upstream submission.
	DefaultCallTimeout = 8 * time.Second

	// DefaultBatchThreshold is the user count at which the batch endpoint is preferred.
	DefaultBatchThreshold = 5

	// DefaultMaxAttempts bounds retries of transient submission failures.
	DefaultMaxAttempts = 3

	// DefaultRetryBaseDelay is the first backoff step; later steps double it.
	DefaultRetryBaseDelay = time.Second

	// DefaultSessionCookie is the cookie name carrying the portal session token.
	DefaultSessionCookie = "session"

	// DefaultMaxBatchUsers caps the users accepted in one batch request.
	DefaultMaxBatchUsers = 500
)
