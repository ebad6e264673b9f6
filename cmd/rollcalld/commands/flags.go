// Package commands contains Cobra CLI command definitions for rollcalld.
package commands

import (
	"github.com/concave-dev/rollcall/cmd/rollcalld/config"
	configDefaults "github.com/concave-dev/rollcall/internal/config"
	"github.com/spf13/cobra"
)

// SetupFlags configures all command line flags for the daemon
func SetupFlags(cmd *cobra.Command) {
	// API flags
	cmd.Flags().StringVar(&config.Global.APIAddr, "api", config.DefaultAPI,
		"Address and port for the HTTP API server (e.g., "+config.DefaultAPI+")")

	// Upstream flags
	cmd.Flags().StringVar(&config.Global.UpstreamURL, "upstream", "",
		"Base URL of the attendance portal (e.g., https://portal.example.edu)")
	cmd.Flags().StringVar(&config.Global.SessionCookie, "session-cookie", configDefaults.DefaultSessionCookie,
		"Name of the cookie carrying each user's session token")
	cmd.Flags().DurationVar(&config.Global.CallTimeout, "call-timeout", configDefaults.DefaultCallTimeout,
		"Timeout for a single portal call")

	// Pacing flags
	cmd.Flags().IntVar(&config.Global.Concurrency, "concurrency", configDefaults.DefaultServerConcurrency,
		"Maximum portal calls in flight for one batch (1-64)")
	cmd.Flags().DurationVar(&config.Global.WaveDelay, "wave-delay", configDefaults.DefaultServerWaveDelay,
		"Delay between consecutive releases on the same worker")
	cmd.Flags().IntVar(&config.Global.MaxAttempts, "max-attempts", configDefaults.DefaultMaxAttempts,
		"Attempts per user for network failures and timeouts (1-10)")
	cmd.Flags().DurationVar(&config.Global.RetryBaseDelay, "retry-base-delay", configDefaults.DefaultRetryBaseDelay,
		"First retry backoff; later retries double it")
	cmd.Flags().IntVar(&config.Global.MaxBatchUsers, "max-batch-users", configDefaults.DefaultMaxBatchUsers,
		"Maximum number of users accepted in one batch request")

	// Operational flags
	cmd.Flags().StringVar(&config.Global.LogLevel, "log-level", config.DefaultLogLevel,
		"Log level: DEBUG, INFO, WARN, ERROR")
	cmd.Flags().StringVar(&config.Global.LogFile, "log-file", "",
		"Write logs to this file instead of stdout")
}

// CheckExplicitFlags checks if flags were explicitly set by the user
func CheckExplicitFlags(cmd *cobra.Command) {
	config.Global.SetExplicitlySet(config.APIAddrField, cmd.Flags().Changed("api"))
	config.Global.SetExplicitlySet(config.UpstreamField, cmd.Flags().Changed("upstream"))
	config.Global.SetExplicitlySet(config.SessionCookieField, cmd.Flags().Changed("session-cookie"))
	config.Global.SetExplicitlySet(config.CallTimeoutField, cmd.Flags().Changed("call-timeout"))
	config.Global.SetExplicitlySet(config.ConcurrencyField, cmd.Flags().Changed("concurrency"))
	config.Global.SetExplicitlySet(config.WaveDelayField, cmd.Flags().Changed("wave-delay"))
	config.Global.SetExplicitlySet(config.MaxAttemptsField, cmd.Flags().Changed("max-attempts"))
	config.Global.SetExplicitlySet(config.RetryBaseDelayField, cmd.Flags().Changed("retry-base-delay"))
	config.Global.SetExplicitlySet(config.LogLevelField, cmd.Flags().Changed("log-level"))
	config.Global.SetExplicitlySet(config.LogFileField, cmd.Flags().Changed("log-file"))
}
