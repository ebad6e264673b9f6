// Package commands provides the CLI command structure for the Rollcall daemon.
//
// rollcalld is a single root command: it validates configuration, builds the
// submission pipeline against the attendance portal and serves the batch
// endpoint that rollcallctl uses for large requests.
//
// Configuration precedence is flags, then ROLLCALL_* environment variables,
// then built-in defaults.
package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/concave-dev/rollcall/cmd/rollcalld/config"
	"github.com/concave-dev/rollcall/cmd/rollcalld/daemon"
	"github.com/concave-dev/rollcall/cmd/rollcalld/utils"
	configDefaults "github.com/concave-dev/rollcall/internal/config"
	"github.com/concave-dev/rollcall/internal/logging"
	"github.com/concave-dev/rollcall/internal/version"
	"github.com/spf13/cobra"
)

// Global variable to track log file handle for cleanup
var logFileHandle *os.File

// CleanupLogFile closes the log file handle if it exists
func CleanupLogFile() {
	if logFileHandle != nil {
		if err := logFileHandle.Close(); err != nil {
			// Logging may point at the file being closed
			fmt.Fprintf(os.Stderr, "Warning: failed to close log file: %v\n", err)
		}
		logFileHandle = nil
	}
}

// Root command for the Rollcall daemon
var RootCmd = &cobra.Command{
	Use:   "rollcalld",
	Short: "Batch attendance submission daemon",
	Long: `Rollcall daemon (rollcalld) accepts whole attendance batches from rollcallctl
and submits every user to the attendance portal with bounded concurrency,
paced release and retries for transient failures.

One HTTP request from the CLI becomes a paced series of portal calls made from
this host; the CLI gets one result per user, in request order.`,
	Version:      version.RollcalldVersion,
	SilenceUsage: true, // Don't show usage on errors
	Example: `  # Serve the batch endpoint against a portal
  rollcalld --upstream=https://portal.example.edu

  # Listen on all interfaces with slower server-side waves
  rollcalld --api=0.0.0.0:8008 --upstream=https://portal.example.edu --wave-delay=800ms

  # Debug logging to a file
  rollcalld --upstream=https://portal.example.edu --log-level=DEBUG --log-file=/var/log/rollcalld.log`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		utils.DisplayLogo(version.RollcalldVersion)
	},
	PreRunE: func(cmd *cobra.Command, args []string) error {
		CheckExplicitFlags(cmd)

		if config.Global.IsExplicitlySet(config.LogFileField) && config.Global.LogFile != "" {
			logDir := filepath.Dir(config.Global.LogFile)
			if err := os.MkdirAll(logDir, 0755); err != nil {
				return fmt.Errorf("failed to create log directory %s: %w", logDir, err)
			}

			var err error
			logFileHandle, err = os.OpenFile(config.Global.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
			if err != nil {
				return fmt.Errorf("failed to open log file %s: %w", config.Global.LogFile, err)
			}

			logging.SetOutput(logFileHandle)
		}

		// Set the level before the env overlay so ERROR really is quiet, then
		// again afterwards to pick up ROLLCALL_LOG_LEVEL
		logging.SetLevel(config.Global.LogLevel)
		env, err := configDefaults.ParseEnv()
		if err != nil {
			CleanupLogFile()
			return err
		}
		config.InitializeConfig(env)
		logging.SetLevel(config.Global.LogLevel)

		if err := config.ValidateConfig(); err != nil {
			CleanupLogFile()
			return err
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		defer CleanupLogFile()
		return daemon.Run()
	},
}

// SetupCommands initializes all commands and their relationships
func SetupCommands() {
	SetupFlags(RootCmd)
}
