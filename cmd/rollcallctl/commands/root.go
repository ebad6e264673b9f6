// Package commands provides the command tree for rollcallctl.
//
//   - mark: submit attendance for a list of users
//   - health: check the rollcalld daemon
//
// Commands are declared here without RunE; main wires the handlers.
package commands

import (
	"github.com/spf13/cobra"
)

// Root command
var RootCmd = &cobra.Command{
	Use:   "rollcallctl",
	Short: "CLI for batch attendance submission",
	Long: `Rollcall CLI (rollcallctl) marks attendance for many users at once.

Large requests are sent to a rollcalld daemon in a single call; small ones,
or any request the daemon cannot take, are submitted directly to the portal
through a local queue with bounded concurrency and paced release.`,
	SilenceUsage: true,
	Example: `  # Mark attendance for everyone in users.json
  rollcallctl mark --event=EVT-2024-CS101 --users=users.json --upstream=https://portal.example.edu

  # Skip the daemon and submit locally
  rollcallctl mark --event=EVT-2024-CS101 --users=users.json --no-batch

  # Check the daemon
  rollcallctl --api=192.168.1.100:8008 health

  # Output in JSON format
  rollcallctl -o json mark --event=EVT-2024-CS101 --users=users.json`,
}

// SetupCommands initializes all commands and their relationships
func SetupCommands() {
	RootCmd.AddCommand(markCmd)
	RootCmd.AddCommand(healthCmd)
}

// SetupGlobalFlags configures all global persistent flags
func SetupGlobalFlags(rootCmd *cobra.Command, apiAddrPtr *string, logLevelPtr *string,
	timeoutPtr *int, verbosePtr *bool, outputPtr *string, defaultAPIAddr string) {
	rootCmd.PersistentFlags().StringVar(apiAddrPtr, "api", defaultAPIAddr,
		"rollcalld API address")
	rootCmd.PersistentFlags().StringVar(logLevelPtr, "log-level", "ERROR",
		"Log level: DEBUG, INFO, WARN, ERROR")
	rootCmd.PersistentFlags().IntVar(timeoutPtr, "timeout", 10,
		"Daemon health timeout in seconds; batch calls add a deadline scaled to user count and daemon pacing")
	rootCmd.PersistentFlags().BoolVarP(verbosePtr, "verbose", "v", false,
		"Show verbose output")
	rootCmd.PersistentFlags().StringVarP(outputPtr, "output", "o", "table",
		"Output format: table, json")
}
