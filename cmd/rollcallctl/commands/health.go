package commands

import (
	"github.com/spf13/cobra"
)

// Health command
var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check the rollcalld daemon",
	Long: `Show the health, version, uptime and batching counters of the
rollcalld daemon at --api.`,
	Example: `  # Check the local daemon
  rollcallctl health

  # Keep refreshing
  rollcallctl health --watch`,
	Args: cobra.NoArgs,
	// RunE will be set by the main package that imports this
}

// GetHealthCommand returns the health command for handler assignment
func GetHealthCommand() *cobra.Command {
	return healthCmd
}

// SetupHealthFlags configures flags for the health command
func SetupHealthFlags(cmd *cobra.Command, watchPtr *bool) {
	cmd.Flags().BoolVarP(watchPtr, "watch", "w", false,
		"Watch for changes and continuously update the display")
}
