package commands

import (
	"github.com/concave-dev/rollcall/cmd/rollcallctl/config"
	"github.com/spf13/cobra"
)

// Mark command
var markCmd = &cobra.Command{
	Use:   "mark",
	Short: "Mark attendance for a list of users",
	Long: `Mark attendance at one event for every user in a JSON file.

The users file is an array of {"identifier", "sessionToken"} objects. Users
without a session token are reported as MISSING_TOKEN and never sent.

With at least --threshold users and a reachable daemon, the whole request is
sent to rollcalld in one call. Otherwise, or if that call fails, users are
submitted directly to the portal with at most --concurrency calls in flight.
Results are always printed in file order.`,
	Example: `  # Mark attendance
  rollcallctl mark --event=EVT-2024-CS101 --users=users.json --upstream=https://portal.example.edu

  # Local queue only, gentler pacing
  rollcallctl mark --event=EVT-2024-CS101 --users=users.json --no-batch --concurrency=2 --wave-delay=1s

  # JSON report without progress lines
  rollcallctl -o json mark --event=EVT-2024-CS101 --users=users.json --quiet`,
	Args: cobra.NoArgs,
	// RunE will be set by the main package that imports this
}

// GetMarkCommand returns the mark command for handler assignment
func GetMarkCommand() *cobra.Command {
	return markCmd
}

// SetupMarkFlags configures flags for the mark command
func SetupMarkFlags(cmd *cobra.Command) {
	config.ResetMark()

	cmd.Flags().StringVar(&config.Mark.EventID, "event", "", "Event identifier decoded from the QR code")
	cmd.Flags().StringVar(&config.Mark.UsersFile, "users", "", "JSON file with users and session tokens")
	cmd.Flags().BoolVar(&config.Mark.NoBatch, "no-batch", false, "Do not use the rollcalld batch endpoint")
	cmd.MarkFlagRequired("event")
	cmd.MarkFlagRequired("users")

	cmd.Flags().StringVar(&config.Mark.UpstreamURL, "upstream", config.Mark.UpstreamURL,
		"Portal base URL for local submissions (or ROLLCALL_UPSTREAM_URL)")
	cmd.Flags().StringVar(&config.Mark.SessionCookie, "session-cookie", config.Mark.SessionCookie,
		"Name of the cookie carrying each user's session token")
	cmd.Flags().IntVar(&config.Mark.Concurrency, "concurrency", config.Mark.Concurrency,
		"Maximum portal calls in flight (1-64)")
	cmd.Flags().DurationVar(&config.Mark.WaveDelay, "wave-delay", config.Mark.WaveDelay,
		"Delay between consecutive releases on the same worker")
	cmd.Flags().DurationVar(&config.Mark.CallTimeout, "call-timeout", config.Mark.CallTimeout,
		"Timeout for a single portal call")
	cmd.Flags().IntVar(&config.Mark.Threshold, "threshold", config.Mark.Threshold,
		"Minimum number of users sent to the daemon as one batch")
	cmd.Flags().IntVar(&config.Mark.MaxAttempts, "max-attempts", config.Mark.MaxAttempts,
		"Attempts per user for network failures and timeouts (1-10)")
	cmd.Flags().DurationVar(&config.Mark.RetryBaseDelay, "retry-base-delay", config.Mark.RetryBaseDelay,
		"First retry backoff; later retries double it")
	cmd.Flags().BoolVarP(&config.Mark.Quiet, "quiet", "q", false, "Do not print per-user progress")
}
