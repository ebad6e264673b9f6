package handlers

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/concave-dev/rollcall/cmd/rollcallctl/client"
	"github.com/concave-dev/rollcall/cmd/rollcallctl/config"
	"github.com/concave-dev/rollcall/cmd/rollcallctl/display"
	"github.com/concave-dev/rollcall/cmd/rollcallctl/utils"
	"github.com/concave-dev/rollcall/internal/attendance"
	"github.com/concave-dev/rollcall/internal/batching"
	configDefaults "github.com/concave-dev/rollcall/internal/config"
	"github.com/concave-dev/rollcall/internal/logging"
	"github.com/concave-dev/rollcall/internal/portal"
	"github.com/concave-dev/rollcall/internal/strategy"
	"github.com/concave-dev/rollcall/internal/telemetry"
	"github.com/spf13/cobra"
)

// HandleMark handles the mark command: load users, pick a strategy, submit
// and print the report. The command fails when any user was not marked.
func HandleMark(cmd *cobra.Command, args []string) error {
	utils.SetupLogging()

	env, err := configDefaults.ParseEnv()
	if err != nil {
		return err
	}
	config.ApplyMarkEnv(env, cmd.Flags().Changed)
	if err := config.ValidateMarkFlags(); err != nil {
		return err
	}

	entries, err := LoadUsers(config.Mark.UsersFile)
	if err != nil {
		return err
	}
	users, tokens := splitUsers(entries)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := telemetry.Setup(ctx, "rollcallctl", config.Version, env)
	if err != nil {
		logging.Warn("Tracing disabled: %v", err)
	}
	defer func() {
		if shutdownTracing != nil {
			_ = shutdownTracing(context.WithoutCancel(ctx))
		}
	}()

	selector, err := buildSelector()
	if err != nil {
		return err
	}

	var sink attendance.ProgressSink
	if !config.Mark.Quiet {
		sink = attendance.ProgressFunc(display.DisplayProgress)
	}

	logging.Info("Marking %d users for event %s", len(users), config.Mark.EventID)
	report, err := selector.Process(ctx, users, config.Mark.EventID, tokens, sink)
	if report != nil {
		display.DisplayReport(report)
	}
	if err != nil {
		return fmt.Errorf("mark failed: %w", err)
	}

	if report.Failed > 0 {
		return fmt.Errorf("%d of %d users were not marked", report.Failed, report.Total)
	}
	logging.Success("Marked %d users for event %s", report.Successful, config.Mark.EventID)
	return nil
}

// buildSelector assembles the local queue (portal client, retries, batcher)
// and, unless --no-batch is set, the daemon batch endpoint.
func buildSelector() (*strategy.Selector, error) {
	portalClient, err := portal.NewClient(portal.Config{
		BaseURL:       config.Mark.UpstreamURL,
		SessionCookie: config.Mark.SessionCookie,
		CallTimeout:   config.Mark.CallTimeout,
		UserAgent:     "rollcallctl/" + config.Version,
	})
	if err != nil {
		return nil, err
	}
	submitter := attendance.NewRetrySubmitter(portalClient, config.Mark.MaxAttempts, config.Mark.RetryBaseDelay)

	batchConfig := &batching.Config{Concurrency: config.Mark.Concurrency}
	batchConfig.SetWaveDelay(config.Mark.WaveDelay)
	if err := batchConfig.Validate(); err != nil {
		return nil, err
	}

	opts := []strategy.Option{
		strategy.WithThreshold(config.Mark.Threshold),
		strategy.WithTransitionHook(func(runID string, from, to strategy.State) {
			if to == strategy.StateFallback {
				display.DisplayNotice("rollcalld batch call failed, continuing with the local queue")
			}
		}),
	}
	if !config.Mark.NoBatch {
		opts = append(opts, strategy.WithBatchEndpoint(client.CreateAPIClient()))
	}

	return strategy.NewSelector(batching.NewBatcher(submitter, batchConfig), opts...), nil
}
