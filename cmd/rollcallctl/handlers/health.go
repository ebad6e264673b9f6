package handlers

import (
	"context"
	"time"

	"github.com/concave-dev/rollcall/cmd/rollcallctl/client"
	"github.com/concave-dev/rollcall/cmd/rollcallctl/config"
	"github.com/concave-dev/rollcall/cmd/rollcallctl/display"
	"github.com/concave-dev/rollcall/cmd/rollcallctl/utils"
	"github.com/concave-dev/rollcall/internal/logging"
	"github.com/concave-dev/rollcall/internal/netutil"
	"github.com/spf13/cobra"
)

// HandleHealth handles the health command.
func HandleHealth(cmd *cobra.Command, args []string) error {
	utils.SetupLogging()

	apiClient := client.CreateAPIClient()

	fetchAndDisplay := func() error {
		logging.Info("Checking daemon health at %s", config.Global.APIAddr)

		ctx, cancel := context.WithTimeout(context.Background(), time.Duration(config.Global.Timeout)*time.Second)
		defer cancel()

		health, err := apiClient.GetHealth(ctx)
		if err != nil {
			logging.Error("Failed to reach rollcalld: %v", err)
			if netutil.IsConnectionRefusedError(err) {
				logging.Error("TIP: Is rollcalld running? Start it with: rollcalld --upstream=<portal-url>")
			}
			return err
		}

		display.DisplayHealth(health, config.Global.APIAddr)
		return nil
	}

	return utils.RunWithWatch(fetchAndDisplay, config.Health.Watch)
}
