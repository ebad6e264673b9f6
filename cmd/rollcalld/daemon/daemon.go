// Package daemon runs the rollcalld lifecycle: pipeline construction, API
// startup and graceful shutdown.
package daemon

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/concave-dev/rollcall/cmd/rollcalld/config"
	"github.com/concave-dev/rollcall/internal/api"
	"github.com/concave-dev/rollcall/internal/attendance"
	"github.com/concave-dev/rollcall/internal/batching"
	configDefaults "github.com/concave-dev/rollcall/internal/config"
	"github.com/concave-dev/rollcall/internal/logging"
	"github.com/concave-dev/rollcall/internal/netutil"
	"github.com/concave-dev/rollcall/internal/portal"
	"github.com/concave-dev/rollcall/internal/telemetry"
	"github.com/concave-dev/rollcall/internal/version"
)

// shutdownTimeout bounds how long in-flight batch requests may take to drain.
const shutdownTimeout = 5 * time.Second

// buildSubmitter builds the per-user pipeline: portal client wrapped in retries.
func buildSubmitter() (attendance.Submitter, error) {
	client, err := portal.NewClient(portal.Config{
		BaseURL:       config.Global.UpstreamURL,
		SessionCookie: config.Global.SessionCookie,
		CallTimeout:   config.Global.CallTimeout,
		UserAgent:     "rollcalld/" + version.RollcalldVersion,
	})
	if err != nil {
		return nil, err
	}
	return attendance.NewRetrySubmitter(client, config.Global.MaxAttempts, config.Global.RetryBaseDelay), nil
}

// buildAPIConfig converts daemon config to API server config
func buildAPIConfig(submitter attendance.Submitter) *api.Config {
	apiConfig := api.DefaultConfig()

	apiConfig.BindAddr = config.Global.APIAddr
	apiConfig.BindPort = config.Global.APIPort
	apiConfig.Submitter = submitter
	apiConfig.MaxBatchUsers = config.Global.MaxBatchUsers
	apiConfig.BatchingConfig = &batching.Config{Concurrency: config.Global.Concurrency}
	apiConfig.BatchingConfig.SetWaveDelay(config.Global.WaveDelay)

	return apiConfig
}

// routeStandardLog sends output written to the standard library logger
// through the daemon's logger. net/http server errors and the OpenTelemetry
// fallback error handler both write there.
func routeStandardLog() {
	logging.RedirectStandardLog(logging.NewLevelWriter("WARN", "stdlog"))
}

// Run orchestrates the daemon lifecycle.
//
//  0. Standard library log output is routed through the daemon's logger.
//  1. Tracing is set up when an OTLP endpoint is configured.
//  2. The API port is bound before anything else starts, so a port conflict
//     fails fast with a clear message.
//  3. The portal client and retry wrapper are built and handed to the API
//     server, which serves batch requests until SIGINT/SIGTERM.
//  4. Shutdown gives in-flight requests shutdownTimeout to finish, then
//     flushes pending spans.
func Run() error {
	routeStandardLog()
	logging.Info("Starting Rollcall daemon v%s", version.RollcalldVersion)
	logging.Info("Upstream: %s (cookie %q, call timeout %v)",
		config.Global.UpstreamURL, config.Global.SessionCookie, config.Global.CallTimeout)
	logging.Info("Pacing: concurrency %d, wave delay %v, %d attempts",
		config.Global.Concurrency, config.Global.WaveDelay, config.Global.MaxAttempts)

	shutdownTracing, err := telemetry.Setup(context.Background(), "rollcalld", version.RollcalldVersion, configDefaults.Env{
		OTelEndpoint: config.Global.OTelEndpoint,
		OTelEnabled:  config.Global.OTelEnabled,
	})
	if err != nil {
		// Tracing is optional; keep serving without it
		logging.Warn("Tracing disabled: %v", err)
	}

	apiListener, err := netutil.BindTCP(config.Global.APIAddr, config.Global.APIPort)
	if err != nil {
		logging.Error("Failed to bind API port: %v", err)
		if netutil.IsAddressInUseError(err) {
			logging.Error("TIP: Is another rollcalld already running? Use --api to pick a different port")
		}
		return fmt.Errorf("failed to bind API port: %w", err)
	}

	submitter, err := buildSubmitter()
	if err != nil {
		apiListener.Close()
		return fmt.Errorf("failed to create portal client: %w", err)
	}

	apiServer, err := api.NewServerWithListener(buildAPIConfig(submitter), apiListener)
	if err != nil {
		logging.Error("Failed to create API server: %v", err)
		apiListener.Close() // Clean up pre-bound listener on error
		return fmt.Errorf("failed to create API server: %w", err)
	}
	if err := apiServer.Start(); err != nil {
		logging.Error("Failed to start API server: %v", err)
		return fmt.Errorf("failed to start API server: %w", err)
	}

	if config.Global.APIAddr == "127.0.0.1" || config.Global.APIAddr == "localhost" {
		logging.Warn("API server bound to localhost (%s) - only local rollcallctl can reach it", config.Global.APIAddr)
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	logging.Success("Rollcall daemon started successfully")
	logging.Info("API: http://%s", apiServer.Addr())
	logging.Info("Daemon running... Press Ctrl+C to shutdown")

	sig := <-sigCh
	logging.Info("Received signal: %v", sig)
	logging.Info("Initiating graceful shutdown...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := apiServer.Shutdown(shutdownCtx); err != nil {
		logging.Error("Error shutting down API server: %v", err)
	}
	if shutdownTracing != nil {
		if err := shutdownTracing(shutdownCtx); err != nil {
			logging.Error("Error flushing traces: %v", err)
		}
	}

	logging.Success("Rollcall daemon shutdown completed")
	return nil
}
