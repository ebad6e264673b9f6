// Package config provides configuration management for the rollcallctl CLI.
package config

import (
	"fmt"

	configDefaults "github.com/concave-dev/rollcall/internal/config"
	"github.com/concave-dev/rollcall/internal/logging"
	"github.com/concave-dev/rollcall/internal/validate"
	"github.com/spf13/cobra"
)

// ValidateGlobalFlags validates all global flags before running any command
func ValidateGlobalFlags(cmd *cobra.Command, args []string) error {
	if err := logging.ValidateLogLevel(Global.LogLevel); err != nil {
		return err
	}

	if err := ValidateAPIAddress(); err != nil {
		return err
	}

	if err := ValidateOutputFormat(); err != nil {
		return err
	}

	if Global.Timeout < 1 {
		return fmt.Errorf("timeout must be at least 1 second")
	}

	return nil
}

// ValidateAPIAddress validates the --api flag
func ValidateAPIAddress() error {
	netAddr, err := validate.ParseBindAddress(Global.APIAddr)
	if err != nil {
		logging.Error("Invalid API address '%s': %v", Global.APIAddr, err)
		return fmt.Errorf("invalid API address - expected format: host:port (e.g., 127.0.0.1:8008)")
	}

	// Reject unroutable 0.0.0.0 target for client connections
	if netAddr.Host == "0.0.0.0" {
		logging.Error("Unroutable API address '0.0.0.0:%d' - cannot connect to 0.0.0.0", netAddr.Port)
		return fmt.Errorf("unroutable API address - use 127.0.0.1 or a specific IP address")
	}

	if err := validate.ValidatePortRange(netAddr.Port); err != nil {
		logging.Error("Invalid API port %d: %v", netAddr.Port, err)
		return fmt.Errorf("API port must be between 1-65535")
	}

	return nil
}

// ValidateOutputFormat validates the --output flag
func ValidateOutputFormat() error {
	validOutputs := map[string]bool{
		"table": true,
		"json":  true,
	}
	if !validOutputs[Global.Output] {
		logging.Error("Invalid output format '%s' - valid formats are: table, json", Global.Output)
		return fmt.Errorf("invalid output format - valid: table, json")
	}
	return nil
}

// ApplyMarkEnv fills mark settings the user did not pass as flags from the
// ROLLCALL_* environment. changed reports whether a flag was set explicitly.
func ApplyMarkEnv(env configDefaults.Env, changed func(flag string) bool) {
	if !changed("upstream") {
		configDefaults.OverrideString(&Mark.UpstreamURL, env.UpstreamURL)
	}
	if !changed("session-cookie") {
		configDefaults.OverrideString(&Mark.SessionCookie, env.SessionCookie)
	}
	if !changed("concurrency") {
		configDefaults.OverrideInt(&Mark.Concurrency, env.Concurrency)
	}
	if !changed("wave-delay") {
		configDefaults.OverrideDuration(&Mark.WaveDelay, env.WaveDelay)
	}
	if !changed("call-timeout") {
		configDefaults.OverrideDuration(&Mark.CallTimeout, env.CallTimeout)
	}
	if !changed("threshold") {
		configDefaults.OverrideInt(&Mark.Threshold, env.BatchThreshold)
	}
	if !changed("max-attempts") {
		configDefaults.OverrideInt(&Mark.MaxAttempts, env.MaxAttempts)
	}
	if !changed("retry-base-delay") {
		configDefaults.OverrideDuration(&Mark.RetryBaseDelay, env.RetryBaseDelay)
	}
}

// ValidateMarkFlags validates the mark command configuration
func ValidateMarkFlags() error {
	if err := validate.EventIDFormat(Mark.EventID); err != nil {
		return fmt.Errorf("invalid --event: %w", err)
	}
	if err := validate.ValidateRequiredString(Mark.UsersFile, "--users"); err != nil {
		return err
	}
	if err := validate.ValidateEndpointURL(Mark.UpstreamURL, "--upstream"); err != nil {
		logging.Error("The local queue needs the portal URL (--upstream or ROLLCALL_UPSTREAM_URL)")
		return err
	}
	if err := validate.ValidateRequiredString(Mark.SessionCookie, "--session-cookie"); err != nil {
		return err
	}
	if Mark.Concurrency < 1 || Mark.Concurrency > 64 {
		return fmt.Errorf("concurrency must be between 1 and 64, got: %d", Mark.Concurrency)
	}
	if Mark.WaveDelay < 0 {
		return fmt.Errorf("wave delay cannot be negative, got: %v", Mark.WaveDelay)
	}
	if err := validate.ValidatePositiveTimeout(Mark.CallTimeout, "call timeout"); err != nil {
		return err
	}
	if Mark.Threshold < 1 {
		return fmt.Errorf("threshold must be positive, got: %d", Mark.Threshold)
	}
	if Mark.MaxAttempts < 1 || Mark.MaxAttempts > 10 {
		return fmt.Errorf("max attempts must be between 1 and 10, got: %d", Mark.MaxAttempts)
	}
	if err := validate.ValidatePositiveTimeout(Mark.RetryBaseDelay, "retry base delay"); err != nil {
		return err
	}
	return nil
}
