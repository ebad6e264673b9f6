package config

import (
	"fmt"

	configDefaults "github.com/concave-dev/rollcall/internal/config"
	"github.com/concave-dev/rollcall/internal/logging"
	"github.com/concave-dev/rollcall/internal/validate"
)

// InitializeConfig applies the environment overlay to every field the
// operator did not set on the command line.
func InitializeConfig(env configDefaults.Env) {
	if env.Debug {
		Global.LogLevel = "DEBUG"
		logging.Info("DEBUG environment variable detected, setting log level to DEBUG")
	} else if !Global.IsExplicitlySet(LogLevelField) {
		configDefaults.OverrideString(&Global.LogLevel, env.LogLevel)
	}

	if !Global.IsExplicitlySet(APIAddrField) {
		configDefaults.OverrideString(&Global.APIAddr, env.APIAddr)
	}
	if !Global.IsExplicitlySet(UpstreamField) {
		configDefaults.OverrideString(&Global.UpstreamURL, env.UpstreamURL)
	}
	if !Global.IsExplicitlySet(SessionCookieField) {
		configDefaults.OverrideString(&Global.SessionCookie, env.SessionCookie)
	}
	if !Global.IsExplicitlySet(ConcurrencyField) {
		configDefaults.OverrideInt(&Global.Concurrency, env.ServerConcurrency)
	}
	if !Global.IsExplicitlySet(WaveDelayField) {
		configDefaults.OverrideDuration(&Global.WaveDelay, env.ServerWaveDelay)
	}
	if !Global.IsExplicitlySet(CallTimeoutField) {
		configDefaults.OverrideDuration(&Global.CallTimeout, env.CallTimeout)
	}
	if !Global.IsExplicitlySet(MaxAttemptsField) {
		configDefaults.OverrideInt(&Global.MaxAttempts, env.MaxAttempts)
	}
	if !Global.IsExplicitlySet(RetryBaseDelayField) {
		configDefaults.OverrideDuration(&Global.RetryBaseDelay, env.RetryBaseDelay)
	}

	Global.OTelEndpoint = env.OTelEndpoint
	Global.OTelEnabled = env.OTelEnabled
}

// ValidateConfig validates and normalizes the daemon configuration before
// any service starts. The API address is split into host and port.
func ValidateConfig() error {
	if err := logging.ValidateLogLevel(Global.LogLevel); err != nil {
		return err
	}

	apiNetAddr, err := validate.ParseBindAddress(Global.APIAddr)
	if err != nil {
		logging.Error("Invalid API address '%s': %v", Global.APIAddr, err)
		return fmt.Errorf("invalid API address: %w", err)
	}
	// rollcallctl needs a predictable address, so port 0 is rejected
	if err := validate.ValidatePortRange(apiNetAddr.Port); err != nil {
		logging.Error("API port cannot be 0 (auto-assigned) - rollcallctl needs a fixed address")
		return fmt.Errorf("API address requires specific port (not 0): %w", err)
	}
	Global.APIAddr = apiNetAddr.Host
	Global.APIPort = apiNetAddr.Port

	if err := validate.ValidateEndpointURL(Global.UpstreamURL, "upstream"); err != nil {
		logging.Error("Invalid upstream URL: %v", err)
		return fmt.Errorf("invalid upstream: %w", err)
	}
	if err := validate.ValidateRequiredString(Global.SessionCookie, "session cookie"); err != nil {
		return err
	}

	if Global.Concurrency < 1 || Global.Concurrency > 64 {
		return fmt.Errorf("concurrency must be between 1 and 64, got: %d", Global.Concurrency)
	}
	if Global.WaveDelay < 0 {
		return fmt.Errorf("wave delay cannot be negative, got: %v", Global.WaveDelay)
	}
	if err := validate.ValidatePositiveTimeout(Global.CallTimeout, "call timeout"); err != nil {
		return err
	}
	if Global.MaxAttempts < 1 || Global.MaxAttempts > 10 {
		return fmt.Errorf("max attempts must be between 1 and 10, got: %d", Global.MaxAttempts)
	}
	if err := validate.ValidatePositiveTimeout(Global.RetryBaseDelay, "retry base delay"); err != nil {
		return err
	}
	if Global.MaxBatchUsers < 1 {
		return fmt.Errorf("max batch users must be positive, got: %d", Global.MaxBatchUsers)
	}

	if Global.OTelEnabled && Global.OTelEndpoint != "" {
		if err := validate.ValidateEndpointURL(Global.OTelEndpoint, "otel endpoint"); err != nil {
			return err
		}
	}

	return nil
}
