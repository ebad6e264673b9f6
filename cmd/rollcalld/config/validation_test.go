package config

import (
	"strings"
	"testing"
	"time"

	configDefaults "github.com/concave-dev/rollcall/internal/config"
)

// resetGlobal installs a valid configuration for each test case.
func resetGlobal() {
	Global = Config{
		APIAddr:        DefaultAPI,
		UpstreamURL:    "https://portal.example.edu",
		SessionCookie:  configDefaults.DefaultSessionCookie,
		Concurrency:    configDefaults.DefaultServerConcurrency,
		WaveDelay:      configDefaults.DefaultServerWaveDelay,
		CallTimeout:    configDefaults.DefaultCallTimeout,
		MaxAttempts:    configDefaults.DefaultMaxAttempts,
		RetryBaseDelay: configDefaults.DefaultRetryBaseDelay,
		MaxBatchUsers:  configDefaults.DefaultMaxBatchUsers,
		LogLevel:       DefaultLogLevel,
	}
}

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name          string
		mutate        func(c *Config)
		expectError   bool
		errorContains string
	}{
		{
			name:   "defaults_ok",
			mutate: func(c *Config) {},
		},
		{
			name:          "port_zero_rejected",
			mutate:        func(c *Config) { c.APIAddr = "127.0.0.1:0" },
			expectError:   true,
			errorContains: "requires specific port",
		},
		{
			name:          "missing_upstream",
			mutate:        func(c *Config) { c.UpstreamURL = "" },
			expectError:   true,
			errorContains: "invalid upstream",
		},
		{
			name:          "relative_upstream",
			mutate:        func(c *Config) { c.UpstreamURL = "portal.example.edu" },
			expectError:   true,
			errorContains: "invalid upstream",
		},
		{
			name:          "concurrency_too_high",
			mutate:        func(c *Config) { c.Concurrency = 65 },
			expectError:   true,
			errorContains: "concurrency",
		},
		{
			name:          "negative_wave_delay",
			mutate:        func(c *Config) { c.WaveDelay = -time.Second },
			expectError:   true,
			errorContains: "wave delay",
		},
		{
			name:   "zero_wave_delay_ok",
			mutate: func(c *Config) { c.WaveDelay = 0 },
		},
		{
			name:          "zero_call_timeout",
			mutate:        func(c *Config) { c.CallTimeout = 0 },
			expectError:   true,
			errorContains: "call timeout",
		},
		{
			name:          "too_many_attempts",
			mutate:        func(c *Config) { c.MaxAttempts = 11 },
			expectError:   true,
			errorContains: "max attempts",
		},
		{
			name:          "bad_log_level",
			mutate:        func(c *Config) { c.LogLevel = "TRACE" },
			expectError:   true,
			errorContains: "log level",
		},
		{
			name: "bad_otel_endpoint",
			mutate: func(c *Config) {
				c.OTelEnabled = true
				c.OTelEndpoint = "collector:4318"
			},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetGlobal()
			tt.mutate(&Global)

			err := ValidateConfig()
			if tt.expectError {
				if err == nil {
					t.Fatalf("expected error but got none")
				}
				if tt.errorContains != "" && !strings.Contains(err.Error(), tt.errorContains) {
					t.Errorf("error %q does not contain %q", err.Error(), tt.errorContains)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestValidateConfigSplitsAPIAddress(t *testing.T) {
	resetGlobal()
	Global.APIAddr = "0.0.0.0:9090"

	if err := ValidateConfig(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if Global.APIAddr != "0.0.0.0" || Global.APIPort != 9090 {
		t.Errorf("APIAddr/APIPort = %s/%d, want 0.0.0.0/9090", Global.APIAddr, Global.APIPort)
	}
}

func TestInitializeConfigRespectsExplicitFlags(t *testing.T) {
	resetGlobal()
	Global.Concurrency = 7
	Global.SetExplicitlySet(ConcurrencyField, true)

	InitializeConfig(configDefaults.Env{
		ServerConcurrency: 2,
		ServerWaveDelay:   900 * time.Millisecond,
		UpstreamURL:       "https://other.example.edu",
		OTelEnabled:       true,
	})

	if Global.Concurrency != 7 {
		t.Errorf("Concurrency = %d, explicit flag should win over env", Global.Concurrency)
	}
	if Global.WaveDelay != 900*time.Millisecond {
		t.Errorf("WaveDelay = %v, want env value 900ms", Global.WaveDelay)
	}
	if Global.UpstreamURL != "https://other.example.edu" {
		t.Errorf("UpstreamURL = %s, want env value", Global.UpstreamURL)
	}
	if !Global.OTelEnabled {
		t.Error("OTelEnabled should follow env")
	}
}

func TestInitializeConfigDebugOverridesLogLevel(t *testing.T) {
	resetGlobal()
	Global.LogLevel = "ERROR"
	Global.SetExplicitlySet(LogLevelField, true)

	InitializeConfig(configDefaults.Env{Debug: true})

	if Global.LogLevel != "DEBUG" {
		t.Errorf("LogLevel = %s, want DEBUG", Global.LogLevel)
	}
}
