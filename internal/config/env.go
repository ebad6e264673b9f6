package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Env is the environment overlay consumed by rollcalld and rollcallctl.
// Zero values mean "not set"; callers keep their flag defaults in that case.
type Env struct {
	Debug    bool   `env:"DEBUG"`
	LogLevel string `env:"ROLLCALL_LOG_LEVEL"`

	APIAddr       string `env:"ROLLCALL_API_ADDR"`
	UpstreamURL   string `env:"ROLLCALL_UPSTREAM_URL"`
	SessionCookie string `env:"ROLLCALL_SESSION_COOKIE"`

	Concurrency       int           `env:"ROLLCALL_CONCURRENCY"`
	WaveDelay         time.Duration `env:"ROLLCALL_WAVE_DELAY"`
	ServerConcurrency int           `env:"ROLLCALL_SERVER_CONCURRENCY"`
	ServerWaveDelay   time.Duration `env:"ROLLCALL_SERVER_WAVE_DELAY"`
	CallTimeout       time.Duration `env:"ROLLCALL_CALL_TIMEOUT"`
	BatchThreshold    int           `env:"ROLLCALL_BATCH_THRESHOLD"`
	MaxAttempts       int           `env:"ROLLCALL_MAX_ATTEMPTS"`
	RetryBaseDelay    time.Duration `env:"ROLLCALL_RETRY_BASE_DELAY"`

	OTelEndpoint string `env:"ROLLCALL_OTEL_ENDPOINT"`
	OTelEnabled  bool   `env:"ROLLCALL_OTEL_ENABLED" envDefault:"true"`
}

// ParseEnv loads the Rollcall environment overlay.
func ParseEnv() (Env, error) {
	var e Env
	if err := env.Parse(&e); err != nil {
		return Env{}, fmt.Errorf("parse env: %w", err)
	}
	return e, nil
}

// OverrideString replaces *dst with v when v is set.
func OverrideString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

// OverrideInt replaces *dst with v when v is positive.
func OverrideInt(dst *int, v int) {
	if v > 0 {
		*dst = v
	}
}

// OverrideDuration replaces *dst with v when v is positive.
func OverrideDuration(dst *time.Duration, v time.Duration) {
	if v > 0 {
		*dst = v
	}
}
