package batching

import (
	"fmt"
	"time"

	"github.com/concave-dev/rollcall/internal/config"
	"github.com/concave-dev/rollcall/internal/validate"
)

// Config holds the pacing parameters of one Batcher: the concurrency ceiling
// C and the delay D a worker waits before taking its next task.
//
// Client-side and server-side batchers are configured independently; see
// DefaultConfig and DefaultServerConfig.
type Config struct {
	Concurrency int `json:"concurrency" validate:"min=1,max=64"`        // Max in-flight submissions
	WaveDelayMs int `json:"wave_delay_ms" validate:"min=0,max=60000"` // Delay between releases (ms)
}

// DefaultConfig returns the pacing used by the local queue path.
func DefaultConfig() *Config {
	return &Config{
		Concurrency: config.DefaultConcurrency,
		WaveDelayMs: int(config.DefaultWaveDelay / time.Millisecond),
	}
}

// DefaultServerConfig returns the pacing used by the rollcalld batch endpoint.
func DefaultServerConfig() *Config {
	return &Config{
		Concurrency: config.DefaultServerConcurrency,
		WaveDelayMs: int(config.DefaultServerWaveDelay / time.Millisecond),
	}
}

// Validate checks the pacing parameters are within sane bounds.
func (c *Config) Validate() error {
	if err := validate.ValidateStruct(c); err != nil {
		return fmt.Errorf("invalid batching config (concurrency=%d, wave_delay_ms=%d): %w",
			c.Concurrency, c.WaveDelayMs, err)
	}
	return nil
}

// GetWaveDelay converts the millisecond delay to a time.Duration.
func (c *Config) GetWaveDelay() time.Duration {
	return time.Duration(c.WaveDelayMs) * time.Millisecond
}

// SetWaveDelay stores d as whole milliseconds.
func (c *Config) SetWaveDelay(d time.Duration) {
	c.WaveDelayMs = int(d / time.Millisecond)
}
