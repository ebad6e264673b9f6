package config

import (
	"net"
	"strings"
	"testing"
	"time"
)

// TestDefaultBindAddrIsValidIP validates that the default bind address is a valid IP
func TestDefaultBindAddrIsValidIP(t *testing.T) {
	ip := net.ParseIP(DefaultBindAddr)
	if ip == nil {
		t.Fatalf("DefaultBindAddr %q is not a valid IP address", DefaultBindAddr)
	}
	if ip.To4() == nil {
		t.Errorf("DefaultBindAddr %q is not a valid IPv4 address", DefaultBindAddr)
	}
}

// TestDefaultLogLevelFormat validates log level format conventions
func TestDefaultLogLevelFormat(t *testing.T) {
	if DefaultLogLevel != strings.ToUpper(DefaultLogLevel) {
		t.Errorf("DefaultLogLevel %q should be uppercase", DefaultLogLevel)
	}
	if DefaultLogLevel == "" {
		t.Error("DefaultLogLevel should not be empty")
	}
}

// TestPipelineDefaults validates the pacing and retry defaults
func TestPipelineDefaults(t *testing.T) {
	tests := []struct {
		name string
		got  any
		want any
	}{
		{"concurrency", DefaultConcurrency, 3},
		{"batch threshold", DefaultBatchThreshold, 5},
		{"max attempts", DefaultMaxAttempts, 3},
		{"retry base delay", DefaultRetryBaseDelay, time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("%s = %v, want %v", tt.name, tt.got, tt.want)
			}
		})
	}

	if DefaultWaveDelay < 300*time.Millisecond || DefaultWaveDelay > 500*time.Millisecond {
		t.Errorf("DefaultWaveDelay = %v, want within 300ms-500ms", DefaultWaveDelay)
	}
	if DefaultCallTimeout < 8*time.Second || DefaultCallTimeout > 10*time.Second {
		t.Errorf("DefaultCallTimeout = %v, want within 8s-10s", DefaultCallTimeout)
	}
}

func TestParseEnv(t *testing.T) {
	t.Setenv("ROLLCALL_CONCURRENCY", "5")
	t.Setenv("ROLLCALL_WAVE_DELAY", "450ms")
	t.Setenv("ROLLCALL_UPSTREAM_URL", "https://portal.example.edu/api")

	e, err := ParseEnv()
	if err != nil {
		t.Fatalf("ParseEnv() error = %v", err)
	}
	if e.Concurrency != 5 {
		t.Errorf("Concurrency = %d, want 5", e.Concurrency)
	}
	if e.WaveDelay != 450*time.Millisecond {
		t.Errorf("WaveDelay = %v, want 450ms", e.WaveDelay)
	}
	if e.UpstreamURL != "https://portal.example.edu/api" {
		t.Errorf("UpstreamURL = %q", e.UpstreamURL)
	}
	if !e.OTelEnabled {
		t.Error("OTelEnabled should default to true")
	}
}

func TestParseEnvRejectsMalformedValues(t *testing.T) {
	t.Setenv("ROLLCALL_CONCURRENCY", "three")

	if _, err := ParseEnv(); err == nil {
		t.Fatal("ParseEnv() expected error for malformed integer")
	}
}

func TestOverrides(t *testing.T) {
	s := "keep"
	OverrideString(&s, "")
	if s != "keep" {
		t.Errorf("OverrideString with empty value changed dst to %q", s)
	}
	OverrideString(&s, "new")
	if s != "new" {
		t.Errorf("OverrideString = %q, want new", s)
	}

	n := 3
	OverrideInt(&n, 0)
	OverrideInt(&n, -1)
	if n != 3 {
		t.Errorf("OverrideInt with non-positive value changed dst to %d", n)
	}
	OverrideInt(&n, 7)
	if n != 7 {
		t.Errorf("OverrideInt = %d, want 7", n)
	}

	d := time.Second
	OverrideDuration(&d, 0)
	if d != time.Second {
		t.Errorf("OverrideDuration with zero changed dst to %v", d)
	}
	OverrideDuration(&d, 2*time.Second)
	if d != 2*time.Second {
		t.Errorf("OverrideDuration = %v, want 2s", d)
	}
}
