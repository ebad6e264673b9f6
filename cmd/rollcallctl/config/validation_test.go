package config

import (
	"strings"
	"testing"
	"time"

	configDefaults "github.com/concave-dev/rollcall/internal/config"
)

func TestValidateAPIAddress(t *testing.T) {
	tests := []struct {
		addr        string
		expectError bool
	}{
		{"127.0.0.1:8008", false},
		{"192.168.1.100:9000", false},
		{"0.0.0.0:8008", true},
		{"127.0.0.1:0", true},
		{"localhost", true},
		{"", true},
	}

	for _, tt := range tests {
		t.Run(tt.addr, func(t *testing.T) {
			Global.APIAddr = tt.addr
			err := ValidateAPIAddress()
			if (err != nil) != tt.expectError {
				t.Errorf("ValidateAPIAddress(%q) error = %v, expectError %v", tt.addr, err, tt.expectError)
			}
		})
	}
}

func TestValidateOutputFormat(t *testing.T) {
	for _, format := range []string{"table", "json"} {
		Global.Output = format
		if err := ValidateOutputFormat(); err != nil {
			t.Errorf("ValidateOutputFormat(%q) error = %v", format, err)
		}
	}
	Global.Output = "yaml"
	if err := ValidateOutputFormat(); err == nil {
		t.Error("ValidateOutputFormat(yaml) error = nil")
	}
}

func validMark() {
	ResetMark()
	Mark.EventID = "EVT-2024-CS101"
	Mark.UsersFile = "users.json"
	Mark.UpstreamURL = "https://portal.example.edu"
}

func TestValidateMarkFlags(t *testing.T) {
	tests := []struct {
		name          string
		mutate        func()
		errorContains string
	}{
		{"defaults ok", func() {}, ""},
		{"event with space", func() { Mark.EventID = "EVT 1" }, "invalid --event"},
		{"no users file", func() { Mark.UsersFile = "" }, "--users"},
		{"no upstream", func() { Mark.UpstreamURL = "" }, "--upstream"},
		{"zero concurrency", func() { Mark.Concurrency = 0 }, "concurrency"},
		{"negative delay", func() { Mark.WaveDelay = -time.Millisecond }, "wave delay"},
		{"zero threshold", func() { Mark.Threshold = 0 }, "threshold"},
		{"zero timeout", func() { Mark.CallTimeout = 0 }, "call timeout"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			validMark()
			tt.mutate()

			err := ValidateMarkFlags()
			if tt.errorContains == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.errorContains) {
				t.Fatalf("error = %v, want containing %q", err, tt.errorContains)
			}
		})
	}
}

func TestApplyMarkEnv(t *testing.T) {
	validMark()
	Mark.Concurrency = 5

	changed := func(flag string) bool { return flag == "concurrency" }
	ApplyMarkEnv(configDefaults.Env{
		Concurrency:    9,
		WaveDelay:      time.Second,
		BatchThreshold: 20,
		UpstreamURL:    "https://env.example.edu",
	}, changed)

	if Mark.Concurrency != 5 {
		t.Errorf("Concurrency = %d, explicit flag should win", Mark.Concurrency)
	}
	if Mark.WaveDelay != time.Second || Mark.Threshold != 20 {
		t.Errorf("WaveDelay/Threshold = %v/%d, want env values", Mark.WaveDelay, Mark.Threshold)
	}
	if Mark.UpstreamURL != "https://env.example.edu" {
		t.Errorf("UpstreamURL = %s", Mark.UpstreamURL)
	}
	if Mark.MaxAttempts != configDefaults.DefaultMaxAttempts {
		t.Errorf("MaxAttempts = %d, unset env should keep default", Mark.MaxAttempts)
	}
}
