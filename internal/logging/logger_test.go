package logging

import (
	"bytes"
	stdlog "log"
	"os"
	"strings"
	"testing"
)

// captureLogOutput is a test helper to capture log output
func captureLogOutput(level string, fn func()) string {
	var buf bytes.Buffer

	originalStdout, originalStderr := stdoutLogger, stderrLogger
	originalUsingFile, originalHandle := usingLogFile, logFileHandle
	defer func() {
		stdoutLogger, stderrLogger = originalStdout, originalStderr
		usingLogFile, logFileHandle = originalUsingFile, originalHandle
	}()

	useSingleWriter(&buf)
	SetLevel(level)

	fn()

	return strings.TrimSpace(buf.String())
}

// TestLogLevels tests that logging functions work at different levels
func TestLogLevels(t *testing.T) {
	tests := []struct {
		name     string
		logFunc  func()
		expected string
	}{
		{
			name:     "Info level",
			logFunc:  func() { Info("test info message") },
			expected: "test info message",
		},
		{
			name:     "Warn level",
			logFunc:  func() { Warn("test warn message") },
			expected: "test warn message",
		},
		{
			name:     "Error level",
			logFunc:  func() { Error("test error message") },
			expected: "test error message",
		},
		{
			name:     "Success level",
			logFunc:  func() { Success("test success message") },
			expected: "test success message",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output := captureLogOutput("DEBUG", tt.logFunc)

			if !strings.Contains(output, tt.expected) {
				t.Errorf("Expected output to contain '%s', got '%s'", tt.expected, output)
			}
		})
	}
}

// TestSetLevel tests that log level filtering works correctly
func TestSetLevel(t *testing.T) {
	tests := []struct {
		name         string
		level        string
		logFunc      func()
		shouldOutput bool
	}{
		{
			name:         "Info logged at INFO level",
			level:        "INFO",
			logFunc:      func() { Info("info message") },
			shouldOutput: true,
		},
		{
			name:         "Debug filtered at INFO level",
			level:        "INFO",
			logFunc:      func() { Debug("debug message") },
			shouldOutput: false,
		},
		{
			name:         "Error logged at WARN level",
			level:        "WARN",
			logFunc:      func() { Error("error message") },
			shouldOutput: true,
		},
		{
			name:         "Success filtered at ERROR level",
			level:        "ERROR",
			logFunc:      func() { Success("done") },
			shouldOutput: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output := captureLogOutput(tt.level, tt.logFunc)

			if tt.shouldOutput && output == "" {
				t.Error("Expected output but got none")
			}
			if !tt.shouldOutput && output != "" {
				t.Errorf("Expected no output but got: %s", output)
			}
		})
	}
}

// TestLevelWriter tests that library output is split into lines and prefixed
func TestLevelWriter(t *testing.T) {
	output := captureLogOutput("DEBUG", func() {
		w := NewLevelWriter("warn", "gin")
		if _, err := w.Write([]byte("first line\n\nsecond line\n")); err != nil {
			t.Fatalf("Write() error = %v", err)
		}
	})

	for _, want := range []string{"gin: first line", "gin: second line"} {
		if !strings.Contains(output, want) {
			t.Errorf("Expected output to contain %q, got %q", want, output)
		}
	}
}

func TestRedirectStandardLog(t *testing.T) {
	t.Cleanup(func() { stdlog.SetOutput(os.Stderr) })

	output := captureLogOutput("DEBUG", func() {
		RedirectStandardLog(NewLevelWriter("WARN", "stdlog"))
		stdlog.Print("http: superfluous response.WriteHeader call")
	})
	if !strings.Contains(output, "stdlog: ") || !strings.Contains(output, "superfluous response.WriteHeader") {
		t.Errorf("Expected standard log line in output, got %q", output)
	}

	output = captureLogOutput("DEBUG", func() {
		RedirectStandardLog(nil)
		stdlog.Print("dropped")
	})
	if output != "" {
		t.Errorf("Expected no output after RedirectStandardLog(nil), got %q", output)
	}
}

func TestValidateLogLevel(t *testing.T) {
	for _, level := range []string{"DEBUG", "INFO", "WARN", "ERROR"} {
		if err := ValidateLogLevel(level); err != nil {
			t.Errorf("ValidateLogLevel(%q) error = %v", level, err)
		}
	}
	for _, level := range []string{"", "debug", "TRACE"} {
		if err := ValidateLogLevel(level); err == nil {
			t.Errorf("ValidateLogLevel(%q) expected error", level)
		}
	}
}

func TestRedactToken(t *testing.T) {
	tests := []struct {
		token string
		want  string
	}{
		{"", "<none>"},
		{"abc", "****"},
		{"abcd", "****"},
		{"session-cookie-1234", "****1234"},
	}

	for _, tt := range tests {
		if got := RedactToken(tt.token); got != tt.want {
			t.Errorf("RedactToken(%q) = %q, want %q", tt.token, got, tt.want)
		}
	}
}

func TestFormatIDTruncatesOutsideDebug(t *testing.T) {
	id := "0123456789abcdef0123"

	captureLogOutput("INFO", func() {
		if got := FormatRunID(id); got != id[:12] {
			t.Errorf("FormatRunID() at INFO = %q, want %q", got, id[:12])
		}
	})
	captureLogOutput("DEBUG", func() {
		if got := FormatUserID(id); got != id {
			t.Errorf("FormatUserID() at DEBUG = %q, want %q", got, id)
		}
	})
}
