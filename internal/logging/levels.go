// Package logging provides centralized log level validation for Rollcall.
//
// The daemon flags, the CLI flags and the ROLLCALL_LOG_LEVEL environment
// variable all validate against the same set defined here.
//
// SUPPORTED LOG LEVELS:
//   - DEBUG: full identifiers, per-attempt submission details
//   - INFO:  run start/finish, strategy decisions
//   - WARN:  fallbacks, rejected submissions
//   - ERROR: transport failures and startup errors
//
// Level strings are uppercase.
package logging

import "fmt"

// ValidLogLevels is the single source of truth for accepted log levels.
var ValidLogLevels = map[string]bool{
	"DEBUG": true,
	"INFO":  true,
	"WARN":  true,
	"ERROR": true,
}

// IsValidLogLevel checks if the provided log level string is supported.
func IsValidLogLevel(level string) bool {
	return ValidLogLevels[level]
}

// ValidateLogLevel validates a log level string and returns an error if invalid.
func ValidateLogLevel(level string) error {
	if !IsValidLogLevel(level) {
		return fmt.Errorf("invalid log level: %s", level)
	}
	return nil
}
