// Package logging provides identifier formatting utilities so that user
// identifiers, run IDs and session tokens are displayed consistently.
//
// ID FORMATTING STRATEGY:
//   - Debug logs: full identifiers for complete traceability
//   - Info/Warn/Error/Success logs: truncated identifiers for readability
//   - Session tokens: always redacted, regardless of level
package logging

import (
	"github.com/charmbracelet/log"
	"github.com/concave-dev/rollcall/internal/utils"
)

// FormatID formats an ID for logging based on the current log level. Returns
// the full ID when debug logging is enabled, a truncated ID otherwise.
func FormatID(id string) string {
	if stderrLogger.GetLevel() <= log.DebugLevel {
		return id
	}
	return utils.TruncateIDSafe(id)
}

// FormatRunID formats a pipeline run ID for logging.
//
// Usage: logging.Info("Run %s finished", logging.FormatRunID(runID))
func FormatRunID(runID string) string {
	return FormatID(runID)
}

// FormatUserID formats a portal user identifier for logging.
func FormatUserID(userID string) string {
	return FormatID(userID)
}

// RedactToken hides all but the last four characters of a session token.
// Tokens of four characters or fewer are fully masked.
func RedactToken(token string) string {
	if token == "" {
		return "<none>"
	}
	if len(token) <= 4 {
		return "****"
	}
	return "****" + token[len(token)-4:]
}
