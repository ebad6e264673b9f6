package validate

import (
	"fmt"
	"regexp"
	"strings"
)

// maxIdentifierLength bounds event and user identifiers. QR payloads from the
// portal are short opaque strings; anything longer is a bad scan.
const maxIdentifierLength = 256

var eventIDPattern = regexp.MustCompile(`^[A-Za-z0-9._:/-]+$`)

// EventIDFormat validates an attendance event identifier decoded from a QR
// code: non-empty, no whitespace, limited to URL-safe characters.
func EventIDFormat(eventID string) error {
	if eventID == "" {
		return fmt.Errorf("event id cannot be empty")
	}
	if len(eventID) > maxIdentifierLength {
		return fmt.Errorf("event id too long (max %d), got %d characters", maxIdentifierLength, len(eventID))
	}
	if !eventIDPattern.MatchString(eventID) {
		return fmt.Errorf("event id '%s' must contain only letters, digits and . _ : / -", eventID)
	}
	return nil
}

// UserIdentifierFormat validates a portal user identifier (registration
// number or username).
func UserIdentifierFormat(identifier string) error {
	if strings.TrimSpace(identifier) == "" {
		return fmt.Errorf("user identifier cannot be empty")
	}
	if len(identifier) > maxIdentifierLength {
		return fmt.Errorf("user identifier too long (max %d), got %d characters", maxIdentifierLength, len(identifier))
	}
	if strings.ContainsAny(identifier, " \t\r\n") {
		return fmt.Errorf("user identifier '%s' cannot contain whitespace", identifier)
	}
	return nil
}
