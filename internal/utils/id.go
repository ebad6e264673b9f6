// Package utils provides common utility functions for Rollcall.
//
// ID GENERATION STRATEGY:
// Uses crypto/rand for high-quality random data. Run IDs follow a 12-character
// hexadecimal format (similar to Docker short IDs) so they stay readable in
// logs and CLI output while remaining unique for a single node.
package utils

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// ShortIDLength is the number of characters kept by TruncateIDSafe.
const ShortIDLength = 12

// GenerateID creates a unique 12-character hex identifier used to correlate
// log lines and reports for one pipeline run.
//
// Returns format: "a1b2c3d4e5f6"
func GenerateID() (string, error) {
	bytes := make([]byte, 6)
	if _, err := rand.Read(bytes); err != nil {
		return "", fmt.Errorf("failed to generate random bytes: %w", err)
	}
	return hex.EncodeToString(bytes), nil
}

// MustGenerateID is GenerateID for call sites that cannot surface an error.
// Falls back to a fixed marker if the system random source fails.
func MustGenerateID() string {
	id, err := GenerateID()
	if err != nil {
		return "000000000000"
	}
	return id
}

// TruncateIDSafe shortens an identifier to ShortIDLength characters. Shorter
// identifiers are returned unchanged.
func TruncateIDSafe(id string) string {
	if len(id) <= ShortIDLength {
		return id
	}
	return id[:ShortIDLength]
}
