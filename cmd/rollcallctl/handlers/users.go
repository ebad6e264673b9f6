package handlers

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/concave-dev/rollcall/internal/validate"
)

// UserEntry is one element of the users file.
type UserEntry struct {
	Identifier   string `json:"identifier"`
	SessionToken string `json:"sessionToken"`
}

// LoadUsers reads a JSON array of users from path. Entries without a session
// token are kept; they are reported as MISSING_TOKEN instead of aborting the
// whole run.
func LoadUsers(path string) ([]UserEntry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read users file: %w", err)
	}

	var entries []UserEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse users file %s: %w", path, err)
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("users file %s contains no users", path)
	}

	seen := make(map[string]int, len(entries))
	for i, entry := range entries {
		if err := validate.UserIdentifierFormat(entry.Identifier); err != nil {
			return nil, fmt.Errorf("users[%d]: %w", i, err)
		}
		if prev, ok := seen[entry.Identifier]; ok {
			return nil, fmt.Errorf("users[%d]: duplicate identifier %s (first at users[%d])", i, entry.Identifier, prev)
		}
		seen[entry.Identifier] = i
	}

	return entries, nil
}

// splitUsers returns parallel identifier and token slices.
func splitUsers(entries []UserEntry) (users, tokens []string) {
	users = make([]string, len(entries))
	tokens = make([]string, len(entries))
	for i, entry := range entries {
		users[i] = entry.Identifier
		tokens[i] = entry.SessionToken
	}
	return users, tokens
}
