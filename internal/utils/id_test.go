package utils

import (
	"regexp"
	"testing"
)

func TestGenerateID(t *testing.T) {
	hexID := regexp.MustCompile(`^[0-9a-f]{12}$`)
	seen := make(map[string]bool)

	for i := 0; i < 100; i++ {
		id, err := GenerateID()
		if err != nil {
			t.Fatalf("GenerateID() error = %v", err)
		}
		if !hexID.MatchString(id) {
			t.Errorf("GenerateID() = %q, want 12 hex characters", id)
		}
		if seen[id] {
			t.Errorf("GenerateID() returned duplicate %q", id)
		}
		seen[id] = true
	}
}

func TestTruncateIDSafe(t *testing.T) {
	tests := []struct {
		name string
		id   string
		want string
	}{
		{"empty", "", ""},
		{"short", "abc", "abc"},
		{"exact", "0123456789ab", "0123456789ab"},
		{"long", "0123456789abcdef", "0123456789ab"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TruncateIDSafe(tt.id); got != tt.want {
				t.Errorf("TruncateIDSafe(%q) = %q, want %q", tt.id, got, tt.want)
			}
		})
	}
}
