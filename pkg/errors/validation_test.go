package errors

import (
	"strings"
	"testing"
)

func TestValidateKey(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid simple", "k4-notes", false},
		{"valid uuid", "3f2b0c9e-8a3d-4c1e-9b7a-2d6f1e0c5a44", false},
		{"valid with slash", "share/abc", false},
		{"valid with dot", "grid.v1", false},
		{"valid at limit", strings.Repeat("k", MaxKeyLength), false},

		{"empty", "", true},
		{"too long", strings.Repeat("k", MaxKeyLength+1), true},
		{"single dot", ".", true},
		{"double dot", "..", true},
		{"path traversal", "foo/../bar", true},
		{"null byte", "foo\x00bar", true},
		{"backslash", "foo\\bar", true},
		{"control char", "foo\x01bar", true},
		{"newline", "foo\nbar", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateKey(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateKey(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidKey) {
				t.Errorf("ValidateKey(%q) code = %v, want %v", tt.input, GetCode(err), ErrCodeInvalidKey)
			}
		})
	}
}

func TestValidatePath(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"root", "", false},
		{"single segment", "kryptos", false},
		{"nested", "kryptos/panels/k4", false},

		{"too long", strings.Repeat("a", 501), true},
		{"path traversal", "kryptos/../secret", true},
		{"null byte", "foo\x00bar", true},
		{"control char", "foo\x1fbar", true},
		{"backslash", "foo\\bar", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePath(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePath(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}
