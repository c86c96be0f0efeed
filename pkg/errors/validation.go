package errors

import (
	"strings"
	"unicode"
)

// MaxKeyLength is the longest key accepted by the key-value stores. It
// matches the Workers KV limit.
const MaxKeyLength = 512

// ValidateKey validates a key-value store key for safety.
//
// The validation rules are intentionally conservative:
//   - No empty keys
//   - No control characters
//   - No path traversal sequences (.., backslashes)
//   - Keys "." and ".." are rejected outright
//   - Maximum length of MaxKeyLength bytes
func ValidateKey(key string) error {
	if key == "" {
		return New(ErrCodeInvalidKey, "key cannot be empty")
	}

	if len(key) > MaxKeyLength {
		return New(ErrCodeInvalidKey, "key too long (max %d bytes)", MaxKeyLength)
	}

	for _, r := range key {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidKey, "key contains invalid control characters")
		}
	}

	if key == "." || key == ".." {
		return New(ErrCodeInvalidKey, "key cannot be %q", key)
	}

	for _, pattern := range []string{"..", "\\"} {
		if strings.Contains(key, pattern) {
			return New(ErrCodeInvalidKey, "key contains invalid characters: %q", pattern)
		}
	}

	return nil
}

// ValidatePath validates a slash-separated lookup path (for example an image
// manifest path) for safety.
//
// Validation rules:
//   - Maximum length of 500 characters
//   - No null bytes or control characters
//   - No path traversal sequences (..)
//   - No backslashes (Windows-style paths)
//
// The empty path is valid and addresses the root.
func ValidatePath(path string) error {
	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidInput, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "path contains invalid characters")
		}
	}

	if strings.Contains(path, "..") {
		return New(ErrCodeInvalidInput, "path cannot contain path traversal sequences (..)")
	}

	if strings.Contains(path, "\\") {
		return New(ErrCodeInvalidInput, "path cannot contain backslashes")
	}

	return nil
}
