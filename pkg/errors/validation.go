package errors

import (
	"strings"
	"unicode"

	"github.com/google/uuid"
)

// MaxNameLength bounds the display name of a stored network.
const MaxNameLength = 128

// ValidateSize checks a requested network size against an upper bound.
// A bound of zero or less disables the upper check.
func ValidateSize(n, limit int) error {
	if n < 1 {
		return New(ErrCodeInvalidInput, "network size must be at least 1, got %d", n)
	}
	if limit > 0 && n > limit {
		return New(ErrCodeInvalidInput, "network size %d exceeds limit %d", n, limit)
	}
	return nil
}

// ValidateNetworkID validates the identifier of a stored network.
// Identifiers are canonical UUID strings.
func ValidateNetworkID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidID, "network id cannot be empty")
	}
	if _, err := uuid.Parse(id); err != nil {
		return Wrap(ErrCodeInvalidID, err, "invalid network id %q", id)
	}
	return nil
}

// ValidateName validates the display name attached to a stored network.
//
// The validation rules are conservative:
//   - Empty names are allowed (the network stays anonymous)
//   - No control characters or null bytes
//   - Maximum length of MaxNameLength characters
func ValidateName(name string) error {
	if len(name) > MaxNameLength {
		return New(ErrCodeInvalidInput, "name too long (max %d characters)", MaxNameLength)
	}
	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "name contains invalid control characters")
		}
	}
	if strings.TrimSpace(name) != name {
		return New(ErrCodeInvalidInput, "name cannot start or end with whitespace")
	}
	return nil
}
