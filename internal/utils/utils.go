package utils

import (
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
)

// =============================================================================
// UTILITY FUNCTIONS
// =============================================================================

// GenerateID returns an opaque connection identifier
func GenerateID() string {
	return uuid.NewString()
}

// NormalizeName trims surrounding whitespace from a display name
func NormalizeName(name string) string {
	return strings.TrimSpace(name)
}

// SameName compares display names case-insensitively
func SameName(a, b string) bool {
	return strings.EqualFold(NormalizeName(a), NormalizeName(b))
}

// ValidName reports whether a trimmed name is non-empty and within maxLen runes
func ValidName(name string, maxLen int) bool {
	n := utf8.RuneCountInString(name)
	return n > 0 && n <= maxLen
}

// NormalizeCode upper-cases and trims a room code typed by a user
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
