package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// ValidateChartName validates a user-supplied chart name.
// It rejects names that could be used for path traversal or injection
// attacks when the name ends up in cache keys or filenames.
//
// The validation rules are intentionally conservative:
//   - No empty names
//   - No control characters
//   - No path traversal sequences (.., //, etc.)
//   - No null bytes
//   - Maximum length of 256 characters
func ValidateChartName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidInput, "chart name cannot be empty")
	}

	if len(name) > 256 {
		return New(ErrCodeInvalidInput, "chart name too long (max 256 characters)")
	}

	// Check for control characters and null bytes
	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "chart name contains invalid control characters")
		}
	}

	// Check for path traversal patterns
	dangerousPatterns := []string{
		"..",   // Parent directory
		"//",   // Double slash
		"\x00", // Null byte
		"\\",   // Backslash (Windows path)
	}

	for _, pattern := range dangerousPatterns {
		if strings.Contains(name, pattern) {
			return New(ErrCodeInvalidInput, "chart name contains invalid characters: %q", pattern)
		}
	}

	return nil
}

// ValidateURL validates a URL string for safety.
// It ensures the URL has a safe scheme (http or https).
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidInput, "URL cannot be empty")
	}

	// Simple scheme validation without full URL parsing
	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		return New(ErrCodeInvalidInput, "URL must use http or https scheme")
	}

	return nil
}

// colorRegex matches RRGGBB and RRGGBBAA hex colors without a leading '#'.
var colorRegex = regexp.MustCompile(`^[0-9a-fA-F]{6}([0-9a-fA-F]{2})?$`)

// ValidateColor validates a series color as bare hex (RRGGBB or RRGGBBAA).
func ValidateColor(color string) error {
	if !colorRegex.MatchString(color) {
		return New(ErrCodeInvalidInput, "invalid color %q: expected RRGGBB hex without '#'", color)
	}
	return nil
}

// ValidateKind validates a chart kind name as it appears in definitions
// and API requests.
func ValidateKind(kind string) error {
	switch kind {
	case "line", "bar", "pie", "sparkline":
		return nil
	}
	return New(ErrCodeInvalidKind, "unknown chart kind %q", kind)
}

