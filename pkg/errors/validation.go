package errors

import (
	"math"
	"slices"
	"strings"
	"unicode"
)

// ValidatePath validates a user supplied file path (output file, script,
// config) for safety.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	return nil
}

// ValidateFormats checks that every entry of formats is one of allowed.
// Formats are compared case-insensitively and must not be empty.
func ValidateFormats(formats []string, allowed ...string) error {
	if len(formats) == 0 {
		return New(ErrCodeInvalidFormat, "no output format given")
	}
	for _, f := range formats {
		if !slices.Contains(allowed, strings.ToLower(strings.TrimSpace(f))) {
			return New(ErrCodeInvalidFormat, "unsupported format %q (valid: %s)", f, strings.Join(allowed, ", "))
		}
	}
	return nil
}

// ValidateRange checks that v is finite and within [lo, hi].
func ValidateRange(name string, v, lo, hi float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return New(ErrCodeInvalidConfig, "%s must be a finite number", name)
	}
	if v < lo || v > hi {
		return New(ErrCodeInvalidConfig, "%s must be between %g and %g, got %g", name, lo, hi, v)
	}
	return nil
}

// ValidatePositive checks that v is finite and strictly positive.
func ValidatePositive(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return New(ErrCodeInvalidConfig, "%s must be positive, got %g", name, v)
	}
	return nil
}
