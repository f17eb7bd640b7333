package errors

import (
	"slices"
	"strings"
	"unicode"
)

// ValidatePath validates an output path given on the command line or in a
// config file. Absolute paths are allowed; control characters are not.
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 4096
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}
	return nil
}

// ValidateFormats checks every format against allowed, case-sensitively,
// and rejects duplicates.
func ValidateFormats(formats, allowed []string) error {
	if len(formats) == 0 {
		return New(ErrCodeInvalidFormat, "at least one output format is required")
	}
	seen := make(map[string]bool, len(formats))
	for _, f := range formats {
		if !slices.Contains(allowed, f) {
			return New(ErrCodeInvalidFormat, "unsupported format %q (want one of %s)", f, strings.Join(allowed, ", "))
		}
		if seen[f] {
			return New(ErrCodeInvalidFormat, "format %q given twice", f)
		}
		seen[f] = true
	}
	return nil
}
