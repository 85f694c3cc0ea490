package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// datasetNameRegex matches dataset base names such as "BA_10000" or
// "com-amazon.ungraph".
var datasetNameRegex = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]*$`)

// ValidateDatasetName validates the base name used to derive output file
// names. It must be a plain file name without directory components.
//
// The validation rules are intentionally conservative:
//   - No empty names
//   - No control characters
//   - No path separators or traversal sequences
//   - Maximum length of 200 characters
func ValidateDatasetName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidPath, "dataset name cannot be empty")
	}

	if len(name) > 200 {
		return New(ErrCodeInvalidPath, "dataset name too long (max 200 characters)")
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "dataset name contains invalid control characters")
		}
	}

	if strings.Contains(name, "..") {
		return New(ErrCodeInvalidPath, "dataset name cannot contain %q", "..")
	}

	if !datasetNameRegex.MatchString(name) {
		return New(ErrCodeInvalidPath, "invalid dataset name: %q", name)
	}

	return nil
}

// ValidatePath validates a user-supplied file path for safety.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 4096 characters
//   - No null bytes or control characters
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 4096
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
