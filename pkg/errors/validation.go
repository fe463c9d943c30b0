package errors

import (
	"strings"
	"unicode"
)

// maxNameLength bounds entity names and output filenames.
const maxNameLength = 256

// RequireField returns a MISSING_FIELD error when value is empty. Whitespace
// counts as a value. what names the owner ("container", "relationship") and field
// the attribute ("name", "technology").
func RequireField(what, field, value string) error {
	if value == "" {
		return New(ErrCodeMissingField, "%s %s cannot be empty", what, field)
	}
	if len(value) > maxNameLength && field == "name" {
		return New(ErrCodeInvalidInput, "%s %s too long (max %d characters)", what, field, maxNameLength)
	}
	return nil
}

// ValidateOutputFilename validates an output file base name.
//
// The name must be a plain identifier: it starts with a letter or underscore
// and continues with letters, digits, or underscores. This rejects path
// separators, dots, and any other character that could escape the output
// directory.
func ValidateOutputFilename(name string) error {
	if name == "" {
		return New(ErrCodeInvalidFilename, "output filename cannot be empty")
	}
	if len(name) > maxNameLength {
		return New(ErrCodeInvalidFilename, "output filename too long (max %d characters)", maxNameLength)
	}

	for i, r := range name {
		switch {
		case r == '_' || unicode.IsLetter(r):
		case i > 0 && unicode.IsDigit(r):
		default:
			return New(ErrCodeInvalidFilename, "output filename must be a valid identifier: %q", name)
		}
	}
	return nil
}

// maxPathLength bounds user-supplied file and directory paths.
const maxPathLength = 4096

// ValidatePath checks a user-supplied file or directory path, such as an
// output directory or config file. Absolute and relative paths are both
// accepted. The path must be non-empty, at most 4096 bytes, and free of
// null bytes and control characters.
func ValidatePath(what, path string) error {
	if path == "" {
		return New(ErrCodeInvalidInput, "%s path cannot be empty", what)
	}
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidInput, "%s path too long (max %d characters)", what, maxPathLength)
	}
	if strings.IndexFunc(path, unicode.IsControl) >= 0 {
		return New(ErrCodeInvalidInput, "%s path contains control characters: %q", what, path)
	}
	return nil
}
