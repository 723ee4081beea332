package errors

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// MaxSourceBytes bounds a single flowchart document accepted by the API.
const MaxSourceBytes = 1 << 20

// ValidateSource checks that flowchart text is safe to process.
//
// The parser itself accepts anything, so only transport-level problems are
// rejected:
//   - More than maxBytes bytes (maxBytes <= 0 means [MaxSourceBytes])
//   - Invalid UTF-8
//   - Null bytes
//
// An empty document is valid and yields an empty graph.
func ValidateSource(src string, maxBytes int) error {
	if maxBytes <= 0 {
		maxBytes = MaxSourceBytes
	}
	if len(src) > maxBytes {
		return New(ErrCodeTooLarge, "document too large (max %d bytes)", maxBytes)
	}
	if !utf8.ValidString(src) {
		return New(ErrCodeInvalidDocument, "document is not valid UTF-8")
	}
	if strings.IndexByte(src, 0) >= 0 {
		return New(ErrCodeInvalidDocument, "document contains null bytes")
	}
	return nil
}

// ValidateDocumentName validates the name of a batch document.
// Names are echoed into logs and responses, so they must be short and
// printable.
func ValidateDocumentName(name string) error {
	if name == "" {
		return nil
	}

	const maxNameLength = 256
	if len(name) > maxNameLength {
		return New(ErrCodeInvalidInput, "document name too long (max %d characters)", maxNameLength)
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "document name contains invalid control characters")
		}
	}
	return nil
}

// ValidatePath validates a document path given on the command line.
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
