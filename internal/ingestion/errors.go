// Package ingestion extracts plain text from uploaded resume documents.
package ingestion

import (
	"errors"
	"fmt"
)

var (
	// ErrUnsupportedFormat is wrapped when the file is neither PDF nor DOCX.
	ErrUnsupportedFormat = errors.New("unsupported document format")
	// ErrEncrypted is wrapped when a PDF is password protected.
	ErrEncrypted = errors.New("document is encrypted")
)

// DocumentReadError represents a failure to turn a document into text
type DocumentReadError struct {
	Path    string
	Format  Format
	Message string
	Cause   error
}

func (e *DocumentReadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("document read error: %s: %s: %v", e.Path, e.Message, e.Cause)
	}
	return fmt.Sprintf("document read error: %s: %s", e.Path, e.Message)
}

func (e *DocumentReadError) Unwrap() error {
	return e.Cause
}
