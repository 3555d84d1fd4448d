package ingestion

import (
	"errors"
	"fmt"
)

var (
	// ErrUnsupportedFile is returned for uploads that are neither PDF nor plain text
	ErrUnsupportedFile = errors.New("unsupported file type")
	// ErrEncryptedDocument is returned for password-protected PDFs
	ErrEncryptedDocument = errors.New("document is encrypted")
	// ErrNoText is returned when a document decodes but yields no text
	ErrNoText = errors.New("document contains no extractable text")
)

// ExtractionError represents a failure turning a document into text
type ExtractionError struct {
	Source  string
	Message string
	Cause   error
}

func (e *ExtractionError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("extraction error (%s): %s: %v", e.Source, e.Message, e.Cause)
	}
	return fmt.Sprintf("extraction error (%s): %s", e.Source, e.Message)
}

func (e *ExtractionError) Unwrap() error {
	return e.Cause
}
