package parsing

import (
	"errors"
	"fmt"
)

// ErrEmptyDocument is returned when the normalized text is too short to parse
var ErrEmptyDocument = errors.New("document is empty or unreadable")

// EmptyDocumentError reports how much text survived normalization
type EmptyDocumentError struct {
	Length  int
	Minimum int
}

func (e *EmptyDocumentError) Error() string {
	return fmt.Sprintf("document is empty or unreadable: %d characters of text, need at least %d", e.Length, e.Minimum)
}

func (e *EmptyDocumentError) Unwrap() error {
	return ErrEmptyDocument
}

// ParseError represents a failure of the parse call as a whole
type ParseError struct {
	Message string
	Cause   error
}

func (e *ParseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("parse error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("parse error: %s", e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}
