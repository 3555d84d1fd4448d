package importer

import "fmt"

// RecordError is returned when a parsed record fails the output contract
type RecordError struct {
	Message string
	Cause   error
}

func (e *RecordError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("record error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("record error: %s", e.Message)
}

func (e *RecordError) Unwrap() error {
	return e.Cause
}

// StoreError is returned when a parsed record cannot be persisted
type StoreError struct {
	Message string
	Cause   error
}

func (e *StoreError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("store error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("store error: %s", e.Message)
}

func (e *StoreError) Unwrap() error {
	return e.Cause
}
