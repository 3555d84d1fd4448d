// Package schemas validates importer records against their JSON Schema contracts.
package schemas

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	rootschemas "github.com/jonathan/resume-importer/schemas"
	"github.com/xeipuuv/gojsonschema"
)

// ValidationError represents a schema validation error with field paths
type ValidationError struct {
	Errors []FieldError
}

// FieldError represents a single validation error at a specific field
type FieldError struct {
	Field   string
	Message string
}

// SchemaLoadError represents errors loading or parsing the schema itself
type SchemaLoadError struct {
	Path    string
	Message string
	Cause   error
}

func (e *SchemaLoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("failed to load schema %s: %s: %v", e.Path, e.Message, e.Cause)
	}
	return fmt.Sprintf("failed to load schema %s: %s", e.Path, e.Message)
}

func (e *SchemaLoadError) Unwrap() error {
	return e.Cause
}

func (ve *ValidationError) Error() string {
	var sb strings.Builder
	sb.WriteString("validation failed:\n")
	for i, err := range ve.Errors {
		sb.WriteString(fmt.Sprintf("  %d. %s: %s\n", i+1, err.Field, err.Message))
	}
	return sb.String()
}

var (
	parsedResumeOnce   sync.Once
	parsedResumeSchema *gojsonschema.Schema
	parsedResumeErr    error
)

// parsedResume compiles the embedded parsed resume schema once
func parsedResume() (*gojsonschema.Schema, error) {
	parsedResumeOnce.Do(func() {
		parsedResumeSchema, parsedResumeErr = gojsonschema.NewSchema(gojsonschema.NewStringLoader(rootschemas.ParsedResume))
		if parsedResumeErr != nil {
			parsedResumeErr = &SchemaLoadError{
				Path:    rootschemas.ParsedResumeFile,
				Message: "embedded schema does not compile",
				Cause:   parsedResumeErr,
			}
		}
	})
	return parsedResumeSchema, parsedResumeErr
}

// ValidateRecord marshals v and validates it against the parsed resume schema
func ValidateRecord(v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal record: %w", err)
	}
	return ValidateRecordJSON(data)
}

// ValidateRecordJSON validates raw JSON against the parsed resume schema
func ValidateRecordJSON(data []byte) error {
	schema, err := parsedResume()
	if err != nil {
		return err
	}

	result, err := schema.Validate(gojsonschema.NewBytesLoader(data))
	if err != nil {
		return fmt.Errorf("failed to load record JSON: %w", err)
	}
	return resultError(result)
}

// ValidateRecordFile validates a JSON file against the parsed resume schema
func ValidateRecordFile(jsonPath string) error {
	jsonAbsPath, err := filepath.Abs(jsonPath)
	if err != nil {
		return fmt.Errorf("failed to resolve JSON path: %w", err)
	}

	data, err := os.ReadFile(jsonAbsPath)
	if os.IsNotExist(err) {
		return fmt.Errorf("JSON file not found: %s", jsonAbsPath)
	}
	if err != nil {
		return fmt.Errorf("failed to read JSON file %s: %w", jsonAbsPath, err)
	}
	return ValidateRecordJSON(data)
}

// ValidateJSONString validates JSON string content against schema string content
func ValidateJSONString(schemaContent, jsonContent string) error {
	schemaLoader := gojsonschema.NewStringLoader(schemaContent)
	documentLoader := gojsonschema.NewStringLoader(jsonContent)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return &SchemaLoadError{
			Path:    "(string schema)",
			Message: "schema validation failed during load",
			Cause:   err,
		}
	}
	return resultError(result)
}

// resultError converts a failed result into a ValidationError
func resultError(result *gojsonschema.Result) error {
	if result.Valid() {
		return nil
	}

	validationErr := &ValidationError{
		Errors: make([]FieldError, 0, len(result.Errors())),
	}
	for _, desc := range result.Errors() {
		field := desc.Field()
		if field == "" {
			field = "(root)"
		}
		validationErr.Errors = append(validationErr.Errors, FieldError{
			Field:   field,
			Message: desc.Description(),
		})
	}
	return validationErr
}
