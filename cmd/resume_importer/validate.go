package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/jonathan/resume-importer/internal/schemas"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a parsed resume JSON file against the record schema",
	Long: `Validate a parsed resume JSON file against the embedded record schema,
or against a custom JSON schema given with --schema.`,
	RunE: runValidate,
}

var (
	validateInputFile  string
	validateSchemaFile string
)

func init() {
	validateCmd.Flags().StringVarP(&validateInputFile, "in", "i", "", "Path to a parsed resume JSON file (required)")
	validateCmd.Flags().StringVarP(&validateSchemaFile, "schema", "s", "", "Path to a JSON schema (default embedded record schema)")
	_ = validateCmd.MarkFlagRequired("in")

	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, _ []string) error {
	err := validateFile(validateInputFile, validateSchemaFile)
	if err == nil {
		fmt.Fprintf(cmd.OutOrStdout(), "Validation passed: %s\n", validateInputFile)
		return nil
	}

	var validationErr *schemas.ValidationError
	if errors.As(err, &validationErr) {
		fmt.Fprintf(cmd.OutOrStdout(), "Validation failed: %s\n", validateInputFile)
		for _, fe := range validationErr.Errors {
			fmt.Fprintf(cmd.OutOrStdout(), "  - %s: %s\n", fe.Field, fe.Message)
		}
		return fmt.Errorf("%d schema violation(s)", len(validationErr.Errors))
	}
	return err
}

func validateFile(jsonPath, schemaPath string) error {
	if schemaPath == "" {
		return schemas.ValidateRecordFile(jsonPath)
	}

	schema, err := os.ReadFile(schemaPath)
	if err != nil {
		return fmt.Errorf("failed to read schema file: %w", err)
	}
	data, err := os.ReadFile(jsonPath)
	if err != nil {
		return fmt.Errorf("failed to read JSON file: %w", err)
	}
	return schemas.ValidateJSONString(string(schema), string(data))
}
