package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-analyzer/internal/schemas"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a profile JSON file against the output schema",
	Long:  "Validate a ResumeProfile JSON file against the embedded resume profile schema, or against --schema when given.",
	RunE:  runValidate,
}

var (
	validateJSONFile   string
	validateSchemaFile string
)

func init() {
	validateCmd.Flags().StringVarP(&validateJSONFile, "in", "i", "", "Path to profile JSON file (required)")
	validateCmd.Flags().StringVar(&validateSchemaFile, "schema", "", "Path to an alternative JSON Schema file")

	if err := validateCmd.MarkFlagRequired("in"); err != nil {
		panic(fmt.Sprintf("failed to mark 'in' flag as required: %v", err))
	}

	rootCmd.AddCommand(validateCmd)
}

func runValidate(_ *cobra.Command, _ []string) error {
	if err := validateFile(validateJSONFile, validateSchemaFile); err != nil {
		var validationErr *schemas.ValidationError
		if errors.As(err, &validationErr) {
			_, _ = fmt.Fprintln(os.Stderr, "Validation failed:")
			for _, fe := range validationErr.Errors {
				_, _ = fmt.Fprintf(os.Stderr, "  - %s: %s\n", fe.Field, fe.Message)
			}
			return fmt.Errorf("%s does not match the schema", validateJSONFile)
		}
		return err
	}

	_, _ = fmt.Fprintf(os.Stdout, "Validation passed: %s\n", validateJSONFile)
	return nil
}

// validateFile checks jsonPath against schemaPath, or the embedded profile
// schema when schemaPath is empty
func validateFile(jsonPath, schemaPath string) error {
	if schemaPath != "" {
		resolved := schemas.ResolveSchemaPath(schemaPath)
		if resolved == "" {
			return fmt.Errorf("schema file not found: %s", schemaPath)
		}
		return schemas.ValidateJSON(resolved, jsonPath)
	}

	data, err := os.ReadFile(jsonPath)
	if err != nil {
		return fmt.Errorf("failed to read JSON file: %w", err)
	}
	return schemas.ValidateProfileJSON(data)
}
