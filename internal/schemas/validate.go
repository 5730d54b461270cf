// Package schemas validates resume profiles and other JSON documents against JSON Schema.
package schemas

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"

	profileschema "github.com/jonathan/resume-analyzer/schemas"
)

// searchDepth is how many parent directories ResolveSchemaPath climbs
const searchDepth = 2

// ResolveSchemaPath finds relativePath from the working directory or one of
// its parents, so commands and tests can run from any package directory.
// Returns the absolute path, or "" when the file is nowhere to be found.
func ResolveSchemaPath(relativePath string) string {
	candidate := relativePath
	for range searchDepth + 1 {
		if abs, err := filepath.Abs(candidate); err == nil {
			if _, err := os.Stat(abs); err == nil {
				return abs
			}
		}
		candidate = filepath.Join("..", candidate)
	}
	return ""
}

// ValidationError lists every schema violation of a document
type ValidationError struct {
	Errors []FieldError
}

// FieldError is one violation at a dotted field path, "(root)" for the document itself
type FieldError struct {
	Field   string
	Message string
}

func (ve *ValidationError) Error() string {
	var sb strings.Builder
	sb.WriteString("validation failed:\n")
	for i, fe := range ve.Errors {
		fmt.Fprintf(&sb, "  %d. %s: %s\n", i+1, fe.Field, fe.Message)
	}
	return sb.String()
}

// SchemaLoadError reports a schema or document that could not be loaded at all
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

// profileSchema is the embedded resume profile schema, compiled on first use
var profileSchema = sync.OnceValues(func() (*gojsonschema.Schema, error) {
	return gojsonschema.NewSchema(gojsonschema.NewStringLoader(profileschema.ResumeProfile))
})

// ValidateJSON validates the JSON file at jsonPath against the schema file at schemaPath
func ValidateJSON(schemaPath, jsonPath string) error {
	files := []struct{ label, path string }{{"schema", schemaPath}, {"JSON", jsonPath}}
	for i, f := range files {
		abs, err := filepath.Abs(f.path)
		if err != nil {
			return fmt.Errorf("failed to resolve %s path: %w", f.label, err)
		}
		if _, err := os.Stat(abs); os.IsNotExist(err) {
			return fmt.Errorf("%s file not found: %s", f.label, abs)
		}
		files[i].path = abs
	}

	return validate(files[0].path,
		gojsonschema.NewReferenceLoader("file://"+files[0].path),
		gojsonschema.NewReferenceLoader("file://"+files[1].path))
}

// ValidateJSONString validates JSON content against schema content
func ValidateJSONString(schemaContent, jsonContent string) error {
	return validate("(string schema)",
		gojsonschema.NewStringLoader(schemaContent),
		gojsonschema.NewStringLoader(jsonContent))
}

// ValidateProfile marshals profile and validates it against the embedded
// resume profile schema.
func ValidateProfile(profile any) error {
	data, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("failed to marshal profile: %w", err)
	}
	return ValidateProfileJSON(data)
}

// ValidateProfileJSON validates serialized profile JSON against the embedded schema
func ValidateProfileJSON(data []byte) error {
	schema, err := profileSchema()
	if err != nil {
		return &SchemaLoadError{Path: profileschema.ResumeProfileFile, Message: "embedded schema is invalid", Cause: err}
	}

	result, err := schema.Validate(gojsonschema.NewBytesLoader(data))
	if err != nil {
		return &SchemaLoadError{Path: profileschema.ResumeProfileFile, Message: "document is not valid JSON", Cause: err}
	}
	return toError(result)
}

func validate(schemaName string, schemaLoader, documentLoader gojsonschema.JSONLoader) error {
	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		// an unloadable schema or a document that is not JSON
		return &SchemaLoadError{
			Path:    schemaName,
			Message: "schema validation failed during load",
			Cause:   err,
		}
	}
	return toError(result)
}

// toError converts a failed result into a *ValidationError, nil when valid
func toError(result *gojsonschema.Result) error {
	if result.Valid() {
		return nil
	}

	ve := &ValidationError{Errors: make([]FieldError, 0, len(result.Errors()))}
	for _, desc := range result.Errors() {
		field := desc.Field()
		if field == "" {
			field = "(root)"
		}
		ve.Errors = append(ve.Errors, FieldError{Field: field, Message: desc.Description()})
	}
	return ve
}
