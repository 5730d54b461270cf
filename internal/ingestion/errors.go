package ingestion

import "fmt"

// UnsupportedFormatError is returned for documents whose extension has no decoder
type UnsupportedFormatError struct {
	Filename  string
	Extension string
}

func (e *UnsupportedFormatError) Error() string {
	if e.Extension == "" {
		return fmt.Sprintf("unsupported document format: %s has no extension", e.Filename)
	}
	return fmt.Sprintf("unsupported document format: %s", e.Extension)
}

// DecodeError represents a document that could not be decoded into text
type DecodeError struct {
	Format  string
	Message string
	Cause   error
}

func (e *DecodeError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("failed to decode %s document: %s: %v", e.Format, e.Message, e.Cause)
	}
	return fmt.Sprintf("failed to decode %s document: %s", e.Format, e.Message)
}

func (e *DecodeError) Unwrap() error {
	return e.Cause
}
