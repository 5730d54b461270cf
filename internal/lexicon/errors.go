package lexicon

import "fmt"

// LoadError represents an error reading or decoding a lexicon file
type LoadError struct {
	Message string
	Cause   error
}

func (e *LoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("lexicon load error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("lexicon load error: %s", e.Message)
}

func (e *LoadError) Unwrap() error {
	return e.Cause
}

// ValidationError represents a lexicon that decoded but is not usable
type ValidationError struct {
	Message string
	Cause   error
}

func (e *ValidationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("lexicon validation error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("lexicon validation error: %s", e.Message)
}

func (e *ValidationError) Unwrap() error {
	return e.Cause
}
