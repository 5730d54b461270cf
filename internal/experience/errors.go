package experience

import "fmt"

// RangeError reports a date range that matched the range pattern but does
// not describe a valid span, such as month 13
type RangeError struct {
	Text    string
	Message string
	Cause   error
}

func (e *RangeError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("date range error: %s: %q: %v", e.Message, e.Text, e.Cause)
	}
	return fmt.Sprintf("date range error: %s: %q", e.Message, e.Text)
}

func (e *RangeError) Unwrap() error {
	return e.Cause
}
