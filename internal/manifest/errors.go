package manifest

import (
	"fmt"
)

// SyntaxError reports malformed structured metadata. It carries the raw
// offending text so the caller can surface it verbatim.
type SyntaxError struct {
	Raw string
	Err error
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("malformed package metadata: %v\nmetadata was:\n%s", e.Err, e.Raw)
}

func (e *SyntaxError) Unwrap() error {
	return e.Err
}

// MissingFieldError reports the first required field that had no explicit
// value, no caller default, and no successful inference.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("required package field %q could not be resolved", e.Field)
}
