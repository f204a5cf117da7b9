package scaffold

import (
	"errors"
	"fmt"
)

var (
	ErrClassNameRequired  = errors.New("class_name is required")
	ErrMethodNameRequired = errors.New("method_name is required")
)

// InvalidIdentifierError is returned when a name cannot be used in generated Java source.
type InvalidIdentifierError struct {
	Field string
	Value string
}

func (e *InvalidIdentifierError) Error() string {
	return fmt.Sprintf("%s is not a valid Java identifier: %q", e.Field, e.Value)
}
func (e *InvalidIdentifierError) InvalidInput() bool { return true }

// WriteError is returned when the test file cannot be read, created or updated.
type WriteError struct {
	Path  string
	Cause error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("failed to write test file %s: %v", e.Path, e.Cause)
}
func (e *WriteError) Unwrap() error { return e.Cause }
func (e *WriteError) IOError() bool { return true }
