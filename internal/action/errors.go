package action

import "fmt"

// UnrecognizedActionError is returned when no action is registered under a name.
type UnrecognizedActionError struct {
	Name string
}

func (e *UnrecognizedActionError) Error() string {
	return fmt.Sprintf("unrecognized action: %s", e.Name)
}
func (e *UnrecognizedActionError) InvalidInput() bool { return true }

// InvalidArgumentsError is returned when arguments cannot be decoded into the
// action's request or fail its validation.
type InvalidArgumentsError struct {
	Action string
	Cause  error
}

func (e *InvalidArgumentsError) Error() string {
	return fmt.Sprintf("invalid arguments for %s: %v", e.Action, e.Cause)
}
func (e *InvalidArgumentsError) Unwrap() error      { return e.Cause }
func (e *InvalidArgumentsError) InvalidInput() bool { return true }

// DuplicateActionError is returned when two actions claim the same name or alias.
type DuplicateActionError struct {
	Name string
}

func (e *DuplicateActionError) Error() string {
	return fmt.Sprintf("action %s is already registered", e.Name)
}
