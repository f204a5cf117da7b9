package executor

import (
	"errors"
	"fmt"
)

// CommandError is returned when a command could not be started or waited on
// for a reason other than the program being absent.
type CommandError struct {
	Cmd   string
	Cause error
	Stage string
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("command %s failed at %s: %v", e.Cmd, e.Stage, e.Cause)
}
func (e *CommandError) Unwrap() error { return e.Cause }

// ToolNotFoundError is returned when the named program cannot be found on the
// search path. It is never used for a program that ran and exited non-zero.
type ToolNotFoundError struct {
	Name  string
	Cause error
}

func (e *ToolNotFoundError) Error() string {
	return fmt.Sprintf("%s: executable not found", e.Name)
}
func (e *ToolNotFoundError) Unwrap() error { return e.Cause }
func (e *ToolNotFoundError) Is(target error) bool {
	return target == ErrToolNotFound
}

// -- Sentinels --

var (
	// ErrTimeout is returned when a command exceeds its timeout.
	ErrTimeout = errors.New("command timeout")
	// ErrToolNotFound matches any ToolNotFoundError via errors.Is.
	ErrToolNotFound = errors.New("tool not found")
	// ErrEmptyCommand is returned when Run is called without a program name.
	ErrEmptyCommand = errors.New("command cannot be empty")
)
