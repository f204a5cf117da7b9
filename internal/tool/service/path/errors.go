package path

import (
	"errors"
	"fmt"
)

// -- Error Types --

// WorkspaceRootError is returned when the base directory is invalid.
type WorkspaceRootError struct {
	Root  string
	Cause error
}

func (e *WorkspaceRootError) Error() string {
	return fmt.Sprintf("invalid workspace root %s: %v", e.Root, e.Cause)
}
func (e *WorkspaceRootError) Unwrap() error { return e.Cause }

// OutsideWorkspaceError is returned by a restricted resolver for paths that
// escape the base directory.
type OutsideWorkspaceError struct {
	Path string
	Root string
}

func (e *OutsideWorkspaceError) Error() string {
	return fmt.Sprintf("path %s is outside workspace root %s", e.Path, e.Root)
}
func (e *OutsideWorkspaceError) Is(target error) bool { return target == ErrOutsideWorkspace }
func (e *OutsideWorkspaceError) InvalidInput() bool   { return true }

// -- Sentinels --

var (
	ErrOutsideWorkspace    = errors.New("path is outside workspace root")
	ErrWorkspaceRootNotSet = errors.New("workspace root not set")
	ErrNotADirectory       = errors.New("not a directory")
)
