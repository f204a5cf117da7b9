package action

import (
	"context"

	"github.com/Cyclone1070/devrelay/internal/tool"
)

// Action is one named, remotely invocable capability.
type Action interface {
	// Name returns the canonical action name
	Name() string

	// Description returns a human-readable description
	Description() string

	// Declaration returns the name, description and parameter schema
	Declaration() tool.Declaration

	// Execute decodes args, runs the action and returns its JSON-serialisable result
	Execute(ctx context.Context, args map[string]any) (any, error)
}
