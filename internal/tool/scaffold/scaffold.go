package scaffold

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/Cyclone1070/devrelay/internal/config"
)

// ScaffoldTestTool writes JUnit test skeletons into a Maven-style test tree.
type ScaffoldTestTool struct {
	fs           fileSystem
	config       *config.Config
	pathResolver pathResolver
}

// NewScaffoldTestTool creates a new ScaffoldTestTool with injected dependencies.
func NewScaffoldTestTool(fs fileSystem, cfg *config.Config, pathResolver pathResolver) *ScaffoldTestTool {
	if fs == nil {
		panic("fs is required")
	}
	if cfg == nil {
		panic("cfg is required")
	}
	if pathResolver == nil {
		panic("pathResolver is required")
	}
	return &ScaffoldTestTool{
		fs:           fs,
		config:       cfg,
		pathResolver: pathResolver,
	}
}

// Run appends the skeleton for req to <dir>/<test root>/<package path>/<Class>Test.java
// unless the exact block is already present. Repeated calls are idempotent.
func (t *ScaffoldTestTool) Run(ctx context.Context, req *ScaffoldTestRequest) (*ScaffoldTestResponse, error) {
	proj, err := t.pathResolver.Abs(req.Dir)
	if err != nil {
		return nil, err
	}

	testDir := filepath.Join(
		proj,
		filepath.FromSlash(t.config.Scaffold.TestRoot),
		filepath.Join(strings.Split(req.Package, ".")...),
	)
	if err := t.fs.EnsureDirs(testDir); err != nil {
		return nil, &WriteError{Path: testDir, Cause: err}
	}
	testFile := filepath.Join(testDir, req.ClassName+"Test.java")

	block, err := RenderSkeleton(req.Package, req.ClassName, req.MethodName)
	if err != nil {
		return nil, err
	}

	perm := os.FileMode(0o644)
	var existing string
	if info, statErr := t.fs.Stat(testFile); statErr == nil {
		data, err := t.fs.ReadFile(testFile)
		if err != nil {
			return nil, &WriteError{Path: testFile, Cause: err}
		}
		existing = string(data)
		perm = info.Mode().Perm()
	} else if !errors.Is(statErr, os.ErrNotExist) {
		return nil, &WriteError{Path: testFile, Cause: statErr}
	}

	if strings.Contains(existing, strings.TrimSpace(block)) {
		return &ScaffoldTestResponse{CreatedOrUpdated: testFile}, nil
	}

	updated := existing
	if updated != "" && !strings.HasSuffix(updated, "\n") {
		updated += "\n"
	}
	updated += block

	if err := t.fs.WriteFileAtomic(testFile, []byte(updated), perm); err != nil {
		return nil, &WriteError{Path: testFile, Cause: err}
	}

	return &ScaffoldTestResponse{CreatedOrUpdated: testFile}, nil
}
