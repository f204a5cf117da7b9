package build

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/Cyclone1070/devrelay/internal/config"
	"github.com/Cyclone1070/devrelay/internal/tool/errutil"
	"github.com/Cyclone1070/devrelay/internal/tool/service/executor"
)

// runner holds what run-tests and run-coverage share: the descriptor
// pre-check and the build tool invocation.
type runner struct {
	fs           fileSystem
	executor     commandExecutor
	config       *config.Config
	pathResolver pathResolver
}

func newRunner(fs fileSystem, exec commandExecutor, cfg *config.Config, pathResolver pathResolver) runner {
	if fs == nil {
		panic("fs is required")
	}
	if exec == nil {
		panic("executor is required")
	}
	if cfg == nil {
		panic("cfg is required")
	}
	if pathResolver == nil {
		panic("pathResolver is required")
	}
	return runner{fs: fs, executor: exec, config: cfg, pathResolver: pathResolver}
}

// project resolves dir and checks that it holds the build descriptor.
func (r runner) project(dir string) (string, error) {
	proj, err := r.pathResolver.Abs(dir)
	if err != nil {
		return "", err
	}
	if _, err := r.fs.Stat(filepath.Join(proj, r.config.Build.Descriptor)); err != nil {
		return "", &errutil.PrecheckError{
			Message: fmt.Sprintf("No %s in %s", r.config.Build.Descriptor, proj),
			Cause:   err,
		}
	}
	return proj, nil
}

// build runs command in proj and keeps the last maxLines lines of output.
// A missing build tool is a pre-check failure; a timeout is reported like
// any other failed run.
func (r runner) build(ctx context.Context, command []string, proj string, maxLines int) (executor.Execution, error) {
	res, err := r.executor.Run(ctx, command, proj, nil)
	if errors.Is(err, executor.ErrToolNotFound) {
		return executor.Execution{}, &errutil.PrecheckError{
			Message: toolNotFoundMessage(command[0]),
			Cause:   err,
		}
	}
	if err != nil && !errors.Is(err, executor.ErrTimeout) {
		return executor.Execution{}, err
	}
	return executor.Normalize(res, maxLines), nil
}

func toolNotFoundMessage(program string) string {
	if filepath.Base(program) == "mvn" {
		return fmt.Sprintf("Maven not found. Install Maven and ensure '%s' is on PATH.", program)
	}
	return fmt.Sprintf("%s not found. Install it and ensure '%s' is on PATH.", filepath.Base(program), program)
}

// RunTestsTool runs the project's test goal.
type RunTestsTool struct {
	runner
}

// NewRunTestsTool creates a new RunTestsTool with injected dependencies.
func NewRunTestsTool(fs fileSystem, exec commandExecutor, cfg *config.Config, pathResolver pathResolver) *RunTestsTool {
	return &RunTestsTool{runner: newRunner(fs, exec, cfg, pathResolver)}
}

// Run executes the configured test command in req.Dir. A failing build is a
// normal response with a non-zero return code.
func (t *RunTestsTool) Run(ctx context.Context, req *RunTestsRequest) (*RunTestsResponse, error) {
	proj, err := t.project(req.Dir)
	if err != nil {
		return nil, err
	}

	exec, err := t.build(ctx, t.config.Build.TestCommand, proj, t.config.Build.TestTailLines)
	if err != nil {
		return nil, err
	}

	return &RunTestsResponse{
		ReturnCode: exec.ReturnCode,
		Tail:       exec.Text(),
	}, nil
}

// RunCoverageTool runs the test goal with a coverage report.
type RunCoverageTool struct {
	runner
}

// NewRunCoverageTool creates a new RunCoverageTool with injected dependencies.
func NewRunCoverageTool(fs fileSystem, exec commandExecutor, cfg *config.Config, pathResolver pathResolver) *RunCoverageTool {
	return &RunCoverageTool{runner: newRunner(fs, exec, cfg, pathResolver)}
}

// Run executes the configured coverage command in req.Dir. The report path is
// where the report is expected; its existence is not checked.
func (t *RunCoverageTool) Run(ctx context.Context, req *RunCoverageRequest) (*RunCoverageResponse, error) {
	proj, err := t.project(req.Dir)
	if err != nil {
		return nil, err
	}

	exec, err := t.build(ctx, t.config.Build.CoverageCommand, proj, t.config.Build.CoverageTailLines)
	if err != nil {
		return nil, err
	}

	return &RunCoverageResponse{
		ReturnCode: exec.ReturnCode,
		Report:     filepath.Join(proj, filepath.FromSlash(t.config.Build.CoverageReport)),
		Log:        exec.Text(),
	}, nil
}
