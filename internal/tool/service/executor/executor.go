package executor

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"os/exec"
	"time"

	"github.com/Cyclone1070/devrelay/internal/config"
)

// binarySampleSize is the number of leading output bytes inspected for NUL bytes.
const binarySampleSize = 8000

// Result represents the outcome of a command execution.
type Result struct {
	Output    string
	ExitCode  int
	Truncated bool
}

// OSCommandExecutor implements command execution using os/exec for real system commands.
type OSCommandExecutor struct {
	config *config.Config
}

// NewOSCommandExecutor creates a new OSCommandExecutor with injected config.
func NewOSCommandExecutor(cfg *config.Config) *OSCommandExecutor {
	if cfg == nil {
		panic("cfg is required")
	}
	return &OSCommandExecutor{config: cfg}
}

// Run executes a command synchronously in dir with stdout and stderr merged.
// A non-zero exit status is reported through Result.ExitCode with a nil error.
// A program that cannot be found yields a *ToolNotFoundError.
// When tools.command_timeout_seconds is positive the command is bounded by it.
func (f *OSCommandExecutor) Run(ctx context.Context, command []string, dir string, env []string) (*Result, error) {
	timeout := time.Duration(f.config.Tools.CommandTimeoutSeconds) * time.Second
	return f.RunWithTimeout(ctx, command, dir, env, timeout)
}

// RunWithTimeout executes a command with a timeout and graceful shutdown.
// A zero timeout waits for the command indefinitely.
func (f *OSCommandExecutor) RunWithTimeout(ctx context.Context, command []string, dir string, env []string, timeout time.Duration) (*Result, error) {
	if len(command) == 0 {
		return nil, ErrEmptyCommand
	}

	// We don't use CommandContext here because we want to handle graceful shutdown
	cmd := exec.Command(command[0], command[1:]...)
	cmd.Dir = dir
	cmd.Env = env
	cmd.Stdin = nil

	grace := time.Duration(f.config.Tools.GracefulShutdownMs) * time.Millisecond
	cmd.WaitDelay = grace

	// One writer for both streams: os/exec serialises writes when Stdout == Stderr.
	out := newCollector(int(f.config.Tools.MaxCommandOutputSize), binarySampleSize)
	cmd.Stdout = out
	cmd.Stderr = out

	// A missing working directory surfaces as ENOENT from fork/exec, which would
	// otherwise be indistinguishable from a missing program.
	if dir != "" {
		if _, err := os.Stat(dir); err != nil {
			return nil, &CommandError{Cmd: command[0], Cause: err, Stage: "chdir"}
		}
	}

	if err := cmd.Start(); err != nil {
		if isNotFound(err) {
			return nil, &ToolNotFoundError{Name: command[0], Cause: err}
		}
		return nil, &CommandError{Cmd: command[0], Cause: err, Stage: "start"}
	}

	done := make(chan error, 1)
	go func() {
		done <- cmd.Wait()
	}()

	var deadline <-chan time.Time
	if timeout > 0 {
		timer := time.NewTimer(timeout)
		defer timer.Stop()
		deadline = timer.C
	}

	var execErr error
	select {
	case err := <-done:
		execErr = err
	case <-ctx.Done():
		_ = cmd.Process.Kill()
		<-done
		execErr = ctx.Err()
	case <-deadline:
		// Try graceful shutdown
		_ = cmd.Process.Signal(os.Interrupt)
		select {
		case <-done:
		case <-time.After(grace):
			_ = cmd.Process.Kill()
			<-done
		}
		execErr = ErrTimeout
	}

	res := &Result{
		Output:    out.String(),
		Truncated: out.Truncated(),
	}

	if execErr == nil {
		return res, nil
	}

	var exitErr *exec.ExitError
	switch {
	case errors.Is(execErr, ErrTimeout):
		res.ExitCode = -1
		return res, ErrTimeout
	case errors.Is(execErr, context.Canceled), errors.Is(execErr, context.DeadlineExceeded):
		res.ExitCode = -1
		return res, execErr
	case errors.As(execErr, &exitErr):
		res.ExitCode = exitErr.ExitCode()
		return res, nil
	default:
		res.ExitCode = -1
		return res, &CommandError{Cmd: command[0], Cause: execErr, Stage: "wait"}
	}
}

// Probe runs a version-style probe and reports whether the program is
// installed and answered with a zero exit status.
func (f *OSCommandExecutor) Probe(ctx context.Context, command []string, dir string) bool {
	res, err := f.Run(ctx, command, dir, nil)
	return err == nil && res.ExitCode == 0
}

func isNotFound(err error) bool {
	return errors.Is(err, exec.ErrNotFound) || errors.Is(err, fs.ErrNotExist)
}
