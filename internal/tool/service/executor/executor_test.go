package executor

import (
	"context"
	"errors"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/Cyclone1070/devrelay/internal/config"
)

func TestRun(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("Skipping POSIX shell tests on Windows")
	}
	cfg := config.DefaultConfig()
	exec := NewOSCommandExecutor(cfg)

	t.Run("SimpleCommand", func(t *testing.T) {
		res, err := exec.Run(context.Background(), []string{"echo", "hello"}, "", nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if strings.TrimSpace(res.Output) != "hello" {
			t.Errorf("expected output 'hello', got %q", res.Output)
		}
		if res.ExitCode != 0 {
			t.Errorf("expected exit code 0, got %d", res.ExitCode)
		}
	})

	t.Run("EmptyCommand", func(t *testing.T) {
		_, err := exec.Run(context.Background(), []string{}, "", nil)
		if !errors.Is(err, ErrEmptyCommand) {
			t.Errorf("expected ErrEmptyCommand, got %v", err)
		}
	})

	t.Run("NonZeroExitIsNotAnError", func(t *testing.T) {
		res, err := exec.Run(context.Background(), []string{"sh", "-c", "echo failing; exit 3"}, "", nil)
		if err != nil {
			t.Fatalf("non-zero exit must not be an error, got %v", err)
		}
		if res.ExitCode != 3 {
			t.Errorf("expected exit code 3, got %d", res.ExitCode)
		}
		if strings.TrimSpace(res.Output) != "failing" {
			t.Errorf("expected output 'failing', got %q", res.Output)
		}
	})

	t.Run("StdoutAndStderrMerged", func(t *testing.T) {
		res, err := exec.Run(context.Background(), []string{"sh", "-c", "echo out; echo err >&2"}, "", nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(res.Output, "out") || !strings.Contains(res.Output, "err") {
			t.Errorf("expected both streams in output, got %q", res.Output)
		}
	})

	t.Run("WorkingDirectory", func(t *testing.T) {
		dir := t.TempDir()
		res, err := exec.Run(context.Background(), []string{"pwd"}, dir, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want, _ := filepath.EvalSymlinks(dir)
		got, _ := filepath.EvalSymlinks(strings.TrimSpace(res.Output))
		if got != want {
			t.Errorf("expected pwd %q, got %q", want, got)
		}
	})

	t.Run("ToolNotFound", func(t *testing.T) {
		res, err := exec.Run(context.Background(), []string{"devrelay-no-such-tool-xyz", "--version"}, "", nil)
		if !errors.Is(err, ErrToolNotFound) {
			t.Fatalf("expected ErrToolNotFound, got %v", err)
		}
		var notFound *ToolNotFoundError
		if !errors.As(err, &notFound) || notFound.Name != "devrelay-no-such-tool-xyz" {
			t.Errorf("expected ToolNotFoundError naming the program, got %#v", err)
		}
		if res != nil {
			t.Errorf("expected nil result when the tool is missing, got %+v", res)
		}
	})

	t.Run("ToolNotFoundAbsolutePath", func(t *testing.T) {
		missing := filepath.Join(t.TempDir(), "missing-binary")
		_, err := exec.Run(context.Background(), []string{missing}, "", nil)
		if !errors.Is(err, ErrToolNotFound) {
			t.Fatalf("expected ErrToolNotFound, got %v", err)
		}
	})

	t.Run("MissingDirIsNotToolNotFound", func(t *testing.T) {
		missing := filepath.Join(t.TempDir(), "gone")
		_, err := exec.Run(context.Background(), []string{"echo", "hi"}, missing, nil)
		if errors.Is(err, ErrToolNotFound) {
			t.Fatal("missing directory must not be reported as a missing tool")
		}
		var cmdErr *CommandError
		if !errors.As(err, &cmdErr) || cmdErr.Stage != "chdir" {
			t.Errorf("expected CommandError at chdir, got %v", err)
		}
	})

	t.Run("LargeOutputKeepsTail", func(t *testing.T) {
		cfg := config.DefaultConfig()
		cfg.Tools.MaxCommandOutputSize = 10
		exec := NewOSCommandExecutor(cfg)

		res, err := exec.Run(context.Background(), []string{"printf", "123456789012345"}, "", nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !res.Truncated {
			t.Error("expected output to be truncated")
		}
		if res.Output != "6789012345" {
			t.Errorf("expected last 10 bytes, got %q", res.Output)
		}
	})

	t.Run("ContextCancelled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		go func() {
			time.Sleep(100 * time.Millisecond)
			cancel()
		}()
		res, err := exec.Run(ctx, []string{"sleep", "10"}, "", nil)
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("expected context.Canceled, got %v", err)
		}
		if res.ExitCode != -1 {
			t.Errorf("expected exit code -1, got %d", res.ExitCode)
		}
	})
}

func TestRunWithTimeout(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("Skipping timeout test on Windows")
	}
	cfg := config.DefaultConfig()
	cfg.Tools.GracefulShutdownMs = 100
	exec := NewOSCommandExecutor(cfg)

	t.Run("CompletesBeforeTimeout", func(t *testing.T) {
		res, err := exec.RunWithTimeout(context.Background(), []string{"echo", "hi"}, "", nil, 1*time.Second)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if strings.TrimSpace(res.Output) != "hi" {
			t.Errorf("expected output 'hi', got %q", res.Output)
		}
	})

	t.Run("TimeoutKillsProcess", func(t *testing.T) {
		res, err := exec.RunWithTimeout(context.Background(), []string{"sleep", "10"}, "", nil, 100*time.Millisecond)
		if !errors.Is(err, ErrTimeout) {
			t.Errorf("expected ErrTimeout, got %v", err)
		}
		if res == nil || res.ExitCode != -1 {
			t.Errorf("expected exit code -1 on timeout, got %+v", res)
		}
	})

	t.Run("OutputCollectedOnTimeout", func(t *testing.T) {
		cmd := []string{"sh", "-c", "echo starting; sleep 10"}
		res, err := exec.RunWithTimeout(context.Background(), cmd, "", nil, 500*time.Millisecond)
		if !errors.Is(err, ErrTimeout) {
			t.Errorf("expected ErrTimeout, got %v", err)
		}
		if strings.TrimSpace(res.Output) != "starting" {
			t.Errorf("expected output 'starting', got %q", res.Output)
		}
	})

	t.Run("ConfiguredTimeoutAppliesToRun", func(t *testing.T) {
		cfg := config.DefaultConfig()
		cfg.Tools.CommandTimeoutSeconds = 1
		cfg.Tools.GracefulShutdownMs = 100
		exec := NewOSCommandExecutor(cfg)

		_, err := exec.Run(context.Background(), []string{"sleep", "10"}, "", nil)
		if !errors.Is(err, ErrTimeout) {
			t.Errorf("expected ErrTimeout, got %v", err)
		}
	})
}

func TestProbe(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("Skipping POSIX probe test on Windows")
	}
	exec := NewOSCommandExecutor(config.DefaultConfig())

	if !exec.Probe(context.Background(), []string{"true"}, "") {
		t.Error("expected probe of 'true' to succeed")
	}
	if exec.Probe(context.Background(), []string{"false"}, "") {
		t.Error("expected probe of 'false' to fail")
	}
	if exec.Probe(context.Background(), []string{"devrelay-no-such-tool-xyz"}, "") {
		t.Error("expected probe of a missing tool to fail")
	}
}

func TestCollector(t *testing.T) {
	t.Run("UnderLimit", func(t *testing.T) {
		c := newCollector(10, 5)
		n, err := c.Write([]byte("abc"))
		if err != nil || n != 3 {
			t.Errorf("unexpected write result: %v, %d", err, n)
		}
		if c.String() != "abc" || c.Truncated() {
			t.Errorf("unexpected collector state: %q, %v", c.String(), c.Truncated())
		}
	})

	t.Run("OverLimitKeepsTail", func(t *testing.T) {
		c := newCollector(5, 5)
		_, _ = c.Write([]byte("abc"))
		_, _ = c.Write([]byte("def"))
		if c.String() != "bcdef" || !c.Truncated() {
			t.Errorf("unexpected collector state: %q, %v", c.String(), c.Truncated())
		}
	})

	t.Run("BinaryDetection", func(t *testing.T) {
		c := newCollector(10, 5)
		_, _ = c.Write([]byte{'a', 0, 'b'})
		if c.String() != "[Binary Content]" || !c.Truncated() {
			t.Errorf("unexpected collector state: %q, %v", c.String(), c.Truncated())
		}
	})
}
