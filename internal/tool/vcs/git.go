package vcs

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Cyclone1070/devrelay/internal/config"
	"github.com/Cyclone1070/devrelay/internal/tool/errutil"
	"github.com/Cyclone1070/devrelay/internal/tool/service/executor"
)

// repo runs git in one resolved working directory.
type repo struct {
	fs           fileSystem
	executor     commandExecutor
	config       *config.Config
	pathResolver pathResolver
}

func newRepo(fs fileSystem, exec commandExecutor, cfg *config.Config, pathResolver pathResolver) repo {
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
	return repo{fs: fs, executor: exec, config: cfg, pathResolver: pathResolver}
}

// workdir resolves dir and checks that it exists.
func (r repo) workdir(dir string) (string, error) {
	abs, err := r.pathResolver.Abs(dir)
	if err != nil {
		return "", err
	}
	if _, err := r.fs.Stat(abs); err != nil {
		return "", &errutil.PrecheckError{Message: "path not found: " + abs, Cause: err}
	}
	return abs, nil
}

// run executes a program in dir. A missing program becomes a pre-check
// failure; the returned Execution is uncapped.
func (r repo) run(ctx context.Context, dir string, command ...string) (executor.Execution, error) {
	res, err := r.executor.Run(ctx, command, dir, nil)
	if errors.Is(err, executor.ErrToolNotFound) {
		return executor.Execution{}, &errutil.PrecheckError{
			Message: fmt.Sprintf("%s not found. Install it and ensure '%s' is on PATH.", command[0], command[0]),
			Cause:   err,
		}
	}
	if err != nil && !errors.Is(err, executor.ErrTimeout) {
		return executor.Execution{}, err
	}
	return executor.Normalize(res, 0), nil
}

// git runs git and turns a non-zero exit into a pre-check style {error} payload
// carrying git's own output.
func (r repo) git(ctx context.Context, dir string, args ...string) (string, error) {
	exec, err := r.run(ctx, dir, append([]string{r.config.VCS.Git}, args...)...)
	if err != nil {
		return "", err
	}
	text := exec.Text()
	if exec.ReturnCode != 0 {
		msg := strings.TrimSpace(text)
		if msg == "" {
			msg = fmt.Sprintf("git %s exited with status %d", args[0], exec.ReturnCode)
		}
		return "", errutil.NewPrecheckError(msg)
	}
	return text, nil
}

func (r repo) status(ctx context.Context, dir string) (Snapshot, error) {
	raw, err := r.git(ctx, dir, "status", "--porcelain")
	if err != nil {
		return Snapshot{}, err
	}
	return ParsePorcelain(raw), nil
}

// StatusTool reports the working tree status.
type StatusTool struct {
	repo
}

// NewStatusTool creates a new StatusTool with injected dependencies.
func NewStatusTool(fs fileSystem, exec commandExecutor, cfg *config.Config, pathResolver pathResolver) *StatusTool {
	return &StatusTool{repo: newRepo(fs, exec, cfg, pathResolver)}
}

func (t *StatusTool) Run(ctx context.Context, req *StatusRequest) (*Snapshot, error) {
	dir, err := t.workdir(req.Dir)
	if err != nil {
		return nil, err
	}
	snap, err := t.status(ctx, dir)
	if err != nil {
		return nil, err
	}
	return &snap, nil
}

// StageAllTool stages every change, including deletions and untracked files.
type StageAllTool struct {
	repo
}

// NewStageAllTool creates a new StageAllTool with injected dependencies.
func NewStageAllTool(fs fileSystem, exec commandExecutor, cfg *config.Config, pathResolver pathResolver) *StageAllTool {
	return &StageAllTool{repo: newRepo(fs, exec, cfg, pathResolver)}
}

func (t *StageAllTool) Run(ctx context.Context, req *StageAllRequest) (*StageAllResponse, error) {
	dir, err := t.workdir(req.Dir)
	if err != nil {
		return nil, err
	}
	if _, err := t.git(ctx, dir, "add", "-A"); err != nil {
		return nil, err
	}
	snap, err := t.status(ctx, dir)
	if err != nil {
		return nil, err
	}
	return &StageAllResponse{StagedCount: len(snap.Staged), Staged: snap.Staged}, nil
}

// CommitTool commits the staged changes.
type CommitTool struct {
	repo
}

// NewCommitTool creates a new CommitTool with injected dependencies.
func NewCommitTool(fs fileSystem, exec commandExecutor, cfg *config.Config, pathResolver pathResolver) *CommitTool {
	return &CommitTool{repo: newRepo(fs, exec, cfg, pathResolver)}
}

// Run re-reads the status first; with nothing staged no commit is attempted.
func (t *CommitTool) Run(ctx context.Context, req *CommitRequest) (*CommitResponse, error) {
	dir, err := t.workdir(req.Dir)
	if err != nil {
		return nil, err
	}
	snap, err := t.status(ctx, dir)
	if err != nil {
		return nil, err
	}
	if len(snap.Staged) == 0 {
		return nil, errutil.NewPrecheckError("no staged changes to commit")
	}
	if _, err := t.git(ctx, dir, "commit", "-m", req.Message); err != nil {
		return nil, err
	}
	hash, err := t.git(ctx, dir, "rev-parse", "--short", "HEAD")
	if err != nil {
		return nil, err
	}
	return &CommitResponse{Commit: strings.TrimSpace(hash)}, nil
}

// PushTool pushes to a remote.
type PushTool struct {
	repo
}

// NewPushTool creates a new PushTool with injected dependencies.
func NewPushTool(fs fileSystem, exec commandExecutor, cfg *config.Config, pathResolver pathResolver) *PushTool {
	return &PushTool{repo: newRepo(fs, exec, cfg, pathResolver)}
}

func (t *PushTool) Run(ctx context.Context, req *PushRequest) (*PushResponse, error) {
	dir, err := t.workdir(req.Dir)
	if err != nil {
		return nil, err
	}
	args := []string{"push", req.Remote}
	if req.Branch != "" {
		args = append(args, req.Branch)
	}
	out, err := t.git(ctx, dir, args...)
	if err != nil {
		return nil, err
	}
	return &PushResponse{Result: strings.TrimSpace(out)}, nil
}

// OpenPRTool opens a pull request with the hosting CLI.
type OpenPRTool struct {
	repo
}

// NewOpenPRTool creates a new OpenPRTool with injected dependencies.
func NewOpenPRTool(fs fileSystem, exec commandExecutor, cfg *config.Config, pathResolver pathResolver) *OpenPRTool {
	return &OpenPRTool{repo: newRepo(fs, exec, cfg, pathResolver)}
}

// Run probes the hosting CLI first. When it is missing the caller gets
// install instructions and the head/base pair for opening the PR by hand.
func (t *OpenPRTool) Run(ctx context.Context, req *OpenPRRequest) (*OpenPRResponse, error) {
	dir, err := t.workdir(req.Dir)
	if err != nil {
		return nil, err
	}

	cli := t.config.VCS.HostingCLI
	if !t.executor.Probe(ctx, []string{cli, "--version"}, dir) {
		return nil, &errutil.PrecheckError{
			Message: fmt.Sprintf("GitHub CLI (%s) not installed", cli),
			Extra: map[string]any{
				"how_to_install": t.config.VCS.InstallHint,
				"manual_alternative": map[string]any{
					"head": t.currentBranch(ctx, dir),
					"base": req.Base,
				},
			},
		}
	}

	exec, err := t.run(ctx, dir, cli, "pr", "create", "--base", req.Base, "--title", req.Title, "--body", req.Body)
	if err != nil {
		return nil, err
	}
	out := strings.TrimSpace(exec.Text())
	if exec.ReturnCode != 0 {
		if out == "" {
			out = fmt.Sprintf("%s pr create exited with status %d", cli, exec.ReturnCode)
		}
		return nil, errutil.NewPrecheckError(out)
	}
	return &OpenPRResponse{PR: out}, nil
}

// currentBranch returns the checked-out branch, or "" when it cannot be read.
func (t *OpenPRTool) currentBranch(ctx context.Context, dir string) string {
	out, err := t.git(ctx, dir, "rev-parse", "--abbrev-ref", "HEAD")
	if err != nil {
		return ""
	}
	return strings.TrimSpace(out)
}
