package vcs

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/Cyclone1070/devrelay/internal/config"
	"github.com/Cyclone1070/devrelay/internal/testing/mocks"
	"github.com/Cyclone1070/devrelay/internal/tool"
	"github.com/Cyclone1070/devrelay/internal/tool/service/path"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	fs       *mocks.MockFileSystem
	exec     *mocks.MockCommandExecutor
	cfg      *config.Config
	resolver *path.Resolver
}

func newFixture() *fixture {
	fsys := mocks.NewMockFileSystem()
	fsys.CreateDir("/work/repo")
	return &fixture{
		fs:       fsys,
		exec:     mocks.NewMockCommandExecutor(),
		cfg:      config.DefaultConfig(),
		resolver: path.NewResolver("/work", false),
	}
}

func requirePayload(t *testing.T, err error) map[string]any {
	t.Helper()
	var payloadErr tool.PayloadError
	require.ErrorAs(t, err, &payloadErr)
	return payloadErr.Payload()
}

func TestStatus(t *testing.T) {
	f := newFixture()
	f.exec.On("git status --porcelain", mocks.Response{Output: "M  foo.txt\n M baz.txt\n?? bar.txt\n"})
	status := NewStatusTool(f.fs, f.exec, f.cfg, f.resolver)

	snap, err := status.Run(context.Background(), &StatusRequest{Dir: "repo"})

	require.NoError(t, err)
	assert.Equal(t, []string{"foo.txt"}, snap.Staged)
	assert.Equal(t, []string{"baz.txt"}, snap.Changed)
	assert.Equal(t, []string{"bar.txt"}, snap.Untracked)
	require.Len(t, f.exec.Calls, 1)
	assert.Equal(t, "/work/repo", f.exec.Calls[0].Dir)
}

func TestStatus_CleanTreeMarshalsEmptyLists(t *testing.T) {
	f := newFixture()
	status := NewStatusTool(f.fs, f.exec, f.cfg, f.resolver)

	snap, err := status.Run(context.Background(), &StatusRequest{Dir: "repo"})
	require.NoError(t, err)

	data, err := json.Marshal(snap)
	require.NoError(t, err)
	assert.JSONEq(t, `{"staged":[],"changed":[],"untracked":[],"raw":""}`, string(data))
}

func TestStatus_NotARepository(t *testing.T) {
	f := newFixture()
	f.exec.On("git status --porcelain", mocks.Response{
		Output:   "fatal: not a git repository (or any of the parent directories): .git\n",
		ExitCode: 128,
	})
	status := NewStatusTool(f.fs, f.exec, f.cfg, f.resolver)

	_, err := status.Run(context.Background(), &StatusRequest{Dir: "repo"})

	assert.Equal(t, map[string]any{
		"error": "fatal: not a git repository (or any of the parent directories): .git",
	}, requirePayload(t, err))
}

func TestStatus_MissingDir(t *testing.T) {
	f := newFixture()
	status := NewStatusTool(f.fs, f.exec, f.cfg, f.resolver)

	_, err := status.Run(context.Background(), &StatusRequest{Dir: "nowhere"})

	assert.Equal(t, "path not found: /work/nowhere", requirePayload(t, err)["error"])
	assert.Empty(t, f.exec.Calls)
}

func TestStatus_GitMissing(t *testing.T) {
	f := newFixture()
	f.exec.WithMissing("git")
	status := NewStatusTool(f.fs, f.exec, f.cfg, f.resolver)

	_, err := status.Run(context.Background(), &StatusRequest{Dir: "repo"})

	assert.Equal(t, "git not found. Install it and ensure 'git' is on PATH.", requirePayload(t, err)["error"])
}

func TestStageAll(t *testing.T) {
	f := newFixture()
	f.exec.On("git status --porcelain", mocks.Response{Output: "A  a.txt\nM  b.txt\n"})
	stage := NewStageAllTool(f.fs, f.exec, f.cfg, f.resolver)

	resp, err := stage.Run(context.Background(), &StageAllRequest{Dir: "repo"})

	require.NoError(t, err)
	assert.Equal(t, &StageAllResponse{StagedCount: 2, Staged: []string{"a.txt", "b.txt"}}, resp)
	assert.Equal(t, []string{"git add -A", "git status --porcelain"}, f.exec.Lines())
}

func TestStageAll_AddFails(t *testing.T) {
	f := newFixture()
	f.exec.On("git add -A", mocks.Response{Output: "fatal: Unable to create '.git/index.lock'\n", ExitCode: 128})
	stage := NewStageAllTool(f.fs, f.exec, f.cfg, f.resolver)

	_, err := stage.Run(context.Background(), &StageAllRequest{Dir: "repo"})

	assert.Equal(t, "fatal: Unable to create '.git/index.lock'", requirePayload(t, err)["error"])
	assert.Equal(t, []string{"git add -A"}, f.exec.Lines())
}

func TestCommit(t *testing.T) {
	f := newFixture()
	f.exec.
		On("git status --porcelain", mocks.Response{Output: "M  foo.txt\n"}).
		On("git commit -m fix: handle empty input", mocks.Response{Output: "[main abc1234] fix: handle empty input\n"}).
		On("git rev-parse --short HEAD", mocks.Response{Output: "abc1234\n"})
	commit := NewCommitTool(f.fs, f.exec, f.cfg, f.resolver)

	resp, err := commit.Run(context.Background(), &CommitRequest{Message: "fix: handle empty input", Dir: "repo"})

	require.NoError(t, err)
	assert.Equal(t, "abc1234", resp.Commit)
	require.Len(t, f.exec.Calls, 3)
	assert.Equal(t, []string{"git", "commit", "-m", "fix: handle empty input"}, f.exec.Calls[1].Command)
}

func TestCommit_NothingStagedInvokesNoCommit(t *testing.T) {
	f := newFixture()
	f.exec.On("git status --porcelain", mocks.Response{Output: " M foo.txt\n?? bar.txt\n"})
	commit := NewCommitTool(f.fs, f.exec, f.cfg, f.resolver)

	_, err := commit.Run(context.Background(), &CommitRequest{Message: "wip", Dir: "repo"})

	assert.Equal(t, map[string]any{"error": "no staged changes to commit"}, requirePayload(t, err))
	for _, line := range f.exec.Lines() {
		assert.NotContains(t, line, "commit")
	}
}

func TestCommit_StderrOnlyStatusInvokesNoCommit(t *testing.T) {
	f := newFixture()
	f.exec.On("git status --porcelain", mocks.Response{
		Output: "error: cannot run /nonexistent/hook: No such file or directory\n" +
			"error: cannot run /nonexistent/hook: No such file or directory\n",
	})
	commit := NewCommitTool(f.fs, f.exec, f.cfg, f.resolver)

	_, err := commit.Run(context.Background(), &CommitRequest{Message: "wip", Dir: "repo"})

	assert.Equal(t, map[string]any{"error": "no staged changes to commit"}, requirePayload(t, err))
	assert.Equal(t, []string{"git status --porcelain"}, f.exec.Lines())
}

func TestCommit_CommitFails(t *testing.T) {
	f := newFixture()
	f.exec.
		On("git status --porcelain", mocks.Response{Output: "M  foo.txt\n"}).
		On("git commit*", mocks.Response{Output: "Author identity unknown\n", ExitCode: 128})
	commit := NewCommitTool(f.fs, f.exec, f.cfg, f.resolver)

	_, err := commit.Run(context.Background(), &CommitRequest{Message: "msg", Dir: "repo"})

	assert.Equal(t, "Author identity unknown", requirePayload(t, err)["error"])
	assert.NotContains(t, f.exec.Lines(), "git rev-parse --short HEAD")
}

func TestPush(t *testing.T) {
	tests := []struct {
		name     string
		req      PushRequest
		wantLine string
	}{
		{name: "defaults", req: PushRequest{Dir: "repo"}, wantLine: "git push origin"},
		{name: "explicit branch", req: PushRequest{Remote: "upstream", Branch: "feature", Dir: "repo"}, wantLine: "git push upstream feature"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			f.exec.On("git push*", mocks.Response{Output: "To github.com:o/r.git\n   1..2  main -> main\n"})
			push := NewPushTool(f.fs, f.exec, f.cfg, f.resolver)
			req := tt.req
			require.NoError(t, req.Validate(f.cfg))

			resp, err := push.Run(context.Background(), &req)

			require.NoError(t, err)
			assert.Equal(t, "To github.com:o/r.git\n   1..2  main -> main", resp.Result)
			assert.Equal(t, []string{tt.wantLine}, f.exec.Lines())
		})
	}
}

func TestPush_Rejected(t *testing.T) {
	f := newFixture()
	f.exec.On("git push*", mocks.Response{Output: "! [rejected] main -> main (fetch first)\n", ExitCode: 1})
	push := NewPushTool(f.fs, f.exec, f.cfg, f.resolver)

	_, err := push.Run(context.Background(), &PushRequest{Remote: "origin", Dir: "repo"})

	assert.Equal(t, "! [rejected] main -> main (fetch first)", requirePayload(t, err)["error"])
}

func TestOpenPR(t *testing.T) {
	f := newFixture()
	f.exec.
		On("gh --version", mocks.Response{Output: "gh version 2.40.0\n"}).
		On("gh pr create*", mocks.Response{Output: "https://github.com/o/r/pull/7\n"})
	openPR := NewOpenPRTool(f.fs, f.exec, f.cfg, f.resolver)
	req := &OpenPRRequest{Title: "Add tests", Body: "Generated skeletons", Dir: "repo"}
	require.NoError(t, req.Validate(f.cfg))

	resp, err := openPR.Run(context.Background(), req)

	require.NoError(t, err)
	assert.Equal(t, "https://github.com/o/r/pull/7", resp.PR)
	require.Len(t, f.exec.Calls, 2)
	assert.Equal(t,
		[]string{"gh", "pr", "create", "--base", "main", "--title", "Add tests", "--body", "Generated skeletons"},
		f.exec.Calls[1].Command)
}

func TestOpenPR_CLIMissingFallsBackToManualInstructions(t *testing.T) {
	f := newFixture()
	f.exec.WithMissing("gh").
		On("git rev-parse --abbrev-ref HEAD", mocks.Response{Output: "feature/tests\n"})
	openPR := NewOpenPRTool(f.fs, f.exec, f.cfg, f.resolver)

	_, err := openPR.Run(context.Background(), &OpenPRRequest{Base: "develop", Title: "t", Dir: "repo"})

	assert.Equal(t, map[string]any{
		"error":          "GitHub CLI (gh) not installed",
		"how_to_install": "https://cli.github.com/",
		"manual_alternative": map[string]any{
			"head": "feature/tests",
			"base": "develop",
		},
	}, requirePayload(t, err))
	for _, line := range f.exec.Lines() {
		assert.NotContains(t, line, "pr create")
	}
}

func TestOpenPR_ProbeFailsAndBranchUnknown(t *testing.T) {
	f := newFixture()
	f.exec.
		On("gh --version", mocks.Response{ExitCode: 1}).
		On("git rev-parse --abbrev-ref HEAD", mocks.Response{Output: "fatal: not a git repository\n", ExitCode: 128})
	openPR := NewOpenPRTool(f.fs, f.exec, f.cfg, f.resolver)

	_, err := openPR.Run(context.Background(), &OpenPRRequest{Base: "main", Title: "t", Dir: "repo"})

	manual := requirePayload(t, err)["manual_alternative"].(map[string]any)
	assert.Equal(t, "", manual["head"])
	assert.Equal(t, "main", manual["base"])
}

func TestOpenPR_CreateFails(t *testing.T) {
	f := newFixture()
	f.exec.On("gh pr create*", mocks.Response{Output: "no commits between main and main\n", ExitCode: 1})
	openPR := NewOpenPRTool(f.fs, f.exec, f.cfg, f.resolver)

	_, err := openPR.Run(context.Background(), &OpenPRRequest{Base: "main", Title: "t", Dir: "repo"})

	assert.Equal(t, "no commits between main and main", requirePayload(t, err)["error"])
}

func TestRequestValidation(t *testing.T) {
	cfg := config.DefaultConfig()

	assert.ErrorIs(t, (&CommitRequest{Message: "  "}).Validate(cfg), ErrMessageRequired)
	assert.ErrorIs(t, (&OpenPRRequest{}).Validate(cfg), ErrTitleRequired)

	pr := &OpenPRRequest{Title: "t"}
	require.NoError(t, pr.Validate(cfg))
	assert.Equal(t, "main", pr.Base)
	assert.Equal(t, ".", pr.Dir)

	push := &PushRequest{}
	require.NoError(t, push.Validate(cfg))
	assert.Equal(t, "origin", push.Remote)
}
