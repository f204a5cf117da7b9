package action

import (
	"context"
	"io/fs"
	"os"

	"github.com/Cyclone1070/devrelay/internal/config"
	"github.com/Cyclone1070/devrelay/internal/tool"
	"github.com/Cyclone1070/devrelay/internal/tool/build"
	"github.com/Cyclone1070/devrelay/internal/tool/scaffold"
	"github.com/Cyclone1070/devrelay/internal/tool/scan"
	"github.com/Cyclone1070/devrelay/internal/tool/service/executor"
	"github.com/Cyclone1070/devrelay/internal/tool/vcs"
)

// Canonical action names.
const (
	ScanSources  = "scan-sources"
	ScaffoldTest = "scaffold-test"
	RunTests     = "run-tests"
	RunCoverage  = "run-coverage"
	VCSStatus    = "vcs-status"
	VCSStageAll  = "vcs-stage-all"
	VCSCommit    = "vcs-commit"
	VCSPush      = "vcs-push"
	VCSOpenPR    = "vcs-open-pr"
)

// FileSystem is the filesystem surface every action needs between them.
type FileSystem interface {
	Stat(path string) (os.FileInfo, error)
	ReadFile(path string) ([]byte, error)
	WalkDir(root string, fn fs.WalkDirFunc) error
	EnsureDirs(path string) error
	WriteFileAtomic(path string, content []byte, perm os.FileMode) error
}

// CommandExecutor runs external programs.
type CommandExecutor interface {
	Run(ctx context.Context, command []string, dir string, env []string) (*executor.Result, error)
	Probe(ctx context.Context, command []string, dir string) bool
}

// PathResolver resolves caller-supplied directories.
type PathResolver interface {
	Abs(path string) (string, error)
}

// Services are the concrete collaborators injected into every action.
type Services struct {
	FS       FileSystem
	Executor CommandExecutor
	Resolver PathResolver
}

func dirParam(desc string) *tool.Schema {
	return &tool.Schema{Type: tool.TypeString, Description: desc, Default: "."}
}

func params(required []string, props map[string]*tool.Schema) *tool.Schema {
	return &tool.Schema{Type: tool.TypeObject, Properties: props, Required: required}
}

// Register adds the full action set, with the legacy tool names as aliases
// for the first three.
func Register(d *Dispatcher, cfg *config.Config, svc Services) error {
	scanTool := scan.NewScanSourcesTool(svc.FS, cfg, svc.Resolver)
	scaffoldTool := scaffold.NewScaffoldTestTool(svc.FS, cfg, svc.Resolver)
	testsTool := build.NewRunTestsTool(svc.FS, svc.Executor, cfg, svc.Resolver)
	coverageTool := build.NewRunCoverageTool(svc.FS, svc.Executor, cfg, svc.Resolver)
	statusTool := vcs.NewStatusTool(svc.FS, svc.Executor, cfg, svc.Resolver)
	stageTool := vcs.NewStageAllTool(svc.FS, svc.Executor, cfg, svc.Resolver)
	commitTool := vcs.NewCommitTool(svc.FS, svc.Executor, cfg, svc.Resolver)
	pushTool := vcs.NewPushTool(svc.FS, svc.Executor, cfg, svc.Resolver)
	prTool := vcs.NewOpenPRTool(svc.FS, svc.Executor, cfg, svc.Resolver)

	entries := []struct {
		action  Action
		aliases []string
	}{
		{
			action: NewBaseAdapter(ScanSources,
				"Recursively list method-like signatures in source files under dir. Returns [{file, class, method}]. Best-effort text heuristic, not a parser.",
				params(nil, map[string]*tool.Schema{
					"dir": dirParam("Directory to scan"),
				}),
				cfg, scanTool.Run),
			aliases: []string{"list_java_methods"},
		},
		{
			action: NewBaseAdapter(ScaffoldTest,
				"Create or extend a JUnit 5 test skeleton for class_name.method_name under dir. Returns {created_or_updated}.",
				params([]string{"class_name", "method_name"}, map[string]*tool.Schema{
					"class_name":  {Type: tool.TypeString, Description: "Class under test"},
					"method_name": {Type: tool.TypeString, Description: "Method under test"},
					"dir":         dirParam("Project directory"),
					"package":     {Type: tool.TypeString, Description: "Java package of the test", Default: cfg.Scaffold.Package},
				}),
				cfg, scaffoldTool.Run),
			aliases: []string{"generate_basic_junit"},
		},
		{
			action: NewBaseAdapter(RunTests,
				"Run the project's tests and return {returncode, tail} with the last lines of output.",
				params(nil, map[string]*tool.Schema{
					"dir": dirParam("Project directory containing the build descriptor"),
				}),
				cfg, testsTool.Run),
			aliases: []string{"mvn_test"},
		},
		{
			action: NewBaseAdapter(RunCoverage,
				"Run the tests with a coverage report. Returns {returncode, report, log}.",
				params(nil, map[string]*tool.Schema{
					"dir": dirParam("Project directory containing the build descriptor"),
				}),
				cfg, coverageTool.Run),
		},
		{
			action: NewBaseAdapter(VCSStatus,
				"Return the working tree status as {staged, changed, untracked, raw}.",
				params(nil, map[string]*tool.Schema{
					"dir": dirParam("Repository directory"),
				}),
				cfg, statusTool.Run),
		},
		{
			action: NewBaseAdapter(VCSStageAll,
				"Stage all changes. Returns {staged_count, staged}.",
				params(nil, map[string]*tool.Schema{
					"dir": dirParam("Repository directory"),
				}),
				cfg, stageTool.Run),
		},
		{
			action: NewBaseAdapter(VCSCommit,
				"Commit the staged changes. Returns {commit} with the short hash.",
				params([]string{"message"}, map[string]*tool.Schema{
					"message": {Type: tool.TypeString, Description: "Commit message"},
					"dir":     dirParam("Repository directory"),
				}),
				cfg, commitTool.Run),
		},
		{
			action: NewBaseAdapter(VCSPush,
				"Push to a remote. Returns {result}.",
				params(nil, map[string]*tool.Schema{
					"remote": {Type: tool.TypeString, Description: "Remote name", Default: cfg.VCS.DefaultRemote},
					"branch": {Type: tool.TypeString, Description: "Branch to push; empty pushes the current branch"},
					"dir":    dirParam("Repository directory"),
				}),
				cfg, pushTool.Run),
		},
		{
			action: NewBaseAdapter(VCSOpenPR,
				"Open a pull request with the hosting CLI. Returns {pr}, or manual instructions when the CLI is missing.",
				params([]string{"title"}, map[string]*tool.Schema{
					"base":  {Type: tool.TypeString, Description: "Base branch", Default: cfg.VCS.DefaultBase},
					"title": {Type: tool.TypeString, Description: "Pull request title"},
					"body":  {Type: tool.TypeString, Description: "Pull request body"},
					"dir":   dirParam("Repository directory"),
				}),
				cfg, prTool.Run),
		},
	}

	for _, e := range entries {
		if err := d.Register(e.action, e.aliases...); err != nil {
			return err
		}
	}
	return nil
}
