package action

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/Cyclone1070/devrelay/internal/config"
	"github.com/Cyclone1070/devrelay/internal/testing/mocks"
	"github.com/Cyclone1070/devrelay/internal/tool/service/path"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRegistered(t *testing.T) (*Dispatcher, *mocks.MockFileSystem, *mocks.MockCommandExecutor) {
	t.Helper()
	fsys := mocks.NewMockFileSystem()
	exec := mocks.NewMockCommandExecutor()
	d := NewDispatcher(nil)
	require.NoError(t, Register(d, config.DefaultConfig(), Services{
		FS:       fsys,
		Executor: exec,
		Resolver: path.NewResolver("/work", false),
	}))
	return d, fsys, exec
}

func toJSON(t *testing.T, v any) string {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	return string(data)
}

func TestRegister_FullActionSet(t *testing.T) {
	d, _, _ := newRegistered(t)

	var names []string
	for _, a := range d.Actions() {
		names = append(names, a.Name())
		assert.NotEmpty(t, a.Description())
		require.NotNil(t, a.Declaration().Parameters)
	}
	assert.Equal(t, []string{
		ScanSources, ScaffoldTest, RunTests, RunCoverage,
		VCSStatus, VCSStageAll, VCSCommit, VCSPush, VCSOpenPR,
	}, names)

	for alias, canonical := range map[string]string{
		"list_java_methods":    ScanSources,
		"generate_basic_junit": ScaffoldTest,
		"mvn_test":             RunTests,
	} {
		a, ok := d.Lookup(alias)
		require.True(t, ok, alias)
		assert.Equal(t, canonical, a.Name())
	}
}

func TestDispatch_ScanMissingDir(t *testing.T) {
	d, _, _ := newRegistered(t)

	got, err := d.Dispatch(context.Background(), "list_java_methods", map[string]any{"dir": "missing"})

	require.NoError(t, err)
	assert.JSONEq(t, `[{"error":"path not found: /work/missing"}]`, toJSON(t, got))
}

func TestDispatch_ScaffoldThenScan(t *testing.T) {
	d, fsys, _ := newRegistered(t)
	fsys.CreateDir("/work/proj")

	got, err := d.Dispatch(context.Background(), ScaffoldTest, map[string]any{
		"class_name": "Calc", "method_name": "add", "dir": "proj",
	})
	require.NoError(t, err)
	assert.JSONEq(t,
		`{"created_or_updated":"/work/proj/src/test/java/org/example/CalcTest.java"}`,
		toJSON(t, got))

	got, err = d.Dispatch(context.Background(), ScanSources, map[string]any{"dir": "proj"})
	require.NoError(t, err)
	assert.JSONEq(t, `[{
		"file": "/work/proj/src/test/java/org/example/CalcTest.java",
		"class": "CalcTest",
		"method": "add_basic"
	}]`, toJSON(t, got))
}

func TestDispatch_ScaffoldMissingArgument(t *testing.T) {
	d, _, _ := newRegistered(t)

	_, err := d.Dispatch(context.Background(), ScaffoldTest, map[string]any{"class_name": "Calc"})

	var argErr *InvalidArgumentsError
	assert.ErrorAs(t, err, &argErr)
}

func TestDispatch_RunTestsWithoutDescriptor(t *testing.T) {
	d, fsys, exec := newRegistered(t)
	fsys.CreateDir("/work/app")

	got, err := d.Dispatch(context.Background(), "mvn_test", map[string]any{"dir": "app"})

	require.NoError(t, err)
	assert.Equal(t, map[string]any{"error": "No pom.xml in /work/app"}, got)
	assert.Empty(t, exec.Calls)
}

func TestDispatch_RunTestsNonZeroExit(t *testing.T) {
	d, fsys, exec := newRegistered(t)
	fsys.CreateFile("/work/app/pom.xml", []byte("<project/>"), 0o644)
	exec.On("mvn -q -e test", mocks.Response{Output: "[ERROR] Tests run: 2, Failures: 1\n", ExitCode: 1})

	got, err := d.Dispatch(context.Background(), RunTests, map[string]any{"dir": "app"})

	require.NoError(t, err)
	assert.JSONEq(t, `{"returncode":1,"tail":"[ERROR] Tests run: 2, Failures: 1"}`, toJSON(t, got))
}

func TestDispatch_CommitNothingStaged(t *testing.T) {
	d, fsys, exec := newRegistered(t)
	fsys.CreateDir("/work/repo")
	exec.On("git status --porcelain", mocks.Response{Output: "?? new.txt\n"})

	got, err := d.Dispatch(context.Background(), VCSCommit, map[string]any{"message": "m", "dir": "repo"})

	require.NoError(t, err)
	assert.Equal(t, map[string]any{"error": "no staged changes to commit"}, got)
	assert.Equal(t, []string{"git status --porcelain"}, exec.Lines())
}
