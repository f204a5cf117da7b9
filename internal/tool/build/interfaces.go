package build

import (
	"context"
	"os"

	"github.com/Cyclone1070/devrelay/internal/tool/service/executor"
)

// pathResolver defines path resolution operations.
type pathResolver interface {
	Abs(path string) (string, error)
}

// fileSystem is used only to check for the build descriptor.
type fileSystem interface {
	Stat(path string) (os.FileInfo, error)
}

// commandExecutor runs the build tool.
type commandExecutor interface {
	Run(ctx context.Context, command []string, dir string, env []string) (*executor.Result, error)
}
