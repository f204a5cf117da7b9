package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/Cyclone1070/devrelay/internal/action"
	"github.com/Cyclone1070/devrelay/internal/config"
	"github.com/Cyclone1070/devrelay/internal/tool/service/executor"
	"github.com/Cyclone1070/devrelay/internal/tool/service/fs"
	"github.com/Cyclone1070/devrelay/internal/tool/service/path"
	"go.uber.org/zap"
)

// applyEnv applies environment overrides on top of the loaded config.
func applyEnv(cfg *config.Config, getenv func(string) string) error {
	if v := getenv(PortEnv); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil || port < 0 || port > 65535 {
			return fmt.Errorf("invalid %s %q: must be a port number", PortEnv, v)
		}
		cfg.Server.Port = port
	}
	return nil
}

// createDispatcher builds the concrete services and registers every action.
// Caller paths are resolved against workDir.
func createDispatcher(cfg *config.Config, workDir string, logger *zap.Logger) (*action.Dispatcher, error) {
	base, err := path.CanonicaliseRoot(workDir)
	if err != nil {
		return nil, fmt.Errorf("failed to canonicalize working directory: %w", err)
	}

	svc := action.Services{
		FS:       fs.NewOSFileSystem(),
		Executor: executor.NewOSCommandExecutor(cfg),
		Resolver: path.NewResolver(base, cfg.Tools.RestrictToWorkspace),
	}

	d := action.NewDispatcher(logger)
	if err := action.Register(d, cfg, svc); err != nil {
		return nil, err
	}
	return d, nil
}

func (a *app) dispatcher() (*action.Dispatcher, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get working directory: %w", err)
	}
	return createDispatcher(a.cfg, wd, a.logger)
}
