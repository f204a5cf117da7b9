// Package main provides the devrelay command: developer workflow actions
// (source scan, test scaffolding, Maven builds, git and pull requests)
// served over MCP, or invoked once from the shell.
package main

import (
	"fmt"
	"os"

	"github.com/Cyclone1070/devrelay/internal/config"
	"github.com/Cyclone1070/devrelay/internal/logging"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// Version is set at build time via ldflags.
var Version = "dev"

// PortEnv overrides server.port when set.
const PortEnv = "DEVRELAY_PORT"

// app carries what every subcommand needs once the root pre-run has finished.
type app struct {
	configPath string
	verbose    bool

	cfg    *config.Config
	logger *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "devrelay",
		Short: "Developer workflow actions over MCP",
		Long: `devrelay exposes source scanning, JUnit scaffolding, Maven test and coverage
runs, git status/stage/commit/push and pull request creation as MCP tools.

Run "devrelay serve" and point your editor at the printed URL.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.load()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	root.PersistentFlags().StringVar(&a.configPath, "config", "", "config file (default ~/.config/devrelay/config.toml)")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(
		newServeCmd(a),
		newStdioCmd(a),
		newCallCmd(a),
		newActionsCmd(a),
	)
	return root
}

// load reads configuration and builds the logger.
func (a *app) load() error {
	var (
		cfg *config.Config
		err error
	)
	if a.configPath != "" {
		cfg, err = config.NewLoader().LoadFile(a.configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return err
	}
	if err := applyEnv(cfg, os.Getenv); err != nil {
		return err
	}

	logger, err := logging.New(cfg.Log, a.verbose)
	if err != nil {
		return err
	}

	a.cfg = cfg
	a.logger = logger
	return nil
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
