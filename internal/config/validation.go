package config

import (
	"fmt"
	"strings"
)

// Validate checks config values for life correctness.
// Returns an error if any values are invalid.
func (c *Config) Validate() error {
	var errs []string

	// Server validation
	if c.Server.Name == "" {
		errs = append(errs, "server.name must not be empty")
	}
	if c.Server.Host == "" {
		errs = append(errs, "server.host must not be empty")
	}
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		errs = append(errs, "server.port must be between 0 and 65535")
	}
	if !strings.HasPrefix(c.Server.Path, "/") {
		errs = append(errs, "server.path must start with /")
	}

	// Tools validation
	if c.Tools.MaxCommandOutputSize < 1 {
		errs = append(errs, "tools.max_command_output_size must be >= 1")
	}
	if c.Tools.CommandTimeoutSeconds < 0 {
		errs = append(errs, "tools.command_timeout_seconds must be >= 0")
	}
	if c.Tools.GracefulShutdownMs < 1 {
		errs = append(errs, "tools.graceful_shutdown_ms must be >= 1")
	}

	if c.Actions.DefaultDir == "" {
		errs = append(errs, "actions.default_dir must not be empty")
	}

	// Scan validation
	for _, ext := range c.Scan.Extensions {
		if !strings.HasPrefix(ext, ".") {
			errs = append(errs, fmt.Sprintf("scan.extensions entry %q must start with .", ext))
		}
	}

	// Build validation
	if c.Build.Descriptor == "" {
		errs = append(errs, "build.descriptor must not be empty")
	}
	if len(c.Build.TestCommand) == 0 {
		errs = append(errs, "build.test_command must not be empty")
	}
	if len(c.Build.CoverageCommand) == 0 {
		errs = append(errs, "build.coverage_command must not be empty")
	}
	if c.Build.TestTailLines < 1 {
		errs = append(errs, "build.test_tail_lines must be >= 1")
	}
	if c.Build.CoverageTailLines < 1 {
		errs = append(errs, "build.coverage_tail_lines must be >= 1")
	}

	if c.Scaffold.Package == "" {
		errs = append(errs, "scaffold.package must not be empty")
	}

	// VCS validation
	if c.VCS.Git == "" {
		errs = append(errs, "vcs.git must not be empty")
	}
	if c.VCS.HostingCLI == "" {
		errs = append(errs, "vcs.hosting_cli must not be empty")
	}

	switch c.Log.Format {
	case "console", "json":
	default:
		errs = append(errs, "log.format must be console or json")
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed: %v", errs)
	}

	return nil
}
