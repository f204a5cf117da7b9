package config

// Config holds all application configuration values.
// Defaults are set in DefaultConfig() and can be overridden via dotfile.
// NOTE: Values in the config file override defaults, including explicit zero values.
// Missing keys are left at their default values.
type Config struct {
	Server   ServerConfig   `toml:"server"`
	Tools    ToolsConfig    `toml:"tools"`
	Actions  ActionsConfig  `toml:"actions"`
	Scan     ScanConfig     `toml:"scan"`
	Build    BuildConfig    `toml:"build"`
	Scaffold ScaffoldConfig `toml:"scaffold"`
	VCS      VCSConfig      `toml:"vcs"`
	Log      LogConfig      `toml:"log"`
}

type ServerConfig struct {
	Name string `toml:"name"` // Default: "devrelay"
	Host string `toml:"host"` // Default: "127.0.0.1"
	Port int    `toml:"port"` // Default: 0 (auto-select)
	Path string `toml:"path"` // Default: "/mcp"
}

type ToolsConfig struct {
	// Command Execution
	MaxCommandOutputSize  int64 `toml:"max_command_output_size"`  // Default: 10 * 1024 * 1024 (10MB)
	CommandTimeoutSeconds int   `toml:"command_timeout_seconds"`  // Default: 0 (no timeout)
	GracefulShutdownMs    int   `toml:"graceful_shutdown_ms"`     // Default: 2000

	// Paths
	RestrictToWorkspace bool `toml:"restrict_to_workspace"` // Default: false
}

type ActionsConfig struct {
	DefaultDir string `toml:"default_dir"` // Default: "."
}

type ScanConfig struct {
	Extensions       []string `toml:"extensions"`        // Default: [".java"]
	RespectGitignore bool     `toml:"respect_gitignore"` // Default: false
}

type BuildConfig struct {
	Descriptor        string   `toml:"descriptor"`          // Default: "pom.xml"
	TestCommand       []string `toml:"test_command"`        // Default: mvn -q -e test
	CoverageCommand   []string `toml:"coverage_command"`    // Default: mvn -q -e test jacoco:report
	CoverageReport    string   `toml:"coverage_report"`     // Default: target/site/jacoco/index.html
	TestTailLines     int      `toml:"test_tail_lines"`     // Default: 60
	CoverageTailLines int      `toml:"coverage_tail_lines"` // Default: 50
}

type ScaffoldConfig struct {
	Package  string `toml:"package"`   // Default: "org.example"
	TestRoot string `toml:"test_root"` // Default: "src/test/java"
}

type VCSConfig struct {
	Git           string `toml:"git"`            // Default: "git"
	HostingCLI    string `toml:"hosting_cli"`    // Default: "gh"
	InstallHint   string `toml:"install_hint"`   // Default: "https://cli.github.com/"
	DefaultRemote string `toml:"default_remote"` // Default: "origin"
	DefaultBase   string `toml:"default_base"`   // Default: "main"
}

type LogConfig struct {
	Level  string `toml:"level"`  // Default: "info"
	Format string `toml:"format"` // Default: "console"
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Name: "devrelay",
			Host: "127.0.0.1",
			Port: 0,
			Path: "/mcp",
		},
		Tools: ToolsConfig{
			MaxCommandOutputSize:  10 * 1024 * 1024,
			CommandTimeoutSeconds: 0,
			GracefulShutdownMs:    2000,
		},
		Actions: ActionsConfig{
			DefaultDir: ".",
		},
		Scan: ScanConfig{
			Extensions: []string{".java"},
		},
		Build: BuildConfig{
			Descriptor:        "pom.xml",
			TestCommand:       []string{"mvn", "-q", "-e", "test"},
			CoverageCommand:   []string{"mvn", "-q", "-e", "test", "jacoco:report"},
			CoverageReport:    "target/site/jacoco/index.html",
			TestTailLines:     60,
			CoverageTailLines: 50,
		},
		Scaffold: ScaffoldConfig{
			Package:  "org.example",
			TestRoot: "src/test/java",
		},
		VCS: VCSConfig{
			Git:           "git",
			HostingCLI:    "gh",
			InstallHint:   "https://cli.github.com/",
			DefaultRemote: "origin",
			DefaultBase:   "main",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
	}
}
