package scan

import (
	"context"
	"io/fs"
	"path/filepath"
	"slices"

	"github.com/Cyclone1070/devrelay/internal/config"
	"github.com/Cyclone1070/devrelay/internal/tool/service/git"
)

// ScanSourcesTool lists method-like signatures in source files under a directory.
type ScanSourcesTool struct {
	fs           fileSystem
	config       *config.Config
	pathResolver pathResolver
}

// NewScanSourcesTool creates a new ScanSourcesTool with injected dependencies.
func NewScanSourcesTool(fs fileSystem, cfg *config.Config, pathResolver pathResolver) *ScanSourcesTool {
	if fs == nil {
		panic("fs is required")
	}
	if cfg == nil {
		panic("cfg is required")
	}
	if pathResolver == nil {
		panic("pathResolver is required")
	}
	return &ScanSourcesTool{
		fs:           fs,
		config:       cfg,
		pathResolver: pathResolver,
	}
}

// Run walks req.Dir recursively and scans every file with a configured
// extension. A missing directory yields a single error entry, never an error.
func (t *ScanSourcesTool) Run(ctx context.Context, req *ScanSourcesRequest) ([]Entry, error) {
	root, err := t.pathResolver.Abs(req.Dir)
	if err != nil {
		return nil, err
	}

	info, err := t.fs.Stat(root)
	if err != nil {
		return []Entry{{Error: "path not found: " + root}}, nil
	}

	entries := []Entry{}
	if !info.IsDir() {
		return entries, nil
	}

	ignore, err := t.ignoreMatcher(root)
	if err != nil {
		return nil, err
	}

	walkErr := t.fs.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if err != nil {
			// Unreadable subtrees are skipped, matching a lenient recursive glob.
			if d != nil && d.IsDir() && path != root {
				return fs.SkipDir
			}
			return nil
		}
		if path == root {
			return nil
		}

		rel, relErr := filepath.Rel(root, path)
		if relErr == nil && ignore.ShouldIgnore(rel, d.IsDir()) {
			if d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}

		if d.IsDir() || !slices.Contains(t.config.Scan.Extensions, filepath.Ext(path)) {
			return nil
		}

		data, readErr := t.fs.ReadFile(path)
		if readErr != nil {
			return nil
		}
		entries = append(entries, ScanJava(path, string(data))...)
		return nil
	})
	if walkErr != nil {
		return nil, walkErr
	}

	return entries, nil
}

func (t *ScanSourcesTool) ignoreMatcher(root string) (ignoreMatcher, error) {
	if !t.config.Scan.RespectGitignore {
		return &git.NoOpMatcher{}, nil
	}
	return git.NewIgnoreMatcher(root, t.fs)
}
