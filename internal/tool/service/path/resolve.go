package path

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Resolver turns caller-supplied paths into absolute paths anchored at a base
// directory (normally the process working directory). When restricted, the
// result must stay inside the base.
type Resolver struct {
	base       string
	restricted bool
}

// NewResolver creates a resolver anchored at base. base should already be
// canonical (see CanonicaliseRoot).
func NewResolver(base string, restricted bool) *Resolver {
	return &Resolver{
		base:       base,
		restricted: restricted,
	}
}

// CanonicaliseRoot canonicalises a root path by making it absolute and resolving symlinks.
// Returns an error if the path doesn't exist or isn't a directory.
func CanonicaliseRoot(root string) (string, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return "", &WorkspaceRootError{Root: root, Cause: err}
	}

	resolved, err := filepath.EvalSymlinks(absRoot)
	if err != nil {
		return "", &WorkspaceRootError{Root: absRoot, Cause: err}
	}

	info, err := os.Stat(resolved)
	if err != nil {
		return "", &WorkspaceRootError{Root: resolved, Cause: err}
	}
	if !info.IsDir() {
		return "", &WorkspaceRootError{Root: resolved, Cause: fmt.Errorf("%w: %s", ErrNotADirectory, resolved)}
	}
	return resolved, nil
}

// Base returns the directory relative paths are resolved against.
func (r *Resolver) Base() string {
	return r.base
}

// Abs resolves path to a clean absolute path. Relative paths are joined to
// the base; an empty path means the base itself.
func (r *Resolver) Abs(path string) (string, error) {
	if r.base == "" {
		return "", ErrWorkspaceRootNotSet
	}

	var abs string
	if filepath.IsAbs(path) {
		abs = filepath.Clean(path)
	} else {
		abs = filepath.Clean(filepath.Join(r.base, path))
	}

	if r.restricted && !within(r.base, abs) {
		return "", &OutsideWorkspaceError{Path: abs, Root: r.base}
	}

	return abs, nil
}

// within reports whether abs is root itself or a child of it.
func within(root, abs string) bool {
	if abs == root {
		return true
	}
	prefix := root
	if !strings.HasSuffix(prefix, string(filepath.Separator)) {
		prefix += string(filepath.Separator)
	}
	return strings.HasPrefix(abs, prefix)
}
