package scan

import (
	"io/fs"
	"os"
)

// pathResolver defines path resolution operations.
type pathResolver interface {
	Abs(path string) (string, error)
}

// fileSystem defines the filesystem operations needed by the scanner.
type fileSystem interface {
	Stat(path string) (os.FileInfo, error)
	ReadFile(path string) ([]byte, error)
	WalkDir(root string, fn fs.WalkDirFunc) error
}

// ignoreMatcher decides whether a path relative to the scan root is skipped.
type ignoreMatcher interface {
	ShouldIgnore(relativePath string, isDir bool) bool
}
