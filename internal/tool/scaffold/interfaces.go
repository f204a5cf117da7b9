package scaffold

import "os"

// pathResolver defines path resolution operations.
type pathResolver interface {
	Abs(path string) (string, error)
}

// fileSystem defines the filesystem operations needed to write test files.
type fileSystem interface {
	Stat(path string) (os.FileInfo, error)
	ReadFile(path string) ([]byte, error)
	EnsureDirs(path string) error
	WriteFileAtomic(path string, content []byte, perm os.FileMode) error
}
