package mocks

import (
	"fmt"
	iofs "io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"
)

// MockFileInfo implements os.FileInfo
type MockFileInfo struct {
	NameVal  string
	SizeVal  int64
	ModeVal  os.FileMode
	IsDirVal bool
}

func (f *MockFileInfo) Name() string       { return f.NameVal }
func (f *MockFileInfo) Size() int64        { return f.SizeVal }
func (f *MockFileInfo) Mode() os.FileMode  { return f.ModeVal }
func (f *MockFileInfo) ModTime() time.Time { return time.Time{} }
func (f *MockFileInfo) IsDir() bool        { return f.IsDirVal }
func (f *MockFileInfo) Sys() any           { return nil }

// MockFileSystem is an in-memory filesystem for tool tests.
type MockFileSystem struct {
	Mu        sync.RWMutex
	Files     map[string][]byte        // path -> content
	FileInfos map[string]*MockFileInfo // path -> metadata
	Errors    map[string]error         // path -> error to return
	OpErrors  map[string]error         // operation -> error to return
	Writes    []string                 // paths passed to WriteFileAtomic, in order
}

// NewMockFileSystem creates a new mock filesystem
func NewMockFileSystem() *MockFileSystem {
	return &MockFileSystem{
		Files:     make(map[string][]byte),
		FileInfos: make(map[string]*MockFileInfo),
		Errors:    make(map[string]error),
		OpErrors:  make(map[string]error),
	}
}

// SetError sets an error to return for a specific path
func (f *MockFileSystem) SetError(path string, err error) {
	f.Mu.Lock()
	defer f.Mu.Unlock()
	f.Errors[path] = err
}

// SetOperationError sets an error to return for a specific operation.
func (f *MockFileSystem) SetOperationError(operation string, err error) {
	f.Mu.Lock()
	defer f.Mu.Unlock()
	f.OpErrors[operation] = err
}

// CreateFile creates a file with content, along with its parent directories.
func (f *MockFileSystem) CreateFile(path string, content []byte, perm os.FileMode) {
	f.Mu.Lock()
	defer f.Mu.Unlock()
	f.ensureDirsLocked(filepath.Dir(path))
	f.putFileLocked(path, content, perm)
}

// CreateDir creates a directory and its parents.
func (f *MockFileSystem) CreateDir(path string) {
	f.Mu.Lock()
	defer f.Mu.Unlock()
	f.ensureDirsLocked(path)
}

// Content returns the content of path, or "" when it does not exist.
func (f *MockFileSystem) Content(path string) string {
	f.Mu.RLock()
	defer f.Mu.RUnlock()
	return string(f.Files[path])
}

func (f *MockFileSystem) Stat(path string) (os.FileInfo, error) {
	f.Mu.RLock()
	defer f.Mu.RUnlock()

	if err, ok := f.Errors[path]; ok {
		return nil, err
	}
	if info, ok := f.FileInfos[filepath.Clean(path)]; ok {
		return info, nil
	}
	return nil, &os.PathError{Op: "stat", Path: path, Err: os.ErrNotExist}
}

func (f *MockFileSystem) ReadFile(path string) ([]byte, error) {
	f.Mu.RLock()
	defer f.Mu.RUnlock()

	if err, ok := f.OpErrors["ReadFile"]; ok {
		return nil, err
	}
	if err, ok := f.Errors[path]; ok {
		return nil, err
	}
	content, ok := f.Files[filepath.Clean(path)]
	if !ok {
		return nil, &os.PathError{Op: "open", Path: path, Err: os.ErrNotExist}
	}
	return content, nil
}

// WalkDir visits root and its descendants in lexical order, like filepath.WalkDir.
func (f *MockFileSystem) WalkDir(root string, fn iofs.WalkDirFunc) error {
	f.Mu.RLock()
	root = filepath.Clean(root)
	info, ok := f.FileInfos[root]
	f.Mu.RUnlock()

	if !ok {
		return fn(root, nil, &os.PathError{Op: "lstat", Path: root, Err: os.ErrNotExist})
	}
	err := f.walk(root, info, fn)
	if err == iofs.SkipDir || err == iofs.SkipAll {
		return nil
	}
	return err
}

func (f *MockFileSystem) walk(path string, info *MockFileInfo, fn iofs.WalkDirFunc) error {
	entry := iofs.FileInfoToDirEntry(info)

	f.Mu.RLock()
	dirErr := f.Errors[path]
	f.Mu.RUnlock()

	if !info.IsDir() {
		return fn(path, entry, nil)
	}
	if err := fn(path, entry, dirErr); err != nil || dirErr != nil {
		if err == iofs.SkipDir && dirErr == nil {
			return nil
		}
		return err
	}

	for _, child := range f.children(path) {
		f.Mu.RLock()
		childInfo := f.FileInfos[child]
		f.Mu.RUnlock()
		if err := f.walk(child, childInfo, fn); err != nil {
			if err == iofs.SkipDir && childInfo.IsDir() {
				continue
			}
			return err
		}
	}
	return nil
}

func (f *MockFileSystem) children(dir string) []string {
	f.Mu.RLock()
	defer f.Mu.RUnlock()

	var out []string
	for p := range f.FileInfos {
		if p != dir && filepath.Dir(p) == dir {
			out = append(out, p)
		}
	}
	sort.Strings(out)
	return out
}

func (f *MockFileSystem) WriteFileAtomic(path string, content []byte, perm os.FileMode) error {
	f.Mu.Lock()
	defer f.Mu.Unlock()

	if err, ok := f.OpErrors["WriteFileAtomic"]; ok {
		return err
	}
	path = filepath.Clean(path)
	if info, ok := f.FileInfos[filepath.Dir(path)]; !ok || !info.IsDir() {
		return &os.PathError{Op: "createtemp", Path: filepath.Dir(path), Err: os.ErrNotExist}
	}
	f.putFileLocked(path, append([]byte(nil), content...), perm)
	f.Writes = append(f.Writes, path)
	return nil
}

func (f *MockFileSystem) EnsureDirs(path string) error {
	f.Mu.Lock()
	defer f.Mu.Unlock()

	if err, ok := f.OpErrors["EnsureDirs"]; ok {
		return err
	}
	if info, ok := f.FileInfos[filepath.Clean(path)]; ok && !info.IsDir() {
		return fmt.Errorf("mkdir %s: not a directory", path)
	}
	f.ensureDirsLocked(path)
	return nil
}

func (f *MockFileSystem) putFileLocked(path string, content []byte, perm os.FileMode) {
	f.Files[path] = content
	f.FileInfos[path] = &MockFileInfo{
		NameVal: filepath.Base(path),
		SizeVal: int64(len(content)),
		ModeVal: perm,
	}
}

func (f *MockFileSystem) ensureDirsLocked(path string) {
	cleaned := filepath.Clean(path)
	var current string
	if filepath.IsAbs(cleaned) {
		current = string(filepath.Separator)
		f.markDirLocked(current)
	}
	for _, part := range strings.Split(cleaned, string(filepath.Separator)) {
		if part == "" {
			continue
		}
		current = filepath.Join(current, part)
		f.markDirLocked(current)
	}
}

func (f *MockFileSystem) markDirLocked(path string) {
	if _, ok := f.FileInfos[path]; ok {
		return
	}
	f.FileInfos[path] = &MockFileInfo{
		NameVal:  filepath.Base(path),
		ModeVal:  os.ModeDir | 0o755,
		IsDirVal: true,
	}
}
