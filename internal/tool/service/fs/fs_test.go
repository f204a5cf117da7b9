package fs

import (
	iofs "io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteFileAtomic(t *testing.T) {
	fsys := NewOSFileSystem()
	dir := t.TempDir()
	path := filepath.Join(dir, "Out.java")

	require.NoError(t, fsys.WriteFileAtomic(path, []byte("first"), 0o644))
	require.NoError(t, fsys.WriteFileAtomic(path, []byte("second"), 0o644))

	got, err := fsys.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "second", string(got))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files must be cleaned up")
}

func TestWriteFileAtomic_MissingDir(t *testing.T) {
	fsys := NewOSFileSystem()
	err := fsys.WriteFileAtomic(filepath.Join(t.TempDir(), "nope", "x.txt"), []byte("x"), 0o644)

	var tempErr *TempFileError
	assert.ErrorAs(t, err, &tempErr)
	assert.True(t, tempErr.IOError())
}

func TestEnsureDirsAndWalk(t *testing.T) {
	fsys := NewOSFileSystem()
	root := t.TempDir()
	nested := filepath.Join(root, "b", "c")
	require.NoError(t, fsys.EnsureDirs(nested))
	require.NoError(t, os.WriteFile(filepath.Join(nested, "z.txt"), nil, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "a.txt"), nil, 0o644))

	var seen []string
	err := fsys.WalkDir(root, func(path string, d iofs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			rel, _ := filepath.Rel(root, path)
			seen = append(seen, filepath.ToSlash(rel))
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, []string{"a.txt", "b/c/z.txt"}, seen)
}
