package filesystem

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOS(t *testing.T) {
	fs := NewOS()
	assert.NotNil(t, fs)

	tmpDir := t.TempDir()
	testFile := filepath.Join(tmpDir, "test.txt")
	testContent := []byte("hello world")

	require.NoError(t, fs.WriteFile(testFile, testContent, 0644))

	info, err := fs.Stat(testFile)
	require.NoError(t, err)
	assert.Equal(t, "test.txt", info.Name())
	assert.Equal(t, int64(len(testContent)), info.Size())

	content, err := fs.ReadFile(testFile)
	require.NoError(t, err)
	assert.Equal(t, testContent, content)

	require.NoError(t, fs.Chmod(testFile, 0755))
	info, err = fs.Stat(testFile)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0755), info.Mode().Perm())

	subDir := filepath.Join(tmpDir, "sub", "dir")
	require.NoError(t, fs.MkdirAll(subDir, 0755))

	entries, err := fs.ReadDir(tmpDir)
	require.NoError(t, err)
	assert.Len(t, entries, 2) // test.txt and sub/

	renamed := filepath.Join(tmpDir, "renamed.txt")
	require.NoError(t, fs.Rename(testFile, renamed))

	require.NoError(t, fs.Remove(renamed))
	_, err = fs.Stat(renamed)
	assert.True(t, os.IsNotExist(err))
}

func TestSymlinkHelpers(t *testing.T) {
	fs := NewOS()
	tmpDir := t.TempDir()

	target := filepath.Join(tmpDir, "target")
	require.NoError(t, fs.MkdirAll(target, 0755))

	link := filepath.Join(tmpDir, "link")
	require.NoError(t, fs.Symlink(target, link))

	isLink, err := IsSymlink(fs, link)
	require.NoError(t, err)
	assert.True(t, isLink)

	isLink, err = IsSymlink(fs, target)
	require.NoError(t, err)
	assert.False(t, isLink)

	isLink, err = IsSymlink(fs, filepath.Join(tmpDir, "missing"))
	require.NoError(t, err)
	assert.False(t, isLink)

	dest, err := fs.Readlink(link)
	require.NoError(t, err)
	assert.Equal(t, target, dest)

	// A dangling link still exists from Lstat's point of view
	require.NoError(t, os.Remove(target))
	exists, err := Exists(fs, link)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = Exists(fs, filepath.Join(tmpDir, "missing"))
	require.NoError(t, err)
	assert.False(t, exists)
}
