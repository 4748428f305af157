package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// CreateDir creates a directory (and parents) under base and returns its path
func CreateDir(t *testing.T, base, rel string) string {
	t.Helper()
	dir := filepath.Join(base, rel)
	require.NoError(t, os.MkdirAll(dir, 0755))
	return dir
}

// CreateFile writes content to base/rel, creating parent directories
func CreateFile(t *testing.T, base, rel, content string) string {
	t.Helper()
	path := filepath.Join(base, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// ReadFile returns the content of path, failing the test if it is unreadable
func ReadFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

// Chmod changes the mode of path
func Chmod(t *testing.T, path string, mode os.FileMode) {
	t.Helper()
	require.NoError(t, os.Chmod(path, mode))
}
