package testutil

import (
	"path/filepath"
	"testing"

	"github.com/arthur-debert/dotstrap/pkg/paths"
	"github.com/stretchr/testify/require"
)

// TestEnvironment is an isolated dotfiles repo plus home directory.
// Nothing is read from the real process environment.
type TestEnvironment struct {
	t       *testing.T
	baseDir string
	repo    string
	home    string
	env     map[string]string
}

// NewTestEnvironment creates a repo with empty bin/ and config/ directories
// and a home directory whose XDG config home is ~/.config.
func NewTestEnvironment(t *testing.T) *TestEnvironment {
	t.Helper()

	baseDir := t.TempDir()
	te := &TestEnvironment{
		t:       t,
		baseDir: baseDir,
		repo:    CreateDir(t, baseDir, "dotfiles"),
		home:    CreateDir(t, baseDir, "home"),
	}
	CreateDir(t, te.repo, paths.BinDir)
	CreateDir(t, te.repo, paths.ConfigDir)

	te.env = map[string]string{
		paths.EnvHome:     te.home,
		paths.EnvRoot:     te.repo,
		paths.EnvPixiHome: filepath.Join(te.home, ".pixi"),
		"SHELL":           "/bin/bash",
		"TERM":            "xterm-256color",
	}
	return te
}

// Repo returns the dotfiles repository root
func (te *TestEnvironment) Repo() string {
	return te.repo
}

// Home returns the test home directory
func (te *TestEnvironment) Home() string {
	return te.home
}

// Setenv sets a variable in the environment seen through Getenv.
// An empty value unsets it.
func (te *TestEnvironment) Setenv(key, value string) {
	if value == "" {
		delete(te.env, key)
		return
	}
	te.env[key] = value
}

// Getenv looks variables up in the test environment only
func (te *TestEnvironment) Getenv(key string) string {
	return te.env[key]
}

// RepoFile writes a file relative to the repo root
func (te *TestEnvironment) RepoFile(rel, content string) string {
	return CreateFile(te.t, te.repo, rel, content)
}

// HomeFile writes a file relative to the home directory
func (te *TestEnvironment) HomeFile(rel, content string) string {
	return CreateFile(te.t, te.home, rel, content)
}

// Paths resolves paths for the environment. PATH lookups always miss,
// so pixi resolves under PIXI_HOME.
func (te *TestEnvironment) Paths() paths.Paths {
	te.t.Helper()
	p, err := paths.New(paths.Options{
		RepoRoot: te.repo,
		Getenv:   te.Getenv,
		LookPath: func(name string) (string, error) {
			return "", &notFoundError{name: name}
		},
	})
	require.NoError(te.t, err)
	return p
}

type notFoundError struct{ name string }

func (e *notFoundError) Error() string {
	return e.name + ": executable file not found in $PATH"
}
