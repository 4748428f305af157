// pkg/symlinks/symlinks_test.go
// TEST TYPE: Integration Test
// DEPENDENCIES: Real filesystem (t.TempDir)
// PURPOSE: Test config symlink creation, removal and conflict detection

package symlinks

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/dotstrap/pkg/errors"
	"github.com/arthur-debert/dotstrap/pkg/filesystem"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	repoConfig string
	userConfig string
	manager    *Manager
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	base := t.TempDir()

	repoConfig := filepath.Join(base, "repo", "config")
	require.NoError(t, os.MkdirAll(filepath.Join(repoConfig, "nvim"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(repoConfig, "nvim", "init.lua"), []byte("-- nvim\n"), 0644))
	require.NoError(t, os.MkdirAll(filepath.Join(repoConfig, "tmux"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(repoConfig, "starship.toml"), []byte("add_newline = false\n"), 0644))

	userConfig := filepath.Join(base, "home", ".config")

	return &fixture{
		repoConfig: repoConfig,
		userConfig: userConfig,
		manager:    NewManager(filesystem.NewOS(), repoConfig, userConfig),
	}
}

func (f *fixture) target(name string) string {
	return filepath.Join(f.userConfig, name)
}

func assertLinkTo(t *testing.T, link, want string) {
	t.Helper()
	info, err := os.Lstat(link)
	require.NoError(t, err)
	require.NotZero(t, info.Mode()&os.ModeSymlink, "%s should be a symlink", link)

	got, err := os.Readlink(link)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestPairs(t *testing.T) {
	f := newFixture(t)

	pairs, err := f.manager.Pairs()
	require.NoError(t, err)

	assert.Equal(t, []Pair{
		{Source: filepath.Join(f.repoConfig, "nvim"), Target: f.target("nvim")},
		{Source: filepath.Join(f.repoConfig, "starship.toml"), Target: f.target("starship.toml")},
		{Source: filepath.Join(f.repoConfig, "tmux"), Target: f.target("tmux")},
	}, pairs)
}

func TestPairsMissingRepoConfig(t *testing.T) {
	m := NewManager(filesystem.NewOS(), filepath.Join(t.TempDir(), "nope"), t.TempDir())

	_, err := m.Pairs()
	assert.True(t, errors.IsErrorCode(err, errors.ErrFileNotFound))
}

func TestUpdateCreatesLinks(t *testing.T) {
	f := newFixture(t)

	pairs, err := f.manager.Update()
	require.NoError(t, err)
	require.Len(t, pairs, 3)

	for _, pair := range pairs {
		assertLinkTo(t, pair.Target, pair.Source)
	}

	content, err := os.ReadFile(filepath.Join(f.target("nvim"), "init.lua"))
	require.NoError(t, err)
	assert.Equal(t, "-- nvim\n", string(content))
}

func TestUpdateIsIdempotent(t *testing.T) {
	f := newFixture(t)

	_, err := f.manager.Update()
	require.NoError(t, err)
	first, err := os.ReadDir(f.userConfig)
	require.NoError(t, err)

	_, err = f.manager.Update()
	require.NoError(t, err)
	second, err := os.ReadDir(f.userConfig)
	require.NoError(t, err)

	require.Equal(t, len(first), len(second))
	for i := range first {
		assert.Equal(t, first[i].Name(), second[i].Name())
		assertLinkTo(t, f.target(second[i].Name()), filepath.Join(f.repoConfig, second[i].Name()))
	}
}

func TestUpdateReplacesStaleLink(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, os.MkdirAll(f.userConfig, 0755))
	require.NoError(t, os.Symlink("/somewhere/else", f.target("nvim")))

	_, err := f.manager.Update()
	require.NoError(t, err)

	assertLinkTo(t, f.target("nvim"), filepath.Join(f.repoConfig, "nvim"))
}

func TestUpdateRefusesToClobberRealFiles(t *testing.T) {
	tests := []struct {
		name  string
		setup func(t *testing.T, path string)
	}{
		{
			name: "regular file",
			setup: func(t *testing.T, path string) {
				require.NoError(t, os.WriteFile(path, []byte("user data"), 0644))
			},
		},
		{
			name: "real directory",
			setup: func(t *testing.T, path string) {
				require.NoError(t, os.MkdirAll(path, 0755))
				require.NoError(t, os.WriteFile(filepath.Join(path, "keep"), []byte("user data"), 0644))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			require.NoError(t, os.MkdirAll(f.userConfig, 0755))
			tt.setup(t, f.target("tmux"))

			_, err := f.manager.Update()
			require.Error(t, err)
			assert.True(t, errors.IsErrorCode(err, errors.ErrSymlinkConflict))
			assert.Contains(t, err.Error(), "is expected to be a symlink")

			// nothing was linked, the user's data is untouched
			_, err = os.Lstat(f.target("nvim"))
			assert.True(t, os.IsNotExist(err))

			info, err := os.Lstat(f.target("tmux"))
			require.NoError(t, err)
			assert.Zero(t, info.Mode()&os.ModeSymlink)
		})
	}
}

func TestRemoveRoundTrip(t *testing.T) {
	f := newFixture(t)

	_, err := f.manager.Update()
	require.NoError(t, err)

	_, err = f.manager.Remove()
	require.NoError(t, err)

	for _, name := range []string{"nvim", "starship.toml", "tmux"} {
		_, err := os.Lstat(f.target(name))
		assert.True(t, os.IsNotExist(err), "%s should be gone", name)
	}

	// repo items are untouched
	_, err = os.Stat(filepath.Join(f.repoConfig, "nvim", "init.lua"))
	assert.NoError(t, err)
}

func TestRemoveWithoutLinksIsNoop(t *testing.T) {
	f := newFixture(t)

	pairs, err := f.manager.Remove()
	require.NoError(t, err)
	assert.Len(t, pairs, 3)
}

func TestRemoveRefusesRealFiles(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, os.MkdirAll(f.userConfig, 0755))
	require.NoError(t, os.WriteFile(f.target("starship.toml"), []byte("mine"), 0644))

	_, err := f.manager.Remove()
	assert.True(t, errors.IsErrorCode(err, errors.ErrSymlinkConflict))

	content, err := os.ReadFile(f.target("starship.toml"))
	require.NoError(t, err)
	assert.Equal(t, "mine", string(content))
}
