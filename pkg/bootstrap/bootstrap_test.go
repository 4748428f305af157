package bootstrap

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/arthur-debert/dotstrap/pkg/errors"
	"github.com/arthur-debert/dotstrap/pkg/filesystem"
	"github.com/arthur-debert/dotstrap/pkg/rcfile"
	"github.com/arthur-debert/dotstrap/pkg/style"
	"github.com/arthur-debert/dotstrap/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	te       *testutil.TestEnvironment
	runner   *testutil.FakeRunner
	reporter *style.Recorder
	goos     string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	return &fixture{
		te:       testutil.NewTestEnvironment(t),
		runner:   testutil.NewFakeRunner(),
		reporter: &style.Recorder{},
		goos:     "linux",
	}
}

func (f *fixture) build(t *testing.T, overrides ...string) *Bootstrap {
	t.Helper()
	b, err := New(Options{
		RepoRoot:      f.te.Repo(),
		Overrides:     overrides,
		SkipEnvConfig: true,
		Runner:        f.runner,
		Reporter:      f.reporter,
		Getenv:        f.te.Getenv,
		LookPath:      f.runner.LookPath,
		GOOS:          f.goos,
	})
	require.NoError(t, err)
	return b
}

// withPixi builds a Bootstrap whose pixi executable already exists
func (f *fixture) withPixi(t *testing.T, overrides ...string) *Bootstrap {
	t.Helper()
	b := f.build(t, overrides...)
	exe := b.Paths().PixiExe()
	require.NoError(t, os.MkdirAll(filepath.Dir(exe), 0755))
	require.NoError(t, os.WriteFile(exe, []byte("#!/bin/sh\n"), 0755))
	return b
}

func sourceLineCount(t *testing.T, b *Bootstrap, rc string) int {
	t.Helper()
	n, err := rcfile.CountLine(filesystem.NewOS(), rc, b.SourceLine())
	require.NoError(t, err)
	return n
}

func TestSourceLine(t *testing.T) {
	f := newFixture(t)
	b := f.build(t)
	assert.Equal(t, ". "+filepath.Join(f.te.Repo(), "generated-rc-addon.sh"), b.SourceLine())
}

func TestInstallUninstallMarkerLine(t *testing.T) {
	f := newFixture(t)
	rc := f.te.HomeFile(".bashrc", "export EDITOR=vi\n")
	f.te.RepoFile("config/nvim/init.lua", "-- nvim\n")
	b := f.withPixi(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		require.NoError(t, b.Install(ctx, InstallOptions{GuessShell: true}))
		assert.Equal(t, 1, sourceLineCount(t, b, rc), "after install #%d", i+1)
	}
	assert.Equal(t, "export EDITOR=vi\n"+b.SourceLine()+"\n", testutil.ReadFile(t, rc))
	assert.FileExists(t, b.Paths().GeneratedAddonPath())
	assert.Equal(t, "Installing dotfiles ...", f.reporter.Texts(style.LevelHeading)[0])
	assert.Contains(t, f.reporter.Texts(style.LevelSuccess), "Updated "+rc)

	for i := 0; i < 2; i++ {
		require.NoError(t, b.Uninstall(ctx, UninstallOptions{GuessShell: true}))
		assert.Equal(t, 0, sourceLineCount(t, b, rc), "after uninstall #%d", i+1)
	}
	assert.Equal(t, "export EDITOR=vi\n", testutil.ReadFile(t, rc))
	assert.Contains(t, f.reporter.Texts(style.LevelHeading), "Uninstalling dotfiles ...")

	_, err := os.Lstat(filepath.Join(f.te.Home(), ".config", "nvim"))
	assert.True(t, os.IsNotExist(err), "uninstall removes config symlinks")
}

func TestInstallWithoutShell(t *testing.T) {
	tests := []struct {
		name  string
		shell string
		guess bool
	}{
		{"SHELL unset", "", true},
		{"guessing disabled", "/bin/bash", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.te.Setenv("SHELL", tt.shell)
			rc := f.te.HomeFile(".bashrc", "A\n")
			b := f.withPixi(t)

			require.NoError(t, b.Install(context.Background(), InstallOptions{GuessShell: tt.guess}))

			assert.Contains(t, f.reporter.Texts(style.LevelInfo),
				"Cannot guess RC-file, add "+b.SourceLine()+" to it manually")
			assert.Equal(t, "A\n", testutil.ReadFile(t, rc))
		})
	}
}

func TestUninstallWithoutShellWarns(t *testing.T) {
	f := newFixture(t)
	f.te.Setenv("SHELL", "")
	b := f.build(t)

	require.NoError(t, b.Uninstall(context.Background(), UninstallOptions{GuessShell: true}))
	assert.Contains(t, f.reporter.Texts(style.LevelWarning),
		"Cannot guess RC-file, remove "+b.SourceLine()+" from it manually")
}

func TestInstallUnsupportedShell(t *testing.T) {
	f := newFixture(t)
	f.te.Setenv("SHELL", "/usr/bin/fish")
	b := f.withPixi(t)

	err := b.Install(context.Background(), InstallOptions{GuessShell: true})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrUnsupportedShell))
	assert.FileExists(t, b.Paths().GeneratedAddonPath(), "steps ran before the RC file was resolved")
}

func TestInstallMissingRCFile(t *testing.T) {
	f := newFixture(t)
	b := f.withPixi(t)

	err := b.Install(context.Background(), InstallOptions{GuessShell: true})
	assert.True(t, errors.IsErrorCode(err, errors.ErrFileNotFound))
}

func TestInstallPicksRCFilePerPlatform(t *testing.T) {
	tests := []struct {
		shell string
		goos  string
		rc    string
	}{
		{"/bin/bash", "linux", ".bashrc"},
		{"/bin/bash", "darwin", ".bash_profile"},
		{"/bin/zsh", "darwin", ".zshrc"},
		{"/usr/bin/zsh", "linux", ".zshrc"},
	}

	for _, tt := range tests {
		t.Run(tt.shell+"/"+tt.goos, func(t *testing.T) {
			f := newFixture(t)
			f.goos = tt.goos
			f.te.Setenv("SHELL", tt.shell)
			rc := f.te.HomeFile(tt.rc, "")
			b := f.withPixi(t)

			require.NoError(t, b.Install(context.Background(), InstallOptions{GuessShell: true}))
			assert.Equal(t, b.SourceLine()+"\n", testutil.ReadFile(t, rc))
		})
	}
}

func TestInstallStopsOnFatalStep(t *testing.T) {
	f := newFixture(t)
	rc := f.te.HomeFile(".bashrc", "A\n")
	b := f.build(t) // no pixi, no curl

	err := b.Install(context.Background(), InstallOptions{GuessShell: true})
	assert.True(t, errors.IsErrorCode(err, errors.ErrToolMissing))
	assert.Equal(t, "A\n", testutil.ReadFile(t, rc), "RC file untouched after a failed install")
}

func TestGenerateRC(t *testing.T) {
	f := newFixture(t)
	b := f.build(t)

	path, err := b.GenerateRC(context.Background())
	require.NoError(t, err)
	assert.Equal(t, b.Paths().GeneratedAddonPath(), path)
	assert.Empty(t, f.runner.Commands(), "rc generate runs no install work")

	addon := testutil.ReadFile(t, path)
	assert.Equal(t, b.AddonContent(), addon)

	pathBlock := "export PATH=" + b.Paths().RepoBin() + ":$PATH"
	require.Contains(t, addon, pathBlock)
	assert.Less(t, strings.Index(addon, pathBlock), strings.Index(addon, "command -v"))
	assert.Contains(t, f.reporter.Texts(style.LevelInfo), "Generated "+path)
}

func TestAddonMarkdown(t *testing.T) {
	b := newFixture(t).build(t)
	md := b.AddonMarkdown()
	assert.True(t, strings.HasPrefix(md, "# "+b.Paths().GeneratedAddonPath()+"\n"))
	assert.Contains(t, md, "```sh\n# Generated by dotstrap")
	assert.True(t, strings.HasSuffix(md, "```\n"))
}

func TestConfigCommands(t *testing.T) {
	f := newFixture(t)
	f.te.RepoFile("config/git/config", "[user]\n")
	f.te.RepoFile("config/tmux/tmux.conf", "set -g mouse on\n")
	b := f.build(t)
	ctx := context.Background()
	userConfig := filepath.Join(f.te.Home(), ".config")

	require.NoError(t, b.UpdateConfig(ctx))
	require.NoError(t, b.UpdateConfig(ctx))
	for _, name := range []string{"git", "tmux"} {
		dest, err := os.Readlink(filepath.Join(userConfig, name))
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(f.te.Repo(), "config", name), dest)
	}
	assert.Contains(t, f.reporter.Texts(style.LevelInfo), "Linked 2 config entries into "+userConfig)

	require.NoError(t, b.RemoveConfig(ctx))
	entries, err := os.ReadDir(userConfig)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestUpdateConfigConflict(t *testing.T) {
	f := newFixture(t)
	f.te.RepoFile("config/git/config", "[user]\n")
	real := f.te.HomeFile(".config/git/config", "mine")
	b := f.build(t)

	err := b.UpdateConfig(context.Background())
	assert.True(t, errors.IsErrorCode(err, errors.ErrSymlinkConflict))
	assert.Equal(t, "mine", testutil.ReadFile(t, real))
}

func TestOverrides(t *testing.T) {
	f := newFixture(t)
	f.te.RepoFile("dotstrap.toml", "[terminal]\ndefault_term = \"alacritty\"\n")
	f.te.Setenv("TERM", "")

	b := f.withPixi(t, "rc.generated_addon=my-addon.sh", "packages.goodies=")
	assert.Equal(t, filepath.Join(f.te.Repo(), "my-addon.sh"), b.Paths().GeneratedAddonPath())
	assert.Equal(t, ". "+filepath.Join(f.te.Repo(), "my-addon.sh"), b.SourceLine())
	assert.Contains(t, b.AddonContent(), "export TERM=alacritty\n")

	require.NoError(t, b.Install(context.Background(), InstallOptions{GuessShell: false}))
	assert.FileExists(t, filepath.Join(f.te.Repo(), "my-addon.sh"))
	assert.False(t, f.runner.Ran("ruff"))
}

func TestInvalidOverride(t *testing.T) {
	f := newFixture(t)
	_, err := New(Options{
		RepoRoot:      f.te.Repo(),
		Overrides:     []string{"no-equals-sign"},
		SkipEnvConfig: true,
		Runner:        f.runner,
		Reporter:      f.reporter,
		Getenv:        f.te.Getenv,
	})
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
}

func TestShowConfig(t *testing.T) {
	b := newFixture(t).build(t)

	out, err := b.ShowConfig("yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "default_term: xterm-ghostty")

	out, err = b.ShowConfig("toml")
	require.NoError(t, err)
	assert.Contains(t, out, "default_term = 'xterm-ghostty'")
}

func TestSteps(t *testing.T) {
	b := newFixture(t).build(t)
	infos := b.Steps()

	require.Len(t, infos, 12)
	assert.Equal(t, StepInfo{
		Phase:       "install",
		Name:        "header",
		Description: "Banner at the top of the generated addon",
		WritesRC:    true,
	}, infos[0])
	assert.Equal(t, "rc-addon", infos[10].Name)
	assert.True(t, infos[10].Runs)
	assert.Equal(t, "uninstall", infos[11].Phase)
	assert.Equal(t, "config-symlinks", infos[11].Name)
}
