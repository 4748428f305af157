// Package pixi installs the pixi package manager and global packages
// through it.
package pixi

import (
	"context"
	"os"

	"github.com/arthur-debert/dotstrap/pkg/errors"
	"github.com/arthur-debert/dotstrap/pkg/filesystem"
	"github.com/arthur-debert/dotstrap/pkg/logging"
	"github.com/arthur-debert/dotstrap/pkg/runner"
	"github.com/rs/zerolog"
)

// Installer drives a pixi executable that may not exist yet
type Installer struct {
	exe        string
	home       string
	installURL string
	runner     runner.Runner
	fs         filesystem.FS
	logger     zerolog.Logger

	// TempDir receives the downloaded install script; empty means os.TempDir
	TempDir string
}

// NewInstaller creates an installer for the pixi executable at exe, with
// PIXI_HOME set to home when bootstrapping.
func NewInstaller(exe, home, installURL string, r runner.Runner, fs filesystem.FS) *Installer {
	return &Installer{
		exe:        exe,
		home:       home,
		installURL: installURL,
		runner:     r,
		fs:         fs,
		logger:     logging.GetLogger("pixi"),
	}
}

// Exe returns the resolved executable path
func (i *Installer) Exe() string {
	return i.exe
}

// Home returns PIXI_HOME
func (i *Installer) Home() string {
	return i.home
}

// Installed reports whether the executable exists
func (i *Installer) Installed() bool {
	_, err := i.fs.Stat(i.exe)
	return err == nil
}

// Bootstrap downloads and runs the install script unless pixi is already
// present, in which case existing is true and nothing runs.
func (i *Installer) Bootstrap(ctx context.Context) (existing bool, err error) {
	if i.Installed() {
		i.logger.Info().Str("exe", i.exe).Msg("pixi already installed")
		return true, nil
	}

	curl, err := i.runner.LookPath("curl")
	if err != nil {
		return false, errors.New(errors.ErrToolMissing, "Cannot find curl").
			WithDetail("tool", "curl")
	}

	script, err := os.CreateTemp(i.TempDir, "pixi-install-*.sh")
	if err != nil {
		return false, errors.Wrap(err, errors.ErrFileWrite, "failed to create temporary install script")
	}
	scriptPath := script.Name()
	_ = script.Close()
	defer func() {
		_ = os.Remove(scriptPath)
	}()

	done := logging.LogOperationStart(i.logger, "pixi bootstrap")
	defer done()

	if err := i.runner.Run(ctx, runner.Command{
		Name: curl,
		Args: []string{"-fsSL", "--output", scriptPath, i.installURL},
	}); err != nil {
		return false, err
	}

	if err := i.runner.Run(ctx, runner.Command{
		Name: "bash",
		Args: []string{scriptPath},
		Env:  map[string]string{"PIXI_HOME": i.home},
	}); err != nil {
		return false, err
	}

	return false, nil
}

// InstallPackages installs names globally in a single pixi invocation
func (i *Installer) InstallPackages(ctx context.Context, names ...string) error {
	if len(names) == 0 {
		return errors.New(errors.ErrInvalidInput, "no packages to install")
	}
	if !i.Installed() {
		return errors.New(errors.ErrNotInstalled, "pixi was not installed properly").
			WithDetail("exe", i.exe)
	}

	i.logger.Info().Strs("packages", names).Msg("Installing packages")
	return i.runner.Run(ctx, runner.Command{
		Name: i.exe,
		Args: append([]string{"global", "install", "-q"}, names...),
	})
}
