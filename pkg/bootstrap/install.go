package bootstrap

import (
	"context"
	"fmt"

	"github.com/arthur-debert/dotstrap/pkg/logging"
	"github.com/arthur-debert/dotstrap/pkg/rcfile"
	"github.com/arthur-debert/dotstrap/pkg/shell"
	"github.com/arthur-debert/dotstrap/pkg/steps"
)

// InstallOptions are the options of the install command
type InstallOptions struct {
	// GuessShell adds the source line to the RC file of $SHELL
	GuessShell bool
}

// UninstallOptions are the options of the uninstall command
type UninstallOptions struct {
	// GuessShell removes the source line from the RC file of $SHELL
	GuessShell bool
}

// SourceLine is the line that sources the generated addon
func (b *Bootstrap) SourceLine() string {
	return shell.SourceLine(b.env.Paths.GeneratedAddonPath())
}

// Install runs every install step, then hooks the addon into the shell
func (b *Bootstrap) Install(ctx context.Context, opts InstallOptions) error {
	logger := logging.GetLogger("bootstrap")
	done := logging.LogOperationStart(logger, "install")
	defer done()

	b.reporter().Heading("Installing dotfiles ...")
	logger.Debug().Strs("steps", b.plan.Install.List()).Msg("Install plan")

	if err := steps.RunAll(ctx, b.env, b.plan.Install); err != nil {
		return err
	}

	rc, err := b.shellRC(opts.GuessShell)
	if err != nil {
		return err
	}
	if rc == "" {
		b.infof("Cannot guess RC-file, add %s to it manually", b.SourceLine())
		return nil
	}

	if err := rcfile.EnsureLine(b.env.FS, rc, b.SourceLine()); err != nil {
		return err
	}
	b.reporter().Success(fmt.Sprintf("Updated %s", rc))
	return nil
}

// Uninstall unhooks the addon from the shell, then runs the uninstall steps
func (b *Bootstrap) Uninstall(ctx context.Context, opts UninstallOptions) error {
	logger := logging.GetLogger("bootstrap")
	done := logging.LogOperationStart(logger, "uninstall")
	defer done()

	b.reporter().Heading("Uninstalling dotfiles ...")

	rc, err := b.shellRC(opts.GuessShell)
	if err != nil {
		return err
	}
	if rc == "" {
		b.reporter().Warning(fmt.Sprintf("Cannot guess RC-file, remove %s from it manually", b.SourceLine()))
	} else {
		found, err := rcfile.DropLine(b.env.FS, rc, b.SourceLine())
		if err != nil {
			return err
		}
		logger.Debug().Str("rc", rc).Bool("found", found).Msg("Source line dropped")
		b.reporter().Success(fmt.Sprintf("Updated %s", rc))
	}

	logger.Debug().Strs("steps", b.plan.Uninstall.List()).Msg("Uninstall plan")
	return steps.RunAll(ctx, b.env, b.plan.Uninstall)
}

// shellRC returns "" when guessing is off or $SHELL is unset
func (b *Bootstrap) shellRC(guess bool) (string, error) {
	if !guess {
		return "", nil
	}
	name := shell.GuessName(b.env.Getenv)
	if name == "" {
		return "", nil
	}
	return shell.RCPath(b.env.Paths.HomeDir(), name, b.env.GOOS)
}
