// Package steps defines the install and uninstall steps and runs them in
// registration order.
//
// A step may do work at install time (Run), contribute shell code to the
// generated RC addon (RC), or both. The addon is assembled from the RC
// contributions of every install step in order, so a step that extends PATH
// is always written before the steps whose snippets rely on it.
package steps

import (
	"context"
	"fmt"

	"github.com/arthur-debert/dotstrap/pkg/config"
	"github.com/arthur-debert/dotstrap/pkg/errors"
	"github.com/arthur-debert/dotstrap/pkg/filesystem"
	"github.com/arthur-debert/dotstrap/pkg/logging"
	"github.com/arthur-debert/dotstrap/pkg/paths"
	"github.com/arthur-debert/dotstrap/pkg/pixi"
	"github.com/arthur-debert/dotstrap/pkg/rcaddon"
	"github.com/arthur-debert/dotstrap/pkg/registry"
	"github.com/arthur-debert/dotstrap/pkg/runner"
	"github.com/arthur-debert/dotstrap/pkg/style"
	"github.com/arthur-debert/dotstrap/pkg/symlinks"
	"github.com/rs/zerolog"
)

// Env carries everything a step needs. It is built once per command.
type Env struct {
	Paths    paths.Paths
	Config   *config.Config
	Runner   runner.Runner
	Pixi     *pixi.Installer
	FS       filesystem.FS
	Symlinks *symlinks.Manager
	Reporter style.Reporter

	// Getenv defaults to os.Getenv
	Getenv func(string) string

	// GOOS defaults to runtime.GOOS
	GOOS string

	Logger zerolog.Logger
}

// Status is the outcome of a step that did not fail
type Status string

const (
	StatusOK      Status = "ok"
	StatusWarning Status = "warning"
)

// Result is returned by Run. Warnings are reported and the run continues;
// errors abort it.
type Result struct {
	Status  Status
	Message string
}

// OK is a successful result with an optional message
func OK(msg string) Result {
	return Result{Status: StatusOK, Message: msg}
}

// Warn is a best-effort failure
func Warn(format string, args ...interface{}) Result {
	return Result{Status: StatusWarning, Message: fmt.Sprintf(format, args...)}
}

// Step is one unit of the install or uninstall sequence
type Step struct {
	Name        string
	Description string

	// Run performs the step; nil means RC-only
	Run func(ctx context.Context, env *Env) (Result, error)

	// RC appends the step's shell code to the addon; nil means none
	RC func(env *Env, b *rcaddon.Builder)
}

// RunAll runs every step with a Run function, in registration order.
// The first error stops the sequence.
func RunAll(ctx context.Context, env *Env, reg registry.Registry[Step]) error {
	for _, step := range reg.Items() {
		if step.Run == nil {
			continue
		}
		if err := ctx.Err(); err != nil {
			return errors.Wrapf(err, errors.ErrStepFailed, "interrupted before step %s", step.Name)
		}

		env.Logger.Debug().Str("step", step.Name).Msg("Running step")
		done := logging.LogOperationStart(env.Logger, step.Name)
		result, err := step.Run(ctx, env)
		done()

		if err != nil {
			env.Logger.Error().Err(err).Str("step", step.Name).Msg("Step failed")
			wrapped := errors.Newf(errors.ErrStepFailed, "step %s failed", step.Name).
				WithDetail("step", step.Name)
			wrapped.Wrapped = err
			return wrapped
		}

		switch result.Status {
		case StatusWarning:
			env.Logger.Warn().Str("step", step.Name).Msg(result.Message)
			env.Reporter.Warning(result.Message)
		default:
			if result.Message != "" {
				env.Reporter.Info(result.Message)
			}
		}
	}
	return nil
}

// BuildAddon collects the RC contributions of every step in order
func BuildAddon(env *Env, reg registry.Registry[Step]) *rcaddon.Builder {
	b := rcaddon.New()
	for _, step := range reg.Items() {
		if step.RC == nil {
			continue
		}
		before := b.Len()
		step.RC(env, b)
		if b.Len() > before {
			b.SkipLine()
		}
	}
	return b
}

// WriteAddon builds the addon and writes it to the generated addon path
func WriteAddon(env *Env, reg registry.Registry[Step]) (string, error) {
	path := env.Paths.GeneratedAddonPath()
	if err := BuildAddon(env, reg).WriteFile(env.FS, path); err != nil {
		return "", err
	}
	env.Logger.Info().Str("path", path).Msg("RC addon written")
	return path, nil
}
