// Package bootstrap implements the dotstrap commands on top of the install
// steps. Each CLI leaf command maps to exactly one method here.
package bootstrap

import (
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/arthur-debert/dotstrap/pkg/config"
	"github.com/arthur-debert/dotstrap/pkg/filesystem"
	"github.com/arthur-debert/dotstrap/pkg/logging"
	"github.com/arthur-debert/dotstrap/pkg/paths"
	"github.com/arthur-debert/dotstrap/pkg/pixi"
	"github.com/arthur-debert/dotstrap/pkg/runner"
	"github.com/arthur-debert/dotstrap/pkg/steps"
	"github.com/arthur-debert/dotstrap/pkg/style"
	"github.com/arthur-debert/dotstrap/pkg/symlinks"
)

// Options wires a Bootstrap. Zero values use the real environment.
type Options struct {
	// RepoRoot overrides repo root discovery
	RepoRoot string

	// Overrides are key=value configuration settings applied last
	Overrides []string

	// SkipEnvConfig ignores DOTSTRAP_* configuration variables
	SkipEnvConfig bool

	Runner   runner.Runner
	FS       filesystem.FS
	Reporter style.Reporter

	// Stdout and Stderr receive child process output when Runner is nil
	Stdout io.Writer
	Stderr io.Writer

	Getenv   func(string) string
	LookPath func(string) (string, error)
	GOOS     string
}

// Bootstrap holds the resolved environment and the step plan
type Bootstrap struct {
	env  *steps.Env
	plan *steps.Plan
}

// New resolves paths, loads configuration and registers the steps
func New(opts Options) (*Bootstrap, error) {
	logger := logging.GetLogger("bootstrap")

	if opts.Getenv == nil {
		opts.Getenv = os.Getenv
	}
	if opts.GOOS == "" {
		opts.GOOS = runtime.GOOS
	}
	if opts.FS == nil {
		opts.FS = filesystem.NewOS()
	}
	if opts.Runner == nil {
		opts.Runner = runner.NewExecRunner(opts.Stdout, opts.Stderr)
	}
	if opts.LookPath == nil {
		opts.LookPath = opts.Runner.LookPath
	}
	if opts.Reporter == nil {
		opts.Reporter = style.NewTerminalReporter(opts.Stdout)
	}

	pathOpts := paths.Options{
		RepoRoot: opts.RepoRoot,
		Getenv:   opts.Getenv,
		LookPath: opts.LookPath,
	}
	p, err := paths.New(pathOpts)
	if err != nil {
		return nil, err
	}
	if p.UsedFallback() {
		logger.Warn().Str("root", p.RepoRoot()).Msg("Repo root not found, using current directory")
	} else {
		logger.Info().Str("root", p.RepoRoot()).Msg("Using repo root")
	}

	overrides, err := config.ParseOverrides(opts.Overrides)
	if err != nil {
		return nil, err
	}
	cfg, err := config.Load(config.LoadOptions{
		RepoRoot:  p.RepoRoot(),
		Overrides: overrides,
		SkipEnv:   opts.SkipEnvConfig,
	})
	if err != nil {
		return nil, err
	}

	// addon names come from config, so resolve again against the same root
	if cfg.RC.StaticAddon != paths.DefaultStaticAddonName || cfg.RC.GeneratedAddon != paths.DefaultGeneratedAddonName {
		pathOpts.RepoRoot = p.RepoRoot()
		pathOpts.StaticAddonName = cfg.RC.StaticAddon
		pathOpts.GeneratedAddonName = cfg.RC.GeneratedAddon
		if p, err = paths.New(pathOpts); err != nil {
			return nil, err
		}
	}

	env := &steps.Env{
		Paths:    p,
		Config:   cfg,
		Runner:   opts.Runner,
		Pixi:     pixi.NewInstaller(p.PixiExe(), p.PixiHome(), cfg.Pixi.InstallURL, opts.Runner, opts.FS),
		FS:       opts.FS,
		Symlinks: symlinks.NewManager(opts.FS, p.RepoConfigHome(), p.UserConfigHome()),
		Reporter: opts.Reporter,
		Getenv:   opts.Getenv,
		GOOS:     opts.GOOS,
		Logger:   logging.GetLogger("steps"),
	}

	return &Bootstrap{env: env, plan: steps.NewPlan()}, nil
}

// Paths returns the resolved paths
func (b *Bootstrap) Paths() paths.Paths {
	return b.env.Paths
}

// Config returns the effective configuration
func (b *Bootstrap) Config() *config.Config {
	return b.env.Config
}

// Plan returns the registered steps
func (b *Bootstrap) Plan() *steps.Plan {
	return b.plan
}

func (b *Bootstrap) reporter() style.Reporter {
	return b.env.Reporter
}

func (b *Bootstrap) infof(format string, args ...interface{}) {
	b.reporter().Info(fmt.Sprintf(format, args...))
}
