package steps

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/arthur-debert/dotstrap/pkg/errors"
	"github.com/arthur-debert/dotstrap/pkg/rcaddon"
	"github.com/arthur-debert/dotstrap/pkg/registry"
	"github.com/arthur-debert/dotstrap/pkg/runner"
)

const executableBits = 0111

func headerStep() Step {
	return Step{
		Name:        "header",
		Description: "Banner at the top of the generated addon",
		RC: func(env *Env, b *rcaddon.Builder) {
			b.Write(`
				# Generated by dotstrap. Do not edit: changes are lost on the next
				# "dotstrap install" or "dotstrap rc generate".
			`)
		},
	}
}

func repoBinStep() Step {
	return Step{
		Name:        "repo-bin",
		Description: "Make repo bin/ executable and put it on PATH",
		Run: func(ctx context.Context, env *Env) (Result, error) {
			dir := env.Paths.RepoBin()
			entries, err := env.FS.ReadDir(dir)
			if err != nil {
				if os.IsNotExist(err) {
					env.Logger.Debug().Str("dir", dir).Msg("No bin directory")
					return OK(""), nil
				}
				return Result{}, errors.Wrapf(err, errors.ErrFileAccess, "failed to read %s", dir)
			}

			for _, entry := range entries {
				path := filepath.Join(dir, entry.Name())
				info, err := env.FS.Stat(path)
				if err != nil {
					return Result{}, errors.Wrapf(err, errors.ErrFileAccess, "failed to inspect %s", path)
				}
				if err := env.FS.Chmod(path, info.Mode().Perm()|executableBits); err != nil {
					return Result{}, errors.Wrapf(err, errors.ErrFileAccess, "failed to chmod %s", path)
				}
			}
			env.Logger.Debug().Int("count", len(entries)).Msg("bin entries made executable")
			return OK(""), nil
		},
		RC: func(env *Env, b *rcaddon.Builder) {
			b.Writef("export PATH=%s:$PATH", env.Paths.RepoBin())
		},
	}
}

func macOSStep() Step {
	return Step{
		Name:        "macos",
		Description: "Run macos/setup on Darwin",
		Run: func(ctx context.Context, env *Env) (Result, error) {
			if env.GOOS != "darwin" {
				return OK(""), nil
			}

			script := env.Paths.MacOSSetupScript()
			if _, err := env.FS.Stat(script); err != nil {
				env.Logger.Debug().Str("script", script).Msg("No macOS setup script")
				return OK(""), nil
			}

			err := env.Runner.Run(ctx, runner.Command{
				Name: "bash",
				Args: []string{script},
				Dir:  env.Paths.RepoRoot(),
			})
			if err != nil {
				return Result{}, err
			}
			return OK(""), nil
		},
	}
}

func configSymlinksStep() Step {
	return Step{
		Name:        "config-symlinks",
		Description: "Link repo config/ entries into the user config home",
		Run: func(ctx context.Context, env *Env) (Result, error) {
			pairs, err := env.Symlinks.Update()
			if err != nil {
				return Result{}, err
			}
			env.Logger.Info().Int("count", len(pairs)).Msg("Config symlinks updated")
			return OK(""), nil
		},
	}
}

func removeConfigSymlinksStep() Step {
	return Step{
		Name:        "config-symlinks",
		Description: "Remove links to repo config/ entries from the user config home",
		Run: func(ctx context.Context, env *Env) (Result, error) {
			pairs, err := env.Symlinks.Remove()
			if err != nil {
				return Result{}, err
			}
			env.Logger.Info().Int("count", len(pairs)).Msg("Config symlinks removed")
			return OK(""), nil
		},
	}
}

func staticAddonStep() Step {
	return Step{
		Name:        "static-addon",
		Description: "Append the hand-written static RC addon",
		RC: func(env *Env, b *rcaddon.Builder) {
			path := env.Paths.StaticAddonPath()
			data, err := env.FS.ReadFile(path)
			if err != nil {
				if !os.IsNotExist(err) {
					env.Logger.Warn().Err(err).Str("path", path).Msg("Cannot read static addon")
				}
				return
			}
			if len(data) == 0 {
				return
			}
			b.Writef("# %s", filepath.Base(path))
			b.WriteRaw(string(data))
		},
	}
}

func rcAddonStep(install registry.Registry[Step]) Step {
	return Step{
		Name:        "rc-addon",
		Description: "Write the generated RC addon",
		Run: func(ctx context.Context, env *Env) (Result, error) {
			path, err := WriteAddon(env, install)
			if err != nil {
				return Result{}, err
			}
			return OK(fmt.Sprintf("Generated %s", path)), nil
		},
	}
}
