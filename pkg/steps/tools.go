package steps

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/dotstrap/pkg/paths"
	"github.com/arthur-debert/dotstrap/pkg/rcaddon"
	"github.com/arthur-debert/dotstrap/pkg/runner"
)

func pixiStep() Step {
	return Step{
		Name:        "pixi",
		Description: "Install the pixi package manager",
		Run: func(ctx context.Context, env *Env) (Result, error) {
			existing, err := env.Pixi.Bootstrap(ctx)
			if err != nil {
				return Result{}, err
			}
			if existing {
				return Warn("Existing pixi installation found at %s", env.Pixi.Exe()), nil
			}
			return OK(fmt.Sprintf("Installed pixi into %s", env.Pixi.Home())), nil
		},
		RC: func(env *Env, b *rcaddon.Builder) {
			home := env.Paths.PixiHome()
			b.Writef("export PIXI_HOME=%s", home)
			b.Writef("export PATH=%s:$PATH", filepath.Join(home, "bin"))
		},
	}
}

func terminalStep() Step {
	return Step{
		Name:        "terminal",
		Description: "Export TERM and the pixi terminfo database",
		RC: func(env *Env, b *rcaddon.Builder) {
			term := env.Getenv("TERM")
			if term == "" {
				term = env.Config.Terminal.DefaultTerm
			}

			var dirs []string
			if env.Getenv("TERMINFO_DIRS") != "" {
				dirs = append(dirs, "$TERMINFO_DIRS")
			}
			dirs = append(dirs, env.Paths.PixiHome()+"/envs/ncurses/share/terminfo/")

			b.Writef("export TERM=%s", term)
			b.Writef("export TERMINFO_DIRS=%s", strings.Join(dirs, ":"))
		},
	}
}

func essentialsStep() Step {
	return Step{
		Name:        "essentials",
		Description: "Install everyday command-line tools",
		Run: func(ctx context.Context, env *Env) (Result, error) {
			return installPackages(ctx, env, env.Config.Packages.Essentials)
		},
		RC: func(env *Env, b *rcaddon.Builder) {
			b.Write(`
				if command -v lsd >/dev/null 2>&1; then
				    alias ls='lsd'
				    alias ll='lsd -l'
				    alias la='lsd -la'
				    alias tree='lsd --tree'
				fi

				if command -v bat >/dev/null 2>&1; then
				    alias cat='bat --paging=never --style=plain'
				fi

				if command -v nvim >/dev/null 2>&1; then
				    export EDITOR=nvim
				    export VISUAL=nvim
				    alias vim='nvim'
				fi
			`)
			b.Writef(`
				if [ -n "$BASH_VERSION" ]; then
				    if [ -r "%[1]s" ]; then
				        . "%[1]s"
				    fi
				    command -v zoxide >/dev/null 2>&1 && eval "$(zoxide init bash)"
				    command -v starship >/dev/null 2>&1 && eval "$(starship init bash)"
				elif [ -n "$ZSH_VERSION" ]; then
				    command -v zoxide >/dev/null 2>&1 && eval "$(zoxide init zsh)"
				    command -v starship >/dev/null 2>&1 && eval "$(starship init zsh)"
				fi
			`, bashCompletionScript(env.Paths))
		},
	}
}

func bashCompletionScript(p paths.Paths) string {
	return filepath.Join(p.PixiHome(), "envs", "bash-completion", "share", "bash-completion", "bash_completion")
}

func tmuxStep() Step {
	return Step{
		Name:        "tmux",
		Description: "Install tmux, the tpm plugin manager and its plugins",
		Run: func(ctx context.Context, env *Env) (Result, error) {
			if _, err := installPackages(ctx, env, env.Config.Packages.Tmux); err != nil {
				return Result{}, err
			}

			tpm := env.Paths.TPMHome()
			if info, err := env.FS.Stat(tpm); err != nil || !info.IsDir() {
				err := env.Runner.Run(ctx, runner.Command{
					Name: "git",
					Args: []string{"clone", "-q", env.Config.Tmux.TPMRepo, tpm},
				})
				if err != nil {
					return Result{}, err
				}
			}

			install := runner.Command{
				Name: "bash",
				Args: []string{filepath.Join(tpm, "bin", "install_plugins")},
				Dir:  tpm,
				Env: map[string]string{
					paths.EnvTmuxPluginManagerPath: env.Paths.TmuxPluginManagerPath(),
				},
			}
			if err := env.Runner.Run(ctx, install); err != nil {
				env.Logger.Debug().Err(err).Msg("tpm install_plugins failed")
				return Warn("Tmux plugin installation finished with error, try running %s manually", install.String()), nil
			}
			return OK(""), nil
		},
		RC: func(env *Env, b *rcaddon.Builder) {
			b.Writef("export %s=%s", paths.EnvTmuxPluginManagerPath, env.Paths.TmuxPluginManagerPath())
		},
	}
}

func goodiesStep() Step {
	return Step{
		Name:        "goodies",
		Description: "Install extra developer tools",
		Run: func(ctx context.Context, env *Env) (Result, error) {
			return installPackages(ctx, env, env.Config.Packages.Goodies)
		},
		RC: func(env *Env, b *rcaddon.Builder) {
			b.Write(`
				if command -v ruff >/dev/null 2>&1; then
				    if [ -n "$BASH_VERSION" ]; then
				        eval "$(ruff generate-shell-completion bash)"
				    elif [ -n "$ZSH_VERSION" ]; then
				        eval "$(ruff generate-shell-completion zsh)"
				    fi
				fi
			`)
		},
	}
}

// installPackages treats an empty list as nothing to do, so users can
// disable a step's packages from config
func installPackages(ctx context.Context, env *Env, names []string) (Result, error) {
	if len(names) == 0 {
		return OK(""), nil
	}
	if err := env.Pixi.InstallPackages(ctx, names...); err != nil {
		return Result{}, err
	}
	return OK(""), nil
}
