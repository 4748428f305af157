package paths

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/dotstrap/pkg/errors"
	"github.com/rs/zerolog/log"
)

// Environment variable names
const (
	EnvRoot                  = "DOTSTRAP_ROOT"
	EnvHome                  = "HOME"
	EnvXDGConfigHome         = "XDG_CONFIG_HOME"
	EnvPixiHome              = "PIXI_HOME"
	EnvPixiExe               = "PIXI_EXE"
	EnvTmuxPluginManagerPath = "TMUX_PLUGIN_MANAGER_PATH"
)

// Repository layout. These are fixed; file names of the addons can be
// overridden through Options.
const (
	BinDir                    = "bin"
	ConfigDir                 = "config"
	MacOSSetupScript          = "macos/setup"
	DefaultStaticAddonName    = "static-rc-addon.sh"
	DefaultGeneratedAddonName = "generated-rc-addon.sh"

	PixiExeName = "pixi"
)

// Paths provides centralized path management for dotstrap
type Paths interface {
	RepoRoot() string
	UsedFallback() bool
	RepoBin() string
	RepoConfigHome() string
	MacOSSetupScript() string
	StaticAddonPath() string
	GeneratedAddonPath() string
	HomeDir() string
	UserConfigHome() string
	PixiHome() string
	PixiExe() string
	TPMHome() string
	TmuxPluginManagerPath() string
}

// Options controls how paths are resolved. Zero values fall back to the
// process environment and defaults.
type Options struct {
	// RepoRoot is the repository root; empty means auto-detect
	RepoRoot string

	StaticAddonName    string
	GeneratedAddonName string

	// Getenv defaults to os.Getenv
	Getenv func(string) string

	// LookPath defaults to exec.LookPath
	LookPath func(string) (string, error)

	// GitRoot returns the enclosing git toplevel; defaults to
	// "git rev-parse --show-toplevel" in the current directory
	GitRoot func() (string, error)
}

type paths struct {
	repoRoot     string
	usedFallback bool

	staticAddonName    string
	generatedAddonName string

	homeDir        string
	userConfigHome string
	pixiHome       string
	pixiExe        string
	tmuxPluginPath string
}

// New resolves all paths once. The result is immutable.
func New(opts Options) (Paths, error) {
	getenv := opts.Getenv
	if getenv == nil {
		getenv = os.Getenv
	}
	lookPath := opts.LookPath
	if lookPath == nil {
		lookPath = exec.LookPath
	}
	gitRoot := opts.GitRoot
	if gitRoot == nil {
		gitRoot = findGitRoot
	}

	p := &paths{
		staticAddonName:    opts.StaticAddonName,
		generatedAddonName: opts.GeneratedAddonName,
	}
	if p.staticAddonName == "" {
		p.staticAddonName = DefaultStaticAddonName
	}
	if p.generatedAddonName == "" {
		p.generatedAddonName = DefaultGeneratedAddonName
	}

	home, err := homeDir(getenv)
	if err != nil {
		return nil, err
	}
	p.homeDir = home

	root := opts.RepoRoot
	if root == "" {
		root, p.usedFallback, err = findRepoRoot(getenv, gitRoot)
		if err != nil {
			return nil, err
		}
	}
	root, err = filepath.Abs(expandHome(root, home))
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "failed to get absolute path for repo root")
	}
	p.repoRoot = root

	p.userConfigHome = getenv(EnvXDGConfigHome)
	if p.userConfigHome == "" {
		p.userConfigHome = filepath.Join(home, ".config")
	}

	pixiHome := getenv(EnvPixiHome)
	if pixiHome == "" {
		pixiHome = filepath.Join(home, ".pixi")
	}
	p.pixiHome, err = filepath.Abs(expandHome(pixiHome, home))
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "failed to resolve %s", EnvPixiHome)
	}

	p.pixiExe = getenv(EnvPixiExe)
	if p.pixiExe == "" {
		if found, err := lookPath(PixiExeName); err == nil {
			p.pixiExe = found
		} else {
			p.pixiExe = filepath.Join(p.pixiHome, "bin", PixiExeName)
		}
	}

	p.tmuxPluginPath = getenv(EnvTmuxPluginManagerPath)
	if p.tmuxPluginPath == "" {
		p.tmuxPluginPath = filepath.Dir(p.TPMHome())
	}

	log.Debug().
		Str("repoRoot", p.repoRoot).
		Bool("usedFallback", p.usedFallback).
		Str("userConfigHome", p.userConfigHome).
		Str("pixiHome", p.pixiHome).
		Str("pixiExe", p.pixiExe).
		Msg("Paths resolved")

	return p, nil
}

func homeDir(getenv func(string) string) (string, error) {
	if home := getenv(EnvHome); home != "" {
		return home, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(err, errors.ErrNotFound, "cannot determine home directory")
	}
	return home, nil
}

// findRepoRoot determines the repository root using the following priority:
// 1. DOTSTRAP_ROOT environment variable
// 2. Git repository root, which must contain a config/ directory
// 3. Current working directory (fallback)
func findRepoRoot(getenv func(string) string, gitRoot func() (string, error)) (string, bool, error) {
	if root := getenv(EnvRoot); root != "" {
		return root, false, nil
	}

	if root, err := gitRoot(); err == nil {
		if info, err := os.Stat(filepath.Join(root, ConfigDir)); err != nil || !info.IsDir() {
			return "", false, errors.Newf(errors.ErrNotFound,
				"git repository %s has no %s/ directory, pass --repo or set %s", root, ConfigDir, EnvRoot).
				WithDetail("root", root)
		}
		return root, false, nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", false, errors.Wrap(err, errors.ErrFileAccess, "failed to get current directory")
	}
	return cwd, true, nil
}

// findGitRoot attempts to find the root of the current git repository
func findGitRoot() (string, error) {
	output, err := exec.Command("git", "rev-parse", "--show-toplevel").Output()
	if err != nil {
		log.Debug().Err(err).Msg("git root lookup failed")
		return "", err
	}

	gitRoot := strings.TrimSpace(string(output))
	if gitRoot == "" {
		return "", errors.New(errors.ErrNotFound, "git root is empty")
	}
	return gitRoot, nil
}

// expandHome expands a leading ~ to home
func expandHome(path, home string) string {
	if path == "~" {
		return home
	}
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(home, path[2:])
	}
	return path
}

func (p *paths) RepoRoot() string {
	return p.repoRoot
}

// UsedFallback returns true if the current working directory was used as fallback
func (p *paths) UsedFallback() bool {
	return p.usedFallback
}

func (p *paths) RepoBin() string {
	return filepath.Join(p.repoRoot, BinDir)
}

func (p *paths) RepoConfigHome() string {
	return filepath.Join(p.repoRoot, ConfigDir)
}

func (p *paths) MacOSSetupScript() string {
	return filepath.Join(p.repoRoot, filepath.FromSlash(MacOSSetupScript))
}

func (p *paths) StaticAddonPath() string {
	return filepath.Join(p.repoRoot, p.staticAddonName)
}

func (p *paths) GeneratedAddonPath() string {
	return filepath.Join(p.repoRoot, p.generatedAddonName)
}

func (p *paths) HomeDir() string {
	return p.homeDir
}

func (p *paths) UserConfigHome() string {
	return p.userConfigHome
}

func (p *paths) PixiHome() string {
	return p.pixiHome
}

// PixiExe is the resolved pixi executable; it may not exist yet
func (p *paths) PixiExe() string {
	return p.pixiExe
}

func (p *paths) TPMHome() string {
	return filepath.Join(p.homeDir, ".tmux", "plugins", "tpm")
}

func (p *paths) TmuxPluginManagerPath() string {
	return p.tmuxPluginPath
}
