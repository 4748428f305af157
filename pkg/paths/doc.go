// Package paths resolves every location dotstrap reads or writes.
//
// Two roots matter: the repository root (where bin/, config/ and the
// generated RC addon live) and the user's home, from which the config home,
// the pixi home and the tmux plugin manager location are derived.
//
// # Environment Variables
//
//   - DOTSTRAP_ROOT: repository root (default: git toplevel, then cwd)
//   - XDG_CONFIG_HOME: user config home (default: ~/.config)
//   - PIXI_HOME: pixi installation root (default: ~/.pixi)
//   - PIXI_EXE: pixi executable (default: pixi on PATH, then $PIXI_HOME/bin/pixi)
//   - TMUX_PLUGIN_MANAGER_PATH: tpm plugin directory (default: parent of tpm home)
//
// # Usage
//
//	p, err := paths.New(paths.Options{})
//	if err != nil {
//	    return err
//	}
//	addon := p.GeneratedAddonPath() // <repo>/generated-rc-addon.sh
package paths
