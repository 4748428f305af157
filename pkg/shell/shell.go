// Package shell works out which RC file the user's login shell reads and
// the line that sources the generated addon from it.
package shell

import (
	"path/filepath"

	"github.com/arthur-debert/dotstrap/pkg/errors"
)

// Supported shells
const (
	Bash = "bash"
	Zsh  = "zsh"
)

// GuessName returns the basename of $SHELL, or "" when it is unset
func GuessName(getenv func(string) string) string {
	sh := getenv("SHELL")
	if sh == "" {
		return ""
	}
	return filepath.Base(sh)
}

// RCPath returns the RC file for shell under home. Bash on darwin reads
// .bash_profile for login shells, everywhere else .bashrc.
func RCPath(home, shell, goos string) (string, error) {
	switch shell {
	case Bash:
		if goos == "darwin" {
			return filepath.Join(home, ".bash_profile"), nil
		}
		return filepath.Join(home, ".bashrc"), nil
	case Zsh:
		return filepath.Join(home, ".zshrc"), nil
	default:
		return "", errors.Newf(errors.ErrUnsupportedShell, "Unsupported shell: %s", shell).
			WithDetail("shell", shell)
	}
}

// SourceLine is the marker line placed in the RC file
func SourceLine(addonPath string) string {
	return ". " + addonPath
}
