package dotstrap

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort        = "Bootstrap a personal shell environment from a dotfiles repo"
	MsgInstallShort     = "Install all packages and update shell-rc file"
	MsgUninstallShort   = "Uninstall all packages and update shell-rc file"
	MsgConfigShort      = "Manipulate user config"
	MsgConfigUpdate     = "Update user config symlinks associated with repo"
	MsgConfigRemove     = "Remove user config symlinks associated with repo"
	MsgConfigShowShort  = "Print the effective dotstrap settings"
	MsgRCShort          = "Manipulate RC file"
	MsgRCGenerateShort  = "Generate RC addon"
	MsgRCShowShort      = "Render the RC addon that would be generated"
	MsgStepsShort       = "List install and uninstall steps in execution order"
	MsgVersionShort     = "Print version information"
	MsgCompletionShort  = "Generate shell completion script"
	MsgNoCommand        = "no command specified"
	MsgStepsHeaderPhase = "PHASE"
	MsgStepsHeaderName  = "STEP"
	MsgStepsHeaderRun   = "RUNS"
	MsgStepsHeaderRC    = "RC"
	MsgStepsHeaderDesc  = "DESCRIPTION"

	// Error hints
	MsgHintSymlinkConflict  = "Move it into the repo config/ directory or out of the way, then run again (see 'dotstrap help layout')"
	MsgHintUnsupportedShell = "Run with --no-guess-shell and source the addon from your RC file yourself"
	MsgHintToolMissing      = "Install it with the system package manager, then run again"

	// Flag descriptions
	MsgFlagVerbose      = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagRepo         = "Dotfiles repo root (default: $DOTSTRAP_ROOT, the git root, or the current directory)"
	MsgFlagSet          = "Override a setting, e.g. --set terminal.default_term=xterm-256color (repeatable)"
	MsgFlagGuessShell   = "Guess shell and add sourcing generated RC-file"
	MsgFlagNoGuessShell = "No guess shell and add sourcing generated RC-file"
	MsgFlagFormat       = "Output format: toml or yaml"
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/install-long.txt
	msgInstallLongRaw string
	MsgInstallLong    = strings.TrimSpace(msgInstallLongRaw)

	//go:embed msgs/uninstall-long.txt
	msgUninstallLongRaw string
	MsgUninstallLong    = strings.TrimSpace(msgUninstallLongRaw)

	//go:embed msgs/rc-generate-long.txt
	msgRCGenerateLongRaw string
	MsgRCGenerateLong    = strings.TrimSpace(msgRCGenerateLongRaw)

	//go:embed msgs/usage-template.txt
	msgUsageTemplateRaw string
	MsgUsageTemplate    = strings.TrimSpace(msgUsageTemplateRaw) + "\n"
)
