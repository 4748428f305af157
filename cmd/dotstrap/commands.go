package dotstrap

import (
	"fmt"
	"os"

	"github.com/arthur-debert/dotstrap/internal/version"
	"github.com/arthur-debert/dotstrap/pkg/bootstrap"
	"github.com/arthur-debert/dotstrap/pkg/cobrax/topics"
	"github.com/arthur-debert/dotstrap/pkg/config"
	"github.com/arthur-debert/dotstrap/pkg/logging"
	"github.com/arthur-debert/dotstrap/pkg/style"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// Factory builds the Bootstrap a command operates on
type Factory func(cmd *cobra.Command, opts bootstrap.Options) (*bootstrap.Bootstrap, error)

// DefaultFactory uses the real environment
func DefaultFactory(cmd *cobra.Command, opts bootstrap.Options) (*bootstrap.Bootstrap, error) {
	return bootstrap.New(opts)
}

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	return NewRootCmdWithFactory(DefaultFactory)
}

// NewRootCmdWithFactory creates the root command with a custom Bootstrap
// factory; tests use it to inject fakes
func NewRootCmdWithFactory(factory Factory) *cobra.Command {
	initTemplateFormatting()

	var (
		verbosity int
		repoRoot  string
		overrides []string
	)

	rootCmd := &cobra.Command{
		Use:     "dotstrap",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLogger(verbosity)
			style.Configure(os.Stdout)
			log.Debug().Str("command", cmd.CommandPath()).Msg("Command started")
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = cmd.Help()
			return fmt.Errorf(MsgNoCommand)
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}

	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", MsgFlagVerbose)
	rootCmd.PersistentFlags().StringVar(&repoRoot, "repo", "", MsgFlagRepo)
	rootCmd.PersistentFlags().StringArrayVar(&overrides, "set", nil, MsgFlagSet)

	rootCmd.AddGroup(&cobra.Group{ID: "core", Title: "COMMANDS:"})
	rootCmd.AddGroup(&cobra.Group{ID: "manage", Title: "MANAGE:"})
	rootCmd.AddGroup(&cobra.Group{ID: "misc", Title: "MISC:"})
	rootCmd.SetUsageTemplate(MsgUsageTemplate)

	build := func(cmd *cobra.Command) (*bootstrap.Bootstrap, error) {
		return factory(cmd, bootstrap.Options{
			RepoRoot:  repoRoot,
			Overrides: overrides,
			Stdout:    cmd.OutOrStdout(),
			Stderr:    cmd.ErrOrStderr(),
		})
	}

	rootCmd.AddCommand(newInstallCmd(build))
	rootCmd.AddCommand(newUninstallCmd(build))
	rootCmd.AddCommand(newConfigCmd(build))
	rootCmd.AddCommand(newRCCmd(build))
	rootCmd.AddCommand(newStepsCmd(build))
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newCompletionCmd())

	if m, err := topics.Load(topicFiles, topicsDir, topics.Options{
		Renderer: topics.NewGlamourRenderer(style.ColorEnabled(os.Stdout)),
	}); err == nil {
		topics.Install(rootCmd, m)
		rootCmd.SetHelpCommandGroupID("misc")
	} else {
		log.Debug().Err(err).Msg("Help topics unavailable")
	}

	return rootCmd
}

type builder func(cmd *cobra.Command) (*bootstrap.Bootstrap, error)

// addGuessShellFlags registers --guess-shell / --no-guess-shell and
// returns a func resolving them
func addGuessShellFlags(cmd *cobra.Command) func() bool {
	var guess, noGuess bool
	cmd.Flags().BoolVar(&guess, "guess-shell", true, MsgFlagGuessShell)
	cmd.Flags().BoolVar(&noGuess, "no-guess-shell", false, MsgFlagNoGuessShell)
	cmd.MarkFlagsMutuallyExclusive("guess-shell", "no-guess-shell")
	return func() bool {
		return guess && !noGuess
	}
}

func newInstallCmd(build builder) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "install",
		Aliases: []string{"i"},
		Short:   MsgInstallShort,
		Long:    MsgInstallLong,
		GroupID: "core",
		Args:    cobra.NoArgs,
	}
	guessShell := addGuessShellFlags(cmd)
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		b, err := build(cmd)
		if err != nil {
			return err
		}
		return b.Install(cmd.Context(), bootstrap.InstallOptions{GuessShell: guessShell()})
	}
	return cmd
}

func newUninstallCmd(build builder) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "uninstall",
		Aliases: []string{"u"},
		Short:   MsgUninstallShort,
		Long:    MsgUninstallLong,
		GroupID: "core",
		Args:    cobra.NoArgs,
	}
	guessShell := addGuessShellFlags(cmd)
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		b, err := build(cmd)
		if err != nil {
			return err
		}
		return b.Uninstall(cmd.Context(), bootstrap.UninstallOptions{GuessShell: guessShell()})
	}
	return cmd
}

func newConfigCmd(build builder) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "config",
		Short:   MsgConfigShort,
		GroupID: "manage",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "update",
		Short: MsgConfigUpdate,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := build(cmd)
			if err != nil {
				return err
			}
			return b.UpdateConfig(cmd.Context())
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "remove",
		Short: MsgConfigRemove,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := build(cmd)
			if err != nil {
				return err
			}
			return b.RemoveConfig(cmd.Context())
		},
	})

	var format string
	show := &cobra.Command{
		Use:   "show",
		Short: MsgConfigShowShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := build(cmd)
			if err != nil {
				return err
			}
			out, err := b.ShowConfig(format)
			if err != nil {
				return err
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), out)
			return err
		},
	}
	show.Flags().StringVarP(&format, "format", "f", config.FormatTOML, MsgFlagFormat)
	_ = show.RegisterFlagCompletionFunc("format", cobra.FixedCompletions(
		[]string{config.FormatTOML, config.FormatYAML}, cobra.ShellCompDirectiveNoFileComp))
	cmd.AddCommand(show)

	return cmd
}

func newRCCmd(build builder) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "rc",
		Short:   MsgRCShort,
		GroupID: "manage",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "generate",
		Short: MsgRCGenerateShort,
		Long:  MsgRCGenerateLong,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := build(cmd)
			if err != nil {
				return err
			}
			_, err = b.GenerateRC(cmd.Context())
			return err
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: MsgRCShowShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := build(cmd)
			if err != nil {
				return err
			}
			renderer := topics.NewGlamourRenderer(style.ColorEnabled(os.Stdout))
			_, err = fmt.Fprint(cmd.OutOrStdout(), renderer.Render(b.AddonMarkdown(), ".md"))
			return err
		},
	})

	return cmd
}

func newStepsCmd(build builder) *cobra.Command {
	return &cobra.Command{
		Use:     "steps",
		Short:   MsgStepsShort,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := build(cmd)
			if err != nil {
				return err
			}

			rows := [][]string{{
				MsgStepsHeaderPhase, MsgStepsHeaderName, MsgStepsHeaderRun, MsgStepsHeaderRC, MsgStepsHeaderDesc,
			}}
			for _, s := range b.Steps() {
				rows = append(rows, []string{s.Phase, s.Name, yesNo(s.Runs), yesNo(s.WritesRC), s.Description})
			}

			table, err := style.Table(rows)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), table)
			return err
		},
	}
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "-"
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "version",
		Short:   MsgVersionShort,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), version.String())
		},
	}
}

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:                   "completion [bash|zsh|fish|powershell]",
		Short:                 MsgCompletionShort,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		GroupID:               "misc",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(out)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
			return nil
		},
	}
}
