package main

import (
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"

	"github.com/arthur-debert/dotstrap/cmd/dotstrap"
	"github.com/arthur-debert/dotstrap/internal/version"
	"github.com/arthur-debert/dotstrap/pkg/errors"
	"github.com/arthur-debert/dotstrap/pkg/style"
)

func main() {
	if err := newManpageCmd().Execute(); err != nil {
		_, _ = io.WriteString(os.Stderr, style.Error(err)+"\n")
		os.Exit(1)
	}
}

func newManpageCmd() *cobra.Command {
	return &cobra.Command{
		Use:           "dotstrap-manpage [output-dir]",
		Short:         "Generate dotstrap man pages",
		Long:          "Without an argument the dotstrap(1) page is written to stdout. With a directory, one page per command is written there.",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return writeManPage(cmd.OutOrStdout())
			}
			return writeManTree(args[0])
		},
	}
}

func manHeader() *doc.GenManHeader {
	header := &doc.GenManHeader{
		Title:   "DOTSTRAP",
		Section: "1",
		Source:  "dotstrap " + version.Version,
		Manual:  "dotstrap manual",
	}
	// release builds stamp an RFC 3339 date; keep pages reproducible
	if built, err := time.Parse(time.RFC3339, version.Date); err == nil {
		header.Date = &built
	}
	return header
}

func writeManPage(w io.Writer) error {
	root := dotstrap.NewRootCmd()
	if err := doc.GenMan(root, manHeader(), w); err != nil {
		return errors.Wrap(err, errors.ErrFileWrite, "failed to generate man page")
	}
	return nil
}

func writeManTree(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.Wrapf(err, errors.ErrDirCreate, "failed to create %s", dir)
	}
	root := dotstrap.NewRootCmd()
	if err := doc.GenManTree(root, manHeader(), dir); err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "failed to write man pages to %s", dir)
	}
	return nil
}
