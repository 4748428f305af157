package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/arthur-debert/dotstrap/cmd/dotstrap"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rootCmd := dotstrap.NewRootCmd()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		dotstrap.ReportError(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}
