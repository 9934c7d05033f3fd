package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := newRootCommand().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var configPath string
	cmd := &cobra.Command{
		Use:           "viewerctl",
		Short:         "Terminal client for browsing endpoint scan reports",
		Long:          "viewerctl reads scan documents straight from the object store and renders the same sections the viewer API serves.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVar(&configPath, "config", "config.yaml", "Path to the yaml config")

	cmd.AddCommand(
		newScansCommand(&configPath),
		newSectionsCommand(),
		newShowCommand(&configPath),
		newTreeCommand(&configPath),
	)
	return cmd
}
