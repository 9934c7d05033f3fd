package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/unireport/viewer/internal/domain/report"
)

func newSectionsCommand() *cobra.Command {
	return &cobra.Command{
		Use:           "sections",
		Short:         "List the report sections a document can be browsed by",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, s := range report.Sections {
				fmt.Fprintf(cmd.OutOrStdout(), "%-12s %s\n", color.CyanString(s.ID), s.Title)
			}
			return nil
		},
	}
}
