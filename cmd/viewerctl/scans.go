package main

import (
	"fmt"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/unireport/viewer/internal/domain/report"
)

func newScansCommand(configPath *string) *cobra.Command {
	var username string
	cmd := &cobra.Command{
		Use:           "scans",
		Short:         "List scan files uploaded for a user, newest first",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			repo, err := openRepo(ctx, *configPath)
			if err != nil {
				return err
			}

			files, err := repo.List(ctx, username)
			if err != nil {
				return err
			}
			if len(files) == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "no scans found for %s\n", username)
				return nil
			}

			table := tablewriter.NewWriter(cmd.OutOrStdout())
			table.SetHeader([]string{"#", "Файл", "Дата загрузки", "Размер"})
			table.SetAutoFormatHeaders(false)
			table.SetAutoWrapText(false)
			for i, f := range files {
				table.Append([]string{
					strconv.Itoa(i + 1),
					f.FileName,
					report.FormatUploadTime(f.UploadedAt),
					report.FormatSize(f.SizeBytes),
				})
			}
			table.Render()
			return nil
		},
	}
	cmd.Flags().StringVar(&username, "user", "", "Windows account name the scans belong to")
	_ = cmd.MarkFlagRequired("user")
	return cmd
}
