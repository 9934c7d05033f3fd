package main

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/unireport/viewer/internal/domain/report"
	"github.com/unireport/viewer/internal/domain/scans"
)

func newShowCommand(configPath *string) *cobra.Command {
	var (
		username  string
		fileName  string
		sectionID string
		query     string
		row       int
		tableIdx  int
	)
	cmd := &cobra.Command{
		Use:           "show",
		Short:         "Render a section of one scan document",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			if !strings.HasSuffix(fileName, scans.Suffix(username)) {
				return fmt.Errorf("file %q does not belong to user %q", fileName, username)
			}

			repo, err := openRepo(ctx, *configPath)
			if err != nil {
				return err
			}
			doc, err := repo.Download(ctx, fileName)
			if err != nil {
				return err
			}

			if sectionID == report.SectionOverview {
				o := doc.Overview()
				fmt.Fprintf(out, "%s %s\n", color.CyanString("Пользователь:"), o.Username)
				fmt.Fprintf(out, "%s %s\n", color.CyanString("Время сканирования:"), o.ScanTime)
				fmt.Fprintf(out, "%s %s\n", color.CyanString("Версия Windows:"), o.OSVersion)
				renderTable(out, o.Stats)
				return nil
			}

			sec, ok := report.SectionByID(sectionID)
			if !ok {
				return fmt.Errorf("unknown section %q", sectionID)
			}

			tables := sec.Tables(doc)
			if row < 0 {
				for _, t := range tables {
					filtered := t.Filter(query)
					fmt.Fprintf(out, "shown %d of %d\n", filtered.Len(), t.Len())
					renderTable(out, filtered)
				}
				return nil
			}

			// Row detail addresses the filtered view, same as the API.
			if tableIdx < 0 || tableIdx >= len(tables) {
				return fmt.Errorf("section %q has no table %d", sectionID, tableIdx)
			}
			filtered := tables[tableIdx].Filter(query)
			detail, ok := filtered.Row(row)
			if !ok {
				return fmt.Errorf("row %d is out of range (%d rows shown)", row, filtered.Len())
			}
			fields := report.DetailFields(detail)
			for _, key := range fields.Keys() {
				v, _ := fields.Get(key)
				fmt.Fprintf(out, "%s: %s\n", color.CyanString(key), report.Stringify(v))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&username, "user", "", "Windows account name the scan belongs to")
	cmd.Flags().StringVar(&fileName, "file", "", "Scan file name as listed by 'scans'")
	cmd.Flags().StringVar(&sectionID, "section", report.SectionOverview, "Section id (see 'sections')")
	cmd.Flags().StringVarP(&query, "query", "q", "", "Case-insensitive substring filter")
	cmd.Flags().IntVar(&row, "row", -1, "Print one row's full record instead of the table")
	cmd.Flags().IntVar(&tableIdx, "table", 0, "Table index within the section")
	_ = cmd.MarkFlagRequired("user")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}
