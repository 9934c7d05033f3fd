package main

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/unireport/viewer/internal/domain/report"
	"github.com/unireport/viewer/internal/domain/scans"
)

// treeDepthCap bounds how deep pathological documents are rendered.
const treeDepthCap = 512

func newTreeCommand(configPath *string) *cobra.Command {
	var (
		username  string
		fileName  string
		sectionID string
		query     string
		row       int
		tableIdx  int
	)
	cmd := &cobra.Command{
		Use:           "tree",
		Short:         "Print the archive contents attached to one table row",
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

			sec, ok := report.SectionByID(sectionID)
			if !ok {
				return fmt.Errorf("unknown section %q", sectionID)
			}
			tables := sec.Tables(doc)
			if tableIdx < 0 || tableIdx >= len(tables) {
				return fmt.Errorf("section %q has no table %d", sectionID, tableIdx)
			}

			filtered := tables[tableIdx].Filter(query)
			raw, ok := filtered.RawRow(row)
			if !ok {
				return fmt.Errorf("row %d is out of range (%d rows shown)", row, filtered.Len())
			}

			nodes := report.WalkArchive(report.ArchiveContents(raw), treeDepthCap)
			for _, n := range nodes {
				label := n.Label
				switch {
				case n.Notice:
					label = color.YellowString(label)
				case n.Dir:
					label = color.CyanString(label)
				}
				fmt.Fprintf(out, "%s%s\n", strings.Repeat("  ", n.Depth), label)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&username, "user", "", "Windows account name the scan belongs to")
	cmd.Flags().StringVar(&fileName, "file", "", "Scan file name as listed by 'scans'")
	cmd.Flags().StringVar(&sectionID, "section", report.SectionProcesses, "Section id (see 'sections')")
	cmd.Flags().StringVarP(&query, "query", "q", "", "Case-insensitive substring filter")
	cmd.Flags().IntVar(&row, "row", 0, "Row whose archive contents to print")
	cmd.Flags().IntVar(&tableIdx, "table", 0, "Table index within the section")
	_ = cmd.MarkFlagRequired("user")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}
