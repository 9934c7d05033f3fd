package main

import (
	"context"
	"io"

	"github.com/olekukonko/tablewriter"

	"github.com/unireport/viewer/internal/config"
	"github.com/unireport/viewer/internal/domain/report"
	"github.com/unireport/viewer/internal/domain/scans"
	"github.com/unireport/viewer/internal/infra/storage"
	"github.com/unireport/viewer/internal/logger"
)

func openRepo(ctx context.Context, configPath string) (scans.Repository, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	logger.Init(cfg.Log.Level)

	return storage.New(ctx,
		cfg.Minio.Endpoint,
		cfg.Minio.Region,
		cfg.Minio.BucketName,
		cfg.Minio.AccessKey,
		cfg.Minio.SecretKey,
		cfg.Minio.UseSSL,
	)
}

func renderTable(out io.Writer, t report.Table) {
	table := tablewriter.NewWriter(out)
	table.SetHeader(t.Columns)
	if t.Title != "" {
		table.SetCaption(true, t.Title)
	}
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)

	for i := 0; i < t.Len(); i++ {
		row, ok := t.Row(i)
		if !ok {
			continue
		}
		cells := make([]string, 0, len(t.Columns))
		for _, col := range t.Columns {
			v, _ := row.Get(col)
			cells = append(cells, report.Stringify(v))
		}
		table.Append(cells)
	}
	table.Render()
}
