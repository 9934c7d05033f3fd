package scans

import (
	"context"

	"github.com/unireport/viewer/internal/domain/report"
)

// Repository port (interface for the remote scan store).
// List returns the given user's scans sorted newest first; Download
// fetches and decodes one scan document.
type Repository interface {
	List(ctx context.Context, username string) ([]ScanFile, error)
	Download(ctx context.Context, fileName string) (*report.Document, error)
}
