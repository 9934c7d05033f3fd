package scans

import (
	"github.com/Velocidex/ordereddict"

	"github.com/unireport/viewer/internal/domain/report"
)

// ScanFile is one stored scan object in the report bucket.
type ScanFile struct {
	FileName   string `json:"file_name"`
	FileID     string `json:"file_id"`
	UploadedAt int64  `json:"uploaded_at"` // epoch milliseconds
	SizeBytes  int64  `json:"size_bytes"`
}

// Suffix returns the object-name suffix that marks a scan as belonging to
// username. The agent uploads one object per scan named <stamp>_<username>.json.
func Suffix(username string) string {
	return "_" + username + ".json"
}

// Listing columns. The stored object name is hidden behind a constant
// label since every scan carries the same single artifact.
const (
	listingFile     = "Файл"
	listingUploaded = "Дата загрузки"
	listingSize     = "Размер"

	displayName = "report.json"
)

// ListingTable renders the files table shown before selection, in the
// order the files were given (callers list newest first).
func ListingTable(files []ScanFile) report.Table {
	t := report.Table{Columns: []string{listingFile, listingUploaded, listingSize}}
	for _, f := range files {
		t.Rows = append(t.Rows, ordereddict.NewDict().
			Set(listingFile, displayName).
			Set(listingUploaded, report.FormatUploadTime(f.UploadedAt)).
			Set(listingSize, report.FormatSize(f.SizeBytes)))
	}
	return t
}
