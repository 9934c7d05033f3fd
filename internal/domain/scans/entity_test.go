package scans

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSuffix(t *testing.T) {
	assert.Equal(t, "_ivan.json", Suffix("ivan"))
	assert.Equal(t, "_Иван.json", Suffix("Иван"))
}

func TestListingTable(t *testing.T) {
	files := []ScanFile{
		{FileName: "20240102_ivan.json", UploadedAt: 1704207845000, SizeBytes: 2048},
		{FileName: "20240101_ivan.json", UploadedAt: 1704121445000, SizeBytes: 1024},
	}

	table := ListingTable(files)
	require.Equal(t, 2, table.Len())
	assert.Equal(t, []string{"Файл", "Дата загрузки", "Размер"}, table.Columns)

	// Every row shows the friendly display name, not the object key.
	row, ok := table.Row(0)
	require.True(t, ok)
	name, _ := row.Get("Файл")
	assert.Equal(t, "report.json", name)
	size, _ := row.Get("Размер")
	assert.Equal(t, "2.0 KiB", size)

	empty := ListingTable(nil)
	assert.Zero(t, empty.Len())
	assert.Equal(t, []string{"Файл", "Дата загрузки", "Размер"}, empty.Columns)
}
