package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func processTable(t *testing.T) Table {
	t.Helper()
	doc := parseTestDoc(t, `{"Процессы":[
		{"PID":10,"Имя":"Explorer.EXE","Путь":"C:/Windows"},
		{"PID":201,"Имя":"svchost","Путь":"C:/Windows/System32"},
		{"PID":33,"Имя":"загрузчик"}
	]}`)
	return Normalize(doc.Collection(FieldProcesses), nil)
}

func TestFilterEmptyQueryReturnsAllRows(t *testing.T) {
	table := processTable(t)
	filtered := table.Filter("")
	assert.Equal(t, table.Len(), filtered.Len())
	assert.Equal(t, table.Columns, filtered.Columns)
}

func TestFilterCaseInsensitive(t *testing.T) {
	table := processTable(t)

	filtered := table.Filter("explorer")
	require.Equal(t, 1, filtered.Len())
	row, _ := filtered.Row(0)
	name, _ := row.Get("Имя")
	assert.Equal(t, "Explorer.EXE", name)

	// Case folding covers Cyrillic too.
	assert.Equal(t, 1, table.Filter("ЗАГРУЗЧИК").Len())
}

func TestFilterMatchesAnyColumn(t *testing.T) {
	table := processTable(t)
	assert.Equal(t, 1, table.Filter("system32").Len())
	assert.Equal(t, 1, table.Filter("svchost").Len())
	// Numbers match against their canonical text.
	assert.Equal(t, 1, table.Filter("201").Len())
	// Substring matches inside numbers count.
	assert.Equal(t, 2, table.Filter("1").Len())
}

func TestFilterPreservesOrderAndColumns(t *testing.T) {
	table := processTable(t)
	filtered := table.Filter("windows")
	require.Equal(t, 2, filtered.Len())
	assert.Equal(t, table.Columns, filtered.Columns)

	first, _ := filtered.Row(0)
	second, _ := filtered.Row(1)
	pid1, _ := first.Get("PID")
	pid2, _ := second.Get("PID")
	assert.Equal(t, float64(10), pid1)
	assert.Equal(t, float64(201), pid2)
}

func TestFilterIdempotent(t *testing.T) {
	table := processTable(t)
	once := table.Filter("windows")
	twice := once.Filter("windows")
	assert.Equal(t, once.Len(), twice.Len())
}

func TestFilterNoMatchesKeepsColumns(t *testing.T) {
	table := processTable(t)
	filtered := table.Filter("nothing-here")
	assert.Equal(t, 0, filtered.Len())
	assert.Equal(t, table.Columns, filtered.Columns)
}

func TestFilterOnSparseColumns(t *testing.T) {
	doc := parseTestDoc(t, `{"Процессы":[{"PID":1,"Имя":"a"},{"PID":2,"Имя":"b","Путь":"/x"}]}`)
	table := Normalize(doc.Collection(FieldProcesses), nil)

	filtered := table.Filter("b")
	require.Equal(t, 1, filtered.Len())
	row, _ := filtered.Row(0)
	pid, _ := row.Get("PID")
	assert.Equal(t, float64(2), pid)
	// The row short a column keeps its empty cell out of matching.
	assert.Equal(t, table.Columns, filtered.Columns)
}

func TestFilterSkipsAbsentCells(t *testing.T) {
	// The third row has no path cell; a path query must not panic on it.
	table := processTable(t)
	assert.Equal(t, 1, table.Filter("system32").Len())
}
