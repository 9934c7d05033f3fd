package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDocumentRejectsBadJSON(t *testing.T) {
	_, err := ParseDocument([]byte(`{"Имя пользователя": `))
	assert.Error(t, err)
}

func TestDocumentHeadline(t *testing.T) {
	doc := parseTestDoc(t, `{
		"Имя пользователя":"ivan",
		"Время сканирования":"2024-01-02 15:04:05",
		"Версия Windows":"Windows 11 Pro"
	}`)
	assert.Equal(t, "ivan", doc.Username())
	assert.Equal(t, "2024-01-02 15:04:05", doc.ScanTime())
	assert.Equal(t, "Windows 11 Pro", doc.OSVersion())
}

func TestCollectionAbsentAndWrapped(t *testing.T) {
	doc := parseTestDoc(t, `{"Процессы":{"PID":1}}`)
	assert.Empty(t, doc.Collection(FieldModules))
	// A single object reads as a one-element list.
	assert.Len(t, doc.Collection(FieldProcesses), 1)
}

func TestSnapshotFallback(t *testing.T) {
	doc := parseTestDoc(t, `{
		"Снимок файловой системы":{
			"Файлы из Загрузок":[{"Имя":"a"}],
			"Файлы из AppData":[]
		},
		"Файлы из AppData":[{"Имя":"root-a"},{"Имя":"root-b"}],
		"Удаленные файлы (Корзина)":[{"Имя":"r"}]
	}`)

	assert.Len(t, doc.SnapshotCollection(FieldDownloads), 1)

	// Empty snapshot list falls back to the document root.
	assert.Len(t, doc.SnapshotOrRootCollection(FieldAppData), 2)
	assert.Len(t, doc.SnapshotOrRootCollection(FieldRecycleBin), 1)

	// Downloads and desktop never fall back.
	assert.Empty(t, doc.SnapshotCollection(FieldDesktop))
}

func TestSnapshotFallbackPrefersSnapshot(t *testing.T) {
	doc := parseTestDoc(t, `{
		"Снимок файловой системы":{"Файлы из AppData":[{"Имя":"snap"}]},
		"Файлы из AppData":[{"Имя":"root"}]
	}`)
	items := doc.SnapshotOrRootCollection(FieldAppData)
	require.Len(t, items, 1)
	table := Normalize(items, nil)
	row, _ := table.Row(0)
	name, _ := row.Get(FieldName)
	assert.Equal(t, "snap", name)
}

func TestOverviewCountsAndPlaceholders(t *testing.T) {
	doc := parseTestDoc(t, `{
		"Процессы":[{"PID":1},{"PID":2}],
		"Модули":["a","b","c"],
		"Снимок файловой системы":{"Файлы из Загрузок":[{"Имя":"x"}]}
	}`)
	o := doc.Overview()
	assert.Equal(t, "N/A", o.Username)
	assert.Equal(t, "N/A", o.ScanTime)
	assert.Equal(t, "N/A", o.OSVersion)

	require.Equal(t, 10, o.Stats.Len())
	counts := map[string]interface{}{}
	for i := 0; i < o.Stats.Len(); i++ {
		row, _ := o.Stats.Row(i)
		label, _ := row.Get(statSection)
		count, _ := row.Get(statCount)
		counts[label.(string)] = count
	}
	assert.Equal(t, 2, counts["Процессы"])
	assert.Equal(t, 3, counts["Модули"])
	assert.Equal(t, 1, counts["Загрузки"])
	assert.Equal(t, 0, counts["Драйвера (Загруженные)"])
}

func TestProcessByPID(t *testing.T) {
	doc := parseTestDoc(t, `{"Процессы":[
		{"PID":10,"Имя":"a"},
		{"PID":"20","Имя":"b"},
		{"Имя":"no-pid"}
	]}`)

	rec, ok := doc.ProcessByPID(10)
	require.True(t, ok)
	name, _ := rec.Get(FieldName)
	assert.Equal(t, "a", name)

	// String PIDs still resolve.
	rec, ok = doc.ProcessByPID(20)
	require.True(t, ok)
	name, _ = rec.Get(FieldName)
	assert.Equal(t, "b", name)

	_, ok = doc.ProcessByPID(999)
	assert.False(t, ok)
}

func TestDetailFieldsExcludesArchive(t *testing.T) {
	doc := parseTestDoc(t, `{"x":[{"Имя":"f.zip","size":5,"Содержание архива":[{"Имя":"in"}]}]}`)
	table := Normalize(doc.Collection("x"), nil)
	row, _ := table.Row(0)

	detail := DetailFields(row)
	_, pres := detail.Get(FieldArchiveContents)
	assert.False(t, pres)
	assert.Equal(t, []string{FieldName, FieldSize}, detail.Keys())

	contents := ArchiveContents(row)
	require.NotNil(t, contents)
	nodes := WalkArchive(contents, 0)
	require.Len(t, nodes, 1)
	assert.Equal(t, "in", nodes[0].Name)
}
