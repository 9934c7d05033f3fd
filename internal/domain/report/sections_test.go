package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSectionRegistry(t *testing.T) {
	ids := make([]string, 0, len(Sections))
	for _, s := range Sections {
		ids = append(ids, s.ID)
	}
	assert.Equal(t, []string{
		SectionOverview, SectionDrivers, SectionProcesses, SectionBrowser,
		SectionDownloads, SectionDesktop, SectionAppData, SectionRecycleBin,
		SectionModules,
	}, ids)

	s, ok := SectionByID(SectionDrivers)
	require.True(t, ok)
	assert.Equal(t, "Драйвера", s.Title)

	_, ok = SectionByID("nope")
	assert.False(t, ok)
}

func TestDriversSectionMergesThreeCollections(t *testing.T) {
	doc := parseTestDoc(t, `{
		"Загруженные драйверы":[
			{"Путь":"C:/drv/alpha.sys","MD5":"m1","Подпись":"ok"}
		],
		"Файлы папки драйверов":[
			{"Имя":"beta.sys","Путь":"C:/drv/beta.sys","MD5":"m2"}
		],
		"Службы драйверов":[
			{"Имя службы":"svc","Отображаемое имя":"Svc","Состояние":"Running","Путь к файлу":"C:/drv/svc.sys","MD5":"m3","Запуск":"auto"}
		]
	}`)

	s, _ := SectionByID(SectionDrivers)
	tables := s.Tables(doc)
	require.Len(t, tables, 1)
	table := tables[0]
	require.Equal(t, 3, table.Len())

	// Loaded drivers without a name fall back to the path's base name.
	row, _ := table.Row(0)
	name, _ := row.Get(FieldName)
	assert.Equal(t, "alpha.sys", name)

	// Extra source fields survive behind the lead block.
	sig, _ := row.Get("Подпись")
	assert.Equal(t, "ok", sig)

	// Service records surface under the display keys.
	row, _ = table.Row(2)
	svcName, _ := row.Get(displayServiceName)
	assert.Equal(t, "svc", svcName)
	state, _ := row.Get(displayServiceState)
	assert.Equal(t, "Running", state)
	startup, _ := row.Get("Запуск")
	assert.Equal(t, "auto", startup)

	// The lead block comes first in the column order.
	assert.Equal(t, FieldName, table.Columns[0])
	assert.Equal(t, FieldPath, table.Columns[1])
	assert.Equal(t, FieldMD5, table.Columns[2])
}

func TestProcessesSectionDefaults(t *testing.T) {
	s, _ := SectionByID(SectionProcesses)
	tables := s.Tables(NewDocument(nil))
	require.Len(t, tables, 1)
	assert.Equal(t, []string{FieldPID, FieldName, FieldPath}, tables[0].Columns)
	assert.Equal(t, 0, tables[0].Len())
}

func TestBrowserSectionDefaults(t *testing.T) {
	s, _ := SectionByID(SectionBrowser)
	tables := s.Tables(NewDocument(nil))
	require.Len(t, tables, 1)
	assert.Equal(t, []string{"Браузер", "Имя файла", "Путь к файлу", "URL источника"}, tables[0].Columns)
}

func TestModulesSectionWrapsAndSplits(t *testing.T) {
	doc := parseTestDoc(t, `{
		"Модули":["/m/a.dll","/m/b.dll"],
		"Файлы папки процесса":[{"Имя":"x.exe","size":1}]
	}`)
	s, _ := SectionByID(SectionModules)
	tables := s.Tables(doc)
	require.Len(t, tables, 2)

	modules := tables[0]
	assert.Equal(t, []string{FieldPath}, modules.Columns)
	assert.Equal(t, 2, modules.Len())

	files := tables[1]
	assert.Equal(t, 1, files.Len())
	assert.Equal(t, "Список Файлов Процесса", files.Title)
}

func TestOverviewSectionExposesStats(t *testing.T) {
	doc := parseTestDoc(t, `{"Процессы":[{"PID":1}]}`)
	s, _ := SectionByID(SectionOverview)
	tables := s.Tables(doc)
	require.Len(t, tables, 1)
	assert.Equal(t, 10, tables[0].Len())

	// Stats are filterable like any other table.
	assert.Equal(t, 1, tables[0].Filter("Процессы").Len())
}
