package report

import (
	"path"

	"github.com/Velocidex/ordereddict"
)

// Section ids are the stable URL surface; titles stay in the report's
// language.
const (
	SectionOverview   = "overview"
	SectionDrivers    = "drivers"
	SectionProcesses  = "processes"
	SectionBrowser    = "browser"
	SectionDownloads  = "downloads"
	SectionDesktop    = "desktop"
	SectionAppData    = "appdata"
	SectionRecycleBin = "recyclebin"
	SectionModules    = "modules"
)

// Section describes one report view and how to build its tables.
type Section struct {
	ID    string
	Title string
	build func(*Document) []Table
}

// Tables renders the section over a loaded document. Sections with more
// than one table (modules) return them in display order.
func (s Section) Tables(doc *Document) []Table {
	if s.build == nil || doc == nil {
		return nil
	}
	return s.build(doc)
}

// Sections lists the report views in sidebar order.
var Sections = []Section{
	{ID: SectionOverview, Title: "Информация", build: func(d *Document) []Table {
		return []Table{d.Overview().Stats}
	}},
	{ID: SectionDrivers, Title: "Драйвера", build: buildDrivers},
	{ID: SectionProcesses, Title: "Процессы", build: func(d *Document) []Table {
		t := Normalize(d.Collection(FieldProcesses), &NormalizeOptions{
			DefaultColumns: []string{FieldPID, FieldName, FieldPath},
		})
		t.Title = "Список Процессов"
		return []Table{t}
	}},
	{ID: SectionBrowser, Title: "Данные Браузеров", build: func(d *Document) []Table {
		t := Normalize(d.Collection(FieldBrowserHistory), &NormalizeOptions{
			DefaultColumns: []string{"Браузер", "Имя файла", "Путь к файлу", "URL источника"},
		})
		t.Title = "История Браузеров"
		return []Table{t}
	}},
	{ID: SectionDownloads, Title: "Загрузки", build: snapshotSection("Файлы из Загрузок", FieldDownloads)},
	{ID: SectionDesktop, Title: "Рабочий стол", build: snapshotSection("Файлы Рабочего Стола", FieldDesktop)},
	{ID: SectionAppData, Title: "Временные Файлы", build: fallbackSection("Файлы из AppData", FieldAppData)},
	{ID: SectionRecycleBin, Title: "Удаленные Файлы", build: fallbackSection("Удаленные Файлы (Корзина)", FieldRecycleBin)},
	{ID: SectionModules, Title: "Загруженные Модули и Файлы Процесса", build: buildModules},
}

// SectionByID resolves a section id.
func SectionByID(id string) (Section, bool) {
	for _, s := range Sections {
		if s.ID == id {
			return s, true
		}
	}
	return Section{}, false
}

func snapshotSection(title, key string) func(*Document) []Table {
	return func(d *Document) []Table {
		t := Normalize(d.SnapshotCollection(key), nil)
		t.Title = title
		return []Table{t}
	}
}

func fallbackSection(title, key string) func(*Document) []Table {
	return func(d *Document) []Table {
		t := Normalize(d.SnapshotOrRootCollection(key), nil)
		t.Title = title
		return []Table{t}
	}
}

func buildModules(d *Document) []Table {
	modules := Normalize(d.Collection(FieldModules), &NormalizeOptions{WrapField: FieldPath})
	modules.Title = "Список Загруженных Модулей"
	files := Normalize(d.Collection(FieldProcessFiles), nil)
	files.Title = "Список Файлов Процесса"
	return []Table{modules, files}
}

// Display keys the merged drivers table leads with. Service records are
// remapped to title case so the three source collections share a column
// block.
const (
	displayServiceName    = "Имя Службы"
	displayServiceDisplay = "Отображаемое Имя"
	displayServiceState   = "Состояние"
	displayServicePath    = "Путь К Файлу"
)

// buildDrivers merges the loaded drivers, driver-folder files and driver
// services into a single table. Every source record is remapped to lead
// with a uniform column block and keeps its remaining fields behind it.
func buildDrivers(d *Document) []Table {
	var combined []interface{}

	for _, item := range d.Collection(FieldDriversLoaded) {
		rec, ok := item.(*ordereddict.Dict)
		if !ok || rec == nil {
			continue
		}
		name, _ := rec.Get(FieldName)
		if !truthy(name) {
			name = baseName(rec)
		}
		combined = append(combined, remapRecord(rec,
			[]leadField{
				{FieldName, name},
				{FieldPath, fieldOrNil(rec, FieldPath)},
				{FieldMD5, fieldOrNil(rec, FieldMD5)},
			},
			FieldName, FieldPath, FieldMD5))
	}

	for _, item := range d.Collection(FieldDriversFolder) {
		rec, ok := item.(*ordereddict.Dict)
		if !ok || rec == nil {
			continue
		}
		combined = append(combined, remapRecord(rec,
			[]leadField{
				{FieldName, fieldOrNil(rec, FieldName)},
				{FieldPath, fieldOrNil(rec, FieldPath)},
				{FieldMD5, fieldOrNil(rec, FieldMD5)},
			},
			FieldName, FieldPath, FieldMD5))
	}

	for _, item := range d.Collection(FieldDriverServices) {
		rec, ok := item.(*ordereddict.Dict)
		if !ok || rec == nil {
			continue
		}
		combined = append(combined, remapRecord(rec,
			[]leadField{
				{displayServiceName, fieldOrNil(rec, FieldServiceName)},
				{displayServiceDisplay, fieldOrNil(rec, FieldServiceDisplay)},
				{displayServiceState, fieldOrNil(rec, FieldServiceState)},
				{displayServicePath, fieldOrNil(rec, FieldServiceBinaryPath)},
				{FieldMD5, fieldOrNil(rec, FieldMD5)},
			},
			FieldServiceName, FieldServiceDisplay, FieldServiceState, FieldServiceBinaryPath, FieldMD5))
	}

	t := Normalize(combined, nil)
	t.Title = "Драйвера, Файлы и Службы"
	return []Table{t}
}

type leadField struct {
	key   string
	value interface{}
}

// remapRecord builds a record that leads with the given fields and then
// carries the source record's remaining keys in their original order.
func remapRecord(rec *ordereddict.Dict, lead []leadField, consumed ...string) *ordereddict.Dict {
	skip := make(map[string]bool, len(consumed))
	for _, key := range consumed {
		skip[key] = true
	}
	out := ordereddict.NewDict()
	for _, f := range lead {
		out.Set(f.key, f.value)
	}
	for _, key := range rec.Keys() {
		if skip[key] {
			continue
		}
		value, _ := rec.Get(key)
		out.Set(key, value)
	}
	return out
}

func fieldOrNil(rec *ordereddict.Dict, key string) interface{} {
	value, _ := rec.Get(key)
	return value
}

// baseName derives a display name from the record's path field. Empty
// paths yield an empty name rather than a placeholder.
func baseName(rec *ordereddict.Dict) interface{} {
	pathValue, _ := rec.Get(FieldPath)
	if !truthy(pathValue) {
		return ""
	}
	return path.Base(Stringify(pathValue))
}
