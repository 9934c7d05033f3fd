package report

import (
	"encoding/json"
	"fmt"

	"github.com/Velocidex/ordereddict"
)

// Document is one loaded scan. It owns the decoded JSON and never mutates
// it; accessors apply the absent-means-empty rules so a sparse document
// still renders every section.
type Document struct {
	raw *ordereddict.Dict
}

// ParseDocument decodes a scan document preserving field order.
func ParseDocument(data []byte) (*Document, error) {
	raw := ordereddict.NewDict()
	if err := json.Unmarshal(data, raw); err != nil {
		return nil, fmt.Errorf("decode scan document: %w", err)
	}
	return &Document{raw: raw}, nil
}

// NewDocument wraps an already decoded dict.
func NewDocument(raw *ordereddict.Dict) *Document {
	if raw == nil {
		raw = ordereddict.NewDict()
	}
	return &Document{raw: raw}
}

func (d *Document) stringField(key string) string {
	value, pres := d.raw.Get(key)
	if !pres || value == nil {
		return ""
	}
	return Stringify(value)
}

func (d *Document) Username() string  { return d.stringField(FieldUsername) }
func (d *Document) ScanTime() string  { return d.stringField(FieldScanTime) }
func (d *Document) OSVersion() string { return d.stringField(FieldOSVersion) }

// Collection returns the record list stored under key at the document
// root. Absent keys yield an empty list, single objects are wrapped.
func (d *Document) Collection(key string) []interface{} {
	value, _ := d.raw.Get(key)
	return EnsureList(value)
}

func (d *Document) snapshot() *ordereddict.Dict {
	value, _ := d.raw.Get(FieldSnapshot)
	snap, ok := value.(*ordereddict.Dict)
	if !ok || snap == nil {
		return ordereddict.NewDict()
	}
	return snap
}

// SnapshotCollection returns a record list from the filesystem snapshot
// object.
func (d *Document) SnapshotCollection(key string) []interface{} {
	value, _ := d.snapshot().Get(key)
	return EnsureList(value)
}

// SnapshotOrRootCollection prefers the snapshot list when it has content
// and falls back to the same key at the document root. Agents wrote these
// lists in both places at different times.
func (d *Document) SnapshotOrRootCollection(key string) []interface{} {
	if items := d.SnapshotCollection(key); len(items) > 0 {
		return items
	}
	return d.Collection(key)
}

// ProcessByPID returns the first raw process record whose PID equals pid.
func (d *Document) ProcessByPID(pid int64) (*ordereddict.Dict, bool) {
	for _, item := range d.Collection(FieldProcesses) {
		rec, ok := item.(*ordereddict.Dict)
		if !ok || rec == nil {
			continue
		}
		value, pres := rec.Get(FieldPID)
		if !pres {
			continue
		}
		if n, ok := toInt64(value); ok && n == pid {
			return rec, true
		}
	}
	return nil, false
}

// Overview is the headline view of a loaded document.
type Overview struct {
	Username  string `json:"username"`
	ScanTime  string `json:"scan_time"`
	OSVersion string `json:"os_version"`
	Stats     Table  `json:"stats"`
}

// Headline fields fall back to a placeholder rather than an empty cell.
const placeholderNA = "N/A"

func valueOrNA(s string) string {
	if s == "" {
		return placeholderNA
	}
	return s
}

// Stats table columns.
const (
	statSection = "Раздел"
	statCount   = "Количество"
)

// Overview builds the headline plus the per-section record counts shown on
// the landing view.
func (d *Document) Overview() Overview {
	stats := Table{
		Title:   "Быстрая Статистика",
		Columns: []string{statSection, statCount},
	}
	for _, row := range []struct {
		label string
		count int
	}{
		{"Драйвера (Загруженные)", len(d.Collection(FieldDriversLoaded))},
		{"Драйвера (В Папке)", len(d.Collection(FieldDriversFolder))},
		{"Сервисы Драйверов", len(d.Collection(FieldDriverServices))},
		{"Процессы", len(d.Collection(FieldProcesses))},
		{"Модули", len(d.Collection(FieldModules))},
		{"Данные Браузеров", len(d.Collection(FieldBrowserHistory))},
		{"Загрузки", len(d.SnapshotCollection(FieldDownloads))},
		{"Файлы на рабочем столе", len(d.SnapshotCollection(FieldDesktop))},
		{"Временные Файлы", len(d.SnapshotOrRootCollection(FieldAppData))},
		{"Удалённые Файлы", len(d.SnapshotOrRootCollection(FieldRecycleBin))},
	} {
		stats.Rows = append(stats.Rows, ordereddict.NewDict().
			Set(statSection, row.label).
			Set(statCount, row.count))
	}
	return Overview{
		Username:  valueOrNA(d.Username()),
		ScanTime:  valueOrNA(d.ScanTime()),
		OSVersion: valueOrNA(d.OSVersion()),
		Stats:     stats,
	}
}

// DetailFields returns the row copy shown in a detail panel: everything
// except the archive listing, which renders separately as a tree.
func DetailFields(row *ordereddict.Dict) *ordereddict.Dict {
	out := ordereddict.NewDict()
	for _, key := range row.Keys() {
		if key == FieldArchiveContents {
			continue
		}
		value, _ := row.Get(key)
		out.Set(key, value)
	}
	return out
}

// ArchiveContents returns the value of the archive listing field, nil when
// the row carries none. WalkArchive turns a nil value into the proper
// notice.
func ArchiveContents(row *ordereddict.Dict) interface{} {
	value, _ := row.Get(FieldArchiveContents)
	return value
}
