package report

import (
	"encoding/json"

	"github.com/Velocidex/ordereddict"
)

// NormalizeOptions tune how a record list becomes a Table.
type NormalizeOptions struct {
	// DefaultColumns seeds the column set when the record list is empty so
	// the client can still draw headers.
	DefaultColumns []string
	// WrapField names the column bare (non-object) entries are wrapped
	// under. Collections of plain strings use this.
	WrapField string
}

// Table is the normalized render of one record collection: a shared column
// set in first-seen order plus the rows that produced it. Rows keep only
// the keys they actually carried; absent cells materialize as null on
// output.
type Table struct {
	Title   string
	Columns []string
	Rows    []*ordereddict.Dict
}

// Normalize builds a Table from a heterogeneous record list. The column
// set is the union of keys across all records in first-seen order, with
// nested objects expanded one level into dotted parent.child columns.
// Entries that cannot form a row are skipped so one malformed record never
// sinks the collection.
func Normalize(items []interface{}, opts *NormalizeOptions) Table {
	if len(items) == 0 {
		var columns []string
		if opts != nil {
			columns = append(columns, opts.DefaultColumns...)
		}
		return Table{Columns: columns}
	}

	wrapField := ""
	if opts != nil {
		wrapField = opts.WrapField
	}

	var (
		columns []string
		seen    = make(map[string]bool)
		rows    []*ordereddict.Dict
	)
	for _, item := range items {
		row := flattenRecord(item, wrapField)
		if row == nil {
			continue
		}
		for _, key := range row.Keys() {
			if !seen[key] {
				seen[key] = true
				columns = append(columns, key)
			}
		}
		rows = append(rows, row)
	}
	return Table{Columns: columns, Rows: rows}
}

// flattenRecord produces the row for one collection entry. Nested objects
// expand one level to dotted keys; deeper values stay attached under the
// dotted column. Bare values wrap under wrapField when one is configured,
// otherwise the entry is dropped.
func flattenRecord(item interface{}, wrapField string) *ordereddict.Dict {
	switch t := item.(type) {
	case *ordereddict.Dict:
		if t == nil {
			return nil
		}
		row := ordereddict.NewDict()
		for _, key := range t.Keys() {
			value, _ := t.Get(key)
			nested, ok := value.(*ordereddict.Dict)
			if !ok || nested == nil {
				row.Set(key, value)
				continue
			}
			for _, sub := range nested.Keys() {
				subValue, _ := nested.Get(sub)
				row.Set(key+"."+sub, subValue)
			}
		}
		return row
	case nil:
		return nil
	default:
		if wrapField == "" {
			return nil
		}
		return ordereddict.NewDict().Set(wrapField, t)
	}
}

// materializeRow fills a row out to the full column set, absent cells as
// nil, preserving column order.
func materializeRow(row *ordereddict.Dict, columns []string) *ordereddict.Dict {
	out := ordereddict.NewDict()
	for _, column := range columns {
		value, _ := row.Get(column)
		out.Set(column, value)
	}
	return out
}

// Len returns the row count.
func (t Table) Len() int { return len(t.Rows) }

// Row returns row i materialized over the full column set.
func (t Table) Row(i int) (*ordereddict.Dict, bool) {
	if i < 0 || i >= len(t.Rows) {
		return nil, false
	}
	return materializeRow(t.Rows[i], t.Columns), true
}

// RawRow returns row i as normalized, without materializing absent cells.
func (t Table) RawRow(i int) (*ordereddict.Dict, bool) {
	if i < 0 || i >= len(t.Rows) {
		return nil, false
	}
	return t.Rows[i], true
}

// MarshalJSON renders the table with every row carrying the full column
// set so clients never see ragged rows.
func (t Table) MarshalJSON() ([]byte, error) {
	columns := t.Columns
	if columns == nil {
		columns = []string{}
	}
	rows := make([]*ordereddict.Dict, 0, len(t.Rows))
	for _, row := range t.Rows {
		rows = append(rows, materializeRow(row, columns))
	}
	return json.Marshal(struct {
		Title   string              `json:"title,omitempty"`
		Columns []string            `json:"columns"`
		Rows    []*ordereddict.Dict `json:"rows"`
	}{t.Title, columns, rows})
}
