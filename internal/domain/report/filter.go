package report

import (
	"strings"

	"github.com/Velocidex/ordereddict"
)

// Filter returns the rows whose canonical cell text contains q in any
// column, compared case-insensitively. An empty query or an empty table
// comes back unchanged; otherwise the result shares the column set and
// preserves row order.
func (t Table) Filter(q string) Table {
	if q == "" || len(t.Rows) == 0 {
		return t
	}
	folded := strings.ToLower(q)
	out := Table{Title: t.Title, Columns: t.Columns}
	for _, row := range t.Rows {
		if rowMatches(row, t.Columns, folded) {
			out.Rows = append(out.Rows, row)
		}
	}
	return out
}

func rowMatches(row *ordereddict.Dict, columns []string, folded string) bool {
	for _, column := range columns {
		value, pres := row.Get(column)
		if !pres {
			continue
		}
		if strings.Contains(strings.ToLower(Stringify(value)), folded) {
			return true
		}
	}
	return false
}
