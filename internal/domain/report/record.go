package report

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/Velocidex/ordereddict"
)

// EnsureList normalizes a decoded field into a record list: nil becomes an
// empty list, a list stays a list and any other value is wrapped as a
// single-element list. Agents emitted single objects instead of one-element
// lists in some versions.
func EnsureList(v interface{}) []interface{} {
	if v == nil {
		return nil
	}
	if items, ok := v.([]interface{}); ok {
		return items
	}
	return []interface{}{v}
}

// Stringify renders a cell value in its canonical text form: strings pass
// through, bools are "true"/"false", floats drop the exponent and trailing
// zeros, containers render as compact JSON. Values that cannot be rendered
// yield "" so a bad cell only ever fails to match a filter.
func Stringify(v interface{}) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case bool:
		if t {
			return "true"
		}
		return "false"
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(t), 'f', -1, 32)
	case json.Number:
		return t.String()
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return fmt.Sprintf("%d", t)
	default:
		serialized, err := json.Marshal(v)
		if err != nil {
			return ""
		}
		return string(serialized)
	}
}

// truthy reports whether a field value counts as present-and-non-empty:
// nil, false, zero numbers, empty strings and empty containers are all
// empty. Fallback chains in the documents rely on this notion.
func truthy(v interface{}) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case string:
		return t != ""
	case float64:
		return t != 0
	case float32:
		return t != 0
	case int:
		return t != 0
	case int64:
		return t != 0
	case json.Number:
		f, err := t.Float64()
		if err != nil {
			return true
		}
		return f != 0
	case []interface{}:
		return len(t) > 0
	case *ordereddict.Dict:
		return t != nil && t.Len() > 0
	default:
		return true
	}
}

// toInt64 coerces the numeric forms a PID arrives in. Decoded JSON gives
// float64, tests hand in ints, and some agent builds wrote PIDs as strings.
func toInt64(v interface{}) (int64, bool) {
	switch t := v.(type) {
	case float64:
		return int64(t), true
	case json.Number:
		n, err := t.Int64()
		if err != nil {
			return 0, false
		}
		return n, true
	case int:
		return int64(t), true
	case int64:
		return t, true
	case uint64:
		return int64(t), true
	case string:
		n, err := strconv.ParseInt(strings.TrimSpace(t), 10, 64)
		if err != nil {
			return 0, false
		}
		return n, true
	default:
		return 0, false
	}
}
