// Package record defines the loosely typed row value shared by every
// collection. Records round-trip through JSON, so scalar values are the
// JSON set: string, float64, bool, nil, plus nested maps and slices.
package record

import (
	"encoding/json"
	"reflect"
)

// Record is a single row in a collection: field name to value.
type Record map[string]any

// ID returns the record identifier, or "" when the record has none.
func (r Record) ID() string {
	id, _ := r["id"].(string)
	return id
}

// Clone returns a deep copy by round-tripping through JSON.
// Numeric values normalize to float64, same as adapter reads.
func (r Record) Clone() Record {
	if r == nil {
		return nil
	}
	b, _ := json.Marshal(r)
	var out Record
	_ = json.Unmarshal(b, &out)
	return out
}

// Merge shallow-merges patch into a copy of r. Fields present in patch
// win; everything else is untouched. Neither input is modified.
func (r Record) Merge(patch Record) Record {
	out := r.Clone()
	if out == nil {
		out = Record{}
	}
	for k, v := range patch {
		out[k] = v
	}
	return out
}

// CloneAll deep-copies a slice of records.
func CloneAll(rows []Record) []Record {
	if rows == nil {
		return nil
	}
	out := make([]Record, len(rows))
	for i, r := range rows {
		out[i] = r.Clone()
	}
	return out
}

// typeRank orders values of different types so Compare is total.
// Nil sorts first, then bools, numbers, strings, everything else last.
func typeRank(v any) int {
	switch v.(type) {
	case nil:
		return 0
	case bool:
		return 1
	case float64, int, int64, float32:
		return 2
	case string:
		return 3
	default:
		return 4
	}
}

// AsNumber coerces JSON and YAML numeric representations to float64.
func AsNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}

// Compare imposes a total order on scalar field values for sorting:
// -1 if a < b, 0 if equal, 1 if a > b. Values of different types order
// by type rank, matching nothing more precise than the source data
// guarantees (ties are not broken further).
func Compare(a, b any) int {
	ra, rb := typeRank(a), typeRank(b)
	if ra != rb {
		if ra < rb {
			return -1
		}
		return 1
	}
	switch ra {
	case 0:
		return 0
	case 1:
		av, bv := a.(bool), b.(bool)
		if av == bv {
			return 0
		}
		if !av {
			return -1
		}
		return 1
	case 2:
		av, _ := AsNumber(a)
		bv, _ := AsNumber(b)
		switch {
		case av < bv:
			return -1
		case av > bv:
			return 1
		default:
			return 0
		}
	case 3:
		av, bv := a.(string), b.(string)
		switch {
		case av < bv:
			return -1
		case av > bv:
			return 1
		default:
			return 0
		}
	default:
		return 0
	}
}

// Equal reports loose equality between field values. Numbers compare
// numerically regardless of representation so a YAML int matches the
// float64 the same value becomes after a JSON round trip.
func Equal(a, b any) bool {
	if an, ok := AsNumber(a); ok {
		if bn, ok := AsNumber(b); ok {
			return an == bn
		}
		return false
	}
	if a == nil || b == nil {
		return a == b
	}
	// Maps and slices survive the JSON round trip, so a filter value can
	// be non-comparable. Direct == would panic on those.
	if !reflect.TypeOf(a).Comparable() || !reflect.TypeOf(b).Comparable() {
		return reflect.DeepEqual(a, b)
	}
	return a == b
}
