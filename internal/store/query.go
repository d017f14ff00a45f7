package store

import (
	"sort"

	"github.com/sunucargo/platform/internal/metrics"
	"github.com/sunucargo/platform/internal/record"
)

// Result is the envelope every list terminal returns. Err is populated
// only by operations that can fail validation; an empty Data is never
// an error.
type Result struct {
	Data []record.Record
	Err  error
}

// SingleResult is the envelope of single-row terminals. Data is nil
// when nothing matched.
type SingleResult struct {
	Data record.Record
	Err  error
}

// filterKind is the closed set of supported predicates.
type filterKind int

const (
	filterEq  filterKind = iota // field = value
	filterIn                    // field in values
	filterGte                   // field >= value
)

type filter struct {
	kind   filterKind
	field  string
	value  any
	values []any
}

type ordering struct {
	field     string
	ascending bool
}

// Query accumulates filter, order, and limit directives over one named
// collection. Nothing executes until a terminal call; builder calls
// compose rather than overwrite, so two Eq calls both apply.
type Query struct {
	store      *Store
	collection string
	filters    []filter
	order      *ordering
	limit      int
}

// Select is accepted for call-site parity with the remote client.
// Column projection is not performed; rows always carry every field.
func (q *Query) Select(columns ...string) *Query {
	return q
}

// Eq adds an equality predicate. Predicates combine with AND.
func (q *Query) Eq(field string, value any) *Query {
	q.filters = append(q.filters, filter{kind: filterEq, field: field, value: value})
	return q
}

// In adds a set-membership predicate.
func (q *Query) In(field string, values ...any) *Query {
	q.filters = append(q.filters, filter{kind: filterIn, field: field, values: values})
	return q
}

// Gte adds a minimum-threshold predicate.
func (q *Query) Gte(field string, value any) *Query {
	q.filters = append(q.filters, filter{kind: filterGte, field: field, value: value})
	return q
}

// Order sets the single-field ordering. Ties keep the underlying
// sequence order and nothing more.
func (q *Query) Order(field string, ascending bool) *Query {
	q.order = &ordering{field: field, ascending: ascending}
	return q
}

// Limit caps the result length after filtering and ordering.
func (q *Query) Limit(n int) *Query {
	q.limit = n
	return q
}

// All executes the query and returns every matching row.
func (q *Query) All() Result {
	return Result{Data: q.execute()}
}

// Single executes the query and returns the first matching row, or nil
// data when nothing matched. Zero matches is not an error.
func (q *Query) Single() SingleResult {
	rows := q.execute()
	if len(rows) == 0 {
		return SingleResult{}
	}
	return SingleResult{Data: rows[0]}
}

func (q *Query) execute() []record.Record {
	rows := q.store.load(q.collection)

	filtered := rows[:0:0]
	for _, row := range rows {
		if q.matches(row) {
			filtered = append(filtered, row)
		}
	}

	if q.order != nil {
		field, asc := q.order.field, q.order.ascending
		sort.SliceStable(filtered, func(i, j int) bool {
			c := record.Compare(filtered[i][field], filtered[j][field])
			if asc {
				return c < 0
			}
			return c > 0
		})
	}

	if q.limit > 0 && len(filtered) > q.limit {
		filtered = filtered[:q.limit]
	}

	filtered = q.store.joins.Apply(q.collection, filtered, rawSource{q.store})

	metrics.OperationsTotal.WithLabelValues(q.collection, "read").Inc()
	return filtered
}

// matches evaluates the accumulated predicates, ANDed together.
func (q *Query) matches(row record.Record) bool {
	for _, f := range q.filters {
		v := row[f.field]
		switch f.kind {
		case filterEq:
			if !record.Equal(v, f.value) {
				return false
			}
		case filterIn:
			found := false
			for _, candidate := range f.values {
				if record.Equal(v, candidate) {
					found = true
					break
				}
			}
			if !found {
				return false
			}
		case filterGte:
			if record.Compare(v, f.value) < 0 {
				return false
			}
		}
	}
	return true
}
