package store

import (
	"github.com/sunucargo/platform/internal/metrics"
	"github.com/sunucargo/platform/internal/record"
)

// Insert appends one or more records to the collection. A record
// missing an identifier receives a generated one and a record missing a
// creation timestamp receives the current time; supplied values win.
// The inserted records come back in the envelope.
func (q *Query) Insert(rows ...record.Record) Result {
	snapshot := q.store.load(q.collection)

	inserted := make([]record.Record, 0, len(rows))
	for _, row := range rows {
		r := row.Clone()
		if r == nil {
			r = record.Record{}
		}
		if r.ID() == "" {
			r["id"] = q.store.newID()
		}
		if _, ok := r["created_at"]; !ok {
			r["created_at"] = q.store.timestamp()
		}
		inserted = append(inserted, r)
	}

	snapshot = append(snapshot, inserted...)
	q.store.backend.Write(q.collection, snapshot)

	metrics.OperationsTotal.WithLabelValues(q.collection, "insert").Inc()
	q.store.log.Debug().
		Str("collection", q.collection).
		Int("rows", len(inserted)).
		Msg("inserted")

	return Result{Data: record.CloneAll(inserted)}
}

// Update shallow-merges patch into every row matching the accumulated
// filters and stamps updated_at. Matching zero rows returns empty data
// with no error. Entity invariants are not enforced here; callers
// pre-check uniqueness where it matters.
func (q *Query) Update(patch record.Record) Result {
	snapshot := q.store.load(q.collection)

	updated := []record.Record{}
	for i, row := range snapshot {
		if !q.matches(row) {
			continue
		}
		merged := row.Merge(patch)
		merged["updated_at"] = q.store.timestamp()
		snapshot[i] = merged
		updated = append(updated, merged)
	}

	if len(updated) > 0 {
		q.store.backend.Write(q.collection, snapshot)
	}

	metrics.OperationsTotal.WithLabelValues(q.collection, "update").Inc()
	q.store.log.Debug().
		Str("collection", q.collection).
		Int("rows", len(updated)).
		Msg("updated")

	return Result{Data: record.CloneAll(updated)}
}

// UpdateSingle applies Update and returns the first updated row, or nil
// data when nothing matched.
func (q *Query) UpdateSingle(patch record.Record) SingleResult {
	res := q.Update(patch)
	if res.Err != nil || len(res.Data) == 0 {
		return SingleResult{Err: res.Err}
	}
	return SingleResult{Data: res.Data[0]}
}

// Delete permanently removes every row matching the accumulated
// filters. There is no tombstone and no error on zero matches.
func (q *Query) Delete() Result {
	snapshot := q.store.load(q.collection)

	kept := snapshot[:0:0]
	removed := 0
	for _, row := range snapshot {
		if q.matches(row) {
			removed++
			continue
		}
		kept = append(kept, row)
	}

	if removed > 0 {
		q.store.backend.Write(q.collection, kept)
	}

	metrics.OperationsTotal.WithLabelValues(q.collection, "delete").Inc()
	q.store.log.Debug().
		Str("collection", q.collection).
		Int("rows", removed).
		Msg("deleted")

	return Result{}
}
