// Package backend defines the persistence adapters behind the collection
// store. Two interchangeable implementations exist: Memory (process
// resident, lost on restart) and SQLite (client resident, survives
// restarts). Writes in one adapter are invisible to the other.
package backend

import (
	"fmt"

	"github.com/sunucargo/platform/internal/record"
)

// StorageBackend is the storage surface for named collections.
//
// Read returns the current snapshot of a collection and whether the
// collection has ever been initialized in this adapter. False means the
// caller should seed; an initialized-but-empty collection returns
// (empty, true) so seeding stays idempotent.
//
// Write replaces the entire collection snapshot. There are no partial
// writes.
//
// Neither method returns an error: an unreadable or corrupt snapshot
// reads as uninitialized, and write failures are logged and swallowed
// by the implementation.
type StorageBackend interface {
	Read(collection string) ([]record.Record, bool)
	Write(collection string, rows []record.Record)
}

// Marker is the small external identity slot, independent of the
// collection store. The durable adapter mirrors the signed-in credential
// id here so a stateless execution context can discover who is logged in
// without holding the durable adapter itself.
type Marker interface {
	Set(credentialID string)
	Get() (string, bool)
	Clear()
}

// Kinds accepted by New.
const (
	KindMemory = "memory"
	KindSQLite = "sqlite"
)

// New creates a storage backend by kind.
//
//	"memory" - in-process, ephemeral
//	"sqlite" - durable database file at path
func New(kind, path string) (StorageBackend, Marker, error) {
	switch kind {
	case KindMemory, "":
		m := NewMemory()
		return m, m, nil
	case KindSQLite:
		s, err := OpenSQLite(path)
		if err != nil {
			return nil, nil, err
		}
		return s, s, nil
	default:
		return nil, nil, fmt.Errorf("unknown backend kind %q (supported: memory, sqlite)", kind)
	}
}
