package backend

import (
	"sync"

	"github.com/sunucargo/platform/internal/record"
)

// Memory keeps collection snapshots in process memory. Data is lost when
// the hosting process restarts. Safe for concurrent use.
//
// Memory also carries the identity marker so a fully in-process setup
// needs no second component.
type Memory struct {
	mu          sync.RWMutex
	collections map[string][]record.Record
	markerID    string
	markerSet   bool
}

// NewMemory creates an empty in-memory backend. No collection is
// initialized until its first Write.
func NewMemory() *Memory {
	return &Memory{collections: make(map[string][]record.Record)}
}

func (m *Memory) Read(collection string) ([]record.Record, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	rows, ok := m.collections[collection]
	if !ok {
		return nil, false
	}
	return record.CloneAll(rows), true
}

func (m *Memory) Write(collection string, rows []record.Record) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if rows == nil {
		rows = []record.Record{}
	}
	m.collections[collection] = record.CloneAll(rows)
}

func (m *Memory) Set(credentialID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.markerID = credentialID
	m.markerSet = true
}

func (m *Memory) Get() (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if !m.markerSet || m.markerID == "" {
		return "", false
	}
	return m.markerID, true
}

func (m *Memory) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.markerID = ""
	m.markerSet = false
}
