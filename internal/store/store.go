// Package store implements the collection store of the embedded backend
// emulator: named record sequences over a persistence adapter, a
// chainable deferred query builder, and the mutation engine. Every
// terminal operation returns a result envelope and never panics; empty
// reads are not errors.
package store

import (
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/sunucargo/platform/internal/backend"
	"github.com/sunucargo/platform/internal/fixtures"
	"github.com/sunucargo/platform/internal/join"
	"github.com/sunucargo/platform/internal/metrics"
	"github.com/sunucargo/platform/internal/record"
	"github.com/sunucargo/platform/pkg/logger"
)

// Store is a collection store bound to one persistence adapter. Two
// stores over different adapters share nothing: writes through one are
// invisible to the other.
type Store struct {
	backend backend.StorageBackend
	seeds   fixtures.Set
	joins   *join.Rules
	now     func() time.Time
	newID   func() string
	log     zerolog.Logger
}

// Options tunes a Store at construction. Zero values select production
// defaults; tests inject deterministic clocks and id generators.
type Options struct {
	Seeds  fixtures.Set
	Joins  *join.Rules
	Now    func() time.Time
	NewID  func() string
	Logger *zerolog.Logger
}

// New creates a Store over the given adapter.
func New(b backend.StorageBackend, opts Options) *Store {
	s := &Store{
		backend: b,
		seeds:   opts.Seeds,
		joins:   opts.Joins,
		now:     opts.Now,
		newID:   opts.NewID,
	}
	if s.now == nil {
		s.now = func() time.Time { return time.Now().UTC() }
	}
	if s.seeds == nil {
		s.seeds = fixtures.MustLoad(s.now())
	}
	if s.joins == nil {
		s.joins = join.Defaults()
	}
	if s.newID == nil {
		s.newID = uuid.NewString
	}
	if opts.Logger != nil {
		s.log = *opts.Logger
	} else {
		s.log = logger.Get().With().Str("component", "store").Logger()
	}
	return s
}

// Collection starts a query over the named collection.
func (s *Store) Collection(name string) *Query {
	return &Query{store: s, collection: name}
}

// load returns the current snapshot of a collection, seeding it with
// fixture data on the first access that finds the adapter uninitialized.
// Seeding happens at most once per adapter: an initialized-but-empty
// collection is returned as is.
func (s *Store) load(name string) []record.Record {
	rows, initialized := s.backend.Read(name)
	if initialized {
		return rows
	}
	rows = s.seeds.Collection(name)
	s.backend.Write(name, rows)
	metrics.SeededTotal.Inc()
	s.log.Debug().Str("collection", name).Int("rows", len(rows)).Msg("seeded collection")
	return rows
}

// rawSource exposes seeding reads without join resolution, for the
// relation rules.
type rawSource struct{ s *Store }

func (r rawSource) Collection(name string) []record.Record {
	return r.s.load(name)
}

// timestamp renders the current clock in the format records carry.
func (s *Store) timestamp() string {
	return s.now().UTC().Format(time.RFC3339)
}
