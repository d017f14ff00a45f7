// Package join enriches read results with related rows from other
// collections. Relations are hand-coded per source collection and kept
// in a registry so each rule stays declarative and independently
// testable; there is no generic foreign-key mechanism.
package join

import "github.com/sunucargo/platform/internal/record"

// Source reads raw collection snapshots for relation lookups. The store
// passes a join-free reader here so rules cannot recurse.
type Source interface {
	Collection(name string) []record.Record
}

// Rule attaches one related field to a row. Resolve returns the value
// to set and whether a match was found; no match leaves the field
// absent rather than null.
type Rule struct {
	Field   string
	Resolve func(row record.Record, src Source) (any, bool)
}

// Rules is the relation registry: source collection name to the ordered
// rules applied after a base read.
type Rules struct {
	byCollection map[string][]Rule
}

// New creates an empty registry.
func New() *Rules {
	return &Rules{byCollection: make(map[string][]Rule)}
}

// Register appends a rule for a source collection.
func (r *Rules) Register(collection string, rule Rule) {
	r.byCollection[collection] = append(r.byCollection[collection], rule)
}

// Apply runs every rule registered for collection over rows. Rules are
// purely additive: a field already present on a row is never rewritten,
// and rows without a match keep the field absent. Rows are modified in
// place and returned for chaining.
func (r *Rules) Apply(collection string, rows []record.Record, src Source) []record.Record {
	rules := r.byCollection[collection]
	if len(rules) == 0 {
		return rows
	}
	for _, row := range rows {
		for _, rule := range rules {
			if _, exists := row[rule.Field]; exists {
				continue
			}
			if v, ok := rule.Resolve(row, src); ok {
				row[rule.Field] = v
			}
		}
	}
	return rows
}

// findByID returns the first row whose id equals id.
func findByID(rows []record.Record, id any) (record.Record, bool) {
	s, ok := id.(string)
	if !ok || s == "" {
		return nil, false
	}
	for _, row := range rows {
		if row.ID() == s {
			return row, true
		}
	}
	return nil, false
}

// lookup resolves a single related row by the id stored in field.
func lookup(target, field string) func(record.Record, Source) (any, bool) {
	return func(row record.Record, src Source) (any, bool) {
		related, ok := findByID(src.Collection(target), row[field])
		if !ok {
			return nil, false
		}
		return related, true
	}
}

// Defaults builds the relation registry for the platform collections.
func Defaults() *Rules {
	r := New()

	// Requests carry their client, assigned transporter, and assigned
	// vehicle.
	r.Register("transport_requests", Rule{Field: "client", Resolve: lookup("profiles", "client_id")})
	r.Register("transport_requests", Rule{Field: "transporter", Resolve: lookup("profiles", "assigned_transporter_id")})
	r.Register("transport_requests", Rule{Field: "vehicle", Resolve: lookup("vehicles", "assigned_vehicle_id")})

	// Transporter profiles list the vehicles they own. The list may be
	// empty; non-transporter profiles get no field at all.
	r.Register("profiles", Rule{Field: "vehicles", Resolve: func(row record.Record, src Source) (any, bool) {
		if row["role"] != "transporter" {
			return nil, false
		}
		owned := []record.Record{}
		for _, v := range src.Collection("vehicles") {
			if record.Equal(v["owner_id"], row["id"]) {
				owned = append(owned, v)
			}
		}
		return owned, true
	}})

	// Transactions carry their wallet, itself enriched with its owner.
	r.Register("wallet_transactions", Rule{Field: "wallet", Resolve: func(row record.Record, src Source) (any, bool) {
		wallet, ok := findByID(src.Collection("wallets"), row["wallet_id"])
		if !ok {
			return nil, false
		}
		if user, ok := findByID(src.Collection("profiles"), wallet["user_id"]); ok {
			wallet["user"] = user
		}
		return wallet, true
	}})

	// Wallets carry their owning profile when not already attached.
	r.Register("wallets", Rule{Field: "profiles", Resolve: lookup("profiles", "user_id")})

	// Disputes carry the opener, the assigned moderator, and the
	// disputed request.
	r.Register("disputes", Rule{Field: "opener", Resolve: lookup("profiles", "opened_by")})
	r.Register("disputes", Rule{Field: "moderator", Resolve: lookup("profiles", "assigned_moderator_id")})
	r.Register("disputes", Rule{Field: "request", Resolve: lookup("transport_requests", "transport_request_id")})

	return r
}
