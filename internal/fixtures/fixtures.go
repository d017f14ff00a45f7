// Package fixtures holds the default seed data every adapter starts
// from. The data ships as an embedded YAML document; relative timestamp
// placeholders resolve against a caller-supplied clock so loading is
// deterministic under test.
package fixtures

import (
	_ "embed"
	"fmt"
	"sort"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/sunucargo/platform/internal/record"
)

//go:embed seed.yaml
var seedYAML []byte

// Timestamp placeholders recognized in string field values.
const (
	placeholderNow      = "$now"
	placeholderLastWeek = "$lastWeek"
)

// Set is the loaded fixture data, keyed by collection name.
type Set map[string][]record.Record

// Load parses the embedded seed document and resolves timestamp
// placeholders against now. "$lastWeek" is now minus seven days.
func Load(now time.Time) (Set, error) {
	var raw map[string][]map[string]any
	if err := yaml.Unmarshal(seedYAML, &raw); err != nil {
		return nil, fmt.Errorf("parse seed data: %w", err)
	}

	nowStr := now.UTC().Format(time.RFC3339)
	lastWeekStr := now.UTC().Add(-7 * 24 * time.Hour).Format(time.RFC3339)

	set := make(Set, len(raw))
	for name, rows := range raw {
		out := make([]record.Record, len(rows))
		for i, row := range rows {
			rec := record.Record(row)
			for k, v := range rec {
				switch v {
				case placeholderNow:
					rec[k] = nowStr
				case placeholderLastWeek:
					rec[k] = lastWeekStr
				}
			}
			out[i] = rec
		}
		set[name] = out
	}
	return set, nil
}

// MustLoad is Load for wiring paths where seed data is known good.
// The embedded document is validated by tests, so a parse failure here
// is a build defect.
func MustLoad(now time.Time) Set {
	set, err := Load(now)
	if err != nil {
		panic(err)
	}
	return set
}

// Collection returns a deep copy of the fixture rows for name, or an
// empty slice for a collection with no fixtures. Unknown names seed
// empty, same as the original emulator.
func (s Set) Collection(name string) []record.Record {
	rows, ok := s[name]
	if !ok {
		return []record.Record{}
	}
	return record.CloneAll(rows)
}

// Names returns the fixture collection names in sorted order.
func (s Set) Names() []string {
	names := make([]string, 0, len(s))
	for name := range s {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
