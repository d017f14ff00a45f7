// Package cli implements the sunucargo inspector commands. The emulator
// itself is consumed in process; these commands exist to seed and
// examine a durable database file during development.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sunucargo/platform/internal/backend"
	"github.com/sunucargo/platform/internal/store"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Backend string // "memory" | "sqlite"
	DBPath  string
	Verbose bool
}

// ValidBackends defines the allowed --backend values.
var ValidBackends = []string{backend.KindMemory, backend.KindSQLite}

// NewRootCommand creates the root command for the sunucargo CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "sunucargo",
		Short: "Inspector for the Sunu Cargo embedded data store",
		Long:  "Seed and examine the embedded data-store emulator used by the Sunu Cargo platform.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidBackend(opts.Backend) {
				return fmt.Errorf("invalid backend %q: must be one of %v", opts.Backend, ValidBackends)
			}
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&opts.Backend, "backend", backend.KindSQLite, "persistence adapter (memory|sqlite)")
	cmd.PersistentFlags().StringVar(&opts.DBPath, "db", "sunucargo.db", "database file for the sqlite backend")
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")

	cmd.AddCommand(NewSeedCommand(opts))
	cmd.AddCommand(NewDumpCommand(opts))
	cmd.AddCommand(NewWhoamiCommand(opts))

	return cmd
}

func isValidBackend(kind string) bool {
	for _, k := range ValidBackends {
		if kind == k {
			return true
		}
	}
	return false
}

// openStore builds a store over the adapter selected by the global
// flags. The returned closer releases the database file, if any.
func openStore(opts *RootOptions) (*store.Store, backend.Marker, func() error, error) {
	b, marker, err := backend.New(opts.Backend, opts.DBPath)
	if err != nil {
		return nil, nil, nil, err
	}
	closer := func() error { return nil }
	if s, ok := b.(*backend.SQLite); ok {
		closer = s.Close
	}
	return store.New(b, store.Options{}), marker, closer, nil
}
