package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/sunucargo/platform/internal/fixtures"
)

// NewSeedCommand creates the seed command.
func NewSeedCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Initialize every collection with default fixture data",
		Long: `Initialize every collection with default fixture data.

Collections that already hold data are left untouched: seeding happens
only on the first access of an uninitialized collection.

Example:
  sunucargo seed --db demo.db`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSeed(rootOpts, cmd)
		},
	}
}

func runSeed(opts *RootOptions, cmd *cobra.Command) error {
	st, _, closer, err := openStore(opts)
	if err != nil {
		return err
	}
	defer closer()

	names := fixtureNames()
	for _, name := range names {
		res := st.Collection(name).All()
		if res.Err != nil {
			return res.Err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%-22s %d rows\n", name, len(res.Data))
	}
	return nil
}

func fixtureNames() []string {
	return fixtures.MustLoad(time.Now().UTC()).Names()
}
