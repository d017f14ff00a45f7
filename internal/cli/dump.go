package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

// DumpOptions holds flags for the dump command.
type DumpOptions struct {
	*RootOptions
	Limit int
	Order string
	Desc  bool
}

// NewDumpCommand creates the dump command.
func NewDumpCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &DumpOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "dump <collection>",
		Short: "Print the rows of a collection as JSON",
		Long: `Print the rows of a collection as JSON, joins resolved.

Example:
  sunucargo dump transport_requests --order estimated_price --desc --limit 5`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDump(opts, args[0], cmd)
		},
	}

	cmd.Flags().IntVar(&opts.Limit, "limit", 0, "maximum rows to print (0 = all)")
	cmd.Flags().StringVar(&opts.Order, "order", "", "field to order by")
	cmd.Flags().BoolVar(&opts.Desc, "desc", false, "order descending")

	return cmd
}

func runDump(opts *DumpOptions, collection string, cmd *cobra.Command) error {
	st, _, closer, err := openStore(opts.RootOptions)
	if err != nil {
		return err
	}
	defer closer()

	q := st.Collection(collection)
	if opts.Order != "" {
		q = q.Order(opts.Order, !opts.Desc)
	}
	if opts.Limit > 0 {
		q = q.Limit(opts.Limit)
	}

	res := q.All()
	if res.Err != nil {
		return res.Err
	}

	out, err := json.MarshalIndent(res.Data, "", "  ")
	if err != nil {
		return fmt.Errorf("encode rows: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(out))
	return nil
}
