package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewWhoamiCommand creates the whoami command. It reads the identity
// marker the durable adapter mirrors on sign-in, which is how a
// stateless context discovers the signed-in credential.
func NewWhoamiCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "whoami",
		Short:         "Show the credential recorded by the identity marker",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWhoami(rootOpts, cmd)
		},
	}
}

func runWhoami(opts *RootOptions, cmd *cobra.Command) error {
	st, marker, closer, err := openStore(opts)
	if err != nil {
		return err
	}
	defer closer()

	id, ok := marker.Get()
	if !ok {
		fmt.Fprintln(cmd.OutOrStdout(), "not signed in")
		return nil
	}

	profile := st.Collection("profiles").Eq("id", id).Single()
	if profile.Data == nil {
		fmt.Fprintf(cmd.OutOrStdout(), "%s (no profile)\n", id)
		return nil
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s  %s  role=%s\n", id, profile.Data["email"], profile.Data["role"])
	return nil
}
