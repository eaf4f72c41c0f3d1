package cmd

import (
	"fmt"
	"text/tabwriter"

	"shape-transformer/internal/builder"

	"github.com/spf13/cobra"
)

func newKindsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "kinds",
		Short: "List transformation kinds and how many pairs each needs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "KIND\tPAIRS\tTITLE")
			for _, k := range builder.Kinds() {
				fmt.Fprintf(w, "%s\t%d\t%s\n", k, k.Pairs(), k.Title())
			}
			return w.Flush()
		},
	}
}
