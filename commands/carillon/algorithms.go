package carillon

import (
	"fmt"

	"github.com/carillon-io/carillon-core/crypto/keygen"
	"github.com/spf13/cobra"
)

func newAlgorithmsCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "algorithms",
		Aliases: []string{"alg"},
		Short:   "List supported public-key algorithms",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, id := range keygen.DefaultRegistry().IDs() {
				fmt.Fprintln(cmd.OutOrStdout(), id)
			}
			return nil
		},
	}
}
