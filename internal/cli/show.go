package cli

import (
	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/traits/pkg/types"
)

func newShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show traits|compositions <name>",
		Short: "Print a stored trait or composition",
		Long:  "Print a stored record as YAML, in the form a manifest declares it, or as JSON with --json.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			table, err := tableFor(args[0])
			if err != nil {
				return err
			}
			return a.withCatalog(func(catalog types.Catalog) error {
				rec, err := findByName(catalog, table, args[1])
				if err != nil {
					return err
				}
				if a.jsonMode {
					return writeJSON(cmd.OutOrStdout(), rec)
				}
				return writeYAML(cmd.OutOrStdout(), rec)
			})
		},
	}
}
