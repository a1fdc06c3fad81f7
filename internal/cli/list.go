package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/traits/pkg/types"
)

func newListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:       "list traits|compositions",
		Short:     "List stored traits or compositions",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"traits", "compositions"},
		RunE: func(cmd *cobra.Command, args []string) error {
			table, err := tableFor(args[0])
			if err != nil {
				return err
			}
			return a.withCatalog(func(catalog types.Catalog) error {
				tbl, err := catalog.GetTable(table)
				if err != nil {
					return classify(err)
				}
				rows, err := tbl.Fetch(nil)
				if err != nil {
					return classify(err)
				}
				if a.jsonMode {
					return writeJSON(cmd.OutOrStdout(), rows)
				}

				w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
				for _, row := range rows {
					switch r := row.(type) {
					case *types.TraitRecord:
						fmt.Fprintf(w, "%s\t%s\t%s\n", r.Name, r.TraitID, strings.Join(r.MethodNames(), ", "))
					case *types.CompositionRecord:
						fmt.Fprintf(w, "%s\t%s\t%s\n", r.Name, r.CompositionID, strings.Join(r.TraitNames(), " + "))
					}
				}
				return w.Flush()
			})
		},
	}
}
