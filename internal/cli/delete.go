package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/traits/pkg/types"
)

func newDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete traits|compositions <name>",
		Short: "Remove a stored trait or composition",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			table, err := tableFor(args[0])
			if err != nil {
				return err
			}
			name := args[1]
			return a.withCatalog(func(catalog types.Catalog) error {
				rec, err := findByName(catalog, table, name)
				if err != nil {
					return err
				}
				tbl, err := catalog.GetTable(table)
				if err != nil {
					return classify(err)
				}
				id := recordID(rec)
				if err := tbl.Delete(id); err != nil {
					return classify(err)
				}
				a.logger.Info("record deleted",
					slog.String("table", table),
					slog.String("name", name))

				if a.jsonMode {
					return writeJSON(cmd.OutOrStdout(), map[string]string{"deleted": name, "id": id})
				}
				fmt.Fprintf(cmd.OutOrStdout(), "deleted %s %s\n", kindName(table), name)
				return nil
			})
		},
	}
}
