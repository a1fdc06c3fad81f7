package cli

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/traits/internal/recipe"
	"github.com/mesh-intelligence/traits/pkg/types"
)

// declared describes one record written by declare.
type declared struct {
	Kind    string `json:"kind"`
	Name    string `json:"name"`
	ID      string `json:"id"`
	Updated bool   `json:"updated"`
}

func newDeclareCmd(a *app) *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "declare -f manifest.yaml",
		Short: "Store the traits and compositions of a YAML manifest",
		Long: "Store every trait and composition declared in a YAML manifest. Records whose\n" +
			"name already exists in the catalog are replaced.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := recipe.LoadManifest(file)
			if err != nil {
				return classify(err)
			}

			// Every trait must compile before anything is written.
			for i := range m.Traits {
				if _, err := recipe.CompileTrait(&m.Traits[i]); err != nil {
					return classify(err)
				}
			}

			var out []declared
			err = a.withCatalog(func(catalog types.Catalog) error {
				for i := range m.Traits {
					d, err := upsert(catalog, types.TraitsTable, m.Traits[i].Name, &m.Traits[i])
					if err != nil {
						return err
					}
					out = append(out, d)
				}
				for i := range m.Compositions {
					d, err := upsert(catalog, types.CompositionsTable, m.Compositions[i].Name, &m.Compositions[i])
					if err != nil {
						return err
					}
					out = append(out, d)
				}
				return nil
			})
			if err != nil {
				return err
			}

			a.logger.Info("manifest declared",
				slog.String("file", file),
				slog.Int("traits", len(m.Traits)),
				slog.Int("compositions", len(m.Compositions)))

			if a.jsonMode {
				return writeJSON(cmd.OutOrStdout(), out)
			}
			for _, d := range out {
				verb := "declared"
				if d.Updated {
					verb = "updated"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s (%s)\n", verb, d.Kind, d.Name, d.ID)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "YAML manifest to declare")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

// upsert stores rec under the ID of the existing record with the same name,
// or under a new ID.
func upsert(catalog types.Catalog, table, name string, rec any) (declared, error) {
	d := declared{Kind: kindName(table), Name: name}

	existing, err := findByName(catalog, table, name)
	switch {
	case err == nil:
		d.ID, d.Updated = recordID(existing), true
	case !errors.Is(err, types.ErrNotFound):
		return d, err
	}

	tbl, err := catalog.GetTable(table)
	if err != nil {
		return d, classify(err)
	}
	if d.ID, err = tbl.Set(d.ID, rec); err != nil {
		return d, classify(err)
	}
	return d, nil
}

func kindName(table string) string {
	if table == types.CompositionsTable {
		return "composition"
	}
	return "trait"
}
