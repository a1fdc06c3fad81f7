package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/traits/pkg/types"
)

func newInitCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize the trait catalog",
		Long:  "Create the configuration and data directories, write a default config.yaml\nand initialize the catalog files.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var dataDir string
			err := a.withCatalog(func(types.Catalog) error {
				cfg, err := a.catalogConfig()
				dataDir = cfg.DataDir
				return err
			})
			if err != nil {
				return err
			}
			if a.jsonMode {
				return writeJSON(cmd.OutOrStdout(), map[string]string{
					"config_dir": a.configDir,
					"data_dir":   dataDir,
				})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Catalog initialized in %s\n", dataDir)
			return nil
		},
	}
}
