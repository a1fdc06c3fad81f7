package cli

import (
	"github.com/mesh-intelligence/traits/internal/recipe"
	"github.com/mesh-intelligence/traits/pkg/types"
)

// withAssembler runs fn with an assembler reading from the manifest at file
// or, when file is empty, from the catalog.
func (a *app) withAssembler(file string, fn func(*recipe.Assembler, types.Catalog) error) error {
	if file != "" {
		m, err := recipe.LoadManifest(file)
		if err != nil {
			return classify(err)
		}
		return fn(recipe.NewAssembler(m, a.logger), nil)
	}
	return a.withCatalog(func(catalog types.Catalog) error {
		return fn(recipe.NewAssembler(recipe.CatalogSource{Catalog: catalog}, a.logger), catalog)
	})
}
