package recipe

import (
	"fmt"

	"github.com/mesh-intelligence/traits/pkg/types"
)

// Source looks up trait and composition records by name. Both lookups
// return an error wrapping types.ErrNotFound when the name is unknown.
type Source interface {
	TraitRecord(name string) (*types.TraitRecord, error)
	CompositionRecord(name string) (*types.CompositionRecord, error)
}

// CatalogSource reads records from an attached catalog.
type CatalogSource struct {
	Catalog types.Catalog
}

// TraitRecord fetches the trait named name from the traits table.
func (s CatalogSource) TraitRecord(name string) (*types.TraitRecord, error) {
	rec, err := fetchOne(s.Catalog, types.TraitsTable, name)
	if err != nil {
		return nil, err
	}
	tr, ok := rec.(*types.TraitRecord)
	if !ok {
		return nil, fmt.Errorf("%w: traits table returned %T", types.ErrInvalidData, rec)
	}
	return tr, nil
}

// CompositionRecord fetches the composition named name from the
// compositions table.
func (s CatalogSource) CompositionRecord(name string) (*types.CompositionRecord, error) {
	rec, err := fetchOne(s.Catalog, types.CompositionsTable, name)
	if err != nil {
		return nil, err
	}
	cr, ok := rec.(*types.CompositionRecord)
	if !ok {
		return nil, fmt.Errorf("%w: compositions table returned %T", types.ErrInvalidData, rec)
	}
	return cr, nil
}

func fetchOne(c types.Catalog, table, name string) (any, error) {
	tbl, err := c.GetTable(table)
	if err != nil {
		return nil, err
	}
	rows, err := tbl.Fetch(map[string]any{"name": name})
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%s %q: %w", table, name, types.ErrNotFound)
	}
	return rows[0], nil
}
