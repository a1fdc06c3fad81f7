package cli

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/mesh-intelligence/traits/pkg/sqlite"
	"github.com/mesh-intelligence/traits/pkg/traits"
	"github.com/mesh-intelligence/traits/pkg/types"
)

// openCatalog attaches the configured catalog. The caller must Detach it.
func (a *app) openCatalog() (types.Catalog, error) {
	cfg, err := a.catalogConfig()
	if err != nil {
		return nil, sysError(err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, userError(fmt.Errorf("config: %w", err))
	}

	catalog := sqlite.NewBackend(a.logger)
	if err := catalog.Attach(cfg); err != nil {
		return nil, sysError(fmt.Errorf("open catalog: %w", err))
	}
	a.logger.Debug("catalog opened", slog.String("data_dir", cfg.DataDir))
	return catalog, nil
}

// withCatalog runs fn against an attached catalog and detaches afterwards.
func (a *app) withCatalog(fn func(types.Catalog) error) (err error) {
	catalog, err := a.openCatalog()
	if err != nil {
		return err
	}
	defer func() {
		if derr := catalog.Detach(); derr != nil && err == nil {
			err = sysError(derr)
		}
	}()
	return fn(catalog)
}

// userErrors are the sentinels caused by bad input rather than by the
// environment.
var userErrors = []error{
	types.ErrNotFound,
	types.ErrInvalidID,
	types.ErrInvalidData,
	types.ErrInvalidName,
	types.ErrDuplicateName,
	types.ErrInvalidFilter,
	types.ErrInvalidRecipe,
	types.ErrUnknownOperand,
	types.ErrTableNotFound,
	traits.ErrInvalidArgument,
	traits.ErrUnprovidedMethod,
	traits.ErrUnresolvedConflict,
	traits.ErrUnsatisfiedCondition,
	traits.ErrNoMethod,
	traits.ErrInvalidTrait,
	traits.ErrNilMethodBody,
}

// classify marks err as a user or system error.
func classify(err error) error {
	if err == nil {
		return nil
	}
	var e *exitError
	if errors.As(err, &e) {
		return err
	}
	for _, target := range userErrors {
		if errors.Is(err, target) {
			return userError(err)
		}
	}
	return sysError(err)
}

// tableFor maps the kind argument of list, show and delete to a table name.
func tableFor(kind string) (string, error) {
	switch kind {
	case "trait", "traits":
		return types.TraitsTable, nil
	case "composition", "compositions":
		return types.CompositionsTable, nil
	}
	return "", userError(fmt.Errorf("unknown kind %q (want traits or compositions)", kind))
}

// findByName returns the record named name in table.
func findByName(catalog types.Catalog, table, name string) (any, error) {
	tbl, err := catalog.GetTable(table)
	if err != nil {
		return nil, classify(err)
	}
	rows, err := tbl.Fetch(map[string]any{"name": name})
	if err != nil {
		return nil, classify(err)
	}
	if len(rows) == 0 {
		return nil, userError(fmt.Errorf("%s %q: %w", table, name, types.ErrNotFound))
	}
	return rows[0], nil
}

// recordID returns the catalog ID of a trait or composition record.
func recordID(rec any) string {
	switch r := rec.(type) {
	case *types.TraitRecord:
		return r.TraitID
	case *types.CompositionRecord:
		return r.CompositionID
	}
	return ""
}
