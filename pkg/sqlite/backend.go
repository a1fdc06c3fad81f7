// Package sqlite provides the public API for the SQLite trait catalog.
// It exposes the factory function while keeping implementation details
// internal.
package sqlite

import (
	"log/slog"

	"github.com/mesh-intelligence/traits/internal/sqlite"
	"github.com/mesh-intelligence/traits/pkg/types"
)

// NewBackend creates a new SQLite catalog. A nil logger uses slog.Default().
// The backend is not attached; call Attach with a Config to initialize.
//
// Example:
//
//	catalog := sqlite.NewBackend(nil)
//	err := catalog.Attach(types.Config{
//	    Backend: types.BackendSQLite,
//	    DataDir: ".traits-db",
//	})
//	defer catalog.Detach()
func NewBackend(logger *slog.Logger) types.Catalog {
	return sqlite.NewBackend(sqlite.WithLogger(logger))
}
