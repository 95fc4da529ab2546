// Package sqlite exposes the SQLite recipe store to programs outside this
// module while keeping its implementation internal.
package sqlite

import (
	"go.uber.org/zap"

	"github.com/mesh-intelligence/resippy/internal/sqlite"
)

// Backend is the SQLite recipe store.
type Backend = sqlite.Backend

// ResultSet holds the rows of an executed query.
type ResultSet = sqlite.ResultSet

// NewBackend creates a store that is not yet attached; call Attach with a
// Config to open it. A nil logger discards log output.
//
// Example:
//
//	store := sqlite.NewBackend(nil)
//	err := store.Attach(types.Config{
//	    Backend: types.BackendSQLite,
//	    DataDir: ".resippy-db",
//	})
//	defer store.Detach()
func NewBackend(logger *zap.Logger) *Backend {
	return sqlite.NewBackend(logger)
}
