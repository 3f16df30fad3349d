// Package testutil holds local-state fixtures shared by the repository,
// service and cli tests.
package testutil

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/projextpal/projextpal-cli/internal/db"
	"github.com/stretchr/testify/require"
)

// NewTestDB opens a migrated in-memory state database, closed at cleanup.
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()
	return OpenTestDB(t, db.MemoryPath)
}

// NewTestStore is NewTestDB plus the unit of work the history service
// commits through.
func NewTestStore(t *testing.T) (*sql.DB, db.UnitOfWork) {
	t.Helper()
	database := NewTestDB(t)
	return database, db.NewSQLiteUnitOfWork(database)
}

// StatePath returns a state.db path in a fresh temp dir, nested one level
// so OpenDB has a directory to create.
func StatePath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "projextpal", "state.db")
}

// OpenTestDB opens the state database at path the way the CLI does at
// startup. Tests may open the same path again to check what persisted.
func OpenTestDB(t *testing.T, path string) *sql.DB {
	t.Helper()
	database, err := db.OpenDB(path)
	require.NoError(t, err, "opening state database %s", path)
	t.Cleanup(func() { _ = database.Close() })
	return database
}
