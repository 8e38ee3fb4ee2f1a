package testutil

import (
	"context"
	"testing"

	"github.com/Johnnypham7496/users-api/internal/database"
	"github.com/stretchr/testify/require"
)

// OpenInMemoryDB opens a named, shared-cache in-memory SQLite store with the users table created.
// The store is closed when the test finishes.
func OpenInMemoryDB(t *testing.T, name string) *database.SQLDatabase {
	t.Helper()
	db, err := database.NewSQLiteDatabase(context.Background(), "file:"+name+"?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}
