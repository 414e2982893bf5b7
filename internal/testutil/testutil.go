package testutil

import (
	"database/sql"
	"testing"

	"github.com/isdelr/daily-diet-be/internal/database"
)

// OpenTestDB opens an in-memory SQLite database with the schema applied.
// A shared-cache DSN keeps the database alive across pooled connections.
// The database is closed via t.Cleanup.
func OpenTestDB(t *testing.T, name string) *sql.DB {
	t.Helper()
	db, err := database.New("file:" + name + "?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return db
}
