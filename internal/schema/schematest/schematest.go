// Package schematest provides a migrated in-memory database for store tests.
package schematest

import (
	"context"
	"testing"

	"github.com/uptrace/bun"

	"github.com/DarshanCode2005/gitmesh/internal/schema"
	"github.com/DarshanCode2005/gitmesh/pkg/database"
)

// NewDB returns a fresh, migrated SQLite database closed at test cleanup.
func NewDB(t testing.TB) *bun.DB {
	t.Helper()

	db, err := database.Open(context.Background(), database.Config{
		Driver: database.DriverSQLite,
		DSN:    "file::memory:?_foreign_keys=on",
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if err := schema.Migrate(context.Background(), db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}
