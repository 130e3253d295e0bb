package database

import (
	"context"
	"path/filepath"
	"testing"
)

// Foreign key enforcement is a per-connection setting in SQLite. It has to
// hold on every connection the pool hands out, not just the first one.
func TestSQLiteForeignKeysOnEveryPooledConnection(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := Initialize(dbPath)
	if err != nil {
		t.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	ctx := context.Background()

	// Hold several connections open at once so each check runs on a
	// distinct freshly opened connection.
	for i := 0; i < 3; i++ {
		conn, err := db.DB.Conn(ctx)
		if err != nil {
			t.Fatalf("Failed to open connection %d: %v", i, err)
		}
		defer conn.Close()

		var enabled int
		if err := conn.QueryRowContext(ctx, "PRAGMA foreign_keys").Scan(&enabled); err != nil {
			t.Fatalf("Failed to read foreign_keys pragma on connection %d: %v", i, err)
		}
		if enabled != 1 {
			t.Errorf("foreign_keys = %d on connection %d, want 1", enabled, i)
		}
	}
}
