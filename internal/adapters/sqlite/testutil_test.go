// Package sqlite_test contains integration tests for SQLite repositories.
//
// This file is the single point where the database schema is loaded for
// tests. All test setup uses db.GetSchemaSQL() so tests run against the
// authoritative schema, preventing drift between test and production.
package sqlite_test

import (
	"context"
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"

	"github.com/example/cradle/internal/db"
)

// setupTestDB creates an in-memory database with the authoritative schema.
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	testDB, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}

	if _, err := testDB.Exec(db.GetSchemaSQL()); err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}

	t.Cleanup(func() {
		testDB.Close()
	})

	return testDB
}

// seedSleep inserts a sleep row directly and returns its ID.
func seedSleep(t *testing.T, db *sql.DB, kind, start, end string) int64 {
	t.Helper()

	var res sql.Result
	var err error
	if end == "" {
		res, err = db.Exec("INSERT INTO sleep (type, start_time) VALUES (?, ?)", kind, start)
	} else {
		res, err = db.Exec("INSERT INTO sleep (type, start_time, end_time) VALUES (?, ?, ?)", kind, start, end)
	}
	if err != nil {
		t.Fatalf("failed to seed sleep: %v", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		t.Fatalf("failed to read seeded sleep id: %v", err)
	}
	return id
}

func ctx() context.Context {
	return context.Background()
}
