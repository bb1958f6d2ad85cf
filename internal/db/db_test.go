package db

import (
	"context"
	"database/sql"
	"testing"
)

func setupTestDB(t *testing.T) *DB {
	t.Helper()

	// Use in-memory database for testing
	conn, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	// Each pooled connection to :memory: gets its own database.
	conn.SetMaxOpenConns(1)

	// Initialize schema
	if err := initSchema(conn); err != nil {
		t.Fatalf("Failed to initialize schema: %v", err)
	}

	return &DB{DB: conn, driver: "sqlite3"}
}

func TestGetMissing(t *testing.T) {
	testDB := setupTestDB(t)
	defer testDB.Close()

	value, ok, err := testDB.Get(context.Background(), "session", "cities")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if ok {
		t.Errorf("Expected no row, got %q", value)
	}
}

func TestSetAndGet(t *testing.T) {
	testDB := setupTestDB(t)
	defer testDB.Close()
	ctx := context.Background()

	tests := []struct {
		name  string
		scope string
		key   string
		value string
	}{
		{name: "json array", scope: "a", key: "cities", value: `["Paris","London"]`},
		{name: "empty value", scope: "b", key: "cities", value: ""},
		{name: "unicode", scope: "c", key: "cities", value: `["São Paulo"]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := testDB.Set(ctx, tt.scope, tt.key, tt.value); err != nil {
				t.Fatalf("Set() error = %v", err)
			}

			got, ok, err := testDB.Get(ctx, tt.scope, tt.key)
			if err != nil {
				t.Fatalf("Get() error = %v", err)
			}
			if !ok {
				t.Fatal("Expected row to exist")
			}
			if got != tt.value {
				t.Errorf("Expected %q, got %q", tt.value, got)
			}
		})
	}
}

func TestSetOverwrites(t *testing.T) {
	testDB := setupTestDB(t)
	defer testDB.Close()
	ctx := context.Background()

	if err := testDB.Set(ctx, "s", "cities", `["Paris"]`); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if err := testDB.Set(ctx, "s", "cities", `["London","Paris"]`); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	got, _, err := testDB.Get(ctx, "s", "cities")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got != `["London","Paris"]` {
		t.Errorf("Expected overwritten value, got %q", got)
	}

	var count int
	if err := testDB.QueryRow("SELECT COUNT(*) FROM kv WHERE scope = 's'").Scan(&count); err != nil {
		t.Fatalf("count query failed: %v", err)
	}
	if count != 1 {
		t.Errorf("Expected 1 row, got %d", count)
	}
}

func TestScopeIsolation(t *testing.T) {
	testDB := setupTestDB(t)
	defer testDB.Close()
	ctx := context.Background()

	alice := testDB.Scope("alice")
	bob := testDB.Scope("bob")

	if err := alice.Set(ctx, "cities", `["Oslo"]`); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	if _, ok, err := bob.Get(ctx, "cities"); err != nil || ok {
		t.Errorf("Expected bob to see nothing, ok=%v err=%v", ok, err)
	}

	got, ok, err := alice.Get(ctx, "cities")
	if err != nil || !ok || got != `["Oslo"]` {
		t.Errorf("Unexpected alice value %q ok=%v err=%v", got, ok, err)
	}
}

func TestRebind(t *testing.T) {
	sqlite := &DB{driver: "sqlite3"}
	pg := &DB{driver: "pgx"}
	query := "SELECT value FROM kv WHERE scope = ? AND name = ?"

	if got := sqlite.rebind(query); got != query {
		t.Errorf("sqlite rebind changed query: %q", got)
	}
	want := "SELECT value FROM kv WHERE scope = $1 AND name = $2"
	if got := pg.rebind(query); got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
}

func TestNewDB(t *testing.T) {
	// Test with a temporary database file
	tmpFile := t.TempDir() + "/test_wthr.db"

	db, err := NewDB(tmpFile, "")
	if err != nil {
		t.Fatalf("Failed to create new DB: %v", err)
	}
	defer db.Close()

	// Verify we can ping it
	if err := db.Ping(); err != nil {
		t.Errorf("Failed to ping DB: %v", err)
	}

	if err := db.Set(context.Background(), "s", "k", "v"); err != nil {
		t.Errorf("Set on fresh DB failed: %v", err)
	}
}

func TestNilDB(t *testing.T) {
	var db *DB
	_, _, err := db.Get(context.Background(), "s", "k")
	if err == nil {
		t.Fatal("Expected error for nil database, got nil")
	}
	expectedMsg := "database not initialized"
	if err.Error() != expectedMsg {
		t.Errorf("Expected error message %q, got %q", expectedMsg, err.Error())
	}
	if err := db.Set(context.Background(), "s", "k", "v"); err == nil {
		t.Error("Expected error for nil database Set, got nil")
	}
}
