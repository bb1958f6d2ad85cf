package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/mattn/go-sqlite3"
)

// DB wraps a database connection
type DB struct {
	*sql.DB
	driver string
}

// NewDB opens the key/value database. A non-empty databaseURL selects
// Postgres; otherwise a sqlite file at dbPath is used.
func NewDB(dbPath, databaseURL string) (*DB, error) {
	driver, dsn := "sqlite3", dbPath
	if databaseURL != "" {
		driver, dsn = "pgx", databaseURL
	}
	if dsn == "" {
		dsn = "wthr.db"
	}

	conn, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Verify connection
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if err := initSchema(conn); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return &DB{DB: conn, driver: driver}, nil
}

func initSchema(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS kv (
			scope      TEXT NOT NULL,
			name       TEXT NOT NULL,
			value      TEXT NOT NULL,
			updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			PRIMARY KEY (scope, name)
		)`)
	return err
}

// rebind rewrites ? placeholders to $n for Postgres.
func (d *DB) rebind(query string) string {
	if d.driver != "pgx" {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteString("$" + strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Get returns the value stored under (scope, name). The boolean is false
// when no row exists.
func (d *DB) Get(ctx context.Context, scope, name string) (string, bool, error) {
	if d == nil || d.DB == nil {
		return "", false, errors.New("database not initialized")
	}

	var value string
	err := d.QueryRowContext(ctx,
		d.rebind("SELECT value FROM kv WHERE scope = ? AND name = ?"),
		scope, name,
	).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get %s/%s: %w", scope, name, err)
	}
	return value, true, nil
}

// Set stores value under (scope, name), replacing any previous value.
func (d *DB) Set(ctx context.Context, scope, name, value string) error {
	if d == nil || d.DB == nil {
		return errors.New("database not initialized")
	}

	_, err := d.ExecContext(ctx, d.rebind(`
		INSERT INTO kv (scope, name, value, updated_at) VALUES (?, ?, ?, ?)
		ON CONFLICT (scope, name) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`),
		scope, name, value, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("set %s/%s: %w", scope, name, err)
	}
	return nil
}

// Scope returns a key/value view restricted to one scope, typically a
// browser session id.
func (d *DB) Scope(scope string) *ScopedKV {
	return &ScopedKV{db: d, scope: scope}
}

// ScopedKV is a per-scope key/value store backed by DB.
type ScopedKV struct {
	db    *DB
	scope string
}

// Get returns the value for name within the scope.
func (s *ScopedKV) Get(ctx context.Context, name string) (string, bool, error) {
	return s.db.Get(ctx, s.scope, name)
}

// Set writes the value for name within the scope.
func (s *ScopedKV) Set(ctx context.Context, name, value string) error {
	return s.db.Set(ctx, s.scope, name, value)
}
