// Package sqlite es el storage local: un archivo (o :memory:) con el mismo SQL que Postgres.
package sqlite

import (
	"context"
	"database/sql"
	"strings"

	"daycare-log/internal/adapters/storage/sqlstore"

	_ "modernc.org/sqlite"
)

// Open abre la base, aplica pragmas y crea el esquema si falta.
// Una sola conexión: SQLite admite un escritor y :memory: vive por conexión.
func Open(ctx context.Context, path string) (*sql.DB, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		path = ":memory:"
	}

	// modernc.org/sqlite driver name is "sqlite".
	db, err := sql.Open("sqlite", path+"?_time_format=sqlite")
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA foreign_keys=ON;",
		"PRAGMA busy_timeout=5000;",
	}
	if path != ":memory:" {
		pragmas = append(pragmas, "PRAGMA journal_mode=WAL;", "PRAGMA synchronous=NORMAL;")
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			_ = db.Close()
			return nil, err
		}
	}

	if err := migrateSchema(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

func NewStore(db *sql.DB) *sqlstore.Store {
	return sqlstore.New(db, sqlstore.SQLite)
}

// Las columnas de tiempo se declaran TIMESTAMP/DATE para que el driver las lea como time.Time.
func migrateSchema(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id TEXT PRIMARY KEY,
			email TEXT NOT NULL UNIQUE,
			first_name TEXT NOT NULL DEFAULT '',
			last_name TEXT NOT NULL DEFAULT '',
			avatar_url TEXT NOT NULL DEFAULT '',
			roles TEXT NOT NULL DEFAULT '[]',
			child_ids TEXT NOT NULL DEFAULT '[]',
			teacher_profile TEXT,
			created_at TIMESTAMP NOT NULL,
			updated_at TIMESTAMP NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS classrooms (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			teacher_ids TEXT NOT NULL DEFAULT '[]',
			year INTEGER NOT NULL DEFAULT 0,
			created_at TIMESTAMP NOT NULL,
			updated_at TIMESTAMP NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS children (
			id TEXT PRIMARY KEY,
			first_name TEXT NOT NULL,
			last_name TEXT NOT NULL DEFAULT '',
			birth_date DATE,
			avatar_url TEXT NOT NULL DEFAULT '',
			classroom_id TEXT NOT NULL REFERENCES classrooms(id),
			guardian_ids TEXT NOT NULL DEFAULT '[]',
			last_event TEXT,
			created_at TIMESTAMP NOT NULL,
			updated_at TIMESTAMP NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_children_classroom ON children(classroom_id);`,
		`CREATE TABLE IF NOT EXISTS events (
			id TEXT PRIMARY KEY,
			child_id TEXT NOT NULL REFERENCES children(id),
			staff_id TEXT NOT NULL,
			event_time TIMESTAMP NOT NULL,
			category TEXT NOT NULL,
			details TEXT NOT NULL,
			created_at TIMESTAMP NOT NULL,
			created_by TEXT NOT NULL,
			updated_at TIMESTAMP NOT NULL,
			updated_by TEXT NOT NULL,
			deleted_at TIMESTAMP,
			deleted_by TEXT
		);`,
		`CREATE INDEX IF NOT EXISTS idx_events_child_time ON events(child_id, event_time);`,
	}
	for _, st := range stmts {
		if _, err := db.ExecContext(ctx, st); err != nil {
			return err
		}
	}
	return nil
}
