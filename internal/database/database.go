// Package database owns the SQLite connection and schema migrations.
package database

import (
	"database/sql"
	"os"
	"path/filepath"

	// SQLite driver for database/sql.
	_ "github.com/mattn/go-sqlite3"
)

// DB wraps the sql.DB handle used by all services.
type DB struct {
	*sql.DB
}

// New opens the SQLite database at dbPath, creating the parent
// directory when missing.
func New(dbPath string) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0750); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_busy_timeout=5000")
	if err != nil {
		return nil, err
	}

	// SQLite serializes writers; one connection avoids SQLITE_BUSY churn.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, err
	}

	return &DB{db}, nil
}

// Migrate applies all pending schema migrations.
func (db *DB) Migrate() error {
	return runMigrations(db.DB)
}
