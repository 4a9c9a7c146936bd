package storage

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// Store is the sqlite-backed orientation history.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the database at path and makes sure the schema exists.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("storage.Open(): failed to open database: %w", err)
	}
	// sqlite allows a single writer
	db.SetMaxOpenConns(1)

	if err = db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage.Open(): failed to connect to database: %w", err)
	}

	createOrientacionesTable := `
	CREATE TABLE IF NOT EXISTS orientaciones (
			"id" TEXT PRIMARY KEY,
			"respuestas" TEXT NOT NULL,
			"resultado" TEXT,
			"model_id" TEXT NOT NULL,
			"ok" INTEGER NOT NULL,
			"created_at" TEXT NOT NULL
	);`
	createIndex := `CREATE INDEX IF NOT EXISTS idx_orientaciones_created_at ON orientaciones(created_at);`

	for _, stmt := range []string{createOrientacionesTable, createIndex} {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("storage.Open(): failed to create schema: %w", err)
		}
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}
