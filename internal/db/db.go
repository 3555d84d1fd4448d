// Package db provides PostgreSQL storage for resume import history.
package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// schemaStatements create the tables used by the importer
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS resume_imports (
		id UUID PRIMARY KEY,
		file_name TEXT NOT NULL DEFAULT '',
		text_hash TEXT NOT NULL,
		pages INTEGER NOT NULL DEFAULT 0,
		text_length INTEGER NOT NULL DEFAULT 0,
		confidence DOUBLE PRECISION NOT NULL,
		record JSONB NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_resume_imports_created_at ON resume_imports (created_at DESC)`,
	`CREATE INDEX IF NOT EXISTS idx_resume_imports_text_hash ON resume_imports (text_hash)`,
}

// DB wraps a PostgreSQL connection pool
type DB struct {
	pool *pgxpool.Pool
}

// Connect establishes a connection pool to the database
func Connect(ctx context.Context, databaseURL string) (*DB, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{pool: pool}, nil
}

// Close closes the connection pool
func (db *DB) Close() {
	if db.pool != nil {
		db.pool.Close()
	}
}

// Ping checks that the database is reachable
func (db *DB) Ping(ctx context.Context) error {
	if err := db.pool.Ping(ctx); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}
	return nil
}

// EnsureSchema creates the importer tables and indexes if they do not exist
func (db *DB) EnsureSchema(ctx context.Context) error {
	for _, stmt := range schemaStatements {
		if _, err := db.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply schema: %w", err)
		}
	}
	return nil
}
