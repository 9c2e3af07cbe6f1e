package postgres

import (
	"context"
	"database/sql"
	"fmt"
)

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS submissions (
		id TEXT PRIMARY KEY,
		restaurant_name TEXT NOT NULL,
		category TEXT NOT NULL,
		location TEXT NOT NULL,
		price_range TEXT NOT NULL DEFAULT '',
		recommended_menu TEXT[] NOT NULL DEFAULT '{}',
		review TEXT NOT NULL DEFAULT '',
		submitter_name TEXT NOT NULL DEFAULT '',
		submitter_email TEXT NOT NULL DEFAULT '',
		status TEXT NOT NULL DEFAULT 'pending',
		image TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS submissions_status_idx ON submissions (status)`,
	`CREATE TABLE IF NOT EXISTS restaurants (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		category TEXT NOT NULL,
		location TEXT NOT NULL,
		price_range TEXT NOT NULL DEFAULT '',
		description TEXT NOT NULL DEFAULT '',
		recommended_menu TEXT[] NOT NULL DEFAULT '{}',
		image TEXT NOT NULL DEFAULT '',
		source_submission_id TEXT UNIQUE,
		created_at TIMESTAMPTZ NOT NULL
	)`,
}

// EnsureSchema creates the tables when they are missing.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schemaStatements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}
