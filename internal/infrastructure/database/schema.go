package database

import (
	"context"
	"fmt"

	pgx "github.com/jackc/pgx/v5"
	"github.com/rs/zerolog/log"
)

// Books reference authors by id without a foreign key: the delete guard
// re-queries books at delete time instead of relying on the database.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS authors (
        id            UUID PRIMARY KEY DEFAULT gen_random_uuid(),
        first_name    VARCHAR(100) NOT NULL,
        family_name   VARCHAR(100) NOT NULL,
        date_of_birth DATE,
        date_of_death DATE,
        created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW(),
        updated_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
    )`,
	`CREATE INDEX IF NOT EXISTS idx_authors_family_name ON authors (family_name)`,
	`CREATE TABLE IF NOT EXISTS books (
        id         UUID PRIMARY KEY DEFAULT gen_random_uuid(),
        title      TEXT NOT NULL,
        summary    TEXT NOT NULL DEFAULT '',
        isbn       VARCHAR(32) NOT NULL DEFAULT '',
        author_id  UUID NOT NULL,
        created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
    )`,
	`CREATE INDEX IF NOT EXISTS idx_books_author_id ON books (author_id)`,
}

// EnsureSchema creates the catalog tables when they are missing.
func (db *PostgresDB) EnsureSchema(ctx context.Context) error {
	err := db.ExecuteInTransaction(ctx, func(tx pgx.Tx) error {
		for _, stmt := range schemaStatements {
			if _, err := tx.Exec(ctx, stmt); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to ensure schema: %w", err)
	}

	log.Info().Int("statements", len(schemaStatements)).Msg("[DATABASE] Schema ready")
	return nil
}
