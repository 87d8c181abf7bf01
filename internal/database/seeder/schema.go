package seeder

import (
	"context"
	"fmt"
	"log"

	"github.com/KBRglobal/Traviapp-sub001/internal/database"
)

// schemaStatements bootstrap the index store. The tsvector column carries the
// A/B weighting that BuildExpandedQuery's markers address.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS search_index (
		content_id uuid PRIMARY KEY,
		title text NOT NULL,
		plain_text text NOT NULL DEFAULT '',
		meta_description text NOT NULL DEFAULT '',
		locations text[] NOT NULL DEFAULT '{}',
		prices text[] NOT NULL DEFAULT '{}',
		categories text[] NOT NULL DEFAULT '{}',
		content_type text NOT NULL DEFAULT '',
		locale text NOT NULL DEFAULT 'en',
		popularity int NOT NULL DEFAULT 0,
		quality int NOT NULL DEFAULT 50,
		freshness timestamptz NOT NULL DEFAULT now(),
		search_terms text[] NOT NULL DEFAULT '{}',
		search_vector tsvector GENERATED ALWAYS AS (
			setweight(to_tsvector('simple', coalesce(title, '')), 'A') ||
			setweight(to_tsvector('simple', coalesce(plain_text, '')), 'B') ||
			setweight(to_tsvector('simple', coalesce(meta_description, '')), 'B')
		) STORED,
		updated_at timestamptz NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_search_index_vector
		ON search_index USING GIN (search_vector)`,
	`CREATE INDEX IF NOT EXISTS idx_search_index_type_locale
		ON search_index (content_type, locale)`,
	`CREATE TABLE IF NOT EXISTS search_suggestions (
		term text NOT NULL,
		display_text text NOT NULL DEFAULT '',
		type text NOT NULL DEFAULT 'content',
		target_url text NOT NULL DEFAULT '',
		icon text NOT NULL DEFAULT '',
		weight int NOT NULL DEFAULT 0,
		search_count int NOT NULL DEFAULT 0,
		locale text NOT NULL DEFAULT 'en',
		PRIMARY KEY (term, locale)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_search_suggestions_rank
		ON search_suggestions (locale, weight DESC, search_count DESC)`,
}

// EnsureSchema creates the index-store tables when they are missing.
func EnsureSchema(ctx context.Context, db database.DB) error {
	if db == nil {
		return fmt.Errorf("nil db")
	}
	for _, stmt := range schemaStatements {
		if _, err := db.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("schema bootstrap: %w", err)
		}
	}
	return nil
}

// ProbeTrigram reports whether pg_trgm is installed. It tries to install the
// extension first (a no-op without privileges) and then checks the catalog;
// absence is a normal degraded mode, never an error.
func ProbeTrigram(ctx context.Context, db database.DB, logger *log.Logger) bool {
	if db == nil {
		return false
	}

	if _, err := db.Exec(ctx, `CREATE EXTENSION IF NOT EXISTS pg_trgm`); err != nil && logger != nil {
		logger.Printf("[Seeder] pg_trgm install skipped: %v", err)
	}

	var installed bool
	err := db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM pg_extension WHERE extname = 'pg_trgm')`,
	).Scan(&installed)
	if err != nil {
		if logger != nil {
			logger.Printf("[Seeder] pg_trgm probe failed, fuzzy search disabled: %v", err)
		}
		return false
	}

	if installed {
		if _, err := db.Exec(ctx,
			`CREATE INDEX IF NOT EXISTS idx_search_suggestions_trgm
			 ON search_suggestions USING GIN (term gin_trgm_ops)`,
		); err != nil && logger != nil {
			logger.Printf("[Seeder] trigram index create failed: %v", err)
		}
	}
	return installed
}
