package database

import (
	"context"
	"fmt"
)

// schema holds the append-only report tables. Statements are idempotent so
// startup can run them unconditionally.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS reports (
		id UUID PRIMARY KEY,
		message_text TEXT NOT NULL,
		source TEXT NOT NULL DEFAULT 'text',
		language_code TEXT NOT NULL,
		prediction TEXT NOT NULL,
		risk_score INT NOT NULL,
		confidence_safe DOUBLE PRECISION NOT NULL,
		confidence_scam DOUBLE PRECISION NOT NULL,
		keywords JSONB NOT NULL DEFAULT '[]',
		keyword_categories JSONB NOT NULL DEFAULT '{}',
		url_count INT NOT NULL DEFAULT 0,
		phone_count INT NOT NULL DEFAULT 0,
		analyzed_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_reports_prediction ON reports (prediction)`,
	`CREATE INDEX IF NOT EXISTS idx_reports_analyzed_at ON reports (analyzed_at)`,
	`CREATE TABLE IF NOT EXISTS url_reports (
		id UUID PRIMARY KEY,
		url TEXT NOT NULL,
		domain TEXT NOT NULL,
		risk_score INT NOT NULL,
		risk_level TEXT NOT NULL,
		is_safe BOOLEAN NOT NULL,
		warnings JSONB NOT NULL DEFAULT '[]',
		checked_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_url_reports_domain ON url_reports (domain)`,
}

// EnsureSchema creates the report tables if they do not exist.
func (db *PostgresDB) EnsureSchema(ctx context.Context) error {
	for _, stmt := range schema {
		if err := db.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply schema: %w", err)
		}
	}
	db.logger.Info().Msg("database schema ensured")
	return nil
}
