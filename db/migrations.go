package db

import (
	"context"
	"database/sql"
	"fmt"
)

// migration is a numbered schema change. Versions are applied in order
// and recorded in schema_migrations, so a restarted instance only runs
// the ones it has not seen yet.
type migration struct {
	version int
	name    string
	stmts   []string
}

var migrations = []migration{
	{
		version: 1,
		name:    "initial schema",
		stmts: []string{
			`CREATE TABLE IF NOT EXISTS teams (
				id SERIAL PRIMARY KEY,
				name TEXT NOT NULL,
				player1 TEXT NOT NULL,
				player2 TEXT NOT NULL,
				created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
				CONSTRAINT teams_name_key UNIQUE (name)
			)`,
			`CREATE TABLE IF NOT EXISTS matches (
				id SERIAL PRIMARY KEY,
				team1_id INTEGER NOT NULL REFERENCES teams(id),
				team2_id INTEGER NOT NULL REFERENCES teams(id),
				status TEXT NOT NULL DEFAULT 'pending',
				winner_id INTEGER REFERENCES teams(id),
				team1_games_won INTEGER NOT NULL DEFAULT 0,
				team2_games_won INTEGER NOT NULL DEFAULT 0,
				created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
				completed_at TIMESTAMPTZ,
				CONSTRAINT matches_distinct_teams CHECK (team1_id <> team2_id)
			)`,
			`CREATE INDEX IF NOT EXISTS idx_matches_team1_id ON matches(team1_id)`,
			`CREATE INDEX IF NOT EXISTS idx_matches_team2_id ON matches(team2_id)`,
			`CREATE INDEX IF NOT EXISTS idx_matches_status ON matches(status)`,
			`CREATE TABLE IF NOT EXISTS games (
				id SERIAL PRIMARY KEY,
				match_id INTEGER NOT NULL REFERENCES matches(id) ON DELETE CASCADE,
				game_number INTEGER NOT NULL,
				team1_score INTEGER NOT NULL,
				team2_score INTEGER NOT NULL,
				winner_id INTEGER NOT NULL REFERENCES teams(id),
				created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
				CONSTRAINT games_match_number_key UNIQUE (match_id, game_number)
			)`,
			`CREATE INDEX IF NOT EXISTS idx_games_match_id ON games(match_id)`,
		},
	},
	{
		version: 2,
		name:    "team logos",
		stmts: []string{
			`ALTER TABLE teams ADD COLUMN IF NOT EXISTS logo_key TEXT`,
		},
	},
}

// Migrate applies all pending migrations, each in its own transaction.
func Migrate(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			name TEXT NOT NULL,
			applied_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`)
	if err != nil {
		return fmt.Errorf("failed to create schema_migrations table: %w", err)
	}

	var current int
	err = db.QueryRowContext(ctx, `SELECT COALESCE(MAX(version), 0) FROM schema_migrations`).Scan(&current)
	if err != nil {
		return fmt.Errorf("failed to read current schema version: %w", err)
	}

	for _, m := range migrations {
		if m.version <= current {
			continue
		}
		if err := applyMigration(ctx, db, m); err != nil {
			return fmt.Errorf("migration %d (%s) failed: %w", m.version, m.name, err)
		}
	}

	return nil
}

func applyMigration(ctx context.Context, db *sql.DB, m migration) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	for _, stmt := range m.stmts {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			_ = tx.Rollback()
			return err
		}
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO schema_migrations (version, name) VALUES ($1, $2)`, m.version, m.name); err != nil {
		_ = tx.Rollback()
		return err
	}

	return tx.Commit()
}
