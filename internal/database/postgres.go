package database

import (
	"database/sql"
	"fmt"
	"log/slog"

	_ "github.com/lib/pq"

	"github.com/Charliemorrone/FittedAI/internal/config"
)

func NewPostgres(cfg config.DBConfig) (*sql.DB, error) {
	db, err := sql.Open("postgres", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(10)

	slog.Info("connected to PostgreSQL", "db", cfg.DBName)

	if err := runMigrations(db); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return db, nil
}

func runMigrations(db *sql.DB) error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS swipe_actions (
			id SERIAL PRIMARY KEY,
			session_id VARCHAR(64) NOT NULL,
			outfit_id VARCHAR(128) NOT NULL,
			action VARCHAR(16) NOT NULL,
			source_tier VARCHAR(16) NOT NULL,
			swiped_at TIMESTAMP NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS liked_outfit_snapshots (
			id SERIAL PRIMARY KEY,
			session_id VARCHAR(64) NOT NULL,
			outfit_id VARCHAR(128) NOT NULL,
			style_description TEXT NOT NULL DEFAULT '',
			confidence DOUBLE PRECISION NOT NULL DEFAULT 0,
			liked_at TIMESTAMP DEFAULT NOW(),
			UNIQUE(session_id, outfit_id)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_swipe_actions_session ON swipe_actions(session_id)`,
		`CREATE INDEX IF NOT EXISTS idx_liked_snapshots_session ON liked_outfit_snapshots(session_id)`,
	}

	for _, m := range migrations {
		if _, err := db.Exec(m); err != nil {
			return fmt.Errorf("migration failed: %w\nSQL: %s", err, m)
		}
	}

	slog.Info("database migrations completed")
	return nil
}
