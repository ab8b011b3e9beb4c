package database

import (
	"database/sql"
	"fmt"
	"log"
)

// Schema creates the run history tables
const Schema = `
CREATE TABLE IF NOT EXISTS test_runs (
	id UUID PRIMARY KEY,
	suite VARCHAR(255) NOT NULL,
	target VARCHAR(2048) NOT NULL,
	browser VARCHAR(32) NOT NULL,
	started_at TIMESTAMP NOT NULL,
	finished_at TIMESTAMP,
	passed INTEGER NOT NULL DEFAULT 0,
	failed INTEGER NOT NULL DEFAULT 0,
	setup_failed INTEGER NOT NULL DEFAULT 0,
	skipped INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS scenario_results (
	id UUID PRIMARY KEY,
	run_id UUID NOT NULL REFERENCES test_runs(id) ON DELETE CASCADE,
	scenario_id VARCHAR(32) NOT NULL,
	title VARCHAR(255) NOT NULL,
	status VARCHAR(32) NOT NULL,
	error TEXT,
	screenshot VARCHAR(1024),
	started_at TIMESTAMP NOT NULL,
	duration_ms BIGINT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_scenario_results_run ON scenario_results(run_id);
CREATE INDEX IF NOT EXISTS idx_test_runs_started ON test_runs(started_at DESC);
`

// Migrate creates the necessary database tables
func Migrate(db *sql.DB) error {
	if db == nil {
		return fmt.Errorf("database connection not initialized")
	}

	if _, err := db.Exec(Schema); err != nil {
		return fmt.Errorf("failed to create run history tables: %w", err)
	}

	log.Println("Database migrations completed successfully")
	return nil
}
