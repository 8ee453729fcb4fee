package store

import (
	"context"
	"database/sql"
	"fmt"
)

// schema holds the DDL for every table. Statements are idempotent so they
// run on every Open.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS llm_request_events (
		id            INTEGER PRIMARY KEY AUTOINCREMENT,
		sequence      INTEGER NOT NULL UNIQUE,
		timestamp_ms  INTEGER NOT NULL,
		request_id    TEXT    NOT NULL DEFAULT '',
		provider      TEXT    NOT NULL,
		model         TEXT    NOT NULL,
		purpose       TEXT    NOT NULL,
		input_tokens  INTEGER NOT NULL DEFAULT 0,
		output_tokens INTEGER NOT NULL DEFAULT 0,
		latency_ms    INTEGER NOT NULL DEFAULT 0,
		success       INTEGER NOT NULL,
		error_message TEXT    NOT NULL DEFAULT '',
		request_body  TEXT    NOT NULL DEFAULT '',
		response_body TEXT    NOT NULL DEFAULT ''
	)`,
	`CREATE INDEX IF NOT EXISTS idx_llm_events_purpose ON llm_request_events (purpose)`,
	`CREATE INDEX IF NOT EXISTS idx_llm_events_request ON llm_request_events (request_id)`,
	`CREATE TABLE IF NOT EXISTS generation_runs (
		id              INTEGER PRIMARY KEY AUTOINCREMENT,
		sequence        INTEGER NOT NULL UNIQUE,
		timestamp_ms    INTEGER NOT NULL,
		request_id      TEXT    NOT NULL,
		requested_count INTEGER NOT NULL,
		max_attempts    INTEGER NOT NULL,
		attempts        INTEGER NOT NULL,
		success         INTEGER NOT NULL,
		error_kind      TEXT    NOT NULL DEFAULT '',
		error_message   TEXT    NOT NULL DEFAULT '',
		latency_ms      INTEGER NOT NULL DEFAULT 0
	)`,
	`CREATE INDEX IF NOT EXISTS idx_generation_runs_request ON generation_runs (request_id)`,
}

func migrate(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
	}
	return nil
}
