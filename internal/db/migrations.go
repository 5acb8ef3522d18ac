package db

import (
	"database/sql"
	"fmt"
)

// Migration represents a database migration
type Migration struct {
	Version int
	Name    string
	Up      func(*sql.DB) error
}

// migrations is the list of all migrations in order
var migrations = []Migration{
	{
		Version: 1,
		Name:    "add_night_waking_table",
		Up:      migrationV1,
	},
	{
		Version: 2,
		Name:    "add_baby_info_name_and_nap_suggestion_cache",
		Up:      migrationV2,
	},
	{
		Version: 3,
		Name:    "enforce_single_open_interval",
		Up:      migrationV3,
	},
}

// migrationV1 adds the night_waking table for tracking wakeful stretches
// inside a night sleep.
func migrationV1(database *sql.DB) error {
	_, err := database.Exec(`
		CREATE TABLE IF NOT EXISTS night_waking (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			start_time TEXT NOT NULL,
			end_time TEXT,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_night_waking_start ON night_waking(start_time);
	`)
	if err != nil {
		return fmt.Errorf("failed to create night_waking table: %w", err)
	}
	return nil
}

// migrationV2 adds the baby name column and the per-date nap suggestion cache.
func migrationV2(database *sql.DB) error {
	// Older databases may already carry the column; sqlite has no
	// ADD COLUMN IF NOT EXISTS, so probe first.
	var count int
	err := database.QueryRow(
		"SELECT COUNT(*) FROM pragma_table_info('baby_info') WHERE name = 'name'",
	).Scan(&count)
	if err != nil {
		return fmt.Errorf("failed to inspect baby_info: %w", err)
	}
	if count == 0 {
		if _, err := database.Exec("ALTER TABLE baby_info ADD COLUMN name TEXT NOT NULL DEFAULT ''"); err != nil {
			return fmt.Errorf("failed to add baby_info.name: %w", err)
		}
	}

	_, err = database.Exec(`
		CREATE TABLE IF NOT EXISTS nap_suggestion (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			date TEXT NOT NULL,
			suggested_time TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_nap_suggestion_date ON nap_suggestion(date);
	`)
	if err != nil {
		return fmt.Errorf("failed to create nap_suggestion table: %w", err)
	}
	return nil
}

// migrationV3 adds the partial unique indexes guaranteeing at most one open
// sleep interval and one open night waking. Existing duplicate open rows are
// closed at their start time first so index creation cannot fail.
func migrationV3(database *sql.DB) error {
	_, err := database.Exec(`
		UPDATE sleep SET end_time = start_time
		WHERE end_time IS NULL AND id NOT IN (
			SELECT id FROM sleep WHERE end_time IS NULL ORDER BY start_time DESC LIMIT 1
		);
		UPDATE night_waking SET end_time = start_time
		WHERE end_time IS NULL AND id NOT IN (
			SELECT id FROM night_waking WHERE end_time IS NULL ORDER BY start_time DESC LIMIT 1
		);
		CREATE UNIQUE INDEX IF NOT EXISTS one_open_sleep
			ON sleep(ifnull(end_time, 'open')) WHERE end_time IS NULL;
		CREATE UNIQUE INDEX IF NOT EXISTS one_open_waking
			ON night_waking(ifnull(end_time, 'open')) WHERE end_time IS NULL;
	`)
	if err != nil {
		return fmt.Errorf("failed to enforce single open interval: %w", err)
	}
	return nil
}

// RunMigrations applies all pending migrations to the given database.
func RunMigrations(database *sql.DB) error {
	// Create schema_version table if it doesn't exist
	_, err := database.Exec(`
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create schema_version table: %w", err)
	}

	// Get current schema version
	var currentVersion int
	err = database.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_version").Scan(&currentVersion)
	if err != nil {
		return fmt.Errorf("failed to get current schema version: %w", err)
	}

	// Run pending migrations
	for _, migration := range migrations {
		if migration.Version <= currentVersion {
			continue
		}

		if err := migration.Up(database); err != nil {
			return fmt.Errorf("migration %d (%s) failed: %w", migration.Version, migration.Name, err)
		}

		_, err = database.Exec("INSERT INTO schema_version (version) VALUES (?)", migration.Version)
		if err != nil {
			return fmt.Errorf("failed to record migration %d: %w", migration.Version, err)
		}
	}

	return nil
}
