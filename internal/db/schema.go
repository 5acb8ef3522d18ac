package db

import "database/sql"

// SchemaSQL is the complete schema for fresh cradle installs.
// This is the SINGLE SOURCE OF TRUTH for the database schema. All repository
// tests build their in-memory database from GetSchemaSQL(), so any drift
// between repository code and this schema fails immediately with
// "no such column" rather than surfacing in production.
//
// When adding new columns or tables:
//  1. Add a migration in internal/db/migrations.go
//  2. Update SchemaSQL here
const SchemaSQL = `
-- Sleep intervals (naps and night sleep). end_time IS NULL means in progress.
CREATE TABLE IF NOT EXISTS sleep (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	type TEXT NOT NULL CHECK(type IN ('nap', 'night')),
	start_time TEXT NOT NULL,
	end_time TEXT,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_sleep_start ON sleep(start_time);
CREATE INDEX IF NOT EXISTS idx_sleep_end ON sleep(end_time);
-- At most one open sleep interval, enforced by the store rather than by a
-- read-then-insert sequence in application code.
CREATE UNIQUE INDEX IF NOT EXISTS one_open_sleep
	ON sleep(ifnull(end_time, 'open')) WHERE end_time IS NULL;

-- Wakeful stretches inside a night sleep, subtracted from its net duration.
CREATE TABLE IF NOT EXISTS night_waking (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	start_time TEXT NOT NULL,
	end_time TEXT,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_night_waking_start ON night_waking(start_time);
CREATE UNIQUE INDEX IF NOT EXISTS one_open_waking
	ON night_waking(ifnull(end_time, 'open')) WHERE end_time IS NULL;

-- Breastfeeding events. end_time is optional.
CREATE TABLE IF NOT EXISTS feeding (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	timestamp TEXT NOT NULL,
	side TEXT NOT NULL CHECK(side IN ('left', 'right')),
	end_time TEXT,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_feeding_timestamp ON feeding(timestamp);

-- Bottle feeds in millilitres.
CREATE TABLE IF NOT EXISTS bottle (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	timestamp TEXT NOT NULL,
	amount INTEGER NOT NULL,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_bottle_timestamp ON bottle(timestamp);

-- Diaper changes.
CREATE TABLE IF NOT EXISTS diaper (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	timestamp TEXT NOT NULL,
	type TEXT NOT NULL CHECK(type IN ('wet', 'solid', 'both')),
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_diaper_timestamp ON diaper(timestamp);

-- Body temperature readings in Celsius.
CREATE TABLE IF NOT EXISTS temperature (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	timestamp TEXT NOT NULL,
	value REAL NOT NULL,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_temperature_timestamp ON temperature(timestamp);

-- Medicine doses.
CREATE TABLE IF NOT EXISTS medicine (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	timestamp TEXT NOT NULL,
	name TEXT NOT NULL,
	dose TEXT NOT NULL,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_medicine_timestamp ON medicine(timestamp);

-- Singleton baby profile (id fixed at 1, created lazily with a default
-- birth date of roughly six months ago).
CREATE TABLE IF NOT EXISTS baby_info (
	id INTEGER PRIMARY KEY CHECK(id = 1),
	name TEXT NOT NULL DEFAULT '',
	birth_date TEXT NOT NULL,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

-- Memoized nap suggestion, at most one live row per date. Replaced whenever a
-- new suggestion is persisted so repeated recomputation stays stable.
CREATE TABLE IF NOT EXISTS nap_suggestion (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	date TEXT NOT NULL,
	suggested_time TEXT NOT NULL,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_nap_suggestion_date ON nap_suggestion(date);
`

// latestSchemaVersion must match the highest migration version in
// migrations.go. Fresh installs are stamped at this version so the migration
// runner never re-applies history to a database built from SchemaSQL.
const latestSchemaVersion = 3

// GetSchemaSQL returns the authoritative schema SQL for use by tests.
func GetSchemaSQL() string {
	return SchemaSQL
}

// InitSchema brings the given database up to the current schema: fresh
// installs get SchemaSQL directly, existing databases run pending migrations.
func InitSchema(database *sql.DB) error {
	var tableCount int
	err := database.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='schema_version'").Scan(&tableCount)
	if err != nil {
		return err
	}

	if tableCount == 0 {
		// No version table yet. Older installs predate it but already have a
		// sleep table; those go through the migration path.
		var oldTableCount int
		err = database.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='sleep'").Scan(&oldTableCount)
		if err != nil {
			return err
		}

		if oldTableCount > 0 {
			return RunMigrations(database)
		}

		// Completely fresh install - create modern schema directly and stamp
		// all migrations as applied.
		if _, err = database.Exec(SchemaSQL); err != nil {
			return err
		}
		_, err = database.Exec(`
			CREATE TABLE IF NOT EXISTS schema_version (
				version INTEGER PRIMARY KEY,
				applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
			)
		`)
		if err != nil {
			return err
		}
		for i := 1; i <= latestSchemaVersion; i++ {
			if _, err = database.Exec("INSERT INTO schema_version (version) VALUES (?)", i); err != nil {
				return err
			}
		}
		return nil
	}

	// schema_version table exists - run any pending migrations
	return RunMigrations(database)
}
