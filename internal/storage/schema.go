// ABOUTME: SQLite schema definition and initialization.
// ABOUTME: Defines date-keyed health_metrics and readiness_scores tables.
package storage

// initSchema creates or updates the database schema.
// Each table holds at most one row per calendar date; a readiness score is
// owned by its metrics row and is removed with it.
func (d *DB) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS health_metrics (
		id TEXT PRIMARY KEY,
		date TEXT NOT NULL UNIQUE,
		hrv REAL NOT NULL DEFAULT 0,
		resting_heart_rate REAL NOT NULL DEFAULT 0,
		sleep_hours REAL NOT NULL DEFAULT 0,
		sleep_quality INTEGER NOT NULL DEFAULT 0,
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL
	);

	CREATE TABLE IF NOT EXISTS readiness_scores (
		id TEXT PRIMARY KEY,
		date TEXT NOT NULL UNIQUE,
		score REAL NOT NULL,
		category TEXT NOT NULL,
		hrv_baseline REAL NOT NULL DEFAULT 0,
		hrv_deviation_percent REAL NOT NULL DEFAULT 0,
		rhr_adjustment REAL NOT NULL DEFAULT 0,
		sleep_adjustment REAL NOT NULL DEFAULT 0,
		readiness_mode TEXT NOT NULL,
		baseline_period_days INTEGER NOT NULL,
		calculated_at DATETIME NOT NULL,
		FOREIGN KEY (date) REFERENCES health_metrics(date) ON DELETE CASCADE
	);

	CREATE INDEX IF NOT EXISTS idx_health_metrics_date ON health_metrics(date DESC);
	CREATE INDEX IF NOT EXISTS idx_readiness_scores_date ON readiness_scores(date DESC);
	`

	_, err := d.db.Exec(schema)
	return err
}
