// Package db persists user settings, favorites and scan journals in a
// local SQLite file.
package db

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	_ "modernc.org/sqlite"
)

// DB wraps a SQLite database connection.
type DB struct {
	sql *sql.DB
	log zerolog.Logger
}

func defaultPath() string {
	// Prefer working directory so the DB is stable across go run / go build.
	// Fall back to executable directory for deployed builds.
	if wd, err := os.Getwd(); err == nil {
		return filepath.Join(wd, "flipper.db")
	}
	exe, _ := os.Executable()
	return filepath.Join(filepath.Dir(exe), "flipper.db")
}

// Open opens (or creates) the SQLite database at path and runs migrations.
// An empty path uses flipper.db in the working directory.
func Open(path string, log zerolog.Logger) (*DB, error) {
	if path == "" {
		path = defaultPath()
	}
	sqlDB, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("ping db: %w", err)
	}
	d := &DB{sql: sqlDB, log: log.With().Str("component", "db").Logger()}
	if err := d.migrate(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("migrate db: %w", err)
	}
	d.log.Info().Str("path", path).Msg("database opened")
	return d, nil
}

// Close closes the database connection.
func (d *DB) Close() error {
	return d.sql.Close()
}

func (d *DB) migrate() error {
	version := 0
	d.sql.QueryRow("SELECT version FROM schema_version ORDER BY version DESC LIMIT 1").Scan(&version)

	if version < 1 {
		_, err := d.sql.Exec(`
			CREATE TABLE IF NOT EXISTS schema_version (version INTEGER PRIMARY KEY);

			CREATE TABLE IF NOT EXISTS config (
				key   TEXT PRIMARY KEY,
				value TEXT NOT NULL
			);

			CREATE TABLE IF NOT EXISTS favorites (
				item_id  INTEGER PRIMARY KEY,
				name     TEXT NOT NULL,
				added_at TEXT NOT NULL
			);

			CREATE TABLE IF NOT EXISTS scan_history (
				id          INTEGER PRIMARY KEY AUTOINCREMENT,
				timestamp   TEXT NOT NULL,
				budget      REAL NOT NULL,
				count       INTEGER NOT NULL,
				top_profit  INTEGER NOT NULL DEFAULT 0,
				params_json TEXT DEFAULT '{}',
				duration_ms INTEGER DEFAULT 0
			);
			CREATE INDEX IF NOT EXISTS idx_scan_history_ts ON scan_history(timestamp);

			CREATE TABLE IF NOT EXISTS flip_results (
				id                     INTEGER PRIMARY KEY AUTOINCREMENT,
				scan_id                INTEGER NOT NULL REFERENCES scan_history(id),
				item_id                INTEGER,
				name                   TEXT,
				buy_price              INTEGER,
				sell_price             INTEGER,
				margin                 INTEGER,
				margin_pct             REAL,
				volume                 INTEGER,
				max_affordable_qty     INTEGER,
				effective_qty          INTEGER,
				recommended_buy_price  INTEGER,
				recommended_sell_price INTEGER,
				estimated_fill_hours   REAL,
				estimated_sell_hours   REAL,
				slots_used             INTEGER,
				estimated_profit       INTEGER,
				profit_per_hour        REAL,
				fit                    TEXT,
				fit_reason             TEXT
			);
			CREATE INDEX IF NOT EXISTS idx_flip_scan ON flip_results(scan_id);
			CREATE INDEX IF NOT EXISTS idx_flip_item ON flip_results(item_id);

			INSERT OR IGNORE INTO schema_version (version) VALUES (1);
		`)
		if err != nil {
			return fmt.Errorf("migration v1: %w", err)
		}
		d.log.Info().Msg("applied migration v1")
	}

	return nil
}
