package repository

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

// sqliteSchema mirrors the postgres schema. Dates are TEXT in YYYY-MM-DD so
// range queries stay plain string comparisons, matching the metrics layer.
const sqliteSchema = `
CREATE TABLE IF NOT EXISTS users (
	id            TEXT PRIMARY KEY,
	email         TEXT NOT NULL UNIQUE,
	password_hash TEXT NOT NULL,
	created_at    TIMESTAMP NOT NULL,
	updated_at    TIMESTAMP NOT NULL
);

CREATE TABLE IF NOT EXISTS habits (
	id          TEXT PRIMARY KEY,
	user_id     TEXT NOT NULL REFERENCES users(id),
	title       TEXT NOT NULL,
	goal_type   TEXT NOT NULL DEFAULT '',
	kind        TEXT NOT NULL,
	frequency   TEXT NOT NULL,
	target      REAL NOT NULL,
	unit        TEXT NOT NULL DEFAULT '',
	sort_order  INTEGER NOT NULL DEFAULT 0,
	created_on  TEXT NOT NULL,
	paused_on   TEXT,
	archived_on TEXT,
	created_at  TIMESTAMP NOT NULL,
	updated_at  TIMESTAMP NOT NULL
);

CREATE TABLE IF NOT EXISTS habit_entries (
	id         TEXT PRIMARY KEY,
	habit_id   TEXT NOT NULL REFERENCES habits(id),
	user_id    TEXT NOT NULL REFERENCES users(id),
	entry_date TEXT NOT NULL,
	value      REAL NOT NULL,
	logged_at  TIMESTAMP NOT NULL,
	UNIQUE (habit_id, entry_date)
);

CREATE TABLE IF NOT EXISTS user_settings (
	user_id        TEXT PRIMARY KEY REFERENCES users(id),
	week_starts_on INTEGER NOT NULL DEFAULT 1,
	updated_at     TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_habits_user ON habits(user_id);
CREATE INDEX IF NOT EXISTS idx_entries_user ON habit_entries(user_id);
CREATE INDEX IF NOT EXISTS idx_entries_habit_date ON habit_entries(habit_id, entry_date);
`

// OpenSQLite opens (creating if needed) a local sqlite database and ensures
// the schema exists. SQLite accepts the $N parameter style, so the postgres
// repositories run against this handle unchanged; only the lib/pq error-code
// mapping is postgres-specific and degrades to generic errors here.
func OpenSQLite(path string) (*sqlx.DB, error) {
	// sqlx does not know the modernc driver name; sqlite accepts $N natively.
	sqlx.BindDriver("sqlite", sqlx.DOLLAR)

	db, err := sqlx.Connect("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database at %s: %w", path, err)
	}

	// modernc sqlite is single-writer; one connection avoids SQLITE_BUSY
	// and serializes entry upserts per key for free.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize sqlite schema: %w", err)
	}

	return db, nil
}
