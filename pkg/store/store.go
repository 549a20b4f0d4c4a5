// Package store persists score-sheet provenance, play results and an
// imported kanji-reading table to SQLite, the authoring-side memory a CLI
// shell keeps around a play session (the domain core itself, pkg/activity,
// never touches a database).
package store

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// migrationsSQL is run as a single batch so SQLite's own statement parser
// handles splitting, rather than a naive semicolon split that breaks on
// semicolons inside strings.
const migrationsSQL = `
CREATE TABLE IF NOT EXISTS kanji_readings (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	kanji TEXT NOT NULL,
	reading TEXT NOT NULL,
	common INTEGER NOT NULL DEFAULT 0,
	UNIQUE(kanji, reading)
);

CREATE TABLE IF NOT EXISTS score_files (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	path TEXT NOT NULL UNIQUE,
	title TEXT,
	song_author TEXT,
	singer TEXT,
	score_author TEXT,
	bpm TEXT,
	song_data TEXT,
	loaded_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS play_results (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	score_file_id INTEGER NOT NULL REFERENCES score_files(id),
	score_point INTEGER NOT NULL,
	accuracy REAL NOT NULL,
	achievement_rate REAL NOT NULL,
	played_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`

// InitDB runs migrations on the given connection using the embedded SQL.
// For this scope's schema needs the embedded batch is sufficient; a
// versioned migration library would only earn its keep once the schema
// needs to evolve across releases.
func InitDB(db *sql.DB) error {
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return err
	}
	if _, err := db.Exec(migrationsSQL); err != nil {
		return err
	}
	if err := ensureColumnExists(db, "score_files", "last_annotated_line", "INTEGER DEFAULT -1"); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}

func ensureColumnExists(db *sql.DB, table, column, definition string) error {
	rows, err := db.Query(fmt.Sprintf("PRAGMA table_info(%s)", table))
	if err != nil {
		return fmt.Errorf("failed to check table info: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var cid int
		var name, ctype string
		var notnull, pk int
		var dfltVal interface{}
		if err := rows.Scan(&cid, &name, &ctype, &notnull, &dfltVal, &pk); err != nil {
			return fmt.Errorf("failed to scan table info: %w", err)
		}
		if name == column {
			return nil
		}
	}
	if err := rows.Err(); err != nil {
		return err
	}

	query := fmt.Sprintf("ALTER TABLE %s ADD COLUMN %s %s;", table, column, definition)
	_, err = db.Exec(query)
	if err != nil {
		return fmt.Errorf("failed to add column %s: %w", column, err)
	}
	return nil
}
