package db

import (
	"database/sql"
	"fmt"
)

// Migrate runs all schema migrations. Every statement is idempotent.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

// The tables below model spreadsheet books: a book holds named sheets and
// a sheet holds positioned rows of JSON-encoded cells. Position 1 is the
// header row, and positions stay contiguous after deletes.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS books (
		title      TEXT PRIMARY KEY,
		created_at TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS sheets (
		book       TEXT NOT NULL REFERENCES books(title) ON DELETE CASCADE,
		name       TEXT NOT NULL,
		created_at TEXT NOT NULL,
		PRIMARY KEY (book, name)
	)`,
	`CREATE TABLE IF NOT EXISTS sheet_rows (
		id       INTEGER PRIMARY KEY AUTOINCREMENT,
		book     TEXT NOT NULL,
		sheet    TEXT NOT NULL,
		position INTEGER NOT NULL CHECK(position >= 1),
		cells    TEXT NOT NULL DEFAULT '[]',
		FOREIGN KEY (book, sheet) REFERENCES sheets(book, name) ON DELETE CASCADE
	)`,
	`CREATE INDEX IF NOT EXISTS idx_sheet_rows_position ON sheet_rows(book, sheet, position)`,
}
