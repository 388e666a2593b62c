package db

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := OpenDB(MemoryPath)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestMigrate_Idempotent(t *testing.T) {
	db := openTestDB(t)

	require.NoError(t, Migrate(db))
	require.NoError(t, Migrate(db))
}

func TestMigrate_CreatesAllTables(t *testing.T) {
	db := openTestDB(t)

	for _, table := range []string{"books", "sheets", "sheet_rows"} {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name=?`, table).Scan(&name)
		require.NoError(t, err, "table %s should exist", table)
		assert.Equal(t, table, name)
	}
}

func TestMigrate_ForeignKeysEnabled(t *testing.T) {
	db := openTestDB(t)

	var fk int
	require.NoError(t, db.QueryRow(`PRAGMA foreign_keys`).Scan(&fk))
	assert.Equal(t, 1, fk)
}

func TestMigrate_RowsCascadeWithBook(t *testing.T) {
	db := openTestDB(t)

	_, err := db.Exec(`INSERT INTO books (title, created_at) VALUES ('Trip', '2025-12-01')`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO sheets (book, name, created_at) VALUES ('Trip', 'Trips', '2025-12-01')`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO sheet_rows (book, sheet, position, cells) VALUES ('Trip', 'Trips', 1, '["ID"]')`)
	require.NoError(t, err)

	_, err = db.Exec(`DELETE FROM books WHERE title = 'Trip'`)
	require.NoError(t, err)

	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM sheet_rows`).Scan(&n))
	assert.Equal(t, 0, n)
}

func TestMigrate_RejectsZeroPosition(t *testing.T) {
	db := openTestDB(t)

	_, err := db.Exec(`INSERT INTO books (title, created_at) VALUES ('Trip', '2025-12-01')`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO sheets (book, name, created_at) VALUES ('Trip', 'Trips', '2025-12-01')`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO sheet_rows (book, sheet, position) VALUES ('Trip', 'Trips', 0)`)
	assert.Error(t, err)
}

func TestMigrate_CreatesIndexes(t *testing.T) {
	db := openTestDB(t)

	var name string
	err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='index' AND name=?`, "idx_sheet_rows_position").Scan(&name)
	require.NoError(t, err)
}
