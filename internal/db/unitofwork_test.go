package db_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/alexanderramin/itinerary/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openUoW(t *testing.T) (*sql.DB, *db.SQLiteUnitOfWork) {
	t.Helper()
	database, err := db.OpenDB(db.MemoryPath)
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })

	_, err = database.Exec(`INSERT INTO books (title, created_at) VALUES ('Trip', '2025-12-01')`)
	require.NoError(t, err)
	return database, db.NewSQLiteUnitOfWork(database)
}

func countBooks(t *testing.T, database *sql.DB) int {
	t.Helper()
	var n int
	require.NoError(t, database.QueryRow(`SELECT COUNT(*) FROM books`).Scan(&n))
	return n
}

func insertBook(ctx context.Context, tx db.DBTX, title string) error {
	_, err := tx.ExecContext(ctx, `INSERT INTO books (title, created_at) VALUES (?, '2025-12-01')`, title)
	return err
}

func TestWithinTx_CommitOnSuccess(t *testing.T) {
	database, uow := openUoW(t)

	err := uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		return insertBook(ctx, tx, "Second")
	})
	require.NoError(t, err)
	assert.Equal(t, 2, countBooks(t, database))
}

func TestWithinTx_RollbackOnError(t *testing.T) {
	database, uow := openUoW(t)
	boom := errors.New("deliberate failure")

	err := uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		if err := insertBook(ctx, tx, "Second"); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)
	assert.Equal(t, 1, countBooks(t, database))
}

func TestWithinTx_RollbackOnPanic(t *testing.T) {
	database, uow := openUoW(t)

	assert.Panics(t, func() {
		_ = uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
			_ = insertBook(ctx, tx, "Second")
			panic("boom")
		})
	})
	assert.Equal(t, 1, countBooks(t, database))
}
