package sheet

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/itinerary/internal/db"
)

// SQLiteClient keeps books in a local SQLite database. Book IDs are their
// titles.
type SQLiteClient struct {
	db  *sql.DB
	uow db.UnitOfWork
}

func NewSQLiteClient(database *sql.DB) *SQLiteClient {
	return NewSQLiteClientWithUoW(database, db.NewSQLiteUnitOfWork(database))
}

// NewSQLiteClientWithUoW runs multi-statement writes through uow.
func NewSQLiteClientWithUoW(database *sql.DB, uow db.UnitOfWork) *SQLiteClient {
	return &SQLiteClient{db: database, uow: uow}
}

func (c *SQLiteClient) OpenBook(ctx context.Context, ref BookRef) (Book, error) {
	key := ref.String()
	var title string
	err := c.db.QueryRowContext(ctx, `SELECT title FROM books WHERE title = ?`, key).Scan(&title)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("book %q: %w", key, ErrNotFound)
		}
		return nil, fmt.Errorf("looking up book %q: %w", key, err)
	}
	return &sqliteBook{c: c, title: title}, nil
}

func (c *SQLiteClient) CreateBook(ctx context.Context, title string) (Book, error) {
	_, err := c.db.ExecContext(ctx, `INSERT INTO books (title, created_at) VALUES (?, ?)`,
		title, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return nil, fmt.Errorf("creating book %q: %w", title, err)
	}
	return &sqliteBook{c: c, title: title}, nil
}

type sqliteBook struct {
	c     *SQLiteClient
	title string
}

func (b *sqliteBook) ID() string    { return b.title }
func (b *sqliteBook) Title() string { return b.title }

func (b *sqliteBook) Table(ctx context.Context, name string) (Table, error) {
	var found string
	err := b.c.db.QueryRowContext(ctx, `SELECT name FROM sheets WHERE book = ? AND name = ?`, b.title, name).Scan(&found)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("table %q: %w", name, ErrNotFound)
		}
		return nil, fmt.Errorf("looking up table %q: %w", name, err)
	}
	return &sqliteTable{c: b.c, book: b.title, name: found}, nil
}

func (b *sqliteBook) AddTable(ctx context.Context, name string) (Table, error) {
	_, err := b.c.db.ExecContext(ctx, `INSERT INTO sheets (book, name, created_at) VALUES (?, ?, ?)`,
		b.title, name, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return nil, fmt.Errorf("adding table %q: %w", name, err)
	}
	return &sqliteTable{c: b.c, book: b.title, name: name}, nil
}

type sqliteTable struct {
	c    *SQLiteClient
	book string
	name string
}

func (t *sqliteTable) Name() string { return t.name }

func (t *sqliteTable) Rows(ctx context.Context) ([][]any, error) {
	rows, err := t.c.db.QueryContext(ctx,
		`SELECT cells FROM sheet_rows WHERE book = ? AND sheet = ? ORDER BY position`, t.book, t.name)
	if err != nil {
		return nil, fmt.Errorf("reading table %q: %w", t.name, err)
	}
	defer rows.Close()

	var out [][]any
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		var cells []any
		if err := json.Unmarshal([]byte(raw), &cells); err != nil {
			return nil, fmt.Errorf("decoding row: %w", err)
		}
		out = append(out, cells)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating rows: %w", err)
	}
	return out, nil
}

func (t *sqliteTable) Append(ctx context.Context, values []any) error {
	raw, err := json.Marshal(values)
	if err != nil {
		return fmt.Errorf("encoding row: %w", err)
	}
	// One statement so concurrent appends cannot pick the same position.
	if _, err := t.c.db.ExecContext(ctx,
		`INSERT INTO sheet_rows (book, sheet, position, cells)
		 SELECT ?, ?, COALESCE(MAX(position), 0) + 1, ? FROM sheet_rows WHERE book = ? AND sheet = ?`,
		t.book, t.name, string(raw), t.book, t.name); err != nil {
		return fmt.Errorf("appending row: %w", err)
	}
	return nil
}

func (t *sqliteTable) Update(ctx context.Context, row int, values []any) error {
	raw, err := json.Marshal(values)
	if err != nil {
		return fmt.Errorf("encoding row: %w", err)
	}
	res, err := t.c.db.ExecContext(ctx,
		`UPDATE sheet_rows SET cells = ? WHERE book = ? AND sheet = ? AND position = ?`,
		string(raw), t.book, t.name, row)
	if err != nil {
		return fmt.Errorf("updating row %d: %w", row, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("row %d: %w", row, ErrNotFound)
	}
	return nil
}

func (t *sqliteTable) Delete(ctx context.Context, row int) error {
	return t.c.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		res, err := tx.ExecContext(ctx,
			`DELETE FROM sheet_rows WHERE book = ? AND sheet = ? AND position = ?`, t.book, t.name, row)
		if err != nil {
			return fmt.Errorf("deleting row %d: %w", row, err)
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return fmt.Errorf("row %d: %w", row, ErrNotFound)
		}
		if _, err := tx.ExecContext(ctx,
			`UPDATE sheet_rows SET position = position - 1 WHERE book = ? AND sheet = ? AND position > ?`,
			t.book, t.name, row); err != nil {
			return fmt.Errorf("shifting rows after %d: %w", row, err)
		}
		return nil
	})
}
