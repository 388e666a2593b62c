package testutil

import (
	"context"
	"fmt"
	"sync"

	"github.com/alexanderramin/itinerary/internal/sheet"
)

// FakeSheets is an in-memory sheet.Client. Set the *Err fields to make
// the matching calls fail.
type FakeSheets struct {
	OpenErr     error
	CreateErr   error
	AddTableErr error
	RowsErr     error
	WriteErr    error

	mu    sync.Mutex
	books map[string]*fakeBook
}

func NewFakeSheets() *FakeSheets {
	return &FakeSheets{books: make(map[string]*fakeBook)}
}

// Seed creates a book holding one table with the given rows.
func (f *FakeSheets) Seed(book, table string, rows ...[]any) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.books[book]
	if !ok {
		b = &fakeBook{f: f, title: book, tables: make(map[string]*fakeTable)}
		f.books[book] = b
	}
	b.tables[table] = &fakeTable{f: f, name: table, rows: rows}
}

// Rows returns a copy of a table's rows, or nil when absent.
func (f *FakeSheets) Rows(book, table string) [][]any {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.books[book]
	if !ok {
		return nil
	}
	t, ok := b.tables[table]
	if !ok {
		return nil
	}
	out := make([][]any, len(t.rows))
	copy(out, t.rows)
	return out
}

func (f *FakeSheets) OpenBook(_ context.Context, ref sheet.BookRef) (sheet.Book, error) {
	if f.OpenErr != nil {
		return nil, f.OpenErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.books[ref.String()]
	if !ok {
		return nil, fmt.Errorf("book %q: %w", ref.String(), sheet.ErrNotFound)
	}
	return b, nil
}

func (f *FakeSheets) CreateBook(_ context.Context, title string) (sheet.Book, error) {
	if f.CreateErr != nil {
		return nil, f.CreateErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	b := &fakeBook{f: f, title: title, tables: make(map[string]*fakeTable)}
	f.books[title] = b
	return b, nil
}

type fakeBook struct {
	f      *FakeSheets
	title  string
	tables map[string]*fakeTable
}

func (b *fakeBook) ID() string    { return b.title }
func (b *fakeBook) Title() string { return b.title }

func (b *fakeBook) Table(_ context.Context, name string) (sheet.Table, error) {
	b.f.mu.Lock()
	defer b.f.mu.Unlock()
	t, ok := b.tables[name]
	if !ok {
		return nil, fmt.Errorf("table %q: %w", name, sheet.ErrNotFound)
	}
	return t, nil
}

func (b *fakeBook) AddTable(_ context.Context, name string) (sheet.Table, error) {
	if b.f.AddTableErr != nil {
		return nil, b.f.AddTableErr
	}
	b.f.mu.Lock()
	defer b.f.mu.Unlock()
	t := &fakeTable{f: b.f, name: name}
	b.tables[name] = t
	return t, nil
}

type fakeTable struct {
	f    *FakeSheets
	name string
	rows [][]any
}

func (t *fakeTable) Name() string { return t.name }

func (t *fakeTable) Rows(context.Context) ([][]any, error) {
	if t.f.RowsErr != nil {
		return nil, t.f.RowsErr
	}
	t.f.mu.Lock()
	defer t.f.mu.Unlock()
	out := make([][]any, len(t.rows))
	copy(out, t.rows)
	return out, nil
}

func (t *fakeTable) Append(_ context.Context, values []any) error {
	if t.f.WriteErr != nil {
		return t.f.WriteErr
	}
	t.f.mu.Lock()
	defer t.f.mu.Unlock()
	t.rows = append(t.rows, append([]any(nil), values...))
	return nil
}

func (t *fakeTable) Update(_ context.Context, row int, values []any) error {
	if t.f.WriteErr != nil {
		return t.f.WriteErr
	}
	t.f.mu.Lock()
	defer t.f.mu.Unlock()
	if row < 1 || row > len(t.rows) {
		return fmt.Errorf("row %d: %w", row, sheet.ErrNotFound)
	}
	t.rows[row-1] = append([]any(nil), values...)
	return nil
}

func (t *fakeTable) Delete(_ context.Context, row int) error {
	if t.f.WriteErr != nil {
		return t.f.WriteErr
	}
	t.f.mu.Lock()
	defer t.f.mu.Unlock()
	if row < 1 || row > len(t.rows) {
		return fmt.Errorf("row %d: %w", row, sheet.ErrNotFound)
	}
	t.rows = append(t.rows[:row-1], t.rows[row:]...)
	return nil
}
