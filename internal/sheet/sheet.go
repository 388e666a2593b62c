// Package sheet abstracts a spreadsheet-like record store: books hold
// named tables, tables hold rows addressed by 1-based row number with the
// header in row 1. Cell values are primitives only (string, int64,
// float64); callers coerce before writing.
package sheet

import (
	"context"
	"errors"
)

var (
	// ErrNotFound indicates a missing book, table or row.
	ErrNotFound = errors.New("not found")

	// ErrQuota indicates the backend refused to create storage because a
	// quota or capacity limit was hit.
	ErrQuota = errors.New("storage quota exceeded")

	// ErrAuth indicates the backend rejected the credential.
	ErrAuth = errors.New("credential rejected")
)

// HeaderRow is the row number of the header.
const HeaderRow = 1

// BookRef names a book. ID wins when both are set.
type BookRef struct {
	ID    string
	Title string
}

func (r BookRef) String() string {
	if r.ID != "" {
		return r.ID
	}
	return r.Title
}

// Client opens and creates books.
type Client interface {
	OpenBook(ctx context.Context, ref BookRef) (Book, error)
	CreateBook(ctx context.Context, title string) (Book, error)
}

// Book is a single spreadsheet.
type Book interface {
	ID() string
	Title() string
	Table(ctx context.Context, name string) (Table, error)
	AddTable(ctx context.Context, name string) (Table, error)
}

// Table is one worksheet.
type Table interface {
	Name() string
	// Rows returns every row including the header. Trailing empty cells
	// may be omitted by the backend.
	Rows(ctx context.Context) ([][]any, error)
	Append(ctx context.Context, values []any) error
	// Update overwrites the row starting at the first column.
	Update(ctx context.Context, row int, values []any) error
	// Delete removes the row; later rows move up by one.
	Delete(ctx context.Context, row int) error
}

// Pad returns row extended with empty strings to at least n cells.
func Pad(row []any, n int) []any {
	if len(row) >= n {
		return row
	}
	out := make([]any, n)
	copy(out, row)
	for i := len(row); i < n; i++ {
		out[i] = ""
	}
	return out
}
