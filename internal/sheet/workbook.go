package sheet

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/xuri/excelize/v2"
)

// WorkbookClient stores each book as an .xlsx file in a directory. Book
// IDs are file paths.
type WorkbookClient struct {
	dir string

	mu    sync.Mutex
	books map[string]*workbook
}

func NewWorkbookClient(dir string) (*WorkbookClient, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating workbook directory: %w", err)
	}
	return &WorkbookClient{dir: dir, books: make(map[string]*workbook)}, nil
}

func (c *WorkbookClient) path(ref BookRef) string {
	if ref.ID != "" {
		return ref.ID
	}
	return filepath.Join(c.dir, safeFileName(ref.Title)+".xlsx")
}

func (c *WorkbookClient) OpenBook(ctx context.Context, ref BookRef) (Book, error) {
	path := c.path(ref)

	c.mu.Lock()
	defer c.mu.Unlock()
	if b, ok := c.books[path]; ok {
		return b, nil
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("workbook %s: %w", path, ErrNotFound)
		}
		return nil, fmt.Errorf("opening workbook %s: %w", path, err)
	}
	b := &workbook{path: path, title: titleOf(ref, path), f: f}
	c.books[path] = b
	return b, nil
}

func (c *WorkbookClient) CreateBook(ctx context.Context, title string) (Book, error) {
	path := c.path(BookRef{Title: title})

	c.mu.Lock()
	defer c.mu.Unlock()
	if _, err := os.Stat(path); err == nil {
		return nil, fmt.Errorf("workbook %s already exists", path)
	}

	f := excelize.NewFile()
	if err := f.SaveAs(path); err != nil {
		return nil, fmt.Errorf("saving workbook %s: %w", path, err)
	}
	b := &workbook{path: path, title: title, f: f}
	c.books[path] = b
	return b, nil
}

// Close releases every open workbook.
func (c *WorkbookClient) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	var errs []error
	for path, b := range c.books {
		if err := b.f.Close(); err != nil {
			errs = append(errs, err)
		}
		delete(c.books, path)
	}
	return errors.Join(errs...)
}

func titleOf(ref BookRef, path string) string {
	if ref.Title != "" {
		return ref.Title
	}
	return strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
}

func safeFileName(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|':
			return '_'
		}
		return r
	}, s)
}

type workbook struct {
	path  string
	title string

	mu sync.Mutex
	f  *excelize.File
}

func (b *workbook) ID() string    { return b.path }
func (b *workbook) Title() string { return b.title }

func (b *workbook) Table(ctx context.Context, name string) (Table, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	idx, err := b.f.GetSheetIndex(name)
	if err != nil {
		return nil, fmt.Errorf("looking up sheet %q: %w", name, err)
	}
	if idx < 0 {
		return nil, fmt.Errorf("sheet %q: %w", name, ErrNotFound)
	}
	return &workbookTable{b: b, name: name}, nil
}

func (b *workbook) AddTable(ctx context.Context, name string) (Table, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, err := b.f.NewSheet(name); err != nil {
		return nil, fmt.Errorf("adding sheet %q: %w", name, err)
	}
	if err := b.f.Save(); err != nil {
		return nil, fmt.Errorf("saving workbook: %w", err)
	}
	return &workbookTable{b: b, name: name}, nil
}

type workbookTable struct {
	b    *workbook
	name string
}

func (t *workbookTable) Name() string { return t.name }

// Rows returns cell text. Number cells come back as their string form;
// readers parse them.
func (t *workbookTable) Rows(ctx context.Context) ([][]any, error) {
	t.b.mu.Lock()
	defer t.b.mu.Unlock()
	raw, err := t.b.f.GetRows(t.name)
	if err != nil {
		return nil, fmt.Errorf("reading sheet %q: %w", t.name, err)
	}
	out := make([][]any, len(raw))
	for i, r := range raw {
		row := make([]any, len(r))
		for j, v := range r {
			row[j] = v
		}
		out[i] = row
	}
	return out, nil
}

func (t *workbookTable) rowCount() (int, error) {
	rows, err := t.b.f.GetRows(t.name)
	if err != nil {
		return 0, fmt.Errorf("reading sheet %q: %w", t.name, err)
	}
	return len(rows), nil
}

func (t *workbookTable) Append(ctx context.Context, values []any) error {
	t.b.mu.Lock()
	defer t.b.mu.Unlock()
	n, err := t.rowCount()
	if err != nil {
		return err
	}
	return t.writeRow(n+1, values)
}

func (t *workbookTable) Update(ctx context.Context, row int, values []any) error {
	t.b.mu.Lock()
	defer t.b.mu.Unlock()
	n, err := t.rowCount()
	if err != nil {
		return err
	}
	if row < 1 || row > n {
		return fmt.Errorf("row %d: %w", row, ErrNotFound)
	}
	return t.writeRow(row, values)
}

func (t *workbookTable) writeRow(row int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	vals := make([]interface{}, len(values))
	copy(vals, values)
	if err := t.b.f.SetSheetRow(t.name, cell, &vals); err != nil {
		return fmt.Errorf("writing row %d: %w", row, err)
	}
	if err := t.b.f.Save(); err != nil {
		return fmt.Errorf("saving workbook: %w", err)
	}
	return nil
}

func (t *workbookTable) Delete(ctx context.Context, row int) error {
	t.b.mu.Lock()
	defer t.b.mu.Unlock()
	n, err := t.rowCount()
	if err != nil {
		return err
	}
	if row < 1 || row > n {
		return fmt.Errorf("row %d: %w", row, ErrNotFound)
	}
	if err := t.b.f.RemoveRow(t.name, row); err != nil {
		return fmt.Errorf("removing row %d: %w", row, err)
	}
	if err := t.b.f.Save(); err != nil {
		return fmt.Errorf("saving workbook: %w", err)
	}
	return nil
}
