package repository

import "strings"

// Column names as they appear in the header row.
const (
	ColID       = "ID"
	ColTitle    = "Title"
	ColDate     = "Date"
	ColTime     = "Time"
	ColLocation = "Location"
	ColCategory = "Category"
	ColBudget   = "Budget"
	ColNotes    = "Notes"
	ColPriority = "Priority"
	ColCreated  = "Created"
)

// Columns is the header written to new worksheets.
var Columns = []string{
	ColID, ColTitle, ColDate, ColTime, ColLocation,
	ColCategory, ColBudget, ColNotes, ColPriority, ColCreated,
}

// LegacyColumns is the older eight-column header. Tables that use it stay
// readable and writable; budget and priority are not stored.
var LegacyColumns = []string{
	ColID, ColTitle, ColDate, ColTime, ColLocation,
	ColCategory, ColNotes, ColCreated,
}

// header maps column names to zero-based positions.
type header struct {
	names []string
	index map[string]int
}

func newHeader(names []string) header {
	h := header{names: names, index: make(map[string]int, len(names))}
	for i, n := range names {
		key := strings.ToLower(strings.TrimSpace(n))
		if key == "" {
			continue
		}
		if _, dup := h.index[key]; !dup {
			h.index[key] = i
		}
	}
	return h
}

func headerFromRow(row []any) header {
	names := make([]string, len(row))
	for i, v := range row {
		names[i] = cellString(v)
	}
	return newHeader(names)
}

// empty reports whether no column has a name.
func (h header) empty() bool { return len(h.index) == 0 }

func (h header) col(name string) (int, bool) {
	i, ok := h.index[strings.ToLower(name)]
	return i, ok
}

// get returns the cell under the named column, or nil when the column or
// cell is absent.
func (h header) get(row []any, name string) any {
	i, ok := h.col(name)
	if !ok || i >= len(row) {
		return nil
	}
	return row[i]
}

func headerRow(names []string) []any {
	out := make([]any, len(names))
	for i, n := range names {
		out[i] = n
	}
	return out
}
