package sheet

import (
	"context"
	"fmt"
	"testing"

	"github.com/alexanderramin/itinerary/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// backends returns a fresh client per local backend.
func backends(t *testing.T) map[string]Client {
	t.Helper()
	database, err := db.OpenDB(db.MemoryPath)
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })

	wb, err := NewWorkbookClient(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { _ = wb.Close() })

	return map[string]Client{
		"sqlite": NewSQLiteClient(database),
		"xlsx":   wb,
	}
}

// cellText flattens a cell for comparison across backends: xlsx returns
// text, sqlite returns JSON-decoded values.
func cellText(v any) string {
	switch x := v.(type) {
	case float64:
		return fmt.Sprintf("%g", x)
	default:
		return fmt.Sprint(x)
	}
}

func rowText(row []any) []string {
	out := make([]string, len(row))
	for i, v := range row {
		out[i] = cellText(v)
	}
	return out
}

func newTable(t *testing.T, c Client) Table {
	t.Helper()
	ctx := context.Background()
	b, err := c.CreateBook(ctx, "Trip")
	require.NoError(t, err)
	tbl, err := b.AddTable(ctx, "Trips")
	require.NoError(t, err)
	require.NoError(t, tbl.Append(ctx, []any{"ID", "Title"}))
	return tbl
}

func TestBackends_OpenMissingBook(t *testing.T) {
	for name, c := range backends(t) {
		t.Run(name, func(t *testing.T) {
			_, err := c.OpenBook(context.Background(), BookRef{Title: "Nope"})
			assert.ErrorIs(t, err, ErrNotFound)
		})
	}
}

func TestBackends_CreateThenOpen(t *testing.T) {
	for name, c := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			created, err := c.CreateBook(ctx, "Trip")
			require.NoError(t, err)

			opened, err := c.OpenBook(ctx, BookRef{Title: "Trip"})
			require.NoError(t, err)
			assert.Equal(t, created.ID(), opened.ID())
			assert.Equal(t, "Trip", opened.Title())

			_, err = opened.Table(ctx, "Trips")
			assert.ErrorIs(t, err, ErrNotFound)

			_, err = opened.AddTable(ctx, "Trips")
			require.NoError(t, err)
			tbl, err := opened.Table(ctx, "Trips")
			require.NoError(t, err)
			assert.Equal(t, "Trips", tbl.Name())
		})
	}
}

func TestBackends_AppendUpdateDelete(t *testing.T) {
	for name, c := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			tbl := newTable(t, c)

			require.NoError(t, tbl.Append(ctx, []any{"a", "Breakfast"}))
			require.NoError(t, tbl.Append(ctx, []any{"b", "Lunch"}))
			require.NoError(t, tbl.Append(ctx, []any{"c", "Dinner"}))

			require.NoError(t, tbl.Update(ctx, 3, []any{"b", "Brunch"}))
			require.NoError(t, tbl.Delete(ctx, 2))

			rows, err := tbl.Rows(ctx)
			require.NoError(t, err)
			require.Len(t, rows, 3)
			assert.Equal(t, []string{"ID", "Title"}, rowText(rows[0]))
			assert.Equal(t, []string{"b", "Brunch"}, rowText(rows[1]))
			assert.Equal(t, []string{"c", "Dinner"}, rowText(rows[2]))

			// Positions stay contiguous after a delete.
			require.NoError(t, tbl.Append(ctx, []any{"d", "Snack"}))
			rows, err = tbl.Rows(ctx)
			require.NoError(t, err)
			require.Len(t, rows, 4)
			assert.Equal(t, []string{"d", "Snack"}, rowText(rows[3]))
		})
	}
}

func TestBackends_NumbersSurvive(t *testing.T) {
	for name, c := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			tbl := newTable(t, c)

			require.NoError(t, tbl.Append(ctx, []any{int64(42), 10.5}))
			rows, err := tbl.Rows(ctx)
			require.NoError(t, err)
			assert.Equal(t, []string{"42", "10.5"}, rowText(rows[1]))
		})
	}
}

func TestBackends_MissingRow(t *testing.T) {
	for name, c := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			tbl := newTable(t, c)

			assert.ErrorIs(t, tbl.Update(ctx, 5, []any{"x"}), ErrNotFound)
			assert.ErrorIs(t, tbl.Delete(ctx, 5), ErrNotFound)
		})
	}
}

func TestPad(t *testing.T) {
	assert.Equal(t, []any{"a", "", ""}, Pad([]any{"a"}, 3))
	row := []any{"a", "b"}
	assert.Equal(t, row, Pad(row, 1))
}

func TestBookRef_String(t *testing.T) {
	assert.Equal(t, "abc", BookRef{ID: "abc", Title: "Trip"}.String())
	assert.Equal(t, "Trip", BookRef{Title: "Trip"}.String())
}
