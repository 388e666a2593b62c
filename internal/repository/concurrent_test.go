package repository

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"sync"
	"testing"

	"github.com/alexanderramin/itinerary/internal/db"
	"github.com/alexanderramin/itinerary/internal/sheet"
	"github.com/alexanderramin/itinerary/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newConcurrentTestDB creates a file-backed SQLite database in a temp directory.
// Unlike :memory:, a file-backed DB shares state across all connections in the
// pool, which is required to test real concurrent access with WAL mode.
func newConcurrentTestDB(t *testing.T) *sql.DB {
	t.Helper()
	database, err := db.OpenDB(filepath.Join(t.TempDir(), "concurrent_test.db"))
	require.NoError(t, err, "failed to create concurrent test database")
	t.Cleanup(func() { database.Close() })
	return database
}

// TestConcurrentAccess_AppendsWhileReading runs several writers appending
// plans while readers load the table. Every load must parse and every
// append must land on its own row.
func TestConcurrentAccess_AppendsWhileReading(t *testing.T) {
	database := newConcurrentTestDB(t)
	ctx := context.Background()
	repo := NewSheetPlanRepo(sheet.NewSQLiteClient(database), sheet.BookRef{Title: "Trip"}, "Trips", testutil.Trip())
	_, err := repo.Provision(ctx)
	require.NoError(t, err)

	const writers, perWriter = 4, 5
	var wg sync.WaitGroup

	for w := 0; w < writers; w++ {
		wg.Add(1)
		go func(writer int) {
			defer wg.Done()
			for i := 0; i < perWriter; i++ {
				p := testutil.NewTestPlan(fmt.Sprintf("Plan-%d-%d", writer, i), "2025-12-20")
				if err := repo.Append(ctx, p); err != nil {
					t.Errorf("writer %d: append %d: %v", writer, i, err)
					return
				}
			}
		}(w)
	}

	for r := 0; r < 3; r++ {
		wg.Add(1)
		go func(reader int) {
			defer wg.Done()
			for i := 0; i < 10; i++ {
				plans, err := repo.LoadAll(ctx)
				if err != nil {
					t.Errorf("reader %d: load: %v", reader, err)
					return
				}
				for _, p := range plans {
					if p.ID == "" || p.Title == "" {
						t.Errorf("reader %d: got a half-written plan", reader)
					}
				}
			}
		}(r)
	}

	wg.Wait()

	plans, err := repo.LoadAll(ctx)
	require.NoError(t, err)
	assert.Len(t, plans, writers*perWriter)

	seen := make(map[string]bool, len(plans))
	for _, p := range plans {
		assert.False(t, seen[p.Title], "duplicate %s", p.Title)
		seen[p.Title] = true
	}
}

// TestConcurrentAccess_ResolveOnce checks that concurrent first use of a
// fresh store creates the book and header exactly once.
func TestConcurrentAccess_ResolveOnce(t *testing.T) {
	fake := testutil.NewFakeSheets()
	repo := NewSheetPlanRepo(fake, sheet.BookRef{Title: "Trip"}, "Trips", testutil.Trip())
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := repo.LoadAll(ctx); err != nil {
				t.Errorf("load: %v", err)
			}
		}()
	}
	wg.Wait()

	rows := fake.Rows("Trip", "Trips")
	require.Len(t, rows, 1)
	assert.Equal(t, headerRow(Columns), rows[0])
}
