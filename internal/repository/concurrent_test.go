package repository

import (
	"context"
	"database/sql"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/bazaar/internal/db"
	"github.com/alexanderramin/bazaar/internal/domain"
	"github.com/alexanderramin/bazaar/internal/testutil"
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

// TestConcurrentAccess_ListDuringReplace checks that readers only ever see a
// whole catalog while a writer swaps catalogs inside transactions.
func TestConcurrentAccess_ListDuringReplace(t *testing.T) {
	database := newConcurrentTestDB(t)
	ctx := context.Background()
	repo := NewSQLiteProductRepo(database)
	uow := db.NewSQLiteUnitOfWork(database)

	full := testutil.SampleCatalog()
	small := []domain.Product{
		testutil.NewTestProduct("Glow Desk Lamp", testutil.WithID("lighting_glow")),
		testutil.NewTestProduct("Glow Floor Lamp", testutil.WithID("lighting_floor")),
	}
	require.NoError(t, repo.ReplaceAll(ctx, full))

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 20; i++ {
			next := small
			if i%2 == 1 {
				next = full
			}
			err := uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
				return NewSQLiteProductRepo(tx).ReplaceAll(ctx, next)
			})
			if err != nil {
				t.Errorf("writer: swap %d: %v", i, err)
				return
			}
		}
	}()

	for r := 0; r < 5; r++ {
		wg.Add(1)
		go func(reader int) {
			defer wg.Done()
			for i := 0; i < 10; i++ {
				products, err := repo.List(ctx)
				if err != nil {
					t.Errorf("reader %d: list: %v", reader, err)
					return
				}
				if n := len(products); n != len(full) && n != len(small) {
					t.Errorf("reader %d: saw a partial catalog of %d products", reader, n)
				}
			}
		}(r)
	}

	wg.Wait()

	products, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, products, len(full))
	assert.Equal(t, full[0].ID, products[0].ID)
}

// TestConcurrentAccess_ConcurrentReads runs many readers over a fixed catalog.
func TestConcurrentAccess_ConcurrentReads(t *testing.T) {
	database := newConcurrentTestDB(t)
	ctx := context.Background()
	repo := NewSQLiteProductRepo(database)
	full := testutil.SampleCatalog()
	require.NoError(t, repo.ReplaceAll(ctx, full))

	var wg sync.WaitGroup
	const readers = 20
	for r := 0; r < readers; r++ {
		wg.Add(1)
		go func(reader int) {
			defer wg.Done()

			products, err := repo.List(ctx)
			if err != nil {
				t.Errorf("reader %d: list: %v", reader, err)
				return
			}
			if len(products) != len(full) {
				t.Errorf("reader %d: expected %d products, got %d", reader, len(full), len(products))
			}

			cats, err := repo.Categories(ctx)
			if err != nil {
				t.Errorf("reader %d: categories: %v", reader, err)
				return
			}
			if len(cats) != 3 {
				t.Errorf("reader %d: expected 3 categories, got %d", reader, len(cats))
			}

			p, err := repo.GetByID(ctx, "computers_zenith")
			if err != nil || p.Title != full[2].Title {
				t.Errorf("reader %d: get by id: %v", reader, err)
			}
		}(r)
	}
	wg.Wait()
}
