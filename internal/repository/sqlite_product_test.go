package repository

import (
	"context"
	"testing"

	"github.com/alexanderramin/bazaar/internal/db"
	"github.com/alexanderramin/bazaar/internal/domain"
	"github.com/alexanderramin/bazaar/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductRepo_ReplaceAllAndList(t *testing.T) {
	repo := NewSQLiteProductRepo(testutil.NewTestDB(t))
	ctx := context.Background()
	catalog := testutil.SampleCatalog()

	require.NoError(t, repo.ReplaceAll(ctx, catalog))

	got, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, got, len(catalog))
	for i := range catalog {
		assert.Equal(t, catalog[i].ID, got[i].ID, "catalog order is kept")
	}

	// Replacing again drops the old rows.
	require.NoError(t, repo.ReplaceAll(ctx, catalog[:2]))
	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestProductRepo_RoundTripsFields(t *testing.T) {
	repo := NewSQLiteProductRepo(testutil.NewTestDB(t))
	ctx := context.Background()
	catalog := testutil.SampleCatalog()
	require.NoError(t, repo.ReplaceAll(ctx, catalog))

	got, err := repo.GetByID(ctx, "computers_acme15")
	require.NoError(t, err)
	want := catalog[0]
	assert.Equal(t, want.Title, got.Title)
	require.NotNil(t, got.Price)
	assert.Equal(t, 899.99, *got.Price)
	require.NotNil(t, got.Rating)
	assert.Equal(t, 4.5, *got.Rating)
	assert.Equal(t, 1204, got.Reviews)
	assert.Equal(t, "Acme", got.Brand)
	assert.Equal(t, want.Features.Names(), got.Features.Names())
	assert.Equal(t, want.Features["category_keywords"].Keywords, got.Features["category_keywords"].Keywords)
	assert.True(t, got.Features["category_keywords"].IsKeywords())

	unpriced, err := repo.GetByID(ctx, "electronics_sonic_ear")
	require.NoError(t, err)
	assert.Nil(t, unpriced.Price)
	assert.Nil(t, unpriced.Rating)
	assert.Nil(t, unpriced.ImageURL)
}

func TestProductRepo_GetByIDNotFound(t *testing.T) {
	repo := NewSQLiteProductRepo(testutil.NewTestDB(t))

	_, err := repo.GetByID(context.Background(), "nope")
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestProductRepo_GetByIDsKeepsCatalogOrder(t *testing.T) {
	repo := NewSQLiteProductRepo(testutil.NewTestDB(t))
	ctx := context.Background()
	require.NoError(t, repo.ReplaceAll(ctx, testutil.SampleCatalog()))

	got, err := repo.GetByIDs(ctx, []string{"home_kitchen_barista", "missing", "computers_acme14"})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "computers_acme14", got[0].ID)
	assert.Equal(t, "home_kitchen_barista", got[1].ID)

	empty, err := repo.GetByIDs(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestProductRepo_ListByCategoryAndCategories(t *testing.T) {
	repo := NewSQLiteProductRepo(testutil.NewTestDB(t))
	ctx := context.Background()
	require.NoError(t, repo.ReplaceAll(ctx, testutil.SampleCatalog()))

	electronics, err := repo.ListByCategory(ctx, "electronics")
	require.NoError(t, err)
	assert.Len(t, electronics, 2)

	cats, err := repo.Categories(ctx)
	require.NoError(t, err)
	assert.Equal(t, []CategoryCount{
		{Category: "computers", Count: 3},
		{Category: "electronics", Count: 2},
		{Category: "home_kitchen", Count: 1},
	}, cats)
}

func TestProductRepo_AppendContinuesSequence(t *testing.T) {
	repo := NewSQLiteProductRepo(testutil.NewTestDB(t))
	ctx := context.Background()
	catalog := testutil.SampleCatalog()

	require.NoError(t, repo.Append(ctx, catalog[3:]))
	require.NoError(t, repo.Append(ctx, catalog[:3]))

	got, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, got, 6)
	assert.Equal(t, "electronics_sonic", got[0].ID)
	assert.Equal(t, "computers_acme15", got[3].ID)
}

func TestProductRepo_ReplaceAllInsideUnitOfWork(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()
	catalog := testutil.SampleCatalog()
	require.NoError(t, NewSQLiteProductRepo(database).ReplaceAll(ctx, catalog[:1]))

	uow := &testutil.FailOnNthExecUoW{DB: database, FailOn: 3, Err: assert.AnError}
	err := uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return NewSQLiteProductRepo(tx).ReplaceAll(ctx, catalog)
	})
	require.ErrorIs(t, err, assert.AnError)

	got, err := NewSQLiteProductRepo(database).List(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1, "failed replace must leave the old catalog")
	assert.Equal(t, "computers_acme15", got[0].ID)
}
