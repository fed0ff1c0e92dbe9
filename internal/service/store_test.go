package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/bazaar/internal/domain"
	"github.com/alexanderramin/bazaar/internal/features"
	"github.com/alexanderramin/bazaar/internal/recommend"
	"github.com/alexanderramin/bazaar/internal/repository"
	"github.com/alexanderramin/bazaar/internal/testutil"
)

func TestStore_EmptyUntilLoaded(t *testing.T) {
	repo := repository.NewSQLiteProductRepo(testutil.NewTestDB(t))
	store := NewStore(repo, features.NewExtractor(), features.DefaultWeights(), recommend.DefaultConfig())

	assert.Empty(t, store.Products())
	_, err := store.Product("computers_acme15")
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestStore_LoadSwapsSnapshot(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	before := env.store.Engine()
	require.Len(t, env.store.Products(), len(testutil.SampleCatalog()))

	require.NoError(t, env.products.ReplaceAll(ctx, testutil.SampleCatalog()[:2]))
	require.NoError(t, env.store.Load(ctx))

	assert.NotSame(t, before, env.store.Engine())
	assert.Len(t, env.store.Products(), 2)
	assert.Len(t, before.Products(), len(testutil.SampleCatalog()), "old engine keeps its catalog")

	_, err := env.store.Product("home_kitchen_barista")
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestStore_RelevanceUsesCurrentEngine(t *testing.T) {
	env := newTestEnv(t)
	got := env.store.Relevance("Acme Laptop 15.6 inch, 16GB RAM, 512GB SSD", env.store.Products(), 1)
	require.Len(t, got, 1)
	assert.Equal(t, "computers_acme15", got[0].ID)
}
