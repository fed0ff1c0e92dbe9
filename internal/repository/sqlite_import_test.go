package repository

import (
	"context"
	"testing"
	"time"

	"github.com/alexanderramin/bazaar/internal/domain"
	"github.com/alexanderramin/bazaar/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImportRepo_RecordAndLatest(t *testing.T) {
	repo := NewSQLiteImportRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	_, err := repo.Latest(ctx)
	assert.ErrorIs(t, err, ErrNoImports)

	first := &domain.CatalogImport{Source: "data/", ProductCount: 10}
	require.NoError(t, repo.Record(ctx, first))
	assert.NotZero(t, first.ID)
	assert.False(t, first.ImportedAt.IsZero())

	at := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, repo.Record(ctx, &domain.CatalogImport{Source: "more/", ProductCount: 4, ImportedAt: at}))

	latest, err := repo.Latest(ctx)
	require.NoError(t, err)
	assert.Equal(t, "more/", latest.Source)
	assert.Equal(t, 4, latest.ProductCount)
	assert.True(t, at.Equal(latest.ImportedAt))
}
