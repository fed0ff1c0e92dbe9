package service

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/bazaar/internal/features"
	"github.com/alexanderramin/bazaar/internal/negotiation"
	"github.com/alexanderramin/bazaar/internal/recommend"
	"github.com/alexanderramin/bazaar/internal/repository"
	"github.com/alexanderramin/bazaar/internal/testutil"
)

type testEnv struct {
	db       *sql.DB
	products *repository.SQLiteProductRepo
	imports  *repository.SQLiteImportRepo
	store    *Store
}

// newTestEnv returns an in-memory catalog seeded with testutil.SampleCatalog.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	database := testutil.NewTestDB(t)
	env := &testEnv{
		db:       database,
		products: repository.NewSQLiteProductRepo(database),
		imports:  repository.NewSQLiteImportRepo(database),
	}
	env.store = NewStore(env.products, features.NewExtractor(), features.DefaultWeights(), recommend.DefaultConfig())

	ctx := context.Background()
	require.NoError(t, env.products.ReplaceAll(ctx, testutil.SampleCatalog()))
	require.NoError(t, env.store.Load(ctx))
	return env
}

func (e *testEnv) negotiation() NegotiationService {
	return NewNegotiationService(e.store, negotiation.NewEngine(negotiation.DefaultConfig(), nil))
}

// recordingObserver keeps every use-case event.
type recordingObserver struct {
	events []UseCaseEvent
}

func (r *recordingObserver) ObserveUseCase(_ context.Context, e UseCaseEvent) {
	r.events = append(r.events, e)
}

func writeCSV(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}
