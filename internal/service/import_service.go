package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/bazaar/internal/catalog"
	"github.com/alexanderramin/bazaar/internal/db"
	"github.com/alexanderramin/bazaar/internal/domain"
	"github.com/alexanderramin/bazaar/internal/repository"
)

type importService struct {
	loader   *catalog.Loader
	store    *Store
	uow      db.UnitOfWork
	observer UseCaseObserver
}

func NewImportService(loader *catalog.Loader, store *Store, uow db.UnitOfWork, observers ...UseCaseObserver) ImportService {
	return &importService{
		loader:   loader,
		store:    store,
		uow:      uow,
		observer: useCaseObserverOrNoop(observers),
	}
}

// ImportDir replaces the whole catalog with the files found in dir.
func (s *importService) ImportDir(ctx context.Context, dir string) (res *ImportResult, err error) {
	fields := map[string]any{"source": dir}
	defer observe(ctx, s.observer, "import-catalog", time.Now().UTC(), fields, &err)

	products, err := s.loader.LoadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("loading catalog: %w", err)
	}
	fields["product_count"] = len(products)
	return s.persist(ctx, dir, products, true)
}

// ImportFile adds one category file to the existing catalog.
func (s *importService) ImportFile(ctx context.Context, path string) (res *ImportResult, err error) {
	fields := map[string]any{"source": path}
	defer observe(ctx, s.observer, "import-catalog-file", time.Now().UTC(), fields, &err)

	products, err := s.loader.LoadFile(path)
	if err != nil {
		return nil, fmt.Errorf("loading catalog file: %w", err)
	}
	fields["product_count"] = len(products)
	return s.persist(ctx, path, products, false)
}

func (s *importService) persist(ctx context.Context, source string, products []domain.Product, replace bool) (*ImportResult, error) {
	imp := &domain.CatalogImport{Source: source, ProductCount: len(products)}

	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txProducts := repository.NewSQLiteProductRepo(tx)
		txImports := repository.NewSQLiteImportRepo(tx)

		if replace {
			if err := txProducts.ReplaceAll(ctx, products); err != nil {
				return fmt.Errorf("replacing catalog: %w", err)
			}
		} else if err := txProducts.Append(ctx, products); err != nil {
			return fmt.Errorf("appending products: %w", err)
		}
		if err := txImports.Record(ctx, imp); err != nil {
			return fmt.Errorf("recording import: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// The transaction must be closed before reading: an in-memory database
	// has a single connection.
	if err := s.store.Load(ctx); err != nil {
		return nil, err
	}
	return &ImportResult{Import: imp, Categories: catalog.Categories(products)}, nil
}
