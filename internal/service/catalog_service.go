package service

import (
	"context"
	"fmt"

	"github.com/alexanderramin/bazaar/internal/catalog"
	"github.com/alexanderramin/bazaar/internal/domain"
	"github.com/alexanderramin/bazaar/internal/repository"
)

type catalogService struct {
	store    *Store
	products repository.ProductRepo
	imports  repository.ImportRepo
}

func NewCatalogService(store *Store, products repository.ProductRepo, imports repository.ImportRepo) CatalogService {
	return &catalogService{store: store, products: products, imports: imports}
}

func (s *catalogService) List(_ context.Context, q catalog.Query) ([]domain.Product, error) {
	if q.Sort != "" && !q.Sort.Valid() {
		return nil, fmt.Errorf("unknown sort %q", q.Sort)
	}
	return q.Apply(s.store.Products()), nil
}

func (s *catalogService) Get(_ context.Context, id string) (*domain.Product, error) {
	p, err := s.store.Product(id)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *catalogService) Categories(ctx context.Context) ([]repository.CategoryCount, error) {
	return s.products.Categories(ctx)
}

func (s *catalogService) LastImport(ctx context.Context) (*domain.CatalogImport, error) {
	return s.imports.Latest(ctx)
}
