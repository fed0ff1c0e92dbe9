package repository

import (
	"context"

	"github.com/alexanderramin/bazaar/internal/domain"
)

// CategoryCount is the number of products stored for one category.
type CategoryCount struct {
	Category string
	Count    int
}

// ProductRepo stores the catalog. Listings come back in insertion order.
type ProductRepo interface {
	ReplaceAll(ctx context.Context, products []domain.Product) error
	Append(ctx context.Context, products []domain.Product) error
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	GetByIDs(ctx context.Context, ids []string) ([]domain.Product, error)
	List(ctx context.Context) ([]domain.Product, error)
	ListByCategory(ctx context.Context, category string) ([]domain.Product, error)
	Count(ctx context.Context) (int, error)
	Categories(ctx context.Context) ([]CategoryCount, error)
}

// ImportRepo keeps the log of catalog imports.
type ImportRepo interface {
	Record(ctx context.Context, imp *domain.CatalogImport) error
	Latest(ctx context.Context) (*domain.CatalogImport, error)
}
