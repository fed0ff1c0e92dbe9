package service

import (
	"context"

	"github.com/alexanderramin/bazaar/internal/assistant"
	"github.com/alexanderramin/bazaar/internal/catalog"
	"github.com/alexanderramin/bazaar/internal/domain"
	"github.com/alexanderramin/bazaar/internal/negotiation"
	"github.com/alexanderramin/bazaar/internal/recommend"
	"github.com/alexanderramin/bazaar/internal/repository"
)

type CatalogService interface {
	List(ctx context.Context, q catalog.Query) ([]domain.Product, error)
	Get(ctx context.Context, id string) (*domain.Product, error)
	Categories(ctx context.Context) ([]repository.CategoryCount, error)
	LastImport(ctx context.Context) (*domain.CatalogImport, error)
}

// ImportResult holds the outcome of a catalog import.
type ImportResult struct {
	Import     *domain.CatalogImport
	Categories []string
}

type ImportService interface {
	ImportDir(ctx context.Context, dir string) (*ImportResult, error)
	ImportFile(ctx context.Context, path string) (*ImportResult, error)
}

type NegotiationService interface {
	Offer(ctx context.Context, productID string, offer float64) (*negotiation.Result, error)
	History(ctx context.Context, productID string) (*domain.NegotiationHistory, error)
	MinimumAcceptable(ctx context.Context, productID string) (float64, error)
	Reset(ctx context.Context, productID string) error
}

type RecommendationService interface {
	Similar(ctx context.Context, productID string, limit int) ([]recommend.ScoredProduct, error)
	Better(ctx context.Context, productID string, limit int) ([]recommend.ScoredProduct, error)
	Personalized(ctx context.Context, viewedIDs []string, limit int) ([]domain.Product, error)
	Search(ctx context.Context, query string, limit int) ([]domain.Product, error)
}

// OrderLine is one checked-out cart line at its effective unit price.
type OrderLine struct {
	ProductID string   `json:"product_id"`
	Title     string   `json:"title"`
	Price     *float64 `json:"price"`
	Quantity  int      `json:"quantity"`
}

// Order is the result of a simulated checkout.
type Order struct {
	Lines []OrderLine `json:"lines"`
	Total float64     `json:"total"`
}

type CartService interface {
	Get(ctx context.Context) domain.Cart
	Add(ctx context.Context, productID string, quantity int, negotiatedPrice *float64) (domain.Cart, error)
	Remove(ctx context.Context, productID string) domain.Cart
	UpdateQuantity(ctx context.Context, productID string, quantity int) (domain.Cart, error)
	Clear(ctx context.Context) domain.Cart
	Checkout(ctx context.Context) (*Order, error)
}

type ChatService interface {
	Ask(ctx context.Context, query string) assistant.Reply
	Answer(ctx context.Context, query string) string
}
