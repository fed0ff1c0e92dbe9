package service

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/alexanderramin/bazaar/internal/domain"
	"github.com/alexanderramin/bazaar/internal/features"
	"github.com/alexanderramin/bazaar/internal/recommend"
	"github.com/alexanderramin/bazaar/internal/repository"
)

type snapshot struct {
	byID   map[string]domain.Product
	engine *recommend.Engine
}

// Store serves the persisted catalog from memory. Load swaps in a fresh
// snapshot and recommendation engine; readers never see a partial catalog.
type Store struct {
	products  repository.ProductRepo
	extractor features.Extractor
	weights   features.Weights
	cfg       recommend.Config
	current   atomic.Pointer[snapshot]
}

func NewStore(products repository.ProductRepo, extractor features.Extractor, weights features.Weights, cfg recommend.Config) *Store {
	s := &Store{products: products, extractor: extractor, weights: weights, cfg: cfg}
	s.swap(nil)
	return s
}

// Load rebuilds the snapshot from the repository.
func (s *Store) Load(ctx context.Context) error {
	products, err := s.products.List(ctx)
	if err != nil {
		return fmt.Errorf("loading catalog: %w", err)
	}
	s.swap(products)
	return nil
}

func (s *Store) swap(products []domain.Product) {
	byID := make(map[string]domain.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}
	s.current.Store(&snapshot{
		byID:   byID,
		engine: recommend.NewEngine(products, s.weights, s.extractor, s.cfg),
	})
}

// Engine is the recommendation engine over the current snapshot.
func (s *Store) Engine() *recommend.Engine {
	return s.current.Load().engine
}

// Products returns the current catalog in insertion order.
func (s *Store) Products() []domain.Product {
	return s.Engine().Products()
}

// Product looks up one product in the snapshot.
func (s *Store) Product(id string) (domain.Product, error) {
	p, ok := s.current.Load().byID[id]
	if !ok {
		return domain.Product{}, fmt.Errorf("product %q: %w", id, domain.ErrProductNotFound)
	}
	return p, nil
}

// Relevance ranks pool against query with the current engine.
func (s *Store) Relevance(query string, pool []domain.Product, limit int) []domain.Product {
	return s.Engine().Relevance(query, pool, limit)
}
