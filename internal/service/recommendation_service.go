package service

import (
	"context"
	"time"

	"github.com/alexanderramin/bazaar/internal/domain"
	"github.com/alexanderramin/bazaar/internal/recommend"
)

// Default result sizes per recommendation kind.
const (
	DefaultSimilarLimit      = 5
	DefaultBetterLimit       = 3
	DefaultPersonalizedLimit = 5
	DefaultSearchLimit       = 10
)

type recommendationService struct {
	store    *Store
	observer UseCaseObserver
}

func NewRecommendationService(store *Store, observers ...UseCaseObserver) RecommendationService {
	return &recommendationService{store: store, observer: useCaseObserverOrNoop(observers)}
}

func (s *recommendationService) Similar(ctx context.Context, productID string, limit int) (out []recommend.ScoredProduct, err error) {
	fields := map[string]any{"product_id": productID, "limit": limit}
	defer observe(ctx, s.observer, "similar-products", time.Now().UTC(), fields, &err)

	p, err := s.store.Product(productID)
	if err != nil {
		return nil, err
	}
	out = s.store.Engine().FindSimilar(p, limit)
	fields["results"] = len(out)
	return out, nil
}

func (s *recommendationService) Better(ctx context.Context, productID string, limit int) (out []recommend.ScoredProduct, err error) {
	fields := map[string]any{"product_id": productID, "limit": limit}
	defer observe(ctx, s.observer, "better-alternatives", time.Now().UTC(), fields, &err)

	p, err := s.store.Product(productID)
	if err != nil {
		return nil, err
	}
	out = s.store.Engine().FindBetterAlternatives(p, limit)
	fields["results"] = len(out)
	return out, nil
}

// Personalized recommends from the viewed products that exist in the
// catalog, taken in catalog order. Unknown IDs are ignored.
func (s *recommendationService) Personalized(ctx context.Context, viewedIDs []string, limit int) (out []domain.Product, err error) {
	fields := map[string]any{"viewed": len(viewedIDs), "limit": limit}
	defer observe(ctx, s.observer, "personalized-recommendations", time.Now().UTC(), fields, &err)

	wanted := make(map[string]struct{}, len(viewedIDs))
	for _, id := range viewedIDs {
		wanted[id] = struct{}{}
	}
	engine := s.store.Engine()
	var viewed []domain.Product
	for _, p := range engine.Products() {
		if _, ok := wanted[p.ID]; ok {
			viewed = append(viewed, p)
		}
	}
	fields["matched"] = len(viewed)
	return engine.Personalized(viewed, limit), nil
}

func (s *recommendationService) Search(ctx context.Context, query string, limit int) (out []domain.Product, err error) {
	fields := map[string]any{"query": query, "limit": limit}
	defer observe(ctx, s.observer, "search", time.Now().UTC(), fields, &err)
	return s.store.Engine().Search(query, limit), nil
}
