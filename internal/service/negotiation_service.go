package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/bazaar/internal/domain"
	"github.com/alexanderramin/bazaar/internal/negotiation"
)

type negotiationService struct {
	store    *Store
	engine   *negotiation.Engine
	observer UseCaseObserver
}

func NewNegotiationService(store *Store, engine *negotiation.Engine, observers ...UseCaseObserver) NegotiationService {
	return &negotiationService{store: store, engine: engine, observer: useCaseObserverOrNoop(observers)}
}

// Offer evaluates offer against the product's negotiation. A product without
// a price yields a status "error" result, not an error.
func (s *negotiationService) Offer(ctx context.Context, productID string, offer float64) (res *negotiation.Result, err error) {
	fields := map[string]any{"product_id": productID, "offer": offer}
	defer observe(ctx, s.observer, "negotiate", time.Now().UTC(), fields, &err)

	p, err := s.store.Product(productID)
	if err != nil {
		return nil, err
	}
	r := s.engine.EvaluateOffer(p, offer)
	fields["status"] = string(r.Status)
	fields["round"] = r.Round
	return &r, nil
}

func (s *negotiationService) History(_ context.Context, productID string) (*domain.NegotiationHistory, error) {
	if _, err := s.store.Product(productID); err != nil {
		return nil, err
	}
	h, ok := s.engine.History(productID)
	if !ok {
		return nil, fmt.Errorf("product %q: %w", productID, domain.ErrNoNegotiation)
	}
	return &h, nil
}

func (s *negotiationService) MinimumAcceptable(_ context.Context, productID string) (float64, error) {
	p, err := s.store.Product(productID)
	if err != nil {
		return 0, err
	}
	return s.engine.MinimumAcceptablePrice(p)
}

func (s *negotiationService) Reset(_ context.Context, productID string) error {
	if _, err := s.store.Product(productID); err != nil {
		return err
	}
	s.engine.Reset(productID)
	return nil
}
