package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/alexanderramin/bazaar/internal/domain"
)

// ErrEmptyCart is returned when checking out a cart with no items.
var ErrEmptyCart = errors.New("cart is empty")

// cartService holds a single shopper's cart in memory.
type cartService struct {
	mu       sync.Mutex
	cart     domain.Cart
	store    *Store
	observer UseCaseObserver
}

func NewCartService(store *Store, observers ...UseCaseObserver) CartService {
	return &cartService{store: store, observer: useCaseObserverOrNoop(observers)}
}

func (s *cartService) Get(context.Context) domain.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot()
}

// Add puts the product in the cart. A negotiated price replaces the list
// price of the line.
func (s *cartService) Add(_ context.Context, productID string, quantity int, negotiatedPrice *float64) (domain.Cart, error) {
	p, err := s.store.Product(productID)
	if err != nil {
		return domain.Cart{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart.Add(p, quantity, negotiatedPrice)
	return s.snapshot(), nil
}

func (s *cartService) Remove(_ context.Context, productID string) domain.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart.Remove(productID)
	return s.snapshot()
}

func (s *cartService) UpdateQuantity(_ context.Context, productID string, quantity int) (domain.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.cart.UpdateQuantity(productID, quantity) {
		return s.snapshot(), fmt.Errorf("product %q not in cart: %w", productID, domain.ErrProductNotFound)
	}
	return s.snapshot(), nil
}

func (s *cartService) Clear(context.Context) domain.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart = domain.Cart{}
	return s.snapshot()
}

// Checkout turns the cart into an order and empties it.
func (s *cartService) Checkout(ctx context.Context) (order *Order, err error) {
	fields := map[string]any{}
	defer observe(ctx, s.observer, "checkout", time.Now().UTC(), fields, &err)

	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.cart.Items) == 0 {
		return nil, ErrEmptyCart
	}
	order = &Order{Lines: make([]OrderLine, 0, len(s.cart.Items)), Total: s.cart.Total()}
	for _, item := range s.cart.Items {
		line := OrderLine{ProductID: item.Product.ID, Title: item.Product.Title, Quantity: item.Quantity}
		if price, ok := item.UnitPrice(); ok {
			line.Price = domain.Float64Ptr(price)
		}
		order.Lines = append(order.Lines, line)
	}
	fields["items"] = s.cart.ItemCount()
	fields["total"] = order.Total
	s.cart = domain.Cart{}
	return order, nil
}

func (s *cartService) snapshot() domain.Cart {
	items := make([]domain.CartItem, len(s.cart.Items))
	copy(items, s.cart.Items)
	return domain.Cart{Items: items}
}
