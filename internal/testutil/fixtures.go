package testutil

import (
	"fmt"
	"sync/atomic"

	"github.com/alexanderramin/bazaar/internal/domain"
	"github.com/alexanderramin/bazaar/internal/features"
)

var productCounter atomic.Int64

// ProductOption customizes a fixture product.
type ProductOption func(*domain.Product)

func WithID(id string) ProductOption {
	return func(p *domain.Product) {
		p.ID = id
	}
}

func WithPrice(v float64) ProductOption {
	return func(p *domain.Product) {
		p.Price = &v
	}
}

func WithoutPrice() ProductOption {
	return func(p *domain.Product) {
		p.Price = nil
	}
}

func WithRating(v float64) ProductOption {
	return func(p *domain.Product) {
		p.Rating = &v
	}
}

func WithReviews(n int) ProductOption {
	return func(p *domain.Product) {
		p.Reviews = n
	}
}

func WithCategory(c string) ProductOption {
	return func(p *domain.Product) {
		p.Category = c
	}
}

func WithLink(link string) ProductOption {
	return func(p *domain.Product) {
		p.Link = link
	}
}

// NewTestProduct builds a priced computers product with features extracted
// from title.
func NewTestProduct(title string, opts ...ProductOption) domain.Product {
	fs := features.NewExtractor().Extract(title)
	price := 100.0
	p := domain.Product{
		ID:       fmt.Sprintf("test_%04d", productCounter.Add(1)),
		Title:    title,
		Price:    &price,
		Category: "computers",
		Brand:    features.Brand(fs),
		Features: fs,
	}
	for _, opt := range opts {
		opt(&p)
	}
	return p
}

// SampleCatalog is a small mixed catalog with stable IDs.
func SampleCatalog() []domain.Product {
	return []domain.Product{
		NewTestProduct("Acme Laptop 15.6 inch, 16GB RAM, 512GB SSD",
			WithID("computers_acme15"), WithPrice(899.99), WithRating(4.5), WithReviews(1204)),
		NewTestProduct("Acme Laptop 14 inch, 8GB RAM, 256GB SSD",
			WithID("computers_acme14"), WithPrice(649), WithRating(4.1), WithReviews(310)),
		NewTestProduct("Zenith Desktop Tower, 32GB RAM, 1TB SSD",
			WithID("computers_zenith"), WithPrice(1299), WithRating(4.7), WithReviews(88)),
		NewTestProduct("Sonic Wireless Earbuds, Bluetooth 5.3, Noise Cancelling",
			WithID("electronics_sonic"), WithCategory("electronics"), WithPrice(79.5), WithRating(4.2), WithReviews(5400)),
		NewTestProduct("Sonic Over-Ear Headphones, Bluetooth 5.0",
			WithID("electronics_sonic_ear"), WithCategory("electronics"), WithoutPrice(), WithReviews(12)),
		NewTestProduct("Barista Coffee Maker with Timer",
			WithID("home_kitchen_barista"), WithCategory("home_kitchen"), WithPrice(59)),
	}
}
