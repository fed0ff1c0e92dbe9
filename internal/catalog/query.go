package catalog

import (
	"math"
	"sort"

	"github.com/alexanderramin/bazaar/internal/domain"
)

// Sort names an ordering for catalog listings.
type Sort string

const (
	SortPrice     Sort = "price"
	SortPriceDesc Sort = "price_desc"
	SortRating    Sort = "rating"
	SortReviews   Sort = "reviews"
)

// DefaultLimit caps listings when no limit is given.
const DefaultLimit = 20

// Valid reports whether s is a known ordering. Unknown orderings leave the
// catalog order untouched.
func (s Sort) Valid() bool {
	switch s {
	case SortPrice, SortPriceDesc, SortRating, SortReviews:
		return true
	}
	return false
}

// Query filters and orders a catalog listing. Nil bounds are not applied.
type Query struct {
	Category  string
	MinPrice  *float64
	MaxPrice  *float64
	MinRating *float64
	Sort      Sort
	Limit     int
}

// DefaultQuery lists the best-rated products first.
func DefaultQuery() Query {
	return Query{Sort: SortRating, Limit: DefaultLimit}
}

// Apply filters, sorts and truncates products. The input is not modified.
func (q Query) Apply(products []domain.Product) []domain.Product {
	out := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if q.matches(p) {
			out = append(out, p)
		}
	}
	SortProducts(out, q.Sort)

	limit := q.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

func (q Query) matches(p domain.Product) bool {
	if q.Category != "" && p.Category != q.Category {
		return false
	}
	if q.MinPrice != nil || q.MaxPrice != nil {
		if p.Price == nil {
			return false
		}
		if q.MinPrice != nil && *p.Price < *q.MinPrice {
			return false
		}
		if q.MaxPrice != nil && *p.Price > *q.MaxPrice {
			return false
		}
	}
	if q.MinRating != nil && (!p.HasRating() || *p.Rating < *q.MinRating) {
		return false
	}
	return true
}

// SortProducts orders products in place. Sorting by price puts unpriced
// products last; descending price and rating treat missing values as 0.
func SortProducts(products []domain.Product, by Sort) {
	var less func(a, b domain.Product) bool
	switch by {
	case SortPrice:
		less = func(a, b domain.Product) bool {
			return domain.Float64FromPtrWithDefault(math.Inf(1), a.Price) <
				domain.Float64FromPtrWithDefault(math.Inf(1), b.Price)
		}
	case SortPriceDesc:
		less = func(a, b domain.Product) bool {
			return domain.Float64FromPtrWithDefault(0, a.Price) > domain.Float64FromPtrWithDefault(0, b.Price)
		}
	case SortRating:
		less = func(a, b domain.Product) bool {
			return domain.Float64FromPtrWithDefault(0, a.Rating) > domain.Float64FromPtrWithDefault(0, b.Rating)
		}
	case SortReviews:
		less = func(a, b domain.Product) bool {
			return a.Reviews > b.Reviews
		}
	default:
		return
	}
	sort.SliceStable(products, func(i, j int) bool {
		return less(products[i], products[j])
	})
}

// Find returns the product with id.
func Find(products []domain.Product, id string) (domain.Product, bool) {
	for _, p := range products {
		if p.ID == id {
			return p, true
		}
	}
	return domain.Product{}, false
}

// Categories lists the distinct categories in sorted order.
func Categories(products []domain.Product) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, p := range products {
		if _, ok := seen[p.Category]; ok {
			continue
		}
		seen[p.Category] = struct{}{}
		out = append(out, p.Category)
	}
	sort.Strings(out)
	return out
}
