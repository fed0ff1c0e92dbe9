package assistant

import (
	"errors"
	"strings"

	"github.com/alexanderramin/bazaar/internal/domain"
)

const criteriaSystemPrompt = `You turn shopping requests into search criteria.
Reply with one JSON object and nothing else:
{"keywords": "<short product search phrase>", "category": "<catalog category or empty>", "max_price": <number or null>}`

// Criteria narrows a shopping search.
type Criteria struct {
	Keywords string   `json:"keywords"`
	Category string   `json:"category"`
	MaxPrice *float64 `json:"max_price"`
}

func validateCriteria(c Criteria) error {
	if c.MaxPrice != nil && *c.MaxPrice <= 0 {
		return errors.New("max_price must be positive")
	}
	if strings.TrimSpace(c.Keywords) == "" && c.Category == "" && c.MaxPrice == nil {
		return errors.New("empty criteria")
	}
	return nil
}

func (c Criteria) searchText(query string) string {
	return domain.CoalesceStr(strings.TrimSpace(c.Keywords), query)
}

// filter keeps products in the requested category and within budget.
// Unpriced products never satisfy a budget.
func (c Criteria) filter(products []domain.Product) []domain.Product {
	if c.Category == "" && c.MaxPrice == nil {
		return products
	}
	out := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if c.Category != "" && !strings.EqualFold(p.Category, c.Category) {
			continue
		}
		if c.MaxPrice != nil && (p.Price == nil || *p.Price > *c.MaxPrice) {
			continue
		}
		out = append(out, p)
	}
	return out
}
