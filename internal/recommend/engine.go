// Package recommend ranks catalog products by similarity: lookalikes, better
// alternatives, personalized picks and free-text search.
package recommend

import (
	"sort"
	"strconv"
	"strings"
	"unicode"

	"github.com/alexanderramin/bazaar/internal/domain"
	"github.com/alexanderramin/bazaar/internal/features"
	"github.com/alexanderramin/bazaar/internal/textsim"
)

// unratedFloor ranks unrated products below every rated one.
const unratedFloor = -1.0

// Engine is read-only after construction and safe for concurrent use.
type Engine struct {
	products  []domain.Product
	scorer    *Scorer
	extractor features.Extractor
	cfg       Config
}

func NewEngine(products []domain.Product, weights features.Weights, extractor features.Extractor, cfg Config) *Engine {
	cfg = cfg.withDefaults()
	if extractor == nil {
		extractor = features.NewExtractor()
	}
	catalog := make([]domain.Product, len(products))
	copy(catalog, products)
	return &Engine{
		products:  catalog,
		scorer:    NewScorer(weights, cfg),
		extractor: extractor,
		cfg:       cfg,
	}
}

// Products returns the engine's catalog in its original order.
func (e *Engine) Products() []domain.Product {
	out := make([]domain.Product, len(e.products))
	copy(out, e.products)
	return out
}

// FindSimilar returns up to limit products with a positive score against p,
// best first. Equal scores keep catalog order.
func (e *Engine) FindSimilar(p domain.Product, limit int) []ScoredProduct {
	if limit <= 0 {
		return []ScoredProduct{}
	}
	scored := make([]ScoredProduct, 0)
	for _, other := range e.products {
		if other.ID == p.ID {
			continue
		}
		if s := e.scorer.Score(p, other); s > 0 {
			scored = append(scored, ScoredProduct{Product: other, Score: s})
		}
	}
	sortScored(scored)
	return truncate(scored, limit)
}

// FindBetterAlternatives keeps the similar products that beat p on rating,
// review volume, RAM or storage.
func (e *Engine) FindBetterAlternatives(p domain.Product, limit int) []ScoredProduct {
	if limit <= 0 {
		return []ScoredProduct{}
	}
	pool := e.FindSimilar(p, e.cfg.BetterPoolSize)
	better := make([]ScoredProduct, 0, len(pool))
	for _, c := range pool {
		if e.isBetter(c.Product, p) {
			better = append(better, c)
		}
	}
	sortScored(better)
	return truncate(better, limit)
}

func (e *Engine) isBetter(other, ref domain.Product) bool {
	switch {
	case other.HasRating() && (!ref.HasRating() || *other.Rating > *ref.Rating):
		return true
	case float64(other.Reviews) > float64(ref.Reviews)*e.cfg.ReviewMultiplier:
		return true
	case greaterMagnitude(other, ref, features.FeatureRAM):
		return true
	case greaterMagnitude(other, ref, features.FeatureStorage):
		return true
	}
	return false
}

// greaterMagnitude compares the digits of a feature on both products. A
// missing feature or a value without digits is inconclusive.
func greaterMagnitude(other, ref domain.Product, name string) bool {
	a, ok := ref.Features[name]
	if !ok {
		return false
	}
	b, ok := other.Features[name]
	if !ok {
		return false
	}
	na, err := digitsOf(a.String())
	if err != nil {
		return false
	}
	nb, err := digitsOf(b.String())
	if err != nil {
		return false
	}
	return nb > na
}

func digitsOf(s string) (int64, error) {
	var b strings.Builder
	for _, r := range s {
		if unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return strconv.ParseInt(b.String(), 10, 64)
}

// Personalized recommends products for a viewing history. With no history the
// best-rated products are returned, unrated ones last.
func (e *Engine) Personalized(viewed []domain.Product, limit int) []domain.Product {
	if limit <= 0 {
		return []domain.Product{}
	}
	if len(viewed) == 0 {
		return e.topRated(limit)
	}

	seen := make(map[string]struct{}, len(viewed))
	for _, v := range viewed {
		seen[v.ID] = struct{}{}
	}

	scored := make([]ScoredProduct, 0, len(e.products))
	for _, p := range e.products {
		if _, ok := seen[p.ID]; ok {
			continue
		}
		var total float64
		for _, v := range viewed {
			total += e.scorer.Score(p, v)
		}
		scored = append(scored, ScoredProduct{Product: p, Score: total})
	}
	sortScored(scored)
	return productsOf(truncate(scored, limit))
}

func (e *Engine) topRated(limit int) []domain.Product {
	ranked := make([]ScoredProduct, len(e.products))
	for i, p := range e.products {
		ranked[i] = ScoredProduct{Product: p, Score: domain.Float64FromPtrWithDefault(unratedFloor, p.Rating)}
	}
	sortScored(ranked)
	return productsOf(truncate(ranked, limit))
}

// Relevance ranks catalog against a free-text query by title similarity and by
// how many of the query's features each product also has.
func (e *Engine) Relevance(query string, catalog []domain.Product, limit int) []domain.Product {
	if limit <= 0 {
		return []domain.Product{}
	}
	clean := textsim.Clean(query)
	queryFeatures := e.extractor.Extract(query)
	denom := len(queryFeatures)
	if denom < 1 {
		denom = 1
	}

	scored := make([]ScoredProduct, 0, len(catalog))
	for _, p := range catalog {
		matched := 0
		for name := range queryFeatures {
			if p.Features.Has(name) {
				matched++
			}
		}
		s := e.cfg.QueryTitleWeight*e.cfg.TitleSimilarity(clean, p.Title) +
			e.cfg.QueryFeatureWeight*float64(matched)/float64(denom)
		scored = append(scored, ScoredProduct{Product: p, Score: s})
	}
	sortScored(scored)
	return productsOf(truncate(scored, limit))
}

// Search applies Relevance to the engine's own catalog.
func (e *Engine) Search(query string, limit int) []domain.Product {
	return e.Relevance(query, e.products, limit)
}

func sortScored(s []ScoredProduct) {
	sort.SliceStable(s, func(i, j int) bool {
		return s[i].Score > s[j].Score
	})
}

func truncate(s []ScoredProduct, limit int) []ScoredProduct {
	if len(s) > limit {
		return s[:limit]
	}
	return s
}

func productsOf(s []ScoredProduct) []domain.Product {
	out := make([]domain.Product, len(s))
	for i, sp := range s {
		out[i] = sp.Product
	}
	return out
}
