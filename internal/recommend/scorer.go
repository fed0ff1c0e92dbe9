package recommend

import (
	"github.com/alexanderramin/bazaar/internal/domain"
	"github.com/alexanderramin/bazaar/internal/features"
	"github.com/alexanderramin/bazaar/internal/textsim"
)

// SimilarityFunc returns a lexical similarity in [0, 1] for two strings.
type SimilarityFunc func(a, b string) float64

// Config holds the blend factors of the scorer and engine.
type Config struct {
	TitleWeight        float64
	FeatureWeight      float64
	BetterPoolSize     int
	ReviewMultiplier   float64
	QueryTitleWeight   float64
	QueryFeatureWeight float64

	// TitleSimilarity compares titles; nil uses textsim.Ratio.
	TitleSimilarity SimilarityFunc
	// FeatureSimilarity compares raw feature values; nil uses textsim.MatchRatio.
	FeatureSimilarity SimilarityFunc
}

func DefaultConfig() Config {
	return Config{
		TitleWeight:        0.3,
		FeatureWeight:      0.7,
		BetterPoolSize:     10,
		ReviewMultiplier:   1.5,
		QueryTitleWeight:   0.7,
		QueryFeatureWeight: 0.3,
	}
}

func (c Config) withDefaults() Config {
	if c.TitleSimilarity == nil {
		c.TitleSimilarity = textsim.Ratio
	}
	if c.FeatureSimilarity == nil {
		c.FeatureSimilarity = textsim.MatchRatio
	}
	return c
}

// ScoredProduct pairs a product with its similarity to a reference product.
type ScoredProduct struct {
	Product domain.Product `json:"product"`
	Score   float64        `json:"similarity_score"`
}

// Scorer blends title similarity with weighted feature similarity.
type Scorer struct {
	weights features.Weights
	cfg     Config
}

func NewScorer(weights features.Weights, cfg Config) *Scorer {
	return &Scorer{weights: weights, cfg: cfg.withDefaults()}
}

// Score returns the similarity of a and b. Products in different categories
// always score 0. The result is a non-negative ranking key, not a probability.
func (s *Scorer) Score(a, b domain.Product) float64 {
	if a.Category != b.Category {
		return 0
	}

	title := s.cfg.TitleSimilarity(a.Title, b.Title) * s.cfg.TitleWeight

	var acc float64
	count := 0
	for name, va := range a.Features {
		vb, ok := b.Features[name]
		if !ok {
			continue
		}
		weight, ok := s.weights.Weight(name)
		if !ok {
			continue
		}
		sim, ok := s.featureSimilarity(va, vb)
		if !ok {
			continue
		}
		acc += sim * weight
		count++
	}

	var feature float64
	if count > 0 {
		feature = acc / float64(count) * s.cfg.FeatureWeight
	}
	return title + feature
}

// featureSimilarity compares two values of the same feature. The bool is false
// when either side is empty and the feature must not be counted.
func (s *Scorer) featureSimilarity(a, b domain.FeatureValue) (float64, bool) {
	if a.IsKeywords() && b.IsKeywords() {
		return jaccard(a.KeywordSet(), b.KeywordSet())
	}
	sa, sb := a.String(), b.String()
	if sa == "" || sb == "" {
		return 0, false
	}
	return s.cfg.FeatureSimilarity(sa, sb), true
}

func jaccard(a, b map[string]struct{}) (float64, bool) {
	if len(a) == 0 || len(b) == 0 {
		return 0, false
	}
	inter := 0
	for k := range a {
		if _, ok := b[k]; ok {
			inter++
		}
	}
	union := len(a) + len(b) - inter
	return float64(inter) / float64(union), true
}
