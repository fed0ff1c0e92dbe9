package domain

import (
	"sort"
	"strconv"
	"strings"

	json "github.com/goccy/go-json"
)

// FeatureKind identifies which field of a FeatureValue is populated.
type FeatureKind int

const (
	FeatureText FeatureKind = iota
	FeatureNumber
	FeatureKeywords
)

// FeatureValue is a single structured attribute extracted from a product
// title: free text, a number, or an unordered set of keywords.
type FeatureValue struct {
	Kind     FeatureKind
	Text     string
	Number   float64
	Keywords []string
}

// TextFeature builds a text-valued feature.
func TextFeature(s string) FeatureValue {
	return FeatureValue{Kind: FeatureText, Text: s}
}

// NumberFeature builds a numeric feature.
func NumberFeature(n float64) FeatureValue {
	return FeatureValue{Kind: FeatureNumber, Number: n}
}

// KeywordsFeature builds a keyword-set feature. Duplicates are dropped and the
// stored order is sorted so equal sets compare equal.
func KeywordsFeature(words ...string) FeatureValue {
	seen := make(map[string]struct{}, len(words))
	out := make([]string, 0, len(words))
	for _, w := range words {
		if _, ok := seen[w]; ok {
			continue
		}
		seen[w] = struct{}{}
		out = append(out, w)
	}
	sort.Strings(out)
	return FeatureValue{Kind: FeatureKeywords, Keywords: out}
}

// IsKeywords reports whether the value is a keyword set.
func (v FeatureValue) IsKeywords() bool {
	return v.Kind == FeatureKeywords
}

// KeywordSet returns the keywords as a set.
func (v FeatureValue) KeywordSet() map[string]struct{} {
	set := make(map[string]struct{}, len(v.Keywords))
	for _, k := range v.Keywords {
		set[k] = struct{}{}
	}
	return set
}

// String returns the value's string form, used for lexical comparison.
func (v FeatureValue) String() string {
	switch v.Kind {
	case FeatureNumber:
		return strconv.FormatFloat(v.Number, 'f', -1, 64)
	case FeatureKeywords:
		return strings.Join(v.Keywords, ", ")
	default:
		return v.Text
	}
}

func (v FeatureValue) MarshalJSON() ([]byte, error) {
	switch v.Kind {
	case FeatureNumber:
		return json.Marshal(v.Number)
	case FeatureKeywords:
		kw := v.Keywords
		if kw == nil {
			kw = []string{}
		}
		return json.Marshal(kw)
	default:
		return json.Marshal(v.Text)
	}
}

func (v *FeatureValue) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch x := raw.(type) {
	case float64:
		*v = NumberFeature(x)
	case []any:
		words := make([]string, 0, len(x))
		for _, w := range x {
			if s, ok := w.(string); ok {
				words = append(words, s)
			}
		}
		*v = KeywordsFeature(words...)
	case string:
		*v = TextFeature(x)
	case nil:
		*v = TextFeature("")
	default:
		*v = TextFeature(string(data))
	}
	return nil
}

// FeatureSet maps feature names to their values.
type FeatureSet map[string]FeatureValue

// Names returns the feature names in sorted order.
func (fs FeatureSet) Names() []string {
	names := make([]string, 0, len(fs))
	for name := range fs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Has reports whether the named feature is present.
func (fs FeatureSet) Has(name string) bool {
	_, ok := fs[name]
	return ok
}

// Product is a catalog entry. Price and Rating are nil when unknown and must
// never be read as zero.
type Product struct {
	ID       string     `json:"id"`
	Title    string     `json:"title"`
	Price    *float64   `json:"price"`
	Rating   *float64   `json:"rating"`
	Reviews  int        `json:"reviews"`
	Category string     `json:"category"`
	Brand    string     `json:"brand,omitempty"`
	Features FeatureSet `json:"features"`
	Link     string     `json:"product_link"`
	ImageURL *string    `json:"image_url"`
}

// HasPrice reports whether the product carries a known price.
func (p Product) HasPrice() bool {
	return p.Price != nil
}

// HasRating reports whether the product carries a known rating.
func (p Product) HasRating() bool {
	return p.Rating != nil
}

// ShortName is the title up to the first comma, or its first 30 characters.
func (p Product) ShortName() string {
	return ShortTitle(p.Title)
}

// ShortTitle shortens a product title for display in messages.
func ShortTitle(title string) string {
	if i := strings.Index(title, ","); i >= 0 {
		return title[:i]
	}
	r := []rune(title)
	if len(r) > 30 {
		return string(r[:30])
	}
	return title
}

// Float64Ptr returns a pointer to v.
func Float64Ptr(v float64) *float64 {
	return &v
}
