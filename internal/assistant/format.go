package assistant

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/alexanderramin/bazaar/internal/domain"
	"github.com/alexanderramin/bazaar/internal/features"
)

// FormatResults renders a product list as markdown chat text.
func FormatResults(headline string, products []domain.Product) string {
	var b strings.Builder
	fmt.Fprintf(&b, "🔍 %s\n\n", headline)
	for i, p := range products {
		rating := ""
		if p.Rating != nil {
			rating = "⭐ " + formatRating(*p.Rating)
		}
		reviews := ""
		if p.Reviews != 0 {
			reviews = fmt.Sprintf("(%d reviews)", p.Reviews)
		}
		fmt.Fprintf(&b, "%d. **%s**\n", i+1, p.Title)
		fmt.Fprintf(&b, "   💲 %s %s %s\n", formatPrice(p.Price), rating, reviews)
		fmt.Fprintf(&b, "   [View on Amazon](%s)\n\n", p.Link)
	}
	return b.String()
}

// ProductContext describes products for a model prompt.
func ProductContext(products []domain.Product) string {
	var b strings.Builder
	b.WriteString("Here are some relevant products:\n\n")
	for i, p := range products {
		rating := "No rating"
		if p.Rating != nil {
			rating = formatRating(*p.Rating) + "/5"
		}
		reviews := "No reviews"
		if p.Reviews != 0 {
			reviews = fmt.Sprintf("%d reviews", p.Reviews)
		}
		fmt.Fprintf(&b, "%d. %s\n", i+1, p.Title)
		fmt.Fprintf(&b, "   - Price: %s\n", formatPrice(p.Price))
		fmt.Fprintf(&b, "   - Rating: %s (%s)\n", rating, reviews)
		fmt.Fprintf(&b, "   - Category: %s\n", p.Category)

		var parts []string
		for _, name := range p.Features.Names() {
			if name == features.FeatureCategoryKeywords {
				continue
			}
			parts = append(parts, name+": "+p.Features[name].String())
		}
		if len(parts) > 0 {
			fmt.Fprintf(&b, "   - Features: %s\n", strings.Join(parts, ", "))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func formatPrice(price *float64) string {
	if price == nil {
		return "Price not available"
	}
	return fmt.Sprintf("$%.2f", *price)
}

// formatRating keeps one decimal for whole ratings ("4.0").
func formatRating(r float64) string {
	if r == math.Trunc(r) {
		return strconv.FormatFloat(r, 'f', 1, 64)
	}
	return strconv.FormatFloat(r, 'f', -1, 64)
}
