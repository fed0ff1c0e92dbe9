package formatter

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/bazaar/internal/domain"
	"github.com/alexanderramin/bazaar/internal/features"
	"github.com/alexanderramin/bazaar/internal/recommend"
	"github.com/alexanderramin/bazaar/internal/repository"
)

const titleWidth = 48

// FormatProducts renders a product listing table.
func FormatProducts(products []domain.Product) string {
	if len(products) == 0 {
		return Dim("No products match.") + "\n"
	}
	t := Table{
		Headers: []string{"#", "ID", "TITLE", "PRICE", "RATING", "REVIEWS"},
		Align:   []Align{AlignRight, AlignLeft, AlignLeft, AlignRight, AlignLeft, AlignRight},
	}
	for i, p := range products {
		t.Rows = append(t.Rows, []string{
			strconv.Itoa(i + 1),
			Dim(p.ID),
			Truncate(p.Title, titleWidth),
			Price(p.Price),
			Rating(p.Rating),
			strconv.Itoa(p.Reviews),
		})
	}
	return t.Render()
}

// FormatScored renders recommendations with their similarity scores.
func FormatScored(title string, scored []recommend.ScoredProduct) string {
	var b strings.Builder
	b.WriteString(Header(title))
	b.WriteString("\n")
	if len(scored) == 0 {
		b.WriteString(Dim("Nothing to recommend.") + "\n")
		return b.String()
	}
	t := Table{
		Headers: []string{"SCORE", "ID", "TITLE", "PRICE", "RATING"},
		Align:   []Align{AlignRight},
	}
	for _, sp := range scored {
		t.Rows = append(t.Rows, []string{
			StylePurple.Render(fmt.Sprintf("%.3f", sp.Score)),
			Dim(sp.Product.ID),
			Truncate(sp.Product.Title, titleWidth),
			Price(sp.Product.Price),
			Rating(sp.Product.Rating),
		})
	}
	b.WriteString(t.Render())
	return b.String()
}

// FormatProduct renders one product with its extracted features.
func FormatProduct(p domain.Product) string {
	var b strings.Builder
	b.WriteString(Bold(p.Title) + "\n\n")
	fmt.Fprintf(&b, "%s %s\n", Dim("ID:      "), p.ID)
	fmt.Fprintf(&b, "%s %s\n", Dim("Category:"), p.Category)
	if p.Brand != "" {
		fmt.Fprintf(&b, "%s %s\n", Dim("Brand:   "), p.Brand)
	}
	fmt.Fprintf(&b, "%s %s\n", Dim("Price:   "), Price(p.Price))
	fmt.Fprintf(&b, "%s %s %s\n", Dim("Rating:  "), Rating(p.Rating), Dim(fmt.Sprintf("(%d reviews)", p.Reviews)))
	if p.Link != "" {
		fmt.Fprintf(&b, "%s %s\n", Dim("Link:    "), StyleBlue.Render(p.Link))
	}
	if len(p.Features) > 0 {
		b.WriteString("\n" + StyleHeader.Render("FEATURES") + "\n")
		grouped := features.Categorize(p.Features)
		for _, group := range features.GroupNames() {
			sub, ok := grouped[group]
			if !ok {
				continue
			}
			fmt.Fprintf(&b, "  %s\n", Bold(strings.ReplaceAll(group, "_", " ")))
			for _, name := range sub.Names() {
				fmt.Fprintf(&b, "    %s %s\n", StyleDim.Render(name+":"), sub[name].String())
			}
		}
	}
	return RenderBox("", strings.TrimRight(b.String(), "\n"))
}

// FormatCategories renders per-category product counts.
func FormatCategories(cats []repository.CategoryCount) string {
	if len(cats) == 0 {
		return Dim("The catalog is empty. Run `bazaar import` first.") + "\n"
	}
	t := Table{Headers: []string{"CATEGORY", "PRODUCTS"}, Align: []Align{AlignLeft, AlignRight}}
	for _, c := range cats {
		t.Rows = append(t.Rows, []string{c.Category, strconv.Itoa(c.Count)})
	}
	return t.Render()
}

// FormatImport summarizes a finished catalog import.
func FormatImport(imp *domain.CatalogImport, categories []string) string {
	return fmt.Sprintf("%s Imported %s products from %s\n%s %s\n",
		StyleGreen.Render("✔"),
		Bold(strconv.Itoa(imp.ProductCount)),
		imp.Source,
		Dim("Categories:"),
		strings.Join(categories, ", "),
	)
}
