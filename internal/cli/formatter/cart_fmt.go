package formatter

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/bazaar/internal/domain"
	"github.com/alexanderramin/bazaar/internal/service"
)

// FormatCart renders the cart lines with the effective unit price.
func FormatCart(c domain.Cart) string {
	if len(c.Items) == 0 {
		return Dim("Your cart is empty.") + "\n"
	}
	t := Table{
		Headers: []string{"ITEM", "QTY", "UNIT", "TOTAL"},
		Align:   []Align{AlignLeft, AlignRight, AlignRight, AlignRight},
	}
	for _, item := range c.Items {
		unit := Dim("n/a")
		if price, ok := item.UnitPrice(); ok {
			unit = Money(price)
			if item.NegotiatedPrice != nil {
				unit = StyleGreen.Render(unit + "*")
			}
		}
		t.Rows = append(t.Rows, []string{
			Truncate(item.Product.Title, titleWidth),
			strconv.Itoa(item.Quantity),
			unit,
			Money(item.TotalPrice()),
		})
	}
	var b strings.Builder
	b.WriteString(t.Render())
	fmt.Fprintf(&b, "\n%s %s  %s %s\n", Dim("items"), strconv.Itoa(c.ItemCount()), Dim("total"), Bold(Money(c.Total())))
	return b.String()
}

// FormatOrder renders a completed checkout.
func FormatOrder(o *service.Order) string {
	var b strings.Builder
	b.WriteString(StyleGreen.Render("✔ Order placed") + "\n")
	for _, line := range o.Lines {
		fmt.Fprintf(&b, "  %d × %s  %s\n", line.Quantity, Truncate(line.Title, titleWidth), Price(line.Price))
	}
	fmt.Fprintf(&b, "%s %s\n", Dim("total"), Bold(Money(o.Total)))
	return b.String()
}
