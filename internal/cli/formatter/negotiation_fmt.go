package formatter

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/bazaar/internal/domain"
	"github.com/alexanderramin/bazaar/internal/negotiation"
)

// FormatOffer renders the engine's answer to one offer.
func FormatOffer(offer float64, res *negotiation.Result) string {
	var b strings.Builder
	if res.Round > 0 {
		fmt.Fprintf(&b, "%s ", Dim(fmt.Sprintf("Round %d", res.Round)))
	}
	fmt.Fprintf(&b, "%s %s %s\n", Dim("offer"), Money(offer), OutcomeBadge(res.Status))
	b.WriteString("  " + OutcomeStyle(res.Status).Render(res.Message) + "\n")
	if res.CounterPrice != nil {
		fmt.Fprintf(&b, "  %s %s\n", Dim("counter:"), Bold(Money(*res.CounterPrice)))
	}
	if res.FinalPrice != nil {
		fmt.Fprintf(&b, "  %s %s\n", Dim("final:"), StyleGreen.Render(Money(*res.FinalPrice)))
	}
	return b.String()
}

// FormatHistory renders every round of a negotiation.
func FormatHistory(h *domain.NegotiationHistory) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s  %s %s  %s %s\n",
		Dim("product"), h.ProductID,
		Dim("list"), Money(h.OriginalPrice),
		Dim("status"), strings.ToUpper(string(h.Status)))
	if h.FinalPrice != nil {
		fmt.Fprintf(&b, "%s %s\n", Dim("final price"), StyleGreen.Render(Money(*h.FinalPrice)))
	}
	b.WriteString("\n")
	t := Table{
		Headers: []string{"ROUND", "OFFER", "FLOOR", "COUNTER"},
		Align:   []Align{AlignRight, AlignRight, AlignRight, AlignRight},
	}
	for _, r := range h.Rounds {
		counter := Dim("-")
		if r.CounterOffer != nil {
			counter = Money(*r.CounterOffer)
		}
		t.Rows = append(t.Rows, []string{
			strconv.Itoa(r.Round),
			Money(r.CustomerOffer),
			Dim(Money(r.MinAcceptable)),
			counter,
		})
	}
	b.WriteString(t.Render())
	return b.String()
}
