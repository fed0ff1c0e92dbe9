package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/bazaar/internal/cli/formatter"
	"github.com/alexanderramin/bazaar/internal/domain"
	"github.com/alexanderramin/bazaar/internal/negotiation"
)

func newNegotiateCmd(app *App) *cobra.Command {
	var (
		offers    offerList
		showFloor bool
		reset     bool
	)

	cmd := &cobra.Command{
		Use:   "negotiate ID",
		Short: "Haggle over a product's price",
		Long: "Negotiate evaluates each --offer in order as the next round for the product.\n" +
			"Without offers in a terminal it asks for offers interactively, and offers to\n" +
			"add the product to the cart once a price is agreed.",
		Example: "  bazaar negotiate computers_acme15 --offer 750 --offer 805\n" +
			"  bazaar negotiate computers_acme15 --offer 700,760,820",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()
			id := args[0]

			p, err := app.Catalog.Get(ctx, id)
			if err != nil {
				return err
			}
			if reset {
				if err := app.Negotiation.Reset(ctx, id); err != nil {
					return err
				}
			}
			fmt.Fprintf(out, "%s %s\n", formatter.Bold(p.ShortName()), formatter.Dim("list "+formatter.Price(p.Price)))
			if showFloor {
				floor, err := app.Negotiation.MinimumAcceptable(ctx, id)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "%s %s\n", formatter.Dim("floor"), formatter.Money(floor))
			}
			fmt.Fprintln(out)

			switch {
			case len(offers) > 0:
				return runScriptedOffers(cmd, app, id, offers)
			case app.interactive():
				return runInteractiveOffers(cmd, app, *p)
			default:
				return fmt.Errorf("no offers given: pass --offer or run in a terminal")
			}
		},
	}

	f := cmd.Flags()
	f.Var(&offers, "offer", "offer amount; repeat or comma-separate for several rounds")
	f.BoolVar(&showFloor, "floor", false, "also print the minimum acceptable price")
	f.BoolVar(&reset, "reset", false, "forget earlier rounds before negotiating")
	return cmd
}

// settled reports whether a result ends an offer sequence.
func settled(res *negotiation.Result) bool {
	return res.Status == negotiation.StatusAccepted || res.Status == negotiation.StatusError
}

func runScriptedOffers(cmd *cobra.Command, app *App, id string, offers []float64) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()
	for _, offer := range offers {
		res, err := app.Negotiation.Offer(ctx, id, offer)
		if err != nil {
			return err
		}
		fmt.Fprint(out, formatter.FormatOffer(offer, res))
		if settled(res) {
			break
		}
	}
	return printHistory(cmd, app, id)
}

func runInteractiveOffers(cmd *cobra.Command, app *App, p domain.Product) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()
	prompts := app.prompts()

	for {
		round := nextRound(cmd, app, p.ID)
		offer, ok, err := prompts.Offer(
			fmt.Sprintf("Your offer for %s", p.ShortName()),
			fmt.Sprintf("List price %s, round %d", formatter.Price(p.Price), round),
		)
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintln(out, formatter.Dim("Negotiation paused."))
			return nil
		}

		res, err := app.Negotiation.Offer(ctx, p.ID, offer)
		if err != nil {
			return err
		}
		fmt.Fprint(out, formatter.FormatOffer(offer, res))

		switch res.Status {
		case negotiation.StatusError:
			return nil
		case negotiation.StatusAccepted:
			return offerCart(cmd, app, p, res.FinalPrice)
		}
	}
}

func nextRound(cmd *cobra.Command, app *App, id string) int {
	h, err := app.Negotiation.History(cmd.Context(), id)
	if err != nil {
		return 1
	}
	return len(h.Rounds) + 1
}

func offerCart(cmd *cobra.Command, app *App, p domain.Product, price *float64) error {
	if app.Cart == nil || price == nil {
		return nil
	}
	yes, err := app.prompts().Confirm(fmt.Sprintf("Add %s to your cart at %s?", p.ShortName(), formatter.Money(*price)))
	if err != nil || !yes {
		return err
	}
	cart, err := app.Cart.Add(cmd.Context(), p.ID, 1, price)
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), "\n"+formatter.FormatCart(cart))
	return nil
}

func printHistory(cmd *cobra.Command, app *App, id string) error {
	h, err := app.Negotiation.History(cmd.Context(), id)
	if errors.Is(err, domain.ErrNoNegotiation) {
		return nil
	}
	if err != nil {
		return err
	}
	writeSection(cmd.OutOrStdout(), "history", formatter.FormatHistory(h))
	return nil
}

func writeSection(w io.Writer, title, body string) {
	fmt.Fprintf(w, "\n%s\n%s", formatter.Header(title), body)
}
