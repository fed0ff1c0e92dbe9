package negotiation

import (
	"fmt"

	"github.com/alexanderramin/bazaar/internal/domain"
)

// MessageInput carries what a formatter needs to phrase an outcome.
type MessageInput struct {
	Status Status
	Title  string
	Offer  float64
	Price  float64
	Round  int
	// CounterPrice is set for counter outcomes.
	CounterPrice float64
}

// MessageFormatter renders the human-readable reply for an outcome.
type MessageFormatter interface {
	Format(in MessageInput) string
}

// TemplateMessages rotates through three phrasings per outcome by round.
type TemplateMessages struct{}

func (TemplateMessages) Format(in MessageInput) string {
	name := domain.ShortTitle(in.Title)
	pick := func(options ...string) string {
		return options[in.Round%len(options)]
	}

	switch in.Status {
	case StatusAccepted:
		return pick(
			fmt.Sprintf("Deal! I can let you have the %s for $%.2f.", name, in.Offer),
			fmt.Sprintf("You've got yourself a deal at $%.2f for the %s.", in.Offer, name),
			fmt.Sprintf("I can accept your offer of $%.2f for the %s. It's a good deal!", in.Offer, name),
		)
	case StatusCounter:
		counter := in.CounterPrice
		if counter <= 0 {
			counter = (in.Offer + in.Price) / 2
		}
		var discount float64
		if in.Price > 0 {
			discount = (in.Price - counter) / in.Price * 100
		}
		return pick(
			fmt.Sprintf("I can't go as low as $%.2f for the %s, but I could do $%.2f which is still %.1f%% off the original price.", in.Offer, name, counter, discount),
			fmt.Sprintf("$%.2f is a bit too low for the %s. How about $%.2f? That's a fair price considering the quality.", in.Offer, name, counter),
			fmt.Sprintf("I appreciate your offer of $%.2f, but the lowest I can go for the %s is $%.2f. What do you think?", in.Offer, name, counter),
		)
	case StatusRejected:
		floor := in.Price * 0.8
		return pick(
			fmt.Sprintf("I'm sorry, but $%.2f is too low for the %s. The price is already competitive at $%.2f.", in.Offer, name, in.Price),
			fmt.Sprintf("I can't accept $%.2f for the %s. The lowest I could possibly go would be closer to $%.2f.", in.Offer, name, floor),
			fmt.Sprintf("Unfortunately, $%.2f doesn't work for the %s. We need to be closer to $%.2f to make a deal.", in.Offer, name, floor),
		)
	default:
		return msgPriceUnavailable
	}
}
