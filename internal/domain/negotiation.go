package domain

// NegotiationStatus is the stored state of a product's negotiation.
type NegotiationStatus string

const (
	NegotiationPending  NegotiationStatus = "pending"
	NegotiationAccepted NegotiationStatus = "accepted"
	NegotiationRejected NegotiationStatus = "rejected"
)

// IsTerminal reports whether the status ends the negotiation.
func (s NegotiationStatus) IsTerminal() bool {
	return s == NegotiationAccepted || s == NegotiationRejected
}

// RoundRecord is one customer offer and the floor in force for that round.
// CounterOffer is set only when the engine countered.
type RoundRecord struct {
	Round         int      `json:"round"`
	CustomerOffer float64  `json:"customer_offer"`
	MinAcceptable float64  `json:"min_acceptable"`
	CounterOffer  *float64 `json:"counter_offer,omitempty"`
}

// NegotiationHistory tracks every round of a negotiation for one product.
type NegotiationHistory struct {
	ProductID     string            `json:"product_id"`
	OriginalPrice float64           `json:"original_price"`
	Rounds        []RoundRecord     `json:"negotiation_rounds"`
	FinalPrice    *float64          `json:"final_price,omitempty"`
	Status        NegotiationStatus `json:"status"`
}

// NewNegotiationHistory starts a pending history at the given list price.
func NewNegotiationHistory(productID string, originalPrice float64) NegotiationHistory {
	return NegotiationHistory{
		ProductID:     productID,
		OriginalPrice: originalPrice,
		Status:        NegotiationPending,
	}
}

// Clone returns a deep copy that shares no memory with h.
func (h NegotiationHistory) Clone() NegotiationHistory {
	out := h
	out.Rounds = make([]RoundRecord, len(h.Rounds))
	for i, r := range h.Rounds {
		if r.CounterOffer != nil {
			r.CounterOffer = Float64Ptr(*r.CounterOffer)
		}
		out.Rounds[i] = r
	}
	if h.FinalPrice != nil {
		out.FinalPrice = Float64Ptr(*h.FinalPrice)
	}
	return out
}

// LastRound returns the most recent round, if any.
func (h NegotiationHistory) LastRound() (RoundRecord, bool) {
	if len(h.Rounds) == 0 {
		return RoundRecord{}, false
	}
	return h.Rounds[len(h.Rounds)-1], true
}
