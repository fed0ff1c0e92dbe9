// Package negotiation implements the multi-round price negotiation state
// machine. One Engine holds the history of every negotiated product.
package negotiation

import (
	"strconv"
	"sync"

	"github.com/alexanderramin/bazaar/internal/domain"
)

// Status is the outcome of a single offer.
type Status string

const (
	StatusAccepted Status = "accepted"
	StatusCounter  Status = "counter"
	StatusRejected Status = "rejected"
	StatusError    Status = "error"
)

const msgPriceUnavailable = "Product price not available for negotiation."

// Result is the engine's answer to one offer.
type Result struct {
	Status       Status   `json:"status"`
	Message      string   `json:"message"`
	CounterPrice *float64 `json:"counter_price,omitempty"`
	FinalPrice   *float64 `json:"final_price,omitempty"`
	Round        int      `json:"round,omitempty"`
}

// Engine evaluates offers against round-aware thresholds and a minimum price
// floor. It is safe for concurrent use.
type Engine struct {
	cfg      Config
	messages MessageFormatter

	mu        sync.Mutex
	histories map[string]domain.NegotiationHistory
}

// NewEngine builds an engine. A nil formatter uses TemplateMessages.
func NewEngine(cfg Config, messages MessageFormatter) *Engine {
	if messages == nil {
		messages = TemplateMessages{}
	}
	return &Engine{
		cfg:       cfg,
		messages:  messages,
		histories: make(map[string]domain.NegotiationHistory),
	}
}

// Config returns the engine's pricing constants.
func (e *Engine) Config() Config {
	return e.cfg
}

// MinimumAcceptablePrice is the floor below which an offer is never
// countered: estimated base cost plus delivery, plus the minimum margin.
func (e *Engine) MinimumAcceptablePrice(p domain.Product) (float64, error) {
	if !p.HasPrice() {
		return 0, domain.ErrPriceUnavailable
	}
	base := *p.Price / e.cfg.Markup
	total := base + e.cfg.BaseDeliveryCost
	profit := total * (e.cfg.MinProfitPercent / 100)
	return round2(total + profit), nil
}

// CurrentRound is the round the next offer for productID will be evaluated in.
func (e *Engine) CurrentRound(productID string) int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.currentRoundLocked(productID)
}

func (e *Engine) currentRoundLocked(productID string) int {
	h, ok := e.histories[productID]
	if !ok {
		return 1
	}
	return len(h.Rounds) + 1
}

// EvaluateOffer records offer as the next round for p and decides it.
func (e *Engine) EvaluateOffer(p domain.Product, offer float64) Result {
	if !p.HasPrice() {
		return Result{Status: StatusError, Message: msgPriceUnavailable}
	}
	price := *p.Price

	e.mu.Lock()
	defer e.mu.Unlock()

	h, ok := e.histories[p.ID]
	if !ok {
		h = domain.NewNegotiationHistory(p.ID, price)
	} else {
		h = h.Clone()
	}

	if e.cfg.GuardTerminal && h.Status.IsTerminal() {
		return e.terminalResult(p, h)
	}

	round := e.currentRoundLocked(p.ID)
	minAcceptable, _ := e.MinimumAcceptablePrice(p)
	h.Rounds = append(h.Rounds, domain.RoundRecord{
		Round:         round,
		CustomerOffer: offer,
		MinAcceptable: minAcceptable,
	})

	th := e.cfg.ThresholdsFor(round)
	acceptPrice := price * th.Accept
	counterFloor := price * th.Counter

	res := Result{Round: round}
	switch {
	case offer >= acceptPrice:
		h.Status = domain.NegotiationAccepted
		h.FinalPrice = domain.Float64Ptr(offer)
		res.Status = StatusAccepted
		res.FinalPrice = domain.Float64Ptr(offer)
	case offer >= counterFloor && offer >= minAcceptable:
		counter := round2(offer + (price-offer)*e.cfg.CounterBlend)
		h.Rounds[len(h.Rounds)-1].CounterOffer = domain.Float64Ptr(counter)
		res.Status = StatusCounter
		res.CounterPrice = domain.Float64Ptr(counter)
	default:
		if round >= e.cfg.FinalRound {
			h.Status = domain.NegotiationRejected
		}
		res.Status = StatusRejected
	}

	in := MessageInput{Status: res.Status, Title: p.Title, Offer: offer, Price: price, Round: round}
	if res.CounterPrice != nil {
		in.CounterPrice = *res.CounterPrice
	}
	res.Message = e.messages.Format(in)

	e.histories[p.ID] = h
	return res
}

// terminalResult restates a finished negotiation without recording a round.
func (e *Engine) terminalResult(p domain.Product, h domain.NegotiationHistory) Result {
	res := Result{Round: len(h.Rounds)}
	in := MessageInput{Title: p.Title, Price: h.OriginalPrice, Round: res.Round}
	if h.Status == domain.NegotiationAccepted && h.FinalPrice != nil {
		res.Status = StatusAccepted
		res.FinalPrice = domain.Float64Ptr(*h.FinalPrice)
		in.Offer = *h.FinalPrice
	} else {
		res.Status = StatusRejected
		if last, ok := h.LastRound(); ok {
			in.Offer = last.CustomerOffer
		}
	}
	in.Status = res.Status
	res.Message = e.messages.Format(in)
	return res
}

// History returns a copy of the negotiation history for productID.
func (e *Engine) History(productID string) (domain.NegotiationHistory, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	h, ok := e.histories[productID]
	if !ok {
		return domain.NegotiationHistory{}, false
	}
	return h.Clone(), true
}

// Reset forgets the negotiation for productID.
func (e *Engine) Reset(productID string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	delete(e.histories, productID)
}

// round2 rounds the exact binary value to cents. Scaling by 100 first can
// carry a value like 801.894999... over the half-cent mark.
func round2(v float64) float64 {
	r, _ := strconv.ParseFloat(strconv.FormatFloat(v, 'f', 2, 64), 64)
	return r
}
