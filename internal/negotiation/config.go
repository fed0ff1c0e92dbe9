package negotiation

import (
	"errors"
	"fmt"
)

// Thresholds are fractions of the list price for one round.
type Thresholds struct {
	Accept  float64 `koanf:"accept"`
	Counter float64 `koanf:"counter"`
}

// Config holds the pricing constants of the engine.
type Config struct {
	BaseDeliveryCost float64 `koanf:"base_delivery_cost"`
	MinProfitPercent float64 `koanf:"min_profit_percent"`
	// Markup is the assumed ratio of list price to base cost.
	Markup float64 `koanf:"markup"`
	// Rounds lists thresholds for rounds 1..n; the last row applies to every
	// later round.
	Rounds       []Thresholds `koanf:"rounds"`
	CounterBlend float64      `koanf:"counter_blend"`
	// FinalRound is the round from which a rejection becomes the stored status.
	FinalRound int `koanf:"final_round"`
	// GuardTerminal stops evaluating offers once a negotiation is accepted or
	// rejected.
	GuardTerminal bool `koanf:"guard_terminal"`
}

func DefaultConfig() Config {
	return Config{
		BaseDeliveryCost: 5.0,
		MinProfitPercent: 15.0,
		Markup:           1.3,
		Rounds: []Thresholds{
			{Accept: 0.90, Counter: 0.80},
			{Accept: 0.85, Counter: 0.75},
			{Accept: 0.82, Counter: 0.70},
		},
		CounterBlend: 0.4,
		FinalRound:   3,
	}
}

// ThresholdsFor returns the thresholds in force at round (1-based).
func (c Config) ThresholdsFor(round int) Thresholds {
	if len(c.Rounds) == 0 {
		return Thresholds{}
	}
	i := round - 1
	if i < 0 {
		i = 0
	}
	if i >= len(c.Rounds) {
		i = len(c.Rounds) - 1
	}
	return c.Rounds[i]
}

// Validate checks the constants are usable.
func (c Config) Validate() error {
	var errs []error
	if c.Markup <= 0 {
		errs = append(errs, fmt.Errorf("markup must be positive, got %v", c.Markup))
	}
	if c.BaseDeliveryCost < 0 {
		errs = append(errs, fmt.Errorf("base delivery cost must not be negative, got %v", c.BaseDeliveryCost))
	}
	if c.MinProfitPercent < 0 {
		errs = append(errs, fmt.Errorf("min profit percent must not be negative, got %v", c.MinProfitPercent))
	}
	if len(c.Rounds) == 0 {
		errs = append(errs, errors.New("at least one round of thresholds is required"))
	}
	for i, r := range c.Rounds {
		if r.Counter > r.Accept {
			errs = append(errs, fmt.Errorf("round %d: counter threshold %v above accept threshold %v", i+1, r.Counter, r.Accept))
		}
	}
	if c.CounterBlend < 0 || c.CounterBlend > 1 {
		errs = append(errs, fmt.Errorf("counter blend must be within [0,1], got %v", c.CounterBlend))
	}
	if c.FinalRound < 1 {
		errs = append(errs, fmt.Errorf("final round must be at least 1, got %d", c.FinalRound))
	}
	return errors.Join(errs...)
}
