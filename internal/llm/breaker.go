package llm

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"github.com/sony/gobreaker/v2"
)

// breakerClient short-circuits Generate after repeated failures.
type breakerClient struct {
	next LLMClient
	cb   *gobreaker.CircuitBreaker[*GenerateResponse]
}

// WithBreaker wraps next in a circuit breaker. A disabled breaker returns
// next unchanged.
func WithBreaker(next LLMClient, cfg BreakerConfig, logger zerolog.Logger) LLMClient {
	if !cfg.Enabled {
		return next
	}
	failures := cfg.ConsecutiveFailures
	if failures == 0 {
		failures = 1
	}
	settings := gobreaker.Settings{
		Name:        "ollama",
		MaxRequests: 1,
		Timeout:     time.Duration(cfg.OpenTimeoutMs) * time.Millisecond,
		ReadyToTrip: func(c gobreaker.Counts) bool {
			return c.ConsecutiveFailures >= failures
		},
		// Bad model output says nothing about server health.
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, ErrInvalidOutput)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn().
				Str("breaker", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("llm breaker state change")
		},
	}
	return &breakerClient{
		next: next,
		cb:   gobreaker.NewCircuitBreaker[*GenerateResponse](settings),
	}
}

func (b *breakerClient) Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error) {
	resp, err := b.cb.Execute(func() (*GenerateResponse, error) {
		return b.next.Generate(ctx, req)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return nil, ErrCircuitOpen
	}
	return resp, err
}

func (b *breakerClient) Available(ctx context.Context) bool {
	if b.cb.State() == gobreaker.StateOpen {
		return false
	}
	return b.next.Available(ctx)
}
