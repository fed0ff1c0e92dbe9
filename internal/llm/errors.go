package llm

import "errors"

// Failure classes for assistant calls. The chat layer maps each one to a
// canned reply; only ErrInvalidOutput leaves the circuit breaker alone.
var (
	ErrOllamaUnavailable = errors.New("ollama server unavailable")
	ErrTimeout           = errors.New("llm request timed out")
	ErrInvalidOutput     = errors.New("invalid llm output format")
	ErrRetryExhausted    = errors.New("llm retry attempts exhausted")
	ErrCircuitOpen       = errors.New("llm circuit open")
)
