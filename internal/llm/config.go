package llm

// TaskType identifies the kind of LLM task being performed.
type TaskType string

const (
	// TaskChat answers free-form shopper questions with catalog context.
	TaskChat TaskType = "chat"
	// TaskShoppingCriteria turns a shopping request into search criteria.
	TaskShoppingCriteria TaskType = "shopping_criteria"
)

// TaskConfig holds per-task LLM parameters.
type TaskConfig struct {
	Temperature float64
	MaxTokens   int
	TimeoutMs   int // overrides global if > 0
}

// BreakerConfig tunes the circuit breaker around LLM calls.
type BreakerConfig struct {
	Enabled bool `koanf:"enabled"`
	// ConsecutiveFailures trips the breaker.
	ConsecutiveFailures uint32 `koanf:"consecutive_failures"`
	// OpenTimeoutMs is how long the breaker stays open before probing.
	OpenTimeoutMs int `koanf:"open_timeout_ms"`
}

// LLMConfig holds all configuration for the LLM subsystem.
type LLMConfig struct {
	Enabled    bool          `koanf:"enabled"`
	LogCalls   bool          `koanf:"log_calls"`
	Endpoint   string        `koanf:"endpoint"`
	Model      string        `koanf:"model"`
	TimeoutMs  int           `koanf:"timeout_ms"`
	MaxRetries int           `koanf:"max_retries"`
	Breaker    BreakerConfig `koanf:"breaker"`
	// Tasks is not loaded from config files; per-task overrides come from
	// ChatTimeoutMs.
	Tasks         map[TaskType]TaskConfig `koanf:"-"`
	ChatTimeoutMs int                     `koanf:"chat_timeout_ms"`
}

// DefaultConfig returns an LLMConfig with sensible defaults.
// LLM is disabled by default.
func DefaultConfig() LLMConfig {
	return LLMConfig{
		Enabled:    false,
		LogCalls:   false,
		Endpoint:   "http://localhost:11434",
		Model:      "llama3.2",
		TimeoutMs:  10000,
		MaxRetries: 1,
		Breaker: BreakerConfig{
			Enabled:             true,
			ConsecutiveFailures: 3,
			OpenTimeoutMs:       30000,
		},
		Tasks: map[TaskType]TaskConfig{
			TaskChat:             {Temperature: 0.7, MaxTokens: 500, TimeoutMs: 15000},
			TaskShoppingCriteria: {Temperature: 0.1, MaxTokens: 256, TimeoutMs: 6000},
		},
	}
}

// TaskTimeout returns the effective timeout for a given task type.
// ChatTimeoutMs wins for chat, then the task table, then the global timeout.
func (c LLMConfig) TaskTimeout(task TaskType) int {
	if task == TaskChat && c.ChatTimeoutMs > 0 {
		return c.ChatTimeoutMs
	}
	if tc, ok := c.Tasks[task]; ok && tc.TimeoutMs > 0 {
		return tc.TimeoutMs
	}
	return c.TimeoutMs
}
