package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultConfig_DisabledWithTaskTable(t *testing.T) {
	cfg := DefaultConfig()
	assert.False(t, cfg.Enabled)
	assert.Contains(t, cfg.Tasks, TaskChat)
	assert.Contains(t, cfg.Tasks, TaskShoppingCriteria)
	assert.True(t, cfg.Breaker.Enabled)
}

func TestTaskTimeout_Precedence(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, 15000, cfg.TaskTimeout(TaskChat))
	assert.Equal(t, 6000, cfg.TaskTimeout(TaskShoppingCriteria))
	assert.Equal(t, cfg.TimeoutMs, cfg.TaskTimeout(TaskType("unknown")))

	cfg.ChatTimeoutMs = 2500
	assert.Equal(t, 2500, cfg.TaskTimeout(TaskChat))
	assert.Equal(t, 6000, cfg.TaskTimeout(TaskShoppingCriteria))
}

func TestTaskTimeout_ZeroTaskTimeoutFallsBackToGlobal(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Tasks[TaskChat] = TaskConfig{Temperature: 0.7, MaxTokens: 500}
	assert.Equal(t, cfg.TimeoutMs, cfg.TaskTimeout(TaskChat))
}
