package service

import (
	"context"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/bazaar/internal/assistant"
)

func TestChatService_ShoppingQuery(t *testing.T) {
	env := newTestEnv(t)
	obs := &recordingObserver{}
	svc := NewChatService(assistant.New(env.store, nil, zerolog.Nop()), obs)
	ctx := context.Background()

	reply := svc.Ask(ctx, "I want to buy a coffee maker")
	assert.Equal(t, assistant.KindProducts, reply.Kind)
	require.NotEmpty(t, reply.Products)
	assert.Equal(t, "home_kitchen_barista", reply.Products[0].ID)

	text := svc.Answer(ctx, "I want to buy a coffee maker")
	assert.True(t, strings.HasPrefix(text, "🔍 I found 5 products"))

	require.Len(t, obs.events, 2)
	assert.Equal(t, "chat", obs.events[0].Name)
	assert.Equal(t, "product_results", obs.events[0].Fields["kind"])
}

func TestChatService_GeneralQueryWithoutModel(t *testing.T) {
	env := newTestEnv(t)
	svc := NewChatService(assistant.New(env.store, nil, zerolog.Nop()))

	text := svc.Answer(context.Background(), "hello")
	assert.Contains(t, text, "trouble connecting")
}
