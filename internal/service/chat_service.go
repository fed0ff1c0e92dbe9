package service

import (
	"context"
	"time"

	"github.com/alexanderramin/bazaar/internal/assistant"
)

type chatService struct {
	assistant *assistant.Assistant
	observer  UseCaseObserver
}

func NewChatService(a *assistant.Assistant, observers ...UseCaseObserver) ChatService {
	return &chatService{assistant: a, observer: useCaseObserverOrNoop(observers)}
}

func (s *chatService) Ask(ctx context.Context, query string) assistant.Reply {
	started := time.Now().UTC()
	reply := s.assistant.Respond(ctx, query)
	observe(ctx, s.observer, "chat", started, map[string]any{
		"kind":     string(reply.Kind),
		"products": len(reply.Products),
	}, nil)
	return reply
}

func (s *chatService) Answer(ctx context.Context, query string) string {
	return s.Ask(ctx, query).Text()
}
