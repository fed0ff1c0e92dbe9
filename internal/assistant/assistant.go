// Package assistant answers shopper messages. Shopping requests get a ranked
// product list; anything else goes to the language model with the most
// relevant products as context.
package assistant

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/alexanderramin/bazaar/internal/domain"
	"github.com/alexanderramin/bazaar/internal/llm"
	"github.com/alexanderramin/bazaar/internal/textsim"
)

// ReplyKind tells callers how to render a Reply.
type ReplyKind string

const (
	KindProducts ReplyKind = "product_results"
	KindText     ReplyKind = "text_response"
)

const (
	DefaultResultLimit = 5

	msgNoMatches = "I couldn't find any products matching your query. Could you try a different search term?"
	msgOffline   = "🤖 I'm sorry, but I'm having trouble connecting to my knowledge base right now. Please try again later."
)

var shoppingKeywords = []string{"buy", "purchase", "shop", "find", "looking for", "search", "want", "need"}

// Ranker orders a catalog by relevance to a free-text query.
type Ranker interface {
	Products() []domain.Product
	Relevance(query string, catalog []domain.Product, limit int) []domain.Product
}

// Reply is one assistant turn.
type Reply struct {
	Kind     ReplyKind        `json:"type"`
	Message  string           `json:"message"`
	Products []domain.Product `json:"products,omitempty"`
}

// Assistant routes a message to product search or to the model.
type Assistant struct {
	ranker Ranker
	client llm.LLMClient
	limit  int
	logger zerolog.Logger
}

// New builds an Assistant. client may be nil when the model is disabled.
func New(ranker Ranker, client llm.LLMClient, logger zerolog.Logger) *Assistant {
	return &Assistant{
		ranker: ranker,
		client: client,
		limit:  DefaultResultLimit,
		logger: logger.With().Str("component", "assistant").Logger(),
	}
}

// IsShoppingQuery reports whether the message contains a shopping keyword.
func IsShoppingQuery(query string) bool {
	q := strings.ToLower(query)
	for _, kw := range shoppingKeywords {
		if strings.Contains(q, kw) {
			return true
		}
	}
	return false
}

// Respond produces a structured reply for query.
func (a *Assistant) Respond(ctx context.Context, query string) Reply {
	if IsShoppingQuery(query) {
		return a.shop(ctx, query)
	}
	return Reply{Kind: KindText, Message: a.converse(ctx, query)}
}

// Text renders the reply as plain text for chat transports.
func (r Reply) Text() string {
	if r.Kind == KindProducts {
		return FormatResults(r.Message, r.Products)
	}
	return r.Message
}

// Answer renders Respond as plain text.
func (a *Assistant) Answer(ctx context.Context, query string) string {
	return a.Respond(ctx, query).Text()
}

func (a *Assistant) shop(ctx context.Context, query string) Reply {
	crit := a.criteria(ctx, query)
	catalog := a.ranker.Products()
	pool := crit.filter(catalog)
	if len(pool) == 0 {
		a.logger.Debug().Str("query", query).Msg("criteria matched nothing, ranking full catalog")
		pool = catalog
	}
	found := a.ranker.Relevance(crit.searchText(query), pool, a.limit)
	if len(found) == 0 {
		return Reply{Kind: KindText, Message: msgNoMatches}
	}
	return Reply{
		Kind:     KindProducts,
		Message:  fmt.Sprintf("I found %d products that match your query.", len(found)),
		Products: found,
	}
}

// criteria asks the model for structured search criteria and otherwise
// falls back to a budget parsed from the message.
func (a *Assistant) criteria(ctx context.Context, query string) Criteria {
	fallback := Criteria{}
	if price, ok := textsim.ExtractPrice(query); ok {
		fallback.MaxPrice = &price
	}
	if a.client == nil {
		return fallback
	}
	resp, err := a.client.Generate(ctx, llm.GenerateRequest{
		Task:         llm.TaskShoppingCriteria,
		SystemPrompt: criteriaSystemPrompt,
		UserPrompt:   query,
		JSON:         true,
	})
	if err != nil {
		a.logger.Debug().Err(err).Msg("criteria extraction unavailable")
		return fallback
	}
	crit, err := llm.ExtractJSON(resp.Text, validateCriteria)
	if err != nil {
		a.logger.Debug().Err(err).Msg("criteria output rejected")
		return fallback
	}
	if crit.MaxPrice == nil {
		crit.MaxPrice = fallback.MaxPrice
	}
	return crit
}

func (a *Assistant) converse(ctx context.Context, query string) string {
	relevant := a.ranker.Relevance(query, a.ranker.Products(), a.limit)
	prompt := fmt.Sprintf("User: %s\n\nAssistant:", query)
	if len(relevant) > 0 {
		prompt = fmt.Sprintf("Context: %s\n\nUser: %s\n\nAssistant:", ProductContext(relevant), query)
	}
	if a.client == nil {
		return msgOffline
	}
	resp, err := a.client.Generate(ctx, llm.GenerateRequest{
		Task:       llm.TaskChat,
		UserPrompt: prompt,
	})
	if err != nil {
		a.logger.Warn().Err(err).Msg("chat generation failed")
		return fmt.Sprintf("%s Error: %s", msgOffline, describe(err))
	}
	return strings.TrimSpace(resp.Text)
}

func describe(err error) string {
	switch {
	case errors.Is(err, llm.ErrTimeout):
		return "the model took too long to answer"
	case errors.Is(err, llm.ErrOllamaUnavailable), errors.Is(err, llm.ErrCircuitOpen):
		return "the model server is unreachable"
	default:
		return err.Error()
	}
}
