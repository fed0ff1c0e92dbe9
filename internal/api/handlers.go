package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	json "github.com/goccy/go-json"

	"github.com/alexanderramin/bazaar/internal/catalog"
	"github.com/alexanderramin/bazaar/internal/domain"
	"github.com/alexanderramin/bazaar/internal/recommend"
	"github.com/alexanderramin/bazaar/internal/service"
)

const homeMessage = "🛒 E-Commerce API with AI features is live!"

type messageResponse struct {
	Message string `json:"message"`
}

func (s *Server) handleHome(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, messageResponse{Message: homeMessage})
}

type chatRequest struct {
	Query string `json:"query" validate:"required"`
}

type chatResponse struct {
	Response string `json:"response"`
	Type     string `json:"type"`
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := decode(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	if strings.TrimSpace(req.Query) == "" {
		s.writeError(w, r, invalid("query must not be blank"))
		return
	}
	reply := s.svc.Chat.Ask(r.Context(), req.Query)
	chatReplies.WithLabelValues(string(reply.Kind)).Inc()
	writeJSON(w, http.StatusOK, chatResponse{Response: reply.Text(), Type: string(reply.Kind)})
}

func (s *Server) handleListProducts(w http.ResponseWriter, r *http.Request) {
	q, err := listQuery(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	products, err := s.svc.Catalog.List(r.Context(), q)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, nonNil(products))
}

func listQuery(r *http.Request) (catalog.Query, error) {
	q := catalog.DefaultQuery()
	q.Category = r.URL.Query().Get("category")
	if sort := r.URL.Query().Get("sort_by"); sort != "" {
		q.Sort = catalog.Sort(sort)
		if !q.Sort.Valid() {
			return q, invalid("unknown sort_by %q", sort)
		}
	}
	var err error
	if q.MinPrice, err = queryFloat(r, "min_price"); err != nil {
		return q, err
	}
	if q.MaxPrice, err = queryFloat(r, "max_price"); err != nil {
		return q, err
	}
	if q.MinRating, err = queryFloat(r, "min_rating"); err != nil {
		return q, err
	}
	if q.Limit, err = queryInt(r, "limit", catalog.DefaultLimit); err != nil {
		return q, err
	}
	return q, nil
}

func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	cats, err := s.svc.Catalog.Categories(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, cats)
}

func (s *Server) handleGetProduct(w http.ResponseWriter, r *http.Request) {
	p, err := s.svc.Catalog.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

type negotiateRequest struct {
	ProductID    string   `json:"product_id" validate:"required"`
	OfferedPrice *float64 `json:"offered_price" validate:"required,gte=0"`
}

type negotiateResponse struct {
	Status       string   `json:"status"`
	Message      string   `json:"message"`
	CounterPrice *float64 `json:"counter_price"`
	FinalPrice   *float64 `json:"final_price"`
	Round        int      `json:"round"`
}

func (s *Server) handleNegotiate(w http.ResponseWriter, r *http.Request) {
	var req negotiateRequest
	if err := decode(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	res, err := s.svc.Negotiation.Offer(r.Context(), req.ProductID, *req.OfferedPrice)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	negotiationOutcomes.WithLabelValues(string(res.Status)).Inc()
	writeJSON(w, http.StatusOK, negotiateResponse{
		Status:       string(res.Status),
		Message:      res.Message,
		CounterPrice: res.CounterPrice,
		FinalPrice:   res.FinalPrice,
		Round:        res.Round,
	})
}

func (s *Server) handleNegotiationHistory(w http.ResponseWriter, r *http.Request) {
	h, err := s.svc.Negotiation.History(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, h)
}

func (s *Server) handleNegotiationReset(w http.ResponseWriter, r *http.Request) {
	if err := s.svc.Negotiation.Reset(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleSimilar(w http.ResponseWriter, r *http.Request) {
	s.scored(w, r, service.DefaultSimilarLimit, s.svc.Recommend.Similar)
}

func (s *Server) handleBetter(w http.ResponseWriter, r *http.Request) {
	s.scored(w, r, service.DefaultBetterLimit, s.svc.Recommend.Better)
}

type scoredFunc func(ctx context.Context, productID string, limit int) ([]recommend.ScoredProduct, error)

// scored serves a scored recommendation as a plain product list.
func (s *Server) scored(w http.ResponseWriter, r *http.Request, fallback int, find scoredFunc) {
	limit, err := queryInt(r, "limit", fallback)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	scored, err := find(r.Context(), chi.URLParam(r, "id"), limit)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	out := make([]domain.Product, 0, len(scored))
	for _, sp := range scored {
		out = append(out, sp.Product)
	}
	writeJSON(w, http.StatusOK, out)
}

type personalizedRequest struct {
	ProductIDs []string `json:"product_ids"`
	Limit      int      `json:"limit" validate:"gte=0"`
}

// UnmarshalJSON accepts either a bare array of IDs or an object.
func (p *personalizedRequest) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if strings.HasPrefix(trimmed, "[") {
		return json.Unmarshal(data, &p.ProductIDs)
	}
	type plain personalizedRequest
	return json.Unmarshal(data, (*plain)(p))
}

func (s *Server) handlePersonalized(w http.ResponseWriter, r *http.Request) {
	var req personalizedRequest
	if err := decode(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	limit := req.Limit
	if limit == 0 {
		limit = service.DefaultPersonalizedLimit
	}
	products, err := s.svc.Recommend.Personalized(r.Context(), req.ProductIDs, limit)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, nonNil(products))
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("query"))
	if query == "" {
		s.writeError(w, r, invalid("query is required"))
		return
	}
	limit, err := queryInt(r, "limit", service.DefaultSearchLimit)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	products, err := s.svc.Recommend.Search(r.Context(), query, limit)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, nonNil(products))
}

type cartResponse struct {
	Items     []domain.CartItem `json:"items"`
	Total     float64           `json:"total"`
	ItemCount int               `json:"item_count"`
}

func newCartResponse(c domain.Cart) cartResponse {
	items := c.Items
	if items == nil {
		items = []domain.CartItem{}
	}
	return cartResponse{Items: items, Total: c.Total(), ItemCount: c.ItemCount()}
}

type addToCartRequest struct {
	ProductID       string   `json:"product_id" validate:"required"`
	Quantity        int      `json:"quantity" validate:"gte=0"`
	NegotiatedPrice *float64 `json:"negotiated_price" validate:"omitempty,gte=0"`
}

type updateCartRequest struct {
	Quantity *int `json:"quantity" validate:"required"`
}

func (s *Server) handleGetCart(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, newCartResponse(s.svc.Cart.Get(r.Context())))
}

func (s *Server) handleAddToCart(w http.ResponseWriter, r *http.Request) {
	var req addToCartRequest
	if err := decode(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	cart, err := s.svc.Cart.Add(r.Context(), req.ProductID, req.Quantity, req.NegotiatedPrice)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newCartResponse(cart))
}

func (s *Server) handleUpdateCartItem(w http.ResponseWriter, r *http.Request) {
	var req updateCartRequest
	if err := decode(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	cart, err := s.svc.Cart.UpdateQuantity(r.Context(), chi.URLParam(r, "id"), *req.Quantity)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newCartResponse(cart))
}

func (s *Server) handleRemoveCartItem(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, newCartResponse(s.svc.Cart.Remove(r.Context(), chi.URLParam(r, "id"))))
}

func (s *Server) handleClearCart(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, newCartResponse(s.svc.Cart.Clear(r.Context())))
}

func (s *Server) handleCheckout(w http.ResponseWriter, r *http.Request) {
	order, err := s.svc.Cart.Checkout(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

func nonNil(products []domain.Product) []domain.Product {
	if products == nil {
		return []domain.Product{}
	}
	return products
}
