// Package api exposes the shop over HTTP.
package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/alexanderramin/bazaar/internal/config"
	"github.com/alexanderramin/bazaar/internal/service"
)

// Services are the use cases the API serves.
type Services struct {
	Catalog     service.CatalogService
	Negotiation service.NegotiationService
	Recommend   service.RecommendationService
	Cart        service.CartService
	Chat        service.ChatService
}

type Server struct {
	cfg    config.ServerConfig
	svc    Services
	logger zerolog.Logger
	router chi.Router
}

func NewServer(cfg config.ServerConfig, svc Services, logger zerolog.Logger) *Server {
	s := &Server{
		cfg:    cfg,
		svc:    svc,
		logger: logger.With().Str("component", "api").Logger(),
	}
	s.router = s.routes()
	return s
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(s.observe)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   s.cfg.CORSOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Get("/", s.handleHome)
	r.Handle("/metrics", promhttp.Handler())

	r.Group(func(r chi.Router) {
		if s.cfg.ChatRateLimit > 0 {
			r.Use(httprate.LimitByIP(s.cfg.ChatRateLimit, time.Minute))
		}
		r.Post("/chat", s.handleChat)
	})

	r.Get("/products", s.handleListProducts)
	r.Get("/categories", s.handleCategories)
	r.Get("/product/{id}", s.handleGetProduct)

	r.Post("/negotiate", s.handleNegotiate)
	r.Get("/negotiate/{id}", s.handleNegotiationHistory)
	r.Delete("/negotiate/{id}", s.handleNegotiationReset)

	r.Route("/recommendations", func(r chi.Router) {
		r.Get("/similar/{id}", s.handleSimilar)
		r.Get("/better/{id}", s.handleBetter)
		r.Post("/personalized", s.handlePersonalized)
	})
	r.Get("/search", s.handleSearch)

	r.Route("/cart", func(r chi.Router) {
		r.Get("/", s.handleGetCart)
		r.Post("/", s.handleAddToCart)
		r.Delete("/", s.handleClearCart)
		r.Post("/checkout", s.handleCheckout)
		r.Put("/{id}", s.handleUpdateCartItem)
		r.Delete("/{id}", s.handleRemoveCartItem)
	})
	return r
}

// observe logs each request and records its metrics under the route pattern.
func (s *Server) observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rc := chi.RouteContext(r.Context()); rc != nil && rc.RoutePattern() != "" {
			route = rc.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		elapsed := time.Since(start)
		httpRequestsTotal.WithLabelValues(route, r.Method, strconv.Itoa(status)).Inc()
		httpRequestDuration.WithLabelValues(route).Observe(elapsed.Seconds())

		s.logger.Debug().
			Str("request_id", middleware.GetReqID(r.Context())).
			Str("method", r.Method).
			Str("route", route).
			Int("status", status).
			Dur("duration", elapsed).
			Msg("http request")
	})
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.cfg.Addr(),
		Handler:      s.router,
		ReadTimeout:  time.Duration(s.cfg.ReadTimeoutMs) * time.Millisecond,
		WriteTimeout: time.Duration(s.cfg.WriteTimeoutMs) * time.Millisecond,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info().Str("addr", srv.Addr).Msg("listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.logger.Info().Msg("shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}
