package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"

	"github.com/koiexpress/shipping-gateway/internal/clients"
	"github.com/koiexpress/shipping-gateway/internal/config"
	"github.com/koiexpress/shipping-gateway/internal/service"
	"github.com/koiexpress/shipping-gateway/internal/session"
	"github.com/koiexpress/shipping-gateway/pkg/logger"
	"github.com/koiexpress/shipping-gateway/pkg/middleware"
)

type Server struct {
	config      *config.Config
	logger      logger.Logger
	router      *mux.Router
	httpServer  *http.Server
	validate    *validator.Validate
	sessions    *session.Store
	rateLimiter *middleware.RateLimiterMiddleware

	authService     *service.AuthService
	orderService    *service.OrderService
	timelineService *service.TimelineService
	walletService   *service.WalletService
	pricingService  *service.PricingService
}

// NewServer creates a new API server with the given configuration and logger.
func NewServer(cfg *config.Config, logger logger.Logger) *Server {
	r := mux.NewRouter()

	backend := clients.NewBackendClient(cfg.Backend.BaseURL, cfg.Backend.Timeout, logger)
	sessions := session.NewStore()

	rateLimiter := middleware.NewRateLimiterMiddleware(&middleware.RateLimiterConfig{
		GlobalMaxTokens:   cfg.Limits.GlobalMaxTokens,
		GlobalRefillRate:  cfg.Limits.GlobalRefillRate,
		IPMaxTokens:       cfg.Limits.IPMaxTokens,
		IPRefillRate:      cfg.Limits.IPRefillRate,
		TrustForwardedFor: cfg.Limits.TrustForwardedFor,
	}, logger)

	server := &Server{
		router: r,
		httpServer: &http.Server{
			Addr:         fmt.Sprintf(":%d", cfg.Port),
			Handler:      r,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		logger:      logger,
		config:      cfg,
		validate:    validator.New(),
		sessions:    sessions,
		rateLimiter: rateLimiter,

		authService:     service.NewAuthService(backend, sessions, logger),
		orderService:    service.NewOrderService(backend, logger, cfg.Page.OrdersPerPage),
		timelineService: service.NewTimelineService(backend, logger),
		walletService:   service.NewWalletService(backend, logger, cfg.Page.TransactionsPerPage),
		pricingService:  service.NewPricingService(backend, logger),
	}

	server.setupRoutes()

	return server
}

// Start starts the HTTP server
func (s *Server) Start() error {
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.rateLimiter.Stop()

	return s.httpServer.Shutdown(ctx)
}

// setupRoutes configures all the routes for our API
func (s *Server) setupRoutes() {
	// Add middleware for all routes
	s.router.Use(s.requestIDMiddleware)
	s.router.Use(s.loggingMiddleware)
	s.router.Use(s.rateLimiter.Middleware)

	// API v1 routes
	api := s.router.PathPrefix("/api/v1").Subrouter()

	// Public endpoints
	api.HandleFunc("/health", s.healthCheckHandler).Methods(http.MethodGet)
	api.HandleFunc("/auth/login", s.loginHandler).Methods(http.MethodPost)
	api.HandleFunc("/pricing", s.pricingHandler).Methods(http.MethodGet)

	// Session-scoped endpoints
	authed := api.NewRoute().Subrouter()
	authed.Use(s.sessionMiddleware)

	authed.HandleFunc("/auth/logout", s.logoutHandler).Methods(http.MethodPost)

	authed.HandleFunc("/orders", s.orderHistoryHandler).Methods(http.MethodGet)
	authed.HandleFunc("/orders/{id}", s.orderDetailHandler).Methods(http.MethodGet)
	authed.HandleFunc("/orders/{id}/feedback", s.submitFeedbackHandler).Methods(http.MethodPost)

	authed.HandleFunc("/timelines", s.listTimelinesHandler).Methods(http.MethodGet)
	authed.HandleFunc("/timelines/{id}", s.timelineManifestHandler).Methods(http.MethodGet)
	authed.HandleFunc("/timelines/{id}/advance", s.advanceTimelineHandler).Methods(http.MethodPost)
	authed.HandleFunc("/timelines/orders/{orderId}/complete", s.completeOrderHandler).Methods(http.MethodPost)

	authed.HandleFunc("/wallet", s.walletHandler).Methods(http.MethodGet)
	authed.HandleFunc("/wallet", s.createWalletHandler).Methods(http.MethodPost)
	authed.HandleFunc("/wallet/transactions", s.transactionsHandler).Methods(http.MethodGet)
	authed.HandleFunc("/wallet/recharge", s.rechargeHandler).Methods(http.MethodPost)
	authed.HandleFunc("/wallet/payment-return", s.paymentReturnHandler).Methods(http.MethodGet)
}
