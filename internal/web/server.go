package web

import (
	"context"
	"fmt"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/camuig/paper-broker/internal/config"
	"github.com/camuig/paper-broker/internal/instruments"
	"github.com/camuig/paper-broker/internal/logger"
	"github.com/camuig/paper-broker/internal/orders"
	"github.com/camuig/paper-broker/internal/portfolio"
)

type Server struct {
	httpServer   *http.Server
	orders       *orders.Service
	portfolio    *portfolio.Service
	instruments  *instruments.Service
	config       *config.Config
	logger       *logger.Logger
	shuttingDown atomic.Bool
}

func NewServer(
	orderSvc *orders.Service,
	portfolioSvc *portfolio.Service,
	instrumentSvc *instruments.Service,
	cfg *config.Config,
	log *logger.Logger,
) *Server {
	s := &Server{
		orders:      orderSvc,
		portfolio:   portfolioSvc,
		instruments: instrumentSvc,
		config:      cfg,
		logger:      log,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/orders", s.handleOrders)
	mux.HandleFunc("/portfolio", s.handlePortfolio)
	mux.HandleFunc("/instruments/search", s.handleInstrumentSearch)
	mux.HandleFunc("/health", s.handleHealth)

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      s.drainGuard(mux),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	return s
}

func (s *Server) Start() error {
	s.logger.Info("web server starting", "port", s.config.Server.Port)
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("web server: %w", err)
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.shuttingDown.Store(true)
	return s.httpServer.Shutdown(ctx)
}

// drainGuard rejects new requests with 503 once shutdown has begun, so
// in-flight work drains while load balancers move on.
func (s *Server) drainGuard(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.shuttingDown.Load() {
			http.Error(w, "server shutting down", http.StatusServiceUnavailable)
			return
		}
		next.ServeHTTP(w, r)
	})
}
