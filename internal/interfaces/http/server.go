package http

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/MP-oliveira/jurisacompanha-backend/internal/config"
	"github.com/MP-oliveira/jurisacompanha-backend/internal/infrastructure/monitoring/logging"
	"github.com/MP-oliveira/jurisacompanha-backend/pkg/errors"
)

// Server wraps http.Server with config-driven timeouts and graceful shutdown.
type Server struct {
	srv             *http.Server
	router          http.Handler
	logger          logging.Logger
	addr            string
	shutdownTimeout time.Duration
}

// NewServer creates a Server serving router with the given config.
func NewServer(cfg config.ServerConfig, router http.Handler, logger logging.Logger) *Server {
	handler := router
	if cfg.MaxBodySize > 0 {
		handler = http.MaxBytesHandler(router, cfg.MaxBodySize)
	}

	addr := net.JoinHostPort(cfg.Host, fmt.Sprintf("%d", cfg.Port))

	return &Server{
		router:          router,
		logger:          logger,
		addr:            addr,
		shutdownTimeout: cfg.ShutdownTimeout,
		srv: &http.Server{
			Addr:         addr,
			Handler:      handler,
			ReadTimeout:  cfg.ReadTimeout,
			WriteTimeout: cfg.WriteTimeout,
			IdleTimeout:  60 * time.Second,
		},
	}
}

// Start blocks serving requests until Stop is called or the listener fails.
func (s *Server) Start() error {
	s.logger.Info("http server listening", logging.String("addr", s.addr))

	if err := s.srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return errors.Wrap(err, errors.CodeInternal, "http server failed")
	}
	return nil
}

// Stop drains in-flight requests and shuts the server down.  The configured
// shutdown timeout bounds the drain even when ctx lives longer.
func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("http server shutting down")

	timeout := s.shutdownTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	shutdownCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := s.srv.Shutdown(shutdownCtx); err != nil {
		return errors.Wrap(err, errors.CodeInternal, "http server shutdown failed")
	}

	s.logger.Info("http server stopped")
	return nil
}

// Handler returns the underlying route tree, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

//Personal.AI order the ending
