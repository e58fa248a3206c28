package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/MP-oliveira/jurisacompanha-backend/internal/infrastructure/monitoring/logging"
	"github.com/MP-oliveira/jurisacompanha-backend/internal/infrastructure/monitoring/prometheus"
	"github.com/MP-oliveira/jurisacompanha-backend/internal/interfaces/http/handlers"
	"github.com/MP-oliveira/jurisacompanha-backend/internal/interfaces/http/middleware"
)

// RouterConfig aggregates all handler and middleware dependencies required
// to construct the complete HTTP route tree.
type RouterConfig struct {
	// Handlers
	ProcessoHandler *handlers.ProcessoHandler
	AlertaHandler   *handlers.AlertaHandler
	ConsultaHandler *handlers.ConsultaHandler
	WebhookHandler  *handlers.WebhookHandler
	HealthHandler   *handlers.HealthHandler

	// Middleware
	AuthMiddleware         *middleware.AuthMiddleware
	WebhookTokenMiddleware *middleware.WebhookTokenMiddleware
	CORSMiddleware         *middleware.CORSMiddleware
	LoggingMiddleware      *middleware.LoggingMiddleware
	RateLimitMiddleware    *middleware.RateLimitMiddleware
	MetricsMiddleware      *middleware.MetricsMiddleware

	// Infrastructure
	Logger           logging.Logger
	MetricsCollector prometheus.MetricsCollector
}

// NewRouter constructs the complete HTTP route tree from the given
// configuration.  It wires global middleware, public health endpoints, the
// token-guarded webhook group, and the authenticated API v1 resource groups
// into a single http.Handler.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// --- Global middleware (applied to every request) ---
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)

	if cfg.CORSMiddleware != nil {
		r.Use(cfg.CORSMiddleware.Handler)
	}
	if cfg.MetricsMiddleware != nil {
		r.Use(cfg.MetricsMiddleware.Handler)
	}
	if cfg.LoggingMiddleware != nil {
		r.Use(cfg.LoggingMiddleware.Handler)
	}
	if cfg.RateLimitMiddleware != nil {
		r.Use(cfg.RateLimitMiddleware.Handler)
	}

	// --- Public health endpoints (no auth) ---
	if cfg.HealthHandler != nil {
		cfg.HealthHandler.RegisterRoutes(r)
	}

	// --- Metrics endpoint, expected to sit behind an internal firewall ---
	if cfg.MetricsCollector != nil {
		r.Handle("/metrics", cfg.MetricsCollector.Handler())
	}

	r.Route("/api/v1", func(api chi.Router) {
		// Webhook group: guarded by the shared gateway token, not user auth.
		api.Group(func(wh chi.Router) {
			if cfg.WebhookTokenMiddleware != nil {
				wh.Use(cfg.WebhookTokenMiddleware.Handler)
			}
			if cfg.WebhookHandler != nil {
				cfg.WebhookHandler.RegisterRoutes(wh)
			}
		})

		// Authenticated resource groups.
		api.Group(func(auth chi.Router) {
			if cfg.AuthMiddleware != nil {
				auth.Use(cfg.AuthMiddleware.Handler)
			}

			if cfg.ProcessoHandler != nil {
				cfg.ProcessoHandler.RegisterRoutes(auth)
			}
			if cfg.AlertaHandler != nil {
				cfg.AlertaHandler.RegisterRoutes(auth)
			}
			if cfg.ConsultaHandler != nil {
				cfg.ConsultaHandler.RegisterRoutes(auth)
			}
		})
	})

	return r
}

//Personal.AI order the ending
