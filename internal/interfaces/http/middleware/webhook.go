package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/MP-oliveira/jurisacompanha-backend/internal/infrastructure/monitoring/logging"
)

// WebhookTokenMiddleware guards the inbound email webhook with a pre-shared
// token carried in the X-Webhook-Token header.  An empty configured token
// disables the check, which is the local-development default.
type WebhookTokenMiddleware struct {
	token  string
	logger logging.Logger
}

// NewWebhookTokenMiddleware creates the webhook guard.
func NewWebhookTokenMiddleware(token string, logger logging.Logger) *WebhookTokenMiddleware {
	return &WebhookTokenMiddleware{
		token:  token,
		logger: logger,
	}
}

// Handler rejects webhook calls whose token does not match.
func (m *WebhookTokenMiddleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if m.token == "" {
			next.ServeHTTP(w, r)
			return
		}

		presented := r.Header.Get("X-Webhook-Token")
		if subtle.ConstantTimeCompare([]byte(presented), []byte(m.token)) != 1 {
			m.logger.Warn("webhook call rejected: bad token",
				logging.String("remote_addr", r.RemoteAddr))
			w.Header().Set("Content-Type", "application/json; charset=utf-8")
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"error":{"code":"COMMON_003","message":"invalid webhook token"}}`))
			return
		}

		next.ServeHTTP(w, r)
	})
}

//Personal.AI order the ending
