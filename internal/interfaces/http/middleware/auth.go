package middleware

import (
	"context"
	"crypto/subtle"
	"net/http"
	"strings"
	"time"

	"github.com/MP-oliveira/jurisacompanha-backend/internal/infrastructure/monitoring/logging"
	"github.com/MP-oliveira/jurisacompanha-backend/pkg/errors"
)

// contextKey is an unexported type for context keys to prevent collisions.
type contextKey int

const (
	claimsContextKey contextKey = iota
)

// Claims is the authenticated identity attached to a request.
type Claims struct {
	UserID    string    `json:"user_id"`
	Email     string    `json:"email"`
	ExpiresAt time.Time `json:"expires_at"`
}

// TokenValidator resolves a bearer token into claims.
type TokenValidator interface {
	ValidateToken(ctx context.Context, token string) (*Claims, error)
}

// AuthConfig holds configuration for the auth middleware.
type AuthConfig struct {
	// SkipPaths are paths that bypass authentication entirely.
	SkipPaths []string
}

// AuthMiddleware enforces bearer-token authentication on the API surface.
type AuthMiddleware struct {
	validator TokenValidator
	config    AuthConfig
	logger    logging.Logger
}

// NewAuthMiddleware creates a new AuthMiddleware.
func NewAuthMiddleware(validator TokenValidator, config AuthConfig, logger logging.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		validator: validator,
		config:    config,
		logger:    logger,
	}
}

// Handler rejects requests without a valid bearer token and injects the
// resulting claims into the request context.
func (m *AuthMiddleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if m.shouldSkip(r.URL.Path) {
			next.ServeHTTP(w, r)
			return
		}

		token := extractBearerToken(r)
		if token == "" {
			writeUnauthorized(w, "authentication required")
			return
		}

		claims, err := m.validator.ValidateToken(r.Context(), token)
		if err != nil {
			m.logger.Warn("token validation failed",
				logging.String("path", r.URL.Path),
				logging.Err(err))
			writeUnauthorized(w, "invalid or expired token")
			return
		}
		if !claims.ExpiresAt.IsZero() && time.Now().After(claims.ExpiresAt) {
			writeUnauthorized(w, "token expired")
			return
		}

		ctx := context.WithValue(r.Context(), claimsContextKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (m *AuthMiddleware) shouldSkip(path string) bool {
	for _, skip := range m.config.SkipPaths {
		if path == skip || strings.HasPrefix(path, skip+"/") {
			return true
		}
	}
	return false
}

// extractBearerToken extracts the Bearer token from the Authorization header.
func extractBearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	if auth == "" {
		return ""
	}
	parts := strings.SplitN(auth, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// ContextGetClaims retrieves claims from the request context.  Returns nil
// for unauthenticated requests.
func ContextGetClaims(ctx context.Context) *Claims {
	claims, ok := ctx.Value(claimsContextKey).(*Claims)
	if !ok {
		return nil
	}
	return claims
}

// ContextGetUserID extracts the user ID from the request context.
func ContextGetUserID(ctx context.Context) string {
	if claims := ContextGetClaims(ctx); claims != nil {
		return claims.UserID
	}
	return ""
}

// ContextWithClaims injects claims into ctx.  Test helper and worker-side
// impersonation point.
func ContextWithClaims(ctx context.Context, claims *Claims) context.Context {
	return context.WithValue(ctx, claimsContextKey, claims)
}

// StaticTokenValidator accepts a single pre-shared token and maps it to a
// fixed identity.  It stands in for a real identity provider, which is out
// of scope for this service.
type StaticTokenValidator struct {
	Token  string
	UserID string
	Email  string
}

// ValidateToken compares the presented token in constant time.
func (v *StaticTokenValidator) ValidateToken(ctx context.Context, token string) (*Claims, error) {
	if v.Token == "" || subtle.ConstantTimeCompare([]byte(token), []byte(v.Token)) != 1 {
		return nil, errors.New(errors.CodeUnauthorized, "unknown token")
	}
	return &Claims{UserID: v.UserID, Email: v.Email}, nil
}

// writeUnauthorized writes a 401 Unauthorized JSON response.  Intentionally
// vague to avoid leaking authentication details.
func writeUnauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("WWW-Authenticate", `Bearer realm="juris"`)
	w.WriteHeader(http.StatusUnauthorized)
	w.Write([]byte(`{"error":{"code":"COMMON_003","message":"` + message + `"}}`))
}

//Personal.AI order the ending
