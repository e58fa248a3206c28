package middleware

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/MP-oliveira/jurisacompanha-backend/internal/infrastructure/monitoring/prometheus"
)

// MetricsMiddleware records per-request metrics.  Paths are taken from the
// chi route pattern so path parameters do not explode label cardinality.
type MetricsMiddleware struct {
	metrics *prometheus.AppMetrics
}

// NewMetricsMiddleware creates a new MetricsMiddleware.
func NewMetricsMiddleware(metrics *prometheus.AppMetrics) *MetricsMiddleware {
	return &MetricsMiddleware{metrics: metrics}
}

// Handler wraps next with request metric recording.
func (m *MetricsMiddleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		wrapped := newWrappedResponseWriter(w)

		m.metrics.HTTPActiveRequests.WithLabelValues(r.Method, r.URL.Path).Inc()
		next.ServeHTTP(wrapped, r)

		path := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if pattern := rctx.RoutePattern(); pattern != "" {
				path = pattern
			}
		}

		m.metrics.HTTPActiveRequests.WithLabelValues(r.Method, r.URL.Path).Dec()
		prometheus.RecordHTTPRequest(m.metrics, r.Method, path,
			wrapped.statusCode, time.Since(start), r.ContentLength, wrapped.bytesWritten)
	})
}

//Personal.AI order the ending
