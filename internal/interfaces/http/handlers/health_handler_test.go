package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeChecker struct {
	name string
	err  error
}

func (c *fakeChecker) Name() string                    { return c.name }
func (c *fakeChecker) Check(ctx context.Context) error { return c.err }

func TestHealthHandler_Liveness(t *testing.T) {
	h := NewHealthHandler("1.2.3")

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	h.Liveness(w, r)

	require.Equal(t, http.StatusOK, w.Code)

	var resp LivenessResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "alive", resp.Status)
	assert.Equal(t, "1.2.3", resp.Version)
}

func TestHealthHandler_ReadinessNoCheckers(t *testing.T) {
	h := NewHealthHandler("test")

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/readyz", nil)
	h.Readiness(w, r)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestHealthHandler_ReadinessAllHealthy(t *testing.T) {
	h := NewHealthHandler("test",
		&fakeChecker{name: "postgres"},
		&fakeChecker{name: "redis"},
	)

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/readyz", nil)
	h.Readiness(w, r)

	require.Equal(t, http.StatusOK, w.Code)

	var resp ReadinessResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "ready", resp.Status)
	assert.Equal(t, "healthy", resp.Components["postgres"].Status)
	assert.Equal(t, "healthy", resp.Components["redis"].Status)
}

func TestHealthHandler_ReadinessOneUnhealthy(t *testing.T) {
	h := NewHealthHandler("test",
		&fakeChecker{name: "postgres"},
		&fakeChecker{name: "kafka", err: context.DeadlineExceeded},
	)

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/readyz", nil)
	h.Readiness(w, r)

	require.Equal(t, http.StatusServiceUnavailable, w.Code)

	var resp ReadinessResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "not_ready", resp.Status)
	assert.Equal(t, "unhealthy", resp.Components["kafka"].Status)
	assert.NotEmpty(t, resp.Components["kafka"].Error)
}

func TestHealthHandler_Detailed(t *testing.T) {
	h := NewHealthHandler("test", &fakeChecker{name: "postgres", err: context.DeadlineExceeded})

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/healthz/detail", nil)
	h.Detailed(w, r)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), `"degraded"`)
}

//Personal.AI order the ending
