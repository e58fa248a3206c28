package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MP-oliveira/jurisacompanha-backend/internal/domain/alerta"
	"github.com/MP-oliveira/jurisacompanha-backend/internal/infrastructure/monitoring/logging"
)

// AlertaService is the application surface the alerta handler depends on.
type AlertaService interface {
	List(ctx context.Context, userID string, opts ...alerta.ListOption) ([]*alerta.Alerta, int64, error)
	Get(ctx context.Context, id, userID string) (*alerta.Alerta, error)
	MarkRead(ctx context.Context, id, userID string) error
	Delete(ctx context.Context, id, userID string) error
}

// AlertaHandler handles HTTP requests for deadline alerts.
type AlertaHandler struct {
	svc    AlertaService
	logger logging.Logger
}

// NewAlertaHandler creates a new AlertaHandler.
func NewAlertaHandler(svc AlertaService, logger logging.Logger) *AlertaHandler {
	return &AlertaHandler{svc: svc, logger: logger}
}

// RegisterRoutes registers alerta routes on an authenticated router group.
func (h *AlertaHandler) RegisterRoutes(r chi.Router) {
	r.Route("/alertas", func(r chi.Router) {
		r.Get("/", h.List)
		r.Get("/{alertaId}", h.Get)
		r.Post("/{alertaId}/read", h.MarkRead)
		r.Delete("/{alertaId}", h.Delete)
	})
}

// ListAlertasResponse is the paginated list payload.
type ListAlertasResponse struct {
	Alertas  []*alerta.Alerta `json:"alertas"`
	Total    int64            `json:"total"`
	Page     int              `json:"page"`
	PageSize int              `json:"page_size"`
}

// List handles GET /api/v1/alertas
//
// Supported filters: unread_only=true, processo_id=<uuid>, page, page_size.
func (h *AlertaHandler) List(w http.ResponseWriter, r *http.Request) {
	page, pageSize := parsePagination(r)

	opts := []alerta.ListOption{alerta.WithPage(pageSize, (page-1)*pageSize)}
	if r.URL.Query().Get("unread_only") == "true" {
		opts = append(opts, alerta.WithUnreadOnly())
	}
	if pid := r.URL.Query().Get("processo_id"); pid != "" {
		opts = append(opts, alerta.WithProcesso(pid))
	}

	alertas, total, err := h.svc.List(r.Context(), getUserIDFromContext(r), opts...)
	if err != nil {
		h.logger.Error("failed to list alertas", logging.Err(err))
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, ListAlertasResponse{
		Alertas:  alertas,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	})
}

// Get handles GET /api/v1/alertas/{alertaId}
func (h *AlertaHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "alertaId")

	a, err := h.svc.Get(r.Context(), id, getUserIDFromContext(r))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, a)
}

// MarkRead handles POST /api/v1/alertas/{alertaId}/read
func (h *AlertaHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "alertaId")

	if err := h.svc.MarkRead(r.Context(), id, getUserIDFromContext(r)); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "read"})
}

// Delete handles DELETE /api/v1/alertas/{alertaId}
func (h *AlertaHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "alertaId")

	if err := h.svc.Delete(r.Context(), id, getUserIDFromContext(r)); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusNoContent, nil)
}

//Personal.AI order the ending
