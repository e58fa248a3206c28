package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MP-oliveira/jurisacompanha-backend/internal/application/consultas"
	"github.com/MP-oliveira/jurisacompanha-backend/internal/infrastructure/monitoring/logging"
)

// ConsultaService is the application surface the consulta handler depends on.
type ConsultaService interface {
	Consultar(ctx context.Context, numero string) (*consultas.Result, error)
}

// ConsultaHandler handles public case lookups against DataJud.
type ConsultaHandler struct {
	svc    ConsultaService
	logger logging.Logger
}

// NewConsultaHandler creates a new ConsultaHandler.
func NewConsultaHandler(svc ConsultaService, logger logging.Logger) *ConsultaHandler {
	return &ConsultaHandler{svc: svc, logger: logger}
}

// RegisterRoutes registers consulta routes on an authenticated router group.
func (h *ConsultaHandler) RegisterRoutes(r chi.Router) {
	r.Get("/consultas/{numero}", h.Consultar)
}

// Consultar handles GET /api/v1/consultas/{numero}
func (h *ConsultaHandler) Consultar(w http.ResponseWriter, r *http.Request) {
	numero := chi.URLParam(r, "numero")
	if numero == "" {
		writeBadRequest(w, "numero is required")
		return
	}

	result, err := h.svc.Consultar(r.Context(), numero)
	if err != nil {
		h.logger.Warn("consulta failed",
			logging.Err(err), logging.String("numero", numero))
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

//Personal.AI order the ending
