package handlers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/MP-oliveira/jurisacompanha-backend/internal/application/processos"
	domainIngestion "github.com/MP-oliveira/jurisacompanha-backend/internal/domain/ingestion"
	"github.com/MP-oliveira/jurisacompanha-backend/internal/domain/processo"
	"github.com/MP-oliveira/jurisacompanha-backend/internal/infrastructure/monitoring/logging"
)

// ProcessoService is the application surface the processo handler depends on.
type ProcessoService interface {
	Create(ctx context.Context, input *processos.CreateInput) (*processo.Processo, error)
	GetByID(ctx context.Context, id, userID string) (*processo.Processo, error)
	List(ctx context.Context, input *processos.ListInput) (*processos.ListResult, error)
	Update(ctx context.Context, input *processos.UpdateInput) (*processo.Processo, error)
	Delete(ctx context.Context, id, userID string) error
	History(ctx context.Context, id, userID string, limit int) ([]*domainIngestion.Event, error)
}

// ProcessoHandler handles HTTP requests for case management.
type ProcessoHandler struct {
	svc    ProcessoService
	logger logging.Logger
}

// NewProcessoHandler creates a new ProcessoHandler.
func NewProcessoHandler(svc ProcessoService, logger logging.Logger) *ProcessoHandler {
	return &ProcessoHandler{svc: svc, logger: logger}
}

// RegisterRoutes registers processo routes on an authenticated router group.
func (h *ProcessoHandler) RegisterRoutes(r chi.Router) {
	r.Route("/processos", func(r chi.Router) {
		r.Get("/", h.List)
		r.Post("/", h.Create)
		r.Get("/{processoId}", h.Get)
		r.Put("/{processoId}", h.Update)
		r.Delete("/{processoId}", h.Delete)
		r.Get("/{processoId}/historico", h.History)
	})
}

// CreateProcessoRequest is the request body for registering a case by hand.
type CreateProcessoRequest struct {
	Numero           string     `json:"numero"`
	Classe           string     `json:"classe"`
	Assunto          string     `json:"assunto"`
	Tribunal         string     `json:"tribunal"`
	Comarca          string     `json:"comarca"`
	DataDistribuicao *time.Time `json:"data_distribuicao"`
	ProximaAudiencia *time.Time `json:"proxima_audiencia"`
	Observacoes      string     `json:"observacoes"`
}

// UpdateProcessoRequest is the request body for a partial update.  Absent
// fields leave the stored value untouched.
type UpdateProcessoRequest struct {
	Classe           *string    `json:"classe"`
	Assunto          *string    `json:"assunto"`
	Tribunal         *string    `json:"tribunal"`
	Comarca          *string    `json:"comarca"`
	Status           *string    `json:"status"`
	DataSentenca     *time.Time `json:"data_sentenca"`
	PrazoRecurso     *time.Time `json:"prazo_recurso"`
	PrazoEmbargos    *time.Time `json:"prazo_embargos"`
	ProximaAudiencia *time.Time `json:"proxima_audiencia"`
	Observacoes      *string    `json:"observacoes"`
}

// Create handles POST /api/v1/processos
func (h *ProcessoHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateProcessoRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if req.Numero == "" {
		writeBadRequest(w, "numero is required")
		return
	}

	input := &processos.CreateInput{
		Numero:           req.Numero,
		Classe:           req.Classe,
		Assunto:          req.Assunto,
		Tribunal:         req.Tribunal,
		Comarca:          req.Comarca,
		DataDistribuicao: req.DataDistribuicao,
		ProximaAudiencia: req.ProximaAudiencia,
		Observacoes:      req.Observacoes,
		UserID:           getUserIDFromContext(r),
	}

	p, err := h.svc.Create(r.Context(), input)
	if err != nil {
		h.logger.Error("failed to create processo",
			logging.Err(err), logging.String("numero", req.Numero))
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, p)
}

// Get handles GET /api/v1/processos/{processoId}
func (h *ProcessoHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "processoId")

	p, err := h.svc.GetByID(r.Context(), id, getUserIDFromContext(r))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, p)
}

// List handles GET /api/v1/processos
func (h *ProcessoHandler) List(w http.ResponseWriter, r *http.Request) {
	page, pageSize := parsePagination(r)

	input := &processos.ListInput{
		Page:     page,
		PageSize: pageSize,
		Status:   r.URL.Query().Get("status"),
		Search:   r.URL.Query().Get("search"),
		UserID:   getUserIDFromContext(r),
	}

	result, err := h.svc.List(r.Context(), input)
	if err != nil {
		h.logger.Error("failed to list processos", logging.Err(err))
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// Update handles PUT /api/v1/processos/{processoId}
func (h *ProcessoHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "processoId")

	var req UpdateProcessoRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	input := &processos.UpdateInput{
		ID:               id,
		Classe:           req.Classe,
		Assunto:          req.Assunto,
		Tribunal:         req.Tribunal,
		Comarca:          req.Comarca,
		Status:           req.Status,
		DataSentenca:     req.DataSentenca,
		PrazoRecurso:     req.PrazoRecurso,
		PrazoEmbargos:    req.PrazoEmbargos,
		ProximaAudiencia: req.ProximaAudiencia,
		Observacoes:      req.Observacoes,
		UserID:           getUserIDFromContext(r),
	}

	p, err := h.svc.Update(r.Context(), input)
	if err != nil {
		h.logger.Error("failed to update processo",
			logging.Err(err), logging.String("processo_id", id))
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, p)
}

// Delete handles DELETE /api/v1/processos/{processoId}
func (h *ProcessoHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "processoId")

	if err := h.svc.Delete(r.Context(), id, getUserIDFromContext(r)); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusNoContent, nil)
}

// History handles GET /api/v1/processos/{processoId}/historico
func (h *ProcessoHandler) History(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "processoId")

	limit := 50
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 200 {
			limit = n
		}
	}

	events, err := h.svc.History(r.Context(), id, getUserIDFromContext(r), limit)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"eventos": events,
		"total":   len(events),
	})
}

//Personal.AI order the ending
