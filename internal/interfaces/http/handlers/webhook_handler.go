package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/MP-oliveira/jurisacompanha-backend/internal/application/ingestion"
	"github.com/MP-oliveira/jurisacompanha-backend/internal/infrastructure/monitoring/logging"
	"github.com/MP-oliveira/jurisacompanha-backend/pkg/errors"
)

// EmailIngestor is the application surface the webhook handler depends on.
type EmailIngestor interface {
	ProcessEmail(ctx context.Context, msg ingestion.EmailMessage, ownerID string) (*ingestion.ProcessOutcome, error)
}

// WebhookHandler receives inbound mail from the delivery gateway.
type WebhookHandler struct {
	ingestor EmailIngestor
	logger   logging.Logger
}

// NewWebhookHandler creates a new WebhookHandler.
func NewWebhookHandler(ingestor EmailIngestor, logger logging.Logger) *WebhookHandler {
	return &WebhookHandler{ingestor: ingestor, logger: logger}
}

// RegisterRoutes registers webhook routes.  These sit outside the user auth
// group; the webhook token middleware guards them instead.
func (h *WebhookHandler) RegisterRoutes(r chi.Router) {
	r.Route("/webhook", func(r chi.Router) {
		r.Post("/email", h.ReceiveEmail)
		r.Get("/test", h.Test)
	})
}

// WebhookEmailRequest is the inbound mail payload.  Gateways attach extra
// fields freely, so decoding is lenient.
type WebhookEmailRequest struct {
	From       string    `json:"from"`
	To         string    `json:"to"`
	Subject    string    `json:"subject"`
	Body       string    `json:"body"`
	ReceivedAt time.Time `json:"received_at"`
	OwnerID    string    `json:"ownerId"`
}

// ReceiveEmail handles POST /api/v1/webhook/email
//
// A message that is not a tribunal notification is acknowledged with
// processed=false so the gateway does not retry it.
func (h *WebhookHandler) ReceiveEmail(w http.ResponseWriter, r *http.Request) {
	var req WebhookEmailRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.Wrap(err, errors.CodeBadRequest, "invalid webhook payload"))
		return
	}
	if req.From == "" && req.Subject == "" && req.Body == "" {
		writeBadRequest(w, "empty webhook payload")
		return
	}

	msg := ingestion.EmailMessage{
		From:       req.From,
		To:         req.To,
		Subject:    req.Subject,
		Body:       req.Body,
		ReceivedAt: req.ReceivedAt,
	}
	if msg.ReceivedAt.IsZero() {
		msg.ReceivedAt = time.Now()
	}

	outcome, err := h.ingestor.ProcessEmail(r.Context(), msg, req.OwnerID)
	if err != nil {
		h.logger.Warn("webhook ingestion failed",
			logging.Err(err),
			logging.String("from", req.From),
			logging.String("subject", req.Subject))
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, outcome)
}

// Test handles GET /api/v1/webhook/test - a reachability probe for gateway
// configuration.
func (h *WebhookHandler) Test(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"message": "webhook endpoint reachable",
	})
}

//Personal.AI order the ending
