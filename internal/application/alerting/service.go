// Package alerting owns alert creation, deduplication, message templates,
// and the deadline sweep scheduler.
package alerting

import (
	"context"
	"time"

	"github.com/MP-oliveira/jurisacompanha-backend/internal/domain/alerta"
	"github.com/MP-oliveira/jurisacompanha-backend/internal/infrastructure/monitoring/logging"
)

// Publisher pushes domain events onto the message bus.  A nil publisher
// disables publishing.
type Publisher interface {
	Publish(ctx context.Context, eventType, key string, payload interface{}) error
}

// EventAlertaCreated is emitted once per alert that survives deduplication.
const EventAlertaCreated = "juris.alerta.created"

// AlertaCreatedPayload is the bus payload for EventAlertaCreated.
type AlertaCreatedPayload struct {
	AlertaID       string     `json:"alerta_id"`
	ProcessoID     string     `json:"processo_id"`
	UserID         string     `json:"user_id"`
	Tipo           string     `json:"tipo"`
	Prioridade     string     `json:"prioridade"`
	DataVencimento *time.Time `json:"data_vencimento"`
}

// Service creates alerts through the canonical deduplication key
// (processo, tipo, data de vencimento).  Both email ingestion and the
// deadline scheduler go through EnsureAlert, so the at-most-one invariant
// holds uniformly across call sites.
type Service struct {
	repo      alerta.Repository
	publisher Publisher
	logger    logging.Logger
}

// NewService creates the alerting service.  publisher may be nil.
func NewService(repo alerta.Repository, publisher Publisher, logger logging.Logger) *Service {
	return &Service{
		repo:      repo,
		publisher: publisher,
		logger:    logger,
	}
}

// EnsureInput describes one alert to ensure.
type EnsureInput struct {
	Tipo           alerta.Tipo
	Titulo         string
	Mensagem       string
	Prioridade     alerta.Prioridade
	UserID         string
	ProcessoID     string
	DataVencimento *time.Time
}

// EnsureAlert inserts the alert unless one with the same key already exists,
// and reports whether a row was created.  The conditional insert is
// delegated to the repository's unique index so concurrent submissions of
// the same notification cannot double up.
func (s *Service) EnsureAlert(ctx context.Context, in EnsureInput) (bool, error) {
	a, err := alerta.NewAlerta(in.Tipo, in.Titulo, in.Mensagem, in.Prioridade, in.UserID, in.ProcessoID, in.DataVencimento)
	if err != nil {
		return false, err
	}

	created, err := s.repo.CreateIfAbsent(ctx, a)
	if err != nil {
		return false, err
	}
	if !created {
		s.logger.Debug("alert suppressed by dedup",
			logging.String("processo_id", in.ProcessoID),
			logging.String("tipo", string(in.Tipo)))
		return false, nil
	}

	s.logger.Info("alert created",
		logging.String("alerta_id", a.ID),
		logging.String("processo_id", in.ProcessoID),
		logging.String("tipo", string(in.Tipo)),
		logging.String("prioridade", string(in.Prioridade)))

	if s.publisher != nil {
		payload := AlertaCreatedPayload{
			AlertaID:       a.ID,
			ProcessoID:     a.ProcessoID,
			UserID:         a.UserID,
			Tipo:           string(a.Tipo),
			Prioridade:     string(a.Prioridade),
			DataVencimento: a.DataVencimento,
		}
		if err := s.publisher.Publish(ctx, EventAlertaCreated, a.ProcessoID, payload); err != nil {
			// Delivery to the bus is best-effort; the alert row stands.
			s.logger.Warn("failed to publish alert event", logging.Err(err), logging.String("alerta_id", a.ID))
		}
	}
	return true, nil
}

// List returns alerts for a user, newest first.
func (s *Service) List(ctx context.Context, userID string, opts ...alerta.ListOption) ([]*alerta.Alerta, int64, error) {
	return s.repo.List(ctx, alerta.ApplyListOptions(userID, opts...))
}

// Get returns one alert scoped to the user, or (nil, nil).
func (s *Service) Get(ctx context.Context, id, userID string) (*alerta.Alerta, error) {
	return s.repo.FindByID(ctx, id, userID)
}

// MarkRead flags an alert as read.
func (s *Service) MarkRead(ctx context.Context, id, userID string) error {
	return s.repo.MarkRead(ctx, id, userID)
}

// Delete removes an alert.
func (s *Service) Delete(ctx context.Context, id, userID string) error {
	return s.repo.Delete(ctx, id, userID)
}

//Personal.AI order the ending
