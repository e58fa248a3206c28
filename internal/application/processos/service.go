// Package processos provides the application-level service for case
// management.  It sits between the HTTP handlers and the processo domain.
package processos

import (
	"context"
	"time"

	domainIngestion "github.com/MP-oliveira/jurisacompanha-backend/internal/domain/ingestion"
	"github.com/MP-oliveira/jurisacompanha-backend/internal/domain/processo"
	"github.com/MP-oliveira/jurisacompanha-backend/internal/infrastructure/monitoring/logging"
	"github.com/MP-oliveira/jurisacompanha-backend/pkg/errors"
)

// CreateInput contains input for registering a processo by hand.
type CreateInput struct {
	Numero           string
	Classe           string
	Assunto          string
	Tribunal         string
	Comarca          string
	DataDistribuicao *time.Time
	ProximaAudiencia *time.Time
	Observacoes      string
	UserID           string
}

// UpdateInput contains input for a partial update.  Nil pointers leave the
// field untouched.
type UpdateInput struct {
	ID               string
	Classe           *string
	Assunto          *string
	Tribunal         *string
	Comarca          *string
	Status           *string
	DataSentenca     *time.Time
	PrazoRecurso     *time.Time
	PrazoEmbargos    *time.Time
	ProximaAudiencia *time.Time
	Observacoes      *string
	UserID           string
}

// ListInput contains input for listing processos.
type ListInput struct {
	Page     int
	PageSize int
	Status   string
	Search   string
	UserID   string
}

// ListResult is a paginated list of processos.
type ListResult struct {
	Processos  []*processo.Processo `json:"processos"`
	Total      int64                `json:"total"`
	Page       int                  `json:"page"`
	PageSize   int                  `json:"page_size"`
	TotalPages int                  `json:"total_pages"`
}

// Service implements case management on top of the processo repository.
type Service struct {
	repo   processo.Repository
	events domainIngestion.Repository
	logger logging.Logger
}

// NewService creates the processo application service.
func NewService(repo processo.Repository, events domainIngestion.Repository, logger logging.Logger) *Service {
	return &Service{
		repo:   repo,
		events: events,
		logger: logger,
	}
}

// Create registers a processo owned by input.UserID.  The numero must be
// unique within the owner's scope.
func (s *Service) Create(ctx context.Context, input *CreateInput) (*processo.Processo, error) {
	p, err := processo.NewProcesso(input.Numero, input.UserID)
	if err != nil {
		return nil, errors.Validation(err.Error())
	}

	existing, err := s.repo.FindByNumero(ctx, p.Numero, input.UserID)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeDatabaseError, "failed to check numero uniqueness")
	}
	if existing != nil {
		return nil, errors.New(errors.CodeProcessoAlreadyExists, "processo "+p.Numero+" already tracked")
	}

	if input.Classe != "" {
		p.Classe = input.Classe
	}
	if input.Assunto != "" {
		p.Assunto = input.Assunto
	}
	if input.Tribunal != "" {
		p.Tribunal = input.Tribunal
	}
	if input.Comarca != "" {
		p.Comarca = input.Comarca
	}
	p.DataDistribuicao = input.DataDistribuicao
	p.ProximaAudiencia = input.ProximaAudiencia
	p.Observacoes = input.Observacoes

	if err := s.repo.Create(ctx, p); err != nil {
		s.logger.Error("failed to create processo", logging.Err(err), logging.String("numero", p.Numero))
		return nil, errors.Wrap(err, errors.CodeDatabaseError, "failed to create processo")
	}
	return p, nil
}

// GetByID returns one processo scoped to the user.
func (s *Service) GetByID(ctx context.Context, id, userID string) (*processo.Processo, error) {
	p, err := s.repo.FindByID(ctx, id, userID)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeDatabaseError, "failed to load processo")
	}
	if p == nil {
		return nil, errors.New(errors.CodeProcessoNotFound, "processo not found")
	}
	return p, nil
}

// List returns the user's processos with pagination.
func (s *Service) List(ctx context.Context, input *ListInput) (*ListResult, error) {
	if input.Page <= 0 {
		input.Page = 1
	}
	if input.PageSize <= 0 {
		input.PageSize = 20
	}
	if input.PageSize > 100 {
		input.PageSize = 100
	}

	opts := []processo.ListOption{
		processo.WithPage(input.PageSize, (input.Page-1)*input.PageSize),
	}
	if input.Status != "" {
		opts = append(opts, processo.WithStatus(processo.Status(input.Status)))
	}
	if input.Search != "" {
		opts = append(opts, processo.WithSearch(input.Search))
	}

	items, total, err := s.repo.List(ctx, processo.ApplyListOptions(input.UserID, opts...))
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeDatabaseError, "failed to list processos")
	}

	totalPages := int(total) / input.PageSize
	if int(total)%input.PageSize > 0 {
		totalPages++
	}
	return &ListResult{
		Processos:  items,
		Total:      total,
		Page:       input.Page,
		PageSize:   input.PageSize,
		TotalPages: totalPages,
	}, nil
}

// Update applies a partial update and recomputes the statutory windows when
// the sentence date changes without explicit deadlines in the same call.
func (s *Service) Update(ctx context.Context, input *UpdateInput) (*processo.Processo, error) {
	p, err := s.GetByID(ctx, input.ID, input.UserID)
	if err != nil {
		return nil, err
	}

	if input.Classe != nil {
		p.Classe = *input.Classe
	}
	if input.Assunto != nil {
		p.Assunto = *input.Assunto
	}
	if input.Tribunal != nil {
		p.Tribunal = *input.Tribunal
	}
	if input.Comarca != nil {
		p.Comarca = *input.Comarca
	}
	if input.Status != nil {
		if err := p.SetStatus(processo.Status(*input.Status)); err != nil {
			return nil, errors.New(errors.CodeProcessoStatusInvalid, err.Error())
		}
	}
	if input.DataSentenca != nil {
		p.DataSentenca = input.DataSentenca
		if input.PrazoRecurso == nil {
			d := processo.PrazoRecursoFrom(*input.DataSentenca)
			p.PrazoRecurso = &d
		}
		if input.PrazoEmbargos == nil {
			d := processo.PrazoEmbargosFrom(*input.DataSentenca)
			p.PrazoEmbargos = &d
		}
	}
	if input.PrazoRecurso != nil {
		p.PrazoRecurso = input.PrazoRecurso
	}
	if input.PrazoEmbargos != nil {
		p.PrazoEmbargos = input.PrazoEmbargos
	}
	if input.ProximaAudiencia != nil {
		p.ProximaAudiencia = input.ProximaAudiencia
	}
	if input.Observacoes != nil {
		p.Observacoes = *input.Observacoes
	}

	p.Touch()
	if err := s.repo.Update(ctx, p); err != nil {
		s.logger.Error("failed to update processo", logging.Err(err), logging.String("processo_id", p.ID))
		return nil, errors.Wrap(err, errors.CodeDatabaseError, "failed to update processo")
	}
	return p, nil
}

// Delete removes a processo and its alerts.
func (s *Service) Delete(ctx context.Context, id, userID string) error {
	p, err := s.GetByID(ctx, id, userID)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, p.ID, userID); err != nil {
		return errors.Wrap(err, errors.CodeDatabaseError, "failed to delete processo")
	}
	return nil
}

// History returns the newest ingestion events recorded for a processo.
func (s *Service) History(ctx context.Context, id, userID string, limit int) ([]*domainIngestion.Event, error) {
	if _, err := s.GetByID(ctx, id, userID); err != nil {
		return nil, err
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	events, err := s.events.ListByProcesso(ctx, id, limit)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeDatabaseError, "failed to load ingestion events")
	}
	return events, nil
}

//Personal.AI order the ending
