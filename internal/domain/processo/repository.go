package processo

import (
	"context"
	"time"
)

// ListFilter defines filtering and pagination for processo queries.
type ListFilter struct {
	UserID string
	Status Status
	Search string
	Limit  int
	Offset int
}

// ListOption is a functional option for processo list queries.
type ListOption func(*ListFilter)

// WithStatus restricts results to the given lifecycle status.
func WithStatus(s Status) ListOption {
	return func(f *ListFilter) { f.Status = s }
}

// WithSearch applies a substring filter over numero, classe, and assunto.
func WithSearch(term string) ListOption {
	return func(f *ListFilter) { f.Search = term }
}

// WithPage sets pagination parameters.
func WithPage(limit, offset int) ListOption {
	return func(f *ListFilter) {
		f.Limit = limit
		f.Offset = offset
	}
}

// ApplyListOptions applies the given options and normalises bounds.
func ApplyListOptions(userID string, opts ...ListOption) ListFilter {
	f := ListFilter{
		UserID: userID,
		Limit:  20,
		Offset: 0,
	}
	for _, opt := range opts {
		opt(&f)
	}
	if f.Limit > 100 {
		f.Limit = 100
	}
	if f.Limit <= 0 {
		f.Limit = 20
	}
	if f.Offset < 0 {
		f.Offset = 0
	}
	return f
}

// Repository defines the persistence contract for the processo domain.
type Repository interface {
	// Create persists a new processo.
	Create(ctx context.Context, p *Processo) error

	// Update persists changes to an existing processo.
	Update(ctx context.Context, p *Processo) error

	// FindByID returns the processo with the given id scoped to userID, or
	// (nil, nil) when no row matches.
	FindByID(ctx context.Context, id, userID string) (*Processo, error)

	// FindByNumero returns the processo with the given CNJ number scoped to
	// userID, or (nil, nil) when no row matches.  Absence is not an error:
	// the ingestion pipeline auto-creates in that case.
	FindByNumero(ctx context.Context, numero, userID string) (*Processo, error)

	// List returns processos matching the filter plus the unpaginated total.
	List(ctx context.Context, filter ListFilter) ([]*Processo, int64, error)

	// FindWithDeadlinesBetween returns all active processos having at least
	// one of proxima_audiencia, prazo_recurso, prazo_embargos, or
	// data_distribuicao inside [from, to].  Used by the deadline scheduler.
	FindWithDeadlinesBetween(ctx context.Context, from, to time.Time) ([]*Processo, error)

	// Delete removes the processo and its alerts.
	Delete(ctx context.Context, id, userID string) error
}

//Personal.AI order the ending
