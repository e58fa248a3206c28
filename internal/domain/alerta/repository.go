package alerta

import (
	"context"
	"time"
)

// ListFilter defines filtering and pagination for alerta queries.
type ListFilter struct {
	UserID     string
	ProcessoID string
	UnreadOnly bool
	Limit      int
	Offset     int
}

// ListOption is a functional option for alerta list queries.
type ListOption func(*ListFilter)

// WithProcesso restricts results to a single processo.
func WithProcesso(processoID string) ListOption {
	return func(f *ListFilter) { f.ProcessoID = processoID }
}

// WithUnreadOnly restricts results to unread alerts.
func WithUnreadOnly() ListOption {
	return func(f *ListFilter) { f.UnreadOnly = true }
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

// Repository defines the persistence contract for the alerta domain.
type Repository interface {
	// CreateIfAbsent inserts a and reports whether a row was actually
	// written.  When an alert with the same (processo_id, tipo,
	// data_vencimento) already exists the insert is a no-op and the method
	// returns (false, nil).  This is the canonical dedup path: the unique
	// index makes the check-and-insert atomic under concurrent ingestion.
	CreateIfAbsent(ctx context.Context, a *Alerta) (bool, error)

	// FindMatching returns the alert with the given dedup key, or (nil, nil)
	// when none exists.  dataVencimento may be nil for movement alerts keyed
	// on the movement date being absent.
	FindMatching(ctx context.Context, processoID string, tipo Tipo, dataVencimento *time.Time) (*Alerta, error)

	// FindByID returns the alert scoped to userID, or (nil, nil).
	FindByID(ctx context.Context, id, userID string) (*Alerta, error)

	// List returns alerts matching the filter plus the unpaginated total,
	// newest first.
	List(ctx context.Context, filter ListFilter) ([]*Alerta, int64, error)

	// MarkRead flags the alert as read.
	MarkRead(ctx context.Context, id, userID string) error

	// Delete removes the alert.
	Delete(ctx context.Context, id, userID string) error
}

//Personal.AI order the ending
