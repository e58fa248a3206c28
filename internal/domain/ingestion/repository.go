package ingestion

import "context"

// Repository defines the persistence contract for the ingestion audit trail.
type Repository interface {
	// Record appends an event.  The trail is append-only; there is no update
	// or delete path.
	Record(ctx context.Context, e *Event) error

	// ListByProcesso returns the newest events for one processo, newest
	// first, capped at limit.
	ListByProcesso(ctx context.Context, processoID string, limit int) ([]*Event, error)
}

//Personal.AI order the ending
