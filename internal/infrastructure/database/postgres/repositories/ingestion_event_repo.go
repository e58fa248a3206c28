package repositories

import (
	"context"

	"github.com/MP-oliveira/jurisacompanha-backend/internal/domain/ingestion"
	"github.com/MP-oliveira/jurisacompanha-backend/internal/infrastructure/database/postgres"
	"github.com/MP-oliveira/jurisacompanha-backend/internal/infrastructure/monitoring/logging"
	"github.com/MP-oliveira/jurisacompanha-backend/pkg/errors"
)

const ingestionEventColumns = `id, processo_id, user_id, source, subject,
	movement_count, excerpt, received_at, created_at`

// IngestionEventRepository persists the append-only ingestion audit trail.
type IngestionEventRepository struct {
	db     queryExecutor
	logger logging.Logger
}

// NewIngestionEventRepository creates an event repository bound to the
// connection.
func NewIngestionEventRepository(conn *postgres.Connection, logger logging.Logger) *IngestionEventRepository {
	return &IngestionEventRepository{db: conn.DB(), logger: logger}
}

// Record appends an event.
func (r *IngestionEventRepository) Record(ctx context.Context, e *ingestion.Event) error {
	query := `
		INSERT INTO ingestion_events (` + ingestionEventColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := r.db.ExecContext(ctx, query,
		e.ID, e.ProcessoID, e.UserID, string(e.Source), e.Subject,
		e.MovementCount, e.Excerpt, e.ReceivedAt, e.CreatedAt)
	if err != nil {
		return errors.Wrap(err, errors.CodeDatabaseError, "failed to insert ingestion event")
	}
	return nil
}

// ListByProcesso returns the newest events for one processo, newest first.
func (r *IngestionEventRepository) ListByProcesso(ctx context.Context, processoID string, limit int) ([]*ingestion.Event, error) {
	if limit <= 0 {
		limit = 20
	}
	query := `
		SELECT ` + ingestionEventColumns + ` FROM ingestion_events
		WHERE processo_id = $1 ORDER BY received_at DESC LIMIT $2`

	rows, err := r.db.QueryContext(ctx, query, processoID, limit)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeDatabaseError, "failed to list ingestion events")
	}
	defer rows.Close()

	var out []*ingestion.Event
	for rows.Next() {
		var e ingestion.Event
		var source string
		if err := rows.Scan(&e.ID, &e.ProcessoID, &e.UserID, &source, &e.Subject,
			&e.MovementCount, &e.Excerpt, &e.ReceivedAt, &e.CreatedAt); err != nil {
			return nil, errors.Wrap(err, errors.CodeDatabaseError, "failed to scan ingestion event row")
		}
		e.Source = ingestion.Source(source)
		out = append(out, &e)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, errors.CodeDatabaseError, "failed to iterate ingestion event rows")
	}
	return out, nil
}

//Personal.AI order the ending
