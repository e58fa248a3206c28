package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/MP-oliveira/jurisacompanha-backend/internal/domain/alerta"
	"github.com/MP-oliveira/jurisacompanha-backend/internal/infrastructure/database/postgres"
	"github.com/MP-oliveira/jurisacompanha-backend/internal/infrastructure/monitoring/logging"
	"github.com/MP-oliveira/jurisacompanha-backend/pkg/errors"
)

const alertaColumns = `id, tipo, titulo, mensagem, prioridade, data_vencimento,
	data_notificacao, lido, user_id, processo_id, created_at, updated_at`

// AlertaRepository persists alerts in PostgreSQL.  The dedup invariant is
// enforced by the alertas_dedup_idx unique index, so concurrent ingestion of
// the same notification resolves inside the database.
type AlertaRepository struct {
	db     queryExecutor
	logger logging.Logger
}

// NewAlertaRepository creates an alert repository bound to the connection.
func NewAlertaRepository(conn *postgres.Connection, logger logging.Logger) *AlertaRepository {
	return &AlertaRepository{db: conn.DB(), logger: logger}
}

// CreateIfAbsent inserts a and reports whether a row was actually written.
// The conflicting insert is the dedup signal: ON CONFLICT DO NOTHING turns a
// duplicate (processo_id, tipo, data_vencimento) into zero affected rows.
func (r *AlertaRepository) CreateIfAbsent(ctx context.Context, a *alerta.Alerta) (bool, error) {
	query := `
		INSERT INTO alertas (` + alertaColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT DO NOTHING`

	res, err := r.db.ExecContext(ctx, query,
		a.ID, string(a.Tipo), a.Titulo, a.Mensagem, string(a.Prioridade),
		nullTime(a.DataVencimento), a.DataNotificacao, a.Lido,
		a.UserID, a.ProcessoID, a.CreatedAt, a.UpdatedAt,
	)
	if err != nil {
		return false, errors.Wrap(err, errors.CodeDatabaseError, "failed to insert alerta")
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return false, errors.Wrap(err, errors.CodeDatabaseError, "failed to read insert result")
	}
	return rows > 0, nil
}

// FindMatching returns the alert with the given dedup key, or (nil, nil).
// IS NOT DISTINCT FROM makes a nil due date match the NULL-keyed row.
func (r *AlertaRepository) FindMatching(ctx context.Context, processoID string, tipo alerta.Tipo, dataVencimento *time.Time) (*alerta.Alerta, error) {
	query := `
		SELECT ` + alertaColumns + ` FROM alertas
		WHERE processo_id = $1 AND tipo = $2 AND data_vencimento IS NOT DISTINCT FROM $3`
	return r.findOne(ctx, query, processoID, string(tipo), nullTime(dataVencimento))
}

// FindByID returns the alert scoped to userID, or (nil, nil).
func (r *AlertaRepository) FindByID(ctx context.Context, id, userID string) (*alerta.Alerta, error) {
	query := `SELECT ` + alertaColumns + ` FROM alertas WHERE id = $1 AND user_id = $2`
	return r.findOne(ctx, query, id, userID)
}

func (r *AlertaRepository) findOne(ctx context.Context, query string, args ...interface{}) (*alerta.Alerta, error) {
	a, err := scanAlerta(r.db.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeDatabaseError, "failed to query alerta")
	}
	return a, nil
}

// List returns alerts matching the filter plus the unpaginated total, newest
// first.
func (r *AlertaRepository) List(ctx context.Context, filter alerta.ListFilter) ([]*alerta.Alerta, int64, error) {
	where := []string{"user_id = $1"}
	args := []interface{}{filter.UserID}

	if filter.ProcessoID != "" {
		args = append(args, filter.ProcessoID)
		where = append(where, fmt.Sprintf("processo_id = $%d", len(args)))
	}
	if filter.UnreadOnly {
		where = append(where, "lido = FALSE")
	}
	cond := strings.Join(where, " AND ")

	var total int64
	countQuery := "SELECT COUNT(*) FROM alertas WHERE " + cond
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, errors.Wrap(err, errors.CodeDatabaseError, "failed to count alertas")
	}

	args = append(args, filter.Limit, filter.Offset)
	query := fmt.Sprintf(`SELECT `+alertaColumns+` FROM alertas
		WHERE %s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
		cond, len(args)-1, len(args))

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, errors.Wrap(err, errors.CodeDatabaseError, "failed to list alertas")
	}
	defer rows.Close()

	var out []*alerta.Alerta
	for rows.Next() {
		a, err := scanAlerta(rows)
		if err != nil {
			return nil, 0, errors.Wrap(err, errors.CodeDatabaseError, "failed to scan alerta row")
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, errors.Wrap(err, errors.CodeDatabaseError, "failed to iterate alerta rows")
	}
	return out, total, nil
}

// MarkRead flags the alert as read.
func (r *AlertaRepository) MarkRead(ctx context.Context, id, userID string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE alertas SET lido = TRUE, updated_at = $1 WHERE id = $2 AND user_id = $3`,
		time.Now().UTC(), id, userID)
	if err != nil {
		return errors.Wrap(err, errors.CodeDatabaseError, "failed to mark alerta read")
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return errors.Wrap(err, errors.CodeDatabaseError, "failed to read update result")
	}
	if rows == 0 {
		return errors.New(errors.CodeAlertaNotFound, "alerta "+id+" not found")
	}
	return nil
}

// Delete removes the alert.
func (r *AlertaRepository) Delete(ctx context.Context, id, userID string) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM alertas WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return errors.Wrap(err, errors.CodeDatabaseError, "failed to delete alerta")
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return errors.Wrap(err, errors.CodeDatabaseError, "failed to read delete result")
	}
	if rows == 0 {
		return errors.New(errors.CodeAlertaNotFound, "alerta "+id+" not found")
	}
	return nil
}

func scanAlerta(s scanner) (*alerta.Alerta, error) {
	var a alerta.Alerta
	var tipo, prioridade string
	var vencimento sql.NullTime

	err := s.Scan(
		&a.ID, &tipo, &a.Titulo, &a.Mensagem, &prioridade, &vencimento,
		&a.DataNotificacao, &a.Lido, &a.UserID, &a.ProcessoID, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	a.Tipo = alerta.Tipo(tipo)
	a.Prioridade = alerta.Prioridade(prioridade)
	a.DataVencimento = timePtr(vencimento)
	a.DataNotificacao = a.DataNotificacao.UTC()
	return &a, nil
}

//Personal.AI order the ending
