package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/MP-oliveira/jurisacompanha-backend/internal/domain/processo"
	"github.com/MP-oliveira/jurisacompanha-backend/internal/infrastructure/database/postgres"
	"github.com/MP-oliveira/jurisacompanha-backend/internal/infrastructure/monitoring/logging"
	"github.com/MP-oliveira/jurisacompanha-backend/pkg/errors"
)

const processoColumns = `id, numero, classe, assunto, tribunal, comarca, status,
	data_distribuicao, data_sentenca, prazo_recurso, prazo_embargos, proxima_audiencia,
	observacoes, user_id, created_at, updated_at`

// ProcessoRepository persists processos in PostgreSQL.
type ProcessoRepository struct {
	db     queryExecutor
	logger logging.Logger
}

// NewProcessoRepository creates a processo repository bound to the connection.
func NewProcessoRepository(conn *postgres.Connection, logger logging.Logger) *ProcessoRepository {
	return &ProcessoRepository{db: conn.DB(), logger: logger}
}

// Create persists a new processo.  A duplicate (user_id, numero) pair
// violates the owner-scoped unique index and surfaces as a conflict.
func (r *ProcessoRepository) Create(ctx context.Context, p *processo.Processo) error {
	query := `
		INSERT INTO processos (` + processoColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`

	_, err := r.db.ExecContext(ctx, query,
		p.ID, p.Numero, p.Classe, p.Assunto, p.Tribunal, p.Comarca, string(p.Status),
		nullTime(p.DataDistribuicao), nullTime(p.DataSentenca),
		nullTime(p.PrazoRecurso), nullTime(p.PrazoEmbargos), nullTime(p.ProximaAudiencia),
		p.Observacoes, p.UserID, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if strings.Contains(err.Error(), "processos_owner_numero_idx") {
			return errors.Wrap(err, errors.CodeProcessoAlreadyExists,
				"processo "+p.Numero+" already tracked by this user")
		}
		return errors.Wrap(err, errors.CodeDatabaseError, "failed to insert processo")
	}
	return nil
}

// Update persists changes to an existing processo.
func (r *ProcessoRepository) Update(ctx context.Context, p *processo.Processo) error {
	query := `
		UPDATE processos SET
			classe = $1, assunto = $2, tribunal = $3, comarca = $4, status = $5,
			data_distribuicao = $6, data_sentenca = $7, prazo_recurso = $8,
			prazo_embargos = $9, proxima_audiencia = $10, observacoes = $11,
			updated_at = $12
		WHERE id = $13 AND user_id = $14`

	res, err := r.db.ExecContext(ctx, query,
		p.Classe, p.Assunto, p.Tribunal, p.Comarca, string(p.Status),
		nullTime(p.DataDistribuicao), nullTime(p.DataSentenca),
		nullTime(p.PrazoRecurso), nullTime(p.PrazoEmbargos), nullTime(p.ProximaAudiencia),
		p.Observacoes, p.UpdatedAt, p.ID, p.UserID,
	)
	if err != nil {
		return errors.Wrap(err, errors.CodeDatabaseError, "failed to update processo")
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return errors.Wrap(err, errors.CodeDatabaseError, "failed to read update result")
	}
	if rows == 0 {
		return errors.New(errors.CodeProcessoNotFound, "processo "+p.ID+" not found")
	}
	return nil
}

// FindByID returns the processo scoped to userID, or (nil, nil).
func (r *ProcessoRepository) FindByID(ctx context.Context, id, userID string) (*processo.Processo, error) {
	query := `SELECT ` + processoColumns + ` FROM processos WHERE id = $1 AND user_id = $2`
	return r.findOne(ctx, query, id, userID)
}

// FindByNumero returns the processo with the given CNJ number scoped to
// userID, or (nil, nil).
func (r *ProcessoRepository) FindByNumero(ctx context.Context, numero, userID string) (*processo.Processo, error) {
	query := `SELECT ` + processoColumns + ` FROM processos WHERE numero = $1 AND user_id = $2`
	return r.findOne(ctx, query, numero, userID)
}

func (r *ProcessoRepository) findOne(ctx context.Context, query string, args ...interface{}) (*processo.Processo, error) {
	p, err := scanProcesso(r.db.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeDatabaseError, "failed to query processo")
	}
	return p, nil
}

// List returns processos matching the filter plus the unpaginated total,
// most recently updated first.
func (r *ProcessoRepository) List(ctx context.Context, filter processo.ListFilter) ([]*processo.Processo, int64, error) {
	where := []string{"user_id = $1"}
	args := []interface{}{filter.UserID}

	if filter.Status != "" {
		args = append(args, string(filter.Status))
		where = append(where, fmt.Sprintf("status = $%d", len(args)))
	}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		n := len(args)
		where = append(where, fmt.Sprintf("(numero ILIKE $%d OR classe ILIKE $%d OR assunto ILIKE $%d)", n, n, n))
	}
	cond := strings.Join(where, " AND ")

	var total int64
	countQuery := "SELECT COUNT(*) FROM processos WHERE " + cond
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, errors.Wrap(err, errors.CodeDatabaseError, "failed to count processos")
	}

	args = append(args, filter.Limit, filter.Offset)
	query := fmt.Sprintf(`SELECT `+processoColumns+` FROM processos
		WHERE %s ORDER BY updated_at DESC LIMIT $%d OFFSET $%d`,
		cond, len(args)-1, len(args))

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, errors.Wrap(err, errors.CodeDatabaseError, "failed to list processos")
	}
	defer rows.Close()

	out, err := collectProcessos(rows)
	if err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

// FindWithDeadlinesBetween returns all active processos having at least one
// watched deadline inside [from, to].
func (r *ProcessoRepository) FindWithDeadlinesBetween(ctx context.Context, from, to time.Time) ([]*processo.Processo, error) {
	query := `
		SELECT ` + processoColumns + ` FROM processos
		WHERE status = 'active' AND (
			proxima_audiencia BETWEEN $1 AND $2
			OR prazo_recurso BETWEEN $1 AND $2
			OR prazo_embargos BETWEEN $1 AND $2
			OR data_distribuicao BETWEEN $1 AND $2
		)
		ORDER BY updated_at DESC`

	rows, err := r.db.QueryContext(ctx, query, from.UTC(), to.UTC())
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeDatabaseError, "failed to query processos by deadline window")
	}
	defer rows.Close()

	return collectProcessos(rows)
}

// Delete removes the processo.  Alerts and ingestion events go with it
// through the foreign key cascade.
func (r *ProcessoRepository) Delete(ctx context.Context, id, userID string) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM processos WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return errors.Wrap(err, errors.CodeDatabaseError, "failed to delete processo")
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return errors.Wrap(err, errors.CodeDatabaseError, "failed to read delete result")
	}
	if rows == 0 {
		return errors.New(errors.CodeProcessoNotFound, "processo "+id+" not found")
	}
	return nil
}

func scanProcesso(s scanner) (*processo.Processo, error) {
	var p processo.Processo
	var status string
	var distribuicao, sentenca, recurso, embargos, audiencia sql.NullTime

	err := s.Scan(
		&p.ID, &p.Numero, &p.Classe, &p.Assunto, &p.Tribunal, &p.Comarca, &status,
		&distribuicao, &sentenca, &recurso, &embargos, &audiencia,
		&p.Observacoes, &p.UserID, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	p.Status = processo.Status(status)
	p.DataDistribuicao = timePtr(distribuicao)
	p.DataSentenca = timePtr(sentenca)
	p.PrazoRecurso = timePtr(recurso)
	p.PrazoEmbargos = timePtr(embargos)
	p.ProximaAudiencia = timePtr(audiencia)
	return &p, nil
}

func collectProcessos(rows *sql.Rows) ([]*processo.Processo, error) {
	var out []*processo.Processo
	for rows.Next() {
		p, err := scanProcesso(rows)
		if err != nil {
			return nil, errors.Wrap(err, errors.CodeDatabaseError, "failed to scan processo row")
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, errors.CodeDatabaseError, "failed to iterate processo rows")
	}
	return out, nil
}

//Personal.AI order the ending
