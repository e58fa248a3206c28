package repositories

import (
	"context"
	"database/sql"

	"github.com/MP-oliveira/jurisacompanha-backend/internal/domain/user"
	"github.com/MP-oliveira/jurisacompanha-backend/internal/infrastructure/database/postgres"
	"github.com/MP-oliveira/jurisacompanha-backend/internal/infrastructure/monitoring/logging"
	"github.com/MP-oliveira/jurisacompanha-backend/pkg/errors"
)

const userColumns = `id, nome, email, active, created_at, updated_at`

// UserRepository persists the user directory in PostgreSQL.
type UserRepository struct {
	db     queryExecutor
	logger logging.Logger
}

// NewUserRepository creates a user repository bound to the connection.
func NewUserRepository(conn *postgres.Connection, logger logging.Logger) *UserRepository {
	return &UserRepository{db: conn.DB(), logger: logger}
}

// Create persists a new user.
func (r *UserRepository) Create(ctx context.Context, u *user.User) error {
	query := `INSERT INTO users (` + userColumns + `) VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.db.ExecContext(ctx, query,
		u.ID, u.Nome, u.Email, u.Active, u.CreatedAt, u.UpdatedAt)
	if err != nil {
		return errors.Wrap(err, errors.CodeDatabaseError, "failed to insert user")
	}
	return nil
}

// FindByID returns the user, or (nil, nil).
func (r *UserRepository) FindByID(ctx context.Context, id string) (*user.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return r.findOne(ctx, query, id)
}

// FindByEmail returns the active user owning the given address, or
// (nil, nil).  The address is normalised before lookup.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1 AND active = TRUE`
	return r.findOne(ctx, query, user.NormalizeEmail(email))
}

func (r *UserRepository) findOne(ctx context.Context, query string, args ...interface{}) (*user.User, error) {
	u, err := scanUser(r.db.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeDatabaseError, "failed to query user")
	}
	return u, nil
}

// Update persists changes to an existing user.
func (r *UserRepository) Update(ctx context.Context, u *user.User) error {
	query := `UPDATE users SET nome = $1, email = $2, active = $3, updated_at = $4 WHERE id = $5`
	res, err := r.db.ExecContext(ctx, query, u.Nome, u.Email, u.Active, u.UpdatedAt, u.ID)
	if err != nil {
		return errors.Wrap(err, errors.CodeDatabaseError, "failed to update user")
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return errors.Wrap(err, errors.CodeDatabaseError, "failed to read update result")
	}
	if rows == 0 {
		return errors.New(errors.CodeUserNotFound, "user "+u.ID+" not found")
	}
	return nil
}

// List returns all users, active first.
func (r *UserRepository) List(ctx context.Context) ([]*user.User, error) {
	query := `SELECT ` + userColumns + ` FROM users ORDER BY active DESC, nome ASC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeDatabaseError, "failed to list users")
	}
	defer rows.Close()

	var out []*user.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, errors.Wrap(err, errors.CodeDatabaseError, "failed to scan user row")
		}
		out = append(out, u)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, errors.CodeDatabaseError, "failed to iterate user rows")
	}
	return out, nil
}

func scanUser(s scanner) (*user.User, error) {
	var u user.User
	if err := s.Scan(&u.ID, &u.Nome, &u.Email, &u.Active, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return nil, err
	}
	return &u, nil
}

//Personal.AI order the ending
