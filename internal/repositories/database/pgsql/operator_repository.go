package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ndolodev/bureau_change_app/internal/apperrors"
	"github.com/ndolodev/bureau_change_app/internal/core/domain"
	portsrepo "github.com/ndolodev/bureau_change_app/internal/core/ports/repositories"
)

const operatorColumns = `operator_id, username, name, password_hash, is_active, created_at, created_by, last_updated_at, last_updated_by`

type PgxOperatorRepository struct {
	BaseRepository
}

// newPgxOperatorRepository creates a new repository for operator logins.
func newPgxOperatorRepository(pool *pgxpool.Pool) portsrepo.OperatorRepositoryFacade {
	return &PgxOperatorRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.OperatorRepositoryFacade = (*PgxOperatorRepository)(nil)

func scanOperator(row pgx.Row) (domain.Operator, error) {
	var o domain.Operator
	err := row.Scan(
		&o.OperatorID,
		&o.Username,
		&o.Name,
		&o.PasswordHash,
		&o.IsActive,
		&o.CreatedAt,
		&o.CreatedBy,
		&o.LastUpdatedAt,
		&o.LastUpdatedBy,
	)
	return o, err
}

// FindOperatorByUsername retrieves an operator by unique username.
func (r *PgxOperatorRepository) FindOperatorByUsername(ctx context.Context, username string) (*domain.Operator, error) {
	query := `SELECT ` + operatorColumns + ` FROM operators WHERE username = $1;`
	operator, err := scanOperator(r.Pool.QueryRow(ctx, query, username))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find operator by username: %w", err)
	}
	return &operator, nil
}

// FindOperatorByID retrieves an operator by ID.
func (r *PgxOperatorRepository) FindOperatorByID(ctx context.Context, operatorID string) (*domain.Operator, error) {
	query := `SELECT ` + operatorColumns + ` FROM operators WHERE operator_id = $1;`
	operator, err := scanOperator(r.Pool.QueryRow(ctx, query, operatorID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find operator %s: %w", operatorID, err)
	}
	return &operator, nil
}

// SaveOperator persists a new operator.
func (r *PgxOperatorRepository) SaveOperator(ctx context.Context, operator domain.Operator) error {
	query := `
		INSERT INTO operators (` + operatorColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := r.Pool.Exec(ctx, query,
		operator.OperatorID,
		operator.Username,
		operator.Name,
		operator.PasswordHash,
		operator.IsActive,
		operator.CreatedAt,
		operator.CreatedBy,
		operator.LastUpdatedAt,
		operator.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save operator %s: %w", operator.OperatorID, err)
	}
	return nil
}
