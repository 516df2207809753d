package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ndolodev/bureau_change_app/internal/apperrors"
	"github.com/ndolodev/bureau_change_app/internal/core/domain"
	portsrepo "github.com/ndolodev/bureau_change_app/internal/core/ports/repositories"
)

const clientColumns = `client_id, name, phone, email, kyc_status, total_debt, total_paid, is_active, created_at, created_by, last_updated_at, last_updated_by`

type PgxClientRepository struct {
	BaseRepository
}

// newPgxClientRepository creates a new repository for client records.
func newPgxClientRepository(pool *pgxpool.Pool) portsrepo.ClientRepositoryFacade {
	return &PgxClientRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.ClientRepositoryFacade = (*PgxClientRepository)(nil)

func scanClient(row pgx.Row) (domain.Client, error) {
	var c domain.Client
	err := row.Scan(
		&c.ClientID,
		&c.Name,
		&c.Phone,
		&c.Email,
		&c.KYCStatus,
		&c.TotalDebt,
		&c.TotalPaid,
		&c.IsActive,
		&c.CreatedAt,
		&c.CreatedBy,
		&c.LastUpdatedAt,
		&c.LastUpdatedBy,
	)
	return c, err
}

// SaveClient inserts a new client.
func (r *PgxClientRepository) SaveClient(ctx context.Context, client domain.Client) error {
	query := `
		INSERT INTO clients (` + clientColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err := r.Pool.Exec(ctx, query,
		client.ClientID,
		client.Name,
		client.Phone,
		client.Email,
		client.KYCStatus,
		client.TotalDebt,
		client.TotalPaid,
		client.IsActive,
		client.CreatedAt,
		client.CreatedBy,
		client.LastUpdatedAt,
		client.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save client %s: %w", client.ClientID, err)
	}
	return nil
}

// FindClientByID retrieves a client by ID.
func (r *PgxClientRepository) FindClientByID(ctx context.Context, clientID string) (*domain.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients WHERE client_id = $1;`
	client, err := scanClient(r.Pool.QueryRow(ctx, query, clientID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find client %s: %w", clientID, err)
	}
	return &client, nil
}

// ListClients retrieves clients with limit/offset pagination, newest first.
func (r *PgxClientRepository) ListClients(ctx context.Context, limit, offset int) ([]domain.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients ORDER BY created_at DESC LIMIT $1 OFFSET $2;`
	rows, err := r.Pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query clients: %w", err)
	}
	defer rows.Close()

	clients, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Client, error) {
		return scanClient(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan clients: %w", err)
	}
	return clients, nil
}

// UpdateKYCStatus sets a client's KYC status.
func (r *PgxClientRepository) UpdateKYCStatus(ctx context.Context, clientID string, status domain.KYCStatus, updatedBy string, updatedAt time.Time) (*domain.Client, error) {
	query := `
		UPDATE clients
		SET kyc_status = $2, last_updated_by = $3, last_updated_at = $4
		WHERE client_id = $1
		RETURNING ` + clientColumns + `;
	`
	client, err := scanClient(r.Pool.QueryRow(ctx, query, clientID, status, updatedBy, updatedAt))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to update KYC status for %s: %w", clientID, err)
	}
	return &client, nil
}
