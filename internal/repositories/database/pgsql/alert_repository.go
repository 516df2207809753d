package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ndolodev/bureau_change_app/internal/apperrors"
	"github.com/ndolodev/bureau_change_app/internal/core/domain"
	portsrepo "github.com/ndolodev/bureau_change_app/internal/core/ports/repositories"
)

const alertColumns = `alert_id, type, title, message, entity_id, entity_type, severity, is_read, created_at, created_by, last_updated_at, last_updated_by`

type PgxAlertRepository struct {
	BaseRepository
}

// newPgxAlertRepository creates a new repository for dashboard alerts.
func newPgxAlertRepository(pool *pgxpool.Pool) portsrepo.AlertRepositoryFacade {
	return &PgxAlertRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.AlertRepositoryFacade = (*PgxAlertRepository)(nil)

func scanAlert(row pgx.Row) (domain.Alert, error) {
	var a domain.Alert
	err := row.Scan(
		&a.AlertID,
		&a.Type,
		&a.Title,
		&a.Message,
		&a.EntityID,
		&a.EntityType,
		&a.Severity,
		&a.IsRead,
		&a.CreatedAt,
		&a.CreatedBy,
		&a.LastUpdatedAt,
		&a.LastUpdatedBy,
	)
	return a, err
}

// SaveAlertIfNoUnread inserts the alert unless an unread one with the same
// type and entity exists. The dedup check and the insert are a single
// statement, so two concurrent emitters cannot both write.
func (r *PgxAlertRepository) SaveAlertIfNoUnread(ctx context.Context, alert domain.Alert) (bool, error) {
	query := `
		INSERT INTO alerts (` + alertColumns + `)
		SELECT $1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12
		WHERE NOT EXISTS (
			SELECT 1 FROM alerts
			WHERE type = $2 AND entity_id = $5 AND entity_type = $6 AND is_read = FALSE
		);
	`
	tag, err := r.Pool.Exec(ctx, query,
		alert.AlertID,
		alert.Type,
		alert.Title,
		alert.Message,
		alert.EntityID,
		alert.EntityType,
		alert.Severity,
		alert.IsRead,
		alert.CreatedAt,
		alert.CreatedBy,
		alert.LastUpdatedAt,
		alert.LastUpdatedBy,
	)
	if err != nil {
		return false, fmt.Errorf("failed to save alert: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// ListAlerts retrieves alerts, newest first, optionally unread only.
func (r *PgxAlertRepository) ListAlerts(ctx context.Context, unreadOnly bool, limit, offset int) ([]domain.Alert, error) {
	query := `SELECT ` + alertColumns + ` FROM alerts`
	if unreadOnly {
		query += ` WHERE is_read = FALSE`
	}
	query += ` ORDER BY created_at DESC LIMIT $1 OFFSET $2;`

	rows, err := r.Pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query alerts: %w", err)
	}
	defer rows.Close()

	alerts, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Alert, error) {
		return scanAlert(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan alerts: %w", err)
	}
	return alerts, nil
}

// MarkAlertRead flags an alert as read.
func (r *PgxAlertRepository) MarkAlertRead(ctx context.Context, alertID string, updatedBy string, updatedAt time.Time) error {
	query := `
		UPDATE alerts
		SET is_read = TRUE, last_updated_by = $2, last_updated_at = $3
		WHERE alert_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query, alertID, updatedBy, updatedAt)
	if err != nil {
		return fmt.Errorf("failed to mark alert %s read: %w", alertID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
