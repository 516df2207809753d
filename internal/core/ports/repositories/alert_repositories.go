package repositories

import (
	"context"
	"time"

	"github.com/ndolodev/bureau_change_app/internal/core/domain"
)

// AlertRepositoryFacade defines persistence for the append-only alert sink.
type AlertRepositoryFacade interface {
	// SaveAlertIfNoUnread inserts the alert unless an unread alert with the
	// same type and entity already exists. Reports whether a row was
	// written, making redundant emission calls safe.
	SaveAlertIfNoUnread(ctx context.Context, alert domain.Alert) (bool, error)

	// ListAlerts retrieves alerts, newest first, optionally unread only.
	ListAlerts(ctx context.Context, unreadOnly bool, limit, offset int) ([]domain.Alert, error)

	// MarkAlertRead flags an alert as read.
	MarkAlertRead(ctx context.Context, alertID string, updatedBy string, updatedAt time.Time) error
}
