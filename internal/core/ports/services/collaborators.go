package services

import (
	"context"

	"github.com/ndolodev/bureau_change_app/internal/core/domain"
	"github.com/ndolodev/bureau_change_app/internal/dto"
)

// AlertEmitter is the append-only sink for threshold-breach notices. Emit
// is fire-and-forget and safe to call redundantly: the implementation
// deduplicates against unread alerts of the same type and entity.
type AlertEmitter interface {
	Emit(ctx context.Context, alertType domain.AlertType, title, message, entityID, entityType string, severity domain.AlertSeverity)
}

// AlertSvcFacade extends the emitter with the dashboard's read side.
type AlertSvcFacade interface {
	AlertEmitter

	// ListAlerts retrieves alerts matching the params, newest first.
	ListAlerts(ctx context.Context, params dto.ListAlertsParams) ([]domain.Alert, error)

	// MarkAlertRead flags an alert as read.
	MarkAlertRead(ctx context.Context, alertID string, operatorID string) error
}

// RateSource is a read-only lookup of market rates, used only for profit
// computation. A nil quote with a nil error means the currency is unknown
// to the source; callers treat that as non-fatal.
type RateSource interface {
	CurrentRates(ctx context.Context, currencyCode string) (*domain.RateQuote, error)
}

// NotificationDispatch delivers best-effort, at-least-once notifications.
// Failures are swallowed by the implementation and never propagate to the
// caller's financial result.
type NotificationDispatch interface {
	Notify(ctx context.Context, recipientRef, title, body string, data map[string]string)
}

// AuthSvcFacade authenticates operators and validates their tokens.
type AuthSvcFacade interface {
	// Login verifies credentials and issues an access token.
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)
}
