package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/ndolodev/bureau_change_app/internal/core/domain"
	portsrepo "github.com/ndolodev/bureau_change_app/internal/core/ports/repositories"
	portssvc "github.com/ndolodev/bureau_change_app/internal/core/ports/services"
	"github.com/ndolodev/bureau_change_app/internal/dto"
	"github.com/ndolodev/bureau_change_app/internal/middleware"
)

// alertService is the append-only alert sink. Emit never returns an error:
// alerts are advisory and must not fail the financial operation that
// triggered them.
type alertService struct {
	alertRepo portsrepo.AlertRepositoryFacade
}

// NewAlertService creates a new AlertSvcFacade.
func NewAlertService(alertRepo portsrepo.AlertRepositoryFacade) portssvc.AlertSvcFacade {
	return &alertService{alertRepo: alertRepo}
}

var _ portssvc.AlertSvcFacade = (*alertService)(nil)

// Emit implements portssvc.AlertEmitter. Emission is deduplicated against
// unread alerts of the same type and entity, so callers can emit on every
// breach without flooding the dashboard.
func (s *alertService) Emit(ctx context.Context, alertType domain.AlertType, title, message, entityID, entityType string, severity domain.AlertSeverity) {
	logger := middleware.GetLoggerFromCtx(ctx)

	now := time.Now().UTC()
	alert := domain.Alert{
		AlertID:    uuid.NewString(),
		Type:       alertType,
		Title:      title,
		Message:    message,
		EntityID:   entityID,
		EntityType: entityType,
		Severity:   severity,
		IsRead:     false,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     "system",
			LastUpdatedAt: now,
			LastUpdatedBy: "system",
		},
	}

	written, err := s.alertRepo.SaveAlertIfNoUnread(ctx, alert)
	if err != nil {
		logger.Error("Failed to save alert",
			slog.String("error", err.Error()),
			slog.String("type", string(alertType)),
			slog.String("entity_id", entityID))
		return
	}
	if written {
		logger.Info("Alert raised",
			slog.String("alert_id", alert.AlertID),
			slog.String("type", string(alertType)),
			slog.String("severity", string(severity)))
	}
}

// ListAlerts implements portssvc.AlertSvcFacade.
func (s *alertService) ListAlerts(ctx context.Context, params dto.ListAlertsParams) ([]domain.Alert, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = 50
	}
	offset := params.Offset
	if offset < 0 {
		offset = 0
	}
	alerts, err := s.alertRepo.ListAlerts(ctx, params.Unread, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list alerts: %w", err)
	}
	return alerts, nil
}

// MarkAlertRead implements portssvc.AlertSvcFacade.
func (s *alertService) MarkAlertRead(ctx context.Context, alertID string, operatorID string) error {
	if err := s.alertRepo.MarkAlertRead(ctx, alertID, operatorID, time.Now().UTC()); err != nil {
		return fmt.Errorf("failed to mark alert %s read: %w", alertID, err)
	}
	return nil
}
