package services

import (
	"context"
	"log/slog"

	portssvc "github.com/ndolodev/bureau_change_app/internal/core/ports/services"
	"github.com/ndolodev/bureau_change_app/internal/middleware"
)

// logNotificationDispatch is the default NotificationDispatch: it records
// the would-be notification in the structured log. A push or SMS gateway
// can replace it without touching the services that call Notify.
type logNotificationDispatch struct{}

// NewLogNotificationDispatch creates a log-backed NotificationDispatch.
func NewLogNotificationDispatch() portssvc.NotificationDispatch {
	return &logNotificationDispatch{}
}

var _ portssvc.NotificationDispatch = (*logNotificationDispatch)(nil)

// Notify implements portssvc.NotificationDispatch.
func (d *logNotificationDispatch) Notify(ctx context.Context, recipientRef, title, body string, data map[string]string) {
	logger := middleware.GetLoggerFromCtx(ctx)
	logger.Info("Notification dispatched",
		slog.String("recipient", recipientRef),
		slog.String("title", title),
		slog.String("body", body),
		slog.Any("data", data))
}
