package dto

import (
	"time"

	"github.com/ndolodev/bureau_change_app/internal/core/domain"
)

// ListAlertsParams filters alert listings.
type ListAlertsParams struct {
	Unread bool `form:"unread"`
	Limit  int  `form:"limit"`
	Offset int  `form:"offset"`
}

// AlertResponse is the UI-facing shape of an alert.
type AlertResponse struct {
	AlertID    string    `json:"alertID"`
	Type       string    `json:"type"`
	Title      string    `json:"title"`
	Message    string    `json:"message"`
	EntityID   string    `json:"entityID,omitempty"`
	EntityType string    `json:"entityType,omitempty"`
	Severity   string    `json:"severity"`
	IsRead     bool      `json:"isRead"`
	CreatedAt  time.Time `json:"createdAt"`
}

// ToAlertResponse converts a domain.Alert to its response DTO.
func ToAlertResponse(a *domain.Alert) AlertResponse {
	return AlertResponse{
		AlertID:    a.AlertID,
		Type:       string(a.Type),
		Title:      a.Title,
		Message:    a.Message,
		EntityID:   a.EntityID,
		EntityType: a.EntityType,
		Severity:   string(a.Severity),
		IsRead:     a.IsRead,
		CreatedAt:  a.CreatedAt,
	}
}

// ToAlertResponses converts a slice of alerts.
func ToAlertResponses(alerts []domain.Alert) []AlertResponse {
	responses := make([]AlertResponse, len(alerts))
	for i := range alerts {
		responses[i] = ToAlertResponse(&alerts[i])
	}
	return responses
}
