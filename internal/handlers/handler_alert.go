package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/ndolodev/bureau_change_app/internal/core/ports/services"
	"github.com/ndolodev/bureau_change_app/internal/dto"
	"github.com/ndolodev/bureau_change_app/internal/middleware"
)

// alertHandler handles HTTP requests for the dashboard's alert feed.
type alertHandler struct {
	alertService portssvc.AlertSvcFacade
}

// newAlertHandler creates a new alertHandler.
func newAlertHandler(as portssvc.AlertSvcFacade) *alertHandler {
	return &alertHandler{alertService: as}
}

// registerAlertRoutes registers routes related to alerts.
func registerAlertRoutes(rg *gin.RouterGroup, alertService portssvc.AlertSvcFacade) {
	h := newAlertHandler(alertService)

	alerts := rg.Group("/alerts")
	{
		alerts.GET("", h.listAlerts)
		alerts.POST("/:id/read", h.markAlertRead)
	}
}

func (h *alertHandler) listAlerts(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListAlertsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	alerts, err := h.alertService.ListAlerts(c.Request.Context(), params)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list alerts")
		return
	}
	c.JSON(http.StatusOK, dto.ToAlertResponses(alerts))
}

func (h *alertHandler) markAlertRead(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	alertID := c.Param("id")

	operatorID, ok := operatorIDOrAbort(c, logger)
	if !ok {
		return
	}

	if err := h.alertService.MarkAlertRead(c.Request.Context(), alertID, operatorID); err != nil {
		respondServiceError(c, logger, err, "Failed to mark alert read")
		return
	}
	c.Status(http.StatusNoContent)
}
