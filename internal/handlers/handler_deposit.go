package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ndolodev/bureau_change_app/internal/core/domain"
	portssvc "github.com/ndolodev/bureau_change_app/internal/core/ports/services"
	"github.com/ndolodev/bureau_change_app/internal/dto"
	"github.com/ndolodev/bureau_change_app/internal/middleware"
)

// depositHandler handles HTTP requests for individual deposits: standalone
// cash drops, receipt upload and reconciliation.
type depositHandler struct {
	depositService portssvc.DepositOrderSvcFacade
}

// newDepositHandler creates a new depositHandler.
func newDepositHandler(ds portssvc.DepositOrderSvcFacade) *depositHandler {
	return &depositHandler{depositService: ds}
}

// registerDepositRoutes registers routes for deposits.
func registerDepositRoutes(rg *gin.RouterGroup, depositService portssvc.DepositOrderSvcFacade) {
	h := newDepositHandler(depositService)

	deposits := rg.Group("/deposits")
	{
		deposits.POST("", h.createStandaloneDeposit)
		deposits.POST("/:id/receipt", h.markReceiptUploaded)
		deposits.POST("/:id/confirm", h.confirmDeposit)
		deposits.POST("/:id/reject", h.rejectDeposit)
	}
}

func (h *depositHandler) createStandaloneDeposit(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateDepositRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	operatorID, ok := operatorIDOrAbort(c, logger)
	if !ok {
		return
	}

	deposit, err := h.depositService.CreateStandaloneDeposit(c.Request.Context(), req, operatorID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to create deposit")
		return
	}
	c.JSON(http.StatusCreated, dto.ToDepositResponse(deposit))
}

func (h *depositHandler) markReceiptUploaded(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	depositID := c.Param("id")

	var req dto.MarkReceiptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	operatorID, ok := operatorIDOrAbort(c, logger)
	if !ok {
		return
	}

	deposit, err := h.depositService.MarkReceiptUploaded(c.Request.Context(), depositID, req, operatorID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to mark receipt uploaded")
		return
	}
	c.JSON(http.StatusOK, dto.ToDepositResponse(deposit))
}

func (h *depositHandler) confirmDeposit(c *gin.Context) {
	h.finalize(c, true)
}

func (h *depositHandler) rejectDeposit(c *gin.Context) {
	h.finalize(c, false)
}

func (h *depositHandler) finalize(c *gin.Context, confirm bool) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	depositID := c.Param("id")

	operatorID, ok := operatorIDOrAbort(c, logger)
	if !ok {
		return
	}

	var err error
	var deposit *dto.FinalizeDepositResult
	if confirm {
		d, order, ferr := h.depositService.ConfirmDeposit(c.Request.Context(), depositID, operatorID)
		err = ferr
		if ferr == nil {
			deposit = buildFinalizeResult(d, order)
		}
	} else {
		d, order, ferr := h.depositService.RejectDeposit(c.Request.Context(), depositID, operatorID)
		err = ferr
		if ferr == nil {
			deposit = buildFinalizeResult(d, order)
		}
	}
	if err != nil {
		respondServiceError(c, logger, err, "Failed to finalize deposit")
		return
	}
	c.JSON(http.StatusOK, deposit)
}

func buildFinalizeResult(d *domain.Deposit, order *domain.DepositOrder) *dto.FinalizeDepositResult {
	result := &dto.FinalizeDepositResult{Deposit: dto.ToDepositResponse(d)}
	if order != nil {
		resp := dto.ToOrderResponse(order)
		result.Order = &resp
	}
	return result
}
