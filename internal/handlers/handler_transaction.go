package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ndolodev/bureau_change_app/internal/core/domain"
	portsrepo "github.com/ndolodev/bureau_change_app/internal/core/ports/repositories"
	portssvc "github.com/ndolodev/bureau_change_app/internal/core/ports/services"
	"github.com/ndolodev/bureau_change_app/internal/dto"
	"github.com/ndolodev/bureau_change_app/internal/middleware"
)

// transactionHandler handles HTTP requests for exchange transactions and
// their payments.
type transactionHandler struct {
	exchangeService portssvc.ExchangeSvcFacade
	paymentService  portssvc.PaymentSvcFacade
}

// newTransactionHandler creates a new transactionHandler.
func newTransactionHandler(es portssvc.ExchangeSvcFacade, ps portssvc.PaymentSvcFacade) *transactionHandler {
	return &transactionHandler{
		exchangeService: es,
		paymentService:  ps,
	}
}

// registerTransactionRoutes registers routes for transactions and payments.
func registerTransactionRoutes(rg *gin.RouterGroup, exchangeService portssvc.ExchangeSvcFacade, paymentService portssvc.PaymentSvcFacade) {
	h := newTransactionHandler(exchangeService, paymentService)

	transactions := rg.Group("/transactions")
	{
		transactions.POST("", h.createTransaction)
		transactions.GET("", h.listTransactions)
		transactions.GET("/:id", h.getTransaction)
		transactions.POST("/:id/void", h.voidTransaction)
		transactions.POST("/:id/payments", h.recordPayment)
		transactions.GET("/:id/payments", h.listPayments)
	}
}

func (h *transactionHandler) createTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	operatorID, ok := operatorIDOrAbort(c, logger)
	if !ok {
		return
	}

	result, err := h.exchangeService.CreateTransaction(c.Request.Context(), req, operatorID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to create transaction")
		return
	}
	c.JSON(http.StatusCreated, result)
}

func (h *transactionHandler) getTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	transactionID := c.Param("id")

	txn, payments, err := h.exchangeService.GetTransaction(c.Request.Context(), transactionID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to retrieve transaction")
		return
	}

	resp := dto.ToTransactionResponse(txn)
	resp.Payments = dto.ToPaymentResponses(payments)
	c.JSON(http.StatusOK, resp)
}

func (h *transactionHandler) listTransactions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListTransactionsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	txns, err := h.exchangeService.ListTransactions(c.Request.Context(), portsrepo.ListTransactionsFilter{
		ClientID: params.ClientID,
		Status:   domain.TransactionStatus(params.Status),
		Limit:    params.Limit,
		Offset:   params.Offset,
	})
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list transactions")
		return
	}
	c.JSON(http.StatusOK, dto.ToTransactionResponses(txns))
}

func (h *transactionHandler) voidTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	transactionID := c.Param("id")

	operatorID, ok := operatorIDOrAbort(c, logger)
	if !ok {
		return
	}

	voided, err := h.exchangeService.VoidTransaction(c.Request.Context(), transactionID, operatorID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to void transaction")
		return
	}
	c.JSON(http.StatusOK, dto.ToTransactionResponse(voided))
}

func (h *transactionHandler) recordPayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	transactionID := c.Param("id")

	var req dto.RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	operatorID, ok := operatorIDOrAbort(c, logger)
	if !ok {
		return
	}

	result, err := h.paymentService.RecordPayment(c.Request.Context(), transactionID, req, operatorID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to record payment")
		return
	}
	c.JSON(http.StatusCreated, result)
}

func (h *transactionHandler) listPayments(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	transactionID := c.Param("id")

	payments, err := h.paymentService.ListPayments(c.Request.Context(), transactionID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list payments")
		return
	}
	c.JSON(http.StatusOK, dto.ToPaymentResponses(payments))
}
