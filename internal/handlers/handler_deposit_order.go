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

// depositOrderHandler handles HTTP requests for deposit orders.
type depositOrderHandler struct {
	depositService portssvc.DepositOrderSvcFacade
}

// newDepositOrderHandler creates a new depositOrderHandler.
func newDepositOrderHandler(ds portssvc.DepositOrderSvcFacade) *depositOrderHandler {
	return &depositOrderHandler{depositService: ds}
}

// registerDepositOrderRoutes registers routes for deposit orders.
func registerDepositOrderRoutes(rg *gin.RouterGroup, depositService portssvc.DepositOrderSvcFacade) {
	h := newDepositOrderHandler(depositService)

	orders := rg.Group("/orders")
	{
		orders.POST("", h.createOrder)
		orders.GET("", h.listOrders)
		orders.GET("/:id", h.getOrder)
		orders.POST("/:id/payments", h.addOrderPayment)
		orders.POST("/:id/cancel", h.cancelOrder)
	}
}

func (h *depositOrderHandler) createOrder(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	operatorID, ok := operatorIDOrAbort(c, logger)
	if !ok {
		return
	}

	order, err := h.depositService.CreateOrder(c.Request.Context(), req, operatorID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to create order")
		return
	}
	c.JSON(http.StatusCreated, dto.ToOrderResponse(order))
}

func (h *depositOrderHandler) getOrder(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	orderID := c.Param("id")

	order, deposits, err := h.depositService.GetOrder(c.Request.Context(), orderID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to retrieve order")
		return
	}

	resp := dto.ToOrderResponse(order)
	resp.Deposits = dto.ToDepositResponses(deposits)
	c.JSON(http.StatusOK, resp)
}

func (h *depositOrderHandler) listOrders(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListOrdersParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	orders, err := h.depositService.ListOrders(c.Request.Context(), portsrepo.ListOrdersFilter{
		Status: domain.OrderStatus(params.Status),
		Limit:  params.Limit,
		Offset: params.Offset,
	})
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list orders")
		return
	}
	c.JSON(http.StatusOK, dto.ToOrderResponses(orders))
}

func (h *depositOrderHandler) addOrderPayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	orderID := c.Param("id")

	var req dto.AddOrderPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	operatorID, ok := operatorIDOrAbort(c, logger)
	if !ok {
		return
	}

	deposit, err := h.depositService.AddOrderPayment(c.Request.Context(), orderID, req, operatorID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to add payment to order")
		return
	}
	c.JSON(http.StatusCreated, dto.ToDepositResponse(deposit))
}

func (h *depositOrderHandler) cancelOrder(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	orderID := c.Param("id")

	operatorID, ok := operatorIDOrAbort(c, logger)
	if !ok {
		return
	}

	order, err := h.depositService.CancelOrder(c.Request.Context(), orderID, operatorID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to cancel order")
		return
	}
	c.JSON(http.StatusOK, dto.ToOrderResponse(order))
}
