package dto

import (
	"time"

	"github.com/ndolodev/bureau_change_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateOrderRequest is the payload for opening a deposit order.
type CreateOrderRequest struct {
	ClientID     *string         `json:"clientID"`
	ClientName   string          `json:"clientName" binding:"required"`
	TotalAmount  decimal.Decimal `json:"totalAmount" binding:"required"`
	CurrencyCode string          `json:"currencyCode" binding:"required,min=2,max=10"`
	Notes        string          `json:"notes"`
}

// AddOrderPaymentRequest is the payload for adding a deposit to an order.
type AddOrderPaymentRequest struct {
	Amount decimal.Decimal `json:"amount" binding:"required"`
	Notes  string          `json:"notes"`
}

// CreateDepositRequest is the payload for a standalone cash-drop deposit,
// unattached to any order.
type CreateDepositRequest struct {
	ClientName   string          `json:"clientName" binding:"required"`
	Amount       decimal.Decimal `json:"amount" binding:"required"`
	CurrencyCode string          `json:"currencyCode" binding:"required,min=2,max=10"`
	Notes        string          `json:"notes"`
}

// MarkReceiptRequest records the stored file reference for a deposit receipt.
type MarkReceiptRequest struct {
	ReceiptRef string `json:"receiptRef" binding:"required"`
}

// ListOrdersParams filters order listings.
type ListOrdersParams struct {
	Status string `form:"status" binding:"omitempty,oneof=pending partial completed cancelled"`
	Limit  int    `form:"limit"`
	Offset int    `form:"offset"`
}

// DepositResponse is the UI-facing shape of a deposit.
type DepositResponse struct {
	DepositID    string          `json:"depositID"`
	Code         string          `json:"code"`
	OrderID      *string         `json:"orderID,omitempty"`
	ClientName   string          `json:"clientName"`
	Amount       decimal.Decimal `json:"amount"`
	CurrencyCode string          `json:"currencyCode"`
	Status       string          `json:"status"`
	ReceiptRef   string          `json:"receiptRef,omitempty"`
	Notes        string          `json:"notes,omitempty"`
	ResolvedAt   *time.Time      `json:"resolvedAt,omitempty"`
	CreatedAt    time.Time       `json:"createdAt"`
}

// OrderResponse is the UI-facing shape of a deposit order.
type OrderResponse struct {
	OrderID         string            `json:"orderID"`
	Reference       string            `json:"reference"`
	ClientID        *string           `json:"clientID,omitempty"`
	ClientName      string            `json:"clientName"`
	TotalAmount     decimal.Decimal   `json:"totalAmount"`
	ReceivedAmount  decimal.Decimal   `json:"receivedAmount"`
	RemainingAmount decimal.Decimal   `json:"remainingAmount"`
	CurrencyCode    string            `json:"currencyCode"`
	Status          string            `json:"status"`
	Notes           string            `json:"notes,omitempty"`
	CreatedAt       time.Time         `json:"createdAt"`
	Deposits        []DepositResponse `json:"deposits,omitempty"`
}

// FinalizeDepositResult carries the finalized deposit and, when the deposit
// was attached to an order, the recalculated order.
type FinalizeDepositResult struct {
	Deposit DepositResponse `json:"deposit"`
	Order   *OrderResponse  `json:"order,omitempty"`
}

// ToDepositResponse converts a domain.Deposit to its response DTO.
func ToDepositResponse(d *domain.Deposit) DepositResponse {
	return DepositResponse{
		DepositID:    d.DepositID,
		Code:         d.Code,
		OrderID:      d.OrderID,
		ClientName:   d.ClientName,
		Amount:       d.Amount,
		CurrencyCode: d.CurrencyCode,
		Status:       string(d.Status),
		ReceiptRef:   d.ReceiptRef,
		Notes:        d.Notes,
		ResolvedAt:   d.ResolvedAt,
		CreatedAt:    d.CreatedAt,
	}
}

// ToDepositResponses converts a slice of deposits.
func ToDepositResponses(deposits []domain.Deposit) []DepositResponse {
	responses := make([]DepositResponse, len(deposits))
	for i := range deposits {
		responses[i] = ToDepositResponse(&deposits[i])
	}
	return responses
}

// ToOrderResponse converts a domain.DepositOrder to its response DTO.
func ToOrderResponse(o *domain.DepositOrder) OrderResponse {
	return OrderResponse{
		OrderID:         o.OrderID,
		Reference:       o.Reference,
		ClientID:        o.ClientID,
		ClientName:      o.ClientName,
		TotalAmount:     o.TotalAmount,
		ReceivedAmount:  o.ReceivedAmount,
		RemainingAmount: o.RemainingAmount,
		CurrencyCode:    o.CurrencyCode,
		Status:          string(o.Status),
		Notes:           o.Notes,
		CreatedAt:       o.CreatedAt,
	}
}

// ToOrderResponses converts a slice of orders.
func ToOrderResponses(orders []domain.DepositOrder) []OrderResponse {
	responses := make([]OrderResponse, len(orders))
	for i := range orders {
		responses[i] = ToOrderResponse(&orders[i])
	}
	return responses
}
