package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus is the state of a deposit order. Recalc only moves it
// forward between pending, partial and completed; cancelled is terminal and
// reachable only through an explicit cancel action.
type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderPartial   OrderStatus = "partial"
	OrderCompleted OrderStatus = "completed"
	OrderCancelled OrderStatus = "cancelled"
)

// DepositOrder is an advance-payment plan towards a fixed target amount.
// ReceivedAmount is always a fold over the order's confirmed deposits,
// never an incrementally maintained counter.
type DepositOrder struct {
	OrderID         string          `json:"orderID"`   // Primary Key (UUID)
	Reference       string          `json:"reference"` // Unique (e.g., ORD-1A2B3C4D)
	ClientID        *string         `json:"clientID,omitempty"`
	ClientName      string          `json:"clientName"`
	TotalAmount     decimal.Decimal `json:"totalAmount"` // Fixed at creation
	ReceivedAmount  decimal.Decimal `json:"receivedAmount"`
	RemainingAmount decimal.Decimal `json:"remainingAmount"`
	CurrencyCode    string          `json:"currencyCode"`
	Status          OrderStatus     `json:"status"`
	Notes           string          `json:"notes"`
	AuditFields
}

// DeriveOrderStatus recomputes an order's status from its amounts. It never
// yields cancelled; callers must not invoke it on a cancelled order.
func DeriveOrderStatus(receivedAmount, totalAmount decimal.Decimal) OrderStatus {
	if receivedAmount.GreaterThanOrEqual(totalAmount) && totalAmount.IsPositive() {
		return OrderCompleted
	}
	if receivedAmount.IsPositive() {
		return OrderPartial
	}
	return OrderPending
}

// IsClosed reports whether the order accepts no further payments.
func (o *DepositOrder) IsClosed() bool {
	return o.Status == OrderCompleted || o.Status == OrderCancelled
}

// DepositStatus is the state of a single deposit. confirmed and rejected
// are terminal; a deposit contributes to its order only once confirmed.
type DepositStatus string

const (
	DepositPending         DepositStatus = "pending"
	DepositReceiptUploaded DepositStatus = "receipt_uploaded"
	DepositConfirmed       DepositStatus = "confirmed"
	DepositRejected        DepositStatus = "rejected"
)

// Deposit is one payment instance, optionally attached to an order. An
// order-less deposit is a standalone cash drop.
type Deposit struct {
	DepositID    string          `json:"depositID"` // Primary Key (UUID)
	Code         string          `json:"code"`      // Unique (e.g., DEP-1A2B3C4D)
	OrderID      *string         `json:"orderID,omitempty"`
	ClientName   string          `json:"clientName"`
	Amount       decimal.Decimal `json:"amount"`
	CurrencyCode string          `json:"currencyCode"`
	Status       DepositStatus   `json:"status"`
	ReceiptRef   string          `json:"receiptRef"` // Stored file reference, empty until upload
	Notes        string          `json:"notes"`
	ResolvedAt   *time.Time      `json:"resolvedAt,omitempty"` // Set when confirmed or rejected
	AuditFields
}

// IsFinal reports whether the deposit has reached a terminal state.
func (d *Deposit) IsFinal() bool {
	return d.Status == DepositConfirmed || d.Status == DepositRejected
}

// CanFinalize reports whether the deposit may transition to confirmed or
// rejected. Operator-entered cash deposits may skip receipt upload, so both
// pending and receipt_uploaded qualify.
func (d *Deposit) CanFinalize() bool {
	return d.Status == DepositPending || d.Status == DepositReceiptUploaded
}
