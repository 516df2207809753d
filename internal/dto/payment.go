package dto

import (
	"time"

	"github.com/ndolodev/bureau_change_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// RecordPaymentRequest is the payload for applying a payment to a transaction.
type RecordPaymentRequest struct {
	Amount       decimal.Decimal      `json:"amount" binding:"required"`
	CurrencyCode string               `json:"currencyCode" binding:"required,min=2,max=10"`
	Method       domain.PaymentMethod `json:"method" binding:"required,oneof=cash bank_transfer mobile_money card"`
	Notes        string               `json:"notes"`
}

// PaymentResponse is the UI-facing shape of a payment ledger entry.
type PaymentResponse struct {
	PaymentID     string          `json:"paymentID"`
	TransactionID string          `json:"transactionID"`
	ClientID      string          `json:"clientID"`
	Amount        decimal.Decimal `json:"amount"`
	CurrencyCode  string          `json:"currencyCode"`
	Method        string          `json:"method"`
	Notes         string          `json:"notes,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
}

// RecordPaymentResult carries the payment together with the transaction's
// post-payment state so the caller can render without a second fetch.
type RecordPaymentResult struct {
	Payment           PaymentResponse `json:"payment"`
	TransactionStatus string          `json:"transactionStatus"`
	AmountRemaining   decimal.Decimal `json:"amountRemaining"`
}

// ToPaymentResponse converts a domain.Payment to its response DTO.
func ToPaymentResponse(p *domain.Payment) PaymentResponse {
	return PaymentResponse{
		PaymentID:     p.PaymentID,
		TransactionID: p.TransactionID,
		ClientID:      p.ClientID,
		Amount:        p.Amount,
		CurrencyCode:  p.CurrencyCode,
		Method:        string(p.Method),
		Notes:         p.Notes,
		CreatedAt:     p.CreatedAt,
	}
}

// ToPaymentResponses converts a slice of payments.
func ToPaymentResponses(payments []domain.Payment) []PaymentResponse {
	responses := make([]PaymentResponse, len(payments))
	for i := range payments {
		responses[i] = ToPaymentResponse(&payments[i])
	}
	return responses
}
