package dto

import (
	"time"

	"github.com/ndolodev/bureau_change_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateTransactionRequest is the payload for creating an exchange transaction.
type CreateTransactionRequest struct {
	ClientID     string                 `json:"clientID" binding:"required"`
	CurrencyFrom string                 `json:"currencyFrom" binding:"required,min=2,max=10"`
	CurrencyTo   string                 `json:"currencyTo" binding:"required,min=2,max=10"`
	AmountFrom   decimal.Decimal        `json:"amountFrom" binding:"required"`
	ExchangeRate decimal.Decimal        `json:"exchangeRate" binding:"required"`
	Type         domain.TransactionType `json:"type" binding:"required,oneof=buy sell transfer"`
	Notes        string                 `json:"notes"`
}

// TransactionResponse is the UI-facing shape of an exchange transaction.
type TransactionResponse struct {
	TransactionID   string             `json:"transactionID"`
	Reference       string             `json:"reference"`
	ClientID        string             `json:"clientID"`
	CurrencyFrom    string             `json:"currencyFrom"`
	CurrencyTo      string             `json:"currencyTo"`
	AmountFrom      decimal.Decimal    `json:"amountFrom"`
	ExchangeRate    decimal.Decimal    `json:"exchangeRate"`
	AmountTo        decimal.Decimal    `json:"amountTo"`
	AmountPaid      decimal.Decimal    `json:"amountPaid"`
	AmountRemaining decimal.Decimal    `json:"amountRemaining"`
	Status          string             `json:"status"`
	Type            string             `json:"type"`
	MarketRate      *decimal.Decimal   `json:"marketRate,omitempty"`
	Profit          *decimal.Decimal   `json:"profit,omitempty"`
	ProfitCurrency  string             `json:"profitCurrency,omitempty"`
	Notes           string             `json:"notes,omitempty"`
	PaidAt          *time.Time         `json:"paidAt,omitempty"`
	CreatedAt       time.Time          `json:"createdAt"`
	Payments        []PaymentResponse  `json:"payments,omitempty"`
}

// CreateTransactionResult carries the created transaction plus any
// non-fatal warnings raised while creating it.
type CreateTransactionResult struct {
	Transaction  TransactionResponse `json:"transaction"`
	KYCWarning   string              `json:"kycWarning,omitempty"`
	StockWarning string              `json:"stockWarning,omitempty"`
}

// ListTransactionsParams filters transaction listings.
type ListTransactionsParams struct {
	ClientID string `form:"clientID"`
	Status   string `form:"status" binding:"omitempty,oneof=unpaid partial paid voided"`
	Limit    int    `form:"limit"`
	Offset   int    `form:"offset"`
}

// ToTransactionResponse converts a domain.ExchangeTransaction to its response DTO.
func ToTransactionResponse(txn *domain.ExchangeTransaction) TransactionResponse {
	return TransactionResponse{
		TransactionID:   txn.TransactionID,
		Reference:       txn.Reference,
		ClientID:        txn.ClientID,
		CurrencyFrom:    txn.CurrencyFrom,
		CurrencyTo:      txn.CurrencyTo,
		AmountFrom:      txn.AmountFrom,
		ExchangeRate:    txn.ExchangeRate,
		AmountTo:        txn.AmountTo,
		AmountPaid:      txn.AmountPaid,
		AmountRemaining: txn.AmountRemaining,
		Status:          string(txn.Status),
		Type:            string(txn.Type),
		MarketRate:      txn.MarketRate,
		Profit:          txn.Profit,
		ProfitCurrency:  txn.ProfitCurrency,
		Notes:           txn.Notes,
		PaidAt:          txn.PaidAt,
		CreatedAt:       txn.CreatedAt,
	}
}

// ToTransactionResponses converts a slice of transactions.
func ToTransactionResponses(txns []domain.ExchangeTransaction) []TransactionResponse {
	responses := make([]TransactionResponse, len(txns))
	for i := range txns {
		responses[i] = ToTransactionResponse(&txns[i])
	}
	return responses
}
