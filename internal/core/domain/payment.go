package domain

import "github.com/shopspring/decimal"

// PaymentMethod is how a payment was tendered.
type PaymentMethod string

const (
	MethodCash         PaymentMethod = "cash"
	MethodBankTransfer PaymentMethod = "bank_transfer"
	MethodMobileMoney  PaymentMethod = "mobile_money"
	MethodCard         PaymentMethod = "card"
)

// Payment is an immutable, append-only ledger entry against a transaction.
// It is never updated or deleted once written.
type Payment struct {
	PaymentID     string          `json:"paymentID"` // Primary Key (UUID)
	TransactionID string          `json:"transactionID"`
	ClientID      string          `json:"clientID"`
	Amount        decimal.Decimal `json:"amount"`
	CurrencyCode  string          `json:"currencyCode"`
	Method        PaymentMethod   `json:"method"`
	Notes         string          `json:"notes"`
	AuditFields
}
