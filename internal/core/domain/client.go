package domain

import "github.com/shopspring/decimal"

// KYCStatus tracks the identity-verification state of a client.
type KYCStatus string

const (
	KYCUnverified KYCStatus = "unverified"
	KYCPending    KYCStatus = "pending"
	KYCVerified   KYCStatus = "verified"
	KYCRejected   KYCStatus = "rejected"
)

// Client is a customer of the bureau. TotalDebt equals the sum of
// amountRemaining over the client's non-voided transactions at any
// quiescent point; both aggregates are mutated only by settlement events.
type Client struct {
	ClientID  string          `json:"clientID"` // Primary Key (UUID)
	Name      string          `json:"name"`
	Phone     string          `json:"phone"` // Nullable
	Email     string          `json:"email"` // Nullable
	KYCStatus KYCStatus       `json:"kycStatus"`
	TotalDebt decimal.Decimal `json:"totalDebt"`
	TotalPaid decimal.Decimal `json:"totalPaid"`
	IsActive  bool            `json:"isActive"`
	AuditFields
}
