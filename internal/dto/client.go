package dto

import (
	"time"

	"github.com/ndolodev/bureau_change_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateClientRequest is the payload for registering a client.
type CreateClientRequest struct {
	Name  string `json:"name" binding:"required"`
	Phone string `json:"phone"`
	Email string `json:"email" binding:"omitempty,email"`
}

// UpdateKYCRequest moves a client's KYC status.
type UpdateKYCRequest struct {
	Status domain.KYCStatus `json:"status" binding:"required,oneof=unverified pending verified rejected"`
}

// ClientResponse is the UI-facing shape of a client record.
type ClientResponse struct {
	ClientID  string          `json:"clientID"`
	Name      string          `json:"name"`
	Phone     string          `json:"phone,omitempty"`
	Email     string          `json:"email,omitempty"`
	KYCStatus string          `json:"kycStatus"`
	TotalDebt decimal.Decimal `json:"totalDebt"`
	TotalPaid decimal.Decimal `json:"totalPaid"`
	IsActive  bool            `json:"isActive"`
	CreatedAt time.Time       `json:"createdAt"`
}

// ToClientResponse converts a domain.Client to its response DTO.
func ToClientResponse(c *domain.Client) ClientResponse {
	return ClientResponse{
		ClientID:  c.ClientID,
		Name:      c.Name,
		Phone:     c.Phone,
		Email:     c.Email,
		KYCStatus: string(c.KYCStatus),
		TotalDebt: c.TotalDebt,
		TotalPaid: c.TotalPaid,
		IsActive:  c.IsActive,
		CreatedAt: c.CreatedAt,
	}
}

// ToClientResponses converts a slice of clients.
func ToClientResponses(clients []domain.Client) []ClientResponse {
	responses := make([]ClientResponse, len(clients))
	for i := range clients {
		responses[i] = ToClientResponse(&clients[i])
	}
	return responses
}
