package dto

import (
	"github.com/ndolodev/bureau_change_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateCurrencyRequest is the payload for registering a currency.
type CreateCurrencyRequest struct {
	CurrencyCode      string           `json:"currencyCode" binding:"required,min=2,max=10,uppercase"`
	Name              string           `json:"name" binding:"required"`
	Symbol            string           `json:"symbol"`
	BuyRate           decimal.Decimal  `json:"buyRate" binding:"required"`
	SellRate          decimal.Decimal  `json:"sellRate" binding:"required"`
	CurrentRate       decimal.Decimal  `json:"currentRate" binding:"required"`
	InitialStock      decimal.Decimal  `json:"initialStock"`
	LowStockThreshold *decimal.Decimal `json:"lowStockThreshold"` // Falls back to the configured default
}

// UpdateRatesRequest sets a currency's rates.
type UpdateRatesRequest struct {
	BuyRate     decimal.Decimal `json:"buyRate" binding:"required"`
	SellRate    decimal.Decimal `json:"sellRate" binding:"required"`
	CurrentRate decimal.Decimal `json:"currentRate" binding:"required"`
}

// AdjustStockRequest applies a manual stock delta (positive or negative).
type AdjustStockRequest struct {
	Delta  decimal.Decimal `json:"delta" binding:"required"`
	Reason string          `json:"reason" binding:"required"`
}

// CurrencyResponse is the UI-facing shape of a currency registry row.
type CurrencyResponse struct {
	CurrencyCode      string          `json:"currencyCode"`
	Name              string          `json:"name"`
	Symbol            string          `json:"symbol,omitempty"`
	StockAmount       decimal.Decimal `json:"stockAmount"`
	BuyRate           decimal.Decimal `json:"buyRate"`
	SellRate          decimal.Decimal `json:"sellRate"`
	CurrentRate       decimal.Decimal `json:"currentRate"`
	LowStockThreshold decimal.Decimal `json:"lowStockThreshold"`
	IsActive          bool            `json:"isActive"`
}

// ToCurrencyResponse converts a domain.Currency to its response DTO.
func ToCurrencyResponse(c *domain.Currency) CurrencyResponse {
	return CurrencyResponse{
		CurrencyCode:      c.CurrencyCode,
		Name:              c.Name,
		Symbol:            c.Symbol,
		StockAmount:       c.StockAmount,
		BuyRate:           c.BuyRate,
		SellRate:          c.SellRate,
		CurrentRate:       c.CurrentRate,
		LowStockThreshold: c.LowStockThreshold,
		IsActive:          c.IsActive,
	}
}

// ToCurrencyResponses converts a slice of currencies.
func ToCurrencyResponses(currencies []domain.Currency) []CurrencyResponse {
	responses := make([]CurrencyResponse, len(currencies))
	for i := range currencies {
		responses[i] = ToCurrencyResponse(&currencies[i])
	}
	return responses
}
