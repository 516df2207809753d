package domain

import "github.com/shopspring/decimal"

// Currency represents a tradeable currency held in the shop's till.
// StockAmount is the quantity physically on hand; it never goes negative
// and is mutated only through atomic stock-delta application.
type Currency struct {
	CurrencyCode      string          `json:"currencyCode"` // Primary Key (e.g., "USD", "FCFA")
	Name              string          `json:"name"`         // e.g., "US Dollar"
	Symbol            string          `json:"symbol"`       // e.g., "$"
	StockAmount       decimal.Decimal `json:"stockAmount"`
	BuyRate           decimal.Decimal `json:"buyRate"`  // Rate the shop buys this currency at
	SellRate          decimal.Decimal `json:"sellRate"` // Rate the shop sells this currency at
	CurrentRate       decimal.Decimal `json:"currentRate"`
	LowStockThreshold decimal.Decimal `json:"lowStockThreshold"`
	IsActive          bool            `json:"isActive"`
	AuditFields
}

// RateQuote is a read-only rate snapshot for a currency, used for spread
// profit computation. Absence of a quote for a currency is a valid,
// non-fatal answer.
type RateQuote struct {
	CurrencyCode string          `json:"currencyCode"`
	BuyRate      decimal.Decimal `json:"buyRate"`
	SellRate     decimal.Decimal `json:"sellRate"`
	CurrentRate  decimal.Decimal `json:"currentRate"`
}
