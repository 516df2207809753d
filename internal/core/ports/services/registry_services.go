package services

import (
	"context"

	"github.com/ndolodev/bureau_change_app/internal/core/domain"
	"github.com/ndolodev/bureau_change_app/internal/dto"
)

// CurrencySvcFacade manages the currency registry (stock + rates).
type CurrencySvcFacade interface {
	// CreateCurrency registers a new currency.
	CreateCurrency(ctx context.Context, req dto.CreateCurrencyRequest, operatorID string) (*domain.Currency, error)

	// GetCurrencyByCode retrieves a currency.
	GetCurrencyByCode(ctx context.Context, currencyCode string) (*domain.Currency, error)

	// ListCurrencies retrieves all currencies.
	ListCurrencies(ctx context.Context) ([]domain.Currency, error)

	// UpdateRates sets a currency's buy/sell/current rates.
	UpdateRates(ctx context.Context, currencyCode string, req dto.UpdateRatesRequest, operatorID string) (*domain.Currency, error)

	// AdjustStock applies a manual stock delta (floored at zero) and emits
	// a low-stock alert when the result breaches the threshold.
	AdjustStock(ctx context.Context, currencyCode string, req dto.AdjustStockRequest, operatorID string) (*domain.Currency, error)
}

// ClientSvcFacade manages client records.
type ClientSvcFacade interface {
	// CreateClient registers a new client.
	CreateClient(ctx context.Context, req dto.CreateClientRequest, operatorID string) (*domain.Client, error)

	// GetClientByID retrieves a client with its balances.
	GetClientByID(ctx context.Context, clientID string) (*domain.Client, error)

	// ListClients retrieves clients with limit/offset pagination.
	ListClients(ctx context.Context, limit, offset int) ([]domain.Client, error)

	// UpdateKYCStatus moves a client's KYC status.
	UpdateKYCStatus(ctx context.Context, clientID string, req dto.UpdateKYCRequest, operatorID string) (*domain.Client, error)
}
