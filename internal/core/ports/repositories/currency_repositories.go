package repositories

import (
	"context"
	"time"

	"github.com/ndolodev/bureau_change_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CurrencyReader defines read operations for the currency registry.
type CurrencyReader interface {
	// FindCurrencyByCode retrieves a specific currency by its code.
	FindCurrencyByCode(ctx context.Context, currencyCode string) (*domain.Currency, error)

	// FindCurrenciesByCodes retrieves the given currencies, keyed by code.
	// Unknown codes are simply absent from the result, not an error.
	FindCurrenciesByCodes(ctx context.Context, codes []string) (map[string]domain.Currency, error)

	// ListCurrencies retrieves all registered currencies.
	ListCurrencies(ctx context.Context) ([]domain.Currency, error)
}

// CurrencyWriter defines write operations for the currency registry.
type CurrencyWriter interface {
	// SaveCurrency persists a new currency.
	SaveCurrency(ctx context.Context, currency domain.Currency) error

	// UpdateRates sets the buy/sell/current rates for a currency.
	UpdateRates(ctx context.Context, currencyCode string, buyRate, sellRate, currentRate decimal.Decimal, updatedBy string, updatedAt time.Time) (*domain.Currency, error)

	// AdjustStock atomically applies a stock delta, flooring the result at
	// zero, and returns the post-delta row so callers can evaluate the
	// low-stock threshold.
	AdjustStock(ctx context.Context, currencyCode string, delta decimal.Decimal, updatedBy string, updatedAt time.Time) (*domain.Currency, error)
}

// CurrencyRepositoryFacade combines all currency-related repository interfaces.
type CurrencyRepositoryFacade interface {
	CurrencyReader
	CurrencyWriter
}
