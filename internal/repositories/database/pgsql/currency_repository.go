package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/ndolodev/bureau_change_app/internal/apperrors"
	"github.com/ndolodev/bureau_change_app/internal/core/domain"
	portsrepo "github.com/ndolodev/bureau_change_app/internal/core/ports/repositories"
)

const currencyColumns = `currency_code, name, symbol, stock_amount, buy_rate, sell_rate, current_rate, low_stock_threshold, is_active, created_at, created_by, last_updated_at, last_updated_by`

type PgxCurrencyRepository struct {
	BaseRepository
}

// newPgxCurrencyRepository creates a new repository for the currency registry.
func newPgxCurrencyRepository(pool *pgxpool.Pool) portsrepo.CurrencyRepositoryFacade {
	return &PgxCurrencyRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.CurrencyRepositoryFacade = (*PgxCurrencyRepository)(nil)

func scanCurrency(row pgx.Row) (domain.Currency, error) {
	var c domain.Currency
	err := row.Scan(
		&c.CurrencyCode,
		&c.Name,
		&c.Symbol,
		&c.StockAmount,
		&c.BuyRate,
		&c.SellRate,
		&c.CurrentRate,
		&c.LowStockThreshold,
		&c.IsActive,
		&c.CreatedAt,
		&c.CreatedBy,
		&c.LastUpdatedAt,
		&c.LastUpdatedBy,
	)
	return c, err
}

// SaveCurrency inserts a new currency. A duplicate code maps to
// apperrors.ErrDuplicate.
func (r *PgxCurrencyRepository) SaveCurrency(ctx context.Context, currency domain.Currency) error {
	query := `
		INSERT INTO currencies (` + currencyColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	_, err := r.Pool.Exec(ctx, query,
		currency.CurrencyCode,
		currency.Name,
		currency.Symbol,
		currency.StockAmount,
		currency.BuyRate,
		currency.SellRate,
		currency.CurrentRate,
		currency.LowStockThreshold,
		currency.IsActive,
		currency.CreatedAt,
		currency.CreatedBy,
		currency.LastUpdatedAt,
		currency.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return apperrors.ErrDuplicate
		}
		return fmt.Errorf("failed to save currency %s: %w", currency.CurrencyCode, err)
	}
	return nil
}

// FindCurrencyByCode retrieves a currency by its code.
func (r *PgxCurrencyRepository) FindCurrencyByCode(ctx context.Context, currencyCode string) (*domain.Currency, error) {
	query := `SELECT ` + currencyColumns + ` FROM currencies WHERE currency_code = $1;`
	currency, err := scanCurrency(r.Pool.QueryRow(ctx, query, currencyCode))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find currency by code %s: %w", currencyCode, err)
	}
	return &currency, nil
}

// FindCurrenciesByCodes retrieves the given currencies keyed by code.
// Unknown codes are absent from the result.
func (r *PgxCurrencyRepository) FindCurrenciesByCodes(ctx context.Context, codes []string) (map[string]domain.Currency, error) {
	if len(codes) == 0 {
		return map[string]domain.Currency{}, nil
	}
	query := `SELECT ` + currencyColumns + ` FROM currencies WHERE currency_code = ANY($1);`
	rows, err := r.Pool.Query(ctx, query, codes)
	if err != nil {
		return nil, fmt.Errorf("failed to query currencies: %w", err)
	}
	defer rows.Close()

	result := make(map[string]domain.Currency, len(codes))
	for rows.Next() {
		currency, err := scanCurrency(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan currency: %w", err)
		}
		result[currency.CurrencyCode] = currency
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read currencies: %w", err)
	}
	return result, nil
}

// ListCurrencies retrieves all currencies.
func (r *PgxCurrencyRepository) ListCurrencies(ctx context.Context) ([]domain.Currency, error) {
	query := `SELECT ` + currencyColumns + ` FROM currencies ORDER BY currency_code;`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query currencies: %w", err)
	}
	defer rows.Close()

	currencies, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Currency, error) {
		return scanCurrency(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan currencies: %w", err)
	}
	return currencies, nil
}

// UpdateRates sets the buy/sell/current rates for a currency.
func (r *PgxCurrencyRepository) UpdateRates(ctx context.Context, currencyCode string, buyRate, sellRate, currentRate decimal.Decimal, updatedBy string, updatedAt time.Time) (*domain.Currency, error) {
	query := `
		UPDATE currencies
		SET buy_rate = $2, sell_rate = $3, current_rate = $4, last_updated_by = $5, last_updated_at = $6
		WHERE currency_code = $1
		RETURNING ` + currencyColumns + `;
	`
	currency, err := scanCurrency(r.Pool.QueryRow(ctx, query, currencyCode, buyRate, sellRate, currentRate, updatedBy, updatedAt))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to update rates for %s: %w", currencyCode, err)
	}
	return &currency, nil
}

// AdjustStock applies a stock delta in one statement, flooring at zero.
// The floor lives in the UPDATE itself so concurrent adjustments cannot
// drive the stock negative.
func (r *PgxCurrencyRepository) AdjustStock(ctx context.Context, currencyCode string, delta decimal.Decimal, updatedBy string, updatedAt time.Time) (*domain.Currency, error) {
	query := `
		UPDATE currencies
		SET stock_amount = GREATEST(stock_amount + $2, 0), last_updated_by = $3, last_updated_at = $4
		WHERE currency_code = $1
		RETURNING ` + currencyColumns + `;
	`
	currency, err := scanCurrency(r.Pool.QueryRow(ctx, query, currencyCode, delta, updatedBy, updatedAt))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to adjust stock for %s: %w", currencyCode, err)
	}
	return &currency, nil
}
