package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ndolodev/bureau_change_app/internal/apperrors"
	"github.com/ndolodev/bureau_change_app/internal/core/domain"
	portsrepo "github.com/ndolodev/bureau_change_app/internal/core/ports/repositories"
	portssvc "github.com/ndolodev/bureau_change_app/internal/core/ports/services"
	"github.com/ndolodev/bureau_change_app/internal/dto"
	"github.com/ndolodev/bureau_change_app/internal/middleware"
)

// currencyService manages the currency registry. Stock moves through the
// repository's atomic delta application, never read-modify-write in here.
type currencyService struct {
	currencyRepo         portsrepo.CurrencyRepositoryFacade
	alerts               portssvc.AlertEmitter
	defaultLowStockLevel decimal.Decimal
}

// NewCurrencyService creates a new CurrencySvcFacade.
func NewCurrencyService(currencyRepo portsrepo.CurrencyRepositoryFacade, alerts portssvc.AlertEmitter, defaultLowStockLevel decimal.Decimal) portssvc.CurrencySvcFacade {
	return &currencyService{
		currencyRepo:         currencyRepo,
		alerts:               alerts,
		defaultLowStockLevel: defaultLowStockLevel,
	}
}

var _ portssvc.CurrencySvcFacade = (*currencyService)(nil)

// CreateCurrency implements portssvc.CurrencySvcFacade.
func (s *currencyService) CreateCurrency(ctx context.Context, req dto.CreateCurrencyRequest, operatorID string) (*domain.Currency, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !req.BuyRate.IsPositive() || !req.SellRate.IsPositive() || !req.CurrentRate.IsPositive() {
		return nil, fmt.Errorf("%w: rates must be positive", apperrors.ErrValidation)
	}
	if req.InitialStock.IsNegative() {
		return nil, fmt.Errorf("%w: initialStock cannot be negative", apperrors.ErrValidation)
	}

	threshold := s.defaultLowStockLevel
	if req.LowStockThreshold != nil {
		if req.LowStockThreshold.IsNegative() {
			return nil, fmt.Errorf("%w: lowStockThreshold cannot be negative", apperrors.ErrValidation)
		}
		threshold = *req.LowStockThreshold
	}

	now := time.Now().UTC()
	currency := domain.Currency{
		CurrencyCode:      req.CurrencyCode,
		Name:              req.Name,
		Symbol:            req.Symbol,
		StockAmount:       req.InitialStock,
		BuyRate:           req.BuyRate,
		SellRate:          req.SellRate,
		CurrentRate:       req.CurrentRate,
		LowStockThreshold: threshold,
		IsActive:          true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     operatorID,
			LastUpdatedAt: now,
			LastUpdatedBy: operatorID,
		},
	}

	if err := s.currencyRepo.SaveCurrency(ctx, currency); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, fmt.Errorf("%w: currency %s", apperrors.ErrDuplicate, req.CurrencyCode)
		}
		logger.Error("Failed to save currency", slog.String("error", err.Error()), slog.String("currency_code", req.CurrencyCode))
		return nil, fmt.Errorf("failed to save currency: %w", err)
	}

	logger.Info("Currency registered", slog.String("currency_code", currency.CurrencyCode))
	return &currency, nil
}

// GetCurrencyByCode implements portssvc.CurrencySvcFacade.
func (s *currencyService) GetCurrencyByCode(ctx context.Context, currencyCode string) (*domain.Currency, error) {
	currency, err := s.currencyRepo.FindCurrencyByCode(ctx, currencyCode)
	if err != nil {
		return nil, fmt.Errorf("failed to find currency %s: %w", currencyCode, err)
	}
	return currency, nil
}

// ListCurrencies implements portssvc.CurrencySvcFacade.
func (s *currencyService) ListCurrencies(ctx context.Context) ([]domain.Currency, error) {
	currencies, err := s.currencyRepo.ListCurrencies(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list currencies: %w", err)
	}
	return currencies, nil
}

// UpdateRates implements portssvc.CurrencySvcFacade. A current rate that
// falls outside the buy/sell band raises a rate_threshold alert, since the
// shop would then be quoting against the market.
func (s *currencyService) UpdateRates(ctx context.Context, currencyCode string, req dto.UpdateRatesRequest, operatorID string) (*domain.Currency, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !req.BuyRate.IsPositive() || !req.SellRate.IsPositive() || !req.CurrentRate.IsPositive() {
		return nil, fmt.Errorf("%w: rates must be positive", apperrors.ErrValidation)
	}

	updated, err := s.currencyRepo.UpdateRates(ctx, currencyCode, req.BuyRate, req.SellRate, req.CurrentRate, operatorID, time.Now().UTC())
	if err != nil {
		logger.Error("Failed to update rates", slog.String("error", err.Error()), slog.String("currency_code", currencyCode))
		return nil, fmt.Errorf("failed to update rates for %s: %w", currencyCode, err)
	}

	lowBand := decimal.Min(req.BuyRate, req.SellRate)
	highBand := decimal.Max(req.BuyRate, req.SellRate)
	if req.CurrentRate.LessThan(lowBand) || req.CurrentRate.GreaterThan(highBand) {
		s.alerts.Emit(ctx, domain.AlertRateThreshold,
			fmt.Sprintf("Market rate outside band: %s", currencyCode),
			fmt.Sprintf("Current rate %s for %s is outside the buy/sell band [%s, %s]", req.CurrentRate, currencyCode, lowBand, highBand),
			currencyCode, "currency", domain.SeverityWarning)
	}

	logger.Info("Rates updated",
		slog.String("currency_code", currencyCode),
		slog.String("buy_rate", req.BuyRate.String()),
		slog.String("sell_rate", req.SellRate.String()))
	return updated, nil
}

// AdjustStock implements portssvc.CurrencySvcFacade.
func (s *currencyService) AdjustStock(ctx context.Context, currencyCode string, req dto.AdjustStockRequest, operatorID string) (*domain.Currency, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.Delta.IsZero() {
		return nil, fmt.Errorf("%w: delta cannot be zero", apperrors.ErrValidation)
	}

	updated, err := s.currencyRepo.AdjustStock(ctx, currencyCode, req.Delta, operatorID, time.Now().UTC())
	if err != nil {
		logger.Error("Failed to adjust stock", slog.String("error", err.Error()), slog.String("currency_code", currencyCode))
		return nil, fmt.Errorf("failed to adjust stock for %s: %w", currencyCode, err)
	}

	if updated.StockAmount.LessThanOrEqual(updated.LowStockThreshold) {
		severity := domain.SeverityWarning
		if updated.StockAmount.IsZero() {
			severity = domain.SeverityCritical
		}
		s.alerts.Emit(ctx, domain.AlertLowStock,
			fmt.Sprintf("Low stock: %s", currencyCode),
			fmt.Sprintf("Stock for %s is down to %s (threshold %s)", currencyCode, updated.StockAmount, updated.LowStockThreshold),
			currencyCode, "currency", severity)
	}

	logger.Info("Stock adjusted",
		slog.String("currency_code", currencyCode),
		slog.String("delta", req.Delta.String()),
		slog.String("stock_amount", updated.StockAmount.String()),
		slog.String("reason", req.Reason))
	return updated, nil
}
