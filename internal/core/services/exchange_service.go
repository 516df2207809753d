package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ndolodev/bureau_change_app/internal/apperrors"
	"github.com/ndolodev/bureau_change_app/internal/core/domain"
	portsrepo "github.com/ndolodev/bureau_change_app/internal/core/ports/repositories"
	portssvc "github.com/ndolodev/bureau_change_app/internal/core/ports/services"
	"github.com/ndolodev/bureau_change_app/internal/dto"
	"github.com/ndolodev/bureau_change_app/internal/middleware"
	"github.com/ndolodev/bureau_change_app/internal/utils"
)

var (
	// ErrVoidDisabled is returned when transaction voiding is attempted
	// while the feature flag is off.
	ErrVoidDisabled = errors.New("transaction voiding is disabled")

	// ErrTransactionSettled is returned when voiding a transaction that has
	// already been fully paid or voided.
	ErrTransactionSettled = errors.New("transaction can no longer be voided")
)

// exchangeService creates exchange transactions and applies their
// settlement side effects. The financial writes (transaction row, client
// debt, currency stock) go through the repository as one atomic unit;
// alerts and notifications are dispatched only after that unit succeeds.
type exchangeService struct {
	txRepo       portsrepo.TransactionRepositoryFacade
	clientRepo   portsrepo.ClientReader
	rateSource   portssvc.RateSource
	alerts       portssvc.AlertEmitter
	notify       portssvc.NotificationDispatch
	kycThreshold decimal.Decimal
	allowVoid    bool
}

// NewExchangeService creates a new ExchangeSvcFacade. The KYC threshold and
// void flag are injected here rather than read from global configuration.
func NewExchangeService(
	txRepo portsrepo.TransactionRepositoryFacade,
	clientRepo portsrepo.ClientReader,
	rateSource portssvc.RateSource,
	alerts portssvc.AlertEmitter,
	notify portssvc.NotificationDispatch,
	kycThreshold decimal.Decimal,
	allowVoid bool,
) portssvc.ExchangeSvcFacade {
	return &exchangeService{
		txRepo:       txRepo,
		clientRepo:   clientRepo,
		rateSource:   rateSource,
		alerts:       alerts,
		notify:       notify,
		kycThreshold: kycThreshold,
		allowVoid:    allowVoid,
	}
}

var _ portssvc.ExchangeSvcFacade = (*exchangeService)(nil)

// CreateTransaction implements portssvc.ExchangeSvcFacade.
func (s *exchangeService) CreateTransaction(ctx context.Context, req dto.CreateTransactionRequest, operatorID string) (*dto.CreateTransactionResult, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !req.AmountFrom.IsPositive() {
		return nil, fmt.Errorf("%w: amountFrom must be positive", apperrors.ErrValidation)
	}
	if !req.ExchangeRate.IsPositive() {
		return nil, fmt.Errorf("%w: exchangeRate must be positive", apperrors.ErrValidation)
	}

	client, err := s.clientRepo.FindClientByID(ctx, req.ClientID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: client %s", apperrors.ErrNotFound, req.ClientID)
		}
		logger.Error("Failed to fetch client for transaction", slog.String("error", err.Error()), slog.String("client_id", req.ClientID))
		return nil, fmt.Errorf("failed to fetch client: %w", err)
	}

	amountTo := req.AmountFrom.Mul(req.ExchangeRate)

	// KYC gate: the transaction still proceeds, the warning travels with
	// the result and as an alert.
	kycWarning := ""
	if amountTo.GreaterThanOrEqual(s.kycThreshold) && client.KYCStatus != domain.KYCVerified {
		kycWarning = fmt.Sprintf("amount %s meets the KYC threshold %s but client %s is %s", amountTo, s.kycThreshold, client.ClientID, client.KYCStatus)
		logger.Warn("KYC gate triggered", slog.String("client_id", client.ClientID), slog.String("amount_to", amountTo.String()))
	}

	marketRate, profit := s.computeProfit(ctx, req)

	reference, err := utils.NewReference("TXN")
	if err != nil {
		return nil, fmt.Errorf("failed to generate transaction reference: %w", err)
	}

	now := time.Now().UTC()
	txn := domain.ExchangeTransaction{
		TransactionID:   uuid.NewString(),
		Reference:       reference,
		ClientID:        client.ClientID,
		CurrencyFrom:    req.CurrencyFrom,
		CurrencyTo:      req.CurrencyTo,
		AmountFrom:      req.AmountFrom,
		ExchangeRate:    req.ExchangeRate,
		AmountTo:        amountTo,
		AmountPaid:      decimal.Zero,
		AmountRemaining: amountTo,
		Status:          domain.TransactionUnpaid,
		Type:            req.Type,
		MarketRate:      marketRate,
		Profit:          profit,
		Notes:           req.Notes,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     operatorID,
			LastUpdatedAt: now,
			LastUpdatedBy: operatorID,
		},
	}
	if profit != nil {
		txn.ProfitCurrency = req.CurrencyTo
	}

	updatedStock, err := s.txRepo.CreateExchange(ctx, txn, stockDeltasFor(txn))
	if err != nil {
		logger.Error("Failed to persist exchange transaction", slog.String("error", err.Error()), slog.String("reference", reference))
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}

	// Everything below is best-effort: the financial write is committed.
	stockWarning := s.emitStockAlerts(ctx, updatedStock)
	if kycWarning != "" {
		s.alerts.Emit(ctx, domain.AlertCustom,
			"Transaction above KYC threshold",
			kycWarning,
			client.ClientID, "client", domain.SeverityWarning)
	}
	s.notify.Notify(ctx, client.ClientID,
		"Exchange recorded",
		fmt.Sprintf("Transaction %s: %s %s -> %s %s", reference, req.AmountFrom, req.CurrencyFrom, amountTo, req.CurrencyTo),
		map[string]string{"transactionID": txn.TransactionID, "reference": reference})

	logger.Info("Transaction created",
		slog.String("transaction_id", txn.TransactionID),
		slog.String("reference", reference),
		slog.String("amount_to", amountTo.String()))

	return &dto.CreateTransactionResult{
		Transaction:  dto.ToTransactionResponse(&txn),
		KYCWarning:   kycWarning,
		StockWarning: stockWarning,
	}, nil
}

// computeProfit looks up market rates for both legs and computes the
// spread. Unknown currencies are a valid answer: the transaction proceeds
// with null profit fields.
func (s *exchangeService) computeProfit(ctx context.Context, req dto.CreateTransactionRequest) (marketRate, profit *decimal.Decimal) {
	logger := middleware.GetLoggerFromCtx(ctx)

	fromQuote, err := s.rateSource.CurrentRates(ctx, req.CurrencyFrom)
	if err != nil {
		logger.Warn("Rate lookup failed, skipping profit computation", slog.String("currency", req.CurrencyFrom), slog.String("error", err.Error()))
		return nil, nil
	}
	if fromQuote == nil {
		return nil, nil
	}
	toQuote, err := s.rateSource.CurrentRates(ctx, req.CurrencyTo)
	if err != nil {
		logger.Warn("Rate lookup failed, skipping profit computation", slog.String("currency", req.CurrencyTo), slog.String("error", err.Error()))
		return nil, nil
	}
	if toQuote == nil {
		return nil, nil
	}

	rate, p := domain.SpreadProfit(req.Type, req.AmountFrom, req.ExchangeRate, *fromQuote, *toQuote)
	return &rate, &p
}

// stockDeltasFor maps an exchange onto till movements: a sell hands
// currencyFrom to the client and takes currencyTo in, a buy is the inverse,
// a transfer moves no stock.
func stockDeltasFor(txn domain.ExchangeTransaction) map[string]decimal.Decimal {
	deltas := make(map[string]decimal.Decimal, 2)
	switch txn.Type {
	case domain.TransactionSell:
		deltas[txn.CurrencyFrom] = txn.AmountFrom.Neg()
		deltas[txn.CurrencyTo] = txn.AmountTo
	case domain.TransactionBuy:
		deltas[txn.CurrencyFrom] = txn.AmountFrom
		deltas[txn.CurrencyTo] = txn.AmountTo.Neg()
	}
	return deltas
}

// emitStockAlerts raises low_stock alerts for currencies at or under their
// threshold and returns a warning string for the operation result.
func (s *exchangeService) emitStockAlerts(ctx context.Context, currencies map[string]domain.Currency) string {
	warning := ""
	for code, currency := range currencies {
		if currency.StockAmount.GreaterThan(currency.LowStockThreshold) {
			continue
		}
		severity := domain.SeverityWarning
		if currency.StockAmount.IsZero() {
			severity = domain.SeverityCritical
		}
		s.alerts.Emit(ctx, domain.AlertLowStock,
			fmt.Sprintf("Low stock: %s", code),
			fmt.Sprintf("Stock for %s is down to %s (threshold %s)", code, currency.StockAmount, currency.LowStockThreshold),
			code, "currency", severity)
		if warning == "" {
			warning = fmt.Sprintf("stock for %s is down to %s", code, currency.StockAmount)
		}
	}
	return warning
}

// GetTransaction implements portssvc.ExchangeSvcFacade.
func (s *exchangeService) GetTransaction(ctx context.Context, transactionID string) (*domain.ExchangeTransaction, []domain.Payment, error) {
	txn, err := s.txRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to find transaction %s: %w", transactionID, err)
	}
	payments, err := s.txRepo.ListPaymentsByTransactionID(ctx, transactionID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list payments for transaction %s: %w", transactionID, err)
	}
	return txn, payments, nil
}

// ListTransactions implements portssvc.ExchangeSvcFacade.
func (s *exchangeService) ListTransactions(ctx context.Context, filter portsrepo.ListTransactionsFilter) ([]domain.ExchangeTransaction, error) {
	if filter.Limit <= 0 {
		filter.Limit = 20
	}
	txns, err := s.txRepo.ListTransactions(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	return txns, nil
}

// VoidTransaction implements portssvc.ExchangeSvcFacade.
func (s *exchangeService) VoidTransaction(ctx context.Context, transactionID string, operatorID string) (*domain.ExchangeTransaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !s.allowVoid {
		return nil, ErrVoidDisabled
	}

	txn, err := s.txRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		return nil, fmt.Errorf("failed to find transaction %s: %w", transactionID, err)
	}
	if txn.Status == domain.TransactionPaid || txn.Status == domain.TransactionVoided {
		return nil, fmt.Errorf("%w: status is %s", ErrTransactionSettled, txn.Status)
	}

	// Reverse the till movement made at creation.
	reversed := make(map[string]decimal.Decimal, 2)
	for code, delta := range stockDeltasFor(*txn) {
		reversed[code] = delta.Neg()
	}

	voided, err := s.txRepo.VoidExchange(ctx, transactionID, reversed, operatorID, time.Now().UTC())
	if err != nil {
		logger.Error("Failed to void transaction", slog.String("error", err.Error()), slog.String("transaction_id", transactionID))
		return nil, fmt.Errorf("failed to void transaction: %w", err)
	}

	logger.Info("Transaction voided", slog.String("transaction_id", transactionID), slog.String("reference", voided.Reference))
	return voided, nil
}
