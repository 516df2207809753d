package repositories

import (
	"context"
	"time"

	"github.com/ndolodev/bureau_change_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ListTransactionsFilter narrows ListTransactions results.
type ListTransactionsFilter struct {
	ClientID string
	Status   domain.TransactionStatus
	Limit    int
	Offset   int
}

// TransactionReader defines read operations for exchange transactions and
// their payments.
type TransactionReader interface {
	// FindTransactionByID retrieves a transaction by ID.
	FindTransactionByID(ctx context.Context, transactionID string) (*domain.ExchangeTransaction, error)

	// ListTransactions retrieves transactions matching the filter, newest first.
	ListTransactions(ctx context.Context, filter ListTransactionsFilter) ([]domain.ExchangeTransaction, error)

	// ListPaymentsByTransactionID retrieves the payment ledger for a
	// transaction in application order.
	ListPaymentsByTransactionID(ctx context.Context, transactionID string) ([]domain.Payment, error)
}

// TransactionWriter defines the atomic settlement writes. Each method is a
// single store transaction; partial effects are never visible.
type TransactionWriter interface {
	// CreateExchange inserts the transaction row, increments the client's
	// totalDebt by the transaction's amountTo, and applies the given stock
	// deltas (floored at zero). It returns the post-delta currency rows,
	// keyed by code, so the caller can evaluate low-stock thresholds.
	// Deltas for unknown currency codes are skipped, not fatal.
	CreateExchange(ctx context.Context, txn domain.ExchangeTransaction, stockDeltas map[string]decimal.Decimal) (map[string]domain.Currency, error)

	// ApplyPayment inserts the payment, moves the transaction's
	// amountPaid/amountRemaining/status under a row lock with a
	// remaining >= amount guard on the write itself, and mirrors the delta
	// onto the client. PaidAt is set when the write completes settlement.
	// Returns apperrors.ErrConflict when a concurrent writer invalidated
	// the caller's read.
	ApplyPayment(ctx context.Context, payment domain.Payment) (*domain.ExchangeTransaction, error)

	// VoidExchange marks the transaction voided, removes its remaining
	// amount from the client's debt, and reverses the given stock deltas.
	// Only unpaid or partial transactions can be voided.
	VoidExchange(ctx context.Context, transactionID string, stockDeltas map[string]decimal.Decimal, updatedBy string, updatedAt time.Time) (*domain.ExchangeTransaction, error)
}

// TransactionRepositoryFacade combines the transaction repository interfaces.
type TransactionRepositoryFacade interface {
	TransactionReader
	TransactionWriter
}
