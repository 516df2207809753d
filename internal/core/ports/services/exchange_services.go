package services

import (
	"context"

	"github.com/ndolodev/bureau_change_app/internal/core/domain"
	portsrepo "github.com/ndolodev/bureau_change_app/internal/core/ports/repositories"
	"github.com/ndolodev/bureau_change_app/internal/dto"
)

// ExchangeSvcFacade creates exchange transactions and applies their
// settlement side effects as one atomic unit.
type ExchangeSvcFacade interface {
	// CreateTransaction creates the transaction, increments the client's
	// debt, applies the stock deltas, and returns any non-fatal warnings
	// (KYC gate, low stock) alongside the created record.
	CreateTransaction(ctx context.Context, req dto.CreateTransactionRequest, operatorID string) (*dto.CreateTransactionResult, error)

	// GetTransaction retrieves a transaction with its payment ledger.
	GetTransaction(ctx context.Context, transactionID string) (*domain.ExchangeTransaction, []domain.Payment, error)

	// ListTransactions retrieves transactions matching the filter.
	ListTransactions(ctx context.Context, filter portsrepo.ListTransactionsFilter) ([]domain.ExchangeTransaction, error)

	// VoidTransaction reverses an unpaid/partial transaction's remaining
	// debt and stock effect. Gated by configuration; returns
	// ErrVoidDisabled when the feature is off.
	VoidTransaction(ctx context.Context, transactionID string, operatorID string) (*domain.ExchangeTransaction, error)
}

// PaymentSvcFacade applies incremental payments against transactions.
type PaymentSvcFacade interface {
	// RecordPayment applies a payment to a transaction and mirrors the
	// delta onto the client.
	RecordPayment(ctx context.Context, transactionID string, req dto.RecordPaymentRequest, operatorID string) (*dto.RecordPaymentResult, error)

	// ListPayments retrieves the payment ledger for a transaction.
	ListPayments(ctx context.Context, transactionID string) ([]domain.Payment, error)
}
