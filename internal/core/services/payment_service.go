package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/ndolodev/bureau_change_app/internal/apperrors"
	"github.com/ndolodev/bureau_change_app/internal/core/domain"
	portsrepo "github.com/ndolodev/bureau_change_app/internal/core/ports/repositories"
	portssvc "github.com/ndolodev/bureau_change_app/internal/core/ports/services"
	"github.com/ndolodev/bureau_change_app/internal/dto"
	"github.com/ndolodev/bureau_change_app/internal/middleware"
)

var (
	// ErrAlreadySettled is returned when paying a transaction that is
	// already fully paid.
	ErrAlreadySettled = errors.New("transaction is already settled")

	// ErrTransactionVoided is returned when paying a voided transaction.
	ErrTransactionVoided = errors.New("transaction is voided")

	// ErrAmountExceedsRemaining is returned when a payment is larger than
	// the outstanding balance. The wrap message carries the authoritative
	// remaining amount so the caller can correct and retry.
	ErrAmountExceedsRemaining = errors.New("amount exceeds remaining balance")
)

// paymentService applies incremental payments against transactions. The
// business-rule checks run against a fresh read; the repository re-verifies
// them inside the same atomic scope that writes the new balance, so two
// concurrent payments can never together exceed the outstanding amount.
type paymentService struct {
	txRepo portsrepo.TransactionRepositoryFacade
	notify portssvc.NotificationDispatch
}

// NewPaymentService creates a new PaymentSvcFacade.
func NewPaymentService(txRepo portsrepo.TransactionRepositoryFacade, notify portssvc.NotificationDispatch) portssvc.PaymentSvcFacade {
	return &paymentService{txRepo: txRepo, notify: notify}
}

var _ portssvc.PaymentSvcFacade = (*paymentService)(nil)

// RecordPayment implements portssvc.PaymentSvcFacade.
func (s *paymentService) RecordPayment(ctx context.Context, transactionID string, req dto.RecordPaymentRequest, operatorID string) (*dto.RecordPaymentResult, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: amount must be positive", apperrors.ErrValidation)
	}

	txn, err := s.txRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		return nil, fmt.Errorf("failed to find transaction %s: %w", transactionID, err)
	}
	switch txn.Status {
	case domain.TransactionPaid:
		return nil, fmt.Errorf("%w: transaction %s", ErrAlreadySettled, txn.Reference)
	case domain.TransactionVoided:
		return nil, fmt.Errorf("%w: transaction %s", ErrTransactionVoided, txn.Reference)
	}
	if req.Amount.GreaterThan(txn.AmountRemaining) {
		return nil, fmt.Errorf("%w: remaining is %s", ErrAmountExceedsRemaining, txn.AmountRemaining)
	}

	now := time.Now().UTC()
	payment := domain.Payment{
		PaymentID:     uuid.NewString(),
		TransactionID: txn.TransactionID,
		ClientID:      txn.ClientID,
		Amount:        req.Amount,
		CurrencyCode:  req.CurrencyCode,
		Method:        req.Method,
		Notes:         req.Notes,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     operatorID,
			LastUpdatedAt: now,
			LastUpdatedBy: operatorID,
		},
	}

	updated, err := s.txRepo.ApplyPayment(ctx, payment)
	if err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			logger.Warn("Payment lost the race for the transaction balance",
				slog.String("transaction_id", transactionID),
				slog.String("amount", req.Amount.String()))
			return nil, fmt.Errorf("transaction %s changed concurrently: %w", txn.Reference, apperrors.ErrConflict)
		}
		logger.Error("Failed to apply payment", slog.String("error", err.Error()), slog.String("transaction_id", transactionID))
		return nil, fmt.Errorf("failed to apply payment: %w", err)
	}

	s.notify.Notify(ctx, updated.ClientID,
		"Payment received",
		fmt.Sprintf("Payment of %s %s applied to %s; remaining %s", req.Amount, req.CurrencyCode, updated.Reference, updated.AmountRemaining),
		map[string]string{"transactionID": updated.TransactionID, "paymentID": payment.PaymentID})

	logger.Info("Payment applied",
		slog.String("payment_id", payment.PaymentID),
		slog.String("transaction_id", updated.TransactionID),
		slog.String("status", string(updated.Status)),
		slog.String("remaining", updated.AmountRemaining.String()))

	return &dto.RecordPaymentResult{
		Payment:           dto.ToPaymentResponse(&payment),
		TransactionStatus: string(updated.Status),
		AmountRemaining:   updated.AmountRemaining,
	}, nil
}

// ListPayments implements portssvc.PaymentSvcFacade.
func (s *paymentService) ListPayments(ctx context.Context, transactionID string) ([]domain.Payment, error) {
	if _, err := s.txRepo.FindTransactionByID(ctx, transactionID); err != nil {
		return nil, fmt.Errorf("failed to find transaction %s: %w", transactionID, err)
	}
	payments, err := s.txRepo.ListPaymentsByTransactionID(ctx, transactionID)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments for transaction %s: %w", transactionID, err)
	}
	return payments, nil
}
