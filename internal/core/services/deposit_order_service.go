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
	// ErrOrderClosed is returned when adding a payment to, or cancelling, a
	// completed or cancelled order.
	ErrOrderClosed = errors.New("order no longer accepts changes")

	// ErrDepositFinalized is returned when confirming, rejecting or
	// uploading a receipt for a deposit already in a terminal state.
	ErrDepositFinalized = errors.New("deposit is already finalized")
)

// depositOrderService manages advance-payment plans. Order totals are never
// maintained incrementally: every deposit confirmation or rejection
// recomputes received/remaining/status by folding over the order's
// confirmed deposits, inside the same store transaction as the deposit's
// state flip. Repeated or out-of-order finalizations therefore cannot
// double-count.
type depositOrderService struct {
	depositRepo portsrepo.DepositOrderRepositoryFacade
	notify      portssvc.NotificationDispatch
}

// NewDepositOrderService creates a new DepositOrderSvcFacade.
func NewDepositOrderService(depositRepo portsrepo.DepositOrderRepositoryFacade, notify portssvc.NotificationDispatch) portssvc.DepositOrderSvcFacade {
	return &depositOrderService{depositRepo: depositRepo, notify: notify}
}

var _ portssvc.DepositOrderSvcFacade = (*depositOrderService)(nil)

// CreateOrder implements portssvc.DepositOrderSvcFacade.
func (s *depositOrderService) CreateOrder(ctx context.Context, req dto.CreateOrderRequest, operatorID string) (*domain.DepositOrder, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !req.TotalAmount.IsPositive() {
		return nil, fmt.Errorf("%w: totalAmount must be positive", apperrors.ErrValidation)
	}

	reference, err := utils.NewReference("ORD")
	if err != nil {
		return nil, fmt.Errorf("failed to generate order reference: %w", err)
	}

	now := time.Now().UTC()
	order := domain.DepositOrder{
		OrderID:         uuid.NewString(),
		Reference:       reference,
		ClientID:        req.ClientID,
		ClientName:      req.ClientName,
		TotalAmount:     req.TotalAmount,
		ReceivedAmount:  decimal.Zero,
		RemainingAmount: req.TotalAmount,
		CurrencyCode:    req.CurrencyCode,
		Status:          domain.OrderPending,
		Notes:           req.Notes,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     operatorID,
			LastUpdatedAt: now,
			LastUpdatedBy: operatorID,
		},
	}

	if err := s.depositRepo.SaveOrder(ctx, order); err != nil {
		logger.Error("Failed to save deposit order", slog.String("error", err.Error()), slog.String("reference", reference))
		return nil, fmt.Errorf("failed to save order: %w", err)
	}

	logger.Info("Deposit order created", slog.String("order_id", order.OrderID), slog.String("reference", reference))
	return &order, nil
}

// GetOrder implements portssvc.DepositOrderSvcFacade.
func (s *depositOrderService) GetOrder(ctx context.Context, orderID string) (*domain.DepositOrder, []domain.Deposit, error) {
	order, err := s.depositRepo.FindOrderByID(ctx, orderID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to find order %s: %w", orderID, err)
	}
	deposits, err := s.depositRepo.ListDepositsByOrderID(ctx, orderID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list deposits for order %s: %w", orderID, err)
	}
	return order, deposits, nil
}

// ListOrders implements portssvc.DepositOrderSvcFacade.
func (s *depositOrderService) ListOrders(ctx context.Context, filter portsrepo.ListOrdersFilter) ([]domain.DepositOrder, error) {
	if filter.Limit <= 0 {
		filter.Limit = 20
	}
	orders, err := s.depositRepo.ListOrders(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, nil
}

// AddOrderPayment implements portssvc.DepositOrderSvcFacade.
func (s *depositOrderService) AddOrderPayment(ctx context.Context, orderID string, req dto.AddOrderPaymentRequest, operatorID string) (*domain.Deposit, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: amount must be positive", apperrors.ErrValidation)
	}

	order, err := s.depositRepo.FindOrderByID(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to find order %s: %w", orderID, err)
	}
	if order.IsClosed() {
		return nil, fmt.Errorf("%w: order %s is %s", ErrOrderClosed, order.Reference, order.Status)
	}
	if req.Amount.GreaterThan(order.RemainingAmount) {
		return nil, fmt.Errorf("%w: remaining is %s", ErrAmountExceedsRemaining, order.RemainingAmount)
	}

	deposit, err := s.newDeposit(req.Amount, order.CurrencyCode, order.ClientName, req.Notes, operatorID)
	if err != nil {
		return nil, err
	}
	deposit.OrderID = &order.OrderID

	if err := s.depositRepo.AddDeposit(ctx, *deposit); err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			return nil, fmt.Errorf("order %s changed concurrently: %w", order.Reference, apperrors.ErrConflict)
		}
		logger.Error("Failed to add deposit", slog.String("error", err.Error()), slog.String("order_id", orderID))
		return nil, fmt.Errorf("failed to add deposit: %w", err)
	}

	logger.Info("Deposit recorded against order",
		slog.String("deposit_id", deposit.DepositID),
		slog.String("order_id", orderID),
		slog.String("amount", req.Amount.String()))
	return deposit, nil
}

// CreateStandaloneDeposit implements portssvc.DepositOrderSvcFacade.
func (s *depositOrderService) CreateStandaloneDeposit(ctx context.Context, req dto.CreateDepositRequest, operatorID string) (*domain.Deposit, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: amount must be positive", apperrors.ErrValidation)
	}

	deposit, err := s.newDeposit(req.Amount, req.CurrencyCode, req.ClientName, req.Notes, operatorID)
	if err != nil {
		return nil, err
	}

	if err := s.depositRepo.AddDeposit(ctx, *deposit); err != nil {
		logger.Error("Failed to save standalone deposit", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save deposit: %w", err)
	}

	logger.Info("Standalone deposit recorded", slog.String("deposit_id", deposit.DepositID))
	return deposit, nil
}

func (s *depositOrderService) newDeposit(amount decimal.Decimal, currencyCode, clientName, notes, operatorID string) (*domain.Deposit, error) {
	code, err := utils.NewReference("DEP")
	if err != nil {
		return nil, fmt.Errorf("failed to generate deposit code: %w", err)
	}
	now := time.Now().UTC()
	return &domain.Deposit{
		DepositID:    uuid.NewString(),
		Code:         code,
		ClientName:   clientName,
		Amount:       amount,
		CurrencyCode: currencyCode,
		Status:       domain.DepositPending,
		Notes:        notes,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     operatorID,
			LastUpdatedAt: now,
			LastUpdatedBy: operatorID,
		},
	}, nil
}

// MarkReceiptUploaded implements portssvc.DepositOrderSvcFacade.
func (s *depositOrderService) MarkReceiptUploaded(ctx context.Context, depositID string, req dto.MarkReceiptRequest, operatorID string) (*domain.Deposit, error) {
	deposit, err := s.depositRepo.FindDepositByID(ctx, depositID)
	if err != nil {
		return nil, fmt.Errorf("failed to find deposit %s: %w", depositID, err)
	}
	if deposit.Status != domain.DepositPending {
		return nil, fmt.Errorf("%w: deposit %s is %s", ErrDepositFinalized, deposit.Code, deposit.Status)
	}

	updated, err := s.depositRepo.MarkReceiptUploaded(ctx, depositID, req.ReceiptRef, operatorID, time.Now().UTC())
	if err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			return nil, fmt.Errorf("deposit %s changed concurrently: %w", deposit.Code, apperrors.ErrConflict)
		}
		return nil, fmt.Errorf("failed to mark receipt uploaded: %w", err)
	}
	return updated, nil
}

// ConfirmDeposit implements portssvc.DepositOrderSvcFacade.
func (s *depositOrderService) ConfirmDeposit(ctx context.Context, depositID string, operatorID string) (*domain.Deposit, *domain.DepositOrder, error) {
	return s.finalizeDeposit(ctx, depositID, domain.DepositConfirmed, operatorID)
}

// RejectDeposit implements portssvc.DepositOrderSvcFacade.
func (s *depositOrderService) RejectDeposit(ctx context.Context, depositID string, operatorID string) (*domain.Deposit, *domain.DepositOrder, error) {
	return s.finalizeDeposit(ctx, depositID, domain.DepositRejected, operatorID)
}

func (s *depositOrderService) finalizeDeposit(ctx context.Context, depositID string, status domain.DepositStatus, operatorID string) (*domain.Deposit, *domain.DepositOrder, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	deposit, err := s.depositRepo.FindDepositByID(ctx, depositID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to find deposit %s: %w", depositID, err)
	}
	if !deposit.CanFinalize() {
		return nil, nil, fmt.Errorf("%w: deposit %s is %s", ErrDepositFinalized, deposit.Code, deposit.Status)
	}

	updated, order, err := s.depositRepo.FinalizeDeposit(ctx, depositID, status, operatorID, time.Now().UTC())
	if err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			return nil, nil, fmt.Errorf("deposit %s changed concurrently: %w", deposit.Code, apperrors.ErrConflict)
		}
		logger.Error("Failed to finalize deposit", slog.String("error", err.Error()), slog.String("deposit_id", depositID), slog.String("target_status", string(status)))
		return nil, nil, fmt.Errorf("failed to finalize deposit: %w", err)
	}

	logger.Info("Deposit finalized",
		slog.String("deposit_id", depositID),
		slog.String("status", string(status)))

	if order != nil && order.Status == domain.OrderCompleted {
		s.notify.Notify(ctx, order.ClientName,
			"Deposit order completed",
			fmt.Sprintf("Order %s reached its target of %s %s", order.Reference, order.TotalAmount, order.CurrencyCode),
			map[string]string{"orderID": order.OrderID})
	}

	return updated, order, nil
}

// CancelOrder implements portssvc.DepositOrderSvcFacade.
func (s *depositOrderService) CancelOrder(ctx context.Context, orderID string, operatorID string) (*domain.DepositOrder, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	order, err := s.depositRepo.FindOrderByID(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to find order %s: %w", orderID, err)
	}
	if order.IsClosed() {
		return nil, fmt.Errorf("%w: order %s is %s", ErrOrderClosed, order.Reference, order.Status)
	}

	cancelled, err := s.depositRepo.CancelOrder(ctx, orderID, operatorID, time.Now().UTC())
	if err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			return nil, fmt.Errorf("order %s changed concurrently: %w", order.Reference, apperrors.ErrConflict)
		}
		logger.Error("Failed to cancel order", slog.String("error", err.Error()), slog.String("order_id", orderID))
		return nil, fmt.Errorf("failed to cancel order: %w", err)
	}

	logger.Info("Order cancelled", slog.String("order_id", orderID), slog.String("reference", cancelled.Reference))
	return cancelled, nil
}
