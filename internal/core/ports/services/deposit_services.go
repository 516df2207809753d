package services

import (
	"context"

	"github.com/ndolodev/bureau_change_app/internal/core/domain"
	portsrepo "github.com/ndolodev/bureau_change_app/internal/core/ports/repositories"
	"github.com/ndolodev/bureau_change_app/internal/dto"
)

// DepositOrderSvcFacade manages advance-payment plans and their deposits.
type DepositOrderSvcFacade interface {
	// CreateOrder opens a deposit order for a fixed target amount.
	CreateOrder(ctx context.Context, req dto.CreateOrderRequest, operatorID string) (*domain.DepositOrder, error)

	// GetOrder retrieves an order with all its deposits.
	GetOrder(ctx context.Context, orderID string) (*domain.DepositOrder, []domain.Deposit, error)

	// ListOrders retrieves orders matching the filter.
	ListOrders(ctx context.Context, filter portsrepo.ListOrdersFilter) ([]domain.DepositOrder, error)

	// AddOrderPayment records a pending deposit against an open order.
	// Order totals move only when the deposit is later confirmed.
	AddOrderPayment(ctx context.Context, orderID string, req dto.AddOrderPaymentRequest, operatorID string) (*domain.Deposit, error)

	// CreateStandaloneDeposit records an order-less cash-drop deposit.
	CreateStandaloneDeposit(ctx context.Context, req dto.CreateDepositRequest, operatorID string) (*domain.Deposit, error)

	// MarkReceiptUploaded moves a pending deposit to receipt_uploaded.
	MarkReceiptUploaded(ctx context.Context, depositID string, req dto.MarkReceiptRequest, operatorID string) (*domain.Deposit, error)

	// ConfirmDeposit finalizes a deposit as confirmed and recalculates its
	// order when one is attached.
	ConfirmDeposit(ctx context.Context, depositID string, operatorID string) (*domain.Deposit, *domain.DepositOrder, error)

	// RejectDeposit finalizes a deposit as rejected and recalculates its
	// order when one is attached.
	RejectDeposit(ctx context.Context, depositID string, operatorID string) (*domain.Deposit, *domain.DepositOrder, error)

	// CancelOrder marks a pending/partial order cancelled.
	CancelOrder(ctx context.Context, orderID string, operatorID string) (*domain.DepositOrder, error)
}
