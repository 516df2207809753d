package repositories

import (
	"context"
	"time"

	"github.com/ndolodev/bureau_change_app/internal/core/domain"
)

// ListOrdersFilter narrows ListOrders results.
type ListOrdersFilter struct {
	Status domain.OrderStatus
	Limit  int
	Offset int
}

// DepositOrderReader defines read operations for deposit orders and deposits.
type DepositOrderReader interface {
	// FindOrderByID retrieves an order by ID.
	FindOrderByID(ctx context.Context, orderID string) (*domain.DepositOrder, error)

	// ListOrders retrieves orders matching the filter, newest first.
	ListOrders(ctx context.Context, filter ListOrdersFilter) ([]domain.DepositOrder, error)

	// FindDepositByID retrieves a deposit by ID.
	FindDepositByID(ctx context.Context, depositID string) (*domain.Deposit, error)

	// ListDepositsByOrderID retrieves all deposits attached to an order.
	ListDepositsByOrderID(ctx context.Context, orderID string) ([]domain.Deposit, error)
}

// DepositOrderWriter defines the atomic order/deposit writes.
type DepositOrderWriter interface {
	// SaveOrder persists a new deposit order.
	SaveOrder(ctx context.Context, order domain.DepositOrder) error

	// AddDeposit inserts a pending deposit. When the deposit carries an
	// order ID the order row is locked and re-checked (open, amount within
	// remaining) inside the same store transaction; order totals are not
	// touched. Returns apperrors.ErrConflict when the locked re-check fails
	// after the caller's read passed.
	AddDeposit(ctx context.Context, deposit domain.Deposit) error

	// MarkReceiptUploaded moves a pending deposit to receipt_uploaded and
	// records the stored file reference.
	MarkReceiptUploaded(ctx context.Context, depositID, receiptRef string, updatedBy string, updatedAt time.Time) (*domain.Deposit, error)

	// FinalizeDeposit flips a pending/receipt_uploaded deposit to the given
	// terminal status and, when an order is attached and not cancelled,
	// recomputes the order's received/remaining/status by folding over its
	// confirmed deposits, all inside one store transaction. The returned
	// order is nil for standalone deposits.
	FinalizeDeposit(ctx context.Context, depositID string, status domain.DepositStatus, updatedBy string, updatedAt time.Time) (*domain.Deposit, *domain.DepositOrder, error)

	// CancelOrder marks a pending/partial order cancelled. The write itself
	// carries the status guard; zero rows affected means the order was
	// already closed.
	CancelOrder(ctx context.Context, orderID string, updatedBy string, updatedAt time.Time) (*domain.DepositOrder, error)
}

// DepositOrderRepositoryFacade combines the deposit-order repository interfaces.
type DepositOrderRepositoryFacade interface {
	DepositOrderReader
	DepositOrderWriter
}
