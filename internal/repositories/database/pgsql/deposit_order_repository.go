package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/ndolodev/bureau_change_app/internal/apperrors"
	"github.com/ndolodev/bureau_change_app/internal/core/domain"
	portsrepo "github.com/ndolodev/bureau_change_app/internal/core/ports/repositories"
)

const orderColumns = `order_id, reference, client_id, client_name, total_amount, received_amount, remaining_amount, currency_code, status, notes, created_at, created_by, last_updated_at, last_updated_by`

const depositColumns = `deposit_id, code, order_id, client_name, amount, currency_code, status, receipt_ref, notes, resolved_at, created_at, created_by, last_updated_at, last_updated_by`

// PgxDepositOrderRepository owns deposit orders and their deposits. Order
// totals are recomputed by folding over confirmed deposits inside the same
// database transaction that flips a deposit's state; they are never
// incremented in place.
type PgxDepositOrderRepository struct {
	BaseRepository
}

// newPgxDepositOrderRepository creates a new repository for deposit orders.
func newPgxDepositOrderRepository(pool *pgxpool.Pool) portsrepo.DepositOrderRepositoryFacade {
	return &PgxDepositOrderRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.DepositOrderRepositoryFacade = (*PgxDepositOrderRepository)(nil)

func scanOrder(row pgx.Row) (domain.DepositOrder, error) {
	var o domain.DepositOrder
	err := row.Scan(
		&o.OrderID,
		&o.Reference,
		&o.ClientID,
		&o.ClientName,
		&o.TotalAmount,
		&o.ReceivedAmount,
		&o.RemainingAmount,
		&o.CurrencyCode,
		&o.Status,
		&o.Notes,
		&o.CreatedAt,
		&o.CreatedBy,
		&o.LastUpdatedAt,
		&o.LastUpdatedBy,
	)
	return o, err
}

func scanDeposit(row pgx.Row) (domain.Deposit, error) {
	var d domain.Deposit
	err := row.Scan(
		&d.DepositID,
		&d.Code,
		&d.OrderID,
		&d.ClientName,
		&d.Amount,
		&d.CurrencyCode,
		&d.Status,
		&d.ReceiptRef,
		&d.Notes,
		&d.ResolvedAt,
		&d.CreatedAt,
		&d.CreatedBy,
		&d.LastUpdatedAt,
		&d.LastUpdatedBy,
	)
	return d, err
}

// SaveOrder persists a new deposit order.
func (r *PgxDepositOrderRepository) SaveOrder(ctx context.Context, order domain.DepositOrder) error {
	query := `
		INSERT INTO deposit_orders (` + orderColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
	`
	_, err := r.Pool.Exec(ctx, query,
		order.OrderID,
		order.Reference,
		order.ClientID,
		order.ClientName,
		order.TotalAmount,
		order.ReceivedAmount,
		order.RemainingAmount,
		order.CurrencyCode,
		order.Status,
		order.Notes,
		order.CreatedAt,
		order.CreatedBy,
		order.LastUpdatedAt,
		order.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save order %s: %w", order.OrderID, err)
	}
	return nil
}

// FindOrderByID retrieves an order by ID.
func (r *PgxDepositOrderRepository) FindOrderByID(ctx context.Context, orderID string) (*domain.DepositOrder, error) {
	query := `SELECT ` + orderColumns + ` FROM deposit_orders WHERE order_id = $1;`
	order, err := scanOrder(r.Pool.QueryRow(ctx, query, orderID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find order %s: %w", orderID, err)
	}
	return &order, nil
}

// ListOrders retrieves orders matching the filter, newest first.
func (r *PgxDepositOrderRepository) ListOrders(ctx context.Context, filter portsrepo.ListOrdersFilter) ([]domain.DepositOrder, error) {
	query := `SELECT ` + orderColumns + ` FROM deposit_orders WHERE 1=1`
	args := []any{}
	argPos := 1
	if filter.Status != "" {
		query += fmt.Sprintf(" AND status = $%d", argPos)
		args = append(args, filter.Status)
		argPos++
	}
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d;", argPos, argPos+1)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}
	defer rows.Close()

	orders, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.DepositOrder, error) {
		return scanOrder(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan orders: %w", err)
	}
	return orders, nil
}

// FindDepositByID retrieves a deposit by ID.
func (r *PgxDepositOrderRepository) FindDepositByID(ctx context.Context, depositID string) (*domain.Deposit, error) {
	query := `SELECT ` + depositColumns + ` FROM deposits WHERE deposit_id = $1;`
	deposit, err := scanDeposit(r.Pool.QueryRow(ctx, query, depositID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find deposit %s: %w", depositID, err)
	}
	return &deposit, nil
}

// ListDepositsByOrderID retrieves all deposits attached to an order.
func (r *PgxDepositOrderRepository) ListDepositsByOrderID(ctx context.Context, orderID string) ([]domain.Deposit, error) {
	query := `SELECT ` + depositColumns + ` FROM deposits WHERE order_id = $1 ORDER BY created_at ASC;`
	rows, err := r.Pool.Query(ctx, query, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to query deposits: %w", err)
	}
	defer rows.Close()

	deposits, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Deposit, error) {
		return scanDeposit(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan deposits: %w", err)
	}
	return deposits, nil
}

// AddDeposit inserts a pending deposit. When an order is attached, the order
// row is locked and the open/remaining checks re-run under that lock; a
// failed re-check rolls back with ErrConflict. Order totals do not move here.
func (r *PgxDepositOrderRepository) AddDeposit(ctx context.Context, deposit domain.Deposit) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if deposit.OrderID != nil {
		lockQuery := `SELECT ` + orderColumns + ` FROM deposit_orders WHERE order_id = $1 FOR UPDATE;`
		order, err := scanOrder(tx.QueryRow(ctx, lockQuery, *deposit.OrderID))
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return apperrors.ErrNotFound
			}
			return fmt.Errorf("failed to lock order %s: %w", *deposit.OrderID, err)
		}
		if order.IsClosed() {
			return fmt.Errorf("order %s is %s: %w", order.Reference, order.Status, apperrors.ErrConflict)
		}
		if deposit.Amount.GreaterThan(order.RemainingAmount) {
			return fmt.Errorf("deposit exceeds remaining %s: %w", order.RemainingAmount, apperrors.ErrConflict)
		}
	}

	insertQuery := `
		INSERT INTO deposits (` + depositColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
	`
	_, err = tx.Exec(ctx, insertQuery,
		deposit.DepositID,
		deposit.Code,
		deposit.OrderID,
		deposit.ClientName,
		deposit.Amount,
		deposit.CurrencyCode,
		deposit.Status,
		deposit.ReceiptRef,
		deposit.Notes,
		deposit.ResolvedAt,
		deposit.CreatedAt,
		deposit.CreatedBy,
		deposit.LastUpdatedAt,
		deposit.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to insert deposit %s: %w", deposit.DepositID, err)
	}

	return r.Commit(ctx, tx)
}

// MarkReceiptUploaded moves a pending deposit to receipt_uploaded. The
// status guard sits on the UPDATE; zero rows means a concurrent writer got
// there first.
func (r *PgxDepositOrderRepository) MarkReceiptUploaded(ctx context.Context, depositID, receiptRef string, updatedBy string, updatedAt time.Time) (*domain.Deposit, error) {
	query := `
		UPDATE deposits
		SET status = $2, receipt_ref = $3, last_updated_by = $4, last_updated_at = $5
		WHERE deposit_id = $1 AND status = $6
		RETURNING ` + depositColumns + `;
	`
	deposit, err := scanDeposit(r.Pool.QueryRow(ctx, query,
		depositID, domain.DepositReceiptUploaded, receiptRef, updatedBy, updatedAt, domain.DepositPending))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("deposit %s is not pending: %w", depositID, apperrors.ErrConflict)
		}
		return nil, fmt.Errorf("failed to mark receipt for deposit %s: %w", depositID, err)
	}
	return &deposit, nil
}

// FinalizeDeposit flips a deposit to confirmed or rejected and, when an
// order is attached, recomputes the order from its confirmed deposits. The
// fold makes the recalc idempotent: replaying it yields the same totals.
func (r *PgxDepositOrderRepository) FinalizeDeposit(ctx context.Context, depositID string, status domain.DepositStatus, updatedBy string, updatedAt time.Time) (*domain.Deposit, *domain.DepositOrder, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, nil, err
	}
	defer r.Rollback(ctx, tx)

	flipQuery := `
		UPDATE deposits
		SET status = $2, resolved_at = $3, last_updated_by = $4, last_updated_at = $5
		WHERE deposit_id = $1 AND status IN ('pending', 'receipt_uploaded')
		RETURNING ` + depositColumns + `;
	`
	deposit, err := scanDeposit(tx.QueryRow(ctx, flipQuery, depositID, status, updatedAt, updatedBy, updatedAt))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, fmt.Errorf("deposit %s is already finalized: %w", depositID, apperrors.ErrConflict)
		}
		return nil, nil, fmt.Errorf("failed to finalize deposit %s: %w", depositID, err)
	}

	var order *domain.DepositOrder
	if deposit.OrderID != nil {
		order, err = r.recalcOrderInTx(ctx, tx, *deposit.OrderID, updatedBy, updatedAt)
		if err != nil {
			return nil, nil, err
		}
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, nil, err
	}
	return &deposit, order, nil
}

// recalcOrderInTx locks the order, folds its confirmed deposits and writes
// the derived totals and status. Cancelled orders keep their status but
// still record the received amount.
func (r *PgxDepositOrderRepository) recalcOrderInTx(ctx context.Context, tx pgx.Tx, orderID string, updatedBy string, updatedAt time.Time) (*domain.DepositOrder, error) {
	lockQuery := `SELECT ` + orderColumns + ` FROM deposit_orders WHERE order_id = $1 FOR UPDATE;`
	order, err := scanOrder(tx.QueryRow(ctx, lockQuery, orderID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to lock order %s: %w", orderID, err)
	}

	var received decimal.Decimal
	sumQuery := `SELECT COALESCE(SUM(amount), 0) FROM deposits WHERE order_id = $1 AND status = 'confirmed';`
	if err := tx.QueryRow(ctx, sumQuery, orderID).Scan(&received); err != nil {
		return nil, fmt.Errorf("failed to sum confirmed deposits for order %s: %w", orderID, err)
	}

	remaining := order.TotalAmount.Sub(received)
	if remaining.IsNegative() {
		remaining = decimal.Zero
	}
	newStatus := order.Status
	if order.Status != domain.OrderCancelled {
		newStatus = domain.DeriveOrderStatus(received, order.TotalAmount)
	}

	writeQuery := `
		UPDATE deposit_orders
		SET received_amount = $2, remaining_amount = $3, status = $4, last_updated_by = $5, last_updated_at = $6
		WHERE order_id = $1
		RETURNING ` + orderColumns + `;
	`
	updated, err := scanOrder(tx.QueryRow(ctx, writeQuery, orderID, received, remaining, newStatus, updatedBy, updatedAt))
	if err != nil {
		return nil, fmt.Errorf("failed to write recalculated order %s: %w", orderID, err)
	}
	return &updated, nil
}

// CancelOrder marks a pending/partial order cancelled. Zero rows affected
// means the order was already closed.
func (r *PgxDepositOrderRepository) CancelOrder(ctx context.Context, orderID string, updatedBy string, updatedAt time.Time) (*domain.DepositOrder, error) {
	query := `
		UPDATE deposit_orders
		SET status = $2, last_updated_by = $3, last_updated_at = $4
		WHERE order_id = $1 AND status IN ('pending', 'partial')
		RETURNING ` + orderColumns + `;
	`
	order, err := scanOrder(r.Pool.QueryRow(ctx, query, orderID, domain.OrderCancelled, updatedBy, updatedAt))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("order %s is already closed: %w", orderID, apperrors.ErrConflict)
		}
		return nil, fmt.Errorf("failed to cancel order %s: %w", orderID, err)
	}
	return &order, nil
}
