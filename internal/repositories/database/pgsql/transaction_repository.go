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

const transactionColumns = `transaction_id, reference, client_id, currency_from, currency_to, amount_from, exchange_rate, amount_to, amount_paid, amount_remaining, status, type, market_rate, profit, profit_currency, notes, paid_at, created_at, created_by, last_updated_at, last_updated_by`

const paymentColumns = `payment_id, transaction_id, client_id, amount, currency_code, method, notes, created_at, created_by, last_updated_at, last_updated_by`

// PgxTransactionRepository owns the settlement ledger. Every write method is
// one database transaction: the transaction row, the client aggregates and
// the currency stock either all move or none do.
type PgxTransactionRepository struct {
	BaseRepository
}

// newPgxTransactionRepository creates a new repository for exchange
// transactions and their payments.
func newPgxTransactionRepository(pool *pgxpool.Pool) portsrepo.TransactionRepositoryFacade {
	return &PgxTransactionRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.TransactionRepositoryFacade = (*PgxTransactionRepository)(nil)

func scanTransaction(row pgx.Row) (domain.ExchangeTransaction, error) {
	var t domain.ExchangeTransaction
	err := row.Scan(
		&t.TransactionID,
		&t.Reference,
		&t.ClientID,
		&t.CurrencyFrom,
		&t.CurrencyTo,
		&t.AmountFrom,
		&t.ExchangeRate,
		&t.AmountTo,
		&t.AmountPaid,
		&t.AmountRemaining,
		&t.Status,
		&t.Type,
		&t.MarketRate,
		&t.Profit,
		&t.ProfitCurrency,
		&t.Notes,
		&t.PaidAt,
		&t.CreatedAt,
		&t.CreatedBy,
		&t.LastUpdatedAt,
		&t.LastUpdatedBy,
	)
	return t, err
}

func scanPayment(row pgx.Row) (domain.Payment, error) {
	var p domain.Payment
	err := row.Scan(
		&p.PaymentID,
		&p.TransactionID,
		&p.ClientID,
		&p.Amount,
		&p.CurrencyCode,
		&p.Method,
		&p.Notes,
		&p.CreatedAt,
		&p.CreatedBy,
		&p.LastUpdatedAt,
		&p.LastUpdatedBy,
	)
	return p, err
}

// FindTransactionByID retrieves a transaction by ID.
func (r *PgxTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.ExchangeTransaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM exchange_transactions WHERE transaction_id = $1;`
	txn, err := scanTransaction(r.Pool.QueryRow(ctx, query, transactionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find transaction %s: %w", transactionID, err)
	}
	return &txn, nil
}

// ListTransactions retrieves transactions matching the filter, newest first.
func (r *PgxTransactionRepository) ListTransactions(ctx context.Context, filter portsrepo.ListTransactionsFilter) ([]domain.ExchangeTransaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM exchange_transactions WHERE 1=1`
	args := []any{}
	argPos := 1
	if filter.ClientID != "" {
		query += fmt.Sprintf(" AND client_id = $%d", argPos)
		args = append(args, filter.ClientID)
		argPos++
	}
	if filter.Status != "" {
		query += fmt.Sprintf(" AND status = $%d", argPos)
		args = append(args, filter.Status)
		argPos++
	}
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d;", argPos, argPos+1)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer rows.Close()

	txns, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.ExchangeTransaction, error) {
		return scanTransaction(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan transactions: %w", err)
	}
	return txns, nil
}

// ListPaymentsByTransactionID retrieves the payment ledger for a transaction
// in application order.
func (r *PgxTransactionRepository) ListPaymentsByTransactionID(ctx context.Context, transactionID string) ([]domain.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE transaction_id = $1 ORDER BY created_at ASC;`
	rows, err := r.Pool.Query(ctx, query, transactionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query payments: %w", err)
	}
	defer rows.Close()

	payments, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Payment, error) {
		return scanPayment(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan payments: %w", err)
	}
	return payments, nil
}

// CreateExchange inserts the transaction, raises the client's debt by
// amountTo and applies the stock deltas, all in one database transaction.
// Stock deltas for unregistered currencies are skipped rather than aborting
// the exchange.
func (r *PgxTransactionRepository) CreateExchange(ctx context.Context, txn domain.ExchangeTransaction, stockDeltas map[string]decimal.Decimal) (map[string]domain.Currency, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	insertQuery := `
		INSERT INTO exchange_transactions (` + transactionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21);
	`
	_, err = tx.Exec(ctx, insertQuery,
		txn.TransactionID,
		txn.Reference,
		txn.ClientID,
		txn.CurrencyFrom,
		txn.CurrencyTo,
		txn.AmountFrom,
		txn.ExchangeRate,
		txn.AmountTo,
		txn.AmountPaid,
		txn.AmountRemaining,
		txn.Status,
		txn.Type,
		txn.MarketRate,
		txn.Profit,
		txn.ProfitCurrency,
		txn.Notes,
		txn.PaidAt,
		txn.CreatedAt,
		txn.CreatedBy,
		txn.LastUpdatedAt,
		txn.LastUpdatedBy,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert transaction %s: %w", txn.TransactionID, err)
	}

	debtQuery := `
		UPDATE clients
		SET total_debt = total_debt + $2, last_updated_by = $3, last_updated_at = $4
		WHERE client_id = $1;
	`
	tag, err := tx.Exec(ctx, debtQuery, txn.ClientID, txn.AmountTo, txn.CreatedBy, txn.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to update client debt for %s: %w", txn.ClientID, err)
	}
	if tag.RowsAffected() == 0 {
		return nil, fmt.Errorf("client %s disappeared during exchange: %w", txn.ClientID, apperrors.ErrConflict)
	}

	updatedStock, err := applyStockDeltasInTx(ctx, tx, stockDeltas, txn.CreatedBy, txn.CreatedAt)
	if err != nil {
		return nil, err
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return updatedStock, nil
}

// applyStockDeltasInTx moves currency stock inside an open transaction. The
// zero floor lives in the UPDATE itself. Unknown currency codes yield no row
// and are skipped.
func applyStockDeltasInTx(ctx context.Context, tx pgx.Tx, stockDeltas map[string]decimal.Decimal, updatedBy string, updatedAt time.Time) (map[string]domain.Currency, error) {
	query := `
		UPDATE currencies
		SET stock_amount = GREATEST(stock_amount + $2, 0), last_updated_by = $3, last_updated_at = $4
		WHERE currency_code = $1
		RETURNING ` + currencyColumns + `;
	`
	updated := make(map[string]domain.Currency, len(stockDeltas))
	for code, delta := range stockDeltas {
		if delta.IsZero() {
			continue
		}
		currency, err := scanCurrency(tx.QueryRow(ctx, query, code, delta, updatedBy, updatedAt))
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				continue
			}
			return nil, fmt.Errorf("failed to apply stock delta for %s: %w", code, err)
		}
		updated[code] = currency
	}
	return updated, nil
}

// ApplyPayment inserts the payment row and moves the transaction's balance
// under a row lock. The balance UPDATE re-asserts amount_remaining >= amount
// so a stale caller cannot overdraw; when that guard fails after the lock,
// the whole unit rolls back with ErrConflict.
func (r *PgxTransactionRepository) ApplyPayment(ctx context.Context, payment domain.Payment) (*domain.ExchangeTransaction, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	lockQuery := `SELECT ` + transactionColumns + ` FROM exchange_transactions WHERE transaction_id = $1 FOR UPDATE;`
	current, err := scanTransaction(tx.QueryRow(ctx, lockQuery, payment.TransactionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to lock transaction %s: %w", payment.TransactionID, err)
	}
	if current.Status == domain.TransactionPaid || current.Status == domain.TransactionVoided {
		return nil, fmt.Errorf("transaction %s is %s: %w", current.Reference, current.Status, apperrors.ErrConflict)
	}
	if payment.Amount.GreaterThan(current.AmountRemaining) {
		return nil, fmt.Errorf("payment exceeds remaining %s: %w", current.AmountRemaining, apperrors.ErrConflict)
	}

	insertQuery := `
		INSERT INTO payments (` + paymentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err = tx.Exec(ctx, insertQuery,
		payment.PaymentID,
		payment.TransactionID,
		payment.ClientID,
		payment.Amount,
		payment.CurrencyCode,
		payment.Method,
		payment.Notes,
		payment.CreatedAt,
		payment.CreatedBy,
		payment.LastUpdatedAt,
		payment.LastUpdatedBy,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert payment %s: %w", payment.PaymentID, err)
	}

	newPaid := current.AmountPaid.Add(payment.Amount)
	newStatus := domain.DeriveTransactionStatus(newPaid, current.AmountTo)
	var paidAt *time.Time
	if current.PaidAt != nil {
		paidAt = current.PaidAt
	} else if newStatus == domain.TransactionPaid {
		t := payment.CreatedAt
		paidAt = &t
	}

	balanceQuery := `
		UPDATE exchange_transactions
		SET amount_paid = amount_paid + $2,
		    amount_remaining = amount_remaining - $2,
		    status = $3,
		    paid_at = $4,
		    last_updated_by = $5,
		    last_updated_at = $6
		WHERE transaction_id = $1 AND amount_remaining >= $2
		RETURNING ` + transactionColumns + `;
	`
	updated, err := scanTransaction(tx.QueryRow(ctx, balanceQuery,
		payment.TransactionID,
		payment.Amount,
		newStatus,
		paidAt,
		payment.CreatedBy,
		payment.CreatedAt,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("balance guard rejected payment %s: %w", payment.PaymentID, apperrors.ErrConflict)
		}
		return nil, fmt.Errorf("failed to update transaction balance: %w", err)
	}

	clientQuery := `
		UPDATE clients
		SET total_debt = GREATEST(total_debt - $2, 0),
		    total_paid = total_paid + $2,
		    last_updated_by = $3,
		    last_updated_at = $4
		WHERE client_id = $1;
	`
	if _, err := tx.Exec(ctx, clientQuery, payment.ClientID, payment.Amount, payment.CreatedBy, payment.CreatedAt); err != nil {
		return nil, fmt.Errorf("failed to update client aggregates for %s: %w", payment.ClientID, err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return &updated, nil
}

// VoidExchange marks the transaction voided, removes its outstanding amount
// from the client's debt and reverses the stock deltas, all in one database
// transaction. The status guard sits on the UPDATE itself.
func (r *PgxTransactionRepository) VoidExchange(ctx context.Context, transactionID string, stockDeltas map[string]decimal.Decimal, updatedBy string, updatedAt time.Time) (*domain.ExchangeTransaction, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	voidQuery := `
		UPDATE exchange_transactions
		SET status = $2, last_updated_by = $3, last_updated_at = $4
		WHERE transaction_id = $1 AND status IN ('unpaid', 'partial')
		RETURNING ` + transactionColumns + `;
	`
	voided, err := scanTransaction(tx.QueryRow(ctx, voidQuery, transactionID, domain.TransactionVoided, updatedBy, updatedAt))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("transaction %s is not voidable: %w", transactionID, apperrors.ErrConflict)
		}
		return nil, fmt.Errorf("failed to void transaction %s: %w", transactionID, err)
	}

	debtQuery := `
		UPDATE clients
		SET total_debt = GREATEST(total_debt - $2, 0), last_updated_by = $3, last_updated_at = $4
		WHERE client_id = $1;
	`
	if _, err := tx.Exec(ctx, debtQuery, voided.ClientID, voided.AmountRemaining, updatedBy, updatedAt); err != nil {
		return nil, fmt.Errorf("failed to reverse client debt for %s: %w", voided.ClientID, err)
	}

	if _, err := applyStockDeltasInTx(ctx, tx, stockDeltas, updatedBy, updatedAt); err != nil {
		return nil, err
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return &voided, nil
}
