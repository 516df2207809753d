package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/ndolodev/bureau_change_app/internal/core/ports/repositories"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		CurrencyRepo:    newPgxCurrencyRepository(dbPool),
		ClientRepo:      newPgxClientRepository(dbPool),
		TransactionRepo: newPgxTransactionRepository(dbPool),
		DepositRepo:     newPgxDepositOrderRepository(dbPool),
		AlertRepo:       newPgxAlertRepository(dbPool),
		OperatorRepo:    newPgxOperatorRepository(dbPool),
	}
}
