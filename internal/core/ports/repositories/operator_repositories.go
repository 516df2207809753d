package repositories

import (
	"context"

	"github.com/ndolodev/bureau_change_app/internal/core/domain"
)

// OperatorRepositoryFacade defines persistence for operator logins.
type OperatorRepositoryFacade interface {
	// FindOperatorByUsername retrieves an operator by unique username.
	FindOperatorByUsername(ctx context.Context, username string) (*domain.Operator, error)

	// FindOperatorByID retrieves an operator by ID.
	FindOperatorByID(ctx context.Context, operatorID string) (*domain.Operator, error)

	// SaveOperator persists a new operator.
	SaveOperator(ctx context.Context, operator domain.Operator) error
}
