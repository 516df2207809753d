package repositories

import (
	"context"
	"time"

	"github.com/ndolodev/bureau_change_app/internal/core/domain"
)

// ClientReader defines read operations for client records.
type ClientReader interface {
	// FindClientByID retrieves a client by ID.
	FindClientByID(ctx context.Context, clientID string) (*domain.Client, error)

	// ListClients retrieves clients with limit/offset pagination.
	ListClients(ctx context.Context, limit, offset int) ([]domain.Client, error)
}

// ClientWriter defines write operations for client records. Debt and paid
// aggregates are never written directly through this interface; they move
// only inside the settlement repositories' atomic units.
type ClientWriter interface {
	// SaveClient persists a new client.
	SaveClient(ctx context.Context, client domain.Client) error

	// UpdateKYCStatus sets a client's KYC status.
	UpdateKYCStatus(ctx context.Context, clientID string, status domain.KYCStatus, updatedBy string, updatedAt time.Time) (*domain.Client, error)
}

// ClientRepositoryFacade combines all client-related repository interfaces.
type ClientRepositoryFacade interface {
	ClientReader
	ClientWriter
}
