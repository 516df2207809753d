package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ndolodev/bureau_change_app/internal/core/domain"
	portsrepo "github.com/ndolodev/bureau_change_app/internal/core/ports/repositories"
	portssvc "github.com/ndolodev/bureau_change_app/internal/core/ports/services"
	"github.com/ndolodev/bureau_change_app/internal/dto"
	"github.com/ndolodev/bureau_change_app/internal/middleware"
)

// clientService manages client records. Debt and paid aggregates are owned
// by the settlement repositories and only read here.
type clientService struct {
	clientRepo portsrepo.ClientRepositoryFacade
}

// NewClientService creates a new ClientSvcFacade.
func NewClientService(clientRepo portsrepo.ClientRepositoryFacade) portssvc.ClientSvcFacade {
	return &clientService{clientRepo: clientRepo}
}

var _ portssvc.ClientSvcFacade = (*clientService)(nil)

// CreateClient implements portssvc.ClientSvcFacade.
func (s *clientService) CreateClient(ctx context.Context, req dto.CreateClientRequest, operatorID string) (*domain.Client, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	now := time.Now().UTC()
	client := domain.Client{
		ClientID:  uuid.NewString(),
		Name:      req.Name,
		Phone:     req.Phone,
		Email:     req.Email,
		KYCStatus: domain.KYCUnverified,
		TotalDebt: decimal.Zero,
		TotalPaid: decimal.Zero,
		IsActive:  true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     operatorID,
			LastUpdatedAt: now,
			LastUpdatedBy: operatorID,
		},
	}

	if err := s.clientRepo.SaveClient(ctx, client); err != nil {
		logger.Error("Failed to save client", slog.String("error", err.Error()), slog.String("name", req.Name))
		return nil, fmt.Errorf("failed to save client: %w", err)
	}

	logger.Info("Client registered", slog.String("client_id", client.ClientID))
	return &client, nil
}

// GetClientByID implements portssvc.ClientSvcFacade.
func (s *clientService) GetClientByID(ctx context.Context, clientID string) (*domain.Client, error) {
	client, err := s.clientRepo.FindClientByID(ctx, clientID)
	if err != nil {
		return nil, fmt.Errorf("failed to find client %s: %w", clientID, err)
	}
	return client, nil
}

// ListClients implements portssvc.ClientSvcFacade.
func (s *clientService) ListClients(ctx context.Context, limit, offset int) ([]domain.Client, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	clients, err := s.clientRepo.ListClients(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list clients: %w", err)
	}
	return clients, nil
}

// UpdateKYCStatus implements portssvc.ClientSvcFacade.
func (s *clientService) UpdateKYCStatus(ctx context.Context, clientID string, req dto.UpdateKYCRequest, operatorID string) (*domain.Client, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	updated, err := s.clientRepo.UpdateKYCStatus(ctx, clientID, req.Status, operatorID, time.Now().UTC())
	if err != nil {
		logger.Error("Failed to update KYC status", slog.String("error", err.Error()), slog.String("client_id", clientID))
		return nil, fmt.Errorf("failed to update KYC status for %s: %w", clientID, err)
	}

	logger.Info("KYC status updated", slog.String("client_id", clientID), slog.String("status", string(req.Status)))
	return updated, nil
}
