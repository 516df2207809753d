package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/ndolodev/bureau_change_app/internal/apperrors"
	"github.com/ndolodev/bureau_change_app/internal/core/domain"
	portssvc "github.com/ndolodev/bureau_change_app/internal/core/ports/services"
	"github.com/ndolodev/bureau_change_app/internal/core/services"
	"github.com/ndolodev/bureau_change_app/internal/dto"
)

type ClientServiceTestSuite struct {
	suite.Suite
	mockRepo *MockClientRepository
	service  portssvc.ClientSvcFacade
	ctx      context.Context
}

func (s *ClientServiceTestSuite) SetupTest() {
	s.mockRepo = new(MockClientRepository)
	s.service = services.NewClientService(s.mockRepo)
	s.ctx = context.Background()
}

func (s *ClientServiceTestSuite) TestCreateClient_Success() {
	s.mockRepo.On("SaveClient", s.ctx, mock.MatchedBy(func(c domain.Client) bool {
		return c.Name == "Amina Toure" &&
			c.KYCStatus == domain.KYCUnverified &&
			c.TotalDebt.IsZero() &&
			c.TotalPaid.IsZero() &&
			c.IsActive &&
			c.ClientID != ""
	})).Return(nil)

	client, err := s.service.CreateClient(s.ctx, dto.CreateClientRequest{
		Name:  "Amina Toure",
		Phone: "+237600000000",
	}, "op-1")

	assert.NoError(s.T(), err)
	assert.NotNil(s.T(), client)
	assert.Equal(s.T(), domain.KYCUnverified, client.KYCStatus)
	s.mockRepo.AssertExpectations(s.T())
}

func (s *ClientServiceTestSuite) TestGetClientByID_NotFound() {
	s.mockRepo.On("FindClientByID", s.ctx, "missing").Return(nil, apperrors.ErrNotFound)

	client, err := s.service.GetClientByID(s.ctx, "missing")

	assert.Nil(s.T(), client)
	assert.ErrorIs(s.T(), err, apperrors.ErrNotFound)
}

func (s *ClientServiceTestSuite) TestListClients_DefaultsLimit() {
	s.mockRepo.On("ListClients", s.ctx, 20, 0).Return([]domain.Client{{ClientID: "client-1"}}, nil)

	clients, err := s.service.ListClients(s.ctx, 0, -5)

	assert.NoError(s.T(), err)
	assert.Len(s.T(), clients, 1)
}

func (s *ClientServiceTestSuite) TestUpdateKYCStatus_Success() {
	verified := &domain.Client{ClientID: "client-1", KYCStatus: domain.KYCVerified}

	s.mockRepo.On("UpdateKYCStatus", s.ctx, "client-1", domain.KYCVerified, "op-1", mock.AnythingOfType("time.Time")).
		Return(verified, nil)

	client, err := s.service.UpdateKYCStatus(s.ctx, "client-1", dto.UpdateKYCRequest{Status: domain.KYCVerified}, "op-1")

	assert.NoError(s.T(), err)
	assert.Equal(s.T(), domain.KYCVerified, client.KYCStatus)
}

func TestClientServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ClientServiceTestSuite))
}
