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

type AlertServiceTestSuite struct {
	suite.Suite
	mockRepo *MockAlertRepository
	service  portssvc.AlertSvcFacade
	ctx      context.Context
}

func (s *AlertServiceTestSuite) SetupTest() {
	s.mockRepo = new(MockAlertRepository)
	s.service = services.NewAlertService(s.mockRepo)
	s.ctx = context.Background()
}

func (s *AlertServiceTestSuite) TestEmit_WritesAlert() {
	s.mockRepo.On("SaveAlertIfNoUnread", s.ctx, mock.MatchedBy(func(a domain.Alert) bool {
		return a.Type == domain.AlertLowStock &&
			a.EntityID == "USD" &&
			a.EntityType == "currency" &&
			a.Severity == domain.SeverityWarning &&
			!a.IsRead &&
			a.AlertID != ""
	})).Return(true, nil)

	s.service.Emit(s.ctx, domain.AlertLowStock, "Low stock: USD", "Stock for USD is down to 500", "USD", "currency", domain.SeverityWarning)

	s.mockRepo.AssertExpectations(s.T())
}

func (s *AlertServiceTestSuite) TestEmit_SwallowsRepositoryError() {
	s.mockRepo.On("SaveAlertIfNoUnread", s.ctx, mock.Anything).Return(false, assert.AnError)

	// Emit has no error return. A failing sink must not panic or propagate.
	s.service.Emit(s.ctx, domain.AlertLowStock, "Low stock: USD", "msg", "USD", "currency", domain.SeverityWarning)

	s.mockRepo.AssertExpectations(s.T())
}

func (s *AlertServiceTestSuite) TestListAlerts_DefaultsLimit() {
	s.mockRepo.On("ListAlerts", s.ctx, true, 50, 0).Return([]domain.Alert{{AlertID: "alert-1"}}, nil)

	alerts, err := s.service.ListAlerts(s.ctx, dto.ListAlertsParams{Unread: true})

	assert.NoError(s.T(), err)
	assert.Len(s.T(), alerts, 1)
}

func (s *AlertServiceTestSuite) TestMarkAlertRead_NotFound() {
	s.mockRepo.On("MarkAlertRead", s.ctx, "missing", "op-1", mock.AnythingOfType("time.Time")).Return(apperrors.ErrNotFound)

	err := s.service.MarkAlertRead(s.ctx, "missing", "op-1")

	assert.ErrorIs(s.T(), err, apperrors.ErrNotFound)
}

func TestAlertServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AlertServiceTestSuite))
}
