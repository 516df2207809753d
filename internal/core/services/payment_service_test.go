package services_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/ndolodev/bureau_change_app/internal/apperrors"
	"github.com/ndolodev/bureau_change_app/internal/core/domain"
	portssvc "github.com/ndolodev/bureau_change_app/internal/core/ports/services"
	"github.com/ndolodev/bureau_change_app/internal/core/services"
	"github.com/ndolodev/bureau_change_app/internal/dto"
)

type PaymentServiceTestSuite struct {
	suite.Suite
	mockTxRepo *MockTransactionRepository
	mockNotify *MockNotificationDispatch
	service    portssvc.PaymentSvcFacade
	ctx        context.Context
}

func (s *PaymentServiceTestSuite) SetupTest() {
	s.mockTxRepo = new(MockTransactionRepository)
	s.mockNotify = new(MockNotificationDispatch)
	s.service = services.NewPaymentService(s.mockTxRepo, s.mockNotify)
	s.ctx = context.Background()
}

func (s *PaymentServiceTestSuite) partialTransaction() *domain.ExchangeTransaction {
	return &domain.ExchangeTransaction{
		TransactionID:   "txn-1",
		Reference:       "TXN-20260110-AAAAAA",
		ClientID:        "client-1",
		CurrencyFrom:    "USD",
		CurrencyTo:      "FCFA",
		AmountFrom:      decimal.NewFromInt(1000),
		ExchangeRate:    decimal.NewFromFloat(655.5),
		AmountTo:        decimal.NewFromInt(655500),
		AmountPaid:      decimal.NewFromInt(100000),
		AmountRemaining: decimal.NewFromInt(555500),
		Status:          domain.TransactionPartial,
		Type:            domain.TransactionSell,
	}
}

func (s *PaymentServiceTestSuite) TestRecordPayment_Success() {
	txn := s.partialTransaction()
	req := dto.RecordPaymentRequest{
		Amount:       decimal.NewFromInt(555500),
		CurrencyCode: "FCFA",
		Method:       domain.MethodCash,
	}

	settled := *txn
	settled.AmountPaid = txn.AmountTo
	settled.AmountRemaining = decimal.Zero
	settled.Status = domain.TransactionPaid

	s.mockTxRepo.On("FindTransactionByID", s.ctx, "txn-1").Return(txn, nil)
	s.mockTxRepo.On("ApplyPayment", s.ctx, mock.MatchedBy(func(p domain.Payment) bool {
		return p.TransactionID == "txn-1" &&
			p.ClientID == "client-1" &&
			p.Amount.Equal(req.Amount) &&
			p.Method == domain.MethodCash &&
			p.PaymentID != ""
	})).Return(&settled, nil)
	s.mockNotify.On("Notify", s.ctx, "client-1", "Payment received", mock.AnythingOfType("string"), mock.Anything).Return()

	result, err := s.service.RecordPayment(s.ctx, "txn-1", req, "op-1")

	assert.NoError(s.T(), err)
	assert.NotNil(s.T(), result)
	assert.Equal(s.T(), string(domain.TransactionPaid), result.TransactionStatus)
	assert.True(s.T(), result.AmountRemaining.IsZero())
	assert.Equal(s.T(), "txn-1", result.Payment.TransactionID)
	s.mockTxRepo.AssertExpectations(s.T())
	s.mockNotify.AssertExpectations(s.T())
}

func (s *PaymentServiceTestSuite) TestRecordPayment_ExceedsRemaining() {
	txn := s.partialTransaction()
	req := dto.RecordPaymentRequest{
		Amount:       decimal.NewFromInt(600000),
		CurrencyCode: "FCFA",
		Method:       domain.MethodCash,
	}

	s.mockTxRepo.On("FindTransactionByID", s.ctx, "txn-1").Return(txn, nil)

	result, err := s.service.RecordPayment(s.ctx, "txn-1", req, "op-1")

	assert.Nil(s.T(), result)
	assert.ErrorIs(s.T(), err, services.ErrAmountExceedsRemaining)
	// The error carries the authoritative remaining so the caller can retry.
	assert.Contains(s.T(), err.Error(), "555500")
	s.mockTxRepo.AssertNotCalled(s.T(), "ApplyPayment", mock.Anything, mock.Anything)
}

func (s *PaymentServiceTestSuite) TestRecordPayment_AlreadySettled() {
	txn := s.partialTransaction()
	txn.Status = domain.TransactionPaid
	txn.AmountRemaining = decimal.Zero

	s.mockTxRepo.On("FindTransactionByID", s.ctx, "txn-1").Return(txn, nil)

	result, err := s.service.RecordPayment(s.ctx, "txn-1", dto.RecordPaymentRequest{
		Amount:       decimal.NewFromInt(1),
		CurrencyCode: "FCFA",
		Method:       domain.MethodCash,
	}, "op-1")

	assert.Nil(s.T(), result)
	assert.ErrorIs(s.T(), err, services.ErrAlreadySettled)
}

func (s *PaymentServiceTestSuite) TestRecordPayment_Voided() {
	txn := s.partialTransaction()
	txn.Status = domain.TransactionVoided

	s.mockTxRepo.On("FindTransactionByID", s.ctx, "txn-1").Return(txn, nil)

	result, err := s.service.RecordPayment(s.ctx, "txn-1", dto.RecordPaymentRequest{
		Amount:       decimal.NewFromInt(1),
		CurrencyCode: "FCFA",
		Method:       domain.MethodCash,
	}, "op-1")

	assert.Nil(s.T(), result)
	assert.ErrorIs(s.T(), err, services.ErrTransactionVoided)
}

func (s *PaymentServiceTestSuite) TestRecordPayment_NonPositiveAmount() {
	result, err := s.service.RecordPayment(s.ctx, "txn-1", dto.RecordPaymentRequest{
		Amount:       decimal.Zero,
		CurrencyCode: "FCFA",
		Method:       domain.MethodCash,
	}, "op-1")

	assert.Nil(s.T(), result)
	assert.ErrorIs(s.T(), err, apperrors.ErrValidation)
	s.mockTxRepo.AssertNotCalled(s.T(), "FindTransactionByID", mock.Anything, mock.Anything)
}

func (s *PaymentServiceTestSuite) TestRecordPayment_LostRaceSurfacesConflict() {
	txn := s.partialTransaction()

	s.mockTxRepo.On("FindTransactionByID", s.ctx, "txn-1").Return(txn, nil)
	s.mockTxRepo.On("ApplyPayment", s.ctx, mock.Anything).
		Return(nil, apperrors.ErrConflict)

	result, err := s.service.RecordPayment(s.ctx, "txn-1", dto.RecordPaymentRequest{
		Amount:       decimal.NewFromInt(1000),
		CurrencyCode: "FCFA",
		Method:       domain.MethodBankTransfer,
	}, "op-1")

	assert.Nil(s.T(), result)
	assert.ErrorIs(s.T(), err, apperrors.ErrConflict)
	s.mockNotify.AssertNotCalled(s.T(), "Notify", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *PaymentServiceTestSuite) TestRecordPayment_TransactionNotFound() {
	s.mockTxRepo.On("FindTransactionByID", s.ctx, "missing").Return(nil, apperrors.ErrNotFound)

	result, err := s.service.RecordPayment(s.ctx, "missing", dto.RecordPaymentRequest{
		Amount:       decimal.NewFromInt(10),
		CurrencyCode: "FCFA",
		Method:       domain.MethodCash,
	}, "op-1")

	assert.Nil(s.T(), result)
	assert.ErrorIs(s.T(), err, apperrors.ErrNotFound)
}

func (s *PaymentServiceTestSuite) TestListPayments_Success() {
	txn := s.partialTransaction()
	payments := []domain.Payment{
		{PaymentID: "pay-1", TransactionID: "txn-1", Amount: decimal.NewFromInt(100000)},
	}

	s.mockTxRepo.On("FindTransactionByID", s.ctx, "txn-1").Return(txn, nil)
	s.mockTxRepo.On("ListPaymentsByTransactionID", s.ctx, "txn-1").Return(payments, nil)

	result, err := s.service.ListPayments(s.ctx, "txn-1")

	assert.NoError(s.T(), err)
	assert.Len(s.T(), result, 1)
	assert.Equal(s.T(), "pay-1", result[0].PaymentID)
}

func (s *PaymentServiceTestSuite) TestListPayments_TransactionNotFound() {
	s.mockTxRepo.On("FindTransactionByID", s.ctx, "missing").Return(nil, apperrors.ErrNotFound)

	result, err := s.service.ListPayments(s.ctx, "missing")

	assert.Nil(s.T(), result)
	assert.ErrorIs(s.T(), err, apperrors.ErrNotFound)
	s.mockTxRepo.AssertNotCalled(s.T(), "ListPaymentsByTransactionID", mock.Anything, mock.Anything)
}

func TestPaymentServiceTestSuite(t *testing.T) {
	suite.Run(t, new(PaymentServiceTestSuite))
}
