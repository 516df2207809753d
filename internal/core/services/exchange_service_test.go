package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
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

type ExchangeServiceTestSuite struct {
	suite.Suite
	mockTxRepo     *MockTransactionRepository
	mockClientRepo *MockClientRepository
	mockRates      *MockRateSource
	mockAlerts     *MockAlertEmitter
	mockNotify     *MockNotificationDispatch
	service        portssvc.ExchangeSvcFacade
}

func (suite *ExchangeServiceTestSuite) SetupTest() {
	suite.mockTxRepo = new(MockTransactionRepository)
	suite.mockClientRepo = new(MockClientRepository)
	suite.mockRates = new(MockRateSource)
	suite.mockAlerts = new(MockAlertEmitter)
	suite.mockNotify = new(MockNotificationDispatch)
	suite.service = services.NewExchangeService(
		suite.mockTxRepo,
		suite.mockClientRepo,
		suite.mockRates,
		suite.mockAlerts,
		suite.mockNotify,
		decimal.NewFromInt(1000000),
		true,
	)
}

func (suite *ExchangeServiceTestSuite) verifiedClient() *domain.Client {
	return &domain.Client{
		ClientID:  uuid.NewString(),
		Name:      "Amina Sow",
		KYCStatus: domain.KYCVerified,
		IsActive:  true,
	}
}

func (suite *ExchangeServiceTestSuite) TestCreateTransaction_Success() {
	ctx := context.Background()
	operatorID := uuid.NewString()
	client := suite.verifiedClient()
	req := dto.CreateTransactionRequest{
		ClientID:     client.ClientID,
		CurrencyFrom: "USD",
		CurrencyTo:   "FCFA",
		AmountFrom:   decimal.NewFromInt(1000),
		ExchangeRate: decimal.NewFromFloat(655.5),
		Type:         domain.TransactionSell,
	}
	wantAmountTo := decimal.NewFromInt(655500)

	suite.mockClientRepo.On("FindClientByID", ctx, client.ClientID).Return(client, nil).Once()
	suite.mockRates.On("CurrentRates", ctx, "USD").Return((*domain.RateQuote)(nil), nil).Once()
	suite.mockTxRepo.On("CreateExchange", ctx, mock.MatchedBy(func(txn domain.ExchangeTransaction) bool {
		return txn.AmountTo.Equal(wantAmountTo) &&
			txn.AmountRemaining.Equal(wantAmountTo) &&
			txn.AmountPaid.IsZero() &&
			txn.Status == domain.TransactionUnpaid &&
			txn.CreatedBy == operatorID
	}), mock.MatchedBy(func(deltas map[string]decimal.Decimal) bool {
		// A sell hands USD out and takes FCFA in.
		return deltas["USD"].Equal(decimal.NewFromInt(-1000)) && deltas["FCFA"].Equal(wantAmountTo)
	})).Return(map[string]domain.Currency{}, nil).Once()
	suite.mockNotify.On("Notify", ctx, client.ClientID, mock.Anything, mock.Anything, mock.Anything).Return().Once()

	result, err := suite.service.CreateTransaction(ctx, req, operatorID)

	suite.Require().NoError(err)
	suite.Require().NotNil(result)
	suite.True(result.Transaction.AmountTo.Equal(wantAmountTo))
	suite.Empty(result.KYCWarning)
	suite.Nil(result.Transaction.Profit)
	suite.mockTxRepo.AssertExpectations(suite.T())
	suite.mockNotify.AssertExpectations(suite.T())
}

func (suite *ExchangeServiceTestSuite) TestCreateTransaction_ComputesSpreadProfit() {
	ctx := context.Background()
	client := suite.verifiedClient()
	req := dto.CreateTransactionRequest{
		ClientID:     client.ClientID,
		CurrencyFrom: "USD",
		CurrencyTo:   "FCFA",
		AmountFrom:   decimal.NewFromInt(1000),
		ExchangeRate: decimal.NewFromInt(650),
		Type:         domain.TransactionSell,
	}

	suite.mockClientRepo.On("FindClientByID", ctx, client.ClientID).Return(client, nil).Once()
	suite.mockRates.On("CurrentRates", ctx, "USD").Return(&domain.RateQuote{
		CurrencyCode: "USD", BuyRate: decimal.NewFromInt(1), SellRate: decimal.NewFromInt(1),
	}, nil).Once()
	suite.mockRates.On("CurrentRates", ctx, "FCFA").Return(&domain.RateQuote{
		CurrencyCode: "FCFA", BuyRate: decimal.NewFromInt(650), SellRate: decimal.NewFromFloat(655.5),
	}, nil).Once()
	suite.mockTxRepo.On("CreateExchange", ctx, mock.MatchedBy(func(txn domain.ExchangeTransaction) bool {
		// marketRate 655.5, offered 650: profit = 1000 * 5.5
		return txn.Profit != nil && txn.Profit.Equal(decimal.NewFromInt(5500)) && txn.ProfitCurrency == "FCFA"
	}), mock.Anything).Return(map[string]domain.Currency{}, nil).Once()
	suite.mockNotify.On("Notify", ctx, client.ClientID, mock.Anything, mock.Anything, mock.Anything).Return().Once()

	result, err := suite.service.CreateTransaction(ctx, req, uuid.NewString())

	suite.Require().NoError(err)
	suite.Require().NotNil(result.Transaction.Profit)
	suite.True(result.Transaction.Profit.Equal(decimal.NewFromInt(5500)))
	suite.mockTxRepo.AssertExpectations(suite.T())
}

func (suite *ExchangeServiceTestSuite) TestCreateTransaction_KYCGateWarnsButProceeds() {
	ctx := context.Background()
	client := suite.verifiedClient()
	client.KYCStatus = domain.KYCUnverified
	req := dto.CreateTransactionRequest{
		ClientID:     client.ClientID,
		CurrencyFrom: "USD",
		CurrencyTo:   "FCFA",
		AmountFrom:   decimal.NewFromInt(10000),
		ExchangeRate: decimal.NewFromFloat(655.5),
		Type:         domain.TransactionSell,
	}

	suite.mockClientRepo.On("FindClientByID", ctx, client.ClientID).Return(client, nil).Once()
	suite.mockRates.On("CurrentRates", ctx, "USD").Return((*domain.RateQuote)(nil), nil).Once()
	suite.mockTxRepo.On("CreateExchange", ctx, mock.Anything, mock.Anything).Return(map[string]domain.Currency{}, nil).Once()
	suite.mockAlerts.On("Emit", ctx, domain.AlertCustom, mock.Anything, mock.Anything, client.ClientID, "client", domain.SeverityWarning).Return().Once()
	suite.mockNotify.On("Notify", ctx, client.ClientID, mock.Anything, mock.Anything, mock.Anything).Return().Once()

	result, err := suite.service.CreateTransaction(ctx, req, uuid.NewString())

	suite.Require().NoError(err)
	suite.NotEmpty(result.KYCWarning)
	suite.mockAlerts.AssertExpectations(suite.T())
}

func (suite *ExchangeServiceTestSuite) TestCreateTransaction_LowStockAlert() {
	ctx := context.Background()
	client := suite.verifiedClient()
	req := dto.CreateTransactionRequest{
		ClientID:     client.ClientID,
		CurrencyFrom: "USD",
		CurrencyTo:   "FCFA",
		AmountFrom:   decimal.NewFromInt(100),
		ExchangeRate: decimal.NewFromFloat(655.5),
		Type:         domain.TransactionSell,
	}
	depleted := domain.Currency{
		CurrencyCode:      "USD",
		StockAmount:       decimal.NewFromInt(50),
		LowStockThreshold: decimal.NewFromInt(500),
	}

	suite.mockClientRepo.On("FindClientByID", ctx, client.ClientID).Return(client, nil).Once()
	suite.mockRates.On("CurrentRates", ctx, "USD").Return((*domain.RateQuote)(nil), nil).Once()
	suite.mockTxRepo.On("CreateExchange", ctx, mock.Anything, mock.Anything).
		Return(map[string]domain.Currency{"USD": depleted}, nil).Once()
	suite.mockAlerts.On("Emit", ctx, domain.AlertLowStock, mock.Anything, mock.Anything, "USD", "currency", domain.SeverityWarning).Return().Once()
	suite.mockNotify.On("Notify", ctx, client.ClientID, mock.Anything, mock.Anything, mock.Anything).Return().Once()

	result, err := suite.service.CreateTransaction(ctx, req, uuid.NewString())

	suite.Require().NoError(err)
	suite.NotEmpty(result.StockWarning)
	suite.mockAlerts.AssertExpectations(suite.T())
}

func (suite *ExchangeServiceTestSuite) TestCreateTransaction_RejectsNonPositiveAmount() {
	ctx := context.Background()
	req := dto.CreateTransactionRequest{
		ClientID:     uuid.NewString(),
		CurrencyFrom: "USD",
		CurrencyTo:   "FCFA",
		AmountFrom:   decimal.Zero,
		ExchangeRate: decimal.NewFromInt(650),
		Type:         domain.TransactionSell,
	}

	result, err := suite.service.CreateTransaction(ctx, req, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(result)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockTxRepo.AssertNotCalled(suite.T(), "CreateExchange")
}

func (suite *ExchangeServiceTestSuite) TestCreateTransaction_ClientNotFound() {
	ctx := context.Background()
	clientID := uuid.NewString()
	req := dto.CreateTransactionRequest{
		ClientID:     clientID,
		CurrencyFrom: "USD",
		CurrencyTo:   "FCFA",
		AmountFrom:   decimal.NewFromInt(100),
		ExchangeRate: decimal.NewFromInt(650),
		Type:         domain.TransactionBuy,
	}

	suite.mockClientRepo.On("FindClientByID", ctx, clientID).Return(nil, apperrors.ErrNotFound).Once()

	result, err := suite.service.CreateTransaction(ctx, req, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(result)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *ExchangeServiceTestSuite) TestCreateTransaction_TransferMovesNoStock() {
	ctx := context.Background()
	client := suite.verifiedClient()
	req := dto.CreateTransactionRequest{
		ClientID:     client.ClientID,
		CurrencyFrom: "USD",
		CurrencyTo:   "EUR",
		AmountFrom:   decimal.NewFromInt(100),
		ExchangeRate: decimal.NewFromFloat(0.9),
		Type:         domain.TransactionTransfer,
	}

	suite.mockClientRepo.On("FindClientByID", ctx, client.ClientID).Return(client, nil).Once()
	suite.mockRates.On("CurrentRates", ctx, "USD").Return((*domain.RateQuote)(nil), nil).Once()
	suite.mockTxRepo.On("CreateExchange", ctx, mock.Anything, mock.MatchedBy(func(deltas map[string]decimal.Decimal) bool {
		return len(deltas) == 0
	})).Return(map[string]domain.Currency{}, nil).Once()
	suite.mockNotify.On("Notify", ctx, client.ClientID, mock.Anything, mock.Anything, mock.Anything).Return().Once()

	_, err := suite.service.CreateTransaction(ctx, req, uuid.NewString())

	suite.Require().NoError(err)
	suite.mockTxRepo.AssertExpectations(suite.T())
}

func (suite *ExchangeServiceTestSuite) TestVoidTransaction_Disabled() {
	disabledService := services.NewExchangeService(
		suite.mockTxRepo, suite.mockClientRepo, suite.mockRates,
		suite.mockAlerts, suite.mockNotify, decimal.NewFromInt(1000000), false,
	)

	voided, err := disabledService.VoidTransaction(context.Background(), uuid.NewString(), uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(voided)
	suite.ErrorIs(err, services.ErrVoidDisabled)
	suite.mockTxRepo.AssertNotCalled(suite.T(), "VoidExchange")
}

func (suite *ExchangeServiceTestSuite) TestVoidTransaction_ReversesStockDeltas() {
	ctx := context.Background()
	operatorID := uuid.NewString()
	txn := &domain.ExchangeTransaction{
		TransactionID: uuid.NewString(),
		Reference:     "TXN-AB12CD34",
		ClientID:      uuid.NewString(),
		CurrencyFrom:  "USD",
		CurrencyTo:    "FCFA",
		AmountFrom:    decimal.NewFromInt(100),
		AmountTo:      decimal.NewFromInt(65550),
		Status:        domain.TransactionUnpaid,
		Type:          domain.TransactionSell,
	}

	suite.mockTxRepo.On("FindTransactionByID", ctx, txn.TransactionID).Return(txn, nil).Once()
	suite.mockTxRepo.On("VoidExchange", ctx, txn.TransactionID, mock.MatchedBy(func(deltas map[string]decimal.Decimal) bool {
		// Creation removed USD from the till, so the void puts it back.
		return deltas["USD"].Equal(decimal.NewFromInt(100)) && deltas["FCFA"].Equal(decimal.NewFromInt(-65550))
	}), operatorID, mock.Anything).Return(&domain.ExchangeTransaction{
		TransactionID: txn.TransactionID,
		Reference:     txn.Reference,
		Status:        domain.TransactionVoided,
	}, nil).Once()

	voided, err := suite.service.VoidTransaction(ctx, txn.TransactionID, operatorID)

	suite.Require().NoError(err)
	suite.Equal(domain.TransactionVoided, voided.Status)
	suite.mockTxRepo.AssertExpectations(suite.T())
}

func (suite *ExchangeServiceTestSuite) TestVoidTransaction_AlreadySettled() {
	ctx := context.Background()
	txn := &domain.ExchangeTransaction{
		TransactionID: uuid.NewString(),
		Status:        domain.TransactionPaid,
	}

	suite.mockTxRepo.On("FindTransactionByID", ctx, txn.TransactionID).Return(txn, nil).Once()

	voided, err := suite.service.VoidTransaction(ctx, txn.TransactionID, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(voided)
	suite.ErrorIs(err, services.ErrTransactionSettled)
	suite.mockTxRepo.AssertNotCalled(suite.T(), "VoidExchange")
}

func (suite *ExchangeServiceTestSuite) TestGetTransaction_WithPayments() {
	ctx := context.Background()
	txn := &domain.ExchangeTransaction{TransactionID: uuid.NewString()}
	payments := []domain.Payment{{PaymentID: uuid.NewString(), TransactionID: txn.TransactionID}}

	suite.mockTxRepo.On("FindTransactionByID", ctx, txn.TransactionID).Return(txn, nil).Once()
	suite.mockTxRepo.On("ListPaymentsByTransactionID", ctx, txn.TransactionID).Return(payments, nil).Once()

	got, gotPayments, err := suite.service.GetTransaction(ctx, txn.TransactionID)

	suite.Require().NoError(err)
	suite.Equal(txn, got)
	suite.Len(gotPayments, 1)
}

func TestExchangeServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ExchangeServiceTestSuite))
}

func TestExchangeService_RateLookupFailureSkipsProfit(t *testing.T) {
	ctx := context.Background()
	mockTxRepo := new(MockTransactionRepository)
	mockClientRepo := new(MockClientRepository)
	mockRates := new(MockRateSource)
	mockNotify := new(MockNotificationDispatch)
	svc := services.NewExchangeService(
		mockTxRepo, mockClientRepo, mockRates,
		new(MockAlertEmitter), mockNotify, decimal.NewFromInt(1000000), false,
	)

	client := &domain.Client{ClientID: uuid.NewString(), KYCStatus: domain.KYCVerified}
	mockClientRepo.On("FindClientByID", ctx, client.ClientID).Return(client, nil).Once()
	mockRates.On("CurrentRates", ctx, "USD").Return(nil, assert.AnError).Once()
	mockTxRepo.On("CreateExchange", ctx, mock.MatchedBy(func(txn domain.ExchangeTransaction) bool {
		return txn.Profit == nil && txn.MarketRate == nil
	}), mock.Anything).Return(map[string]domain.Currency{}, nil).Once()
	mockNotify.On("Notify", ctx, client.ClientID, mock.Anything, mock.Anything, mock.Anything).Return().Once()

	result, err := svc.CreateTransaction(ctx, dto.CreateTransactionRequest{
		ClientID:     client.ClientID,
		CurrencyFrom: "USD",
		CurrencyTo:   "FCFA",
		AmountFrom:   decimal.NewFromInt(100),
		ExchangeRate: decimal.NewFromInt(650),
		Type:         domain.TransactionSell,
	}, uuid.NewString())

	assert.NoError(t, err)
	assert.Nil(t, result.Transaction.Profit)
	mockTxRepo.AssertExpectations(t)
}
