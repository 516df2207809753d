package services_test

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/ndolodev/bureau_change_app/internal/core/domain"
	portsrepo "github.com/ndolodev/bureau_change_app/internal/core/ports/repositories"
)

// --- Mock TransactionRepository ---
type MockTransactionRepository struct {
	mock.Mock
}

func (m *MockTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.ExchangeTransaction, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExchangeTransaction), args.Error(1)
}

func (m *MockTransactionRepository) ListTransactions(ctx context.Context, filter portsrepo.ListTransactionsFilter) ([]domain.ExchangeTransaction, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ExchangeTransaction), args.Error(1)
}

func (m *MockTransactionRepository) ListPaymentsByTransactionID(ctx context.Context, transactionID string) ([]domain.Payment, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Payment), args.Error(1)
}

func (m *MockTransactionRepository) CreateExchange(ctx context.Context, txn domain.ExchangeTransaction, stockDeltas map[string]decimal.Decimal) (map[string]domain.Currency, error) {
	args := m.Called(ctx, txn, stockDeltas)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Currency), args.Error(1)
}

func (m *MockTransactionRepository) ApplyPayment(ctx context.Context, payment domain.Payment) (*domain.ExchangeTransaction, error) {
	args := m.Called(ctx, payment)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExchangeTransaction), args.Error(1)
}

func (m *MockTransactionRepository) VoidExchange(ctx context.Context, transactionID string, stockDeltas map[string]decimal.Decimal, updatedBy string, updatedAt time.Time) (*domain.ExchangeTransaction, error) {
	args := m.Called(ctx, transactionID, stockDeltas, updatedBy, updatedAt)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExchangeTransaction), args.Error(1)
}

// --- Mock ClientRepository ---
type MockClientRepository struct {
	mock.Mock
}

func (m *MockClientRepository) FindClientByID(ctx context.Context, clientID string) (*domain.Client, error) {
	args := m.Called(ctx, clientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Client), args.Error(1)
}

func (m *MockClientRepository) ListClients(ctx context.Context, limit, offset int) ([]domain.Client, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Client), args.Error(1)
}

func (m *MockClientRepository) SaveClient(ctx context.Context, client domain.Client) error {
	args := m.Called(ctx, client)
	return args.Error(0)
}

func (m *MockClientRepository) UpdateKYCStatus(ctx context.Context, clientID string, status domain.KYCStatus, updatedBy string, updatedAt time.Time) (*domain.Client, error) {
	args := m.Called(ctx, clientID, status, updatedBy, updatedAt)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Client), args.Error(1)
}

// --- Mock CurrencyRepository ---
type MockCurrencyRepository struct {
	mock.Mock
}

func (m *MockCurrencyRepository) FindCurrencyByCode(ctx context.Context, currencyCode string) (*domain.Currency, error) {
	args := m.Called(ctx, currencyCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Currency), args.Error(1)
}

func (m *MockCurrencyRepository) FindCurrenciesByCodes(ctx context.Context, codes []string) (map[string]domain.Currency, error) {
	args := m.Called(ctx, codes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Currency), args.Error(1)
}

func (m *MockCurrencyRepository) ListCurrencies(ctx context.Context) ([]domain.Currency, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Currency), args.Error(1)
}

func (m *MockCurrencyRepository) SaveCurrency(ctx context.Context, currency domain.Currency) error {
	args := m.Called(ctx, currency)
	return args.Error(0)
}

func (m *MockCurrencyRepository) UpdateRates(ctx context.Context, currencyCode string, buyRate, sellRate, currentRate decimal.Decimal, updatedBy string, updatedAt time.Time) (*domain.Currency, error) {
	args := m.Called(ctx, currencyCode, buyRate, sellRate, currentRate, updatedBy, updatedAt)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Currency), args.Error(1)
}

func (m *MockCurrencyRepository) AdjustStock(ctx context.Context, currencyCode string, delta decimal.Decimal, updatedBy string, updatedAt time.Time) (*domain.Currency, error) {
	args := m.Called(ctx, currencyCode, delta, updatedBy, updatedAt)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Currency), args.Error(1)
}

// --- Mock DepositOrderRepository ---
type MockDepositOrderRepository struct {
	mock.Mock
}

func (m *MockDepositOrderRepository) FindOrderByID(ctx context.Context, orderID string) (*domain.DepositOrder, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DepositOrder), args.Error(1)
}

func (m *MockDepositOrderRepository) ListOrders(ctx context.Context, filter portsrepo.ListOrdersFilter) ([]domain.DepositOrder, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.DepositOrder), args.Error(1)
}

func (m *MockDepositOrderRepository) FindDepositByID(ctx context.Context, depositID string) (*domain.Deposit, error) {
	args := m.Called(ctx, depositID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Deposit), args.Error(1)
}

func (m *MockDepositOrderRepository) ListDepositsByOrderID(ctx context.Context, orderID string) ([]domain.Deposit, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Deposit), args.Error(1)
}

func (m *MockDepositOrderRepository) SaveOrder(ctx context.Context, order domain.DepositOrder) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockDepositOrderRepository) AddDeposit(ctx context.Context, deposit domain.Deposit) error {
	args := m.Called(ctx, deposit)
	return args.Error(0)
}

func (m *MockDepositOrderRepository) MarkReceiptUploaded(ctx context.Context, depositID, receiptRef string, updatedBy string, updatedAt time.Time) (*domain.Deposit, error) {
	args := m.Called(ctx, depositID, receiptRef, updatedBy, updatedAt)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Deposit), args.Error(1)
}

func (m *MockDepositOrderRepository) FinalizeDeposit(ctx context.Context, depositID string, status domain.DepositStatus, updatedBy string, updatedAt time.Time) (*domain.Deposit, *domain.DepositOrder, error) {
	args := m.Called(ctx, depositID, status, updatedBy, updatedAt)
	var deposit *domain.Deposit
	var order *domain.DepositOrder
	if args.Get(0) != nil {
		deposit = args.Get(0).(*domain.Deposit)
	}
	if args.Get(1) != nil {
		order = args.Get(1).(*domain.DepositOrder)
	}
	return deposit, order, args.Error(2)
}

func (m *MockDepositOrderRepository) CancelOrder(ctx context.Context, orderID string, updatedBy string, updatedAt time.Time) (*domain.DepositOrder, error) {
	args := m.Called(ctx, orderID, updatedBy, updatedAt)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DepositOrder), args.Error(1)
}

// --- Mock AlertRepository ---
type MockAlertRepository struct {
	mock.Mock
}

func (m *MockAlertRepository) SaveAlertIfNoUnread(ctx context.Context, alert domain.Alert) (bool, error) {
	args := m.Called(ctx, alert)
	return args.Bool(0), args.Error(1)
}

func (m *MockAlertRepository) ListAlerts(ctx context.Context, unreadOnly bool, limit, offset int) ([]domain.Alert, error) {
	args := m.Called(ctx, unreadOnly, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Alert), args.Error(1)
}

func (m *MockAlertRepository) MarkAlertRead(ctx context.Context, alertID string, updatedBy string, updatedAt time.Time) error {
	args := m.Called(ctx, alertID, updatedBy, updatedAt)
	return args.Error(0)
}

// --- Mock OperatorRepository ---
type MockOperatorRepository struct {
	mock.Mock
}

func (m *MockOperatorRepository) FindOperatorByUsername(ctx context.Context, username string) (*domain.Operator, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Operator), args.Error(1)
}

func (m *MockOperatorRepository) FindOperatorByID(ctx context.Context, operatorID string) (*domain.Operator, error) {
	args := m.Called(ctx, operatorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Operator), args.Error(1)
}

func (m *MockOperatorRepository) SaveOperator(ctx context.Context, operator domain.Operator) error {
	args := m.Called(ctx, operator)
	return args.Error(0)
}

// --- Mock RateSource ---
type MockRateSource struct {
	mock.Mock
}

func (m *MockRateSource) CurrentRates(ctx context.Context, currencyCode string) (*domain.RateQuote, error) {
	args := m.Called(ctx, currencyCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RateQuote), args.Error(1)
}

// --- Mock AlertEmitter ---
type MockAlertEmitter struct {
	mock.Mock
}

func (m *MockAlertEmitter) Emit(ctx context.Context, alertType domain.AlertType, title, message, entityID, entityType string, severity domain.AlertSeverity) {
	m.Called(ctx, alertType, title, message, entityID, entityType, severity)
}

// --- Mock NotificationDispatch ---
type MockNotificationDispatch struct {
	mock.Mock
}

func (m *MockNotificationDispatch) Notify(ctx context.Context, recipientRef, title, body string, data map[string]string) {
	m.Called(ctx, recipientRef, title, body, data)
}
