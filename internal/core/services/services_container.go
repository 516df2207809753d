package services

import (
	"time"

	"github.com/shopspring/decimal"

	portsrepo "github.com/ndolodev/bureau_change_app/internal/core/ports/repositories"
	portssvc "github.com/ndolodev/bureau_change_app/internal/core/ports/services"
)

// ContainerParams carries the configuration values the services need.
// Values are injected here once at startup; services never read global
// configuration.
type ContainerParams struct {
	KYCThreshold         decimal.Decimal
	DefaultLowStockLevel decimal.Decimal
	AllowTransactionVoid bool
	JWTSecret            string
	JWTExpiry            time.Duration
	JWTIssuer            string
}

// NewServiceContainer wires all services with their repositories and
// collaborators.
func NewServiceContainer(repos portsrepo.RepositoryProvider, rateSource portssvc.RateSource, params ContainerParams) *portssvc.ServiceContainer {
	notify := NewLogNotificationDispatch()
	alertSvc := NewAlertService(repos.AlertRepo)

	return &portssvc.ServiceContainer{
		Currency: NewCurrencyService(repos.CurrencyRepo, alertSvc, params.DefaultLowStockLevel),
		Client:   NewClientService(repos.ClientRepo),
		Exchange: NewExchangeService(repos.TransactionRepo, repos.ClientRepo, rateSource, alertSvc, notify, params.KYCThreshold, params.AllowTransactionVoid),
		Payment:  NewPaymentService(repos.TransactionRepo, notify),
		Deposit:  NewDepositOrderService(repos.DepositRepo, notify),
		Alert:    alertSvc,
		Auth:     NewAuthService(repos.OperatorRepo, params.JWTSecret, params.JWTExpiry, params.JWTIssuer),
	}
}
