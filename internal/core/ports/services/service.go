package services

// ServiceContainer holds all service facades for dependency injection into
// the HTTP layer.
type ServiceContainer struct {
	Currency CurrencySvcFacade
	Client   ClientSvcFacade
	Exchange ExchangeSvcFacade
	Payment  PaymentSvcFacade
	Deposit  DepositOrderSvcFacade
	Alert    AlertSvcFacade
	Auth     AuthSvcFacade
}
