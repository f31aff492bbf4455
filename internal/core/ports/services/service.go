package services

// ServiceContainer holds instances of all the application services.
// This is the main entry point for accessing service functionality and
// is used throughout the application, particularly in the handlers.
type ServiceContainer struct {
	Account        AccountSvcFacade
	Currency       CurrencySvcFacade
	Entry          EntrySvcFacade
	Period         PeriodSvcFacade
	Reconciliation ReconciliationSvcFacade
	Organization   OrganizationSvcFacade
	User           UserSvcFacade
	Auth           AuthSvcFacade
}
