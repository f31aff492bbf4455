package repositories

// RepositoryProvider holds all repository interfaces needed by services.
// This makes passing dependencies to the service container constructor cleaner.
type RepositoryProvider struct {
	AccountRepo        AccountRepositoryFacade
	CurrencyRepo       CurrencyRepositoryFacade
	EntryRepo          EntryRepositoryFacade
	PeriodRepo         PeriodRepositoryFacade
	ReconciliationRepo ReconciliationRepositoryFacade
	OrganizationRepo   OrganizationRepositoryFacade
	UserRepo           UserRepositoryFacade
}
