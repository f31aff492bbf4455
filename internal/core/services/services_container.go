package services

import (
	portsrepo "github.com/georgeperezsalinas/siscont-erp-sub002/internal/core/ports/repositories"
	portssvc "github.com/georgeperezsalinas/siscont-erp-sub002/internal/core/ports/services"
)

// ContainerRepos holds the repositories the service container is built from.
type ContainerRepos struct {
	Account        portsrepo.AccountRepositoryWithTx
	Currency       portsrepo.CurrencyRepositoryWithTx
	Entry          portsrepo.EntryRepositoryWithTx
	Period         portsrepo.PeriodRepositoryWithTx
	Reconciliation portsrepo.ReconciliationRepositoryWithTx
	Organization   portsrepo.OrganizationRepositoryWithTx
	User           portsrepo.UserRepositoryWithTx
}

// ContainerConfig carries the tunables the services need.
type ContainerConfig struct {
	Auth    AuthConfig
	Matcher MatcherConfig
}

// NewServiceContainer wires every service with its dependencies.
func NewServiceContainer(repos ContainerRepos, cfg ContainerConfig) *portssvc.ServiceContainer {
	currencySvc := NewCurrencyService(repos.Currency)
	organizationSvc := NewOrganizationService(repos.Organization, repos.User)
	userSvc := NewUserService(repos.User)
	authSvc := NewAuthService(userSvc, cfg.Auth)
	accountSvc := NewAccountService(repos.Account, currencySvc, organizationSvc)
	entrySvc := NewEntryService(repos.Entry, repos.Period, repos.Account, currencySvc, organizationSvc)
	periodSvc := NewPeriodService(repos.Period, repos.Entry, repos.Account, organizationSvc)
	reconciliationSvc := NewReconciliationService(repos.Reconciliation, repos.Period, repos.Account, repos.Entry, organizationSvc, cfg.Matcher)

	return &portssvc.ServiceContainer{
		Account:        accountSvc,
		Currency:       currencySvc,
		Entry:          entrySvc,
		Period:         periodSvc,
		Reconciliation: reconciliationSvc,
		Organization:   organizationSvc,
		User:           userSvc,
		Auth:           authSvc,
	}
}
